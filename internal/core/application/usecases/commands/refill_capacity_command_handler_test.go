package commands_test

import (
	"testing"

	"fueldispatch/internal/core/application/usecases/commands"
	"fueldispatch/internal/core/domain/model/rider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRefillCapacityCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	testRider := newOnlineRider(t, 40)
	require.NoError(t, testRider.AcceptLoad(mustQuantity(t, 30)))
	require.NoError(t, testRider.ReleaseLoad(mustQuantity(t, 30)))

	riderRepo := new(MockRiderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RiderRepository").Return(riderRepo)
	riderRepo.On("GetCurrent", ctx).Return(testRider, nil).Once()
	riderRepo.On("Update", ctx, testRider).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRefillCapacityCommandHandler(factory)

	err := handler.Handle(ctx, commands.NewRefillCapacityCommand())

	require.NoError(t, err)
	assert.Equal(t, 40, testRider.Capacity().RemainingLiters())
	mock.AssertExpectationsForObjects(t, riderRepo, uow, factory)
}

func TestRefillCapacityCommandHandler_Handle_ActiveDeliveriesGuard(t *testing.T) {
	ctx := t.Context()
	testRider := newOnlineRider(t, 40)
	require.NoError(t, testRider.AcceptLoad(mustQuantity(t, 30)))

	riderRepo := new(MockRiderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RiderRepository").Return(riderRepo)
	riderRepo.On("GetCurrent", ctx).Return(testRider, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRefillCapacityCommandHandler(factory)

	err := handler.Handle(ctx, commands.NewRefillCapacityCommand())

	require.ErrorIs(t, err, rider.ErrRiderHasActiveDeliveries)
	assert.Equal(t, 30, testRider.Capacity().UsedLiters())
	uow.AssertNotCalled(t, "Commit", ctx)
}
