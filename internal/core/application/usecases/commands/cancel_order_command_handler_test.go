package commands_test

import (
	"testing"
	"time"

	"fueldispatch/internal/core/application/usecases/commands"
	"fueldispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_PendingOrder_NoCapacityTouched(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, 20)

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	orderRepo.On("Update", ctx, aggregate).Return(nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockUoWFactory{}
	factory.On("Create").Return(uow)

	handler := commands.NewCancelOrderCommandHandler(factory)
	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, aggregate.Status())
	uow.AssertNotCalled(t, "RiderRepository")
}

func TestCancelOrderCommandHandler_AcceptedOrder_ReleasesCapacity(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, 20)
	require.NoError(t, aggregate.Accept(time.Now().UTC()))

	dispatchRider := newOnlineRider(t, 40)
	require.NoError(t, dispatchRider.AcceptLoad(aggregate.Quantity()))

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	orderRepo.On("Update", ctx, aggregate).Return(nil)

	riderRepo := &MockRiderRepository{}
	riderRepo.On("GetCurrent", ctx).Return(dispatchRider, nil)
	riderRepo.On("Update", ctx, dispatchRider).Return(nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RiderRepository").Return(riderRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockUoWFactory{}
	factory.On("Create").Return(uow)

	handler := commands.NewCancelOrderCommandHandler(factory)
	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, aggregate.Status())
	assert.Equal(t, 0, dispatchRider.Capacity().UsedLiters())
}

func TestCancelOrderCommandHandler_InTransitOrder_Rejected(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, 20)
	require.NoError(t, aggregate.Accept(time.Now().UTC()))
	require.NoError(t, aggregate.Start(time.Now().UTC()))

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockUoWFactory{}
	factory.On("Create").Return(uow)

	handler := commands.NewCancelOrderCommandHandler(factory)
	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, order.InProgress, aggregate.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}
