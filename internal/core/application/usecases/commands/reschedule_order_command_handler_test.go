package commands_test

import (
	"testing"

	"fueldispatch/internal/core/application/usecases/commands"
	"fueldispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRescheduleOrderCommandHandler_ParksPendingOrder(t *testing.T) {
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

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	notifier := &MockNotifier{}
	notifier.On("NotifyOrderRescheduled", ctx, aggregate).Return(nil)

	handler := commands.NewRescheduleOrderCommandHandler(factory, notifier)
	cmd, err := commands.NewRescheduleOrderCommand(aggregate.ID())
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.NeedsRescheduling, aggregate.Status())
	notifier.AssertCalled(t, "NotifyOrderRescheduled", ctx, aggregate)
}

func TestRequeueOrderCommandHandler_ReturnsOrderToPendingPool(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, 20)
	require.NoError(t, aggregate.Reschedule())

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	orderRepo.On("Update", ctx, aggregate).Return(nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	handler := commands.NewRequeueOrderCommandHandler(factory)
	cmd, err := commands.NewRequeueOrderCommand(aggregate.ID())
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, aggregate.Status())
}

func TestRequeueOrderCommandHandler_PendingOrder_Rejected(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, 20)

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	handler := commands.NewRequeueOrderCommandHandler(factory)
	cmd, err := commands.NewRequeueOrderCommand(aggregate.ID())
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
}
