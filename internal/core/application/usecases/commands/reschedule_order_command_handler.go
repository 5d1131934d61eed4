package commands

import (
	"context"

	"fueldispatch/internal/core/ports"
)

// RescheduleOrderCommandHandler parks a pending order as needs_rescheduling.
type RescheduleOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewRescheduleOrderCommandHandler creates a handler for reschedules.
func NewRescheduleOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) RescheduleOrderCommandHandler {
	return RescheduleOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the reschedule command.
func (h *RescheduleOrderCommandHandler) Handle(ctx context.Context, cmd RescheduleOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Reschedule(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		// Best effort, never fails the rescheduled transition.
		_ = h.notifier.NotifyOrderRescheduled(ctx, aggregate)
	}

	return nil
}
