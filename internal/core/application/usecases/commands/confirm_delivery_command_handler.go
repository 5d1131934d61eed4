package commands

import (
	"context"
	"time"

	"fueldispatch/internal/core/ports"
)

// ConfirmDeliveryCommandHandler completes an in-transit order.
//
// On a matching confirmation code the order moves to delivered and its
// quantity is released from the rider's vehicle capacity, inside one
// transaction. A wrong code changes nothing.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmations.
func NewConfirmDeliveryCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the delivery confirmation.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
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

	dispatchRider, err := uow.RiderRepository().GetCurrent(ctx)
	if err != nil {
		return err
	}

	if err = aggregate.ConfirmDelivery(cmd.ConfirmationCode(), time.Now().UTC()); err != nil {
		return err
	}

	if err = dispatchRider.ReleaseLoad(aggregate.Quantity()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.RiderRepository().Update(ctx, dispatchRider); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		// Best effort, never fails the delivered transition.
		_ = h.notifier.NotifyOrderDelivered(ctx, aggregate)
	}

	return nil
}
