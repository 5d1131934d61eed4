package commands

import (
	"context"
	"time"

	"fueldispatch/internal/core/ports"
)

// AcceptOrderCommandHandler moves a pending order to accepted and commits the
// order's quantity against the rider's vehicle capacity.
//
// The capacity check and the status transition happen inside one transaction:
// on a capacity shortfall the caller receives a CapacityExceededError naming
// the missing liters and kegs, and neither aggregate changes.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewAcceptOrderCommandHandler creates a handler for single-order accepts.
// The notifier is optional; when present the customer is notified after the
// transaction commits, best effort.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the accept command.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	if err = dispatchRider.AcceptLoad(aggregate.Quantity()); err != nil {
		return err
	}

	if err = aggregate.Accept(time.Now().UTC()); err != nil {
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
		// Best effort, never fails the accepted transition.
		_ = h.notifier.NotifyOrderAccepted(ctx, aggregate)
	}

	return nil
}
