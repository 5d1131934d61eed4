package commands

import (
	"context"
	"time"

	"fueldispatch/internal/core/domain/model/order"
	"fueldispatch/internal/core/ports"
)

// AcceptBatchCommandHandler accepts every member order of a proposed batch
// atomically.
//
// All member orders and the rider load change inside one transaction. The
// first capacity shortfall aborts the whole accept, so either every member
// reaches accepted or none does.
type AcceptBatchCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewAcceptBatchCommandHandler creates a handler for atomic batch accepts.
func NewAcceptBatchCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) AcceptBatchCommandHandler {
	return AcceptBatchCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the batch accept command.
func (h *AcceptBatchCommandHandler) Handle(ctx context.Context, cmd AcceptBatchCommand) error {
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

	dispatchRider, err := uow.RiderRepository().GetCurrent(ctx)
	if err != nil {
		return err
	}

	acceptedAt := time.Now().UTC()
	members := make([]*order.Order, 0, len(cmd.OrderIDs()))
	for _, orderID := range cmd.OrderIDs() {
		aggregate, err := uow.OrderRepository().Get(ctx, orderID)
		if err != nil {
			return err
		}

		if err = dispatchRider.AcceptLoad(aggregate.Quantity()); err != nil {
			return err
		}

		if err = aggregate.AssignBatch(cmd.BatchID()); err != nil {
			return err
		}

		if err = aggregate.Accept(acceptedAt); err != nil {
			return err
		}

		members = append(members, aggregate)
	}

	for _, aggregate := range members {
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.RiderRepository().Update(ctx, dispatchRider); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		for _, aggregate := range members {
			// Best effort, never fails the accepted transition.
			_ = h.notifier.NotifyOrderAccepted(ctx, aggregate)
		}
	}

	return nil
}
