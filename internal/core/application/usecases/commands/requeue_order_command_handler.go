package commands

import (
	"context"
)

// RequeueOrderCommandHandler returns a needs_rescheduling order to pending.
// Requeueing also clears any stale batch membership so the next batching
// pass sees the order fresh.
type RequeueOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRequeueOrderCommandHandler creates a handler for requeues.
func NewRequeueOrderCommandHandler(uowFactory OrderUoWFactory) RequeueOrderCommandHandler {
	return RequeueOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the requeue command.
func (h *RequeueOrderCommandHandler) Handle(ctx context.Context, cmd RequeueOrderCommand) error {
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

	if err = aggregate.Requeue(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
