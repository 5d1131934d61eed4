package commands

import (
	"context"
	"time"

	"fueldispatch/internal/pkg/errs"
)

// StartBatchCommandHandler moves every member order of an accepted batch to
// in_progress within one transaction.
type StartBatchCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartBatchCommandHandler creates a handler for starting accepted batches.
func NewStartBatchCommandHandler(uowFactory OrderUoWFactory) StartBatchCommandHandler {
	return StartBatchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch start command. An unknown batch id is a
// not-found error, never a silent no-op.
func (h *StartBatchCommandHandler) Handle(ctx context.Context, cmd StartBatchCommand) error {
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

	members, err := uow.OrderRepository().GetAllByBatchID(ctx, cmd.BatchID())
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return errs.NewObjectNotFoundError("batchID", cmd.BatchID())
	}

	startedAt := time.Now().UTC()
	for _, aggregate := range members {
		if err = aggregate.Start(startedAt); err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
