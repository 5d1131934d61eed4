package commands

import (
	"context"
	"time"
)

// StartOrderCommandHandler moves an accepted order to in_progress.
type StartOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartOrderCommandHandler creates a handler for starting single orders.
func NewStartOrderCommandHandler(uowFactory OrderUoWFactory) StartOrderCommandHandler {
	return StartOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start command.
func (h *StartOrderCommandHandler) Handle(ctx context.Context, cmd StartOrderCommand) error {
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

	if err = aggregate.Start(time.Now().UTC()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
