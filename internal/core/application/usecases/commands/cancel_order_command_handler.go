package commands

import (
	"context"

	"fueldispatch/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels an order before transit. A cancelled
// accepted order releases its committed capacity in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for cancellations.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancel command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	wasConsumingCapacity := aggregate.Status() == order.Accepted

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if wasConsumingCapacity {
		dispatchRider, err := uow.RiderRepository().GetCurrent(ctx)
		if err != nil {
			return err
		}

		if err = dispatchRider.ReleaseLoad(aggregate.Quantity()); err != nil {
			return err
		}

		if err = uow.RiderRepository().Update(ctx, dispatchRider); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
