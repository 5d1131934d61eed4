package commands

import (
	"context"
)

// RefillCapacityCommandHandler restores the rider's vehicle to full capacity.
// The refill guard lives on the aggregate: it fails while any delivery still
// occupies the vehicle.
type RefillCapacityCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewRefillCapacityCommandHandler creates a handler for depot refills.
func NewRefillCapacityCommandHandler(uowFactory RiderUoWFactory) RefillCapacityCommandHandler {
	return RefillCapacityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the refill command.
func (h *RefillCapacityCommandHandler) Handle(ctx context.Context, cmd RefillCapacityCommand) error {
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

	if err = dispatchRider.Refill(); err != nil {
		return err
	}

	if err = uow.RiderRepository().Update(ctx, dispatchRider); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
