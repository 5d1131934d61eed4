package commands

import (
	"context"

	"fueldispatch/internal/core/domain/model/rider"
)

// SetRiderStatusCommandHandler toggles the rider's availability. The offline
// guard lives on the aggregate: the toggle fails and nothing changes while
// any order is still accepted or in transit.
type SetRiderStatusCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewSetRiderStatusCommandHandler creates a handler for availability toggles.
func NewSetRiderStatusCommandHandler(uowFactory RiderUoWFactory) SetRiderStatusCommandHandler {
	return SetRiderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability toggle.
func (h *SetRiderStatusCommandHandler) Handle(ctx context.Context, cmd SetRiderStatusCommand) error {
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

	if cmd.Status() == rider.StatusOnline {
		dispatchRider.GoOnline()
	} else if err = dispatchRider.GoOffline(); err != nil {
		return err
	}

	if err = uow.RiderRepository().Update(ctx, dispatchRider); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
