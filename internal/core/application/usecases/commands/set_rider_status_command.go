package commands

import (
	"errors"

	"fueldispatch/internal/core/domain/model/rider"
	"fueldispatch/internal/pkg/guard"
)

var ErrSetRiderStatusCommandIsNotConstructed = errors.New(
	"SetRiderStatusCommand must be created via NewSetRiderStatusCommand constructor",
)

// SetRiderStatusCommand represents a request to toggle the rider between
// online and offline. Going offline is guarded: it fails while any delivery
// is still active.
type SetRiderStatusCommand struct { //nolint:recvcheck //using for validation
	status rider.Status

	guard guard.ConstructorGuard
}

// NewSetRiderStatusCommand creates a command to set the rider's availability.
func NewSetRiderStatusCommand(status rider.Status) (SetRiderStatusCommand, error) {
	cmd := SetRiderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setStatus(status); err != nil {
		return SetRiderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetRiderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderStatusCommandIsNotConstructed)
}

// Status returns the requested availability.
func (c SetRiderStatusCommand) Status() rider.Status {
	return c.status
}

func (c *SetRiderStatusCommand) setStatus(status rider.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
