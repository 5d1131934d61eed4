package commands

import (
	"errors"

	"fueldispatch/internal/pkg/guard"
)

var ErrRefillCapacityCommandIsNotConstructed = errors.New(
	"RefillCapacityCommand must be created via NewRefillCapacityCommand constructor",
)

// RefillCapacityCommand represents a request to restore the rider's vehicle
// to full capacity after a depot refill. Permitted only while no delivery
// is active.
type RefillCapacityCommand struct {
	guard guard.ConstructorGuard
}

// NewRefillCapacityCommand creates a command to refill the vehicle.
func NewRefillCapacityCommand() RefillCapacityCommand {
	return RefillCapacityCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c RefillCapacityCommand) Validate() error {
	return c.guard.Validate(ErrRefillCapacityCommandIsNotConstructed)
}
