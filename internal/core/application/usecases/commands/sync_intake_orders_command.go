package commands

import (
	"errors"

	"fueldispatch/internal/pkg/guard"
)

var ErrSyncIntakeOrdersCommandIsNotConstructed = errors.New(
	"SyncIntakeOrdersCommand must be created via NewSyncIntakeOrdersCommand constructor",
)

// SyncIntakeOrdersCommand represents a request to pull new order records from
// the external order-intake service into the local pending pool.
type SyncIntakeOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewSyncIntakeOrdersCommand creates a command to run one intake sync pass.
func NewSyncIntakeOrdersCommand() SyncIntakeOrdersCommand {
	return SyncIntakeOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SyncIntakeOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSyncIntakeOrdersCommandIsNotConstructed)
}
