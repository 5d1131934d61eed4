package commands

import (
	"errors"

	"fueldispatch/internal/pkg/guard"
)

var ErrReportDelayedDeliveriesCommandIsNotConstructed = errors.New(
	"ReportDelayedDeliveriesCommand must be created via NewReportDelayedDeliveriesCommand constructor",
)

// ReportDelayedDeliveriesCommand represents a request to scan the in-transit
// orders and report any that are running late.
type ReportDelayedDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

// NewReportDelayedDeliveriesCommand creates a command to run one delay scan.
func NewReportDelayedDeliveriesCommand() ReportDelayedDeliveriesCommand {
	return ReportDelayedDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReportDelayedDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrReportDelayedDeliveriesCommandIsNotConstructed)
}
