package commands

import (
	"errors"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/pkg/guard"
)

var ErrRescheduleOrderCommandIsNotConstructed = errors.New(
	"RescheduleOrderCommand must be created via NewRescheduleOrderCommand constructor",
)

// RescheduleOrderCommand represents a request to park a pending order as
// needs_rescheduling, typically because the customer could not be reached
// within the availability window.
type RescheduleOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRescheduleOrderCommand creates a command to reschedule the given order.
func NewRescheduleOrderCommand(orderID kernel.UUID) (RescheduleOrderCommand, error) {
	cmd := RescheduleOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RescheduleOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RescheduleOrderCommand) Validate() error {
	return c.guard.Validate(ErrRescheduleOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to reschedule.
func (c RescheduleOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RescheduleOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
