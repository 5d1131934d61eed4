package commands

import (
	"errors"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/pkg/guard"
)

var ErrRequeueOrderCommandIsNotConstructed = errors.New(
	"RequeueOrderCommand must be created via NewRequeueOrderCommand constructor",
)

// RequeueOrderCommand represents a request to return a needs_rescheduling
// order to the pending pool for the next batching pass.
type RequeueOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequeueOrderCommand creates a command to requeue the given order.
func NewRequeueOrderCommand(orderID kernel.UUID) (RequeueOrderCommand, error) {
	cmd := RequeueOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RequeueOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequeueOrderCommand) Validate() error {
	return c.guard.Validate(ErrRequeueOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to requeue.
func (c RequeueOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RequeueOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
