package commands

import (
	"errors"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"
	"fueldispatch/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand represents a request to complete an in-transit order
// with the customer's confirmation code. A malformed code is rejected here,
// before any repository access.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	confirmationCode string

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command to confirm a delivery.
func NewConfirmDeliveryCommand(orderID kernel.UUID, confirmationCode string) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setConfirmationCode(confirmationCode),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being delivered.
func (c ConfirmDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ConfirmationCode returns the code supplied by the customer.
func (c ConfirmDeliveryCommand) ConfirmationCode() string {
	return c.confirmationCode
}

func (c *ConfirmDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmDeliveryCommand) setConfirmationCode(code string) error {
	if err := order.ValidateConfirmationCode(code); err != nil {
		return err
	}

	c.confirmationCode = code
	return nil
}
