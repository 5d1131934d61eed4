package commands

import (
	"errors"
	"strings"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/pkg/errs"
	"fueldispatch/internal/pkg/guard"
)

var (
	ErrAcceptBatchCommandIsNotConstructed = errors.New(
		"AcceptBatchCommand must be created via NewAcceptBatchCommand constructor",
	)
	ErrBatchHasNoMembers = errors.New("batch has no member orders")
)

// AcceptBatchCommand represents a request to accept every member order of a
// proposed batch atomically. If the combined quantity fails the capacity
// guard, no member order changes status.
type AcceptBatchCommand struct { //nolint:recvcheck //using for validation
	batchID  string
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptBatchCommand creates a command to accept the given batch. The
// member order ids come from the batching pass that proposed the batch.
func NewAcceptBatchCommand(batchID string, orderIDs []kernel.UUID) (AcceptBatchCommand, error) {
	cmd := AcceptBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(cmd.setBatchID(batchID), cmd.setOrderIDs(orderIDs)); err != nil {
		return AcceptBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptBatchCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBatchCommandIsNotConstructed)
}

// BatchID returns the identifier of the batch being accepted.
func (c AcceptBatchCommand) BatchID() string {
	return c.batchID
}

// OrderIDs returns the identifiers of the member orders.
func (c AcceptBatchCommand) OrderIDs() []kernel.UUID {
	orderIDs := make([]kernel.UUID, len(c.orderIDs))
	copy(orderIDs, c.orderIDs)
	return orderIDs
}

func (c *AcceptBatchCommand) setBatchID(batchID string) error {
	if strings.TrimSpace(batchID) == "" {
		return errs.NewValueIsRequiredError("batchID")
	}

	c.batchID = batchID
	return nil
}

func (c *AcceptBatchCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrBatchHasNoMembers
	}

	for _, orderID := range orderIDs {
		if err := orderID.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}
