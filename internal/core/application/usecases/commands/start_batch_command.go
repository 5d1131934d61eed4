package commands

import (
	"errors"
	"strings"

	"fueldispatch/internal/pkg/errs"
	"fueldispatch/internal/pkg/guard"
)

var ErrStartBatchCommandIsNotConstructed = errors.New(
	"StartBatchCommand must be created via NewStartBatchCommand constructor",
)

// StartBatchCommand represents a request to move every member order of an
// accepted batch into transit at once.
type StartBatchCommand struct { //nolint:recvcheck //using for validation
	batchID string

	guard guard.ConstructorGuard
}

// NewStartBatchCommand creates a command to start the given accepted batch.
func NewStartBatchCommand(batchID string) (StartBatchCommand, error) {
	cmd := StartBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setBatchID(batchID); err != nil {
		return StartBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartBatchCommand) Validate() error {
	return c.guard.Validate(ErrStartBatchCommandIsNotConstructed)
}

// BatchID returns the identifier of the batch to start.
func (c StartBatchCommand) BatchID() string {
	return c.batchID
}

func (c *StartBatchCommand) setBatchID(batchID string) error {
	if strings.TrimSpace(batchID) == "" {
		return errs.NewValueIsRequiredError("batchID")
	}

	c.batchID = batchID
	return nil
}
