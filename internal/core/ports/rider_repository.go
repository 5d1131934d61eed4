package ports

import (
	"context"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for the rider aggregate.
// The system runs with a single dispatch rider, so alongside lookup by id the
// contract exposes the current rider directly.
type RiderRepository interface {
	// Add persists a new rider aggregate to storage.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider aggregate.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no such rider exists.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetCurrent retrieves the single dispatch rider.
	// Returns an ObjectNotFoundError when no rider has been provisioned.
	GetCurrent(ctx context.Context) (*rider.Rider, error)
}
