// Package ports defines the contracts between the dispatch core and
// infrastructure adapters: repositories, the unit of work, the order intake
// client and the customer notifier.
package ports

import (
	"context"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable order number.
	// Used to deduplicate orders pulled from the intake service.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllInPendingStatus retrieves all pending orders, oldest first.
	GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error)

	// GetAllActive retrieves all orders occupying vehicle capacity, that is
	// orders in accepted or in_progress status.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetAllByBatchID retrieves the member orders of an accepted batch.
	GetAllByBatchID(ctx context.Context, batchID string) ([]*order.Order, error)

	// GetAllDelivered retrieves completed orders, most recent first, capped
	// at limit. A non-positive limit returns all of them.
	GetAllDelivered(ctx context.Context, limit int) ([]*order.Order, error)
}
