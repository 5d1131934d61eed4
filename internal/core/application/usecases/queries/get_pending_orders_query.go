// Package queries contains read-only operations over the dispatch state.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return plain response structures, never aggregates.
package queries

import (
	"errors"
	"time"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery retrieves every order awaiting dispatch, annotated
// with its neighborhood and any persisted batch membership. Proposed
// membership from the latest batching pass is overlaid by the HTTP layer.
type GetPendingOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingOrdersQuery creates a query for the pending order pool.
func NewGetPendingOrdersQuery() GetPendingOrdersQuery {
	return GetPendingOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// GetPendingOrdersQueryResponse represents one pending order.
type GetPendingOrdersQueryResponse struct {
	ID             kernel.UUID
	Number         string
	CustomerName   string
	Address        string
	FuelType       string
	QuantityLiters int
	Priority       string
	Neighborhood   string
	BatchID        *string
	Batchable      bool
	CreatedAt      time.Time
}
