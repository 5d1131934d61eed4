package queries

import (
	"errors"
	"time"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/pkg/errs"
	"fueldispatch/internal/pkg/guard"
)

var ErrGetCompletedOrdersQueryIsNotConstructed = errors.New(
	"GetCompletedOrdersQuery must be created via NewGetCompletedOrdersQuery constructor",
)

// GetCompletedOrdersQuery retrieves delivered orders, most recent first,
// including the measured delivery duration per order.
type GetCompletedOrdersQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetCompletedOrdersQuery creates a query for the completed-orders
// collection. A non-positive limit returns all completed orders.
func NewGetCompletedOrdersQuery(limit int) (GetCompletedOrdersQuery, error) {
	query := GetCompletedOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setLimit(limit); err != nil {
		return GetCompletedOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCompletedOrdersQueryIsNotConstructed)
}

// Limit returns the maximum number of orders to return, 0 for all.
func (q GetCompletedOrdersQuery) Limit() int {
	return q.limit
}

func (q *GetCompletedOrdersQuery) setLimit(limit int) error {
	if limit < 0 {
		return errs.NewValueIsOutOfRangeError("limit", limit, 0, "unbounded")
	}

	q.limit = limit
	return nil
}

// GetCompletedOrdersQueryResponse represents one delivered order.
type GetCompletedOrdersQueryResponse struct {
	ID               kernel.UUID
	Number           string
	CustomerName     string
	Neighborhood     string
	QuantityLiters   int
	CompletedAt      time.Time
	DeliveryDuration time.Duration
}
