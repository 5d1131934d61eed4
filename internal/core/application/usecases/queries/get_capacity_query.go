package queries

import (
	"errors"

	"fueldispatch/internal/pkg/guard"
)

var ErrGetCapacityQueryIsNotConstructed = errors.New(
	"GetCapacityQuery must be created via NewGetCapacityQuery constructor",
)

// GetCapacityQuery retrieves a snapshot of the rider's availability and
// vehicle capacity.
type GetCapacityQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCapacityQuery creates a query for the capacity snapshot.
func NewGetCapacityQuery() GetCapacityQuery {
	return GetCapacityQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetCapacityQueryIsNotConstructed)
}

// GetCapacityQueryResponse represents the rider's capacity at a point in
// time. Remaining values are derived and never negative.
type GetCapacityQueryResponse struct {
	RiderName       string
	RiderStatus     string
	TotalLiters     int
	KegSize         int
	UsedLiters      int
	UsedKegs        int
	RemainingLiters int
	RemainingKegs   int
}
