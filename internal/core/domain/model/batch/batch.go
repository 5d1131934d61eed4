// Package batch models the ephemeral grouping of pending orders proposed for
// a single dispatch trip. Batches are recomputed on every batching pass and
// only become durable when the rider accepts one, at which point every member
// order records the batch id.
package batch

import (
	"errors"
	"strings"
	"time"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"
	"fueldispatch/internal/pkg/errs"
	"fueldispatch/internal/pkg/guard"
)

// MixedNeighborhoodLabel is used when no single neighborhood holds a
// plurality among the member orders.
const MixedNeighborhoodLabel = "Mixed"

var (
	// ErrBatchIsNotConstructed is returned when using an improperly
	// initialized Batch.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")

	// ErrBatchIsEmpty is returned when creating a Batch with no orders.
	ErrBatchIsEmpty = errors.New("batch must contain at least one order")
)

// Batch is a capacity-feasible group of pending orders for one trip.
//
// The member list preserves delivery order: high priority orders first, then
// oldest first, as produced by the builder. Totals and the neighborhood label
// are derived from the members at construction and never change.
type Batch struct {
	id                string
	orders            []*order.Order
	totalLiters       int
	totalKegs         int
	neighborhood      string
	estimatedDuration time.Duration
	guard             guard.ConstructorGuard
}

// NewBatch creates a Batch over the given ordered member list. The estimated
// duration covers the whole trip as a base cost plus a per-stop cost.
func NewBatch(id string, orders []*order.Order, kegSize int, baseDuration, perStopDuration time.Duration) (*Batch, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if len(orders) == 0 {
		return nil, ErrBatchIsEmpty
	}
	if kegSize <= 0 {
		return nil, errs.NewValueIsInvalidError("kegSize")
	}

	b := &Batch{
		id:                id,
		orders:            make([]*order.Order, len(orders)),
		estimatedDuration: baseDuration + time.Duration(len(orders))*perStopDuration,
		guard:             guard.NewConstructorGuard(),
	}
	copy(b.orders, orders)

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		b.totalLiters += o.Quantity().Liters()
		b.totalKegs += kernel.KegsForLiters(o.Quantity().Liters(), kegSize)
	}
	b.neighborhood = dominantNeighborhood(b.orders)

	return b, nil
}

// Validate checks the Batch was created via the constructor.
func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

// ID returns the batch identifier.
func (b *Batch) ID() string {
	return b.id
}

// Orders returns the member orders in delivery order.
func (b *Batch) Orders() []*order.Order {
	orders := make([]*order.Order, len(b.orders))
	copy(orders, b.orders)
	return orders
}

// Size returns the number of member orders.
func (b *Batch) Size() int {
	return len(b.orders)
}

// TotalLiters returns the combined quantity of all members.
func (b *Batch) TotalLiters() int {
	return b.totalLiters
}

// TotalKegs returns the combined keg count, rounded up per order.
func (b *Batch) TotalKegs() int {
	return b.totalKegs
}

// Neighborhood returns the label of the plurality neighborhood among the
// members, or MixedNeighborhoodLabel when the members tie.
func (b *Batch) Neighborhood() string {
	return b.neighborhood
}

// EstimatedDuration returns the estimated trip time.
func (b *Batch) EstimatedDuration() time.Duration {
	return b.estimatedDuration
}

// HasHighPriority reports whether any member order is high priority.
func (b *Batch) HasHighPriority() bool {
	for _, o := range b.orders {
		if o.Priority() == order.PriorityHigh {
			return true
		}
	}
	return false
}

// EarliestCreatedAt returns the oldest creation time among the members.
func (b *Batch) EarliestCreatedAt() time.Time {
	earliest := b.orders[0].CreatedAt()
	for _, o := range b.orders[1:] {
		if o.CreatedAt().Before(earliest) {
			earliest = o.CreatedAt()
		}
	}
	return earliest
}

func dominantNeighborhood(orders []*order.Order) string {
	counts := make(map[string]int)
	for _, o := range orders {
		counts[o.Neighborhood()]++
	}

	best, bestCount, tied := "", 0, false
	for neighborhood, count := range counts {
		switch {
		case count > bestCount:
			best, bestCount, tied = neighborhood, count, false
		case count == bestCount:
			tied = true
		}
	}

	if tied || best == "" {
		return MixedNeighborhoodLabel
	}
	return best
}
