package services

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"fueldispatch/internal/core/domain/model/batch"
	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"
	"fueldispatch/internal/pkg/errs"
)

const (
	// DefaultTimeWindow bounds how far apart in creation time orders may be
	// before they are split into separate batches within a neighborhood.
	DefaultTimeWindow = 15 * time.Minute

	// DefaultBaseDuration is the fixed trip overhead in the duration estimate.
	DefaultBaseDuration = 10 * time.Minute

	// DefaultPerStopDuration is the added estimate per delivery stop.
	DefaultPerStopDuration = 15 * time.Minute
)

// BatchBuilderConfig carries the capacity limits and tuning knobs of a
// batching pass.
type BatchBuilderConfig struct {
	TotalCapacityLiters int
	KegSize             int
	TimeWindow          time.Duration
	BaseDuration        time.Duration
	PerStopDuration     time.Duration
}

// BatchPlan is the outcome of one batching pass. Oversized holds orders whose
// quantity alone exceeds the vehicle capacity; they are excluded from every
// batch and reported so upstream data can be corrected.
type BatchPlan struct {
	Batches   []*batch.Batch
	Oversized []*order.Order
}

// BatchBuilder groups pending orders into capacity-feasible, geographically
// coherent candidate batches.
//
// The pass is pure over the input order set: it never mutates order state,
// and two passes over an unchanged set yield identical groupings and ordering
// because every sort key is taken from the orders themselves. Only the batch
// ids differ between passes.
type BatchBuilder struct {
	config  BatchBuilderConfig
	now     func() time.Time
	counter atomic.Uint64
}

// NewBatchBuilder creates a BatchBuilder. Zero tuning knobs in the config are
// replaced with the package defaults. A nil now falls back to time.Now.
func NewBatchBuilder(config BatchBuilderConfig, now func() time.Time) (*BatchBuilder, error) {
	if config.KegSize <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("kegSize",
			fmt.Errorf("%d is not greater than 0", config.KegSize))
	}
	if config.TotalCapacityLiters <= 0 || config.TotalCapacityLiters%config.KegSize != 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalCapacityLiters",
			fmt.Errorf("%d is not a positive multiple of the %dL keg size",
				config.TotalCapacityLiters, config.KegSize))
	}

	if config.TimeWindow <= 0 {
		config.TimeWindow = DefaultTimeWindow
	}
	if config.BaseDuration <= 0 {
		config.BaseDuration = DefaultBaseDuration
	}
	if config.PerStopDuration <= 0 {
		config.PerStopDuration = DefaultPerStopDuration
	}
	if now == nil {
		now = time.Now
	}

	return &BatchBuilder{config: config, now: now}, nil
}

// Build runs one batching pass over the given pending orders.
//
// Orders are partitioned by neighborhood, sorted high priority first and then
// oldest first, and packed greedily until the next order would exceed the
// vehicle capacity in liters or kegs. Orders created more than the time
// window apart are split into separate batches within their neighborhood.
// Small leftover batches from different neighborhoods are merged while their
// combined quantity still fits the vehicle.
//
// Orders marked unbatchable are skipped and left pending. Orders whose
// quantity alone exceeds the vehicle capacity are excluded and reported in
// the plan.
func (b *BatchBuilder) Build(orders []*order.Order) BatchPlan {
	plan := BatchPlan{}

	groups := make(map[string][]*order.Order)
	for _, o := range orders {
		if o == nil || o.Status() != order.Pending || !o.Batchable() {
			continue
		}
		if b.isOversized(o) {
			plan.Oversized = append(plan.Oversized, o)
			continue
		}
		groups[o.Neighborhood()] = append(groups[o.Neighborhood()], o)
	}

	// Map iteration order is random; a sorted key pass keeps the output
	// deterministic for an unchanged input set.
	neighborhoods := make([]string, 0, len(groups))
	for neighborhood := range groups {
		neighborhoods = append(neighborhoods, neighborhood)
	}
	sort.Strings(neighborhoods)

	var batches []*batch.Batch
	for _, neighborhood := range neighborhoods {
		group := groups[neighborhood]
		sortGroup(group)
		batches = append(batches, b.packGroup(neighborhood, group)...)
	}

	batches = b.mergeSmallBatches(batches)
	sortBatches(batches)

	plan.Batches = batches
	return plan
}

func (b *BatchBuilder) isOversized(o *order.Order) bool {
	kegs := kernel.KegsForLiters(o.Quantity().Liters(), b.config.KegSize)
	return o.Quantity().Liters() > b.config.TotalCapacityLiters ||
		kegs > b.config.TotalCapacityLiters/b.config.KegSize
}

// packGroup greedily fills batches from an already sorted neighborhood group.
func (b *BatchBuilder) packGroup(neighborhood string, group []*order.Order) []*batch.Batch {
	var batches []*batch.Batch
	var members []*order.Order
	liters, kegs := 0, 0
	var anchor time.Time

	flush := func() {
		if len(members) == 0 {
			return
		}
		batches = append(batches, b.newBatch(neighborhood, members))
		members, liters, kegs = nil, 0, 0
	}

	totalKegs := b.config.TotalCapacityLiters / b.config.KegSize
	for _, o := range group {
		orderLiters := o.Quantity().Liters()
		orderKegs := kernel.KegsForLiters(orderLiters, b.config.KegSize)

		overCapacity := liters+orderLiters > b.config.TotalCapacityLiters ||
			kegs+orderKegs > totalKegs
		outsideWindow := len(members) > 0 && o.CreatedAt().Sub(anchor) > b.config.TimeWindow

		if overCapacity || outsideWindow {
			flush()
		}
		if len(members) == 0 {
			anchor = o.CreatedAt()
		}
		members = append(members, o)
		liters += orderLiters
		kegs += orderKegs
	}
	flush()

	return batches
}

// mergeSmallBatches combines leftover batches at or below half the vehicle
// capacity across neighborhoods, while the combined quantity still fits. The
// merge ignores the time window so small estates are not stranded alone.
func (b *BatchBuilder) mergeSmallBatches(batches []*batch.Batch) []*batch.Batch {
	half := b.config.TotalCapacityLiters / 2
	totalKegs := b.config.TotalCapacityLiters / b.config.KegSize

	var full []*batch.Batch
	var small []*batch.Batch
	for _, candidate := range batches {
		if candidate.TotalLiters() <= half {
			small = append(small, candidate)
		} else {
			full = append(full, candidate)
		}
	}
	if len(small) < 2 {
		return batches
	}

	merged := full
	for len(small) > 0 {
		members := small[0].Orders()
		liters, kegs := small[0].TotalLiters(), small[0].TotalKegs()
		neighborhood := small[0].Neighborhood()
		small = small[1:]

		absorbed := true
		for absorbed {
			absorbed = false
			for i, candidate := range small {
				if liters+candidate.TotalLiters() > b.config.TotalCapacityLiters ||
					kegs+candidate.TotalKegs() > totalKegs {
					continue
				}
				members = append(members, candidate.Orders()...)
				liters += candidate.TotalLiters()
				kegs += candidate.TotalKegs()
				small = append(small[:i], small[i+1:]...)
				absorbed = true
				break
			}
		}

		sortGroup(members)
		merged = append(merged, b.newBatch(neighborhood, members))
	}

	return merged
}

func (b *BatchBuilder) newBatch(neighborhood string, members []*order.Order) *batch.Batch {
	id := fmt.Sprintf("%d-%s-%d", b.now().UnixMilli(), slug(neighborhood), b.counter.Add(1))

	// Members are pre-validated pending orders over a checked keg size, so
	// construction cannot fail here.
	built, err := batch.NewBatch(id, members, b.config.KegSize, b.config.BaseDuration, b.config.PerStopDuration)
	if err != nil {
		panic(fmt.Sprintf("batch construction over validated orders failed: %v", err))
	}
	return built
}

// sortGroup orders a neighborhood group high priority first, then oldest
// first. The sort is stable so equal orders keep their input position.
func sortGroup(group []*order.Order) {
	sort.SliceStable(group, func(i, j int) bool {
		if group[i].Priority() != group[j].Priority() {
			return group[i].Priority() == order.PriorityHigh
		}
		return group[i].CreatedAt().Before(group[j].CreatedAt())
	})
}

// sortBatches orders the output: batches containing a high priority order
// first, then by earliest member creation time, then fuller batches first.
func sortBatches(batches []*batch.Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		if batches[i].HasHighPriority() != batches[j].HasHighPriority() {
			return batches[i].HasHighPriority()
		}
		if !batches[i].EarliestCreatedAt().Equal(batches[j].EarliestCreatedAt()) {
			return batches[i].EarliestCreatedAt().Before(batches[j].EarliestCreatedAt())
		}
		return batches[i].TotalLiters() > batches[j].TotalLiters()
	})
}

func slug(neighborhood string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(neighborhood)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-':
			sb.WriteByte('-')
		}
	}
	if sb.Len() == 0 {
		return "mixed"
	}
	return sb.String()
}
