package services_test

import (
	"testing"
	"time"

	"fueldispatch/internal/core/domain/model/batch"
	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"
	"fueldispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)

func newPendingOrder(t *testing.T, number string, liters int, neighborhood string,
	priority order.Priority, createdAt time.Time) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Bisi Adeyemi", "+2348012345678", "12 Admiralty Way, "+neighborhood)
	require.NoError(t, err)

	qty, err := kernel.NewQuantity(liters, kernel.DefaultKegSizeLiters)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), number, customer, order.Petrol, qty,
		priority, "123456", createdAt)
	require.NoError(t, err)

	o.AnnotateNeighborhood(neighborhood)
	return o
}

func newTestBuilder(t *testing.T, capacityLiters int) *services.BatchBuilder {
	t.Helper()

	builder, err := services.NewBatchBuilder(services.BatchBuilderConfig{
		TotalCapacityLiters: capacityLiters,
		KegSize:             kernel.DefaultKegSizeLiters,
		TimeWindow:          time.Hour,
	}, func() time.Time { return baseTime })
	require.NoError(t, err)
	return builder
}

func memberNumbers(b *batch.Batch) []string {
	numbers := make([]string, 0, b.Size())
	for _, o := range b.Orders() {
		numbers = append(numbers, o.Number())
	}
	return numbers
}

func TestNewBatchBuilder(t *testing.T) {
	t.Run("should reject invalid capacity configuration", func(t *testing.T) {
		_, err := services.NewBatchBuilder(services.BatchBuilderConfig{
			TotalCapacityLiters: 40, KegSize: 0,
		}, nil)
		require.Error(t, err)

		_, err = services.NewBatchBuilder(services.BatchBuilderConfig{
			TotalCapacityLiters: 45, KegSize: 10,
		}, nil)
		require.Error(t, err)
	})
}

func TestBatchBuilder_Build(t *testing.T) {
	t.Run("full vehicle in one neighborhood fits one batch", func(t *testing.T) {
		builder := newTestBuilder(t, 40)
		orders := []*order.Order{
			newPendingOrder(t, "FD-1", 20, "Chevron", order.PriorityNormal, baseTime),
			newPendingOrder(t, "FD-2", 10, "Chevron", order.PriorityNormal, baseTime.Add(time.Minute)),
			newPendingOrder(t, "FD-3", 10, "Chevron", order.PriorityNormal, baseTime.Add(2*time.Minute)),
		}

		plan := builder.Build(orders)

		require.Len(t, plan.Batches, 1)
		assert.Empty(t, plan.Oversized)
		assert.Equal(t, 40, plan.Batches[0].TotalLiters())
		assert.Equal(t, 4, plan.Batches[0].TotalKegs())
		assert.Equal(t, "Chevron", plan.Batches[0].Neighborhood())
		assert.Equal(t, []string{"FD-1", "FD-2", "FD-3"}, memberNumbers(plan.Batches[0]))
	})

	t.Run("capacity overflow splits the neighborhood into batches", func(t *testing.T) {
		builder := newTestBuilder(t, 40)
		orders := []*order.Order{
			newPendingOrder(t, "FD-1", 20, "Chevron", order.PriorityNormal, baseTime),
			newPendingOrder(t, "FD-2", 20, "Chevron", order.PriorityNormal, baseTime.Add(time.Minute)),
			newPendingOrder(t, "FD-3", 30, "Chevron", order.PriorityNormal, baseTime.Add(2*time.Minute)),
		}

		plan := builder.Build(orders)

		require.Len(t, plan.Batches, 2)
		assert.Equal(t, []string{"FD-1", "FD-2"}, memberNumbers(plan.Batches[0]))
		assert.Equal(t, []string{"FD-3"}, memberNumbers(plan.Batches[1]))
	})

	t.Run("high priority orders move to the front of their group", func(t *testing.T) {
		builder := newTestBuilder(t, 40)
		orders := []*order.Order{
			newPendingOrder(t, "FD-1", 10, "Chevron", order.PriorityNormal, baseTime),
			newPendingOrder(t, "FD-2", 10, "Chevron", order.PriorityHigh, baseTime.Add(10*time.Minute)),
			newPendingOrder(t, "FD-3", 10, "Chevron", order.PriorityNormal, baseTime.Add(5*time.Minute)),
		}

		plan := builder.Build(orders)

		require.Len(t, plan.Batches, 1)
		assert.Equal(t, []string{"FD-2", "FD-1", "FD-3"}, memberNumbers(plan.Batches[0]))
	})

	t.Run("batches with a high priority member come first in the output", func(t *testing.T) {
		builder := newTestBuilder(t, 40)
		orders := []*order.Order{
			newPendingOrder(t, "FD-1", 40, "Ajah", order.PriorityNormal, baseTime),
			newPendingOrder(t, "FD-2", 40, "Sangotedo", order.PriorityHigh, baseTime.Add(time.Hour)),
		}

		plan := builder.Build(orders)

		require.Len(t, plan.Batches, 2)
		assert.True(t, plan.Batches[0].HasHighPriority())
		assert.Equal(t, "Sangotedo", plan.Batches[0].Neighborhood())
	})

	t.Run("small neighborhood remainders merge across neighborhoods", func(t *testing.T) {
		builder := newTestBuilder(t, 40)
		orders := []*order.Order{
			newPendingOrder(t, "FD-1", 10, "Sangotedo", order.PriorityNormal, baseTime),
			newPendingOrder(t, "FD-2", 10, "Ikota", order.PriorityNormal, baseTime.Add(time.Minute)),
		}

		plan := builder.Build(orders)

		require.Len(t, plan.Batches, 1)
		assert.Equal(t, 20, plan.Batches[0].TotalLiters())
		assert.Equal(t, batch.MixedNeighborhoodLabel, plan.Batches[0].Neighborhood())
		assert.ElementsMatch(t, []string{"FD-1", "FD-2"}, memberNumbers(plan.Batches[0]))
	})

	t.Run("merge never exceeds capacity", func(t *testing.T) {
		builder := newTestBuilder(t, 40)
		orders := []*order.Order{
			newPendingOrder(t, "FD-1", 20, "Sangotedo", order.PriorityNormal, baseTime),
			newPendingOrder(t, "FD-2", 20, "Ikota", order.PriorityNormal, baseTime),
			newPendingOrder(t, "FD-3", 20, "Ajah", order.PriorityNormal, baseTime),
		}

		plan := builder.Build(orders)

		require.Len(t, plan.Batches, 2)
		for _, b := range plan.Batches {
			assert.LessOrEqual(t, b.TotalLiters(), 40)
		}
	})

	t.Run("orders created outside the time window split apart", func(t *testing.T) {
		builder, err := services.NewBatchBuilder(services.BatchBuilderConfig{
			TotalCapacityLiters: 100,
			KegSize:             10,
			TimeWindow:          15 * time.Minute,
		}, func() time.Time { return baseTime })
		require.NoError(t, err)

		orders := []*order.Order{
			newPendingOrder(t, "FD-1", 40, "Chevron", order.PriorityNormal, baseTime),
			newPendingOrder(t, "FD-2", 40, "Chevron", order.PriorityNormal, baseTime.Add(2*time.Hour)),
		}

		plan := builder.Build(orders)

		require.Len(t, plan.Batches, 2)
	})

	t.Run("unbatchable orders never appear in any batch", func(t *testing.T) {
		builder := newTestBuilder(t, 40)
		excluded := newPendingOrder(t, "FD-X", 10, "Chevron", order.PriorityNormal, baseTime)
		excluded.MarkUnbatchable()
		orders := []*order.Order{
			excluded,
			newPendingOrder(t, "FD-1", 10, "Chevron", order.PriorityNormal, baseTime),
		}

		plan := builder.Build(orders)

		require.Len(t, plan.Batches, 1)
		assert.Equal(t, []string{"FD-1"}, memberNumbers(plan.Batches[0]))
		assert.Empty(t, plan.Oversized)
		assert.Equal(t, order.Pending, excluded.Status())
	})

	t.Run("oversized orders are excluded and reported", func(t *testing.T) {
		builder := newTestBuilder(t, 40)
		oversized := newPendingOrder(t, "FD-BIG", 50, "Chevron", order.PriorityNormal, baseTime)
		orders := []*order.Order{
			oversized,
			newPendingOrder(t, "FD-1", 10, "Chevron", order.PriorityNormal, baseTime),
		}

		plan := builder.Build(orders)

		require.Len(t, plan.Batches, 1)
		assert.Equal(t, []string{"FD-1"}, memberNumbers(plan.Batches[0]))
		require.Len(t, plan.Oversized, 1)
		assert.Equal(t, "FD-BIG", plan.Oversized[0].Number())
	})

	t.Run("non-pending orders are skipped", func(t *testing.T) {
		builder := newTestBuilder(t, 40)
		accepted := newPendingOrder(t, "FD-A", 10, "Chevron", order.PriorityNormal, baseTime)
		require.NoError(t, accepted.Accept(baseTime.Add(time.Minute)))
		orders := []*order.Order{
			accepted,
			newPendingOrder(t, "FD-1", 10, "Chevron", order.PriorityNormal, baseTime),
		}

		plan := builder.Build(orders)

		require.Len(t, plan.Batches, 1)
		assert.Equal(t, []string{"FD-1"}, memberNumbers(plan.Batches[0]))
	})

	t.Run("repeated passes over an unchanged set group identically", func(t *testing.T) {
		builder := newTestBuilder(t, 40)
		orders := []*order.Order{
			newPendingOrder(t, "FD-1", 20, "Chevron", order.PriorityNormal, baseTime),
			newPendingOrder(t, "FD-2", 30, "Ajah", order.PriorityHigh, baseTime.Add(time.Minute)),
			newPendingOrder(t, "FD-3", 10, "Chevron", order.PriorityNormal, baseTime.Add(2*time.Minute)),
			newPendingOrder(t, "FD-4", 10, "Sangotedo", order.PriorityNormal, baseTime.Add(3*time.Minute)),
		}

		first := builder.Build(orders)
		second := builder.Build(orders)

		require.Len(t, second.Batches, len(first.Batches))
		for i := range first.Batches {
			assert.Equal(t, memberNumbers(first.Batches[i]), memberNumbers(second.Batches[i]))
			assert.Equal(t, first.Batches[i].TotalLiters(), second.Batches[i].TotalLiters())
			assert.Equal(t, first.Batches[i].Neighborhood(), second.Batches[i].Neighborhood())
		}

		for _, o := range orders {
			assert.Equal(t, order.Pending, o.Status(), "build must not mutate order state")
		}
	})

	t.Run("batch ids are unique within one pass", func(t *testing.T) {
		builder := newTestBuilder(t, 40)
		orders := []*order.Order{
			newPendingOrder(t, "FD-1", 40, "Chevron", order.PriorityNormal, baseTime),
			newPendingOrder(t, "FD-2", 40, "Chevron", order.PriorityNormal, baseTime.Add(time.Minute)),
			newPendingOrder(t, "FD-3", 40, "Ajah", order.PriorityNormal, baseTime.Add(2*time.Minute)),
		}

		plan := builder.Build(orders)

		seen := make(map[string]bool)
		for _, b := range plan.Batches {
			assert.False(t, seen[b.ID()], "duplicate batch id %s", b.ID())
			seen[b.ID()] = true
		}
	})
}
