package batch_test

import (
	"testing"
	"time"

	"fueldispatch/internal/core/domain/model/batch"
	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, liters int, neighborhood string, priority order.Priority, createdAt time.Time) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Bisi Adeyemi", "+2348012345678", "12 Admiralty Way, "+neighborhood+", Lekki")
	require.NoError(t, err)

	qty, err := kernel.NewQuantity(liters, kernel.DefaultKegSizeLiters)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "FD-2024-0117", customer, order.Diesel, qty,
		priority, "123456", createdAt)
	require.NoError(t, err)

	o.AnnotateNeighborhood(neighborhood)
	return o
}

func TestNewBatch(t *testing.T) {
	base := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("should derive totals and neighborhood", func(t *testing.T) {
		orders := []*order.Order{
			newTestOrder(t, 20, "Chevron", order.PriorityNormal, base),
			newTestOrder(t, 10, "Chevron", order.PriorityNormal, base.Add(time.Minute)),
			newTestOrder(t, 10, "Ajah", order.PriorityNormal, base.Add(2*time.Minute)),
		}

		b, err := batch.NewBatch("batch-1", orders, kernel.DefaultKegSizeLiters,
			10*time.Minute, 15*time.Minute)

		require.NoError(t, err)
		assert.Equal(t, 3, b.Size())
		assert.Equal(t, 40, b.TotalLiters())
		assert.Equal(t, 4, b.TotalKegs())
		assert.Equal(t, "Chevron", b.Neighborhood())
		assert.Equal(t, 55*time.Minute, b.EstimatedDuration())
		assert.Equal(t, base, b.EarliestCreatedAt())
		assert.False(t, b.HasHighPriority())
	})

	t.Run("should label tied neighborhoods as Mixed", func(t *testing.T) {
		orders := []*order.Order{
			newTestOrder(t, 10, "Chevron", order.PriorityNormal, base),
			newTestOrder(t, 10, "Ajah", order.PriorityNormal, base),
		}

		b, err := batch.NewBatch("batch-1", orders, kernel.DefaultKegSizeLiters, 0, time.Minute)

		require.NoError(t, err)
		assert.Equal(t, batch.MixedNeighborhoodLabel, b.Neighborhood())
	})

	t.Run("should detect high priority members", func(t *testing.T) {
		orders := []*order.Order{
			newTestOrder(t, 10, "Chevron", order.PriorityNormal, base),
			newTestOrder(t, 10, "Chevron", order.PriorityHigh, base),
		}

		b, err := batch.NewBatch("batch-1", orders, kernel.DefaultKegSizeLiters, 0, time.Minute)

		require.NoError(t, err)
		assert.True(t, b.HasHighPriority())
	})

	t.Run("should reject empty batches and blank ids", func(t *testing.T) {
		orders := []*order.Order{newTestOrder(t, 10, "Chevron", order.PriorityNormal, base)}

		_, err := batch.NewBatch("batch-1", nil, kernel.DefaultKegSizeLiters, 0, time.Minute)
		require.ErrorIs(t, err, batch.ErrBatchIsEmpty)

		_, err = batch.NewBatch("  ", orders, kernel.DefaultKegSizeLiters, 0, time.Minute)
		require.Error(t, err)
	})

	t.Run("member list is copied on input and output", func(t *testing.T) {
		orders := []*order.Order{
			newTestOrder(t, 10, "Chevron", order.PriorityNormal, base),
			newTestOrder(t, 10, "Chevron", order.PriorityNormal, base),
		}

		b, err := batch.NewBatch("batch-1", orders, kernel.DefaultKegSizeLiters, 0, time.Minute)
		require.NoError(t, err)

		orders[0] = nil
		members := b.Orders()
		require.NotNil(t, members[0])

		members[1] = nil
		assert.NotNil(t, b.Orders()[1])
	})
}
