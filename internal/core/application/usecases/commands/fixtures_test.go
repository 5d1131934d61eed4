package commands_test

import (
	"testing"
	"time"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"
	"fueldispatch/internal/core/domain/model/rider"

	"github.com/stretchr/testify/require"
)

const testConfirmationCode = "123456"

func newPendingOrder(t *testing.T, liters int) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Bisi Adeyemi", "+2348012345678", "12 Admiralty Way, Chevron, Lekki")
	require.NoError(t, err)

	qty, err := kernel.NewQuantity(liters, kernel.DefaultKegSizeLiters)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "FD-2024-0117", customer, order.Diesel, qty,
		order.PriorityNormal, testConfirmationCode, time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	o.AnnotateNeighborhood("Chevron")
	return o
}

func newOnlineRider(t *testing.T, totalLiters int) *rider.Rider {
	t.Helper()

	capacity, err := rider.NewCapacity(totalLiters, kernel.DefaultKegSizeLiters)
	require.NoError(t, err)

	r, err := rider.NewRider(kernel.NewUUID(), "Emeka Obi", capacity)
	require.NoError(t, err)
	return r
}
