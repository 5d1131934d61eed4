package order_test

import (
	"testing"
	"time"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"
	"fueldispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, liters int) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Bisi Adeyemi", "+2348012345678", "12 Admiralty Way, Chevron, Lekki")
	require.NoError(t, err)

	qty, err := kernel.NewQuantity(liters, kernel.DefaultKegSizeLiters)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"FD-2024-0117",
		customer,
		order.Diesel,
		qty,
		order.PriorityNormal,
		"123456",
		time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending batchable order", func(t *testing.T) {
		o := newTestOrder(t, 20)

		assert.Equal(t, order.Pending, o.Status())
		assert.True(t, o.Batchable())
		assert.Nil(t, o.BatchID())
		assert.Empty(t, o.Neighborhood())
		assert.Nil(t, o.AcceptedAt())
		assert.Nil(t, o.StartedAt())
		assert.Nil(t, o.CompletedAt())
		require.NoError(t, o.Validate())
	})

	t.Run("should reject missing order number", func(t *testing.T) {
		customer, _ := order.NewCustomer("Bisi Adeyemi", "+2348012345678", "Chevron, Lekki")
		qty, _ := kernel.NewQuantity(20, 10)

		_, err := order.NewOrder(kernel.NewUUID(), "", customer, order.Petrol, qty,
			order.PriorityNormal, "123456", time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject malformed confirmation code", func(t *testing.T) {
		customer, _ := order.NewCustomer("Bisi Adeyemi", "+2348012345678", "Chevron, Lekki")
		qty, _ := kernel.NewQuantity(20, 10)

		for _, code := range []string{"", "12345", "1234567", "12345a"} {
			_, err := order.NewOrder(kernel.NewUUID(), "FD-1", customer, order.Petrol, qty,
				order.PriorityNormal, code, time.Now())

			require.Error(t, err, "code %q should be rejected", code)
		}
	})

	t.Run("nil and zero-value orders fail validation", func(t *testing.T) {
		var nilOrder *order.Order
		require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)

		var zero order.Order
		require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	acceptedAt := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	startedAt := acceptedAt.Add(5 * time.Minute)
	completedAt := startedAt.Add(25 * time.Minute)

	t.Run("full happy path stamps each timestamp once", func(t *testing.T) {
		o := newTestOrder(t, 20)

		require.NoError(t, o.Accept(acceptedAt))
		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.AcceptedAt())
		assert.Equal(t, acceptedAt, *o.AcceptedAt())

		require.NoError(t, o.Start(startedAt))
		assert.Equal(t, order.InProgress, o.Status())
		require.NotNil(t, o.StartedAt())

		require.NoError(t, o.ConfirmDelivery("123456", completedAt))
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.CompletedAt())

		duration, ok := o.DeliveryDuration()
		require.True(t, ok)
		assert.Equal(t, 25*time.Minute, duration)
	})

	t.Run("cannot start an order that was never accepted", func(t *testing.T) {
		o := newTestOrder(t, 20)

		err := o.Start(startedAt)

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.StartedAt())
	})

	t.Run("malformed confirmation code leaves state unchanged", func(t *testing.T) {
		o := newTestOrder(t, 20)
		require.NoError(t, o.Accept(acceptedAt))
		require.NoError(t, o.Start(startedAt))

		err := o.ConfirmDelivery("12345", completedAt)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.InProgress, o.Status())
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("wrong confirmation code leaves state unchanged", func(t *testing.T) {
		o := newTestOrder(t, 20)
		require.NoError(t, o.Accept(acceptedAt))
		require.NoError(t, o.Start(startedAt))

		err := o.ConfirmDelivery("654321", completedAt)

		require.ErrorIs(t, err, order.ErrConfirmationCodeMismatch)
		assert.Equal(t, order.InProgress, o.Status())
	})

	t.Run("reschedule and requeue clear batch membership", func(t *testing.T) {
		o := newTestOrder(t, 20)
		require.NoError(t, o.AssignBatch("batch-1"))

		require.NoError(t, o.Reschedule())
		assert.Equal(t, order.NeedsRescheduling, o.Status())

		require.NoError(t, o.Requeue())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.BatchID())
	})

	t.Run("cancel allowed before transit only", func(t *testing.T) {
		o := newTestOrder(t, 20)
		require.NoError(t, o.Accept(acceptedAt))
		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Cancelled, o.Status())

		inTransit := newTestOrder(t, 20)
		require.NoError(t, inTransit.Accept(acceptedAt))
		require.NoError(t, inTransit.Start(startedAt))
		require.Error(t, inTransit.Cancel())
	})
}

func TestOrder_BatchMembership(t *testing.T) {
	t.Run("single active membership", func(t *testing.T) {
		o := newTestOrder(t, 20)

		require.NoError(t, o.AssignBatch("batch-1"))
		require.NotNil(t, o.BatchID())
		assert.Equal(t, "batch-1", *o.BatchID())

		// Re-assigning the same batch is idempotent
		require.NoError(t, o.AssignBatch("batch-1"))

		// A different batch is rejected
		require.ErrorIs(t, o.AssignBatch("batch-2"), order.ErrOrderAlreadyBatched)
	})

	t.Run("accepted order keeps its batch record", func(t *testing.T) {
		o := newTestOrder(t, 20)
		require.NoError(t, o.AssignBatch("batch-1"))
		require.NoError(t, o.Accept(time.Now()))

		require.NotNil(t, o.BatchID())
		assert.Equal(t, "batch-1", *o.BatchID())
	})

	t.Run("non-pending order cannot join a batch", func(t *testing.T) {
		o := newTestOrder(t, 20)
		require.NoError(t, o.Accept(time.Now()))

		require.Error(t, o.AssignBatch("batch-1"))
	})
}

func TestOrder_AnnotateNeighborhood(t *testing.T) {
	t.Run("annotation is write-once", func(t *testing.T) {
		o := newTestOrder(t, 20)

		o.AnnotateNeighborhood("Chevron")
		o.AnnotateNeighborhood("Ajah")

		assert.Equal(t, "Chevron", o.Neighborhood())
	})
}

func TestValidateConfirmationCode(t *testing.T) {
	t.Run("accepts exactly six digits", func(t *testing.T) {
		require.NoError(t, order.ValidateConfirmationCode("000000"))
		require.NoError(t, order.ValidateConfirmationCode("987654"))
	})

	t.Run("rejects wrong length or non-digits", func(t *testing.T) {
		for _, code := range []string{"", "12345", "1234567", "12a456", "12 456", "１２３４５６"} {
			require.Error(t, order.ValidateConfirmationCode(code), "code %q", code)
		}
	})
}
