package ports

import (
	"context"

	"fueldispatch/internal/core/domain/model/order"
)

// Notifier sends customer-facing notifications on order lifecycle changes.
// Delivery of a notification is best effort and must never block or fail a
// state transition.
type Notifier interface {
	// NotifyOrderAccepted tells the customer their order is on the next trip.
	NotifyOrderAccepted(ctx context.Context, aggregate *order.Order) error

	// NotifyOrderDelivered confirms a completed delivery.
	NotifyOrderDelivered(ctx context.Context, aggregate *order.Order) error

	// NotifyOrderRescheduled tells the customer their order was moved to a
	// later trip.
	NotifyOrderRescheduled(ctx context.Context, aggregate *order.Order) error

	// NotifyDeliveryDelayed reports an in-transit order that is taking longer
	// than expected to reach the customer.
	NotifyDeliveryDelayed(ctx context.Context, aggregate *order.Order) error
}
