package ports

import (
	"context"
	"time"
)

// IntakeOrder is an order record as published by the external order-intake
// service, before it is validated into an Order aggregate.
type IntakeOrder struct {
	Number           string
	CustomerName     string
	CustomerPhone    string
	Address          string
	FuelType         string
	QuantityLiters   int
	Priority         string
	ConfirmationCode string
	CreatedAt        time.Time
}

// IntakeClient pulls new order records from the external order-intake service.
type IntakeClient interface {
	// FetchPendingOrders returns the order records currently awaiting
	// dispatch on the intake side. Deduplication against already imported
	// orders is the caller's concern.
	FetchPendingOrders(ctx context.Context) ([]IntakeOrder, error)
}
