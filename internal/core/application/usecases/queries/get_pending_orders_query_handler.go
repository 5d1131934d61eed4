package queries

import (
	"context"
	"time"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler reads the pending order pool from the
// database, oldest first.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingOrdersQueryHandler creates a handler for pending order queries.
func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle executes the query.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_name,
			address,
			fuel_type,
			quantity_liters,
			priority,
			neighborhood,
			batch_id,
			batchable,
			created_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at, number
	`, order.Pending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingOrdersQueryResponse
		var id uuid.UUID
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&resp.Number,
			&resp.CustomerName,
			&resp.Address,
			&resp.FuelType,
			&resp.QuantityLiters,
			&resp.Priority,
			&resp.Neighborhood,
			&resp.BatchID,
			&resp.Batchable,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.CreatedAt = createdAt.UTC()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
