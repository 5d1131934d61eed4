package queries

import (
	"context"
	"time"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCompletedOrdersQueryHandler reads the completed-orders collection from
// the database, most recent first.
type GetCompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCompletedOrdersQueryHandler creates a handler for completed order queries.
func NewGetCompletedOrdersQueryHandler(db *gorm.DB) GetCompletedOrdersQueryHandler {
	return GetCompletedOrdersQueryHandler{db: db}
}

// Handle executes the query. The delivery duration is measured from the
// moment the order went into transit to its confirmed completion.
func (h GetCompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCompletedOrdersQuery,
) ([]GetCompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			number,
			customer_name,
			neighborhood,
			quantity_liters,
			started_at,
			completed_at
		FROM orders
		WHERE status = ?
		ORDER BY completed_at DESC
	`
	args := []any{order.Delivered.String()}
	if query.Limit() > 0 {
		sql += " LIMIT ?"
		args = append(args, query.Limit())
	}

	orders := make([]GetCompletedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetCompletedOrdersQueryResponse
		var id uuid.UUID
		var startedAt, completedAt time.Time

		err = rows.Scan(
			&id,
			&resp.Number,
			&resp.CustomerName,
			&resp.Neighborhood,
			&resp.QuantityLiters,
			&startedAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.CompletedAt = completedAt.UTC()
		resp.DeliveryDuration = completedAt.Sub(startedAt)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
