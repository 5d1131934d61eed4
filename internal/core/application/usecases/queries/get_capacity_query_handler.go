package queries

import (
	"context"

	"fueldispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCapacityQueryHandler reads the single rider's capacity snapshot from
// the database.
type GetCapacityQueryHandler struct {
	db *gorm.DB
}

// NewGetCapacityQueryHandler creates a handler for capacity snapshot queries.
func NewGetCapacityQueryHandler(db *gorm.DB) GetCapacityQueryHandler {
	return GetCapacityQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when no rider
// has been provisioned.
func (h GetCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetCapacityQuery,
) (GetCapacityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCapacityQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			status,
			total_liters,
			keg_size,
			used_liters,
			used_kegs
		FROM riders
		LIMIT 1
	`).Rows()
	if err != nil {
		return GetCapacityQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetCapacityQueryResponse{}, err
		}
		return GetCapacityQueryResponse{}, errs.NewObjectNotFoundError("rider", "current")
	}

	var resp GetCapacityQueryResponse
	err = rows.Scan(
		&resp.RiderName,
		&resp.RiderStatus,
		&resp.TotalLiters,
		&resp.KegSize,
		&resp.UsedLiters,
		&resp.UsedKegs,
	)
	if err != nil {
		return GetCapacityQueryResponse{}, err
	}

	if remaining := resp.TotalLiters - resp.UsedLiters; remaining > 0 {
		resp.RemainingLiters = remaining
	}
	if resp.KegSize > 0 {
		if remaining := resp.TotalLiters/resp.KegSize - resp.UsedKegs; remaining > 0 {
			resp.RemainingKegs = remaining
		}
	}

	return resp, nil
}
