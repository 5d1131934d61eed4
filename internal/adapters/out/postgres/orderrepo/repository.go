package orderrepo

import (
	"context"
	"errors"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"
	"fueldispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. All columns are written,
// so cleared nullable fields like batch_id actually clear.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order number", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInPendingStatus retrieves all pending orders, oldest first.
func (r *GormOrderRepository) GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at, number").
		Find(&dtos, "status = ?", order.Pending.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllActive retrieves all orders occupying vehicle capacity.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("accepted_at, number").
		Find(&dtos, "status IN ?", []string{
			order.Accepted.String(),
			order.InProgress.String(),
		}).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllByBatchID retrieves the member orders of an accepted batch.
func (r *GormOrderRepository) GetAllByBatchID(ctx context.Context, batchID string) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at, number").
		Find(&dtos, "batch_id = ?", batchID).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllDelivered retrieves completed orders, most recent first.
func (r *GormOrderRepository) GetAllDelivered(ctx context.Context, limit int) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).Order("completed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos, "status = ?", order.Delivered.String()).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
