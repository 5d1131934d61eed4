// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and the enumerations are stored by wire name, and the transition
// timestamps stay nullable so the lifecycle can be reconstructed exactly.
type OrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number           string    `gorm:"uniqueIndex"`
	CustomerName     string
	CustomerPhone    string
	Address          string
	FuelType         string
	QuantityLiters   int
	KegSize          int
	Priority         string
	Status           string `gorm:"index"`
	Neighborhood     string `gorm:"index"`
	BatchID          *string
	Batchable        bool
	ConfirmationCode string
	CreatedAt        time.Time
	AcceptedAt       *time.Time
	StartedAt        *time.Time
	CompletedAt      *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		Number:           aggregate.Number(),
		CustomerName:     aggregate.Customer().Name(),
		CustomerPhone:    aggregate.Customer().Phone(),
		Address:          aggregate.Customer().Address(),
		FuelType:         aggregate.FuelType().String(),
		QuantityLiters:   aggregate.Quantity().Liters(),
		KegSize:          aggregate.Quantity().KegSize(),
		Priority:         aggregate.Priority().String(),
		Status:           aggregate.Status().String(),
		Neighborhood:     aggregate.Neighborhood(),
		BatchID:          aggregate.BatchID(),
		Batchable:        aggregate.Batchable(),
		ConfirmationCode: aggregate.ConfirmationCode(),
		CreatedAt:        aggregate.CreatedAt(),
		AcceptedAt:       aggregate.AcceptedAt(),
		StartedAt:        aggregate.StartedAt(),
		CompletedAt:      aggregate.CompletedAt(),
	}
}

// toDomain converts a database row to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.CustomerName, dto.CustomerPhone, dto.Address)
	if err != nil {
		return nil, err
	}

	fuelType, err := order.FuelTypeFromString(dto.FuelType)
	if err != nil {
		return nil, err
	}

	priority, err := order.PriorityFromString(dto.Priority)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	quantity, err := kernel.NewQuantity(dto.QuantityLiters, dto.KegSize)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:               id,
		Number:           dto.Number,
		Customer:         customer,
		FuelType:         fuelType,
		Quantity:         quantity,
		Priority:         priority,
		Status:           status,
		Neighborhood:     dto.Neighborhood,
		BatchID:          dto.BatchID,
		Batchable:        dto.Batchable,
		ConfirmationCode: dto.ConfirmationCode,
		CreatedAt:        dto.CreatedAt,
		AcceptedAt:       dto.AcceptedAt,
		StartedAt:        dto.StartedAt,
		CompletedAt:      dto.CompletedAt,
	})
}
