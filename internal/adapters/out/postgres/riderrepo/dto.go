// Package riderrepo provides data transfer objects and mapping functions for
// rider persistence, including the vehicle capacity state.
package riderrepo

import (
	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting the rider
// aggregate. The capacity columns carry the committed load so a restart
// resumes with the vehicle exactly as it was.
type RiderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Status      string
	TotalLiters int
	KegSize     int
	UsedLiters  int
	UsedKegs    int
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

// fromDomain converts a rider aggregate to its database representation.
func fromDomain(aggregate *rider.Rider) RiderDTO {
	capacity := aggregate.Capacity()
	return RiderDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Status:      aggregate.Status().String(),
		TotalLiters: capacity.TotalLiters(),
		KegSize:     capacity.KegSize(),
		UsedLiters:  capacity.UsedLiters(),
		UsedKegs:    capacity.UsedKegs(),
	}
}

// toDomain converts a database row to a rider aggregate using RestoreRider.
func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := rider.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	capacity, err := rider.RestoreCapacity(dto.TotalLiters, dto.KegSize, dto.UsedLiters, dto.UsedKegs)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(id, dto.Name, status, capacity)
}
