package rider

import (
	"errors"
	"fmt"
	"strings"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/pkg/errs"
	"fueldispatch/internal/pkg/guard"
)

// Status represents the rider's availability.
type Status int

const (
	StatusUnknown Status = iota
	StatusOffline
	StatusOnline
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		StatusOffline: "offline",
		StatusOnline:  "online",
	}
}

// Validate checks the Status holds a valid value.
func (s Status) Validate() error {
	if s == StatusOffline || s == StatusOnline {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("rider status %d is invalid", int(s)))
}

// String returns the wire name of the status.
func (s Status) String() string {
	if name, ok := getStatusStrings()[s]; ok {
		return name
	}
	return getStatusStrings()[StatusUnknown]
}

// StatusFromString parses a wire name into a Status.
func StatusFromString(name string) (Status, error) {
	for status, statusName := range getStatusStrings() {
		if status != StatusUnknown && statusName == strings.ToLower(name) {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid rider status", name))
}

var (
	// ErrRiderIsNotConstructed is returned when using an improperly
	// initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")

	// ErrRiderNameIsRequired is returned when creating a Rider without a name.
	ErrRiderNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrRiderHasActiveDeliveries is returned when going offline or refilling
	// while accepted or in_progress orders still occupy the vehicle.
	ErrRiderHasActiveDeliveries = errors.New("rider has active deliveries")

	// ErrRiderIsOffline is returned when committing capacity to an offline rider.
	ErrRiderIsOffline = errors.New("rider is offline")
)

// Rider is the single dispatch rider aggregate. It owns the vehicle capacity
// and guards the availability transitions: the rider cannot go offline or
// refill while any active delivery still occupies the vehicle.
type Rider struct {
	id       kernel.UUID
	name     string
	status   Status
	capacity *Capacity
	guard    guard.ConstructorGuard
}

// NewRider creates an online Rider with a full vehicle of the given capacity.
func NewRider(id kernel.UUID, name string, capacity *Capacity) (*Rider, error) {
	r := &Rider{
		status: StatusOnline,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(r.setID(id), r.setName(name), r.setCapacity(capacity)); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider reconstructs a Rider from persistent storage.
func RestoreRider(id kernel.UUID, name string, status Status, capacity *Capacity) (*Rider, error) {
	r, err := NewRider(id, name, capacity)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	r.status = status
	return r, nil
}

// Validate checks the Rider was created via a constructor.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// Name returns the rider's display name.
func (r *Rider) Name() string {
	return r.name
}

// Status returns the rider's availability.
func (r *Rider) Status() Status {
	return r.status
}

// IsOnline reports whether the rider is accepting work.
func (r *Rider) IsOnline() bool {
	return r.status == StatusOnline
}

// Capacity returns the rider's vehicle capacity.
func (r *Rider) Capacity() *Capacity {
	return r.capacity
}

// GoOnline marks the rider available for dispatch. Going online is always
// allowed and idempotent.
func (r *Rider) GoOnline() {
	r.status = StatusOnline
}

// GoOffline marks the rider unavailable. Rejected while any active delivery
// still occupies the vehicle.
func (r *Rider) GoOffline() error {
	if r.capacity.HasActiveLoad() {
		return ErrRiderHasActiveDeliveries
	}
	r.status = StatusOffline
	return nil
}

// CanAccept reports whether quantity fits in the rider's remaining capacity.
// An offline rider cannot accept any quantity.
func (r *Rider) CanAccept(quantity kernel.Quantity) (bool, error) {
	if !r.IsOnline() {
		return false, nil
	}
	return r.capacity.CanAccept(quantity)
}

// AcceptLoad commits quantity against the vehicle capacity.
func (r *Rider) AcceptLoad(quantity kernel.Quantity) error {
	if !r.IsOnline() {
		return ErrRiderIsOffline
	}
	return r.capacity.Accept(quantity)
}

// ReleaseLoad frees the capacity of a delivered or cancelled order.
func (r *Rider) ReleaseLoad(quantity kernel.Quantity) error {
	return r.capacity.Release(quantity)
}

// Refill restores the vehicle to full capacity. Rejected while any active
// delivery still occupies the vehicle.
func (r *Rider) Refill() error {
	if r.capacity.HasActiveLoad() {
		return ErrRiderHasActiveDeliveries
	}
	r.capacity.Refill()
	return nil
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrRiderNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Rider) setCapacity(capacity *Capacity) error {
	if err := capacity.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("capacity", err)
	}
	r.capacity = capacity
	return nil
}
