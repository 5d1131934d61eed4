package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/pkg/errs"
	"fueldispatch/internal/pkg/guard"
)

// ConfirmationCodeLength is the exact length of the delivery confirmation
// code the customer reads back to the rider.
const ConfirmationCodeLength = 6

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrOrderNumberIsRequired is returned when creating an order without a
	// human-readable order number.
	ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("order number")
	// ErrConfirmationCodeMismatch is returned when a well-formed confirmation
	// code does not match the order's expected code.
	ErrConfirmationCodeMismatch = errors.New("confirmation code does not match")
	// ErrOrderAlreadyBatched is returned when assigning an order to a batch
	// while it already belongs to another one.
	ErrOrderAlreadyBatched = errors.New("order already belongs to a batch")
)

// Order represents one fuel delivery request. It is the aggregate root that
// manages the order lifecycle from intake through batching, acceptance,
// transit and delivery confirmation.
//
// Order follows these invariants:
//   - Quantity is a positive whole number of kegs
//   - Status transitions follow the lifecycle state machine (see Status)
//   - Transition timestamps are stamped once and never overwritten
//   - At most one active batch membership at a time
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id       kernel.UUID
	number   string
	customer Customer
	fuelType FuelType
	quantity kernel.Quantity
	priority Priority
	status   Status

	// neighborhood is the cluster key cached on the order after extraction.
	neighborhood string
	// batchID is stamped when the rider accepts the order's batch; proposed
	// membership before acceptance lives only in the batch plan.
	batchID *string
	// batchable is false for orders outside the normal dispatch radius;
	// such orders are never batched and wait for a manual run.
	batchable bool
	// confirmationCode is the delivery code the customer must present.
	confirmationCode string

	createdAt   time.Time
	acceptedAt  *time.Time
	startedAt   *time.Time
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status. This is the entry point
// for orders arriving from the intake backend.
//
// Parameters:
//   - id: unique identifier
//   - number: human-readable order number (e.g. "FD-2024-0117")
//   - customer: validated recipient details
//   - fuelType: petrol, diesel or kerosene
//   - quantity: validated keg-multiple quantity
//   - priority: normal or high
//   - confirmationCode: the delivery code the customer will present
//     (must be exactly 6 digits)
//   - createdAt: intake time, used for FIFO batching order
//
// Returns a validation error if any parameter is invalid. New orders are
// batchable by default; the caller flags out-of-radius orders via
// MarkUnbatchable.
func NewOrder(
	id kernel.UUID,
	number string,
	customer Customer,
	fuelType FuelType,
	quantity kernel.Quantity,
	priority Priority,
	confirmationCode string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		batchable: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomer(customer),
		o.setFuelType(fuelType),
		o.setQuantity(quantity),
		o.setPriority(priority),
		o.setConfirmationCode(confirmationCode),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID               kernel.UUID
	Number           string
	Customer         Customer
	FuelType         FuelType
	Quantity         kernel.Quantity
	Priority         Priority
	Status           Status
	Neighborhood     string
	BatchID          *string
	Batchable        bool
	ConfirmationCode string
	CreatedAt        time.Time
	AcceptedAt       *time.Time
	StartedAt        *time.Time
	CompletedAt      *time.Time
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// preserving its lifecycle state and transition timestamps. The restored
// order behaves identically to one that went through the transitions live.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		batchable: p.Batchable,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setNumber(p.Number),
		o.setCustomer(p.Customer),
		o.setFuelType(p.FuelType),
		o.setQuantity(p.Quantity),
		o.setPriority(p.Priority),
		o.setStatus(p.Status),
		o.setConfirmationCode(p.ConfirmationCode),
		o.setCreatedAt(p.CreatedAt),
	); err != nil {
		return nil, err
	}

	o.neighborhood = p.Neighborhood
	o.batchID = p.BatchID
	o.acceptedAt = p.AcceptedAt
	o.startedAt = p.StartedAt
	o.completedAt = p.CompletedAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// Customer returns the recipient details.
func (o *Order) Customer() Customer {
	return o.customer
}

// FuelType returns the ordered fuel.
func (o *Order) FuelType() FuelType {
	return o.fuelType
}

// Quantity returns the ordered quantity.
func (o *Order) Quantity() kernel.Quantity {
	return o.quantity
}

// Priority returns the dispatch priority.
func (o *Order) Priority() Priority {
	return o.priority
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Neighborhood returns the cached cluster key, or "" if not yet annotated.
func (o *Order) Neighborhood() string {
	return o.neighborhood
}

// BatchID returns the active batch membership, or nil.
func (o *Order) BatchID() *string {
	return o.batchID
}

// Batchable reports whether the order may be included in dispatch batches.
func (o *Order) Batchable() bool {
	return o.batchable
}

// ConfirmationCode returns the expected delivery confirmation code.
func (o *Order) ConfirmationCode() string {
	return o.confirmationCode
}

// CreatedAt returns the intake time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AcceptedAt returns the acceptance time, or nil if never accepted.
func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

// StartedAt returns the transit start time, or nil if never started.
func (o *Order) StartedAt() *time.Time {
	return o.startedAt
}

// CompletedAt returns the delivery time, or nil if not delivered.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// AnnotateNeighborhood caches the extracted cluster key on the order.
// The annotation is written once; later calls are no-ops so the key stays
// stable for the order's lifetime.
func (o *Order) AnnotateNeighborhood(neighborhood string) {
	if o.neighborhood == "" {
		o.neighborhood = neighborhood
	}
}

// MarkUnbatchable excludes the order from all batching passes. Used for
// orders outside the normal dispatch radius that wait for a manual run.
func (o *Order) MarkUnbatchable() {
	o.batchable = false
}

// AssignBatch records batch membership on a pending order.
// Returns ErrOrderAlreadyBatched if the order already belongs to a different
// batch, enforcing the single-membership invariant.
func (o *Order) AssignBatch(batchID string) error {
	if batchID == "" {
		return errs.NewValueIsRequiredError("batchID")
	}
	if o.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s order cannot join a batch", o.status))
	}
	if o.batchID != nil && *o.batchID != batchID {
		return ErrOrderAlreadyBatched
	}

	o.batchID = &batchID
	return nil
}

// Accept moves the order from Pending to Accepted and stamps acceptedAt.
// The caller must have reserved rider capacity first; this method only
// enforces lifecycle ordering.
func (o *Order) Accept(at time.Time) error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	if o.acceptedAt == nil {
		o.acceptedAt = &at
	}
	return nil
}

// Start moves the order from Accepted to InProgress and stamps startedAt.
func (o *Order) Start(at time.Time) error {
	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.status = newStatus
	if o.startedAt == nil {
		o.startedAt = &at
	}
	return nil
}

// ConfirmDelivery moves the order from InProgress to Delivered after
// verifying the supplied confirmation code, and stamps completedAt.
//
// Failure modes, in checking order:
//   - malformed code (not exactly 6 digits): validation error, state unchanged
//   - wrong code: ErrConfirmationCodeMismatch, state unchanged
//   - wrong status: lifecycle error, state unchanged
func (o *Order) ConfirmDelivery(code string, at time.Time) error {
	if err := ValidateConfirmationCode(code); err != nil {
		return err
	}
	if code != o.confirmationCode {
		return ErrConfirmationCodeMismatch
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	if o.completedAt == nil {
		o.completedAt = &at
	}
	return nil
}

// Reschedule moves a Pending order to NeedsRescheduling after the
// customer-availability check timed out.
func (o *Order) Reschedule() error {
	newStatus, err := o.status.Reschedule()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Requeue moves a NeedsRescheduling order back to Pending and clears any
// stale batch membership so the next batching pass regroups it.
func (o *Order) Requeue() error {
	newStatus, err := o.status.Requeue()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.batchID = nil
	return nil
}

// Cancel withdraws the order. Allowed from Pending or Accepted only.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.batchID = nil
	return nil
}

// DeliveryDuration returns the elapsed time between transit start and
// delivery confirmation. The second return value is false until the order
// has both timestamps.
func (o *Order) DeliveryDuration() (time.Duration, bool) {
	if o.startedAt == nil || o.completedAt == nil {
		return 0, false
	}
	return o.completedAt.Sub(*o.startedAt), true
}

// ValidateConfirmationCode checks the delivery code format: exactly
// ConfirmationCodeLength ASCII digits. Format errors are rejected before any
// state or backend interaction.
func ValidateConfirmationCode(code string) error {
	if len(code) != ConfirmationCodeLength {
		return errs.NewValueIsInvalidErrorWithCause("confirmation code",
			fmt.Errorf("code must be exactly %d digits", ConfirmationCodeLength))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("confirmation code",
				fmt.Errorf("code must contain only digits"))
		}
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return ErrOrderNumberIsRequired
	}
	o.number = number
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setFuelType(fuelType FuelType) error {
	if err := fuelType.Validate(); err != nil {
		return err
	}
	o.fuelType = fuelType
	return nil
}

func (o *Order) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setConfirmationCode(code string) error {
	if err := ValidateConfirmationCode(code); err != nil {
		return err
	}
	o.confirmationCode = code
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
