package order

import (
	"fmt"

	"fueldispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a fuel order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct delivery workflow.
//
// State transitions:
//
//	Pending ──> Accepted ──> InProgress ──> Delivered
//	   │ ▲          │
//	   │ └── NeedsRescheduling (customer unavailable, manual requeue back)
//	   └──────┬─────┘
//	          ▼
//	      Cancelled (from Pending or Accepted only)
//
// Delivered and Cancelled are absorbing states with no further transitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order awaits batching and rider
	// acceptance.
	Pending

	// Accepted indicates the rider has committed cargo capacity to the order.
	Accepted

	// InProgress indicates the rider is en route with the order.
	InProgress

	// Delivered indicates the customer confirmed receipt with a valid code.
	// Terminal state.
	Delivered

	// NeedsRescheduling indicates the customer could not be reached before
	// dispatch; the order waits for a manual requeue.
	NeedsRescheduling

	// Cancelled indicates the order was withdrawn before transit.
	// Terminal state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "unknown",
		Pending:           "pending",
		Accepted:          "accepted",
		InProgress:        "in_progress",
		Delivered:         "delivered",
		NeedsRescheduling: "needs_rescheduling",
		Cancelled:         "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:           "pending",
		Accepted:          "accepted",
		InProgress:        "in_progress",
		Delivered:         "delivered",
		NeedsRescheduling: "needs_rescheduling",
		Cancelled:         "cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, matching the representation
// used by the intake backend. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a wire status name. Returns an error for names
// outside the valid lifecycle set.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status is absorbing: no transition leads
// out of Delivered or Cancelled.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ConsumesCapacity reports whether an order in this status counts against the
// rider's used cargo capacity. Only Accepted and InProgress orders occupy
// space on the vehicle; Pending orders are still at the depot and Delivered
// orders have left it.
func (s Status) ConsumesCapacity() bool {
	return s == Accepted || s == InProgress
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Pending -> Accepted
//
// The capacity guard is the aggregate's and coordinator's concern; the status
// machine only enforces ordering.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s))
	}
	return Accepted, nil
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - Accepted -> InProgress (an order that was never accepted cannot start)
func (s Status) Start() (Status, error) {
	if s != Accepted {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to start", s))
	}
	return InProgress, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - InProgress -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != InProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s))
	}
	return Delivered, nil
}

// Reschedule transitions the status to NeedsRescheduling. Triggered when the
// customer-availability check times out while the order is still Pending.
func (s Status) Reschedule() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to reschedule", s))
	}
	return NeedsRescheduling, nil
}

// Requeue transitions the status back to Pending after a manual re-queue of
// a NeedsRescheduling order. This is the only backward edge in the machine.
func (s Status) Requeue() (Status, error) {
	if s != NeedsRescheduling {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to requeue", s))
	}
	return Pending, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Accepted -> Cancelled
//
// An order already in transit cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Accepted {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s))
	}
	return Cancelled, nil
}
