package rider

import (
	"errors"
	"fmt"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/pkg/errs"
	"fueldispatch/internal/pkg/guard"
)

// ErrCapacityIsNotConstructed is returned when using an improperly
// initialized Capacity.
var ErrCapacityIsNotConstructed = errors.New("Capacity must be created via NewCapacity constructor")

// ErrReleaseExceedsUsed is returned when releasing more load than is
// currently committed, which would indicate order/capacity bookkeeping
// divergence.
var ErrReleaseExceedsUsed = errors.New("release exceeds used capacity")

// Capacity tracks the rider's cargo capacity in liters and discrete kegs.
//
// Used capacity is the sum of the quantities of all orders currently in
// accepted or in_progress status. Keg accounting is conservative: each
// accepted order consumes a whole number of kegs rounded up, so a keg with
// any liters drawn from it is fully consumed and never shared across orders.
//
// Invariants:
//   - used liters never exceed total liters
//   - used kegs never exceed total kegs
//   - remaining values are never negative
//
// Any accept that would violate these is rejected before mutating state.
type Capacity struct {
	totalLiters int
	kegSize     int
	usedLiters  int
	usedKegs    int
	guard       guard.ConstructorGuard
}

// NewCapacity creates a full (unused) Capacity of totalLiters measured in
// kegs of kegSize liters. The total must be a positive whole number of kegs.
func NewCapacity(totalLiters int, kegSize int) (*Capacity, error) {
	c := &Capacity{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setKegSize(kegSize), c.setTotalLiters(totalLiters)); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCapacity reconstructs a Capacity from persistent storage including
// its committed load.
func RestoreCapacity(totalLiters, kegSize, usedLiters, usedKegs int) (*Capacity, error) {
	c, err := NewCapacity(totalLiters, kegSize)
	if err != nil {
		return nil, err
	}

	if usedLiters < 0 || usedLiters > totalLiters {
		return nil, errs.NewValueIsOutOfRangeError("usedLiters", usedLiters, 0, totalLiters)
	}
	if usedKegs < 0 || usedKegs > c.TotalKegs() {
		return nil, errs.NewValueIsOutOfRangeError("usedKegs", usedKegs, 0, c.TotalKegs())
	}

	c.usedLiters = usedLiters
	c.usedKegs = usedKegs
	return c, nil
}

// Validate checks the Capacity was created via a constructor.
func (c *Capacity) Validate() error {
	if c == nil {
		return ErrCapacityIsNotConstructed
	}
	return c.guard.Validate(ErrCapacityIsNotConstructed)
}

// TotalLiters returns the vehicle's total cargo capacity in liters.
func (c *Capacity) TotalLiters() int {
	return c.totalLiters
}

// KegSize returns the keg size in liters.
func (c *Capacity) KegSize() int {
	return c.kegSize
}

// TotalKegs returns the vehicle's total capacity in kegs.
func (c *Capacity) TotalKegs() int {
	return c.totalLiters / c.kegSize
}

// UsedLiters returns the committed load in liters.
func (c *Capacity) UsedLiters() int {
	return c.usedLiters
}

// UsedKegs returns the committed load in kegs (ceiling per order).
func (c *Capacity) UsedKegs() int {
	return c.usedKegs
}

// RemainingLiters returns the free capacity in liters, never negative.
func (c *Capacity) RemainingLiters() int {
	if remaining := c.totalLiters - c.usedLiters; remaining > 0 {
		return remaining
	}
	return 0
}

// RemainingKegs returns the free capacity in kegs, never negative.
func (c *Capacity) RemainingKegs() int {
	if remaining := c.TotalKegs() - c.usedKegs; remaining > 0 {
		return remaining
	}
	return 0
}

// HasActiveLoad reports whether any capacity is committed. Because used
// capacity tracks exactly the accepted and in_progress orders, a zero load
// means the rider has no active deliveries.
func (c *Capacity) HasActiveLoad() bool {
	return c.usedLiters > 0 || c.usedKegs > 0
}

// CanAccept reports whether quantity fits in the remaining capacity, in both
// liters and kegs, without mutating state.
func (c *Capacity) CanAccept(quantity kernel.Quantity) (bool, error) {
	if err := quantity.Validate(); err != nil {
		return false, err
	}

	kegs := kernel.KegsForLiters(quantity.Liters(), c.kegSize)
	return quantity.Liters() <= c.RemainingLiters() && kegs <= c.RemainingKegs(), nil
}

// Accept commits quantity against the remaining capacity.
// Returns a CapacityExceededError naming the liters/kegs shortfall when the
// quantity does not fit; state is unchanged on failure.
func (c *Capacity) Accept(quantity kernel.Quantity) error {
	fits, err := c.CanAccept(quantity)
	if err != nil {
		return err
	}

	kegs := kernel.KegsForLiters(quantity.Liters(), c.kegSize)
	if !fits {
		return errs.NewCapacityExceededError(
			quantity.Liters(), c.RemainingLiters(), kegs, c.RemainingKegs())
	}

	c.usedLiters += quantity.Liters()
	c.usedKegs += kegs
	return nil
}

// Release frees the capacity committed to a delivered or cancelled order.
func (c *Capacity) Release(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}

	kegs := kernel.KegsForLiters(quantity.Liters(), c.kegSize)
	if quantity.Liters() > c.usedLiters || kegs > c.usedKegs {
		return ErrReleaseExceedsUsed
	}

	c.usedLiters -= quantity.Liters()
	c.usedKegs -= kegs
	return nil
}

// Refill resets the committed load to zero, restoring full capacity.
// The no-active-deliveries guard is enforced by the Rider aggregate.
func (c *Capacity) Refill() {
	c.usedLiters = 0
	c.usedKegs = 0
}

func (c *Capacity) setKegSize(kegSize int) error {
	if kegSize <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("kegSize",
			fmt.Errorf("%d is not greater than 0", kegSize))
	}
	c.kegSize = kegSize
	return nil
}

func (c *Capacity) setTotalLiters(totalLiters int) error {
	if totalLiters <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalLiters",
			fmt.Errorf("%d is not greater than 0", totalLiters))
	}
	if c.kegSize > 0 && totalLiters%c.kegSize != 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalLiters",
			fmt.Errorf("%d is not a multiple of the %dL keg size", totalLiters, c.kegSize))
	}
	c.totalLiters = totalLiters
	return nil
}
