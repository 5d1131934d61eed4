package kernel

import (
	"fmt"

	"fueldispatch/internal/pkg/errs"
	"fueldispatch/internal/pkg/guard"
)

// DefaultKegSizeLiters is the standard discrete cargo unit. Capacity is
// allocated and reported both in liters and in whole kegs of this size.
const DefaultKegSizeLiters = 10

// ErrQuantityIsNotConstructed is returned when validating a zero-value
// Quantity that bypassed the NewQuantity constructor.
var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError(
	"quantity must be created via NewQuantity constructor")

// Quantity is an immutable value object representing an amount of fuel in
// liters together with the keg size it is measured against.
//
// Invariants:
//   - liters is positive
//   - keg size is positive
//   - liters is an exact multiple of the keg size (orders are sold in whole
//     kegs; a quantity that does not divide evenly is a data error upstream)
//
// Example:
//
//	qty, err := kernel.NewQuantity(30, kernel.DefaultKegSizeLiters)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("%dL = %d kegs", qty.Liters(), qty.Kegs())
type Quantity struct {
	liters  int
	kegSize int
	guard   guard.ConstructorGuard
}

// NewQuantity creates a Quantity of the given liters measured in kegs of
// kegSize liters. Returns a validation error if liters or kegSize is not
// positive, or if liters is not a whole number of kegs.
func NewQuantity(liters int, kegSize int) (Quantity, error) {
	if kegSize <= 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause(
			"kegSize", fmt.Errorf("%d is not greater than 0", kegSize))
	}
	if liters <= 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause(
			"liters", fmt.Errorf("%d is not greater than 0", liters))
	}
	if liters%kegSize != 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause(
			"liters", fmt.Errorf("%d is not a multiple of the %dL keg size", liters, kegSize))
	}

	return Quantity{
		liters:  liters,
		kegSize: kegSize,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the Quantity was created via NewQuantity.
func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}

// Liters returns the amount in liters.
func (q Quantity) Liters() int {
	return q.liters
}

// KegSize returns the keg size in liters the quantity is measured against.
func (q Quantity) KegSize() int {
	return q.kegSize
}

// Kegs returns the number of whole kegs the quantity occupies. A keg is
// consumed entirely once any liters are drawn from it, so partial kegs round
// up; with the keg-multiple invariant the division is exact in practice.
func (q Quantity) Kegs() int {
	return KegsForLiters(q.liters, q.kegSize)
}

// IsEqual compares two quantities by liters and keg size.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.liters == other.liters && q.kegSize == other.kegSize
}

// KegsForLiters converts liters into whole kegs, rounding up. Used wherever
// keg accounting must stay conservative (a partially filled keg still takes a
// full keg of physical space on the vehicle).
func KegsForLiters(liters int, kegSize int) int {
	if liters <= 0 || kegSize <= 0 {
		return 0
	}
	return (liters + kegSize - 1) / kegSize
}
