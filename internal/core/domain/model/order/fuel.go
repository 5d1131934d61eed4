package order

import (
	"fmt"

	"fueldispatch/internal/pkg/errs"
)

// FuelType enumerates the fuels the business delivers.
type FuelType int

const (
	FuelUnknown FuelType = iota
	Petrol
	Diesel
	Kerosene
)

func getFuelTypeStrings() map[FuelType]string {
	return map[FuelType]string{
		Petrol:   "petrol",
		Diesel:   "diesel",
		Kerosene: "kerosene",
	}
}

// Validate checks the fuel type is one of the supported fuels.
func (f FuelType) Validate() error {
	if _, ok := getFuelTypeStrings()[f]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("fuelType is invalid",
			fmt.Errorf("%d is not a valid fuel type", f))
	}
	return nil
}

// String returns the wire name of the fuel type. Implements fmt.Stringer.
func (f FuelType) String() string {
	if s, ok := getFuelTypeStrings()[f]; ok {
		return s
	}
	return "unknown"
}

// FuelTypeFromString parses a wire fuel type name.
func FuelTypeFromString(s string) (FuelType, error) {
	for fuel, name := range getFuelTypeStrings() {
		if name == s {
			return fuel, nil
		}
	}
	return FuelUnknown, errs.NewValueIsInvalidErrorWithCause("fuelType is invalid",
		fmt.Errorf("%q is not a valid fuel type", s))
}

// Priority influences batch ordering: high-priority orders are pulled to the
// front of their neighborhood group and batches containing them dispatch
// first. Priority never overrides capacity constraints.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh
)

// Validate checks the priority is one of the defined levels.
func (p Priority) Validate() error {
	if p != PriorityNormal && p != PriorityHigh {
		return errs.NewValueIsInvalidErrorWithCause("priority is invalid",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the wire name of the priority. Implements fmt.Stringer.
func (p Priority) String() string {
	if p == PriorityHigh {
		return "high"
	}
	return "normal"
}

// PriorityFromString parses a wire priority name. An empty string maps to
// normal, matching intake payloads that omit the field.
func PriorityFromString(s string) (Priority, error) {
	switch s {
	case "", "normal":
		return PriorityNormal, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityNormal, errs.NewValueIsInvalidErrorWithCause("priority is invalid",
			fmt.Errorf("%q is not a valid priority", s))
	}
}
