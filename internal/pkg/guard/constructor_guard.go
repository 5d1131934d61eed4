// Package guard provides the constructor-guard pattern used by domain
// entities, value objects and commands to detect zero-value instances that
// bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// was not constructed and no specific validation error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// designated constructor. The zero value fails validation, so embedding a
// guard in a struct makes accidental zero-value usage detectable.
//
// Example:
//
//	type Quantity struct {
//	    liters int
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewQuantity(liters int) (Quantity, error) {
//	    ...
//	    return Quantity{liters: liters, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (q Quantity) Validate() error {
//	    return q.guard.Validate(ErrQuantityIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly
// constructed. Call it inside the object's constructor only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed guards. For zero-value guards it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
