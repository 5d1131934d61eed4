// Package errs provides standardized error types for the fuel-dispatch
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid
//   - ValueIsOutOfRangeError: for when a value falls outside allowed bounds
//   - ObjectNotFoundError: for when an object cannot be found
//   - CapacityExceededError: for when an accept would overflow cargo capacity
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach lets callers classify failures with errors.Is
// while the Error() text stays suitable for direct display to the dispatcher.
package errs
