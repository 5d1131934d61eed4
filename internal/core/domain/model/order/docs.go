// Package order provides domain entities and business logic for fuel order
// management. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: the aggregate root managing identity, cargo and lifecycle
//   - Status: a state machine enforcing valid lifecycle transitions
//   - Customer: recipient details value object
//   - FuelType / Priority: enumerations with wire-name parsing
//
// Key business rules:
//   - Quantities are positive whole-keg multiples
//   - Lifecycle: pending -> accepted -> in_progress -> delivered, with
//     needs_rescheduling as a pending side branch and cancellation allowed
//     before transit only
//   - Transition timestamps are write-once
//   - Delivery requires a matching 6-digit confirmation code
//   - An order belongs to at most one batch at a time
package order
