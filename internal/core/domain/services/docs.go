// Package services provides domain services that operate across multiple
// order aggregates.
//
// The package includes:
//   - NeighborhoodExtractor: derives a coarse cluster key from a free-text
//     delivery address using an ordered, injectable matcher list
//   - BatchBuilder: groups pending orders into capacity-feasible, geographically
//     coherent candidate batches for a single trip
//
// Both services are pure over their inputs and never mutate order state.
package services
