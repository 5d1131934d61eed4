// Package rider models the single dispatch rider and the vehicle capacity
// in liters and discrete kegs. Used capacity mirrors the orders currently
// in accepted or in_progress status, so a zero load doubles as the
// no-active-deliveries guard for going offline and refilling.
package rider
