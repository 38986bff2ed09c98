// Package curve defines the yield-curve contract used for discounting and
// the built-in flat-forward implementation.
package curve

import "github.com/hjkrause/alm-engine/internal/date"

// Curve prices time with respect to a reference date. Implementations are
// immutable after construction and safe for concurrent reads.
type Curve interface {
	// Discount returns the discount factor for a payment at t.
	Discount(t date.Date) float64
	// Zero returns the zero rate for maturity t.
	Zero(t date.Date) float64
	// Forward returns the forward rate between t1 and t2.
	Forward(t1, t2 date.Date) float64
	// Reference returns the curve's reference date, where Discount is 1.
	Reference() date.Date
}
