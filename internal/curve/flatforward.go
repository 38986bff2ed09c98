package curve

import (
	"math"

	"github.com/hjkrause/alm-engine/internal/date"
)

// FlatForward is a curve with a single constant annually compounded rate.
type FlatForward struct {
	ref  date.Date
	rate float64
	dc   date.DayCounter
}

// NewFlatForward builds a flat curve at the given rate.
func NewFlatForward(ref date.Date, rate float64, dc date.DayCounter) *FlatForward {
	return &FlatForward{ref: ref, rate: rate, dc: dc}
}

// Discount returns (1+r)^(-yf(ref, t)).
func (f *FlatForward) Discount(t date.Date) float64 {
	yf := f.dc.YearFraction(f.ref, t)
	return math.Pow(1+f.rate, -yf)
}

// Zero returns the constant rate.
func (f *FlatForward) Zero(t date.Date) float64 {
	return f.rate
}

// Forward returns the constant rate.
func (f *FlatForward) Forward(t1, t2 date.Date) float64 {
	return f.rate
}

// Reference returns the curve's reference date.
func (f *FlatForward) Reference() date.Date {
	return f.ref
}

// Rate returns the flat annual rate.
func (f *FlatForward) Rate() float64 {
	return f.rate
}
