package solver

import "fmt"

// Constraint restricts the feasible region of a solve. Project mutates x
// in place onto the feasible set; IsSatisfied tests membership. Multiple
// constraints are applied in the order given.
type Constraint interface {
	Project(x []float64)
	IsSatisfied(x []float64) bool
}

// Box clamps each component of x into [lower_i, upper_i].
type Box struct {
	lower []float64
	upper []float64
}

// NewBox builds a box constraint. The bound slices are copied and must
// have equal length with lower_i <= upper_i.
func NewBox(lower, upper []float64) (*Box, error) {
	if len(lower) != len(upper) {
		return nil, fmt.Errorf("%w: bound lengths differ (%d vs %d)", ErrInvalidInput, len(lower), len(upper))
	}
	for i := range lower {
		if lower[i] > upper[i] {
			return nil, fmt.Errorf("%w: lower[%d] > upper[%d]", ErrInvalidInput, i, i)
		}
	}
	return &Box{lower: cloneVec(lower), upper: cloneVec(upper)}, nil
}

// Project clamps componentwise. Idempotent.
func (b *Box) Project(x []float64) {
	for i := range x {
		if x[i] < b.lower[i] {
			x[i] = b.lower[i]
		} else if x[i] > b.upper[i] {
			x[i] = b.upper[i]
		}
	}
}

// IsSatisfied tests componentwise inclusion.
func (b *Box) IsSatisfied(x []float64) bool {
	for i := range x {
		if x[i] < b.lower[i] || x[i] > b.upper[i] {
			return false
		}
	}
	return true
}

// Len returns the constrained dimension.
func (b *Box) Len() int {
	return len(b.lower)
}
