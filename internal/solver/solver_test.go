package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// newDiagSym builds an n×n symmetric matrix with d on the diagonal.
func newDiagSym(n int, d float64) *mat.SymDense {
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, d)
	}
	return m
}

func norm2(x []float64) float64 {
	total := 0.0
	for _, v := range x {
		total += v * v
	}
	return math.Sqrt(total)
}
