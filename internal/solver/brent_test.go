package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrent_FindsSimpleRoot(t *testing.T) {
	s := NewBrent(100, 1e-10)

	root, err := s.Solve(func(x float64) float64 { return x*x - 4 }, 0, 10)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, root, 1e-8)
}

func TestBrent_FindsRootOfDecreasingFunction(t *testing.T) {
	s := NewBrent(100, 1e-10)

	root, err := s.Solve(func(x float64) float64 { return math.Exp(-x) - 0.5 }, 0, 10)
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2, root, 1e-8)
}

func TestBrent_RootAtBracketEdge(t *testing.T) {
	s := NewBrent(100, 1e-10)

	root, err := s.Solve(func(x float64) float64 { return x }, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, root, 1e-8)
}

func TestBrent_BracketingFailure(t *testing.T) {
	s := NewBrent(100, 1e-6)

	_, err := s.Solve(func(x float64) float64 { return x*x + 1 }, 0, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBracketingFailed)
}

func TestBrent_NonPolynomial(t *testing.T) {
	s := NewBrent(200, 1e-12)

	// cos(x) = x has its root near 0.739085.
	root, err := s.Solve(func(x float64) float64 { return math.Cos(x) - x }, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.7390851332151607, root, 1e-9)
}

func TestBrent_DefaultsApplied(t *testing.T) {
	s := NewBrent(0, 0)

	root, err := s.Solve(func(x float64) float64 { return x - 1.5 }, 0, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, root, 1e-5)
}
