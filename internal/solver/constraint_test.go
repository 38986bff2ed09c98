package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox_Project(t *testing.T) {
	box, err := NewBox([]float64{0, 0}, []float64{1, 1})
	require.NoError(t, err)

	x := []float64{-0.2, 1.5}
	box.Project(x)
	assert.Equal(t, []float64{0, 1}, x)
}

func TestBox_ProjectIdempotent(t *testing.T) {
	box, err := NewBox([]float64{-1, 0, 2}, []float64{1, 5, 3})
	require.NoError(t, err)

	x := []float64{-7, 2.5, 10}
	box.Project(x)
	once := cloneVec(x)
	box.Project(x)

	assert.Equal(t, once, x)
	assert.True(t, box.IsSatisfied(x))
}

func TestBox_IsSatisfied(t *testing.T) {
	box, err := NewBox([]float64{0, 0}, []float64{1, 1})
	require.NoError(t, err)

	assert.True(t, box.IsSatisfied([]float64{0.5, 0.5}))
	assert.True(t, box.IsSatisfied([]float64{0, 1}))
	assert.False(t, box.IsSatisfied([]float64{-0.1, 0.5}))
	assert.False(t, box.IsSatisfied([]float64{0.5, 1.1}))
}

func TestNewBox_InvalidInput(t *testing.T) {
	_, err := NewBox([]float64{0, 0}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewBox([]float64{2}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBox_BoundsAreCopied(t *testing.T) {
	lower := []float64{0}
	upper := []float64{1}
	box, err := NewBox(lower, upper)
	require.NoError(t, err)

	lower[0] = 99
	assert.True(t, box.IsSatisfied([]float64{0.5}))
}
