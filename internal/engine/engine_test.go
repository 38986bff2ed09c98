package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/pkg/config"
)

// smallBook keeps engine tests fast: two bonds, two scenarios, three
// annual steps.
func smallBook() BookConfig {
	book := DefaultBook(date.New(2025, 5, 7))
	book.BondCount = 2
	book.BondTenorYears = 3
	book.HorizonYears = 3
	book.LiabilityPayout = 500
	book.LiabilityYears = 3
	book.Rates = []float64{0.03, 0.07}
	return book
}

func testEngine() *Engine {
	return New(config.EngineConfig{MaxWorkers: 1}, nil)
}

func TestDefaultBook(t *testing.T) {
	book := DefaultBook(date.New(2025, 5, 7))

	assert.Equal(t, 5, book.BondCount)
	assert.Equal(t, 10, book.HorizonYears)
	require.Len(t, book.Rates, 9)
	assert.InDelta(t, 0.03, book.Rates[0], 1e-12)
	assert.InDelta(t, 0.11, book.Rates[8], 1e-12)
}

func TestEngine_BookAssembly(t *testing.T) {
	e := testEngine()
	book := smallBook()

	assets := e.Assets(book)
	assert.Equal(t, 2, assets.Len())

	liabilities := e.Liabilities(book)
	assert.Equal(t, 1, liabilities.Len())
	assert.Len(t, liabilities.Assets()[0].CashFlows(), 3)

	curves := e.Curves(book)
	require.Len(t, curves, 2)
	assert.Equal(t, book.Today, curves[0].Reference())
}

func TestEngine_RunMultiScenario(t *testing.T) {
	e := testEngine()
	results, err := e.RunMultiScenario(smallBook())
	require.NoError(t, err)

	require.Len(t, results, 2)
	for i, res := range results {
		require.NotNil(t, res, "scenario %d", i)
		assert.Equal(t, 3, res.Steps(), "scenario %d", i)
		assert.InDelta(t, 0.0, res.EndingSurplus, 1e-2, "scenario %d", i)
	}
}

func TestEngine_ObjectiveFiniteAndPositive(t *testing.T) {
	e := testEngine()
	f := e.Objective(smallBook())

	full := f([]float64{1, 1})
	require.False(t, math.IsInf(full, 1))
	assert.Greater(t, full, 0.0)

	// The objective is the worst-case solved starting-asset value; it is
	// finite and positive for a smaller book too.
	half := f([]float64{0.5, 0.5})
	require.False(t, math.IsInf(half, 1))
	assert.Greater(t, half, 0.0)
}

func TestEngine_OptimizeGradient(t *testing.T) {
	e := New(config.EngineConfig{MaxWorkers: 1, SolverMaxIter: 5, GradientStep: 1e-2, SolverTolerance: 1e-3}, nil)

	res, err := e.Optimize(smallBook(), "gradient")
	require.NoError(t, err)

	assert.NotEmpty(t, res.X)
	assert.GreaterOrEqual(t, res.Iterations, 1)
	for i, v := range res.X {
		assert.GreaterOrEqual(t, v, 0.0, "component %d", i)
		assert.LessOrEqual(t, v, 1.0, "component %d", i)
	}
}

func TestEngine_OptimizeUnknownMethod(t *testing.T) {
	e := testEngine()
	_, err := e.Optimize(smallBook(), "simplex")
	assert.Error(t, err)
}
