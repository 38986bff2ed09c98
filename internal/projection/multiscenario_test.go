package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjkrause/alm-engine/internal/curve"
	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/executor"
	"github.com/hjkrause/alm-engine/internal/portfolio"
	"github.com/hjkrause/alm-engine/internal/solver"
	"github.com/hjkrause/alm-engine/internal/strategy"
)

func TestStartingAssetSolver_ZeroesEndingSurplus(t *testing.T) {
	// Assets deliver 1000*alpha, liabilities a fixed 500, both at the
	// same date under a 0% curve: the root is exactly 0.5.
	exec := executor.NewSerial()
	maturity := today.AddYears(5)
	assets := portfolio.New(portfolio.NewAsset(portfolio.ZeroCouponBond(maturity, 1000), 1.0))
	liabilities := portfolio.New(portfolio.NewAsset(portfolio.ZeroCouponBond(maturity, 500), 1.0))

	proj := New(assets, liabilities, nil, exec, flat(0.0), today, maturity, oneYear)

	scalar, err := NewStartingAssetSolver(StartingAssetConfig{}).Solve(proj)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, scalar, 1e-4)

	res, err := proj.Run(scalar)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.EndingSurplus, 1e-2)
}

func TestStartingAssetSolver_GuessShortCircuits(t *testing.T) {
	// A matched book has zero surplus at alpha = 1; the guess is already
	// the root and no search runs.
	exec := executor.NewSerial()
	flows := portfolio.FixedRateBond(today, today.AddYears(10), 0.03, 1000, portfolio.BondConfig{})
	assets := portfolio.New(portfolio.NewAsset(flows, 1.0))
	liabilities := portfolio.New(portfolio.NewAsset(flows, 1.0))

	proj := New(assets, liabilities, nil, exec, flat(0.03), today, today.AddYears(10), oneYear)

	scalar, err := NewStartingAssetSolver(StartingAssetConfig{}).Solve(proj)
	require.NoError(t, err)
	assert.Equal(t, 1.0, scalar)
}

// skewedLiabilities builds a liability book whose ending-surplus sign at
// alpha = 0 depends on the discount rate: a near-term outflow plus a
// larger far recovery that only shows up discounted.
func skewedLiabilities() *portfolio.Portfolio {
	return portfolio.New(portfolio.NewAsset([]portfolio.CashFlow{
		{Date: date.New(2026, 1, 1), Amount: 100},
		{Date: today.AddYears(5), Amount: -240},
	}, 1.0))
}

func TestStartingAssetSolver_BracketingFailure(t *testing.T) {
	// At 3% the discounted recovery outweighs the outflow, so the
	// surplus is positive over the whole bracket.
	exec := executor.NewSerial()
	assets := portfolio.New(portfolio.NewAsset(
		portfolio.ZeroCouponBond(date.New(2026, 1, 1), 1000), 1.0))

	proj := New(assets, skewedLiabilities(), nil, exec, flat(0.03),
		today, today.AddYears(1), oneYear)

	_, err := NewStartingAssetSolver(StartingAssetConfig{}).Solve(proj)
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrBracketingFailed)
}

func TestMultiScenario_FailingScenarioDoesNotCorruptSiblings(t *testing.T) {
	// Scenario 0 (3%) cannot bracket; scenario 1 (11%) solves. The error
	// names the failing index and the sibling result is intact.
	exec := executor.NewSerial()
	assets := portfolio.New(portfolio.NewAsset(
		portfolio.ZeroCouponBond(date.New(2026, 1, 1), 1000), 1.0))

	curves := []curve.Curve{flat(0.03), flat(0.11)}

	m := NewMultiScenario(assets, skewedLiabilities(), nil, exec, curves,
		today, today.AddYears(1), oneYear, StartingAssetConfig{}, nil)

	results, err := m.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrBracketingFailed)
	assert.Contains(t, err.Error(), "scenario 0")

	require.Len(t, results, 2)
	assert.Nil(t, results[0])
	require.NotNil(t, results[1])
	assert.InDelta(t, 0.0, results[1].EndingSurplus, 1e-2)
}

func TestMultiScenario_EmptyCurveSet(t *testing.T) {
	exec := executor.NewSerial()
	m := NewMultiScenario(portfolio.New(), portfolio.New(), nil, exec, nil,
		today, today.AddYears(1), oneYear, StartingAssetConfig{}, nil)

	_, err := m.Run()
	assert.ErrorIs(t, err, ErrNoCurves)
}

func TestMultiScenario_DeterministicAcrossExecutors(t *testing.T) {
	// Nine flat curves from 3% to 11%; serial and parallel execution
	// must produce element-wise identical results.
	assets := bondBook(5, 0.03, 1000)
	liabilities := annuityBook(300, 10)

	rebalance := strategy.NewRebalance(
		strategy.NewSellProRata(),
		strategy.NewBuyBonds([]strategy.BondTemplate{
			{Proportion: 1.0, Coupon: 0.045, Tenor: date.Duration{N: 10, Unit: date.Years}},
		}, portfolio.BondConfig{}),
	)

	var curves []curve.Curve
	for i := 0; i < 9; i++ {
		curves = append(curves, flat(0.03+0.01*float64(i)))
	}

	run := func(exec executor.TaskExecutor) []*Result {
		m := NewMultiScenario(assets, liabilities, rebalance, exec, curves,
			today, today.AddYears(10), oneYear, StartingAssetConfig{}, nil)
		results, err := m.Run()
		require.NoError(t, err)
		return results
	}

	serialResults := run(executor.NewSerial())
	parallelResults := run(executor.NewParallel(1, 4))

	require.Len(t, serialResults, 9)
	require.Len(t, parallelResults, 9)

	for i := range serialResults {
		require.NotNil(t, serialResults[i], "scenario %d", i)
		require.NotNil(t, parallelResults[i], "scenario %d", i)

		assert.Equal(t, serialResults[i].Scalar, parallelResults[i].Scalar, "scenario %d", i)
		assert.Equal(t, serialResults[i].Dates, parallelResults[i].Dates, "scenario %d", i)
		assert.Equal(t, serialResults[i].AssetsBOP, parallelResults[i].AssetsBOP, "scenario %d", i)
		assert.Equal(t, serialResults[i].LiabilitiesBOP, parallelResults[i].LiabilitiesBOP, "scenario %d", i)
		assert.Equal(t, serialResults[i].CashBOP, parallelResults[i].CashBOP, "scenario %d", i)
		assert.Equal(t, serialResults[i].SurplusBOP, parallelResults[i].SurplusBOP, "scenario %d", i)
		assert.Equal(t, serialResults[i].EndingSurplus, parallelResults[i].EndingSurplus, "scenario %d", i)
	}

	// Higher discount rates mean cheaper assets: the solved scalar must
	// move with the scenario.
	assert.NotEqual(t, serialResults[0].Scalar, serialResults[8].Scalar)
}
