// Package projection evolves a portfolio through time under a trading
// strategy, prices it against a yield curve, and fans the run out across
// scenarios.
package projection

import (
	"github.com/hjkrause/alm-engine/internal/curve"
	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/executor"
	"github.com/hjkrause/alm-engine/internal/portfolio"
	"github.com/hjkrause/alm-engine/internal/strategy"
)

// Result is the time series produced by one projection run. All vectors
// share the same length, one entry per step.
type Result struct {
	Scalar         float64
	Dates          []date.Date
	AssetsBOP      []float64
	LiabilitiesBOP []float64
	CashBOP        []float64
	SurplusBOP     []float64

	// EndingSurplus combines the final step's opening values with the
	// residual cash left after the last strategy application. It is
	// meaningless when the run produced no steps (start >= end).
	EndingSurplus float64
}

// Steps returns the number of recorded steps.
func (r *Result) Steps() int {
	return len(r.Dates)
}

// Projection is a single-scenario time-stepped driver. The strategy,
// executor and curve are shared read-only collaborators; each run clones
// the asset portfolio so repeated runs are independent.
type Projection struct {
	assets      *portfolio.Portfolio
	liabilities *portfolio.Portfolio
	strat       strategy.Strategy
	exec        executor.TaskExecutor
	crv         curve.Curve
	start       date.Date
	end         date.Date
	step        date.Duration
}

// New builds a projection. A nil strategy holds all positions. The
// default step is one month.
func New(
	assets *portfolio.Portfolio,
	liabilities *portfolio.Portfolio,
	strat strategy.Strategy,
	exec executor.TaskExecutor,
	crv curve.Curve,
	start, end date.Date,
	step date.Duration,
) *Projection {
	if step.N == 0 {
		step = date.Duration{N: 1, Unit: date.Months}
	}
	return &Projection{
		assets:      assets,
		liabilities: liabilities,
		strat:       strat,
		exec:        exec,
		crv:         crv,
		start:       start,
		end:         end,
		step:        step,
	}
}

// Run projects the portfolio from start to end, scaling every starting
// asset volume by scalar. At each step the opening values are recorded,
// flows over the step accrue into cash, and the strategy rebalances.
func (p *Projection) Run(scalar float64) (*Result, error) {
	result := &Result{Scalar: scalar}

	book := p.assets.Clone()
	for _, a := range book.Assets() {
		a.SetVolume(a.Volume() * scalar)
	}

	cash := 0.0
	current := p.start
	next := current.Add(p.step)

	for current < p.end {
		mv, err := book.MarketValue(p.crv, current, p.exec)
		if err != nil {
			return nil, err
		}
		liabilityMV, err := p.liabilities.MarketValue(p.crv, current, p.exec)
		if err != nil {
			return nil, err
		}

		result.Dates = append(result.Dates, current)
		result.AssetsBOP = append(result.AssetsBOP, mv)
		result.LiabilitiesBOP = append(result.LiabilitiesBOP, liabilityMV)
		result.CashBOP = append(result.CashBOP, cash)
		result.SurplusBOP = append(result.SurplusBOP, mv+cash-liabilityMV)

		assetCF, err := book.CashFlowSum(current, next, p.exec)
		if err != nil {
			return nil, err
		}
		liabilityCF, err := p.liabilities.CashFlowSum(current, next, p.exec)
		if err != nil {
			return nil, err
		}
		cash += assetCF - liabilityCF

		if p.strat != nil {
			if err := p.strat.Apply(book, &cash, current, next, p.crv, p.exec); err != nil {
				return nil, err
			}
		}

		current = next
		next = current.Add(p.step)
	}

	if n := len(result.AssetsBOP); n > 0 {
		result.EndingSurplus = result.AssetsBOP[n-1] + cash - result.LiabilitiesBOP[n-1]
	}
	return result, nil
}
