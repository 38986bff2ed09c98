// Package engine assembles portfolios, scenario curves and solvers into
// the runs exposed by the CLI, the HTTP API and the scheduler.
package engine

import (
	"fmt"
	"math"

	"github.com/hjkrause/alm-engine/internal/curve"
	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/executor"
	"github.com/hjkrause/alm-engine/internal/portfolio"
	"github.com/hjkrause/alm-engine/internal/projection"
	"github.com/hjkrause/alm-engine/internal/solver"
	"github.com/hjkrause/alm-engine/internal/strategy"
	"github.com/hjkrause/alm-engine/pkg/config"
	"github.com/hjkrause/alm-engine/pkg/logger"
)

// BookConfig describes the projected book: a ladder of fixed-rate bonds
// against an annuity of liability payouts, priced under a set of flat
// scenario rates.
type BookConfig struct {
	Today        date.Date
	HorizonYears int
	StepMonths   int

	BondCount      int
	BondNotional   float64
	BaseCoupon     float64
	CouponStep     float64
	BondTenorYears int

	LiabilityPayout float64
	LiabilityYears  int

	Rates []float64

	ReinvestCoupon     float64
	ReinvestTenorYears int

	// Optimization bounds on per-asset volumes.
	VolumeLower float64
	VolumeUpper float64
}

// DefaultBook returns the demo book: five 10Y bonds with coupons from
// 3.0% in 10bp steps against ten annual payouts of 5000, projected
// annually over ten years under nine flat rates from 3% to 11%, with
// coupon income reinvested in 10Y 4.5% bonds.
func DefaultBook(today date.Date) BookConfig {
	rates := make([]float64, 9)
	for i := range rates {
		rates[i] = 0.03 + 0.01*float64(i)
	}
	return BookConfig{
		Today:              today,
		HorizonYears:       10,
		StepMonths:         12,
		BondCount:          5,
		BondNotional:       1000,
		BaseCoupon:         0.03,
		CouponStep:         0.001,
		BondTenorYears:     10,
		LiabilityPayout:    5000,
		LiabilityYears:     10,
		Rates:              rates,
		ReinvestCoupon:     0.045,
		ReinvestTenorYears: 10,
		VolumeLower:        0,
		VolumeUpper:        1,
	}
}

// Engine wires the numerical components together.
type Engine struct {
	cfg  config.EngineConfig
	exec executor.TaskExecutor
	log  *logger.Logger
}

// New builds an engine from config. MaxWorkers 1 selects the serial
// executor; anything else a parallel one.
func New(cfg config.EngineConfig, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}

	var exec executor.TaskExecutor
	if cfg.MaxWorkers == 1 {
		exec = executor.NewSerial()
	} else {
		exec = executor.NewParallel(cfg.MinWorkers, cfg.MaxWorkers)
	}

	return &Engine{cfg: cfg, exec: exec, log: log}
}

// Executor returns the engine's task executor.
func (e *Engine) Executor() executor.TaskExecutor {
	return e.exec
}

// Assets builds the bond ladder.
func (e *Engine) Assets(book BookConfig) *portfolio.Portfolio {
	p := portfolio.New()
	for i := 0; i < book.BondCount; i++ {
		coupon := book.BaseCoupon + book.CouponStep*float64(i)
		flows := portfolio.FixedRateBond(
			book.Today,
			book.Today.AddYears(book.BondTenorYears),
			coupon,
			book.BondNotional,
			portfolio.BondConfig{},
		)
		p.Add(portfolio.NewAsset(flows, 1.0))
	}
	return p
}

// Liabilities builds the annual payout annuity.
func (e *Engine) Liabilities(book BookConfig) *portfolio.Portfolio {
	var flows []portfolio.CashFlow
	for i := 1; i <= book.LiabilityYears; i++ {
		flows = append(flows, portfolio.CashFlow{
			Date:   book.Today.AddYears(i),
			Amount: book.LiabilityPayout,
		})
	}
	return portfolio.New(portfolio.NewAsset(flows, 1.0))
}

// Curves builds one flat-forward curve per scenario rate.
func (e *Engine) Curves(book BookConfig) []curve.Curve {
	dc := date.NewDayCounter(date.ActualActual)
	curves := make([]curve.Curve, len(book.Rates))
	for i, r := range book.Rates {
		curves[i] = curve.NewFlatForward(book.Today, r, dc)
	}
	return curves
}

// Strategy builds the rebalance rule: pro-rata sales against shortfalls,
// reinvestment into the configured bond template otherwise.
func (e *Engine) Strategy(book BookConfig) strategy.Strategy {
	return strategy.NewRebalance(
		strategy.NewSellProRata(),
		strategy.NewBuyBonds([]strategy.BondTemplate{{
			Proportion: 1.0,
			Coupon:     book.ReinvestCoupon,
			Tenor:      date.Duration{N: book.ReinvestTenorYears, Unit: date.Years},
		}}, portfolio.BondConfig{}),
	)
}

func (e *Engine) solverConfig() projection.StartingAssetConfig {
	return projection.StartingAssetConfig{
		MaxIter:   e.cfg.BrentMaxIter,
		Tolerance: e.cfg.BrentTolerance,
		Lower:     e.cfg.ScalarLower,
		Upper:     e.cfg.ScalarUpper,
	}
}

func (e *Engine) multiScenario(assets *portfolio.Portfolio, book BookConfig) *projection.MultiScenario {
	return projection.NewMultiScenario(
		assets,
		e.Liabilities(book),
		e.Strategy(book),
		e.exec,
		e.Curves(book),
		book.Today,
		book.Today.AddYears(book.HorizonYears),
		date.Duration{N: book.StepMonths, Unit: date.Months},
		e.solverConfig(),
		e.log,
	)
}

// RunMultiScenario solves and projects the book under every scenario.
func (e *Engine) RunMultiScenario(book BookConfig) ([]*projection.Result, error) {
	return e.multiScenario(e.Assets(book), book).Run()
}

// Objective returns the black-box objective the optimizers minimize: the
// worst-case solved starting-asset value across scenarios for a candidate
// volume vector. Failed evaluations price as +Inf so trial points are
// rejected.
func (e *Engine) Objective(book BookConfig) solver.Objective {
	base := e.Assets(book)

	return func(x []float64) float64 {
		candidate := base.Clone()
		for i, a := range candidate.Assets() {
			if i < len(x) {
				a.SetVolume(x[i])
			}
		}

		results, err := e.multiScenario(candidate, book).Run()
		if err != nil {
			e.log.WithError(err).Debug("objective evaluation failed")
			return math.Inf(1)
		}

		worst := 0.0
		for _, res := range results {
			if res != nil && res.Steps() > 0 && res.AssetsBOP[0] > worst {
				worst = res.AssetsBOP[0]
			}
		}
		return worst
	}
}

// Optimize searches the per-asset volume box for the vector minimizing
// the objective. Method is "gradient" or "trustregion".
func (e *Engine) Optimize(book BookConfig, method string) (solver.Results, error) {
	n := e.Assets(book).Len()
	lower := make([]float64, n)
	upper := make([]float64, n)
	x0 := make([]float64, n)
	for i := 0; i < n; i++ {
		lower[i] = book.VolumeLower
		upper[i] = book.VolumeUpper
		x0[i] = 1.0
	}

	box, err := solver.NewBox(lower, upper)
	if err != nil {
		return solver.Results{}, err
	}
	constraints := []solver.Constraint{box}

	var s solver.Solver
	switch method {
	case "gradient", "":
		s = solver.NewProjectedGradient(constraints, solver.GradientConfig{
			MaxIter:   e.cfg.SolverMaxIter,
			StepSize:  e.cfg.GradientStep,
			Tolerance: e.cfg.SolverTolerance,
		}, e.log)
	case "trustregion":
		s = solver.NewTrustRegion(constraints, solver.TrustRegionConfig{
			MaxIter:       e.cfg.SolverMaxIter,
			InitialRadius: e.cfg.TrustRadius,
			Tolerance:     e.cfg.SolverTolerance,
		}, e.log)
	default:
		return solver.Results{}, fmt.Errorf("%w: unknown method %q", solver.ErrInvalidInput, method)
	}

	return s.Solve(e.Objective(book), x0), nil
}
