package projection

import (
	"errors"
	"fmt"

	"github.com/hjkrause/alm-engine/internal/curve"
	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/executor"
	"github.com/hjkrause/alm-engine/internal/portfolio"
	"github.com/hjkrause/alm-engine/internal/strategy"
	"github.com/hjkrause/alm-engine/pkg/logger"
)

// ErrNoCurves flags a multi-scenario run with an empty curve set.
var ErrNoCurves = errors.New("projection: no scenario curves")

// MultiScenario runs one projection per yield curve. Each scenario gets
// its own portfolio copies; the strategy and executor are shared.
type MultiScenario struct {
	assets      *portfolio.Portfolio
	liabilities *portfolio.Portfolio
	strat       strategy.Strategy
	exec        executor.TaskExecutor
	curves      []curve.Curve
	start       date.Date
	end         date.Date
	step        date.Duration
	solverCfg   StartingAssetConfig
	log         *logger.Logger
}

// NewMultiScenario builds the driver. A nil log discards diagnostics.
func NewMultiScenario(
	assets *portfolio.Portfolio,
	liabilities *portfolio.Portfolio,
	strat strategy.Strategy,
	exec executor.TaskExecutor,
	curves []curve.Curve,
	start, end date.Date,
	step date.Duration,
	solverCfg StartingAssetConfig,
	log *logger.Logger,
) *MultiScenario {
	if log == nil {
		log = logger.Nop()
	}
	return &MultiScenario{
		assets:      assets,
		liabilities: liabilities,
		strat:       strat,
		exec:        exec,
		curves:      curves,
		start:       start,
		end:         end,
		step:        step,
		solverCfg:   solverCfg,
		log:         log,
	}
}

// Run solves the starting-asset scalar and projects under every curve.
// Scenarios are dispatched as executor tasks and write into per-index
// slots, so completion order never reorders or corrupts results. A
// failing scenario is reported with its index; sibling results are
// unaffected. Results are returned in curve order; a scenario that failed
// leaves a nil entry.
func (m *MultiScenario) Run() ([]*Result, error) {
	if len(m.curves) == 0 {
		return nil, ErrNoCurves
	}

	results := make([]*Result, len(m.curves))
	scenarioErrs := make([]error, len(m.curves))
	solverSeed := NewStartingAssetSolver(m.solverCfg)

	tasks := make([]executor.Task, len(m.curves))
	for i, crv := range m.curves {
		i, crv := i, crv
		tasks[i] = func() {
			proj := New(
				m.assets.Clone(),
				m.liabilities.Clone(),
				m.strat,
				m.exec,
				crv,
				m.start,
				m.end,
				m.step,
			)

			scalar, err := solverSeed.Solve(proj)
			if err != nil {
				scenarioErrs[i] = fmt.Errorf("scenario %d: %w", i, err)
				return
			}

			res, err := proj.Run(scalar)
			if err != nil {
				scenarioErrs[i] = fmt.Errorf("scenario %d: %w", i, err)
				return
			}
			results[i] = res

			m.log.Debugf("scenario %d solved: scalar=%g ending_surplus=%g", i, scalar, res.EndingSurplus)
		}
	}

	if err := m.exec.SubmitAndWait(tasks); err != nil {
		return results, err
	}
	return results, errors.Join(scenarioErrs...)
}
