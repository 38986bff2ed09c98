// Package strategy implements the per-step trading rules a projection
// applies after accruing cash flows.
package strategy

import (
	"github.com/hjkrause/alm-engine/internal/curve"
	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/executor"
	"github.com/hjkrause/alm-engine/internal/portfolio"
)

// Strategy mutates the portfolio and cash balance at each projection step.
// Implementations must be safe to share across concurrent projections:
// all mutable state lives in the arguments, not the strategy.
type Strategy interface {
	Apply(
		p *portfolio.Portfolio,
		cash *float64,
		stepStart, stepEnd date.Date,
		crv curve.Curve,
		exec executor.TaskExecutor,
	) error
}
