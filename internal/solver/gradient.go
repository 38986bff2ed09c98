package solver

import (
	"math"

	"github.com/hjkrause/alm-engine/pkg/logger"
)

// GradientConfig parameterizes the projected-gradient solver. Zero values
// select the defaults.
type GradientConfig struct {
	MaxIter   int     // default 100
	StepSize  float64 // default 1e-2
	Tolerance float64 // default 1e-4
}

func (c GradientConfig) withDefaults() GradientConfig {
	if c.MaxIter <= 0 {
		c.MaxIter = 100
	}
	if c.StepSize <= 0 {
		c.StepSize = 1e-2
	}
	if c.Tolerance <= 0 {
		c.Tolerance = 1e-4
	}
	return c
}

// ProjectedGradient minimizes a black-box objective by fixed-step
// descent along the forward-difference gradient, projecting the iterate
// onto all constraints after every step.
type ProjectedGradient struct {
	constraints []Constraint
	cfg         GradientConfig
	log         *logger.Logger
}

// NewProjectedGradient builds the solver. A nil log discards diagnostics.
func NewProjectedGradient(constraints []Constraint, cfg GradientConfig, log *logger.Logger) *ProjectedGradient {
	if log == nil {
		log = logger.Nop()
	}
	return &ProjectedGradient{constraints: constraints, cfg: cfg.withDefaults(), log: log}
}

// Solve iterates until the objective change falls below the tolerance or
// the iteration cap is hit. Converged is false in the latter case.
func (s *ProjectedGradient) Solve(f Objective, x0 []float64) Results {
	x := cloneVec(x0)
	fx := f(x)
	n := len(x)

	grad := make([]float64, n)
	probe := make([]float64, n)

	for iter := 0; iter < s.cfg.MaxIter; iter++ {
		// Forward-difference gradient; f(x) is reused across components.
		for i := 0; i < n; i++ {
			copy(probe, x)
			probe[i] += fdStep
			grad[i] = (f(probe) - fx) / fdStep
		}

		// Gradient step
		for i := 0; i < n; i++ {
			x[i] -= s.cfg.StepSize * grad[i]
		}

		// Project onto all constraints, in order.
		for _, c := range s.constraints {
			c.Project(x)
		}

		fxNew := f(x)
		if math.Abs(fxNew-fx) < s.cfg.Tolerance {
			return Results{X: x, Objective: fxNew, Iterations: iter + 1, Converged: true}
		}

		fx = fxNew
		s.log.Debugf("projected gradient iter %d: fx=%g", iter, fx)
	}

	return Results{X: x, Objective: fx, Iterations: s.cfg.MaxIter, Converged: false}
}
