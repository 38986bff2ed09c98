package projection

import (
	"math"

	"github.com/hjkrause/alm-engine/internal/solver"
)

// StartingAssetConfig parameterizes the starting-asset solve. Zero values
// select the defaults.
type StartingAssetConfig struct {
	MaxIter   int     // default 100
	Tolerance float64 // default 1e-6
	Guess     float64 // default 1.0
	Lower     float64 // default 0.0
	Upper     float64 // default 100.0
}

func (c StartingAssetConfig) withDefaults() StartingAssetConfig {
	if c.MaxIter <= 0 {
		c.MaxIter = 100
	}
	if c.Tolerance <= 0 {
		c.Tolerance = 1e-6
	}
	if c.Guess == 0 {
		c.Guess = 1.0
	}
	if c.Upper == 0 {
		c.Upper = 100.0
	}
	return c
}

// StartingAssetSolver finds the volume scalar that zeroes a projection's
// ending surplus.
type StartingAssetSolver struct {
	cfg StartingAssetConfig
}

// NewStartingAssetSolver builds the solver.
func NewStartingAssetSolver(cfg StartingAssetConfig) *StartingAssetSolver {
	return &StartingAssetSolver{cfg: cfg.withDefaults()}
}

// Solve returns scalar such that p.Run(scalar).EndingSurplus is within
// tolerance of zero. The surplus must change sign over [Lower, Upper] or
// solver.ErrBracketingFailed is returned.
func (s *StartingAssetSolver) Solve(p *Projection) (float64, error) {
	var runErr error
	f := func(scalar float64) float64 {
		if runErr != nil {
			return 0
		}
		res, err := p.Run(scalar)
		if err != nil {
			runErr = err
			return 0
		}
		return res.EndingSurplus
	}

	// The initial guess short-circuits the bracketed search when it is
	// already a root.
	if surplus := f(s.cfg.Guess); runErr == nil && math.Abs(surplus) <= s.cfg.Tolerance {
		return s.cfg.Guess, nil
	}
	if runErr != nil {
		return 0, runErr
	}

	brent := solver.NewBrent(s.cfg.MaxIter, s.cfg.Tolerance)
	root, err := brent.Solve(f, s.cfg.Lower, s.cfg.Upper)
	if runErr != nil {
		return 0, runErr
	}
	if err != nil {
		return 0, err
	}
	return root, nil
}
