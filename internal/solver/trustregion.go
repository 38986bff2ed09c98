package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hjkrause/alm-engine/pkg/logger"
)

// rhoEps guards the predicted-reduction denominator against division by
// near-zero.
const rhoEps = 1e-8

// TrustRegionConfig parameterizes the trust-region solver. Zero values
// select the defaults.
type TrustRegionConfig struct {
	MaxIter       int     // default 100
	InitialRadius float64 // default 1.0
	Eta           float64 // acceptance threshold, default 0.1
	Tolerance     float64 // gradient-norm stop, default 1e-4
}

func (c TrustRegionConfig) withDefaults() TrustRegionConfig {
	if c.MaxIter <= 0 {
		c.MaxIter = 100
	}
	if c.InitialRadius <= 0 {
		c.InitialRadius = 1.0
	}
	if c.Eta <= 0 {
		c.Eta = 0.1
	}
	if c.Tolerance <= 0 {
		c.Tolerance = 1e-4
	}
	return c
}

// TrustRegion minimizes a black-box objective with a dogleg trust-region
// method over finite-difference derivatives. Trial points are projected
// onto all constraints before evaluation.
type TrustRegion struct {
	constraints []Constraint
	cfg         TrustRegionConfig
	log         *logger.Logger
}

// NewTrustRegion builds the solver. A nil log discards diagnostics.
func NewTrustRegion(constraints []Constraint, cfg TrustRegionConfig, log *logger.Logger) *TrustRegion {
	if log == nil {
		log = logger.Nop()
	}
	return &TrustRegion{constraints: constraints, cfg: cfg.withDefaults(), log: log}
}

// Solve iterates until the gradient norm falls below the tolerance or the
// iteration cap is hit.
func (s *TrustRegion) Solve(f Objective, x0 []float64) Results {
	x := cloneVec(x0)
	fx := f(x)
	delta := s.cfg.InitialRadius

	for iter := 0; iter < s.cfg.MaxIter; iter++ {
		grad, hess := gradientAndHessian(f, x, fx)

		if floats.Norm(grad, 2) < s.cfg.Tolerance {
			return Results{X: x, Objective: fx, Iterations: iter + 1, Converged: true}
		}

		p := doglegStep(grad, hess, delta)

		xTrial := make([]float64, len(x))
		floats.AddTo(xTrial, x, p)
		for _, c := range s.constraints {
			c.Project(xTrial)
		}

		fxTrial := f(xTrial)

		// rho compares the actual reduction to the quadratic model's
		// prediction.
		pVec := mat.NewVecDense(len(p), p)
		hp := mat.NewVecDense(len(p), nil)
		hp.MulVec(hess, pVec)
		predicted := -floats.Dot(grad, p) - 0.5*mat.Dot(pVec, hp)
		rho := (fx - fxTrial) / (predicted + rhoEps)

		if rho > s.cfg.Eta {
			x = xTrial
			fx = fxTrial
		}

		delta *= adjustRadius(rho, delta)

		s.log.Debugf("trust region iter %d: fx=%g radius=%g rho=%g", iter, fx, delta, rho)
	}

	return Results{X: x, Objective: fx, Iterations: s.cfg.MaxIter, Converged: false}
}

// gradientAndHessian computes the forward-difference gradient and the
// symmetric forward-difference Hessian at x, reusing the single-bump
// evaluations between the two stencils.
func gradientAndHessian(f Objective, x []float64, fx float64) ([]float64, *mat.SymDense) {
	n := len(x)
	grad := make([]float64, n)
	bumped := make([]float64, n) // f(x + h e_i)
	probe := make([]float64, n)

	for i := 0; i < n; i++ {
		copy(probe, x)
		probe[i] += fdStep
		bumped[i] = f(probe)
		grad[i] = (bumped[i] - fx) / fdStep
	}

	hess := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			copy(probe, x)
			probe[i] += fdStep
			probe[j] += fdStep
			fij := f(probe)

			hij := (fij - bumped[i] - bumped[j] + fx) / (fdStep * fdStep)
			hess.SetSym(i, j, hij)
		}
	}
	return grad, hess
}

// doglegStep returns the minimizer of the local quadratic model within
// radius delta: the Newton step when it fits, the clipped Cauchy step
// when even steepest descent leaves the region, and the blend on the
// dogleg path otherwise. A Hessian that fails to factorize falls back to
// the Cauchy branch.
func doglegStep(grad []float64, hess *mat.SymDense, delta float64) []float64 {
	n := len(grad)
	gVec := mat.NewVecDense(n, grad)

	hg := mat.NewVecDense(n, nil)
	hg.MulVec(hess, gVec)
	gHg := mat.Dot(gVec, hg)

	// Cauchy (unconstrained steepest-descent) step.
	pU := make([]float64, n)
	if gHg != 0 {
		scale := -floats.Dot(grad, grad) / gHg
		floats.AddScaled(pU, scale, grad)
	}

	// Newton step via Cholesky.
	var chol mat.Cholesky
	if chol.Factorize(hess) {
		pNVec := mat.NewVecDense(n, nil)
		if err := chol.SolveVecTo(pNVec, gVec); err == nil {
			pN := make([]float64, n)
			for i := 0; i < n; i++ {
				pN[i] = -pNVec.AtVec(i)
			}

			if floats.Norm(pN, 2) <= delta {
				return pN // full Newton step
			}
			if nu := floats.Norm(pU, 2); nu < delta {
				// Blend along the dogleg: solve |pU + tau (pN - pU)| = delta.
				diff := make([]float64, n)
				floats.SubTo(diff, pN, pU)
				a := floats.Dot(diff, diff)
				b := 2 * floats.Dot(pU, diff)
				c := floats.Dot(pU, pU) - delta*delta
				tau := (-b + math.Sqrt(b*b-4*a*c)) / (2 * a)

				p := make([]float64, n)
				floats.AddScaledTo(p, pU, tau, diff)
				return p
			}
		}
	}

	// Steepest descent clipped to the region (also the non-SPD fallback).
	if nu := floats.Norm(pU, 2); nu > delta {
		floats.Scale(delta/nu, pU)
	}
	return pU
}

// adjustRadius returns the multiplicative radius update: shrink on poor
// agreement, grow on strong agreement while the radius is below 10.
func adjustRadius(rho, delta float64) float64 {
	if rho < 0.25 {
		return 0.25
	}
	if rho > 0.75 && delta < 10.0 {
		return 2.0
	}
	return 1.0
}
