package solver

import "math"

// Brent finds a root of a scalar function on a sign-changing bracket using
// Brent's method: inverse quadratic interpolation and the secant method
// with a bisection fallback.
type Brent struct {
	maxIter int
	tol     float64
}

// NewBrent builds a solver. Non-positive arguments select the defaults
// (100 iterations, 1e-6).
func NewBrent(maxIter int, tol float64) *Brent {
	if maxIter <= 0 {
		maxIter = 100
	}
	if tol <= 0 {
		tol = 1e-6
	}
	return &Brent{maxIter: maxIter, tol: tol}
}

// Solve returns x in [lower, upper] with f(x) ~ 0. The bracket must
// change sign or ErrBracketingFailed is returned. When the iteration cap
// is reached the best estimate so far is returned.
func (s *Brent) Solve(f func(float64) float64, lower, upper float64) (float64, error) {
	const eps = 2.220446049250313e-16 // machine epsilon for float64

	a, b := lower, upper
	fa, fb := f(a), f(b)

	if fa*fb > 0 {
		return 0, ErrBracketingFailed
	}

	c, fc := a, fa
	d := b - a
	e := d

	for iter := 0; iter < s.maxIter; iter++ {
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*eps*math.Abs(b) + 0.5*s.tol
		m := 0.5 * (c - b)

		if math.Abs(m) <= tol1 || fb == 0 {
			return b, nil
		}

		if math.Abs(e) < tol1 || math.Abs(fa) <= math.Abs(fb) {
			// Interpolation is not trustworthy; bisect.
			d, e = m, m
		} else {
			var p, q float64
			if a == c {
				// Secant method
				t := fb / fa
				p = 2 * m * t
				q = 1 - t
			} else {
				// Inverse quadratic interpolation
				r := fb / fc
				t := fb / fa
				p = t * (2*m*r*(r-t) - (b-a)*(t-1))
				q = (r - 1) * (t - 1) * (r - t)
			}

			if p > 0 {
				q = -q
			}
			p = math.Abs(p)

			if 2*p < math.Min(3*m*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d, e = m, m
			}
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else if m > 0 {
			b += tol1
		} else {
			b -= tol1
		}
		fb = f(b)

		if (fb > 0 && fc > 0) || (fb < 0 && fc < 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
	}

	return b, nil // iteration cap reached; best estimate
}
