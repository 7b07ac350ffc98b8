package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/kinetiqd/kinetic-workload-allocator/pkg/kinetics"
)

// boundMargin keeps starting points strictly inside the box: starting
// fractions are clipped into [boundMargin, 1-boundMargin] before the logit.
const boundMargin = 1e-4

// attempt runs one L-BFGS minimization of the penalized objective from the
// given starting allocation. It reports the decision vector, the number of
// major iterations spent, and whether the run converged.
func (s *Solver) attempt(bounds, km []float64, hillN, budget float64, start []float64) ([]float64, int, bool) {
	z0 := make([]float64, len(start))
	for i := range start {
		f := start[i] / bounds[i]
		f = math.Min(math.Max(f, boundMargin), 1-boundMargin)
		z0[i] = math.Log(f / (1 - f))
	}

	problem := optimize.Problem{
		Func: func(z []float64) float64 {
			return s.penalized(z, bounds, km, hillN, budget)
		},
		Grad: func(grad, z []float64) {
			s.penalizedGrad(grad, z, bounds, km, hillN, budget)
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   s.spec.MaxIterations,
		GradientThreshold: s.spec.GradientTol,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 10,
		},
	}

	result, err := optimize.Minimize(problem, z0, settings, &optimize.LBFGS{})
	if result == nil {
		return nil, 0, false
	}
	iters := result.Stats.MajorIterations
	if err != nil {
		return nil, iters, false
	}
	switch result.Status {
	case optimize.GradientThreshold, optimize.FunctionConvergence:
	default:
		// Iteration caps and line-search trouble both land here; the caller
		// decides whether to restart or fall back.
		return nil, iters, false
	}

	x := fromLatent(result.X, bounds)
	for _, xi := range x {
		if math.IsNaN(xi) {
			return nil, iters, false
		}
	}
	return x, iters, true
}

// penalized evaluates -F(x) + w*(sum(x)-B)^2 at the latent point z.
func (s *Solver) penalized(z, bounds, km []float64, hillN, budget float64) float64 {
	x := fromLatent(z, bounds)
	excess := floats.Sum(x) - budget

	obj := s.spec.PenaltyWeight * excess * excess
	for i := range x {
		obj -= kinetics.HillVelocity(x[i], bounds[i], km[i], hillN)
	}
	return obj
}

// penalizedGrad writes the gradient of the penalized objective with respect
// to z into grad. With x_i = u_i*sigmoid(z_i), dx_i/dz_i = x_i*(1-sigmoid(z_i)).
func (s *Solver) penalizedGrad(grad, z []float64, bounds, km []float64, hillN, budget float64) {
	x := fromLatent(z, bounds)
	excess := floats.Sum(x) - budget
	penaltySlope := 2 * s.spec.PenaltyWeight * excess

	for i := range z {
		sig := sigmoid(z[i])
		dxdz := x[i] * (1 - sig)
		grad[i] = (penaltySlope - kinetics.HillSlope(x[i], bounds[i], km[i], hillN)) * dxdz
	}
}

// fromLatent maps the unconstrained latent vector onto the box.
func fromLatent(z, bounds []float64) []float64 {
	x := make([]float64, len(z))
	for i := range z {
		x[i] = bounds[i] * sigmoid(z[i])
	}
	return x
}

// sigmoid evaluates the logistic function without overflowing for large |z|.
func sigmoid(z float64) float64 {
	if z >= 0 {
		e := math.Exp(-z)
		return 1 / (1 + e)
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// rescaleToBudget proportionally adjusts x so that sum(x) matches the budget
// within tol*budget, without leaving the box. Shrinking is a single uniform
// scale; growing distributes the shortfall over entries with headroom,
// iterating because entries may saturate along the way. Requires
// budget <= sum(bounds), which validation guarantees.
func rescaleToBudget(x, bounds []float64, budget, tol float64) {
	if budget <= 0 {
		for i := range x {
			x[i] = 0
		}
		return
	}
	const eps = 1e-12
	for iter := 0; iter < 64; iter++ {
		total := floats.Sum(x)
		if math.Abs(total-budget) <= tol*budget {
			return
		}
		if total > budget {
			floats.Scale(budget/total, x)
			return
		}

		var capped, free float64
		for i := range x {
			if x[i] >= bounds[i]-eps {
				capped += x[i]
			} else {
				free += x[i]
			}
		}
		remaining := budget - capped
		if free > 0 {
			factor := remaining / free
			for i := range x {
				if x[i] < bounds[i]-eps {
					x[i] = math.Min(x[i]*factor, bounds[i])
				}
			}
			continue
		}

		// Every unsaturated entry is at zero; spread the remainder evenly
		// across them instead of scaling.
		var open int
		for i := range x {
			if x[i] < bounds[i]-eps {
				open++
			}
		}
		if open == 0 {
			return
		}
		share := remaining / float64(open)
		for i := range x {
			if x[i] < bounds[i]-eps {
				x[i] = math.Min(share, bounds[i])
			}
		}
	}
}
