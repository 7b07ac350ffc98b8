// Package solver computes kinetic throughput-maximizing allocations.
//
// Given a validated workload list, the solver redistributes the existing
// total load B = sum of current loads to maximize the aggregate velocity
//
//	F(x) = sum_i V_i(x_i)
//
// subject to conservation sum(x) = B and per-workload box bounds
// 0 <= x_i <= max_load_i. V_i is the Monod or Hill curve selected by the
// allocator configuration.
//
// The search minimizes -F plus a quadratic conservation penalty with a
// quasi-Newton method (L-BFGS). Box bounds are enforced through a logistic
// reparameterization x_i = max_load_i * sigmoid(z_i), so the optimizer runs
// unconstrained in z and the iterates stay strictly inside the box. The
// conservation residual left over by the penalty is removed by a final
// proportional rescale inside the bounds.
//
// A solver failure never surfaces as an error: the attempt is retried once
// from an equal-split start, and if that fails too the identity allocation
// (current loads) is returned with FallbackUsed set in the metadata.
package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kinetiqd/kinetic-workload-allocator/pkg/config"
	"github.com/kinetiqd/kinetic-workload-allocator/pkg/core"
	"github.com/kinetiqd/kinetic-workload-allocator/pkg/kinetics"
)

// minHillExponent is the lower clip on the Hill coefficient handed to the
// optimizer; the upper clip comes from the solver spec.
const minHillExponent = 1e-3

// Solver allocates resource across workloads for one fixed configuration.
// It is stateless between calls and safe for concurrent use.
type Solver struct {
	cfg  config.AllocatorConfig
	spec config.SolverSpec
}

// New validates the configuration and returns a Solver.
func New(cfg config.AllocatorConfig, spec config.SolverSpec) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Solver{cfg: cfg, spec: spec}, nil
}

// Allocate redistributes the workloads' total current load and returns the
// resulting allocation. The input must have passed validation; in particular
// every current load is within its workload's bounds, so the conservation
// target is always attainable. Allocate does not fail: non-convergence
// degrades to the identity allocation and is reported via the metadata.
func (s *Solver) Allocate(workloads []core.Workload) core.Allocation {
	km, hillN, effGamma := s.kineticParams(workloads)
	meta := core.AllocationMeta{
		RequestedGamma: s.cfg.Gamma,
		EffectiveGamma: effGamma,
	}

	n := len(workloads)
	if n == 0 {
		return s.finish(workloads, nil, km, hillN, meta)
	}

	bounds := make([]float64, n)
	current := make([]float64, n)
	for i, w := range workloads {
		bounds[i] = w.MaxLoad
		current[i] = w.CurrentLoad
	}
	budget := floats.Sum(current)

	if n == 1 {
		meta.Converged = true
		return s.finish(workloads, []float64{math.Min(budget, bounds[0])}, km, hillN, meta)
	}
	if budget == 0 {
		meta.Converged = true
		return s.finish(workloads, make([]float64, n), km, hillN, meta)
	}

	x, iters, ok := s.attempt(bounds, km, hillN, budget, current)
	meta.Iterations = iters
	if !ok {
		equal := make([]float64, n)
		for i := range equal {
			equal[i] = math.Min(budget/float64(n), bounds[i])
		}
		var retryIters int
		x, retryIters, ok = s.attempt(bounds, km, hillN, budget, equal)
		meta.Iterations += retryIters
	}

	if ok {
		meta.Converged = true
		rescaleToBudget(x, bounds, budget, s.spec.ConservationTol)
	} else {
		// Identity allocation: keep every workload at its current load.
		x = make([]float64, n)
		for i := range x {
			x[i] = math.Min(current[i], bounds[i])
		}
		meta.FallbackUsed = true
	}
	return s.finish(workloads, x, km, hillN, meta)
}

// kineticParams maps the allocator configuration onto per-workload
// half-saturation constants and a Hill exponent. Monod solves at n=1 with
// gamma folded into km; Hill solves at n=gamma clipped into
// [minHillExponent, HillExponentCeiling] while the requested gamma is
// preserved in the metadata.
func (s *Solver) kineticParams(workloads []core.Workload) (km []float64, hillN, effGamma float64) {
	km = make([]float64, len(workloads))
	switch s.cfg.Strategy {
	case core.StrategyHill:
		for i, w := range workloads {
			km[i] = w.Km
		}
		hillN = math.Min(math.Max(s.cfg.Gamma, minHillExponent), s.spec.HillExponentCeiling)
		return km, hillN, hillN
	default:
		for i, w := range workloads {
			km[i] = w.Km / s.cfg.Gamma
		}
		return km, 1, s.cfg.Gamma
	}
}

// finish assembles the Allocation from the decision vector.
func (s *Solver) finish(workloads []core.Workload, x []float64, km []float64, hillN float64, meta core.AllocationMeta) core.Allocation {
	amounts := make(map[string]float64, len(workloads))
	velocities := make(map[string]float64, len(workloads))
	for i, w := range workloads {
		v := kinetics.HillVelocity(x[i], w.MaxLoad, km[i], hillN)
		amounts[w.Name] = x[i]
		velocities[w.Name] = v
		meta.Objective += v
	}
	return core.Allocation{Amounts: amounts, Velocities: velocities, Meta: meta}
}
