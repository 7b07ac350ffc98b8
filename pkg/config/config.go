// Package config defines the allocator and solver configuration surface and
// its validation, plus the viper wiring used by the CLI.
package config

import (
	"fmt"
	"math"

	"github.com/kinetiqd/kinetic-workload-allocator/pkg/core"
)

// Default solver settings.
const (
	// DefaultMaxIterations caps solver iterations per attempt. A safety
	// bound, not a wall-clock timeout.
	DefaultMaxIterations = 200
	// DefaultPenaltyWeight is the weight of the quadratic conservation
	// penalty term.
	DefaultPenaltyWeight = 1000.0
	// DefaultConservationTol is the relative tolerance on the conservation
	// constraint |sum(x) - B| <= tol * B of the published allocation.
	DefaultConservationTol = 1e-6
	// DefaultHillExponentCeiling caps the Hill coefficient handed to the
	// solver. Larger requested gammas are solved at the ceiling while the
	// requested value is preserved in the allocation metadata.
	DefaultHillExponentCeiling = 20.0
	// DefaultGradientTol is the gradient-norm threshold at which an attempt
	// counts as converged.
	DefaultGradientTol = 1e-6
)

// AllocatorConfig selects the kinetic model for one allocation call. It is
// immutable per request; concurrent allocations may share a value freely.
type AllocatorConfig struct {
	Strategy core.Strategy `json:"strategy" yaml:"strategy"`

	// Gamma tunes the selected strategy. For StrategyMonod it rescales the
	// half-saturation constant (km' = km/gamma); for StrategyHill it is the
	// Hill coefficient n. Must be > 0.
	Gamma float64 `json:"gamma" yaml:"gamma"`
}

// Validate checks the configuration for usable values.
func (c AllocatorConfig) Validate() error {
	switch c.Strategy {
	case core.StrategyMonod, core.StrategyHill:
	default:
		return fmt.Errorf("unknown strategy %d", int(c.Strategy))
	}
	if math.IsNaN(c.Gamma) || math.IsInf(c.Gamma, 0) {
		return fmt.Errorf("gamma must be finite, got %v", c.Gamma)
	}
	if c.Gamma <= 0 {
		return fmt.Errorf("gamma must be > 0, got %g", c.Gamma)
	}
	return nil
}

// SolverSpec carries the numerical settings of the allocation solver.
// The zero value is not usable; start from DefaultSolverSpec.
type SolverSpec struct {
	MaxIterations       int     `json:"max_iterations" yaml:"max_iterations"`
	PenaltyWeight       float64 `json:"penalty_weight" yaml:"penalty_weight"`
	ConservationTol     float64 `json:"conservation_tol" yaml:"conservation_tol"`
	HillExponentCeiling float64 `json:"hill_exponent_ceiling" yaml:"hill_exponent_ceiling"`
	GradientTol         float64 `json:"gradient_tol" yaml:"gradient_tol"`
}

// DefaultSolverSpec returns the default solver settings.
func DefaultSolverSpec() SolverSpec {
	return SolverSpec{
		MaxIterations:       DefaultMaxIterations,
		PenaltyWeight:       DefaultPenaltyWeight,
		ConservationTol:     DefaultConservationTol,
		HillExponentCeiling: DefaultHillExponentCeiling,
		GradientTol:         DefaultGradientTol,
	}
}

// Validate checks the spec for usable values.
func (s SolverSpec) Validate() error {
	if s.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be > 0, got %d", s.MaxIterations)
	}
	if s.PenaltyWeight <= 0 {
		return fmt.Errorf("penalty_weight must be > 0, got %g", s.PenaltyWeight)
	}
	if s.ConservationTol <= 0 || s.ConservationTol >= 1 {
		return fmt.Errorf("conservation_tol must be in (0, 1), got %g", s.ConservationTol)
	}
	if s.HillExponentCeiling <= 0 {
		return fmt.Errorf("hill_exponent_ceiling must be > 0, got %g", s.HillExponentCeiling)
	}
	if s.GradientTol <= 0 {
		return fmt.Errorf("gradient_tol must be > 0, got %g", s.GradientTol)
	}
	return nil
}
