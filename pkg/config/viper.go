package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/kinetiqd/kinetic-workload-allocator/pkg/core"
)

// Viper keys used by the CLI.
const (
	KeyStrategy               = "allocator.strategy"
	KeyGamma                  = "allocator.gamma"
	KeyMaxIterations          = "solver.max_iterations"
	KeyPenaltyWeight          = "solver.penalty_weight"
	KeyConservationTol        = "solver.conservation_tol"
	KeyHillExponentCeiling    = "solver.hill_exponent_ceiling"
	KeyGradientTol            = "solver.gradient_tol"
	KeyDispersionSignificance = "validation.dispersion_significance"
	KeyLogLevel               = "log.level"
)

// DefaultDispersionSignificance is the p-value below which the load
// dispersion diagnostic attaches a warning.
const DefaultDispersionSignificance = 0.05

// SetDefaults registers default values with viper.
func SetDefaults() {
	spec := DefaultSolverSpec()
	viper.SetDefault(KeyStrategy, core.StrategyHill.String())
	viper.SetDefault(KeyGamma, 1.8)
	viper.SetDefault(KeyMaxIterations, spec.MaxIterations)
	viper.SetDefault(KeyPenaltyWeight, spec.PenaltyWeight)
	viper.SetDefault(KeyConservationTol, spec.ConservationTol)
	viper.SetDefault(KeyHillExponentCeiling, spec.HillExponentCeiling)
	viper.SetDefault(KeyGradientTol, spec.GradientTol)
	viper.SetDefault(KeyDispersionSignificance, DefaultDispersionSignificance)
	viper.SetDefault(KeyLogLevel, "info")
}

// AllocatorFromViper assembles and validates an AllocatorConfig from the
// current viper state.
func AllocatorFromViper() (AllocatorConfig, error) {
	strategy, err := core.ParseStrategy(viper.GetString(KeyStrategy))
	if err != nil {
		return AllocatorConfig{}, err
	}
	cfg := AllocatorConfig{
		Strategy: strategy,
		Gamma:    viper.GetFloat64(KeyGamma),
	}
	if err := cfg.Validate(); err != nil {
		return AllocatorConfig{}, fmt.Errorf("allocator config: %w", err)
	}
	return cfg, nil
}

// SolverSpecFromViper assembles and validates a SolverSpec from the current
// viper state.
func SolverSpecFromViper() (SolverSpec, error) {
	spec := SolverSpec{
		MaxIterations:       viper.GetInt(KeyMaxIterations),
		PenaltyWeight:       viper.GetFloat64(KeyPenaltyWeight),
		ConservationTol:     viper.GetFloat64(KeyConservationTol),
		HillExponentCeiling: viper.GetFloat64(KeyHillExponentCeiling),
		GradientTol:         viper.GetFloat64(KeyGradientTol),
	}
	if err := spec.Validate(); err != nil {
		return SolverSpec{}, fmt.Errorf("solver spec: %w", err)
	}
	return spec, nil
}
