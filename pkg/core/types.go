package core

import "fmt"

// Workload describes one competitor for the shared resource pool using
// enzyme-kinetics parameters. A Workload is a plain value: it is constructed
// by the caller before each allocation call and carries no identity across
// calls.
type Workload struct {
	// Name uniquely identifies the workload within a single allocation call.
	Name string `json:"name" yaml:"name"`

	// CurrentLoad is the resource level presently assigned to the workload
	// (the substrate concentration in the kinetic analogy). Must be >= 0 and
	// must not exceed MaxLoad.
	CurrentLoad float64 `json:"current_load" yaml:"current_load"`

	// MaxLoad is the saturation ceiling: the maximum attainable throughput
	// and simultaneously the upper bound on the allocated amount. Must be > 0.
	MaxLoad float64 `json:"max_load" yaml:"max_load"`

	// Km is the half-saturation constant. The workload reaches half of its
	// maximum throughput when its resource level equals Km; a lower Km means
	// a higher affinity for the resource. Must be > 0.
	Km float64 `json:"k_m" yaml:"k_m"`
}

// Strategy selects the kinetic response curve used by the allocator.
type Strategy int

// enumeration of Strategy
const (
	// StrategyMonod uses Michaelis-Menten (Monod) saturation kinetics.
	// Gamma rescales the half-saturation constant: km' = km / gamma.
	StrategyMonod Strategy = iota
	// StrategyHill uses the Hill equation, with gamma as the Hill
	// coefficient n. n=1 reduces to Monod, n>1 models positive
	// cooperativity, 0<n<1 negative cooperativity.
	StrategyHill
)

// String returns the canonical lowercase name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyMonod:
		return "monod"
	case StrategyHill:
		return "hill"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy maps a strategy name to its Strategy value.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "monod":
		return StrategyMonod, nil
	case "hill":
		return StrategyHill, nil
	}
	return 0, fmt.Errorf("unknown strategy %q, use %q or %q", name, StrategyMonod, StrategyHill)
}

// AllocationMeta reports how the allocation was obtained.
type AllocationMeta struct {
	// Converged is true when the solver terminated at a stationary point
	// within its iteration budget.
	Converged bool `json:"converged"`

	// Iterations is the total number of solver iterations spent, summed
	// over restarts.
	Iterations int `json:"iterations"`

	// Objective is the aggregate kinetic throughput of the returned
	// allocation, sum over workloads of V_i(x_i).
	Objective float64 `json:"objective_value"`

	// FallbackUsed is true when the solver failed twice and the identity
	// allocation (current loads clipped to bounds) was returned instead.
	FallbackUsed bool `json:"fallback_used"`

	// RequestedGamma echoes the gamma the caller asked for.
	RequestedGamma float64 `json:"requested_gamma"`

	// EffectiveGamma is the gamma actually used by the solver. It differs
	// from RequestedGamma only when a Hill exponent was clipped to the
	// configured ceiling for numerical stability.
	EffectiveGamma float64 `json:"effective_gamma"`
}

// Allocation is the result of one allocation call.
type Allocation struct {
	// Amounts maps workload name to the allocated amount, each within
	// [0, MaxLoad] for that workload.
	Amounts map[string]float64 `json:"amounts"`

	// Velocities maps workload name to the kinetic throughput achieved at
	// the allocated amount. Summing Velocities yields Meta.Objective.
	Velocities map[string]float64 `json:"velocities"`

	Meta AllocationMeta `json:"meta"`
}

// Total returns the sum of allocated amounts.
func (a Allocation) Total() float64 {
	var total float64
	for _, amount := range a.Amounts {
		total += amount
	}
	return total
}

// ShiftDirection classifies how an allocated amount moved relative to the
// workload's current load.
type ShiftDirection int

// enumeration of ShiftDirection
const (
	ShiftUnchanged ShiftDirection = iota
	ShiftIncreased
	ShiftDecreased
)

// String returns the lowercase name of the direction.
func (d ShiftDirection) String() string {
	switch d {
	case ShiftUnchanged:
		return "unchanged"
	case ShiftIncreased:
		return "increased"
	case ShiftDecreased:
		return "decreased"
	}
	return fmt.Sprintf("shift(%d)", int(d))
}

// LoadShift describes the rebalancing of a single workload.
type LoadShift struct {
	Workload  string         `json:"workload"`
	Direction ShiftDirection `json:"-"`
	// Percent is the relative change of the allocated amount versus the
	// current load, in percent. Always finite: zero when Direction is
	// ShiftUnchanged and when the workload started from zero load, where
	// Summary carries the absolute gain instead.
	Percent float64 `json:"percent"`
	// Summary is the human-readable one-line description of the shift.
	Summary string `json:"summary"`
}

// InsightReport is the interpretive companion to an Allocation.
type InsightReport struct {
	// Headline names the cooperativity regime of the configuration.
	Headline string `json:"headline"`
	// Caveat is non-empty when the allocation was produced by the fallback
	// path rather than the optimizer.
	Caveat string `json:"caveat,omitempty"`
	// Shifts holds one entry per workload, ordered by workload name.
	Shifts []LoadShift `json:"shifts"`
}
