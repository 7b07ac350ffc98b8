// Package validation checks workload lists before any optimization begins.
//
// Validation is two-tiered. Schema and bounds checks are fatal and fail
// fast: a list that fails them never reaches the solver. The load dispersion
// diagnostic is advisory only; it attaches warnings to the returned
// Diagnostics and never blocks allocation.
package validation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kinetiqd/kinetic-workload-allocator/pkg/core"
)

// minDispersionSamples is the smallest workload count at which the
// dispersion diagnostic is meaningful.
const minDispersionSamples = 3

// Options controls the advisory checks.
type Options struct {
	// DispersionSignificance is the p-value below which the dispersion
	// diagnostic attaches a warning. Zero disables the diagnostic.
	DispersionSignificance float64
}

// DefaultOptions returns the standard validation options.
func DefaultOptions() Options {
	return Options{DispersionSignificance: 0.05}
}

// Diagnostics carries the advisory findings of a validation pass.
type Diagnostics struct {
	// Warnings holds human-readable advisory messages. Never fatal.
	Warnings []string

	// DispersionChecked is true when the dispersion diagnostic ran.
	DispersionChecked bool
	// DispersionP is the two-sided p-value of the dispersion test. Only
	// meaningful when DispersionChecked is true.
	DispersionP float64
}

// Validate checks the workload list and returns advisory diagnostics.
//
// Fatal findings, in order of precedence: an empty list (ErrNoWorkloads),
// malformed records (*SchemaError: empty or duplicate names, non-finite
// fields), and inconsistent values (*BoundsError: negative current load,
// current load above max load, non-positive max load or Km). The first
// fatal finding is returned and nothing is optimized.
func Validate(workloads []core.Workload, opts Options) (*Diagnostics, error) {
	if len(workloads) == 0 {
		return nil, ErrNoWorkloads
	}

	seen := make(map[string]struct{}, len(workloads))
	for i, w := range workloads {
		if err := checkSchema(i, w, seen); err != nil {
			return nil, err
		}
		if err := checkBounds(w); err != nil {
			return nil, err
		}
	}

	diags := &Diagnostics{}
	if opts.DispersionSignificance > 0 {
		checkDispersion(workloads, opts.DispersionSignificance, diags)
	}
	return diags, nil
}

func checkSchema(i int, w core.Workload, seen map[string]struct{}) error {
	if w.Name == "" {
		return &SchemaError{Index: i, Field: "name", Reason: "is missing"}
	}
	if _, dup := seen[w.Name]; dup {
		return &SchemaError{Index: i, Workload: w.Name, Field: "name", Reason: "is not unique"}
	}
	seen[w.Name] = struct{}{}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"current_load", w.CurrentLoad},
		{"max_load", w.MaxLoad},
		{"k_m", w.Km},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &SchemaError{Index: i, Workload: w.Name, Field: f.name, Reason: "is not a finite number"}
		}
	}
	return nil
}

func checkBounds(w core.Workload) error {
	if w.MaxLoad <= 0 {
		return &BoundsError{Workload: w.Name, Field: "max_load", Value: w.MaxLoad, Reason: "must be > 0"}
	}
	if w.Km <= 0 {
		return &BoundsError{Workload: w.Name, Field: "k_m", Value: w.Km, Reason: "must be > 0"}
	}
	if w.CurrentLoad < 0 {
		return &BoundsError{Workload: w.Name, Field: "current_load", Value: w.CurrentLoad, Reason: "must be >= 0"}
	}
	if w.CurrentLoad > w.MaxLoad {
		return &BoundsError{
			Workload: w.Name,
			Field:    "current_load",
			Value:    w.CurrentLoad,
			Reason:   fmt.Sprintf("exceeds max_load %g", w.MaxLoad),
		}
	}
	return nil
}

// checkDispersion runs the variance-to-mean dispersion test on the current
// loads. Under a Poisson-like load distribution the index of dispersion
//
//	D = (n-1) * s^2 / mean
//
// follows a chi-squared distribution with n-1 degrees of freedom, so a
// two-sided p-value measures how far the sample departs from that reference;
// greater deviation yields a smaller p and a stronger warning. The check
// needs at least three workloads and a positive mean, and is skipped
// otherwise.
func checkDispersion(workloads []core.Workload, significance float64, diags *Diagnostics) {
	if len(workloads) < minDispersionSamples {
		return
	}

	loads := make([]float64, len(workloads))
	for i, w := range workloads {
		loads[i] = w.CurrentLoad
	}
	mean := stat.Mean(loads, nil)
	if mean <= 0 {
		return
	}
	variance := stat.Variance(loads, nil)

	n := float64(len(loads))
	d := (n - 1) * variance / mean
	chi := distuv.ChiSquared{K: n - 1}
	lower := chi.CDF(d)
	p := 2 * math.Min(lower, 1-lower)

	diags.DispersionChecked = true
	diags.DispersionP = p

	if p < significance {
		kind := "over"
		if variance < mean {
			kind = "under"
		}
		diags.Warnings = append(diags.Warnings, fmt.Sprintf(
			"current loads look %s-dispersed for a Poisson-like distribution (index of dispersion %.3g, p=%.3g)",
			kind, variance/mean, p))
	}
}
