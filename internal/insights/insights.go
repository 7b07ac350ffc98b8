// Package insights turns an allocation into an interpretive report.
//
// Generation is a pure function of the allocation, the configuration and the
// input workloads; it performs no numeric optimization of its own, so wording
// changes here can never affect allocator correctness.
package insights

import (
	"fmt"
	"math"
	"sort"

	"github.com/kinetiqd/kinetic-workload-allocator/pkg/config"
	"github.com/kinetiqd/kinetic-workload-allocator/pkg/core"
)

// Cooperativity regime thresholds on the Hill coefficient.
const (
	positiveCooperativityMin = 1.5
	negativeCooperativityMax = 1.0
)

// unchangedThresholdPct is the relative shift below which an allocation
// counts as unchanged, in percent.
const unchangedThresholdPct = 0.5

const fallbackCaveat = "solver did not converge; this report reflects the non-optimized identity allocation"

// Generate builds the insight report for an allocation. Shift entries are
// ordered by workload name, so identical inputs yield identical reports.
func Generate(alloc core.Allocation, cfg config.AllocatorConfig, workloads []core.Workload) core.InsightReport {
	report := core.InsightReport{
		Headline: headline(cfg),
		Shifts:   make([]core.LoadShift, 0, len(workloads)),
	}
	if alloc.Meta.FallbackUsed {
		report.Caveat = fallbackCaveat
	}

	sorted := make([]core.Workload, len(workloads))
	copy(sorted, workloads)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, w := range sorted {
		report.Shifts = append(report.Shifts, shift(w, alloc.Amounts[w.Name]))
	}
	return report
}

func headline(cfg config.AllocatorConfig) string {
	switch {
	case cfg.Strategy == core.StrategyHill && cfg.Gamma > positiveCooperativityMin:
		return fmt.Sprintf(
			"positive cooperativity (n=%.2f): allocation concentrates on high-affinity workloads, like oxygen binding to hemoglobin",
			cfg.Gamma)
	case cfg.Strategy == core.StrategyHill && cfg.Gamma < negativeCooperativityMax:
		return fmt.Sprintf(
			"negative cooperativity (n=%.2f): allocation spreads more evenly than the Monod baseline, favoring redundancy",
			cfg.Gamma)
	default:
		return fmt.Sprintf("standard saturation kinetics (%s, gamma=%.2f)", cfg.Strategy, cfg.Gamma)
	}
}

func shift(w core.Workload, allocated float64) core.LoadShift {
	// A workload starting from zero has no meaningful relative change;
	// the summary reports the absolute gain and Percent stays zero so the
	// report remains JSON-encodable.
	if w.CurrentLoad == 0 {
		if allocated > 0 {
			return core.LoadShift{
				Workload:  w.Name,
				Direction: core.ShiftIncreased,
				Summary:   fmt.Sprintf("%s: increased from zero to %.4g", w.Name, allocated),
			}
		}
		return core.LoadShift{
			Workload:  w.Name,
			Direction: core.ShiftUnchanged,
			Summary:   fmt.Sprintf("%s: unchanged", w.Name),
		}
	}

	pct := 100 * (allocated - w.CurrentLoad) / w.CurrentLoad
	switch {
	case math.Abs(pct) < unchangedThresholdPct:
		return core.LoadShift{
			Workload:  w.Name,
			Direction: core.ShiftUnchanged,
			Summary:   fmt.Sprintf("%s: unchanged", w.Name),
		}
	case pct > 0:
		return core.LoadShift{
			Workload:  w.Name,
			Direction: core.ShiftIncreased,
			Percent:   pct,
			Summary:   fmt.Sprintf("%s: increased by %.1f%%", w.Name, pct),
		}
	default:
		return core.LoadShift{
			Workload:  w.Name,
			Direction: core.ShiftDecreased,
			Percent:   pct,
			Summary:   fmt.Sprintf("%s: decreased by %.1f%%", w.Name, -pct),
		}
	}
}
