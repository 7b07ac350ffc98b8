package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetiqd/kinetic-workload-allocator/pkg/core"
	"github.com/kinetiqd/kinetic-workload-allocator/pkg/kinetics"
)

func TestAllocationRender(t *testing.T) {
	workloads := []core.Workload{
		{Name: "web", CurrentLoad: 1.5, MaxLoad: 5, Km: 1},
		{Name: "batch", CurrentLoad: 2.2, MaxLoad: 4, Km: 0.5},
	}
	alloc := core.Allocation{
		Amounts:    map[string]float64{"web": 1.7, "batch": 2.0},
		Velocities: map[string]float64{"web": 3.1, "batch": 3.2},
		Meta: core.AllocationMeta{
			Converged:      true,
			Iterations:     42,
			Objective:      6.3,
			RequestedGamma: 1.8,
			EffectiveGamma: 1.8,
		},
	}

	out := Allocation(alloc, workloads)
	assert.Contains(t, out, "Allocation")
	assert.Contains(t, out, "WORKLOAD")
	assert.Contains(t, out, "web")
	assert.Contains(t, out, "batch")
	assert.Contains(t, out, "1.7000")
	assert.Contains(t, out, "iterations 42")
	assert.NotContains(t, out, "did not converge")

	// Rows come out sorted by name.
	assert.Less(t, strings.Index(out, "batch"), strings.Index(out, "web"))
}

func TestAllocationRenderFallback(t *testing.T) {
	workloads := []core.Workload{{Name: "solo", CurrentLoad: 1, MaxLoad: 5, Km: 1}}
	alloc := core.Allocation{
		Amounts:    map[string]float64{"solo": 1},
		Velocities: map[string]float64{"solo": 2.5},
		Meta:       core.AllocationMeta{FallbackUsed: true},
	}
	out := Allocation(alloc, workloads)
	assert.Contains(t, out, "did not converge")
}

func TestInsightsRender(t *testing.T) {
	report := core.InsightReport{
		Headline: "positive cooperativity (n=1.80)",
		Caveat:   "solver did not converge",
		Shifts: []core.LoadShift{
			{Workload: "a", Direction: core.ShiftIncreased, Summary: "a: increased by 12.0%"},
			{Workload: "b", Direction: core.ShiftUnchanged, Summary: "b: unchanged"},
		},
	}
	out := Insights(report)
	assert.Contains(t, out, "Insights")
	assert.Contains(t, out, "caveat: solver did not converge")
	assert.Contains(t, out, "positive cooperativity")
	assert.Contains(t, out, "a: increased by 12.0%")
	assert.Contains(t, out, "b: unchanged")
}

func TestSweepRender(t *testing.T) {
	exponents := []float64{0.5, 2}
	points := kinetics.Sweep(0.1, 4, 5, 4, 1, exponents)
	require.NotNil(t, points)

	out := Sweep(points, exponents)
	assert.Contains(t, out, "MONOD")
	assert.Contains(t, out, "HILL n=0.50")
	assert.Contains(t, out, "HILL n=2.00")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), len(points)+2)
}

func TestWriteSweepCSV(t *testing.T) {
	exponents := []float64{0.5, 2}
	points := kinetics.Sweep(1, 2, 2, 4, 1, exponents)
	require.Len(t, points, 2)

	var b strings.Builder
	require.NoError(t, WriteSweepCSV(&b, points, exponents))

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "x,monod,hill_n_0.50,hill_n_2.00", lines[0])

	first := strings.Split(lines[1], ",")
	require.Len(t, first, 4)
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "2", first[1]) // monod at x=km is vmax/2
}
