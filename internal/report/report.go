// Package report renders allocations, insight reports and kinetic sweeps for
// the terminal.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kinetiqd/kinetic-workload-allocator/pkg/core"
	"github.com/kinetiqd/kinetic-workload-allocator/pkg/kinetics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A78BFA")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#60A5FA"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	increaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	decreaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
)

// Allocation renders the allocation table: one row per workload with the
// current load, the allocated amount, the achieved velocity and the shift.
func Allocation(alloc core.Allocation, workloads []core.Workload) string {
	sorted := make([]core.Workload, len(workloads))
	copy(sorted, workloads)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	b.WriteString(titleStyle.Render("Allocation"))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-20s %12s %12s %12s %10s", "WORKLOAD", "CURRENT", "ALLOCATED", "VELOCITY", "SHIFT")))
	b.WriteString("\n")

	for _, w := range sorted {
		amount := alloc.Amounts[w.Name]
		delta := amount - w.CurrentLoad
		shift := fmt.Sprintf("%+.2f", delta)
		switch {
		case delta > 0:
			shift = increaseStyle.Render(shift)
		case delta < 0:
			shift = decreaseStyle.Render(shift)
		default:
			shift = mutedStyle.Render(shift)
		}
		b.WriteString(fmt.Sprintf("%-20s %12.4f %12.4f %12.4f %10s\n",
			w.Name, w.CurrentLoad, amount, alloc.Velocities[w.Name], shift))
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"total %.4f | objective %.4f | strategy gamma %.2f (effective %.2f) | iterations %d",
		alloc.Total(), alloc.Meta.Objective, alloc.Meta.RequestedGamma, alloc.Meta.EffectiveGamma, alloc.Meta.Iterations)))
	b.WriteString("\n")
	if alloc.Meta.FallbackUsed {
		b.WriteString(warnStyle.Render("solver did not converge; identity allocation returned"))
		b.WriteString("\n")
	}
	return b.String()
}

// Insights renders an insight report below its allocation.
func Insights(report core.InsightReport) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Insights"))
	b.WriteString("\n")
	if report.Caveat != "" {
		b.WriteString(warnStyle.Render("caveat: " + report.Caveat))
		b.WriteString("\n")
	}
	b.WriteString(report.Headline)
	b.WriteString("\n")
	for _, shift := range report.Shifts {
		line := "  " + shift.Summary
		switch shift.Direction {
		case core.ShiftIncreased:
			line = increaseStyle.Render(line)
		case core.ShiftDecreased:
			line = decreaseStyle.Render(line)
		default:
			line = mutedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Sweep renders the efficiency-curve matrix comparing the Monod baseline
// against the swept Hill exponents.
func Sweep(points []kinetics.SweepPoint, exponents []float64) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Efficiency curves: Hill vs Monod"))
	b.WriteString("\n")

	header := fmt.Sprintf("%10s %10s", "X", "MONOD")
	for _, n := range exponents {
		header += fmt.Sprintf(" %10s", fmt.Sprintf("HILL n=%.2f", n))
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, p := range points {
		row := fmt.Sprintf("%10.4f %10.4f", p.X, p.Monod)
		for _, v := range p.Hill {
			row += fmt.Sprintf(" %10.4f", v)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}
