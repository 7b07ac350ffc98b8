// Package core provides the domain types shared by every layer of the
// allocator.
//
// The types model resource contention with enzyme-kinetics vocabulary:
//
//   - Workload: one competitor for the shared pool, described by its current
//     load, capacity ceiling and half-saturation constant
//   - Strategy: the response-curve family used by the solver (Monod or Hill)
//   - Allocation: a solver result with per-workload amounts, achieved
//     velocities and solve metadata
//   - LoadShift / InsightReport: the interpretive view of an allocation
//
// The package has no behavior beyond construction, parsing and formatting;
// the response curves live in kinetics and the optimization in solver.
package core
