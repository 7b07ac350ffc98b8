package validation

import (
	"errors"
	"fmt"
)

// ErrNoWorkloads is returned when an empty workload list is supplied.
var ErrNoWorkloads = errors.New("no workloads supplied")

// SchemaError reports a malformed workload record: a missing or unusable
// field, or a duplicate name. It is fatal and not retryable.
type SchemaError struct {
	// Index is the position of the offending workload in the input list.
	Index int
	// Workload is the workload name when one was present.
	Workload string
	Field    string
	Reason   string
}

func (e *SchemaError) Error() string {
	if e.Workload != "" {
		return fmt.Sprintf("workload %q: field %s %s", e.Workload, e.Field, e.Reason)
	}
	return fmt.Sprintf("workload at index %d: field %s %s", e.Index, e.Field, e.Reason)
}

// BoundsError reports a workload whose numeric fields are inconsistent with
// the kinetic model. It is fatal and names the offending workload.
type BoundsError struct {
	Workload string
	Field    string
	Value    float64
	Reason   string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("workload %q: %s = %g %s", e.Workload, e.Field, e.Value, e.Reason)
}
