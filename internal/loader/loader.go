// Package loader reads workload lists from structured files. The allocation
// core stays agnostic to source formats; only the CLI goes through here.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kinetiqd/kinetic-workload-allocator/internal/validation"
	"github.com/kinetiqd/kinetic-workload-allocator/pkg/core"
)

// record mirrors core.Workload with pointer fields so that missing keys are
// distinguishable from zero values and can be reported as schema errors.
type record struct {
	Name        *string  `json:"name" yaml:"name"`
	CurrentLoad *float64 `json:"current_load" yaml:"current_load"`
	MaxLoad     *float64 `json:"max_load" yaml:"max_load"`
	Km          *float64 `json:"k_m" yaml:"k_m"`
}

// Load reads a workload list from path. The format follows the file
// extension: .json, .yaml or .yml.
func Load(path string) ([]core.Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workloads: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported workload file extension %q (use .json, .yaml or .yml)", ext)
	}
}

// ParseJSON decodes a JSON array of workload records.
func ParseJSON(data []byte) ([]core.Workload, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding workloads: %w", err)
	}
	return fromRecords(records)
}

// ParseYAML decodes a YAML sequence of workload records.
func ParseYAML(data []byte) ([]core.Workload, error) {
	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding workloads: %w", err)
	}
	return fromRecords(records)
}

func fromRecords(records []record) ([]core.Workload, error) {
	workloads := make([]core.Workload, 0, len(records))
	for i, r := range records {
		// Name first, so an empty record is reported by the field that
		// identifies it.
		if r.Name == nil || *r.Name == "" {
			return nil, &validation.SchemaError{Index: i, Field: "name", Reason: "is missing"}
		}
		name := *r.Name
		for _, f := range []struct {
			name  string
			value *float64
		}{
			{"current_load", r.CurrentLoad},
			{"max_load", r.MaxLoad},
			{"k_m", r.Km},
		} {
			if f.value == nil {
				return nil, &validation.SchemaError{Index: i, Workload: name, Field: f.name, Reason: "is missing"}
			}
		}
		workloads = append(workloads, core.Workload{
			Name:        name,
			CurrentLoad: *r.CurrentLoad,
			MaxLoad:     *r.MaxLoad,
			Km:          *r.Km,
		})
	}
	return workloads, nil
}
