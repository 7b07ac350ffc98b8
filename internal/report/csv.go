package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kinetiqd/kinetic-workload-allocator/pkg/kinetics"
)

// WriteSweepCSV writes the sweep matrix as CSV: one row per resource level,
// a monod column and one column per Hill exponent.
func WriteSweepCSV(w io.Writer, points []kinetics.SweepPoint, exponents []float64) error {
	cw := csv.NewWriter(w)

	header := []string{"x", "monod"}
	for _, n := range exponents {
		header = append(header, fmt.Sprintf("hill_n_%.2f", n))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for _, p := range points {
		row = row[:0]
		row = append(row, formatFloat(p.X), formatFloat(p.Monod))
		for _, v := range p.Hill {
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
