package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kinetiqd/kinetic-workload-allocator/internal/report"
	"github.com/kinetiqd/kinetic-workload-allocator/pkg/kinetics"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare Hill efficiency curves against the Monod baseline over a gamma range",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		gammaMin, _ := flags.GetFloat64("gamma-min")
		gammaMax, _ := flags.GetFloat64("gamma-max")
		steps, _ := flags.GetInt("steps")
		xMin, _ := flags.GetFloat64("x-min")
		xMax, _ := flags.GetFloat64("x-max")
		points, _ := flags.GetInt("points")
		vmax, _ := flags.GetFloat64("vmax")
		km, _ := flags.GetFloat64("km")
		csvPath, _ := flags.GetString("csv")

		if gammaMax < gammaMin {
			return fmt.Errorf("gamma-max %g is below gamma-min %g", gammaMax, gammaMin)
		}
		if xMax <= xMin {
			return fmt.Errorf("x-max %g must exceed x-min %g", xMax, xMin)
		}

		exponents := kinetics.SweepExponents(gammaMin, gammaMax, steps)
		sweep := kinetics.Sweep(xMin, xMax, points, vmax, km, exponents)

		if csvPath != "" {
			f, err := os.Create(csvPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", csvPath, err)
			}
			defer f.Close()
			if err := report.WriteSweepCSV(f, sweep, exponents); err != nil {
				return fmt.Errorf("writing %s: %w", csvPath, err)
			}
			fmt.Printf("sweep written to %s\n", csvPath)
			return nil
		}

		fmt.Println(report.Sweep(sweep, exponents))
		return nil
	},
}

func init() {
	sweepCmd.Flags().Float64("gamma-min", 0.5, "lowest Hill coefficient to sweep")
	sweepCmd.Flags().Float64("gamma-max", 2.0, "highest Hill coefficient to sweep")
	sweepCmd.Flags().Int("steps", 4, "number of Hill curves")
	sweepCmd.Flags().Float64("x-min", 0.01, "lowest resource level")
	sweepCmd.Flags().Float64("x-max", 5.0, "highest resource level")
	sweepCmd.Flags().Int("points", 25, "number of resource levels")
	sweepCmd.Flags().Float64("vmax", 1.0, "saturation ceiling of the swept curve")
	sweepCmd.Flags().Float64("km", 1.0, "half-saturation constant of the swept curve")
	sweepCmd.Flags().String("csv", "", "write the sweep as CSV to this path instead of rendering it")

	rootCmd.AddCommand(sweepCmd)
}
