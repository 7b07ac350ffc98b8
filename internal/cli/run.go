package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kinetiqd/kinetic-workload-allocator/internal/insights"
	"github.com/kinetiqd/kinetic-workload-allocator/internal/loader"
	"github.com/kinetiqd/kinetic-workload-allocator/internal/report"
	"github.com/kinetiqd/kinetic-workload-allocator/internal/validation"
	"github.com/kinetiqd/kinetic-workload-allocator/pkg/config"
	"github.com/kinetiqd/kinetic-workload-allocator/pkg/solver"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Allocate resources across the workloads in a data file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.AllocatorFromViper()
		if err != nil {
			return err
		}
		spec, err := config.SolverSpecFromViper()
		if err != nil {
			return err
		}

		datafile := viper.GetString("datafile")
		workloads, err := loader.Load(datafile)
		if err != nil {
			return err
		}

		opts := validation.Options{
			DispersionSignificance: viper.GetFloat64(config.KeyDispersionSignificance),
		}
		diags, err := validation.Validate(workloads, opts)
		if err != nil {
			return fmt.Errorf("invalid workloads: %w", err)
		}
		for _, warning := range diags.Warnings {
			slog.Warn(warning)
		}

		s, err := solver.New(cfg, spec)
		if err != nil {
			return err
		}
		alloc := s.Allocate(workloads)
		insight := insights.Generate(alloc, cfg, workloads)
		if alloc.Meta.FallbackUsed {
			slog.Warn("solver did not converge, returned identity allocation",
				"iterations", alloc.Meta.Iterations)
		}

		if viper.GetBool("output.json") {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Allocation any `json:"allocation"`
				Insights   any `json:"insights"`
			}{alloc, insight})
		}

		fmt.Println(report.Allocation(alloc, workloads))
		fmt.Println(report.Insights(insight))
		return nil
	},
}

func init() {
	runCmd.Flags().String("strategy", "", "allocation strategy: monod or hill")
	runCmd.Flags().Float64("gamma", 0, "Km scale (monod) or Hill coefficient (hill)")
	runCmd.Flags().StringP("datafile", "d", "workloads.json", "workload file (.json, .yaml or .yml)")
	runCmd.Flags().Bool("json", false, "emit the result as JSON instead of a table")

	_ = viper.BindPFlag(config.KeyStrategy, runCmd.Flags().Lookup("strategy"))
	_ = viper.BindPFlag(config.KeyGamma, runCmd.Flags().Lookup("gamma"))
	_ = viper.BindPFlag("datafile", runCmd.Flags().Lookup("datafile"))
	_ = viper.BindPFlag("output.json", runCmd.Flags().Lookup("json"))

	rootCmd.AddCommand(runCmd)
}
