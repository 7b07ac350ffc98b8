package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const exampleWorkloads = `[
    {"name": "api-frontend", "current_load": 1.5, "max_load": 5.0, "k_m": 1.0},
    {"name": "batch-analytics", "current_load": 2.2, "max_load": 4.0, "k_m": 0.5},
    {"name": "background-sync", "current_load": 0.8, "max_load": 6.0, "k_m": 2.0}
]
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example workload file for a quick start",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("datafile")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, not overwriting", path)
		}
		if err := os.WriteFile(path, []byte(exampleWorkloads), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("example workloads written to %s\n", path)
		fmt.Println("next: kwa run --strategy hill --gamma 1.8 --datafile " + path)
		return nil
	},
}

func init() {
	initCmd.Flags().StringP("datafile", "d", "workloads.json", "path of the example file")
	rootCmd.AddCommand(initCmd)
}
