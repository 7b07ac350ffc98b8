// Package cli implements the kwa command tree.
package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kinetiqd/kinetic-workload-allocator/internal/logging"
	"github.com/kinetiqd/kinetic-workload-allocator/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "kwa",
	Short: "Saturation-kinetics workload allocator",
	Long: `kwa redistributes a fixed resource pool across competing workloads to
maximize aggregate throughput under enzymatic saturation kinetics
(Monod/Michaelis-Menten and Hill response curves).`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./kwa.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kwa")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/kwa")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("KWA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file is optional.
	_ = viper.ReadInConfig()

	level, err := logging.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		level = slog.LevelInfo
	}
	logging.Setup(os.Stderr, level)
}
