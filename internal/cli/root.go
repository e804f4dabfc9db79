// Package cli holds the diametrics command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/config"
	"github.com/kidandcat/diametrics/internal/logger"
)

var (
	configPath  string
	flagAddr    string
	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "diametrics",
	Short: "DiaMetrics diabetes management dashboard",
	Long: "DiaMetrics serves a dashboard for logging blood glucose, nutrition, activity and weight,\n" +
		"with charts, goals, AI-assisted logging and a diabetes risk estimate.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json", "Path to optional JSON config file")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory for the session database")
}

// setup loads the configuration and builds the logger every command uses.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath, flagAddr, flagDataDir)
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "diametrics")
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
