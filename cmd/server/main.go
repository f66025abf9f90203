package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"voxelpath.ai/internal/sim/catalogs"
	"voxelpath.ai/internal/sim/tuning"
)

var (
	verbose      bool
	configDir    string
	settingsPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "voxel path planning service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "configs", "./configs", "Config directory (blocks.json)")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Settings YAML (default: built-in settings)")

	rootCmd.AddCommand(serveCmd, planCmd)
}

// loadConfig reads the block catalog and the settings file, if any.
func loadConfig() (*catalogs.Catalogs, tuning.Settings, error) {
	cat, err := catalogs.Load(configDir)
	if err != nil {
		return nil, tuning.Settings{}, fmt.Errorf("load catalogs: %w", err)
	}
	settings := tuning.Default()
	if settingsPath != "" {
		settings, err = tuning.Load(settingsPath)
		if err != nil {
			return nil, tuning.Settings{}, fmt.Errorf("load settings: %w", err)
		}
	}
	return cat, settings, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
