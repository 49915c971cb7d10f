// CutPrint renders cabinet cut lists with edge banding marks.
//
// Build:
//
//	go build -o cutprint ./cmd/cutprint
//
// Serve the API:
//
//	cutprint serve --addr :8090
//
// Print a project file:
//
//	cutprint print kitchen.json --format pdf -o kitchen.pdf
package main

import (
	"fmt"
	"os"

	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg    model.AppConfig
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cutprint",
	Short: "CutPrint - cut lists with edge banding marks for cabinet shops",
	Long: `CutPrint turns cabinet projects (units and their parts) into printable
cut lists. Parts are grouped per unit into main parts, back panels and
doors, and each part's edge code is resolved into tape and groove marks.

Configuration is read from ~/.cutprint/config.yaml and CUTPRINT_* environment
variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = project.LoadAppConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := project.ApplyEnv(&cfg, os.LookupEnv); err != nil {
			return fmt.Errorf("invalid environment: %w", err)
		}

		logger, err = newLogger(cfg.Log, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newLogger builds a production logger, or a development one when
// log.development is set. verbose forces debug level.
func newLogger(lc model.LogConfig, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if lc.Development {
		config = zap.NewDevelopmentConfig()
	}
	if lc.Level != "" {
		level, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return nil, err
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", project.DefaultConfigPath(), "Config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(marksCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(bandingCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
