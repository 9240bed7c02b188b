package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/readtrack/syncguard/internal/config"
	"github.com/readtrack/syncguard/pkg/logging"
)

var (
	configFile string
	cfg        *config.Config

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "syncguard",
	Short: "Sync conflict detection for reading-progress snapshots",
	Long: `Syncguard reconciles two independently-evolved snapshots of the same
record set and reports the differences that are semantically significant
conflicts rather than harmless drift.

It pairs records by id, runs a set of per-field detectors (progress,
title, timestamp, tags) over each pair, and produces a risk-scored
conflict report. Detection only classifies; it never merges or resolves.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

// Execute runs the root command with signal-aware context.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./.syncguard.yaml)")
}

// setup loads configuration and wires logging before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Format == "json" {
		logging.SetDefault(logging.NewJSON(os.Stderr))
	}

	return nil
}
