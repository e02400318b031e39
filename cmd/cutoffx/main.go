// Package main provides the CLI entry point for cutoffx.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/medcounsel/cutoffx-go/internal/config"
	"github.com/medcounsel/cutoffx-go/internal/logger"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	pretty     bool

	cfg config.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cutoffx",
		Short: "Extract, import and query counselling cutoff ranks",
		Long: `cutoffx reads counselling cutoff spreadsheets (row-group, AIQ, KEA and
tabular layouts), normalizes them and loads them into SQLite.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(
		newExtractCmd(),
		newImportCmd(),
		newQueryCmd(),
		newSearchCmd(),
		newSeedCmd(),
	)
	return rootCmd
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Component: cmd.Name(),
	})
	return nil
}

// baseOptions returns extraction options from the loaded config.
func baseOptions() cutoffx.Options {
	opts := cutoffx.DefaultOptions()
	opts.RankPolicy = cfg.Policy()
	opts.Workers = cfg.Workers
	opts.Logger = logger.Get()
	return opts
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
