package main

import (
	"fmt"

	"github.com/medcounsel/cutoffx-go/internal/logger"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/output"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/store"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [colleges.xlsx]",
		Short: "Load a college and course list into the catalog database",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	catalog, err := store.OpenCatalog(ctx, cfg.CatalogDB)
	if err != nil {
		return err
	}
	defer catalog.Close()

	report, err := cutoffx.SeedCatalog(ctx, catalog, args[0])
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	for _, w := range report.Warnings {
		logger.Named("seed").Warn().Msg(w)
	}

	jsonData, err := output.ToJSON(report, pretty)
	if err != nil {
		return err
	}
	return writeOutput("", jsonData)
}
