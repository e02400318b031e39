package main

import (
	"fmt"

	"github.com/medcounsel/cutoffx-go/internal/logger"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/output"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/store"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [dir]",
		Short: "Import a cutoff directory tree into the cutoff database",
		Long: `import walks <dir>/<CATEGORY>_<YEAR>/*_<ROUND>.xlsx, resolves colleges and
courses against the catalog and replaces each file's rows in one transaction.
Without an argument the configured data root is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	root := cfg.DataRoot
	if len(args) == 1 {
		root = args[0]
	}

	catalog, err := store.OpenCatalog(ctx, cfg.CatalogDB)
	if err != nil {
		return err
	}
	defer catalog.Close()

	cutoffs, err := store.OpenCutoffs(ctx, cfg.CutoffDB, cfg.Conflict())
	if err != nil {
		return err
	}
	defer cutoffs.Close()

	report, err := cutoffx.NewImporter(catalog, cutoffs, baseOptions()).ImportDir(ctx, root)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	jsonData, err := output.ToJSON(report, pretty)
	if err != nil {
		return err
	}
	if err := writeOutput("", jsonData); err != nil {
		return err
	}
	if len(report.Errors) > 0 {
		logger.Get().Warn().Int("errors", len(report.Errors)).Msg("some files failed")
	}
	return nil
}
