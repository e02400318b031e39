package main

import (
	"strings"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/output"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/store"
	"github.com/spf13/cobra"
)

var searchLimit int

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [text...]",
		Short: "Full-text search over catalog college names, states and cities",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
	cmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of colleges")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	catalog, err := store.OpenCatalog(ctx, cfg.CatalogDB)
	if err != nil {
		return err
	}
	defer catalog.Close()

	colleges, err := catalog.Search(ctx, strings.Join(args, " "), searchLimit)
	if err != nil {
		return err
	}
	jsonData, err := output.ToJSON(colleges, pretty)
	if err != nil {
		return err
	}
	return writeOutput("", jsonData)
}
