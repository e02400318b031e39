package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/output"
	"github.com/spf13/cobra"
)

var (
	extractOutput    string
	extractSheetsDir string
	extractPolicy    string
	extractLayout    string
	extractSheets    []string
	extractCategory  string
	extractYear      int
	extractRound     int
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Extract cutoff records from one workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	cmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&extractSheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	cmd.Flags().StringVar(&extractPolicy, "policy", "", "Rank policy: per_rank or min_rank (overrides config)")
	cmd.Flags().StringVar(&extractLayout, "layout", "", "Force layout: aiq, kea, tabular or rowgroup")
	cmd.Flags().StringSliceVar(&extractSheets, "sheet", nil, "Only extract the named sheets")
	cmd.Flags().StringVar(&extractCategory, "category", "", "Counselling category when the path has none")
	cmd.Flags().IntVar(&extractYear, "year", 0, "Counselling year when the path has none")
	cmd.Flags().IntVar(&extractRound, "round", 0, "Counselling round when the path has none")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	opts := baseOptions()
	if extractPolicy != "" {
		p, ok := models.ParseRankPolicy(extractPolicy)
		if !ok {
			return fmt.Errorf("invalid policy: %s (must be per_rank or min_rank)", extractPolicy)
		}
		opts.RankPolicy = p
	}
	switch l := models.Layout(extractLayout); l {
	case "", models.LayoutAIQ, models.LayoutKEA, models.LayoutTabular, models.LayoutRowGroup:
		opts.Layout = l
	default:
		return fmt.Errorf("invalid layout: %s (must be aiq, kea, tabular or rowgroup)", extractLayout)
	}
	opts.Sheets = extractSheets
	opts.Source = models.SourceInfo{Category: extractCategory, Year: extractYear, Round: extractRound}

	wb, err := cutoffx.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if extractSheetsDir != "" {
		if err := writeSheetFiles(wb, extractSheetsDir); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
		if extractOutput == "" {
			return nil
		}
	}

	jsonData, err := output.WorkbookToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(extractOutput, jsonData)
}

func writeSheetFiles(wb *models.WorkbookCutoffs, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for sheetName, sheet := range wb.Sheets {
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetName+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}
