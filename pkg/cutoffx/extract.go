package cutoffx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/normalize"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/parser"
	"github.com/xuri/excelize/v2"
)

// Extract extracts normalized cutoff records from a workbook.
//
// Category, year and round come from the path (see ResolveSource) and
// opts.Source. A path that does not carry them is not an error here;
// records then have zero Year and Round.
func Extract(path string, opts Options) (*models.WorkbookCutoffs, error) {
	log := opts.logger()

	src, err := ResolveSource(path)
	if err != nil && !errors.Is(err, ErrUnparseableSource) {
		return nil, err
	}
	src = mergeSource(src, opts.Source)
	if src.Year == 0 || src.Round == 0 {
		log.Debug().Str("file", path).Msg("year or round not found in path")
	}
	return ExtractWithSource(path, src, opts)
}

// ExtractWithSource extracts records using an already resolved source.
func ExtractWithSource(path string, src models.SourceInfo, opts Options) (*models.WorkbookCutoffs, error) {
	log := opts.logger()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	src.Path = path
	wb := &models.WorkbookCutoffs{
		BookName: filepath.Base(path),
		Source:   src,
		Sheets:   make(map[string]models.SheetCutoffs),
	}
	ctx := parser.SheetContext{
		Source: src,
		Policy: opts.Policy(),
		Layout: opts.Layout,
	}

	for _, sheetName := range f.GetSheetList() {
		if !opts.ShouldIncludeSheet(sheetName) {
			continue
		}
		raw, err := parser.ReadSheet(f, sheetName)
		if err != nil {
			// An unreadable sheet does not fail the workbook.
			xerr := NewExtractionError(sheetName, "read", err)
			log.Warn().Err(xerr).Str("file", wb.BookName).Msg("sheet skipped")
			wb.SheetOrder = append(wb.SheetOrder, sheetName)
			wb.Sheets[sheetName] = models.SheetCutoffs{Warnings: []string{xerr.Error()}}
			continue
		}

		sheet := parser.ExtractSheet(raw, ctx)
		recs, dropped := normalize.Records(sheet.Records)
		if dropped > 0 {
			sheet.Warnings = append(sheet.Warnings,
				fmt.Sprintf("sheet %q: %d records dropped after normalization", sheetName, dropped))
		}
		sheet.Records = recs

		for _, w := range sheet.Warnings {
			log.Warn().Str("file", wb.BookName).Str("sheet", sheetName).Msg(w)
		}
		log.Debug().
			Str("file", wb.BookName).
			Str("sheet", sheetName).
			Str("layout", string(sheet.Layout)).
			Int("records", len(sheet.Records)).
			Msg("sheet extracted")

		wb.SheetOrder = append(wb.SheetOrder, sheetName)
		wb.Sheets[sheetName] = sheet
	}

	return wb, nil
}
