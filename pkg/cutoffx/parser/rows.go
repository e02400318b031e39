// Package parser turns worksheet rows into raw cutoff records.
package parser

import (
	"strings"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads a worksheet into a RawSheet. Raw cell values are used so
// number formats (thousands separators, fixed decimals) do not leak into ranks.
func ReadSheet(f *excelize.File, sheetName string) (models.RawSheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.RawSheet{}, err
	}
	return FromRows(sheetName, rows), nil
}

// FromRows builds a RawSheet from plain cell strings. Cells are trimmed,
// blank rows are skipped and grand-total rows are dropped.
func FromRows(sheetName string, rows [][]string) models.RawSheet {
	sheet := models.RawSheet{Name: sheetName}
	for rowIdx, row := range rows {
		cells := make([]string, len(row))
		hasData := false
		for colIdx, cellValue := range row {
			v := strings.TrimSpace(cellValue)
			if v != "" {
				hasData = true
			}
			cells[colIdx] = v
		}
		if !hasData || IsGrandTotal(cells) {
			continue
		}
		sheet.Rows = append(sheet.Rows, models.Row{
			Index: rowIdx,
			Cells: trimTrailing(cells),
		})
	}
	return sheet
}

func trimTrailing(cells []string) []string {
	end := len(cells)
	for end > 0 && cells[end-1] == "" {
		end--
	}
	return cells[:end]
}
