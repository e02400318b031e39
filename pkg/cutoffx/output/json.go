// Package output serializes extraction and query results.
package output

import (
	"bytes"
	"encoding/json"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
)

// ToJSON serializes a value to JSON. HTML characters are not escaped, so
// college names with "&" stay readable.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WorkbookToJSON serializes a workbook extraction result.
func WorkbookToJSON(wb *models.WorkbookCutoffs, pretty bool) ([]byte, error) {
	return ToJSON(wb, pretty)
}

// SheetToJSON serializes a single sheet's records and warnings.
func SheetToJSON(sheet *models.SheetCutoffs, pretty bool) ([]byte, error) {
	return ToJSON(sheet, pretty)
}

// ResultToJSON serializes a query result. Data is always an array.
func ResultToJSON(res models.QueryResult, pretty bool) ([]byte, error) {
	if res.Data == nil {
		res.Data = []models.CutoffRecord{}
	}
	return ToJSON(res, pretty)
}
