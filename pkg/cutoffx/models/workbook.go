package models

// SourceInfo describes where a workbook sits in the cutoff directory tree.
type SourceInfo struct {
	// Path is the workbook path as given.
	Path string `json:"path"`
	// Category is the counselling category parsed from the directory name (e.g. AIQ_PG).
	Category string `json:"category"`
	// Year is the counselling year.
	Year int `json:"year"`
	// Round is the counselling round.
	Round int `json:"round"`
	// CounsellingType is the canonical counselling type for the category.
	CounsellingType string `json:"counselling_type"`
}

// SheetCutoffs is the extraction result of a single worksheet.
type SheetCutoffs struct {
	// Layout is the detected sheet layout.
	Layout Layout `json:"layout"`
	// Records contains the retained records in sheet order.
	Records []CutoffRecord `json:"records,omitempty"`
	// Warnings lists skipped groups and rows.
	Warnings []string `json:"warnings,omitempty"`
}

// WorkbookCutoffs is the extraction result of a workbook.
type WorkbookCutoffs struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Source is the resolved source info.
	Source SourceInfo `json:"source"`
	// SheetOrder lists sheet names in workbook order.
	SheetOrder []string `json:"sheet_order"`
	// Sheets maps sheet name to its extraction result.
	Sheets map[string]SheetCutoffs `json:"sheets"`
}

// Records flattens all sheets' records in workbook order.
func (w *WorkbookCutoffs) Records() []CutoffRecord {
	var out []CutoffRecord
	for _, name := range w.SheetOrder {
		out = append(out, w.Sheets[name].Records...)
	}
	return out
}
