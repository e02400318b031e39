package cutoffx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook writes a single-column sheet per entry of sheets into
// root/rel and returns the full path. Sheet order follows names.
func writeWorkbook(t *testing.T, root, rel string, names []string, sheets map[string][]any) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f := excelize.NewFile()
	defer f.Close()
	for i, name := range names {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, v := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(name, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

// scenarioA is a generic row-group sheet: one college, one course, two ranks.
var scenarioA = []any{"XYZ MEDICAL COLLEGE", "MBBS", "OBC", "STATE", 101, 102}

// scenarioB is a KEA triple sheet.
var scenarioB = []any{"ABC DENTAL COLLEGE", "BDS", "2AG NRI", "450"}

func writeFixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeWorkbook(t, root, "AIQ_UG_2024/round_2.xlsx", []string{"Cutoffs"}, map[string][]any{"Cutoffs": scenarioA})
	writeWorkbook(t, root, "KEA_2023/round_1.xlsx", []string{"Dental"}, map[string][]any{"Dental": scenarioB})
	return root
}
