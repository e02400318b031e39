package cutoffx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) (*store.Catalog, *store.Cutoffs) {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	catalog, err := store.OpenCatalog(ctx, filepath.Join(dir, "colleges.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = catalog.Close() })

	cutoffs, err := store.OpenCutoffs(ctx, filepath.Join(dir, "cutoff_ranks.db"), store.ConflictReplace)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cutoffs.Close() })

	collegeID, err := catalog.AddCollege(ctx, models.College{Name: "XYZ Medical College"})
	require.NoError(t, err)
	_, err = catalog.AddCourse(ctx, models.Course{CollegeID: collegeID, CourseName: "MBBS"})
	require.NoError(t, err)
	return catalog, cutoffs
}

func TestImporter_ImportDir(t *testing.T) {
	ctx := context.Background()
	root := writeFixtureTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "legacy.xls"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	writeWorkbook(t, root, "misc/cutoffs.xlsx", []string{"S"}, map[string][]any{"S": scenarioA})

	catalog, cutoffs := openStores(t)
	im := NewImporter(catalog, cutoffs, DefaultOptions())

	report, err := im.ImportDir(ctx, root)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.Files)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, []string{"legacy.xls", "misc/cutoffs.xlsx"}, report.Skipped)
	assert.Empty(t, report.Errors)
	assert.Contains(t, report.Warnings, `KEA_2023/round_1.xlsx: college "ABC DENTAL COLLEGE" not in catalog`)

	got, total, err := cutoffs.Query(ctx, models.Filter{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, 101, got[0].CutoffRank)
	assert.Equal(t, "AIQ_UG_2024/round_2.xlsx", got[0].SourceFile)
	assert.Equal(t, "AIQ_UG", got[0].CounsellingType)

	runs, err := cutoffs.Runs(ctx, report.RunID)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, store.RunOK, runs[0].Status)
	assert.Equal(t, 1, runs[0].RowsWritten)
	assert.Equal(t, 0, runs[1].RowsWritten)

	// Re-import replaces rather than duplicates.
	report, err = im.ImportDir(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	n, err := cutoffs.Count(ctx, "AIQ_UG_2024/round_2.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImporter_StoresLowestRankPerGroup(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeWorkbook(t, root, "AIQ_UG_2024/round_2.xlsx", []string{"Cutoffs"}, map[string][]any{
		"Cutoffs": {"XYZ MEDICAL COLLEGE", "MBBS", "OBC", "STATE", 340, 120, 275},
	})

	catalog, cutoffs := openStores(t)
	opts := DefaultOptions()
	opts.RankPolicy = models.RankPerRow
	report, err := NewImporter(catalog, cutoffs, opts).ImportDir(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)

	got, total, err := cutoffs.Query(ctx, models.Filter{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, 120, got[0].CutoffRank)
}

func TestImporter_MissingRoot(t *testing.T) {
	catalog, cutoffs := openStores(t)
	im := NewImporter(catalog, cutoffs, DefaultOptions())

	_, err := im.ImportDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrDataRootMissing)
}

type failingWriter struct {
	runs []store.Run
}

func (w *failingWriter) ReplaceFile(context.Context, string, []store.CutoffRow) (int, error) {
	return 0, errors.New("disk full")
}

func (w *failingWriter) RecordRun(_ context.Context, run store.Run) error {
	w.runs = append(w.runs, run)
	return nil
}

func TestImporter_FileErrorDoesNotStopRun(t *testing.T) {
	root := writeFixtureTree(t)
	catalog, _ := openStores(t)
	w := &failingWriter{}

	report, err := NewImporter(catalog, w, DefaultOptions()).ImportDir(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Files)
	assert.Zero(t, report.Imported)
	assert.Len(t, report.Errors, 2)
	require.Len(t, w.runs, 2)
	for _, run := range w.runs {
		assert.Equal(t, store.RunFailed, run.Status)
		assert.Equal(t, "disk full", run.Error)
	}
}
