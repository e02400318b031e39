package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := OpenCatalog(context.Background(), filepath.Join(t.TempDir(), "colleges.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func openCutoffs(t *testing.T, policy ConflictPolicy) *Cutoffs {
	t.Helper()
	c, err := OpenCutoffs(context.Background(), filepath.Join(t.TempDir(), "data", "cutoff_ranks.db"), policy)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCatalog_FindCollege(t *testing.T) {
	ctx := context.Background()
	c := openCatalog(t)

	id, err := c.AddCollege(ctx, models.College{Name: "Bangalore Medical College", State: "Karnataka", City: "Bengaluru"})
	require.NoError(t, err)
	_, err = c.AddCollege(ctx, models.College{Name: "Bangalore Medical College and Research Institute"})
	require.NoError(t, err)

	t.Run("stored name contained in input", func(t *testing.T) {
		got, err := c.FindCollege(ctx, "Bangalore Medical College, Bengaluru")
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})

	t.Run("input contained in stored name picks shortest", func(t *testing.T) {
		got, err := c.FindCollege(ctx, "bangalore medical")
		require.NoError(t, err)
		assert.Equal(t, "Bangalore Medical College", got.Name)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := c.FindCollege(ctx, "Madras Dental College")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("blank", func(t *testing.T) {
		_, err := c.FindCollege(ctx, "  ")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCatalog_AddCollegeUpsert(t *testing.T) {
	ctx := context.Background()
	c := openCatalog(t)

	id1, err := c.AddCollege(ctx, models.College{Name: "XYZ Medical College", State: "Kerala"})
	require.NoError(t, err)
	id2, err := c.AddCollege(ctx, models.College{Name: "XYZ Medical College", City: "Kochi"})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	got, err := c.FindCollege(ctx, "XYZ Medical College")
	require.NoError(t, err)
	assert.Equal(t, "Kerala", got.State)
	assert.Equal(t, "Kochi", got.City)

	all, err := c.Colleges(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCatalog_FindCourse(t *testing.T) {
	ctx := context.Background()
	c := openCatalog(t)

	colID, err := c.AddCollege(ctx, models.College{Name: "ABC Dental College"})
	require.NoError(t, err)
	otherID, err := c.AddCollege(ctx, models.College{Name: "PQR Dental College"})
	require.NoError(t, err)

	bds, err := c.AddCourse(ctx, models.Course{CollegeID: colID, CourseName: "BDS", Seats: 100})
	require.NoError(t, err)
	_, err = c.AddCourse(ctx, models.Course{CollegeID: colID, CourseName: "MDS Orthodontics"})
	require.NoError(t, err)

	got, err := c.FindCourse(ctx, colID, "BDS (Bachelor of Dental Surgery)")
	require.NoError(t, err)
	assert.Equal(t, bds, got.ID)
	assert.Equal(t, 100, got.Seats)

	_, err = c.FindCourse(ctx, otherID, "BDS")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_Search(t *testing.T) {
	ctx := context.Background()
	c := openCatalog(t)

	for _, col := range []models.College{
		{Name: "Kasturba Medical College", State: "Karnataka", City: "Manipal"},
		{Name: "Madras Medical College", State: "Tamil Nadu", City: "Chennai"},
		{Name: "Government Dental College", State: "Kerala", City: "Kottayam"},
	} {
		_, err := c.AddCollege(ctx, col)
		require.NoError(t, err)
	}

	got, err := c.Search(ctx, "kastur", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kasturba Medical College", got[0].Name)

	got, err = c.Search(ctx, "medical", 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = c.Search(ctx, "chennai", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Madras Medical College", got[0].Name)

	got, err = c.Search(ctx, `"(*`, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFTSQuery(t *testing.T) {
	assert.Equal(t, `"Madras" "med"*`, ftsQuery("Madras  med"))
	assert.Equal(t, "", ftsQuery(" ( ) "))
}

func cutoffRow(collegeID, courseID int64, quota, category string, rank int) CutoffRow {
	return CutoffRow{
		CollegeID: collegeID,
		CourseID:  courseID,
		Record: models.CutoffRecord{
			CollegeName:     "XYZ Medical College",
			CourseName:      "MBBS",
			Category:        category,
			Quota:           quota,
			CutoffRank:      rank,
			Year:            2024,
			Round:           2,
			CounsellingType: "AIQ_UG",
			Normalized: models.NormalizedFields{
				Category:        category,
				Quota:           quota,
				CounsellingType: "AIQ",
			},
		},
	}
}

func TestCutoffs_ReplaceFileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	c := openCutoffs(t, ConflictReplace)

	rows := []CutoffRow{
		cutoffRow(1, 1, "STATE", "OBC", 101),
		cutoffRow(1, 1, "STATE", "SC", 900),
		cutoffRow(1, 2, "NRI", "UR", 450),
	}

	n, err := c.ReplaceFile(ctx, "round_2.xlsx", rows)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = c.ReplaceFile(ctx, "round_2.xlsx", rows)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	count, err := c.Count(ctx, "round_2.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// A second file is untouched by a re-import of the first.
	_, err = c.ReplaceFile(ctx, "round_1.xlsx", []CutoffRow{func() CutoffRow {
		r := cutoffRow(2, 3, "STATE", "UR", 50)
		r.Record.Round = 1
		return r
	}()})
	require.NoError(t, err)
	_, err = c.ReplaceFile(ctx, "round_2.xlsx", rows[:1])
	require.NoError(t, err)

	count, err = c.Count(ctx, "round_2.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	count, err = c.Count(ctx, "round_1.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCutoffs_ConflictPolicy(t *testing.T) {
	ctx := context.Background()
	dup := []CutoffRow{
		cutoffRow(1, 1, "STATE", "OBC", 101),
		cutoffRow(1, 1, "STATE", "OBC", 102),
	}

	t.Run("replace keeps last", func(t *testing.T) {
		c := openCutoffs(t, ConflictReplace)
		_, err := c.ReplaceFile(ctx, "f.xlsx", dup)
		require.NoError(t, err)
		got, total, err := c.Query(ctx, models.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, 102, got[0].CutoffRank)
	})

	t.Run("ignore keeps first", func(t *testing.T) {
		c := openCutoffs(t, ConflictIgnore)
		n, err := c.ReplaceFile(ctx, "f.xlsx", dup)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		got, total, err := c.Query(ctx, models.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, 101, got[0].CutoffRank)
	})
}

func TestCutoffs_ReplaceFileRollsBack(t *testing.T) {
	ctx := context.Background()
	c := openCutoffs(t, ConflictReplace)

	_, err := c.ReplaceFile(ctx, "f.xlsx", []CutoffRow{cutoffRow(1, 1, "STATE", "OBC", 101)})
	require.NoError(t, err)

	bad := []CutoffRow{
		cutoffRow(1, 1, "STATE", "SC", 200),
		cutoffRow(1, 1, "STATE", "ST", 0),
	}
	_, err = c.ReplaceFile(ctx, "f.xlsx", bad)
	require.Error(t, err)

	got, total, err := c.Query(ctx, models.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "OBC", got[0].Category)
}

func TestCutoffs_Query(t *testing.T) {
	ctx := context.Background()
	c := openCutoffs(t, ConflictReplace)

	pct := 97.5
	rows := []CutoffRow{
		cutoffRow(1, 1, "STATE", "OBC", 101),
		cutoffRow(1, 1, "STATE", "SC", 900),
		cutoffRow(1, 2, "2AG NRI", "2AG NRI", 450),
	}
	rows[2].Record.CourseName = "BDS"
	rows[2].Record.Normalized.Quota = "NRI"
	rows[0].Record.Percentile = &pct
	_, err := c.ReplaceFile(ctx, "round_2.xlsx", rows)
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter models.Filter
		ranks  []int
		total  int
	}{
		{"all", models.Filter{}, []int{101, 450, 900}, 3},
		{"year and round", models.Filter{Year: 2024, Round: 2}, []int{101, 450, 900}, 3},
		{"other year", models.Filter{Year: 2023}, nil, 0},
		{"source category", models.Filter{Category: "aiq_ug"}, []int{101, 450, 900}, 3},
		{"counselling type", models.Filter{Category: "AIQ"}, []int{101, 450, 900}, 3},
		{"course substring", models.Filter{Course: "bd"}, []int{450}, 1},
		{"college substring", models.Filter{College: "xyz"}, []int{101, 450, 900}, 3},
		{"normalized quota", models.Filter{Quota: "nri"}, []int{450}, 1},
		{"raw quota", models.Filter{Quota: "2AG NRI"}, []int{450}, 1},
		{"rank bounds", models.Filter{MinRank: 200, MaxRank: 500}, []int{450}, 1},
		{"limit", models.Filter{Limit: 2}, []int{101, 450}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := c.Query(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			var ranks []int
			for _, r := range got {
				ranks = append(ranks, r.CutoffRank)
			}
			assert.Equal(t, tt.ranks, ranks)
		})
	}

	got, _, err := c.Query(ctx, models.Filter{MaxRank: 101})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Percentile)
	assert.InDelta(t, 97.5, *got[0].Percentile, 1e-9)
	assert.Nil(t, got[0].Fees)
	assert.Equal(t, "AIQ_UG", got[0].CounsellingType)
	assert.Equal(t, "round_2.xlsx", got[0].SourceFile)
}

func TestCutoffs_Runs(t *testing.T) {
	ctx := context.Background()
	c := openCutoffs(t, ConflictReplace)

	start := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, c.RecordRun(ctx, Run{
		ID: "run-1", SourceFile: "b.xlsx", StartedAt: start, FinishedAt: start.Add(time.Second),
		RowsIn: 3, RowsWritten: 3, Status: RunOK,
	}))
	require.NoError(t, c.RecordRun(ctx, Run{
		ID: "run-1", SourceFile: "a.xlsx", StartedAt: start, FinishedAt: start,
		Status: RunFailed, Error: "boom",
	}))

	runs, err := c.Runs(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "a.xlsx", runs[0].SourceFile)
	assert.Equal(t, RunFailed, runs[0].Status)
	assert.Equal(t, 3, runs[1].RowsWritten)
	assert.True(t, runs[1].FinishedAt.Equal(start.Add(time.Second)))
}

func TestParseConflictPolicy(t *testing.T) {
	p, ok := ParseConflictPolicy("")
	assert.True(t, ok)
	assert.Equal(t, ConflictReplace, p)
	p, ok = ParseConflictPolicy("IGNORE")
	assert.True(t, ok)
	assert.Equal(t, ConflictIgnore, p)
	_, ok = ParseConflictPolicy("merge")
	assert.False(t, ok)
}
