package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
)

// ConflictPolicy decides what happens when an inserted row hits the
// unique key of an existing row.
type ConflictPolicy string

const (
	// ConflictReplace overwrites the existing row.
	ConflictReplace ConflictPolicy = "replace"
	// ConflictIgnore keeps the existing row.
	ConflictIgnore ConflictPolicy = "ignore"
)

// ParseConflictPolicy parses a policy name. Empty means ConflictReplace.
func ParseConflictPolicy(s string) (ConflictPolicy, bool) {
	switch ConflictPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConflictReplace:
		return ConflictReplace, true
	case ConflictIgnore:
		return ConflictIgnore, true
	}
	return "", false
}

func (p ConflictPolicy) verb() string {
	if p == ConflictIgnore {
		return "INSERT OR IGNORE"
	}
	return "INSERT OR REPLACE"
}

// CutoffRow is a normalized record bound to catalog ids.
type CutoffRow struct {
	CollegeID int64
	CourseID  int64
	Record    models.CutoffRecord
}

// Run is one file's entry in the import journal.
type Run struct {
	ID          string
	SourceFile  string
	StartedAt   time.Time
	FinishedAt  time.Time
	RowsIn      int
	RowsWritten int
	Status      string
	Error       string
}

// Run statuses.
const (
	RunOK     = "ok"
	RunFailed = "failed"
)

// Cutoffs holds the cutoff_ranks table.
type Cutoffs struct {
	db     *sql.DB
	policy ConflictPolicy
}

// OpenCutoffs opens or creates the cutoff database at path.
func OpenCutoffs(ctx context.Context, path string, policy ConflictPolicy) (*Cutoffs, error) {
	if policy == "" {
		policy = ConflictReplace
	}
	db, err := open(ctx, path, cutoffSchema)
	if err != nil {
		return nil, err
	}
	return &Cutoffs{db: db, policy: policy}, nil
}

// Close closes the database.
func (c *Cutoffs) Close() error {
	return c.db.Close()
}

const insertColumns = `(college_id, course_id, college_name, course_name, source_category,
	counselling_type, counselling_year, round_number, quota_type, category,
	raw_quota, raw_category, cutoff_rank, percentile, seats_available, seats_filled,
	fees, state, source_filename, source_sheet, source_row)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ReplaceFile replaces every row previously imported from sourceFile with
// rows, in one transaction. Any failure rolls the file back to its
// previous contents. It returns the number of rows stored for the file,
// which is lower than len(rows) when rows collide on the unique key.
func (c *Cutoffs) ReplaceFile(ctx context.Context, sourceFile string, rows []CutoffRow) (written int, err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM cutoff_ranks WHERE source_filename = ?`, sourceFile); err != nil {
		return 0, fmt.Errorf("delete %s: %w", sourceFile, err)
	}

	stmt, err := tx.PrepareContext(ctx, c.policy.verb()+` INTO cutoff_ranks `+insertColumns)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		r := row.Record
		_, execErr := stmt.ExecContext(ctx,
			row.CollegeID, row.CourseID, r.CollegeName, r.CourseName, r.CounsellingType,
			r.Normalized.CounsellingType, r.Year, r.Round, r.Normalized.Quota, r.Normalized.Category,
			r.Quota, r.Category, r.CutoffRank, r.Percentile, r.SeatsAvailable, r.SeatsFilled,
			r.Fees, r.Normalized.State, sourceFile, r.Sheet, r.Row,
		)
		if execErr != nil {
			err = fmt.Errorf("insert %s row %d: %w", sourceFile, r.Row, execErr)
			return 0, err
		}
	}

	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cutoff_ranks WHERE source_filename = ?`, sourceFile,
	).Scan(&written); err != nil {
		return 0, fmt.Errorf("count %s: %w", sourceFile, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit %s: %w", sourceFile, err)
	}
	return written, nil
}

// Count returns the number of rows imported from sourceFile.
func (c *Cutoffs) Count(ctx context.Context, sourceFile string) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cutoff_ranks WHERE source_filename = ?`, sourceFile,
	).Scan(&n)
	return n, err
}

// Query returns rows matching f ordered by rank, and the number of
// matching rows before f.Limit is applied.
func (c *Cutoffs) Query(ctx context.Context, f models.Filter) ([]models.CutoffRecord, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Year > 0 {
		where = append(where, "counselling_year = ?")
		args = append(args, f.Year)
	}
	if f.Round > 0 {
		where = append(where, "round_number = ?")
		args = append(args, f.Round)
	}
	if f.Category != "" {
		where = append(where, "(UPPER(source_category) = UPPER(?) OR counselling_type = UPPER(?))")
		args = append(args, f.Category, f.Category)
	}
	if f.College != "" {
		where = append(where, "LOWER(college_name) LIKE LOWER('%' || ? || '%')")
		args = append(args, f.College)
	}
	if f.Course != "" {
		where = append(where, "LOWER(course_name) LIKE LOWER('%' || ? || '%')")
		args = append(args, f.Course)
	}
	if f.Quota != "" {
		where = append(where, "(LOWER(raw_quota) = LOWER(?) OR LOWER(quota_type) = LOWER(?))")
		args = append(args, f.Quota, f.Quota)
	}
	if f.MinRank > 0 {
		where = append(where, "cutoff_rank >= ?")
		args = append(args, f.MinRank)
	}
	if f.MaxRank > 0 {
		where = append(where, "cutoff_rank <= ?")
		args = append(args, f.MaxRank)
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cutoff_ranks`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	q := `SELECT college_name, course_name, source_category, counselling_type,
		counselling_year, round_number, quota_type, category, raw_quota, raw_category,
		cutoff_rank, percentile, seats_available, seats_filled, fees, state,
		source_filename, source_sheet, source_row
		FROM cutoff_ranks` + cond + ` ORDER BY cutoff_rank ASC, id ASC`
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.CutoffRecord{}
	for rows.Next() {
		var (
			r          models.CutoffRecord
			percentile sql.NullFloat64
			fees       sql.NullFloat64
		)
		if err := rows.Scan(
			&r.CollegeName, &r.CourseName, &r.CounsellingType, &r.Normalized.CounsellingType,
			&r.Year, &r.Round, &r.Normalized.Quota, &r.Normalized.Category, &r.Quota, &r.Category,
			&r.CutoffRank, &percentile, &r.SeatsAvailable, &r.SeatsFilled, &fees, &r.Normalized.State,
			&r.SourceFile, &r.Sheet, &r.Row,
		); err != nil {
			return nil, 0, err
		}
		if percentile.Valid {
			r.Percentile = &percentile.Float64
		}
		if fees.Valid {
			r.Fees = &fees.Float64
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// RecordRun writes one file's import journal entry.
func (c *Cutoffs) RecordRun(ctx context.Context, run Run) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO import_runs
			(run_id, source_filename, started_at, finished_at, rows_in, rows_written, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SourceFile,
		run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.RowsIn, run.RowsWritten, run.Status, run.Error,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// Runs lists the journal entries of one import run.
func (c *Cutoffs) Runs(ctx context.Context, runID string) ([]Run, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT run_id, source_filename, started_at, finished_at, rows_in, rows_written, status, error
		FROM import_runs WHERE run_id = ? ORDER BY source_filename`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var (
			run               Run
			started, finished string
		)
		if err := rows.Scan(&run.ID, &run.SourceFile, &started, &finished,
			&run.RowsIn, &run.RowsWritten, &run.Status, &run.Error); err != nil {
			return nil, err
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, run)
	}
	return out, rows.Err()
}
