package cutoffx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/store"
)

// CatalogLookup resolves college and course names to catalog ids.
type CatalogLookup interface {
	FindCollege(ctx context.Context, name string) (models.College, error)
	FindCourse(ctx context.Context, collegeID int64, name string) (models.Course, error)
}

// CutoffWriter persists one file's rows and its journal entry.
type CutoffWriter interface {
	ReplaceFile(ctx context.Context, sourceFile string, rows []store.CutoffRow) (int, error)
	RecordRun(ctx context.Context, run store.Run) error
}

// Report summarizes an import run.
type Report struct {
	RunID    string   `json:"run_id"`
	Files    int      `json:"files"`
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Importer loads a cutoff directory tree into the cutoff database.
type Importer struct {
	catalog CatalogLookup
	cutoffs CutoffWriter
	opts    Options
	now     func() time.Time
}

// NewImporter creates an Importer. The cutoff table keeps one row per
// college, course, category, quota, year, round and counselling type, so
// imports always extract with the min_rank policy whatever opts.RankPolicy says.
func NewImporter(catalog CatalogLookup, cutoffs CutoffWriter, opts Options) *Importer {
	opts.RankPolicy = models.RankMin
	return &Importer{
		catalog: catalog,
		cutoffs: cutoffs,
		opts:    opts,
		now:     time.Now,
	}
}

// ImportDir imports every workbook under root. Each file is replaced in
// its own transaction; a failing file is reported and does not stop the
// run. Source files are keyed by their slash-separated path under root.
func (im *Importer) ImportDir(ctx context.Context, root string) (*Report, error) {
	log := im.opts.logger()

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDataRootMissing, root)
	}

	report := &Report{RunID: uuid.NewString()}
	log.Info().Str("run_id", report.RunID).Str("root", root).Msg("import started")

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), "~$") {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)

		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".xlsm":
		case ".xls":
			report.Skipped = append(report.Skipped, rel)
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: legacy .xls is not supported", rel))
			return nil
		default:
			return nil
		}

		report.Files++
		im.importFile(ctx, report, path, rel)
		return nil
	})
	if err != nil {
		return report, err
	}

	log.Info().
		Str("run_id", report.RunID).
		Int("files", report.Files).
		Int("imported", report.Imported).
		Int("skipped", len(report.Skipped)).
		Int("errors", len(report.Errors)).
		Msg("import finished")
	return report, nil
}

func (im *Importer) importFile(ctx context.Context, report *Report, path, rel string) {
	log := im.opts.logger().With().Str("file", rel).Logger()
	run := store.Run{ID: report.RunID, SourceFile: rel, StartedAt: im.now(), Status: store.RunOK}

	fail := func(err error) {
		log.Error().Err(err).Msg("import failed")
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", rel, err))
		run.Status = store.RunFailed
		run.Error = err.Error()
		run.FinishedAt = im.now()
		if err := im.cutoffs.RecordRun(ctx, run); err != nil {
			log.Error().Err(err).Msg("journal write failed")
		}
	}

	src, err := ResolveSource(path)
	if err != nil {
		log.Warn().Err(err).Msg("file skipped")
		report.Skipped = append(report.Skipped, rel)
		report.Warnings = append(report.Warnings, err.Error())
		return
	}

	wb, err := ExtractWithSource(path, src, im.opts)
	if err != nil {
		fail(err)
		return
	}
	for _, name := range wb.SheetOrder {
		for _, w := range wb.Sheets[name].Warnings {
			report.Warnings = append(report.Warnings, rel+": "+w)
		}
	}

	records := wb.Records()
	rows, warnings, err := im.bind(ctx, records)
	if err != nil {
		fail(err)
		return
	}
	for _, w := range warnings {
		report.Warnings = append(report.Warnings, rel+": "+w)
	}

	written, err := im.cutoffs.ReplaceFile(ctx, rel, rows)
	if err != nil {
		fail(err)
		return
	}

	run.RowsIn = len(records)
	run.RowsWritten = written
	run.FinishedAt = im.now()
	if err := im.cutoffs.RecordRun(ctx, run); err != nil {
		log.Error().Err(err).Msg("journal write failed")
	}
	report.Imported += written
	log.Info().Int("records", len(records)).Int("written", written).Msg("file imported")
}

// bind resolves catalog ids for records. Records whose college or course
// is not in the catalog are dropped with one warning per name.
func (im *Importer) bind(ctx context.Context, records []models.CutoffRecord) ([]store.CutoffRow, []string, error) {
	type courseKey struct {
		college int64
		name    string
	}
	var (
		colleges = map[string]int64{}
		courses  = map[courseKey]int64{}
		rows     = make([]store.CutoffRow, 0, len(records))
		warnings []string
	)

	for _, r := range records {
		collegeID, seen := colleges[r.CollegeName]
		if !seen {
			col, err := im.catalog.FindCollege(ctx, r.CollegeName)
			switch {
			case errors.Is(err, store.ErrNotFound):
				warnings = append(warnings, fmt.Sprintf("college %q not in catalog", r.CollegeName))
			case err != nil:
				return nil, nil, err
			default:
				collegeID = col.ID
			}
			colleges[r.CollegeName] = collegeID
		}
		if collegeID == 0 {
			continue
		}

		ck := courseKey{collegeID, r.CourseName}
		courseID, seen := courses[ck]
		if !seen {
			course, err := im.catalog.FindCourse(ctx, collegeID, r.CourseName)
			switch {
			case errors.Is(err, store.ErrNotFound):
				warnings = append(warnings, fmt.Sprintf("course %q of %q not in catalog", r.CourseName, r.CollegeName))
			case err != nil:
				return nil, nil, err
			default:
				courseID = course.ID
			}
			courses[ck] = courseID
		}
		if courseID == 0 {
			continue
		}

		rows = append(rows, store.CutoffRow{CollegeID: collegeID, CourseID: courseID, Record: r})
	}
	return rows, warnings, nil
}
