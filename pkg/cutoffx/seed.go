package cutoffx

import (
	"context"
	"fmt"
	"strings"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/normalize"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/parser"
	"github.com/xuri/excelize/v2"
)

// CatalogWriter adds colleges and courses to the catalog.
type CatalogWriter interface {
	AddCollege(ctx context.Context, c models.College) (int64, error)
	AddCourse(ctx context.Context, c models.Course) (int64, error)
}

// SeedReport summarizes a catalog seed.
type SeedReport struct {
	Colleges int      `json:"colleges"`
	Courses  int      `json:"courses"`
	Warnings []string `json:"warnings,omitempty"`
}

var seedColumns = map[string]string{
	"college":      "name",
	"college name": "name",
	"name":         "name",
	"institute":    "name",
	"state":        "state",
	"type":         "type",
	"college type": "type",
	"management":   "type",
	"city":         "city",
	"district":     "city",
	"course":       "course",
	"course name":  "course",
	"seats":        "seats",
	"intake":       "seats",
	"total seats":  "seats",
}

// SeedCatalog loads a college list into the catalog. The first sheet must
// have a header row with at least a college name column; state, type,
// city, course and seats columns are optional. Missing states are
// inferred from the college name.
func SeedCatalog(ctx context.Context, catalog CatalogWriter, path string) (*SeedReport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", ErrInvalidFormat)
	}
	raw, err := parser.ReadSheet(f, sheets[0])
	if err != nil {
		return nil, NewExtractionError(sheets[0], "read", err)
	}
	if len(raw.Rows) == 0 {
		return &SeedReport{}, nil
	}

	cols := map[string]int{}
	for i, cell := range raw.Rows[0].Cells {
		key := strings.ToLower(strings.Join(strings.Fields(normalize.CleanText(cell)), " "))
		if name, ok := seedColumns[key]; ok {
			if _, dup := cols[name]; !dup {
				cols[name] = i
			}
		}
	}
	if _, ok := cols["name"]; !ok {
		return nil, NewExtractionError(sheets[0], "extract", fmt.Errorf("%w: no college name column", ErrInvalidFormat))
	}
	cell := func(row models.Row, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row.Cells) {
			return ""
		}
		return normalize.CleanText(row.Cells[i])
	}

	report := &SeedReport{}
	seenColleges := map[int64]bool{}
	seenCourses := map[int64]bool{}
	for _, row := range raw.Rows[1:] {
		name := normalize.Name(cell(row, "name"))
		if name == "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf("row %d: empty college name", row.Index+1))
			continue
		}
		state := cell(row, "state")
		if state == "" {
			state = normalize.ExtractState(name)
		}

		id, err := catalog.AddCollege(ctx, models.College{
			Name:  name,
			State: state,
			Type:  cell(row, "type"),
			City:  normalize.CorrectCity(cell(row, "city")),
		})
		if err != nil {
			return report, err
		}
		if !seenColleges[id] {
			seenColleges[id] = true
			report.Colleges++
		}

		course := normalize.DedupFragments(cell(row, "course"))
		if course == "" {
			continue
		}
		courseID, err := catalog.AddCourse(ctx, models.Course{
			CollegeID:  id,
			CourseName: course,
			Seats:      normalize.Seats(cell(row, "seats")),
		})
		if err != nil {
			return report, err
		}
		if !seenCourses[courseID] {
			seenCourses[courseID] = true
			report.Courses++
		}
	}
	return report, nil
}
