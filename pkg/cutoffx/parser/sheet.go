package parser

import (
	"fmt"
	"path/filepath"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/normalize"
)

// SheetContext carries what a sheet cannot tell about itself.
type SheetContext struct {
	// Source is the resolved workbook source (category, year, round).
	Source models.SourceInfo
	// Policy decides how rank runs become records.
	Policy models.RankPolicy
	// Layout forces a layout; empty means detect.
	Layout models.Layout
}

// counsellingType is the canonical counselling type of the source: the
// resolved type when set, else the one derived from the category. Empty
// when the source carries neither.
func (c SheetContext) counsellingType() string {
	if c.Source.CounsellingType != "" {
		return normalize.CounsellingType(c.Source.CounsellingType)
	}
	if c.Source.Category != "" {
		return normalize.CounsellingType(c.Source.Category)
	}
	return ""
}

// isKEASource reports whether quota should default to STATE.
func (c SheetContext) isKEASource() bool {
	return c.counsellingType() == normalize.CounsellingKEA
}

// ExtractSheet detects the sheet layout and extracts raw records from it.
// Records are not normalized; malformed groups become warnings.
func ExtractSheet(sheet models.RawSheet, ctx SheetContext) models.SheetCutoffs {
	layout := ctx.Layout
	if layout == "" {
		layout = DetectLayout(sheet)
	}
	out := newEmitter(sheet.Name, ctx)

	switch layout {
	case models.LayoutAIQ:
		extractAIQ(sheet, out)
	case models.LayoutKEA:
		extractKEA(sheet, out)
	case models.LayoutTabular:
		extractTabular(sheet, out)
	default:
		layout = models.LayoutRowGroup
		extractRowGroups(sheet, out)
	}

	return models.SheetCutoffs{
		Layout:   layout,
		Records:  out.records,
		Warnings: out.warnings,
	}
}

// group is the shared context of a run of ranks.
type group struct {
	college  string
	course   string
	category string
	quota    string
}

type rankCell struct {
	row  int
	rank int
}

type emitter struct {
	sheet    string
	ctx      SheetContext
	records  []models.CutoffRecord
	warnings []string
}

func newEmitter(sheet string, ctx SheetContext) *emitter {
	return &emitter{sheet: sheet, ctx: ctx}
}

func (e *emitter) warnf(format string, args ...any) {
	e.warnings = append(e.warnings, fmt.Sprintf("sheet %q: ", e.sheet)+fmt.Sprintf(format, args...))
}

func (e *emitter) record(g group, rc rankCell) models.CutoffRecord {
	quota := g.quota
	if quota == "" && e.ctx.isKEASource() {
		quota = normalize.QuotaState
	}
	src := e.ctx.Source
	return models.CutoffRecord{
		CollegeName:     g.college,
		CourseName:      g.course,
		Category:        g.category,
		Quota:           quota,
		CutoffRank:      rc.rank,
		Year:            src.Year,
		Round:           src.Round,
		SourceFile:      filepath.Base(src.Path),
		Sheet:           e.sheet,
		Row:             rc.row,
		CounsellingType: src.Category,
		Normalized:      models.NormalizedFields{CounsellingType: e.ctx.counsellingType()},
	}
}

// emit turns one group's ranks into records according to the rank policy.
func (e *emitter) emit(g group, ranks []rankCell) {
	if len(ranks) == 0 {
		return
	}
	if g.college == "" || g.course == "" {
		e.warnf("row %d: %d rank(s) without college/course skipped", ranks[0].row+1, len(ranks))
		return
	}
	if e.ctx.Policy == models.RankMin {
		best := ranks[0]
		for _, rc := range ranks[1:] {
			if rc.rank < best.rank {
				best = rc
			}
		}
		e.records = append(e.records, e.record(g, best))
		return
	}
	for _, rc := range ranks {
		e.records = append(e.records, e.record(g, rc))
	}
}

// parseRank reads a rank cell that already passed the Rank predicate.
func parseRank(row models.Row, cell string) (rankCell, bool) {
	n, ok := normalize.Rank(cell)
	if !ok {
		return rankCell{}, false
	}
	return rankCell{row: row.Index, rank: n}, true
}
