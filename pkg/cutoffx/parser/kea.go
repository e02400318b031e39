package parser

import (
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/normalize"
)

// keaMinRows is a title row plus one (course, sub-category, rank) triple.
const keaMinRows = 4

// extractKEA reads a KEA sheet: college in the title row followed by
// (course, sub-category, rank) triples. Quota is inferred from the
// sub-category. A triple with a non-numeric rank is skipped and the walk
// resumes one row later.
func extractKEA(sheet models.RawSheet, out *emitter) {
	rows := sheet.Rows
	if len(rows) < keaMinRows {
		out.warnf("%d row(s) are too few for a KEA sheet", len(rows))
		return
	}
	if !isTitleRow(rows[0]) {
		out.warnf("row %d: KEA title row has more than one cell", rows[0].Index+1)
	}
	college := rows[0].First()

	i := 1
	for i+2 < len(rows) {
		course, sub, rankRow := rows[i], rows[i+1], rows[i+2]
		rankText := rankRow.First()
		if !Is(models.LabelRank, rankText) {
			out.warnf("row %d: expected a rank after %q/%q, got %q", rankRow.Index+1, course.First(), sub.First(), rankText)
			i++
			continue
		}
		rc, ok := parseRank(rankRow, rankText)
		if !ok {
			out.warnf("row %d: rank %q is not positive", rankRow.Index+1, rankText)
			i += 3
			continue
		}
		category := sub.First()
		out.emit(group{
			college:  college,
			course:   course.First(),
			category: category,
			quota:    normalize.KEAQuota(category),
		}, []rankCell{rc})
		i += 3
	}
	if rest := len(rows) - i; rest > 0 {
		out.warnf("%d trailing row(s) do not form a complete triple", rest)
	}
}
