package parser

import (
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
)

// aiqFirstRankRow is the first row that may hold ranks in an AIQ sheet.
const aiqFirstRankRow = 4

// aiqMinRows is a title, course and category row plus at least one rank row.
const aiqMinRows = 4

// extractAIQ reads an AIQ sheet: college in the title row, course, category
// and quota in rows 1-3, ranks from row 4 on. A sheet without a quota row
// (row 3 already a rank) starts ranks at row 3.
func extractAIQ(sheet models.RawSheet, out *emitter) {
	rows := sheet.Rows
	if len(rows) < aiqMinRows {
		out.warnf("%d row(s) are too few for an AIQ sheet", len(rows))
		return
	}
	if !isTitleRow(rows[0]) {
		out.warnf("row %d: AIQ title row has more than one cell", rows[0].Index+1)
	}
	g := group{
		college:  rows[0].First(),
		course:   rows[1].First(),
		category: rows[2].First(),
	}

	start := aiqFirstRankRow
	if q := rows[3].First(); Is(models.LabelRank, q) {
		start = 3
	} else {
		g.quota = q
	}

	var ranks []rankCell
	skipped := 0
	for _, row := range rows[start:] {
		cell := row.First()
		if !Is(models.LabelRank, cell) {
			skipped++
			continue
		}
		rc, ok := parseRank(row, cell)
		if !ok {
			skipped++
			continue
		}
		ranks = append(ranks, rc)
	}
	if skipped > 0 {
		out.warnf("%d non-rank row(s) after the AIQ header skipped", skipped)
	}
	if len(ranks) == 0 {
		out.warnf("AIQ sheet for %q has no ranks", g.college)
		return
	}
	out.emit(g, ranks)
}
