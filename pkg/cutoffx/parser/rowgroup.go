package parser

import (
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
)

type groupState int

const (
	seekCollege groupState = iota
	seekCourse
	seekCategory
	seekQuota
	seekRanks
	collectRanks
)

// rowGrouper is the single-pass state machine for row-group sheets. Only the
// first non-empty cell of each row is classified.
type rowGrouper struct {
	out     *emitter
	state   groupState
	cur     group
	ranks   []rankCell
	orphans bool
}

func extractRowGroups(sheet models.RawSheet, out *emitter) {
	g := &rowGrouper{out: out}
	for _, row := range sheet.Rows {
		g.step(row)
	}
	g.flush()
}

func (g *rowGrouper) step(row models.Row) {
	cell := row.First()

	if Is(models.LabelRank, cell) {
		switch g.state {
		case seekCollege, seekCourse:
			if !g.orphans {
				g.out.warnf("row %d: rank rows before any college/course skipped", row.Index+1)
				g.orphans = true
			}
			return
		}
		rc, ok := parseRank(row, cell)
		if !ok {
			g.out.warnf("row %d: rank %q is not positive", row.Index+1, cell)
			return
		}
		g.state = collectRanks
		g.ranks = append(g.ranks, rc)
		return
	}
	g.orphans = false

	if g.state == collectRanks {
		g.flush()
		g.state = seekCategory
	}
	g.header(row, cell)
}

// header applies a non-rank row to the current context. Rows that fit no
// transition are skipped.
func (g *rowGrouper) header(row models.Row, cell string) {
	if Is(models.LabelCollege, cell) {
		if g.state == seekCourse && g.cur.college != "" {
			g.out.warnf("row %d: college %q has no course rows", row.Index+1, g.cur.college)
		}
		g.cur = group{college: cell}
		g.state = seekCourse
		return
	}
	if g.state == seekCollege {
		return
	}
	if Is(models.LabelCourse, cell) {
		g.cur = group{college: g.cur.college, course: cell}
		g.state = seekCategory
		return
	}

	switch g.state {
	case seekCategory:
		switch {
		case Is(models.LabelCategory, cell):
			g.cur.category, g.cur.quota = cell, ""
			g.state = seekQuota
		case Is(models.LabelQuota, cell):
			g.cur.quota = cell
			g.state = seekRanks
		}
	case seekQuota:
		switch {
		case Is(models.LabelQuota, cell):
			g.cur.quota = cell
			g.state = seekRanks
		case Is(models.LabelCategory, cell):
			g.cur.category = cell
		}
	case seekRanks:
		switch {
		case Is(models.LabelCategory, cell):
			g.cur.category, g.cur.quota = cell, ""
			g.state = seekQuota
		case Is(models.LabelQuota, cell):
			g.cur.quota = cell
		}
	}
}

func (g *rowGrouper) flush() {
	g.out.emit(g.cur, g.ranks)
	g.ranks = nil
}
