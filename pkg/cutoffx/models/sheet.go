// Package models defines data structures for cutoff extraction and persistence.
package models

import "strings"

// Row is a single worksheet row as read from the spreadsheet.
type Row struct {
	// Index is the 0-based row position in the worksheet.
	Index int `json:"index"`
	// Cells holds the formatted cell values, left to right.
	Cells []string `json:"cells"`
}

// First returns the first non-empty cell of the row, or "" for an empty row.
// Merged header cells often leave leading blanks, so blanks are skipped.
func (r Row) First() string {
	for _, c := range r.Cells {
		if c != "" {
			return c
		}
	}
	return ""
}

// Text joins the non-empty cells of the row with single spaces.
func (r Row) Text() string {
	parts := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// RawSheet is the ordered row sequence of one worksheet.
type RawSheet struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Rows contains the non-empty rows in sheet order.
	Rows []Row `json:"rows"`
}

// Layout identifies which extraction path a sheet follows.
type Layout string

const (
	// LayoutAIQ has the college in the header and fixed course/category/quota rows.
	LayoutAIQ Layout = "aiq"
	// LayoutKEA has the college in the header and repeating course/sub-category/rank triples.
	LayoutKEA Layout = "kea"
	// LayoutTabular has a header row and one record per data row.
	LayoutTabular Layout = "tabular"
	// LayoutRowGroup is the generic college/course/category/quota/ranks grouping.
	LayoutRowGroup Layout = "rowgroup"
)

// Label is the classification assigned to a cell.
type Label string

const (
	// LabelCollege marks an institution name.
	LabelCollege Label = "college"
	// LabelCourse marks a degree or programme name such as MBBS or MD.
	LabelCourse Label = "course"
	// LabelCategory marks a reservation category such as OBC or 2AG.
	LabelCategory Label = "category"
	// LabelQuota marks a seat quota such as STATE or MANAGEMENT.
	LabelQuota Label = "quota"
	// LabelRank marks a positive integer rank.
	LabelRank Label = "rank"
	// LabelUnknown marks a cell no classifier recognized.
	LabelUnknown Label = "unknown"
)

// RankPolicy decides how a run of rank rows becomes records.
type RankPolicy string

const (
	// RankPerRow emits one record per rank row.
	RankPerRow RankPolicy = "per_rank"
	// RankMin emits one record per group holding the numerically lowest rank.
	RankMin RankPolicy = "min_rank"
)

// ParseRankPolicy maps a policy name to a RankPolicy. The empty string maps to RankPerRow.
func ParseRankPolicy(s string) (RankPolicy, bool) {
	switch RankPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RankPerRow:
		return RankPerRow, true
	case RankMin:
		return RankMin, true
	default:
		return "", false
	}
}
