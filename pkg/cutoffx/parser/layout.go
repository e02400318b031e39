package parser

import (
	"regexp"
	"strings"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
)

var (
	openGeneralURRe = regexp.MustCompile(`(?i)\b(open|general|ur)\b`)
	keaRankRe       = regexp.MustCompile(`^\d{3,}$`)
)

// DetectLayout inspects the first rows of a sheet. AIQ is tried first, then
// KEA, then a tabular header; anything else is a row-group sheet.
//
// AIQ and KEA sheets carry the college name as a lone header cell, so a
// multi-column first row (a tabular header) never qualifies for either.
func DetectLayout(sheet models.RawSheet) models.Layout {
	rows := sheet.Rows
	switch {
	case isAIQ(rows):
		return models.LayoutAIQ
	case isKEA(rows):
		return models.LayoutKEA
	}
	if _, ok := findHeader(rows, DefaultTabularParams()); ok {
		return models.LayoutTabular
	}
	return models.LayoutRowGroup
}

func isAIQ(rows []models.Row) bool {
	if len(rows) < 3 {
		return false
	}
	if !isTitleRow(rows[0]) {
		return false
	}
	header := strings.ToLower(rows[0].Text())
	course := strings.ToLower(rows[1].Text())
	return strings.Contains(header, "college") &&
		(strings.Contains(course, "mbbs") || strings.Contains(course, "bds")) &&
		openGeneralURRe.MatchString(rows[2].Text())
}

func isKEA(rows []models.Row) bool {
	if len(rows) < 4 {
		return false
	}
	if !isTitleRow(rows[0]) {
		return false
	}
	header := strings.ToLower(rows[0].Text())
	return (strings.Contains(header, "college") || strings.Contains(header, "institute")) &&
		Is(models.LabelCourse, rows[1].First()) &&
		!openGeneralURRe.MatchString(rows[2].Text()) &&
		keaRankRe.MatchString(rows[3].First())
}

// isTitleRow reports whether a row has exactly one non-empty cell.
func isTitleRow(row models.Row) bool {
	n := 0
	for _, c := range row.Cells {
		if c != "" {
			n++
		}
	}
	return n == 1
}
