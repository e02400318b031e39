package parser

import (
	"regexp"
	"strings"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
)

var (
	collegeRe    = regexp.MustCompile(`(?i)COLLEGE|INSTITUTE|HOSPITAL|MEDICAL|DENTAL|UNIVERSITY`)
	courseRe     = regexp.MustCompile(`(?i)M\.D\.|M\.S\.|MBBS|BDS|DIPLOMA|MDS`)
	quotaRe      = regexp.MustCompile(`(?i)OPEN|SC|ST|OBC|EWS|MANAGEMENT|PAID|DEEMED|STATE|ALL INDIA`)
	categoryRe   = regexp.MustCompile(`(?i)GENERAL|GM|GMP|GMC|SC|ST|OBC|EWS|NRI|MU|OPN|3BG|2AG`)
	rankRe       = regexp.MustCompile(`^\d+$`)
	grandTotalRe = regexp.MustCompile(`(?i)GRAND\s+TOTAL`)
)

type classifier struct {
	label models.Label
	re    *regexp.Regexp
}

// ranked is the fixed evaluation order for Classify. Category precedes
// Quota because most quota words (SC, ST, OBC, EWS) are also categories.
var ranked = []classifier{
	{models.LabelRank, rankRe},
	{models.LabelCollege, collegeRe},
	{models.LabelCourse, courseRe},
	{models.LabelCategory, categoryRe},
	{models.LabelQuota, quotaRe},
}

// Classify returns the first label in rank order whose predicate matches cell.
func Classify(cell string) models.Label {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return models.LabelUnknown
	}
	for _, c := range ranked {
		if c.re.MatchString(cell) {
			return c.label
		}
	}
	return models.LabelUnknown
}

// Is reports whether cell satisfies the predicate for label, independent of
// rank order. LabelUnknown never matches.
func Is(label models.Label, cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false
	}
	for _, c := range ranked {
		if c.label == label {
			return c.re.MatchString(cell)
		}
	}
	return false
}

// IsGrandTotal reports whether any cell of a row carries the grand-total marker.
func IsGrandTotal(cells []string) bool {
	for _, c := range cells {
		if grandTotalRe.MatchString(c) {
			return true
		}
	}
	return false
}
