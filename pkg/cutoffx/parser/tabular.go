package parser

import (
	"strings"
	"unicode"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/normalize"
)

// TabularParams holds parameters for tabular header detection.
type TabularParams struct {
	// HeaderScanRows is how many leading rows may hold the header.
	HeaderScanRows int
	// MinMappedColumns is the least number of recognised header cells.
	MinMappedColumns int
	// DensityMin is the least share of non-empty mapped cells in the sampled data rows.
	DensityMin float64
	// SampleRows is how many data rows are sampled for density.
	SampleRows int
}

// DefaultTabularParams returns default tabular detection parameters.
func DefaultTabularParams() TabularParams {
	return TabularParams{
		HeaderScanRows:   3,
		MinMappedColumns: 2,
		DensityMin:       0.2,
		SampleRows:       20,
	}
}

type field string

const (
	fieldCollege    field = "college"
	fieldCourse     field = "course"
	fieldCategory   field = "category"
	fieldQuota      field = "quota"
	fieldRank       field = "rank"
	fieldPercentile field = "percentile"
	fieldSeats      field = "seats"
	fieldFilled     field = "filled"
	fieldFees       field = "fees"
	fieldRound      field = "round"
	fieldYear       field = "year"
)

// headerAliases maps normalized header text to a field.
var headerAliases = map[string]field{
	"college":               fieldCollege,
	"college name":          fieldCollege,
	"name of college":       fieldCollege,
	"name of the college":   fieldCollege,
	"institute":             fieldCollege,
	"institute name":        fieldCollege,
	"name of institute":     fieldCollege,
	"name of the institute": fieldCollege,
	"college institute":     fieldCollege,
	"allotted institute":    fieldCollege,
	"course":                fieldCourse,
	"course name":           fieldCourse,
	"program":               fieldCourse,
	"programme":             fieldCourse,
	"branch":                fieldCourse,
	"degree":                fieldCourse,
	"allotted course":       fieldCourse,
	"category":              fieldCategory,
	"cat":                   fieldCategory,
	"allotted category":     fieldCategory,
	"candidate category":    fieldCategory,
	"seat category":         fieldCategory,
	"quota":                 fieldQuota,
	"allotted quota":        fieldQuota,
	"quota type":            fieldQuota,
	"seat type":             fieldQuota,
	"rank":                  fieldRank,
	"closing rank":          fieldRank,
	"cutoff rank":           fieldRank,
	"cut off rank":          fieldRank,
	"cutoff":                fieldRank,
	"last rank":             fieldRank,
	"air":                   fieldRank,
	"all india rank":        fieldRank,
	"neet rank":             fieldRank,
	"percentile":            fieldPercentile,
	"closing percentile":    fieldPercentile,
	"seats":                 fieldSeats,
	"seats available":       fieldSeats,
	"total seats":           fieldSeats,
	"intake":                fieldSeats,
	"seats filled":          fieldFilled,
	"filled":                fieldFilled,
	"fees":                  fieldFees,
	"fee":                   fieldFees,
	"annual fee":            fieldFees,
	"annual fees":           fieldFees,
	"tuition fee":           fieldFees,
	"round":                 fieldRound,
	"counselling round":     fieldRound,
	"year":                  fieldYear,
}

func headerKey(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}

// mapHeader maps recognised header cells to column indexes. The first
// column for a field wins.
func mapHeader(row models.Row) map[field]int {
	cols := make(map[field]int)
	for colIdx, cell := range row.Cells {
		f, ok := headerAliases[headerKey(cell)]
		if !ok {
			continue
		}
		if _, dup := cols[f]; !dup {
			cols[f] = colIdx
		}
	}
	return cols
}

type tabularHeader struct {
	pos  int // position in RawSheet.Rows
	cols map[field]int
}

// findHeader locates a header row with at least a college and a rank column
// whose data rows are dense enough to be a table.
func findHeader(rows []models.Row, params TabularParams) (tabularHeader, bool) {
	for i := 0; i < len(rows) && i < params.HeaderScanRows; i++ {
		cols := mapHeader(rows[i])
		if len(cols) < params.MinMappedColumns {
			continue
		}
		if _, ok := cols[fieldCollege]; !ok {
			continue
		}
		if _, ok := cols[fieldRank]; !ok {
			continue
		}
		if mappedDensity(rows[i+1:], cols, params.SampleRows) < params.DensityMin {
			continue
		}
		return tabularHeader{pos: i, cols: cols}, true
	}
	return tabularHeader{}, false
}

// mappedDensity is the share of non-empty cells under mapped columns in the
// first sample rows.
func mappedDensity(rows []models.Row, cols map[field]int, sample int) float64 {
	if len(rows) > sample {
		rows = rows[:sample]
	}
	total := len(rows) * len(cols)
	if total == 0 {
		return 0
	}
	count := 0
	for _, row := range rows {
		for _, colIdx := range cols {
			if colIdx < len(row.Cells) && row.Cells[colIdx] != "" {
				count++
			}
		}
	}
	return float64(count) / float64(total)
}

func (h tabularHeader) cell(row models.Row, f field) string {
	colIdx, ok := h.cols[f]
	if !ok || colIdx >= len(row.Cells) {
		return ""
	}
	return row.Cells[colIdx]
}

// extractTabular emits one record per data row. Blank college and course
// cells inherit the value above them, which is how merged cells read back.
func extractTabular(sheet models.RawSheet, out *emitter) {
	h, ok := findHeader(sheet.Rows, DefaultTabularParams())
	if !ok {
		out.warnf("no tabular header found")
		return
	}

	var college, course string
	for _, row := range sheet.Rows[h.pos+1:] {
		if v := h.cell(row, fieldCollege); v != "" {
			college = v
		}
		if v := h.cell(row, fieldCourse); v != "" {
			course = v
		}

		rankText := h.cell(row, fieldRank)
		rank, ok := normalize.Rank(rankText)
		if !ok {
			out.warnf("row %d: rank %q is not a positive integer", row.Index+1, rankText)
			continue
		}
		if college == "" || course == "" {
			out.warnf("row %d: missing college or course", row.Index+1)
			continue
		}

		rec := out.record(group{
			college:  college,
			course:   course,
			category: h.cell(row, fieldCategory),
			quota:    h.cell(row, fieldQuota),
		}, rankCell{row: row.Index, rank: rank})

		if n, ok := normalize.Rank(h.cell(row, fieldYear)); ok {
			rec.Year = n
		}
		if n, ok := normalize.Rank(h.cell(row, fieldRound)); ok {
			rec.Round = n
		}
		rec.Percentile = normalize.Percentile(h.cell(row, fieldPercentile))
		rec.SeatsAvailable = normalize.Seats(h.cell(row, fieldSeats))
		rec.SeatsFilled = normalize.Seats(h.cell(row, fieldFilled))
		rec.Fees = normalize.Fees(h.cell(row, fieldFees))

		out.records = append(out.records, rec)
	}
}
