package models

// NormalizedFields holds canonical codes derived from a record's raw fields.
type NormalizedFields struct {
	// Category is the canonical category code (UR, OBC, OBC-NCL, SC, ...).
	Category string `json:"category"`
	// Quota is the canonical quota code (General, STATE, NRI, MANAGEMENT, ...).
	Quota string `json:"quota"`
	// CounsellingType is one of AIQ, KEA, COMEDK, PRIVATE, NRI, DEFENCE, SPORTS, RURAL, STATE.
	CounsellingType string `json:"counselling_type"`
	// State is the Indian state or UT found in the college name, empty when none matched.
	State string `json:"state,omitempty"`
}

// CutoffRecord is one extracted cutoff rank with its context.
type CutoffRecord struct {
	// CollegeName is the cleaned college name.
	CollegeName string `json:"college_name"`
	// CourseName is the cleaned course name.
	CourseName string `json:"course_name"`
	// Category is the cleaned category text as it appeared in the sheet.
	Category string `json:"category"`
	// Quota is the cleaned quota text, or the inferred quota for KEA sheets.
	Quota string `json:"quota"`
	// CutoffRank is the rank value, always positive for retained records.
	CutoffRank int `json:"cutoff_rank"`
	// Year is the counselling year.
	Year int `json:"year"`
	// Round is the counselling round number.
	Round int `json:"round"`
	// SourceFile is the workbook file name the record came from.
	SourceFile string `json:"source_file"`
	// Sheet is the worksheet name.
	Sheet string `json:"sheet,omitempty"`
	// Row is the 0-based row index of the rank cell.
	Row int `json:"row"`
	// CounsellingType is the raw counselling authority text (usually the source category).
	CounsellingType string `json:"-"`
	// Percentile is the closing percentile when the sheet provides one.
	Percentile *float64 `json:"percentile,omitempty"`
	// SeatsAvailable is the seat count when the sheet provides one.
	SeatsAvailable int `json:"seats_available,omitempty"`
	// SeatsFilled is the filled seat count when the sheet provides one.
	SeatsFilled int `json:"seats_filled,omitempty"`
	// Fees is the annual fee when the sheet provides one.
	Fees *float64 `json:"fees,omitempty"`
	// Normalized holds the canonical codes.
	Normalized NormalizedFields `json:"normalized"`
}

// Valid reports whether the record satisfies the retention invariant.
func (r CutoffRecord) Valid() bool {
	return r.CollegeName != "" && r.CourseName != "" && r.CutoffRank > 0
}
