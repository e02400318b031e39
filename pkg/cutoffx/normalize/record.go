package normalize

import "github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"

// Record returns a copy of r with its text fields cleaned and its
// Normalized fields derived. A counselling type already set on
// r.Normalized is kept (canonicalized); otherwise it comes from
// r.CounsellingType, then r.Quota.
func Record(r models.CutoffRecord) models.CutoffRecord {
	r.CollegeName = Name(r.CollegeName)
	r.CourseName = DedupFragments(CleanText(r.CourseName))
	r.Category = CleanText(r.Category)
	r.Quota = CleanText(r.Quota)

	authority := r.Normalized.CounsellingType
	if authority == "" {
		authority = r.CounsellingType
	}
	if authority == "" {
		authority = r.Quota
	}
	r.Normalized = models.NormalizedFields{
		Category:        Category(r.Category),
		Quota:           Quota(r.Quota),
		CounsellingType: CounsellingType(authority),
		State:           ExtractState(r.CollegeName),
	}
	return r
}

// Records normalizes recs in place order, dropping records that fail the
// retention invariant. The second return value counts dropped records.
func Records(recs []models.CutoffRecord) ([]models.CutoffRecord, int) {
	out := make([]models.CutoffRecord, 0, len(recs))
	dropped := 0
	for _, r := range recs {
		n := Record(r)
		if !n.Valid() {
			dropped++
			continue
		}
		out = append(out, n)
	}
	return out, dropped
}
