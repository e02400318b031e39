package parser

import (
	"strings"
	"testing"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
)

func col(cells ...string) [][]string {
	rows := make([][]string, len(cells))
	for i, c := range cells {
		rows[i] = []string{c}
	}
	return rows
}

func testContext(counselling string) SheetContext {
	return SheetContext{
		Source: models.SourceInfo{
			Path:            "cutoffs/STATE_2024/medical_round_1.xlsx",
			Category:        "STATE",
			Year:            2024,
			Round:           1,
			CounsellingType: counselling,
		},
		Policy: models.RankPerRow,
	}
}

func TestExtractSheet_RowGroupScenario(t *testing.T) {
	sheet := FromRows("S", col("XYZ MEDICAL COLLEGE", "MBBS", "OBC", "STATE", "101", "102"))

	got := ExtractSheet(sheet, testContext("STATE"))

	if got.Layout != models.LayoutRowGroup {
		t.Fatalf("Expected rowgroup layout, got %q", got.Layout)
	}
	if len(got.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d (%v)", len(got.Records), got.Warnings)
	}
	for i, want := range []int{101, 102} {
		r := got.Records[i]
		if r.CollegeName != "XYZ MEDICAL COLLEGE" || r.CourseName != "MBBS" ||
			r.Category != "OBC" || r.Quota != "STATE" {
			t.Errorf("record %d has wrong context: %+v", i, r)
		}
		if r.CutoffRank != want {
			t.Errorf("record %d: expected rank %d, got %d", i, want, r.CutoffRank)
		}
		if r.Year != 2024 || r.Round != 1 || r.SourceFile != "medical_round_1.xlsx" {
			t.Errorf("record %d: source fields not applied: %+v", i, r)
		}
	}
}

func TestExtractSheet_MinRankPolicy(t *testing.T) {
	sheet := FromRows("S", col("XYZ MEDICAL COLLEGE", "MBBS", "OBC", "STATE", "340", "101", "102"))
	ctx := testContext("STATE")
	ctx.Policy = models.RankMin

	got := ExtractSheet(sheet, ctx)

	if len(got.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(got.Records))
	}
	if got.Records[0].CutoffRank != 101 {
		t.Errorf("Expected min rank 101, got %d", got.Records[0].CutoffRank)
	}
}

func TestExtractSheet_RowGroupMultipleGroups(t *testing.T) {
	sheet := FromRows("S", col(
		"ABC MEDICAL COLLEGE",
		"MBBS",
		"EWS", "ALL INDIA", "10", "20",
		"SC", "STATE", "300",
		"BDS",
		"OBC", "40",
		"DEF DENTAL COLLEGE",
		"MDS",
		"EWS", "55",
	))

	got := ExtractSheet(sheet, testContext("STATE"))

	type key struct {
		college, course, category, quota string
		rank                             int
	}
	want := []key{
		{"ABC MEDICAL COLLEGE", "MBBS", "EWS", "ALL INDIA", 10},
		{"ABC MEDICAL COLLEGE", "MBBS", "EWS", "ALL INDIA", 20},
		{"ABC MEDICAL COLLEGE", "MBBS", "SC", "STATE", 300},
		{"ABC MEDICAL COLLEGE", "BDS", "OBC", "", 40},
		{"DEF DENTAL COLLEGE", "MDS", "EWS", "", 55},
	}
	if len(got.Records) != len(want) {
		t.Fatalf("Expected %d records, got %d: %+v", len(want), len(got.Records), got.Records)
	}
	for i, w := range want {
		r := got.Records[i]
		g := key{r.CollegeName, r.CourseName, r.Category, r.Quota, r.CutoffRank}
		if g != w {
			t.Errorf("record %d: expected %+v, got %+v", i, w, g)
		}
	}
}

func TestExtractSheet_KEASourceDefaultsQuota(t *testing.T) {
	sheet := FromRows("S", col("XYZ MEDICAL COLLEGE", "MBBS", "GM", "remarks", "12", "15"))

	got := ExtractSheet(sheet, testContext("KEA"))

	if len(got.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d (%v)", len(got.Records), got.Warnings)
	}
	if got.Records[0].Quota != "STATE" {
		t.Errorf("Expected quota STATE for KEA source, got %q", got.Records[0].Quota)
	}
}

func TestExtractSheet_OrphanRanksWarn(t *testing.T) {
	sheet := FromRows("S", col("1", "2", "XYZ MEDICAL COLLEGE", "3", "MBBS", "4"))

	got := ExtractSheet(sheet, testContext("STATE"))

	if len(got.Records) != 1 || got.Records[0].CutoffRank != 4 {
		t.Fatalf("Expected only rank 4 to be emitted, got %+v", got.Records)
	}
	if len(got.Warnings) != 2 {
		t.Errorf("Expected 2 warnings (one per orphan run), got %v", got.Warnings)
	}
}

func TestExtractSheet_KEAScenario(t *testing.T) {
	sheet := FromRows("S", col("ABC DENTAL COLLEGE", "BDS", "2AG NRI", "450"))

	got := ExtractSheet(sheet, testContext("KEA"))

	if got.Layout != models.LayoutKEA {
		t.Fatalf("Expected kea layout, got %q", got.Layout)
	}
	if len(got.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(got.Records))
	}
	r := got.Records[0]
	if r.CollegeName != "ABC DENTAL COLLEGE" || r.CourseName != "BDS" {
		t.Errorf("wrong college/course: %+v", r)
	}
	if r.Quota != "NRI" || r.Category != "2AG NRI" || r.CutoffRank != 450 {
		t.Errorf("Expected quota NRI, category '2AG NRI', rank 450; got %q %q %d", r.Quota, r.Category, r.CutoffRank)
	}
}

func TestExtractSheet_KEATriplesResync(t *testing.T) {
	sheet := FromRows("S", col(
		"ABC DENTAL COLLEGE",
		"BDS", "GM MNG", "1200",
		"BDS", "note", // broken triple
		"MDS", "3BG", "5000",
	))

	got := ExtractSheet(sheet, testContext("KEA"))

	if len(got.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d: %+v", len(got.Records), got.Records)
	}
	if got.Records[0].Quota != "MANAGEMENT" {
		t.Errorf("Expected MANAGEMENT quota, got %q", got.Records[0].Quota)
	}
	if got.Records[1].CourseName != "MDS" || got.Records[1].Quota != "STATE" || got.Records[1].CutoffRank != 5000 {
		t.Errorf("Expected resynced MDS/STATE/5000 record, got %+v", got.Records[1])
	}
	if len(got.Warnings) == 0 {
		t.Error("Expected a warning for the broken triple")
	}
}

func TestExtractSheet_AIQ(t *testing.T) {
	sheet := FromRows("S", col("GOVT MEDICAL COLLEGE, KOTTAYAM", "MBBS", "OPEN", "ALL INDIA", "2100", "note", "1980"))

	got := ExtractSheet(sheet, testContext("AIQ"))

	if got.Layout != models.LayoutAIQ {
		t.Fatalf("Expected aiq layout, got %q", got.Layout)
	}
	if len(got.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got.Records))
	}
	r := got.Records[0]
	if r.CollegeName != "GOVT MEDICAL COLLEGE, KOTTAYAM" || r.CourseName != "MBBS" ||
		r.Category != "OPEN" || r.Quota != "ALL INDIA" || r.CutoffRank != 2100 {
		t.Errorf("unexpected AIQ record: %+v", r)
	}
	if len(got.Warnings) != 1 {
		t.Errorf("Expected one warning for the note row, got %v", got.Warnings)
	}
}

func TestExtractSheet_Tabular(t *testing.T) {
	sheet := FromRows("S", [][]string{
		{"Round 2 allotment"},
		{"Sl", "College Name", "Course", "Category", "Quota", "Closing Rank", "Fees"},
		{"1", "ABC MEDICAL COLLEGE", "MBBS", "GM", "STATE", "1,204", "Rs. 60,000"},
		{"2", "", "", "SC", "STATE", "9876", ""},
		{"3", "XYZ DENTAL COLLEGE", "BDS", "OBC", "MANAGEMENT", "n/a", ""},
		{"GRAND TOTAL", "", "", "", "", "11080"},
	})

	got := ExtractSheet(sheet, testContext("STATE"))

	if got.Layout != models.LayoutTabular {
		t.Fatalf("Expected tabular layout, got %q", got.Layout)
	}
	if len(got.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d: %+v", len(got.Records), got.Records)
	}
	if got.Records[0].CutoffRank != 1204 || got.Records[0].Fees == nil || *got.Records[0].Fees != 60000 {
		t.Errorf("unexpected first record: %+v", got.Records[0])
	}
	second := got.Records[1]
	if second.CollegeName != "ABC MEDICAL COLLEGE" || second.CourseName != "MBBS" || second.Category != "SC" {
		t.Errorf("Expected merged cells to inherit college/course, got %+v", second)
	}
	if len(got.Warnings) != 1 {
		t.Errorf("Expected 1 warning for the n/a rank, got %v", got.Warnings)
	}
}

func TestExtractSheet_GrandTotalNeverEmitted(t *testing.T) {
	layouts := map[string][][]string{
		"rowgroup": append(col("XYZ MEDICAL COLLEGE", "MBBS", "OBC", "STATE", "101"), []string{"GRAND TOTAL", "500"}),
		"aiq":      append(col("XYZ MEDICAL COLLEGE", "MBBS", "OPEN", "AIQ", "101"), []string{"GRAND TOTAL", "500"}),
		"kea":      append(col("XYZ MEDICAL COLLEGE", "MBBS", "GM", "101"), []string{"GRAND TOTAL", "500"}),
		"tabular": {
			{"College", "Course", "Rank"},
			{"XYZ MEDICAL COLLEGE", "MBBS", "101"},
			{"GRAND TOTAL", "", "500"},
		},
	}

	for name, rows := range layouts {
		got := ExtractSheet(FromRows(name, rows), testContext("STATE"))
		if string(got.Layout) != name {
			t.Errorf("%s: detected layout %q", name, got.Layout)
		}
		for _, r := range got.Records {
			if r.CutoffRank == 500 || strings.Contains(strings.ToUpper(r.CollegeName), "GRAND TOTAL") {
				t.Errorf("%s: grand total leaked into %+v", name, r)
			}
		}
		if len(got.Records) != 1 {
			t.Errorf("%s: expected 1 record, got %d", name, len(got.Records))
		}
	}
}

func TestExtractSheet_ForcedLayout(t *testing.T) {
	sheet := FromRows("S", col("XYZ MEDICAL COLLEGE", "MBBS", "101"))
	ctx := testContext("STATE")
	ctx.Layout = models.LayoutTabular

	got := ExtractSheet(sheet, ctx)

	if got.Layout != models.LayoutTabular || len(got.Records) != 0 || len(got.Warnings) != 1 {
		t.Errorf("Expected forced tabular layout with a header warning, got %+v", got)
	}
}

func TestExtractSheet_ForcedLayoutShortSheet(t *testing.T) {
	sheets := map[string][][]string{
		"empty":    nil,
		"two rows": col("XYZ MEDICAL COLLEGE", "MBBS"),
	}

	for _, layout := range []models.Layout{models.LayoutAIQ, models.LayoutKEA} {
		for name, rows := range sheets {
			ctx := testContext("STATE")
			ctx.Layout = layout

			got := ExtractSheet(FromRows("Notes", rows), ctx)

			if got.Layout != layout {
				t.Errorf("%s/%s: Expected forced layout, got %q", layout, name, got.Layout)
			}
			if len(got.Records) != 0 {
				t.Errorf("%s/%s: Expected no records, got %+v", layout, name, got.Records)
			}
			if len(got.Warnings) == 0 {
				t.Errorf("%s/%s: Expected a warning for the short sheet", layout, name)
			}
		}
	}
}

func TestExtractSheet_ForcedLayoutWideTitleRow(t *testing.T) {
	rows := [][]string{
		{"XYZ MEDICAL COLLEGE", "extra"},
		{"MBBS"}, {"OPEN"}, {"AIQ"}, {"101"},
	}
	ctx := testContext("AIQ")
	ctx.Layout = models.LayoutAIQ

	got := ExtractSheet(FromRows("S", rows), ctx)

	if len(got.Warnings) == 0 || !strings.Contains(got.Warnings[0], "title row") {
		t.Errorf("Expected a title row warning, got %v", got.Warnings)
	}
}

func TestExtractSheet_CounsellingTypeFollowsSource(t *testing.T) {
	sheet := FromRows("S", col("ABC DENTAL COLLEGE", "BDS", "2AG", "450"))

	got := ExtractSheet(sheet, testContext("KEA"))
	if len(got.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(got.Records))
	}
	r := got.Records[0]
	if r.Quota != "STATE" {
		t.Errorf("Expected KEA quota default STATE, got %q", r.Quota)
	}
	if r.Normalized.CounsellingType != "KEA" {
		t.Errorf("Expected counselling type KEA, got %q", r.Normalized.CounsellingType)
	}
	if r.CounsellingType != "STATE" {
		t.Errorf("Expected raw source category STATE, got %q", r.CounsellingType)
	}

	ctx := testContext("")
	ctx.Source.Category = "KEA"
	got = ExtractSheet(sheet, ctx)
	if len(got.Records) != 1 || got.Records[0].Quota != "STATE" || got.Records[0].Normalized.CounsellingType != "KEA" {
		t.Errorf("Expected KEA derived from the source category, got %+v", got.Records)
	}
}
