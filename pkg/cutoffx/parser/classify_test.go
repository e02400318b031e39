package parser

import (
	"testing"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		cell     string
		expected models.Label
	}{
		{"123", models.LabelRank},
		{" 450 ", models.LabelRank},
		{"123A", models.LabelUnknown},
		{"12.5", models.LabelUnknown},
		{"XYZ MEDICAL COLLEGE", models.LabelCollege},
		{"All India Institute of Medical Sciences", models.LabelCollege},
		{"MBBS", models.LabelCourse},
		{"M.D. (PAEDIATRICS)", models.LabelCourse},
		{"BDS", models.LabelCourse},
		{"OBC", models.LabelCategory},
		{"GM", models.LabelCategory},
		{"2AG NRI", models.LabelCategory},
		// STATE contains ST, so rank order puts it under Category
		{"STATE", models.LabelCategory},
		{"MANAGEMENT", models.LabelQuota},
		{"PAID", models.LabelQuota},
		{"remarks", models.LabelUnknown},
		{"", models.LabelUnknown},
	}

	for _, tt := range tests {
		result := Classify(tt.cell)
		if result != tt.expected {
			t.Errorf("Classify(%q) = %q, expected %q", tt.cell, result, tt.expected)
		}
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		label    models.Label
		cell     string
		expected bool
	}{
		{models.LabelRank, "123", true},
		{models.LabelRank, "123A", false},
		{models.LabelQuota, "STATE", true},
		{models.LabelCategory, "STATE", true},
		{models.LabelQuota, "ALL INDIA", true},
		{models.LabelCategory, "NRI", true},
		{models.LabelQuota, "NRI", false},
		{models.LabelCollege, "MBBS", false},
		{models.LabelUnknown, "anything", false},
		{models.LabelCourse, "", false},
	}

	for _, tt := range tests {
		result := Is(tt.label, tt.cell)
		if result != tt.expected {
			t.Errorf("Is(%q, %q) = %v, expected %v", tt.label, tt.cell, result, tt.expected)
		}
	}
}

func TestIsGrandTotal(t *testing.T) {
	if !IsGrandTotal([]string{"GRAND TOTAL", "500"}) {
		t.Error("Expected GRAND TOTAL row to be detected")
	}
	if !IsGrandTotal([]string{"", "grand total"}) {
		t.Error("Expected lower-case marker in any cell to be detected")
	}
	if IsGrandTotal([]string{"TOTAL", "500"}) {
		t.Error("Plain TOTAL must not be treated as grand total")
	}
}
