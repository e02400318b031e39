// Package cutoffx extracts counselling cutoff ranks from spreadsheet exports,
// loads them into SQLite and answers filtered queries over them.
package cutoffx

import (
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/rs/zerolog"
)

// Options configures extraction behavior.
type Options struct {
	// RankPolicy decides how rank runs become records. Empty means models.RankPerRow.
	RankPolicy models.RankPolicy
	// Layout forces a sheet layout for every sheet. Empty means detect per sheet.
	Layout models.Layout
	// Sheets restricts extraction to the named sheets. Empty means all sheets.
	Sheets []string
	// Source overrides the source info resolved from the path. Zero fields
	// are filled from the path.
	Source models.SourceInfo
	// Workers bounds concurrent workbook parsing in the query service.
	// Zero means DefaultWorkers.
	Workers int
	// Logger receives warnings. Nil disables logging.
	Logger *zerolog.Logger
}

// DefaultWorkers is the default number of concurrent workbook parses.
const DefaultWorkers = 4

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		RankPolicy: models.RankPerRow,
		Workers:    DefaultWorkers,
	}
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return DefaultWorkers
	}
	return o.Workers
}

// Policy returns the effective rank policy.
func (o Options) Policy() models.RankPolicy {
	if o.RankPolicy == "" {
		return models.RankPerRow
	}
	return o.RankPolicy
}

// ShouldIncludeSheet reports whether a sheet is selected.
func (o Options) ShouldIncludeSheet(name string) bool {
	if len(o.Sheets) == 0 {
		return true
	}
	for _, s := range o.Sheets {
		if s == name {
			return true
		}
	}
	return false
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}
