package cutoffx

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/normalize"
)

var (
	// AIQ_PG_2024, KEA-2023
	dirRe = regexp.MustCompile(`^(.+?)[_\- ]((?:19|20)\d{2})$`)
	// round_2, Round-2, R2, rnd2
	roundRe = regexp.MustCompile(`(?i)(?:^|[^a-z])(?:round|rnd|r)[_\- ]?(\d{1,2})(?:[^0-9]|$)`)
	// trailing _2 before the extension
	trailingRoundRe = regexp.MustCompile(`[_\-](\d{1,2})$`)
	yearRe          = regexp.MustCompile(`(?:^|[^0-9])((?:19|20)\d{2})(?:[^0-9]|$)`)
)

// ResolveSource reads category, year and round from a path shaped like
// cutoffs/<CATEGORY>_<YEAR>/<...>_<ROUND>.xlsx. Year falls back to a four
// digit token in the file name. Missing year or round is an error.
func ResolveSource(path string) (models.SourceInfo, error) {
	info := models.SourceInfo{Path: path}

	dir := filepath.Base(filepath.Dir(path))
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if m := dirRe.FindStringSubmatch(dir); m != nil {
		info.Category = strings.ToUpper(m[1])
		info.Year, _ = strconv.Atoi(m[2])
	}
	if info.Year == 0 {
		if m := yearRe.FindStringSubmatch(base); m != nil {
			info.Year, _ = strconv.Atoi(m[1])
		}
	}
	if m := roundRe.FindStringSubmatch(base); m != nil {
		info.Round, _ = strconv.Atoi(m[1])
	} else if m := trailingRoundRe.FindStringSubmatch(base); m != nil {
		info.Round, _ = strconv.Atoi(m[1])
	}
	if info.Category == "" && dir != "." && dir != string(filepath.Separator) {
		info.Category = strings.ToUpper(dir)
	}
	info.CounsellingType = normalize.CounsellingType(info.Category)

	if info.Year == 0 || info.Round == 0 {
		return info, fmt.Errorf("%w: %s", ErrUnparseableSource, path)
	}
	return info, nil
}

// mergeSource fills zero fields of override from resolved.
func mergeSource(resolved, override models.SourceInfo) models.SourceInfo {
	out := resolved
	if override.Category != "" {
		out.Category = override.Category
		out.CounsellingType = normalize.CounsellingType(override.Category)
	}
	if override.Year != 0 {
		out.Year = override.Year
	}
	if override.Round != 0 {
		out.Round = override.Round
	}
	if override.CounsellingType != "" {
		out.CounsellingType = override.CounsellingType
	}
	return out
}
