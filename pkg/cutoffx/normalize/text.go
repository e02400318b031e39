// Package normalize cleans extracted strings and maps category, quota and
// counselling labels onto a fixed vocabulary.
package normalize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)), // zero-width and BOM
			width.Fold,
		)
	},
}

// CleanText folds Unicode compatibility forms, collapses whitespace runs to a
// single space and trims the result.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(out), " ")
}

// DedupFragments drops verbatim repeats from a comma separated string with
// more than two parts, keeping first occurrences in order.
func DedupFragments(s string) string {
	parts := strings.Split(s, ",")
	if len(parts) <= 2 {
		return s
	}
	seen := make(map[string]struct{}, len(parts))
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		kept = append(kept, p)
	}
	return strings.Join(kept, ", ")
}

type correction struct {
	re   *regexp.Regexp
	with string
}

// cityCorrections fixes misspellings seen in counselling exports. Proper
// names (Madras, Bombay) are left alone since they appear in college names.
var cityCorrections = []correction{
	{regexp.MustCompile(`(?i)\bbanglore\b`), "Bangalore"},
	{regexp.MustCompile(`(?i)\bbangalure\b`), "Bengaluru"},
	{regexp.MustCompile(`(?i)\bhyderbad\b`), "Hyderabad"},
	{regexp.MustCompile(`(?i)\bahemdabad\b`), "Ahmedabad"},
	{regexp.MustCompile(`(?i)\bahmadabad\b`), "Ahmedabad"},
	{regexp.MustCompile(`(?i)\bvishakapatnam\b`), "Visakhapatnam"},
	{regexp.MustCompile(`(?i)\bvishakhapatnam\b`), "Visakhapatnam"},
	{regexp.MustCompile(`(?i)\btiruvananthapuram\b`), "Thiruvananthapuram"},
	{regexp.MustCompile(`(?i)\bchandigrah\b`), "Chandigarh"},
	{regexp.MustCompile(`(?i)\bmangalor\b`), "Mangalore"},
	{regexp.MustCompile(`(?i)\bbelgam\b`), "Belgaum"},
	{regexp.MustCompile(`(?i)\bgulburga\b`), "Kalaburagi"},
}

// CorrectCity rewrites known city misspellings. An all-caps match is replaced
// with an all-caps correction.
func CorrectCity(s string) string {
	for _, c := range cityCorrections {
		s = c.re.ReplaceAllStringFunc(s, func(m string) string {
			if m == strings.ToUpper(m) {
				return strings.ToUpper(c.with)
			}
			return c.with
		})
	}
	return s
}

// Name applies the full cleanup used for college and course names.
func Name(s string) string {
	return CorrectCity(DedupFragments(CleanText(s)))
}

// tokens splits an upper-cased string on anything that is not a letter or digit.
func tokens(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, f := range strings.FieldsFunc(strings.ToUpper(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out[f] = struct{}{}
	}
	return out
}
