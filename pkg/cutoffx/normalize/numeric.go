package normalize

import (
	"strconv"
	"strings"
)

var numberJunk = strings.NewReplacer(
	",", "",
	" ", "",
	"₹", "",
	"/-", "",
	"%", "",
)

func numericText(s string) string {
	s = strings.TrimSpace(CleanText(s))
	upper := strings.ToUpper(s)
	for _, p := range []string{"RS.", "RS", "INR"} {
		if strings.HasPrefix(upper, p) {
			s = s[len(p):]
			break
		}
	}
	return numberJunk.Replace(s)
}

// Rank parses a rank cell. Integral floats ("101.0") are accepted; anything
// else, and ranks below 1, report ok=false.
func Rank(s string) (int, bool) {
	t := numericText(s)
	if t == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(t); err == nil {
		return n, n > 0
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || f != float64(int(f)) || f < 1 {
		return 0, false
	}
	return int(f), true
}

// Percentile parses a percentile value, nil when invalid.
func Percentile(s string) *float64 {
	return floatOrNil(s)
}

// Fees parses a fee amount, nil when invalid.
func Fees(s string) *float64 {
	return floatOrNil(s)
}

// Seats parses a seat count, 0 when invalid.
func Seats(s string) int {
	n, ok := Rank(s)
	if !ok {
		return 0
	}
	return n
}

func floatOrNil(s string) *float64 {
	t := numericText(s)
	if t == "" {
		return nil
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return nil
	}
	return &f
}
