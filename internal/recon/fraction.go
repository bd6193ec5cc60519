package recon

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	mixedNumberRe = regexp.MustCompile(`^(\d+)[- ](\d+)/(\d+)$`)
	fractionRe    = regexp.MustCompile(`^(\d+)/(\d+)$`)
	decimalRe     = regexp.MustCompile(`^\d*\.?\d+$`)
)

// ParseThickness parses a thickness value as extracted from a document:
// a plain decimal ("0.375"), a fraction ("5/16"), or a mixed number
// ("1-1/2", "1 1/2"), with an optional trailing inch marker. The result is
// rounded to four decimals.
func ParseThickness(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSuffix(s, "”")
	for _, suffix := range []string{"inches", "inch", "in."} {
		s = strings.TrimSuffix(strings.TrimSpace(s), suffix)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if m := mixedNumberRe.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den == 0 {
			return 0, false
		}
		return round4(whole + num/den), true
	}
	if m := fractionRe.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den == 0 {
			return 0, false
		}
		return round4(num / den), true
	}
	if decimalRe.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return round4(v), true
	}
	return 0, false
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
