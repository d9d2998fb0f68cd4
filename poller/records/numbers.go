package records

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber normalizes a locale-ambiguous numeric value. Already-numeric
// input is returned unchanged (integer-valued floats come back as int64),
// so normalization is idempotent. Strings are stripped of currency glyphs
// and separator-disambiguated structurally; a string with no numeric
// interpretation is returned trimmed but otherwise unchanged. Nil or empty
// input returns nil.
func ParseNumber(v interface{}) interface{} {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		return int64(n)
	case int64:
		return n
	case float32:
		return normalizeFloat(float64(n))
	case float64:
		return normalizeFloat(n)
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return nil
		}
		cleaned := stripCurrency(trimmed)
		cleaned = disambiguateSeparators(cleaned)
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return trimmed
		}
		return normalizeFloat(f)
	default:
		return v
	}
}

func normalizeFloat(f float64) interface{} {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

func stripCurrency(s string) string {
	for _, glyph := range []string{"€", "$", "£"} {
		s = strings.ReplaceAll(s, glyph, "")
	}
	return strings.TrimSpace(s)
}

// disambiguateSeparators rewrites a numeric string into strconv form.
// The decimal separator is picked by structure, not locale: when both "," and
// "." occur, the rightmost one is the decimal mark; a lone separator followed
// by exactly 3 digits is a thousands group ("1.234" means 1234 — an accepted
// ambiguity, the API carries no locale metadata); repeated instances of one
// separator are all thousands groups.
func disambiguateSeparators(s string) string {
	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")

	switch {
	case commas > 0 && dots > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas == 1:
		if isThousandsGroup(s, ",") {
			s = strings.Replace(s, ",", "", 1)
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case dots == 1:
		if isThousandsGroup(s, ".") {
			s = strings.Replace(s, ".", "", 1)
		}
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	return s
}

// isThousandsGroup reports whether the single separator in s is followed by
// exactly 3 digits.
func isThousandsGroup(s, sep string) bool {
	tail := s[strings.Index(s, sep)+len(sep):]
	if len(tail) != 3 {
		return false
	}
	for _, r := range tail {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Plausible liters-per-100km range. Figures inside it get converted to
// distance-per-volume; anything else is taken to already be km/l.
const (
	minLitersPer100Km = 2.0
	maxLitersPer100Km = 30.0
)

// ConvertFuelEconomy converts a fuel-consumption figure to km/l. Values
// that look like L/100km (inside the plausible range, exclusive) become
// 100/v; everything else passes through. Both are rounded to 2 decimals.
// Nil or empty input returns nil; a non-numeric string is returned as is.
func ConvertFuelEconomy(v interface{}) interface{} {
	parsed := ParseNumber(v)
	var f float64
	switch n := parsed.(type) {
	case nil:
		return nil
	case int64:
		f = float64(n)
	case float64:
		f = n
	default:
		return parsed
	}
	if f > minLitersPer100Km && f < maxLitersPer100Km {
		return round2(100 / f)
	}
	return round2(f)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
