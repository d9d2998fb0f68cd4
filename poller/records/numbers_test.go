package records

import "testing"

func TestParseNumberSeparatorHeuristic(t *testing.T) {
	tests := []struct {
		input string
		want  interface{}
	}{
		{"1.234,56", 1234.56},
		{"1,234.56", 1234.56},
		{"1500", int64(1500)},
		{"1,5", 1.5},
		{"1.5", 1.5},
		{"1,234", int64(1234)},  // 3-digit group: thousands, accepted ambiguity
		{"1.234", int64(1234)},  // symmetric rule
		{"1.234.567", int64(1234567)},
		{"1,234,567", int64(1234567)},
		{"1.234.567,89", 1234567.89},
		{"1,234,567.89", 1234567.89},
		{"-12,5", -12.5},
		{"0,50", 0.5},
	}
	for _, tc := range tests {
		got := ParseNumber(tc.input)
		if got != tc.want {
			t.Errorf("ParseNumber(%q) got %v (%T), expected %v (%T).", tc.input, got, got, tc.want, tc.want)
		}
	}
}

func TestParseNumberCurrencyGlyphs(t *testing.T) {
	tests := []struct {
		input string
		want  interface{}
	}{
		{"€ 45,50", 45.5},
		{"$1,234.56", 1234.56},
		{"£300", int64(300)},
		{"  $ 19.99 ", 19.99},
	}
	for _, tc := range tests {
		got := ParseNumber(tc.input)
		if got != tc.want {
			t.Errorf("ParseNumber(%q) got %v, expected %v.", tc.input, got, tc.want)
		}
	}
}

func TestParseNumberPassthrough(t *testing.T) {
	if got := ParseNumber(nil); got != nil {
		t.Errorf("ParseNumber(nil) got %v, expected nil.", got)
	}
	if got := ParseNumber(""); got != nil {
		t.Errorf("ParseNumber(\"\") got %v, expected nil.", got)
	}
	if got := ParseNumber("   "); got != nil {
		t.Errorf("ParseNumber(blank) got %v, expected nil.", got)
	}
	// No numeric interpretation: the trimmed original comes back unchanged.
	if got := ParseNumber("  n/a "); got != "n/a" {
		t.Errorf("ParseNumber(n/a) got %v, expected \"n/a\".", got)
	}
}

func TestParseNumberIdempotent(t *testing.T) {
	inputs := []interface{}{"1.234,56", "1500", "€ 45,50", 12.25, 7, int64(42), float64(1500)}
	for _, input := range inputs {
		once := ParseNumber(input)
		twice := ParseNumber(once)
		if once != twice {
			t.Errorf("ParseNumber not idempotent for %v: first %v (%T), second %v (%T).", input, once, once, twice, twice)
		}
	}
}

func TestParseNumberIntegerValuedFloats(t *testing.T) {
	if got := ParseNumber(float64(1500)); got != int64(1500) {
		t.Errorf("ParseNumber(1500.0) got %v (%T), expected int64 1500.", got, got)
	}
	if got := ParseNumber(12.5); got != 12.5 {
		t.Errorf("ParseNumber(12.5) got %v, expected 12.5.", got)
	}
}

func TestConvertFuelEconomy(t *testing.T) {
	tests := []struct {
		input interface{}
		want  interface{}
	}{
		{5.46, 18.32},   // L/100km converted to km/l
		{"5,46", 18.32}, // comma-as-decimal coercion
		{45, 45.0},      // already km/l-like, outside plausible range
		{1.5, 1.5},      // below range, passes through
		{30.0, 30.0},    // bounds are exclusive
		{2.0, 2.0},
		{nil, nil},
		{"", nil},
		{"unknown", "unknown"},
	}
	for _, tc := range tests {
		got := ConvertFuelEconomy(tc.input)
		if got != tc.want {
			t.Errorf("ConvertFuelEconomy(%v) got %v (%T), expected %v.", tc.input, got, got, tc.want)
		}
	}
}
