package records

import (
	"testing"
	"time"
)

func TestParseDateDayFirstWinsTies(t *testing.T) {
	got, ok := ParseDate("28/02/2027")
	if !ok {
		t.Fatal("Expected 28/02/2027 to parse.")
	}
	want := time.Date(2027, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate(28/02/2027) got %s, expected %s.", got, want)
	}

	// Ambiguous on purpose: day-first is tried before month-first.
	got, ok = ParseDate("03/04/2025")
	if !ok {
		t.Fatal("Expected 03/04/2025 to parse.")
	}
	if got.Month() != time.April || got.Day() != 3 {
		t.Errorf("ParseDate(03/04/2025) got %s, expected 3 April 2025.", got)
	}
}

func TestParseDateUsFallback(t *testing.T) {
	// Month 17 is impossible, so the day-first layout fails and the US
	// layout must pick it up.
	got, ok := ParseDate("12/17/2025")
	if !ok {
		t.Fatal("Expected 12/17/2025 to parse.")
	}
	want := time.Date(2025, time.December, 17, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate(12/17/2025) got %s, expected %s.", got, want)
	}
}

func TestParseDateIsoUtc(t *testing.T) {
	got, ok := ParseDate("2025-01-15T10:00:00Z")
	if !ok {
		t.Fatal("Expected ISO timestamp to parse.")
	}
	want := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate got %s, expected %s.", got, want)
	}
	if _, offset := got.Zone(); offset != 0 {
		t.Errorf("ParseDate of a Z timestamp got offset %d, expected 0.", offset)
	}
}

func TestParseDateOffsetlessPinnedToUTC(t *testing.T) {
	// Policy decision: every offset-less value is UTC, on both the ISO and
	// the layout branch.
	for _, input := range []string{
		"2025-06-01T08:30:00",
		"2025-06-01 08:30:00",
		"2025-06-01",
		"01/06/2025",
		"01/06/2025 08:30:00",
	} {
		got, ok := ParseDate(input)
		if !ok {
			t.Errorf("Expected %q to parse.", input)
			continue
		}
		if got.Location() != time.UTC {
			t.Errorf("ParseDate(%q) location got %s, expected UTC.", input, got.Location())
		}
	}
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2025-03-10T14:20:05", time.Date(2025, time.March, 10, 14, 20, 5, 0, time.UTC)},
		{"2025-03-10T14:20:05.123456", time.Date(2025, time.March, 10, 14, 20, 5, 123456000, time.UTC)},
		{"2025-03-10 14:20:05", time.Date(2025, time.March, 10, 14, 20, 5, 0, time.UTC)},
		{"2025-03-10", time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)},
		{"10/03/2025 14:20:05", time.Date(2025, time.March, 10, 14, 20, 5, 0, time.UTC)},
	}
	for _, tc := range tests {
		got, ok := ParseDate(tc.input)
		if !ok {
			t.Errorf("Expected %q to parse.", tc.input)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) got %s, expected %s.", tc.input, got, tc.want)
		}
	}
}

func TestParseDateFailures(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "2025/13/45", "99/99/9999"} {
		if got, ok := ParseDate(input); ok {
			t.Errorf("ParseDate(%q) got %s, expected no match.", input, got)
		}
	}
}
