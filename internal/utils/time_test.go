package utils

import (
	"testing"
	"time"
)

func TestFixedClockToday(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// 01:30 UTC on the 4th is still the 3rd in Sao Paulo
	instant := time.Date(2024, 1, 4, 1, 30, 0, 0, time.UTC).In(loc)
	c := FixedClock(instant)
	if got := c.Today(); got != "2024-01-03" {
		t.Errorf("Today() = %q, want 2024-01-03", got)
	}
}

func TestNewClock(t *testing.T) {
	if _, err := NewClock("Local"); err != nil {
		t.Errorf("Local should be valid: %v", err)
	}
	if _, err := NewClock(""); err != nil {
		t.Errorf("empty timezone should be valid: %v", err)
	}
	if _, err := NewClock("Mars/Olympus"); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestZeroClock(t *testing.T) {
	var c Clock
	if !ValidateDate(c.Today()) {
		t.Errorf("zero clock produced invalid day %q", c.Today())
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		day  string
		n    int
		want string
	}{
		{"2024-01-03", -1, "2024-01-02"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2023-12-31", 1, "2024-01-01"},
		{"2024-01-03", -6, "2023-12-28"},
		{"2024-03-10", 1, "2024-03-11"}, // US DST start
	}
	for _, tt := range tests {
		got, err := AddDays(tt.day, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%q, %d): %v", tt.day, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.day, tt.n, got, tt.want)
		}
	}

	if _, err := AddDays("2024-13-01", 1); err == nil {
		t.Error("expected error for invalid day")
	}
}

func TestValidateDate(t *testing.T) {
	tests := map[string]bool{
		"2024-02-29": true,
		"2023-02-29": false,
		"2024-1-5":   false,
		"":           false,
		"yesterday":  false,
	}
	for day, want := range tests {
		if got := ValidateDate(day); got != want {
			t.Errorf("ValidateDate(%q) = %v, want %v", day, got, want)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	first, last, err := MonthBounds("2024-02")
	if err != nil {
		t.Fatal(err)
	}
	if first != "2024-02-01" || last != "2024-02-29" {
		t.Errorf("MonthBounds(2024-02) = %s..%s", first, last)
	}
	if _, _, err := MonthBounds("2024-2"); err == nil {
		t.Error("expected error for malformed month")
	}
}
