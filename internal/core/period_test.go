package core

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2024-05")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}
	if p.Year != 2024 || p.Month != time.May {
		t.Errorf("ParsePeriod = %+v", p)
	}
	if got := p.String(); got != "2024-05" {
		t.Errorf("String() = %q, want %q", got, "2024-05")
	}

	for _, bad := range []string{"", "2024", "2024-13", "2024-5", "05-2024"} {
		if _, err := ParsePeriod(bad); err == nil {
			t.Errorf("ParsePeriod(%q) should fail", bad)
		}
	}
}

func TestPeriodContains(t *testing.T) {
	p := Period{Year: 2024, Month: time.May}
	if !p.Contains(NewDate(2024, time.May, 1)) {
		t.Error("first of month should be contained")
	}
	if !p.Contains(NewDate(2024, time.May, 31)) {
		t.Error("last of month should be contained")
	}
	if p.Contains(NewDate(2024, time.June, 1)) {
		t.Error("next month must not be contained")
	}
	if p.Contains(NewDate(2023, time.May, 15)) {
		t.Error("same month of another year must not be contained")
	}
}

func TestPeriodPrevious(t *testing.T) {
	p := Period{Year: 2024, Month: time.January}
	prev := p.Previous()
	if prev.Year != 2023 || prev.Month != time.December {
		t.Errorf("Previous() = %+v", prev)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-07")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2024-05-07" {
		t.Errorf("String() = %q", d.String())
	}
	if got := d.Period(); got.String() != "2024-05" {
		t.Errorf("Period() = %q", got.String())
	}
	if _, err := ParseDate("07/05/2024"); err == nil {
		t.Error("non-ISO date should fail")
	}
}
