package api

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{"2025-08", Month{2025, 8}, false},
		{"2024-12", Month{2024, 12}, false},
		{"2025-1", Month{2025, 1}, false},
		{"2025-13", Month{}, true},
		{"2025-00", Month{}, true},
		{"garbage", Month{}, true},
		{"2025", Month{}, true},
	}
	for _, tt := range tests {
		got, err := ParseMonth(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMonth(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMonth(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMonth(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMonthAliases(t *testing.T) {
	this, err := ParseMonth("this")
	if err != nil {
		t.Fatal(err)
	}
	if this != CurrentMonth(time.Now()) {
		t.Errorf("this = %v", this)
	}
	last, err := ParseMonth("last")
	if err != nil {
		t.Fatal(err)
	}
	if last.Add(1) != this {
		t.Errorf("last = %v, this = %v", last, this)
	}
}

func TestMonthAddRollover(t *testing.T) {
	tests := []struct {
		in    Month
		delta int
		want  Month
	}{
		{Month{2024, 12}, 1, Month{2025, 1}},
		{Month{2025, 1}, -1, Month{2024, 12}},
		{Month{2025, 6}, 1, Month{2025, 7}},
		{Month{2025, 6}, -1, Month{2025, 5}},
		{Month{2025, 1}, -13, Month{2023, 12}},
		{Month{2024, 11}, 14, Month{2026, 1}},
	}
	for _, tt := range tests {
		got := tt.in.Add(tt.delta)
		if got != tt.want {
			t.Errorf("%v.Add(%d) = %v, want %v", tt.in, tt.delta, got, tt.want)
		}
	}
}

func TestMonthAddRoundTrip(t *testing.T) {
	starts := []Month{
		{2024, 12}, {2025, 1}, {2025, 6}, {2023, 2},
	}
	for _, m := range starts {
		if back := m.Add(1).Add(-1); back != m {
			t.Errorf("%v +1 -1 = %v", m, back)
		}
		if back := m.Add(-1).Add(1); back != m {
			t.Errorf("%v -1 +1 = %v", m, back)
		}
	}
}

func TestMonthString(t *testing.T) {
	if got := (Month{2025, 8}).String(); got != "2025-08" {
		t.Errorf("String() = %q, want 2025-08", got)
	}
	if got := (Month{2025, 12}).String(); got != "2025-12" {
		t.Errorf("String() = %q, want 2025-12", got)
	}
}

func TestMonthStartEnd(t *testing.T) {
	m := Month{2024, 12}
	start := m.Start(time.UTC)
	end := m.End(time.UTC)
	if start.Year() != 2024 || start.Month() != time.December || start.Day() != 1 {
		t.Errorf("start = %v", start)
	}
	if end.Year() != 2025 || end.Month() != time.January || end.Day() != 1 {
		t.Errorf("end = %v", end)
	}
}
