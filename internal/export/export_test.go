package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"workhours/internal/api"
)

func ptrInt(v int) *int           { return &v }
func ptrFloat(v float64) *float64 { return &v }

func sampleRows() []api.DayRow {
	return []api.DayRow{
		{
			Date:    "2025-08-01",
			Weekday: "金",
			HasWork: true,
			StartH:  ptrInt(9), StartM: ptrInt(5),
			EndH: ptrInt(18), EndM: ptrInt(30),
			Span:   ptrFloat(9.4),
			Afk:    ptrFloat(1.2),
			MaxGap: ptrFloat(0.8),
			Events: []api.EventSpan{},
		},
		{
			Date:    "2025-08-02",
			Weekday: "土",
			Holiday: true,
			HasWork: true,
			StartH:  ptrInt(10), StartM: ptrInt(0),
			EndH: ptrInt(12), EndM: ptrInt(0),
			Span:   ptrFloat(2.0),
			Events: []api.EventSpan{},
		},
		{
			Date:    "2025-08-03",
			Weekday: "日",
			HasWork: false,
			Events:  []api.EventSpan{},
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.csv")
	if err := ToCSV(sampleRows(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want header + 3 rows", len(lines))
	}
	if lines[0] != "date,weekday,start_time,end_time,duration_hours,afk_hours,max_gap_hours" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != `="2025-08-01",金,="09:05",="18:30",9.40,1.20,0.80` {
		t.Errorf("work row = %q", lines[1])
	}
	if lines[3] != `="2025-08-03",日,,,,,` {
		t.Errorf("empty row = %q", lines[3])
	}
}

func TestTextFormat(t *testing.T) {
	out := Text(sampleRows(), false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "2025-08-01 金   09:05 - 18:30   (9.4h)   -1.2h (max:-0.8h)" {
		t.Errorf("work line = %q", lines[0])
	}
	if lines[1] != "2025-08-02 土*  10:00 - 12:00   (2.0h)" {
		t.Errorf("holiday line = %q", lines[1])
	}
	if lines[2] != "2025-08-03 日" {
		t.Errorf("empty line = %q", lines[2])
	}
}

func TestTextNoColon(t *testing.T) {
	out := Text(sampleRows(), true)
	if !strings.Contains(out, "0905 - 1830") {
		t.Errorf("no-colon output = %q", out)
	}
	// Fine-grained formatting elsewhere keeps colons; only the
	// day-level clock obeys the flag here.
	if strings.Contains(out, "09:05") {
		t.Errorf("colon leaked into no-colon output: %q", out)
	}
}

func TestToText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.txt")
	if err := ToText(sampleRows(), false, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "2025-08-01") {
		t.Errorf("file content = %q", data)
	}
}
