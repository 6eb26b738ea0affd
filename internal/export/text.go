package export

import (
	"fmt"
	"os"
	"strings"

	"workhours/internal/api"
	"workhours/internal/timeline"
)

// Text renders rows in the aligned per-day report format: date and
// weekday, the work span and duration for work days, and the away-time
// suffix when tracked. noColon switches the coarse day-level clock to
// HHMM; holiday rows carry the asterisk mark.
func Text(rows []api.DayRow, noColon bool) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(dayLine(row, noColon))
		b.WriteByte('\n')
	}
	return b.String()
}

// ToText writes the text report to path.
func ToText(rows []api.DayRow, noColon bool, path string) error {
	if err := os.WriteFile(path, []byte(Text(rows, noColon)), 0o644); err != nil {
		return fmt.Errorf("write text file: %w", err)
	}
	return nil
}

func dayLine(row api.DayRow, noColon bool) string {
	mark := ""
	if row.Holiday {
		mark = "*"
	}
	prefix := fmt.Sprintf("%s %s%s", row.Date, row.Weekday, mark)
	if !row.HasWork || *row.Span == 0 {
		return prefix
	}

	// The holiday mark eats one column; shrink the spacing so the time
	// columns stay aligned.
	spacing := "   "
	if row.Holiday {
		spacing = "  "
	}
	start := timeline.FormatClock(*row.StartH, *row.StartM, !noColon)
	end := timeline.FormatClock(*row.EndH, *row.EndM, !noColon)
	line := fmt.Sprintf("%s%s%s - %s   (%.1fh)", prefix, spacing, start, end, *row.Span)
	if row.Afk == nil {
		return line
	}
	return fmt.Sprintf("%s   -%.1fh (max:-%.1fh)", line, *row.Afk, *row.MaxGap)
}
