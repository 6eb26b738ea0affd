// Package export writes a month's day rows to CSV or plain text files.
package export

import (
	"fmt"
	"os"
	"strings"

	"workhours/internal/api"
	"workhours/internal/timeline"
)

// ToCSV writes one line per day row. Date and time cells use the ="…"
// form so spreadsheets keep them as text instead of reinterpreting
// them.
func ToCSV(rows []api.DayRow, path string) error {
	var b strings.Builder
	b.WriteString("date,weekday,start_time,end_time,duration_hours,afk_hours,max_gap_hours\n")

	for _, row := range rows {
		fmt.Fprintf(&b, `="%s",%s`, row.Date, row.Weekday)
		if !row.HasWork {
			b.WriteString(",,,,,\n")
			continue
		}
		start := timeline.FormatClock(*row.StartH, *row.StartM, true)
		end := timeline.FormatClock(*row.EndH, *row.EndM, true)
		afk, maxGap := 0.0, 0.0
		if row.Afk != nil {
			afk = *row.Afk
			maxGap = *row.MaxGap
		}
		fmt.Fprintf(&b, `,="%s",="%s",%.2f,%.2f,%.2f`+"\n", start, end, *row.Span, afk, maxGap)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return nil
}
