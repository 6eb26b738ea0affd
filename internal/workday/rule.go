// Package workday derives per-day attendance data from raw AFK watcher
// events: work-date attribution, work-block extraction, active time and
// gap statistics, and assembly of the day rows served to the client.
package workday

import "time"

const (
	// DayBoundaryHour splits work dates at 05:00: activity between
	// 00:00 and 04:59 belongs to the previous work date.
	DayBoundaryHour = 5

	// blockGap is the away span that starts a new work block when the
	// resume happens at or after the day boundary.
	blockGap = 3 * time.Hour

	// DefaultMinEventSeconds is the minimum event duration counted
	// when no setting has been stored.
	DefaultMinEventSeconds = 150

	statusNotAFK = "not-afk"
	dateFormat   = "2006-01-02"
)

var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "月",
	time.Tuesday:   "火",
	time.Wednesday: "水",
	time.Thursday:  "木",
	time.Friday:    "金",
	time.Saturday:  "土",
	time.Sunday:    "日",
}

// WeekdayLabel returns the single-character weekday label for a date.
func WeekdayLabel(d time.Time) string {
	return weekdayLabels[d.Weekday()]
}

// WorkDate returns midnight of the work date t belongs to, applying the
// 05:00 boundary.
func WorkDate(t time.Time) time.Time {
	if t.Hour() < DayBoundaryHour {
		t = t.AddDate(0, 0, -1)
	}
	return midnight(t)
}

// isBlockBoundary reports whether a gap splits two work blocks: the
// away span exceeds three hours and work resumes at or after the day
// boundary.
func isBlockBoundary(gap time.Duration, resumeHour int) bool {
	return gap > blockGap && resumeHour >= DayBoundaryHour
}

// AdjustedHour renders hours past midnight of a base date, so an end at
// 01:00 the next day reads as 25:00.
func AdjustedHour(t, base time.Time) int {
	days := int(midnight(t).Sub(midnight(base)).Hours() / 24)
	return t.Hour() + days*24
}

// SpanHours is the length of [start, end] in hours.
func SpanHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
