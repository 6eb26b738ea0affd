// Package timeline converts a day's event list into positioned bars on
// a 24-hour axis and formats the clock/duration labels shown with them.
package timeline

import "fmt"

// FormatClock renders an hour/minute pair zero-padded to two digits,
// joined with ":" only when colon is true.
func FormatClock(hour, minute int, colon bool) string {
	if colon {
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	return fmt.Sprintf("%02d%02d", hour, minute)
}

// FormatDuration renders a second count as "Nm Ss", dropping the minute
// part below one minute.
func FormatDuration(totalSeconds int) string {
	m := totalSeconds / 60
	s := totalSeconds % 60
	if m >= 1 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
