package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month identifies one calendar month. The zero value is invalid.
type Month struct {
	Year  int
	Month int
}

// CurrentMonth returns the month containing now.
func CurrentMonth(now time.Time) Month {
	return Month{Year: now.Year(), Month: int(now.Month())}
}

// ParseMonth parses "YYYY-MM". The aliases "this" and "last" resolve
// against the current clock.
func ParseMonth(s string) (Month, error) {
	switch s {
	case "this":
		return CurrentMonth(time.Now()), nil
	case "last":
		return CurrentMonth(time.Now()).Add(-1), nil
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Month{}, fmt.Errorf("invalid month %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Month{}, fmt.Errorf("invalid month %q", s)
	}
	return Month{Year: year, Month: month}, nil
}

// Add returns the month delta whole months away, rolling over year
// boundaries in both directions. This is the only place month
// arithmetic happens.
func (m Month) Add(delta int) Month {
	total := m.Year*12 + (m.Month - 1) + delta
	year := total / 12
	month := total%12 + 1
	if total < 0 {
		// Go integer division truncates toward zero; fix up for
		// months before year 0.
		year = (total - 11) / 12
		month = total - year*12 + 1
	}
	return Month{Year: year, Month: month}
}

// String renders the zero-padded "YYYY-MM" key used in URLs.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Start returns midnight on the first day of the month in loc.
func (m Month) Start(loc *time.Location) time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, loc)
}

// End returns midnight on the first day of the following month.
func (m Month) End(loc *time.Location) time.Time {
	next := m.Add(1)
	return time.Date(next.Year, time.Month(next.Month), 1, 0, 0, 0, 0, loc)
}
