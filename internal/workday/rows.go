package workday

import (
	"math"
	"time"

	"workhours/internal/api"
	"workhours/internal/aw"
)

// afkDisplayFloor hides away-time columns below three minutes; such a
// small remainder is measurement noise, not a break.
const afkDisplayFloor = 0.05

// BuildRows assembles one DayRow per calendar day of the month, from
// the first up to (and excluding) the day after today. isHoliday is
// consulted only for work days.
func BuildRows(m api.Month, now time.Time, events []aw.Event, isHoliday func(time.Time) bool, minEventSeconds int) []api.DayRow {
	loc := now.Location()
	events = localize(events, loc)
	daily := DailySpans(Blocks(events, minEventSeconds))
	active := ActiveSeconds(events)
	gaps := MaxGaps(events, minEventSeconds)
	eventsByDay := clipEvents(events, minEventSeconds, loc)

	end := m.End(loc)
	if tomorrow := midnight(now).AddDate(0, 0, 1); tomorrow.Before(end) {
		end = tomorrow
	}

	var rows []api.DayRow
	for d := m.Start(loc); d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateFormat)
		row := api.DayRow{
			Date:    key,
			Weekday: WeekdayLabel(d),
			Events:  eventsByDay[key],
		}
		if row.Events == nil {
			row.Events = []api.EventSpan{}
		}
		if span, ok := daily[key]; ok {
			row.HasWork = true
			row.Holiday = isHoliday(d)
			fillWorkFields(&row, d, span, active[key], gaps[key])
		}
		rows = append(rows, row)
	}
	return rows
}

func fillWorkFields(row *api.DayRow, base time.Time, span Block, activeSec, maxGapSec float64) {
	startH := AdjustedHour(span.Start, base)
	startM := span.Start.Minute()
	endH := AdjustedHour(span.End, base)
	endM := span.End.Minute()
	hours := round1(SpanHours(span.Start, span.End))

	row.StartH = &startH
	row.StartM = &startM
	row.EndH = &endH
	row.EndM = &endM
	row.Span = &hours

	afk := SpanHours(span.Start, span.End) - activeSec/3600
	if afk >= afkDisplayFloor {
		afkRounded := round1(afk)
		gapRounded := round1(maxGapSec / 3600)
		row.Afk = &afkRounded
		row.MaxGap = &gapRounded
	}
}

// clipEvents splits qualifying active events at day boundaries and
// groups the pieces by calendar date. A piece ending exactly at the
// next midnight is rendered as 24:00:00 on its own day.
func clipEvents(events []aw.Event, minEventSeconds int, loc *time.Location) map[string][]api.EventSpan {
	byDay := make(map[string][]api.EventSpan)
	for _, e := range events {
		if e.Status() != statusNotAFK || e.Duration < float64(minEventSeconds) {
			continue
		}
		start := e.Timestamp.In(loc)
		end := start.Add(duration(e))
		for day := midnight(start); !day.After(midnight(end)); day = day.AddDate(0, 0, 1) {
			nextDay := day.AddDate(0, 0, 1)
			pieceStart := maxTime(start, day)
			pieceEnd := minTime(end, nextDay)
			if !pieceEnd.After(pieceStart) {
				continue
			}
			span := api.EventSpan{
				StartH:   pieceStart.Hour(),
				StartM:   pieceStart.Minute(),
				StartS:   pieceStart.Second(),
				Duration: pieceEnd.Sub(pieceStart).Seconds(),
				Data:     e.Data,
			}
			if pieceEnd.Equal(nextDay) {
				span.EndH, span.EndM, span.EndS = 24, 0, 0
			} else {
				span.EndH = pieceEnd.Hour()
				span.EndM = pieceEnd.Minute()
				span.EndS = pieceEnd.Second()
			}
			key := day.Format(dateFormat)
			byDay[key] = append(byDay[key], span)
		}
	}
	return byDay
}

// localize rebases event timestamps into the display timezone so hour
// arithmetic (day boundary, adjusted hours) matches what the user sees.
func localize(events []aw.Event, loc *time.Location) []aw.Event {
	out := make([]aw.Event, len(events))
	copy(out, events)
	for i := range out {
		out[i].Timestamp = out[i].Timestamp.In(loc)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
