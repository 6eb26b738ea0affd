package workday

import (
	"sort"
	"time"

	"workhours/internal/aw"
)

// ActiveSeconds sums active event durations per work date. Every
// not-afk event counts here, including ones below the minimum event
// threshold; zero-duration events contribute nothing.
func ActiveSeconds(events []aw.Event) map[string]float64 {
	result := make(map[string]float64)
	for _, e := range events {
		if e.Status() != statusNotAFK {
			continue
		}
		key := WorkDate(e.Timestamp).Format(dateFormat)
		result[key] += e.Duration
	}
	return result
}

// MaxGaps finds the longest away stretch per work date among active
// events at or above the minimum event threshold. Overlapping events
// are handled by tracking the furthest end seen so far, so a gap is
// only counted when the next event truly starts after everything
// before it has ended.
func MaxGaps(events []aw.Event, minEventSeconds int) map[string]float64 {
	byDay := make(map[string][]Block)
	for _, e := range notAFK(events, minEventSeconds) {
		key := WorkDate(e.Timestamp).Format(dateFormat)
		byDay[key] = append(byDay[key], Block{
			Start: e.Timestamp,
			End:   e.Timestamp.Add(duration(e)),
		})
	}

	result := make(map[string]float64)
	for key, spans := range byDay {
		sort.Slice(spans, func(i, j int) bool {
			if spans[i].Start.Equal(spans[j].Start) {
				return spans[i].End.Before(spans[j].End)
			}
			return spans[i].Start.Before(spans[j].Start)
		})
		var maxGap time.Duration
		maxEnd := spans[0].End
		for _, s := range spans[1:] {
			if gap := s.Start.Sub(maxEnd); gap > maxGap {
				maxGap = gap
			}
			if s.End.After(maxEnd) {
				maxEnd = s.End
			}
		}
		result[key] = maxGap.Seconds()
	}
	return result
}
