package workday

import (
	"sort"
	"time"

	"workhours/internal/aw"
)

// Block is one contiguous stretch of work.
type Block struct {
	Start time.Time
	End   time.Time
}

// notAFK filters events to active ones at least minEventSeconds long,
// sorted by timestamp. minEventSeconds <= 0 keeps every active event.
func notAFK(events []aw.Event, minEventSeconds int) []aw.Event {
	var kept []aw.Event
	for _, e := range events {
		if e.Status() != statusNotAFK {
			continue
		}
		if e.Duration < float64(minEventSeconds) {
			continue
		}
		kept = append(kept, e)
	}
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Timestamp.Before(kept[j].Timestamp)
	})
	return kept
}

// Blocks merges active events into work blocks, splitting where the
// block-boundary rule applies. Overlapping events extend the running
// block to the furthest end seen.
func Blocks(events []aw.Event, minEventSeconds int) []Block {
	kept := notAFK(events, minEventSeconds)
	if len(kept) == 0 {
		return nil
	}

	var blocks []Block
	cur := Block{
		Start: kept[0].Timestamp,
		End:   kept[0].Timestamp.Add(duration(kept[0])),
	}
	for _, e := range kept[1:] {
		start := e.Timestamp
		end := start.Add(duration(e))
		gap := start.Sub(cur.End)
		if isBlockBoundary(gap, start.Hour()) {
			blocks = append(blocks, cur)
			cur = Block{Start: start, End: end}
			continue
		}
		if end.After(cur.End) {
			cur.End = end
		}
	}
	return append(blocks, cur)
}

// DailySpans folds blocks into one (start, end) span per work date,
// keyed by the date string. Several blocks on a date widen the span to
// the earliest start and latest end.
func DailySpans(blocks []Block) map[string]Block {
	daily := make(map[string]Block)
	for _, b := range blocks {
		key := WorkDate(b.Start).Format(dateFormat)
		span, ok := daily[key]
		if !ok {
			daily[key] = b
			continue
		}
		if b.Start.Before(span.Start) {
			span.Start = b.Start
		}
		if b.End.After(span.End) {
			span.End = b.End
		}
		daily[key] = span
	}
	return daily
}

func duration(e aw.Event) time.Duration {
	return time.Duration(e.Duration * float64(time.Second))
}
