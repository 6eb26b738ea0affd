package timeline

import (
	"encoding/json"
	"fmt"

	"workhours/internal/api"
)

const daySeconds = 86400

// minWidthPercent keeps zero-duration and sub-pixel events visible and
// hoverable.
const minWidthPercent = 0.1

// RulerHours are the fixed hour-grid reference marks, emitted whether
// or not the day has any events.
var RulerHours = []int{4, 8, 12, 16, 20}

// Bar is one drawable event, positioned as percentages of the 24-hour
// axis, with its tooltip labels precomputed. Bars are derived per
// render pass and never persisted.
type Bar struct {
	LeftPercent  float64
	WidthPercent float64

	StartLabel    string
	EndLabel      string
	DurationLabel string
	DataLabel     string
}

// Layout converts one day's events into bars. Events are taken in
// source order: they are not validated, sorted or deduplicated, and
// overlapping bars simply stack. An empty list yields no bars.
func Layout(events []api.EventSpan) []Bar {
	bars := make([]Bar, 0, len(events))
	for _, ev := range events {
		startSec := ev.StartH*3600 + ev.StartM*60 + ev.StartS
		endSec := ev.EndH*3600 + ev.EndM*60 + ev.EndS

		left := float64(startSec) / daySeconds * 100
		width := float64(endSec-startSec) / daySeconds * 100
		if width < minWidthPercent {
			width = minWidthPercent
		}

		bars = append(bars, Bar{
			LeftPercent:  left,
			WidthPercent: width,
			// Tooltip timestamps are fixed fine-grained HH:MM:SS,
			// colon-separated regardless of the day-level separator
			// setting.
			StartLabel:    fmt.Sprintf("%02d:%02d:%02d", ev.StartH, ev.StartM, ev.StartS),
			EndLabel:      fmt.Sprintf("%02d:%02d:%02d", ev.EndH, ev.EndM, ev.EndS),
			DurationLabel: FormatDuration(int(ev.Duration)),
			DataLabel:     dataLabel(ev.Data),
		})
	}
	return bars
}

// dataLabel renders the opaque event payload as a structured-text dump.
// json.Marshal gives stable key order for maps.
func dataLabel(data map[string]any) string {
	if len(data) == 0 {
		return "{}"
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(b)
}

// RulerMark is one hour-grid reference position.
type RulerMark struct {
	Hour        int
	LeftPercent float64
}

// Ruler returns the fixed reference marks, independent of event data.
func Ruler() []RulerMark {
	marks := make([]RulerMark, 0, len(RulerHours))
	for _, h := range RulerHours {
		marks = append(marks, RulerMark{Hour: h, LeftPercent: float64(h) / 24 * 100})
	}
	return marks
}

// Column projects a percentage onto a strip of the given width in
// terminal cells.
func Column(percent float64, width int) int {
	col := int(percent / 100 * float64(width))
	if col < 0 {
		col = 0
	}
	if col >= width {
		col = width - 1
	}
	return col
}

// BarSpan projects a bar onto a strip of the given width, returning the
// starting column and the span in columns. The span never drops below
// one column, mirroring the 0.1% width floor.
func BarSpan(b Bar, width int) (start, span int) {
	start = Column(b.LeftPercent, width)
	span = int(b.WidthPercent / 100 * float64(width))
	if span < 1 {
		span = 1
	}
	if start+span > width {
		span = width - start
	}
	return start, span
}

// AnchorLeft places a tooltip of the given width under a bar starting
// at barStart. The tooltip is left-aligned with the bar unless its
// right edge would overflow the viewport, in which case it flips to
// right alignment (ending at the bar start column plus one). The result
// is clamped to the viewport. Callers re-evaluate this on every hover;
// the viewport may have changed between renders.
func AnchorLeft(barStart, tooltipWidth, viewport int) int {
	left := barStart
	if left+tooltipWidth > viewport {
		left = barStart + 1 - tooltipWidth
	}
	if left < 0 {
		left = 0
	}
	return left
}
