package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"workhours/internal/timeline"
)

// labelCols is the width of the date/weekday gutter to the left of the
// strips. Tooltips are positioned relative to the strip, so the gutter
// is re-added as indentation.
const labelCols = 11

// renderSelectedTooltip draws the detail panel for the selected event,
// anchored under its bar. Placement is recomputed on every render; the
// strip width may have changed since the last frame.
func (m monthModel) renderSelectedTooltip(stripW int) string {
	events := m.selectedEvents()
	if m.barCursor < 0 || m.barCursor >= len(events) {
		return ""
	}
	bars := timeline.Layout(events)
	b := bars[m.barCursor]

	lines := []string{
		"start:    " + b.StartLabel,
		"stop:     " + b.EndLabel,
		"duration: " + b.DurationLabel,
		b.DataLabel,
	}
	box := tooltipStyle.Render(strings.Join(lines, "\n"))

	barStart, _ := timeline.BarSpan(b, stripW)
	left := timeline.AnchorLeft(barStart, lipgloss.Width(box), stripW)

	indent := strings.Repeat(" ", labelCols+left)
	var sb strings.Builder
	for i, line := range strings.Split(box, "\n") {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(indent + line)
	}
	return sb.String()
}
