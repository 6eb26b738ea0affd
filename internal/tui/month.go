package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"workhours/internal/api"
	"workhours/internal/timeline"
)

type monthModel struct {
	client *api.Client
	width  int
	height int

	month   api.Month
	rows    []api.DayRow
	noColon bool

	loading bool
	status  string
	isError bool

	dayCursor int
	barCursor int // -1 when no event is selected
}

func newMonthModel(client *api.Client, m api.Month) monthModel {
	return monthModel{
		client:    client,
		month:     m,
		barCursor: -1,
		status:    textLoading,
		loading:   true,
	}
}

func (m *monthModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// refresh fires a load for the model's current month. The month travels
// inside the message so a late response still labels itself correctly.
func (m monthModel) refresh() tea.Cmd {
	client := m.client
	month := m.month
	return func() tea.Msg {
		rows, err := client.FetchMonth(context.Background(), month)
		return monthDataMsg{month: month, rows: rows, err: err}
	}
}

func (m monthModel) changeMonth(delta int) (monthModel, tea.Cmd) {
	m.month = m.month.Add(delta)
	m.loading = true
	m.status = textLoading
	m.isError = false
	m.barCursor = -1
	return m, m.refresh()
}

func (m monthModel) update(msg tea.Msg) (monthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case monthDataMsg:
		m.loading = false
		if msg.err != nil {
			// Failed load: the previous table stays on screen.
			m.status = textLoadError
			m.isError = true
			return m, nil
		}
		// Last response wins, even if it is an older request arriving
		// late. The status always describes the rows on screen.
		m.month = msg.month
		m.rows = msg.rows
		m.isError = false
		m.status = fmt.Sprintf("勤務: %d日", countWorkDays(msg.rows))
		m.clampCursors()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.PrevMonth):
			return m.changeMonth(-1)
		case key.Matches(msg, keys.NextMonth):
			return m.changeMonth(1)
		case key.Matches(msg, keys.Reload):
			m.loading = true
			m.status = textLoading
			return m, m.refresh()
		case key.Matches(msg, keys.Up):
			if m.dayCursor > 0 {
				m.dayCursor--
				m.barCursor = -1
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.dayCursor < len(m.rows)-1 {
				m.dayCursor++
				m.barCursor = -1
			}
			return m, nil
		case key.Matches(msg, keys.Left):
			if m.barCursor > 0 {
				m.barCursor--
			}
			return m, nil
		case key.Matches(msg, keys.Right):
			if n := len(m.selectedEvents()); m.barCursor < n-1 {
				m.barCursor++
			}
			return m, nil
		case key.Matches(msg, keys.Back):
			m.barCursor = -1
			return m, nil
		}
	}
	return m, nil
}

func (m *monthModel) clampCursors() {
	if m.dayCursor >= len(m.rows) {
		m.dayCursor = len(m.rows) - 1
	}
	if m.dayCursor < 0 {
		m.dayCursor = 0
	}
	m.barCursor = -1
}

func (m monthModel) selectedEvents() []api.EventSpan {
	if m.dayCursor < 0 || m.dayCursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.dayCursor].Events
}

func countWorkDays(rows []api.DayRow) int {
	n := 0
	for _, r := range rows {
		if r.HasWork {
			n++
		}
	}
	return n
}

func (m monthModel) stripWidth() int {
	w := m.width - 44
	if w < 24 {
		w = 24
	}
	return w
}

func (m monthModel) view() string {
	w := m.width - 4
	stripW := m.stripWidth()

	title := titleStyle.Render(m.month.String())
	status := statusBarStyle.Render(m.status)
	if m.isError {
		status = errorStyle.Render(m.status)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "   ", status)

	var lines []string
	lines = append(lines, header, "")
	// The gutter is labelCols wide; "日付" takes four cells.
	lines = append(lines, mutedStyle.Render("  日付")+strings.Repeat(" ", labelCols-6)+rulerHeader(stripW))

	for i, row := range m.rows {
		lines = append(lines, m.renderRow(i, row, stripW))
		if i == m.dayCursor && m.barCursor >= 0 {
			if tip := m.renderSelectedTooltip(stripW); tip != "" {
				lines = append(lines, tip)
			}
		}
	}
	if len(m.rows) == 0 && !m.loading {
		lines = append(lines, mutedStyle.Render("  データがありません"))
	}

	return panelStyle.Width(w).Render(strings.Join(lines, "\n"))
}

// rulerHeader writes the fixed hour labels above the strips.
func rulerHeader(width int) string {
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = ' '
	}
	for _, mk := range timeline.Ruler() {
		col := timeline.Column(mk.LeftPercent, width)
		for j, r := range fmt.Sprintf("%d", mk.Hour) {
			if col+j < width {
				cells[col+j] = r
			}
		}
	}
	return rulerStyle.Render(string(cells))
}

func (m monthModel) renderRow(idx int, row api.DayRow, stripW int) string {
	day := row.Date
	if len(day) == 10 {
		day = day[8:]
	}
	mark := " "
	if row.Holiday {
		mark = holidayStyle.Render("*")
	}

	label := fmt.Sprintf("  %2s %s %s  ", day, row.Weekday, mark)
	if idx == m.dayCursor {
		label = selectedRowStyle.Render(fmt.Sprintf("> %2s %s", day, row.Weekday)) + " " + mark + "  "
	}

	strip := m.renderStrip(row.Events, stripW, idx)
	summary := m.renderSummary(row)

	return label + strip + "  " + summary
}

// renderStrip draws one day's events over the hour grid, one terminal
// cell per column.
func (m monthModel) renderStrip(events []api.EventSpan, width int, rowIdx int) string {
	const (
		cellEmpty = iota
		cellRuler
		cellBar
		cellBarSelected
	)

	cells := make([]int, width)
	for _, mk := range timeline.Ruler() {
		cells[timeline.Column(mk.LeftPercent, width)] = cellRuler
	}

	bars := timeline.Layout(events)
	for i, b := range bars {
		kind := cellBar
		if rowIdx == m.dayCursor && i == m.barCursor {
			kind = cellBarSelected
		}
		start, span := timeline.BarSpan(b, width)
		for c := start; c < start+span; c++ {
			if cells[c] < kind {
				cells[c] = kind
			}
		}
	}

	var sb strings.Builder
	for _, kind := range cells {
		switch kind {
		case cellRuler:
			sb.WriteString(rulerStyle.Render("·"))
		case cellBar:
			sb.WriteString(barStyle.Render("█"))
		case cellBarSelected:
			sb.WriteString(barSelectedStyle.Render("█"))
		default:
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

func (m monthModel) renderSummary(row api.DayRow) string {
	if !row.HasWork || row.Span == nil || *row.Span == 0 {
		return ""
	}
	start := timeline.FormatClock(*row.StartH, *row.StartM, !m.noColon)
	end := timeline.FormatClock(*row.EndH, *row.EndM, !m.noColon)
	s := fmt.Sprintf("%s - %s  (%.1fh)", start, end, *row.Span)
	if row.Afk != nil && row.MaxGap != nil {
		s += mutedStyle.Render(fmt.Sprintf("  -%.1fh (max:-%.1fh)", *row.Afk, *row.MaxGap))
	}
	return s
}
