package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"workhours/internal/api"
)

// chartModel draws the month's daily attendance spans as a bar chart.
// It renders whatever rows the month view currently holds.
type chartModel struct {
	width  int
	height int

	month api.Month
	rows  []api.DayRow
	chart barchart.Model
}

func newChartModel() chartModel {
	return chartModel{chart: barchart.New(60, 12)}
}

func (c *chartModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.buildChart()
}

func (c *chartModel) setRows(m api.Month, rows []api.DayRow) {
	c.month = m
	c.rows = rows
	c.buildChart()
}

func (c *chartModel) buildChart() {
	chartWidth := c.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if c.height > 30 {
		chartHeight = 16
	}

	c.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, row := range c.rows {
		label := row.Date
		if len(label) == 10 {
			label = label[8:]
		}

		span := 0.0
		if row.Span != nil {
			span = *row.Span
		}
		style := barStyle
		if row.Holiday {
			style = holidayStyle
		}
		if span == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: row.Date, Value: span, Style: style}},
		})
	}

	c.chart.PushAll(bars)
	c.chart.Draw()
}

func (c chartModel) view() string {
	w := c.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(c.month.String()),
		"  ",
		mutedStyle.Render(fmt.Sprintf("合計: %.1fh", totalSpan(c.rows))),
	)
	nav := mutedStyle.Render("  esc: back")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", c.chart.View(), "", nav),
	)
}

func totalSpan(rows []api.DayRow) float64 {
	total := 0.0
	for _, r := range rows {
		if r.Span != nil {
			total += *r.Span
		}
	}
	return total
}
