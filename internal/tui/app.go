package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"workhours/internal/api"
	"workhours/internal/export"
)

type viewState int

const (
	viewMonth viewState = iota
	viewChart
	viewSettings
)

// App is the root Bubble Tea model.
type App struct {
	client *api.Client
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	// noColon is the one display flag shared across views. It changes
	// only when a save round-trip echoes the stored document back.
	noColon bool

	month    monthModel
	chart    chartModel
	settings settingsModel

	help   help.Model
	status string
}

func NewApp(client *api.Client, m api.Month) App {
	h := help.New()
	h.ShowAll = false

	return App{
		client:   client,
		month:    newMonthModel(client, m),
		chart:    newChartModel(),
		settings: newSettingsModel(client),
		help:     h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.month.refresh(), a.loadInitialSettings())
}

// loadInitialSettings seeds the separator flag at startup so the first
// render already honors the stored preference.
func (a App) loadInitialSettings() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		doc, err := client.Settings(context.Background())
		return initialSettingsMsg{doc: doc, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 3
		a.month.setSize(a.width, contentHeight)
		a.chart.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// The settings form captures all input while open.
		if a.activeView == viewSettings {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Settings):
			a.activeView = viewSettings
			var cmd tea.Cmd
			a.settings, cmd = a.settings.open()
			return a, cmd
		case key.Matches(msg, keys.Chart):
			if a.activeView == viewChart {
				a.activeView = viewMonth
				return a, nil
			}
			a.activeView = viewChart
			a.chart.setRows(a.month.month, a.month.rows)
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Back):
			if a.activeView == viewChart {
				a.activeView = viewMonth
				return a, nil
			}
		}
		return a.updateActiveView(msg)

	case initialSettingsMsg:
		// Startup load only; a failure leaves the defaults in place.
		if msg.err == nil {
			a.noColon = msg.doc.NoColon
			a.month.noColon = msg.doc.NoColon
		}
		return a, nil

	case monthDataMsg:
		var cmd tea.Cmd
		a.month, cmd = a.month.update(msg)
		if a.activeView == viewChart {
			a.chart.setRows(a.month.month, a.month.rows)
		}
		return a, cmd

	case settingsLoadedMsg, settingsSaveFailedMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd

	case settingsSavedMsg:
		// The echoed document is authoritative: the flag flips here and
		// nowhere else, and the table reloads under the new settings.
		a.noColon = msg.doc.NoColon
		a.month.noColon = msg.doc.NoColon
		a.activeView = viewMonth
		a.month.loading = true
		a.month.status = textLoading
		return a, a.month.refresh()

	case settingsClosedMsg:
		a.activeView = viewMonth
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "書き出しました: " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewMonth:
		a.month, cmd = a.month.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	if a.width == 0 {
		return textLoading
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewMonth:
		content = a.month.view()
	case viewChart:
		content = a.chart.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("workhours")
	month := highlightStyle.Render(a.month.month.String())

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(month) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, month),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("書き出し形式")
	formats := []string{"CSV", "テキスト"}
	var rows []string
	rows = append(rows, title, "")
	for i, f := range formats {
		cursor := "  "
		style := mutedStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedRowStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	rows := a.month.rows
	month := a.month.month.String()
	noColon := a.noColon

	return func() tea.Msg {
		home, _ := os.UserHomeDir()

		var path string
		var err error
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("workhours-%s.csv", month))
			err = export.ToCSV(rows, path)
		} else {
			path = filepath.Join(home, fmt.Sprintf("workhours-%s.txt", month))
			err = export.ToText(rows, noColon, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("書き出しエラー: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
