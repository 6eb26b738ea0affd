package tui

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"workhours/internal/api"
)

// settingsClosedMsg tells the root model to dismiss the dialog without
// saving.
type settingsClosedMsg struct{}

type settingsModel struct {
	client *api.Client
	width  int
	height int

	form      *huh.Form
	buckets   []string
	saving    bool
	saveError string

	// Form values as pointers (survive value copies)
	noColon  *bool
	minEvent *string
	bucket   *string
}

func newSettingsModel(client *api.Client) settingsModel {
	nc := false
	me := ""
	bk := ""
	return settingsModel{
		client:   client,
		noColon:  &nc,
		minEvent: &me,
		bucket:   &bk,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

// open shows the dialog immediately with defaults and starts the
// background load. The form is repopulated once the stored document and
// the bucket list arrive.
func (s settingsModel) open() (settingsModel, tea.Cmd) {
	defaults := api.DefaultSettings()
	*s.noColon = defaults.NoColon
	*s.minEvent = strconv.Itoa(defaults.MinEventSeconds)
	*s.bucket = ""
	s.buckets = nil
	s.saving = false
	s.saveError = ""
	s.buildForm()
	return s, tea.Batch(s.form.Init(), s.load())
}

// load fetches the settings document and the bucket list concurrently
// and joins them into one message.
func (s settingsModel) load() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		var (
			doc        api.SettingsDoc
			buckets    []string
			docErr     error
			bucketsErr error
		)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			doc, docErr = client.Settings(context.Background())
		}()
		go func() {
			defer wg.Done()
			buckets, bucketsErr = client.Buckets(context.Background())
		}()
		wg.Wait()

		err := docErr
		if err == nil {
			err = bucketsErr
		}
		return settingsLoadedMsg{doc: doc, buckets: buckets, err: err}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		// A failed load is silent: the dialog stays usable with the
		// defaults it opened with.
		if msg.err != nil {
			return s, nil
		}
		*s.noColon = msg.doc.NoColon
		*s.minEvent = strconv.Itoa(msg.doc.MinEventSeconds)
		if msg.doc.Bucket != nil {
			*s.bucket = *msg.doc.Bucket
		} else {
			*s.bucket = ""
		}
		s.buckets = msg.buckets
		s.buildForm()
		return s, s.form.Init()

	case settingsSaveFailedMsg:
		// The edits are still in the pointer values; reopen the form
		// around them with the alert shown.
		s.saving = false
		s.saveError = textSaveError
		s.buildForm()
		return s, s.form.Init()

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return settingsClosedMsg{} }
		}
	}

	if s.form == nil || s.saving {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.saving = true
		return s, s.save()
	}
	return s, cmd
}

func (s *settingsModel) buildForm() {
	opts := []huh.Option[string]{huh.NewOption(textAutoBucket, "")}
	listed := false
	for _, b := range s.buckets {
		if b == *s.bucket {
			listed = true
		}
		opts = append(opts, huh.NewOption(b, b))
	}
	if *s.bucket != "" && !listed {
		opts = append(opts, huh.NewOption(*s.bucket, *s.bucket))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("時刻をコロンなしで表示").Value(s.noColon),
			huh.NewInput().Title("最小イベント秒数").Value(s.minEvent).
				Validate(validateSeconds),
			huh.NewSelect[string]().Title("バケット").
				Options(opts...).Value(s.bucket),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func validateSeconds(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fmt.Errorf("秒数を入力してください")
	}
	return nil
}

// save submits the form values. Whatever the server echoes back is the
// document of record, not what was sent.
func (s settingsModel) save() tea.Cmd {
	doc := api.SettingsDoc{NoColon: *s.noColon}
	doc.MinEventSeconds, _ = strconv.Atoi(*s.minEvent)
	if *s.bucket != "" {
		b := *s.bucket
		doc.Bucket = &b
	}

	client := s.client
	return func() tea.Msg {
		saved, err := client.SaveSettings(context.Background(), doc)
		if err != nil {
			return settingsSaveFailedMsg{err: err}
		}
		return settingsSavedMsg{doc: saved}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	title := titleStyle.Render("設定")
	var parts []string
	parts = append(parts, title)
	if s.saveError != "" {
		parts = append(parts, errorStyle.Render(s.saveError))
	}
	parts = append(parts, "")
	if s.saving {
		parts = append(parts, mutedStyle.Render("保存中..."))
	} else if s.form != nil {
		parts = append(parts, s.form.View())
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
