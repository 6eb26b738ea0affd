package tui

import (
	"workhours/internal/api"
)

// --- Messages ---

// monthDataMsg carries the outcome of one month load. Loads are never
// cancelled; when loads overlap, whichever message arrives last wins
// the redraw.
type monthDataMsg struct {
	month api.Month
	rows  []api.DayRow
	err   error
}

// initialSettingsMsg seeds the separator flag at startup. A failure
// falls back to defaults silently.
type initialSettingsMsg struct {
	doc api.SettingsDoc
	err error
}

// settingsLoadedMsg joins the two concurrent dialog fetches. Partial
// success is not distinguished from total failure: err is set unless
// both succeeded.
type settingsLoadedMsg struct {
	doc     api.SettingsDoc
	buckets []string
	err     error
}

// settingsSavedMsg carries the document the server echoed back, which
// is authoritative over what was submitted.
type settingsSavedMsg struct {
	doc api.SettingsDoc
}

type settingsSaveFailedMsg struct {
	err error
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- User-facing strings (matching the original Japanese UI) ---

const (
	textLoading    = "読み込み中..."
	textLoadError  = "エラー: データを取得できません"
	textSaveError  = "設定の保存に失敗しました"
	textAutoBucket = "自動選択"
)
