// Package api defines the wire format shared by the provider server and
// the terminal client, plus an HTTP client for the provider endpoints.
package api

// EventSpan is one sub-activity within a day, positioned by time of day.
// Duration is authoritative; it is not re-derived from start/end.
type EventSpan struct {
	StartH   int            `json:"startH"`
	StartM   int            `json:"startM"`
	StartS   int            `json:"startS"`
	EndH     int            `json:"endH"`
	EndM     int            `json:"endM"`
	EndS     int            `json:"endS"`
	Duration float64        `json:"duration"`
	Data     map[string]any `json:"data"`
}

// DayRow is one calendar day's attendance summary plus its event list.
// The work fields are present only when HasWork is true; Afk and MaxGap
// may be absent even for work days (away time not tracked, not zero).
type DayRow struct {
	Date    string      `json:"date"`
	Weekday string      `json:"weekday"`
	Holiday bool        `json:"holiday"`
	HasWork bool        `json:"hasWork"`
	StartH  *int        `json:"startH,omitempty"`
	StartM  *int        `json:"startM,omitempty"`
	EndH    *int        `json:"endH,omitempty"`
	EndM    *int        `json:"endM,omitempty"`
	Span    *float64    `json:"span,omitempty"`
	Afk     *float64    `json:"afk,omitempty"`
	MaxGap  *float64    `json:"maxGap,omitempty"`
	Events  []EventSpan `json:"events"`
}

// MonthData is the body of GET /data/{YYYY-MM}.
type MonthData struct {
	Rows []DayRow `json:"rows"`
}

// SettingsDoc is the persisted display/server settings document. A nil
// Bucket means automatic bucket selection.
type SettingsDoc struct {
	NoColon         bool    `json:"no_colon"`
	MinEventSeconds int     `json:"min_event_seconds"`
	Bucket          *string `json:"bucket"`
}

// DefaultSettings returns the document used before the store has been
// written to.
func DefaultSettings() SettingsDoc {
	return SettingsDoc{NoColon: false, MinEventSeconds: 150, Bucket: nil}
}
