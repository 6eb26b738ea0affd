package store

import (
	"testing"

	"workhours/internal/api"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadSettingsDefaults(t *testing.T) {
	s := newTestStore(t)
	doc, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if doc.NoColon {
		t.Error("no_colon should default to false")
	}
	if doc.MinEventSeconds != 150 {
		t.Errorf("min_event_seconds = %d, want 150", doc.MinEventSeconds)
	}
	if doc.Bucket != nil {
		t.Errorf("bucket = %v, want nil", *doc.Bucket)
	}
}

func TestSaveLoadSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	bucket := "Mac"
	in := api.SettingsDoc{NoColon: true, MinEventSeconds: 300, Bucket: &bucket}
	if err := s.SaveSettings(in); err != nil {
		t.Fatal(err)
	}

	out, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if !out.NoColon || out.MinEventSeconds != 300 {
		t.Errorf("loaded = %+v", out)
	}
	if out.Bucket == nil || *out.Bucket != "Mac" {
		t.Errorf("bucket = %v, want Mac", out.Bucket)
	}
}

func TestSaveSettingsClearsBucket(t *testing.T) {
	s := newTestStore(t)
	bucket := "Mac"
	if err := s.SaveSettings(api.SettingsDoc{MinEventSeconds: 150, Bucket: &bucket}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSettings(api.SettingsDoc{MinEventSeconds: 150, Bucket: nil}); err != nil {
		t.Fatal(err)
	}
	out, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if out.Bucket != nil {
		t.Errorf("bucket = %q, want cleared", *out.Bucket)
	}
}

func TestSaveSettingsOverwrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveSettings(api.SettingsDoc{NoColon: true, MinEventSeconds: 150}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSettings(api.SettingsDoc{NoColon: false, MinEventSeconds: 200}); err != nil {
		t.Fatal(err)
	}
	out, _ := s.LoadSettings()
	if out.NoColon || out.MinEventSeconds != 200 {
		t.Errorf("loaded = %+v", out)
	}
}

func TestHolidayCache(t *testing.T) {
	s := newTestStore(t)

	if _, ok, err := s.HolidayDates(2025); err != nil || ok {
		t.Fatalf("uncached year: ok = %v, err = %v", ok, err)
	}

	dates := []string{"2025-01-01", "2025-01-13"}
	if err := s.PutHolidayDates(2025, dates); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.HolidayDates(2025)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected cached year")
	}
	if len(got) != 2 || got[0] != "2025-01-01" {
		t.Errorf("dates = %v", got)
	}

	// Re-put replaces.
	if err := s.PutHolidayDates(2025, []string{"2025-01-01"}); err != nil {
		t.Fatal(err)
	}
	got, _, _ = s.HolidayDates(2025)
	if len(got) != 1 {
		t.Errorf("dates after replace = %v", got)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatal(err)
	}
}
