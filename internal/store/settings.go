package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"workhours/internal/api"
)

const (
	keyNoColon         = "no_colon"
	keyMinEventSeconds = "min_event_seconds"
	keyBucket          = "bucket"
)

func (s *Store) getSetting(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) setSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) deleteSetting(key string) error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}

// LoadSettings assembles the settings document, falling back to
// defaults for any key never written.
func (s *Store) LoadSettings() (api.SettingsDoc, error) {
	doc := api.DefaultSettings()

	if v, ok, err := s.getSetting(keyNoColon); err != nil {
		return doc, err
	} else if ok {
		doc.NoColon = v == "1"
	}

	if v, ok, err := s.getSetting(keyMinEventSeconds); err != nil {
		return doc, err
	} else if ok {
		if n, err := strconv.Atoi(v); err == nil {
			doc.MinEventSeconds = n
		}
	}

	if v, ok, err := s.getSetting(keyBucket); err != nil {
		return doc, err
	} else if ok && v != "" {
		doc.Bucket = &v
	}

	return doc, nil
}

// SaveSettings persists the whole document. A nil bucket clears the
// stored preference.
func (s *Store) SaveSettings(doc api.SettingsDoc) error {
	noColon := "0"
	if doc.NoColon {
		noColon = "1"
	}
	if err := s.setSetting(keyNoColon, noColon); err != nil {
		return fmt.Errorf("save no_colon: %w", err)
	}
	if err := s.setSetting(keyMinEventSeconds, strconv.Itoa(doc.MinEventSeconds)); err != nil {
		return fmt.Errorf("save min_event_seconds: %w", err)
	}
	if doc.Bucket == nil {
		if err := s.deleteSetting(keyBucket); err != nil {
			return fmt.Errorf("clear bucket: %w", err)
		}
		return nil
	}
	if err := s.setSetting(keyBucket, *doc.Bucket); err != nil {
		return fmt.Errorf("save bucket: %w", err)
	}
	return nil
}
