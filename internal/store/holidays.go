package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// HolidayDates returns the cached national-holiday dates for a year
// (as "YYYY-MM-DD" strings) and whether the year has been cached.
func (s *Store) HolidayDates(year int) ([]string, bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT dates FROM holiday_cache WHERE year = ?`, year).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get holiday cache %d: %w", year, err)
	}
	var dates []string
	if err := json.Unmarshal([]byte(raw), &dates); err != nil {
		return nil, false, fmt.Errorf("decode holiday cache %d: %w", year, err)
	}
	return dates, true, nil
}

// PutHolidayDates caches one year's national-holiday dates.
func (s *Store) PutHolidayDates(year int, dates []string) error {
	raw, err := json.Marshal(dates)
	if err != nil {
		return fmt.Errorf("encode holiday cache %d: %w", year, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO holiday_cache (year, dates) VALUES (?, ?) ON CONFLICT(year) DO UPDATE SET dates = excluded.dates`,
		year, string(raw),
	)
	return err
}
