package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"workhours/internal/store"
)

const holidayAPI = "https://holidays-jp.github.io/api/v1/%d/date.json"

// HolidayCalendar answers holiday queries: weekends always count, plus
// Japanese national holidays fetched per year and cached in the store.
// A failed fetch is non-fatal and simply yields no national holidays
// for that year (a display-only difference).
type HolidayCalendar struct {
	store   *store.Store
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	years map[int]map[string]bool
}

func NewHolidayCalendar(s *store.Store) *HolidayCalendar {
	return &HolidayCalendar{
		store:   s,
		baseURL: holidayAPI,
		http:    &http.Client{Timeout: 10 * time.Second},
		years:   make(map[int]map[string]bool),
	}
}

// IsHoliday reports whether d falls on a weekend or national holiday.
func (h *HolidayCalendar) IsHoliday(d time.Time) bool {
	if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		return true
	}
	return h.national(d.Year())[d.Format("2006-01-02")]
}

func (h *HolidayCalendar) national(year int) map[string]bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if dates, ok := h.years[year]; ok {
		return dates
	}

	dates := make(map[string]bool)
	if cached, ok, err := h.store.HolidayDates(year); err == nil && ok {
		for _, d := range cached {
			dates[d] = true
		}
		h.years[year] = dates
		return dates
	}

	fetched, err := h.fetchYear(year)
	if err != nil {
		// Do not cache failures; the next query retries.
		return dates
	}
	h.store.PutHolidayDates(year, fetched)
	for _, d := range fetched {
		dates[d] = true
	}
	h.years[year] = dates
	return dates
}

func (h *HolidayCalendar) fetchYear(year int) ([]string, error) {
	resp, err := h.http.Get(fmt.Sprintf(h.baseURL, year))
	if err != nil {
		return nil, fmt.Errorf("fetch holidays %d: %w", year, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch holidays %d: status %d", year, resp.StatusCode)
	}

	// The API maps "YYYY-MM-DD" to the holiday name; only the keys
	// matter here.
	var byDate map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&byDate); err != nil {
		return nil, fmt.Errorf("decode holidays %d: %w", year, err)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	return dates, nil
}
