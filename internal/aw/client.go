// Package aw is a minimal client for the ActivityWatch REST API,
// covering bucket discovery and event retrieval for AFK watchers.
package aw

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// afkPrefix identifies aw-watcher-afk buckets; the suffix is the
// recording host name.
const afkPrefix = "aw-watcher-afk_"

// Event is one raw watcher event. Duration is in seconds.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Duration  float64        `json:"duration"`
	Data      map[string]any `json:"data"`
}

// Status returns the event's "status" payload field, or "".
func (e Event) Status() string {
	s, _ := e.Data["status"].(string)
	return s
}

// Client talks to an ActivityWatch server, e.g.
// "http://127.0.0.1:5600/api/0".
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// AFKBuckets returns the IDs of all aw-watcher-afk buckets.
func (c *Client) AFKBuckets(ctx context.Context) ([]string, error) {
	var buckets map[string]json.RawMessage
	if err := c.getJSON(ctx, "/buckets", &buckets); err != nil {
		return nil, err
	}
	var ids []string
	for id := range buckets {
		if strings.HasPrefix(id, afkPrefix) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Events returns up to all events of a bucket within [start, end).
// Zero times are omitted from the query.
func (c *Client) Events(ctx context.Context, bucketID string, start, end time.Time) ([]Event, error) {
	params := url.Values{"limit": {"-1"}}
	if !start.IsZero() {
		params.Set("start", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		params.Set("end", end.Format(time.RFC3339))
	}
	var events []Event
	path := "/buckets/" + url.PathEscape(bucketID) + "/events?" + params.Encode()
	if err := c.getJSON(ctx, path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// lastEventTime returns the timestamp of the bucket's most recent
// event, or the zero time when the bucket is empty or unreachable.
func (c *Client) lastEventTime(ctx context.Context, bucketID string) time.Time {
	var events []Event
	path := "/buckets/" + url.PathEscape(bucketID) + "/events?limit=1"
	if err := c.getJSON(ctx, path, &events); err != nil || len(events) == 0 {
		return time.Time{}
	}
	return events[0].Timestamp
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("activitywatch api: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("activitywatch api: status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("activitywatch api: decode %s: %w", path, err)
	}
	return nil
}

// Hostname strips the watcher prefix off a bucket ID.
func Hostname(bucketID string) string {
	return strings.TrimPrefix(bucketID, afkPrefix)
}
