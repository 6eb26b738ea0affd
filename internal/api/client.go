package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client talks to a workhours provider.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client for the provider at base, e.g.
// "http://127.0.0.1:8600". No timeout is set; outstanding requests run
// to completion.
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{},
	}
}

// FetchMonth retrieves the day rows for one month, in provider order.
func (c *Client) FetchMonth(ctx context.Context, m Month) ([]DayRow, error) {
	var data MonthData
	if err := c.getJSON(ctx, "/data/"+m.String(), &data); err != nil {
		return nil, err
	}
	return data.Rows, nil
}

// Settings retrieves the current settings document.
func (c *Client) Settings(ctx context.Context) (SettingsDoc, error) {
	var doc SettingsDoc
	err := c.getJSON(ctx, "/settings", &doc)
	return doc, err
}

// Buckets retrieves the ordered list of valid bucket labels.
func (c *Client) Buckets(ctx context.Context) ([]string, error) {
	var buckets []string
	if err := c.getJSON(ctx, "/settings/buckets", &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// SaveSettings submits doc and returns the document the server actually
// persisted. Callers must treat the echoed document, not doc, as truth.
func (c *Client) SaveSettings(ctx context.Context, doc SettingsDoc) (SettingsDoc, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return SettingsDoc{}, fmt.Errorf("encode settings: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/settings", bytes.NewReader(body))
	if err != nil {
		return SettingsDoc{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var saved SettingsDoc
	if err := c.do(req, &saved); err != nil {
		return SettingsDoc{}, err
	}
	return saved, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}
