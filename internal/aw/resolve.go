package aw

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ResolveBucket picks the AFK bucket to read from. A non-empty
// preference must match exactly one bucket host name (substring,
// case-insensitive). Without a preference a single candidate wins
// outright; with several, the bucket holding the most recent event is
// chosen.
func (c *Client) ResolveBucket(ctx context.Context, preference string) (string, error) {
	ids, err := c.AFKBuckets(ctx)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no AFK buckets found; is aw-watcher-afk running?")
	}
	if preference != "" {
		return matchPreference(ids, preference)
	}
	if len(ids) == 1 {
		return ids[0], nil
	}
	return c.latestBucket(ctx, ids), nil
}

func matchPreference(ids []string, preference string) (string, error) {
	var matched []string
	for _, id := range ids {
		if strings.Contains(strings.ToLower(id), strings.ToLower(preference)) {
			matched = append(matched, id)
		}
	}
	switch len(matched) {
	case 0:
		hosts := make([]string, len(ids))
		for i, id := range ids {
			hosts[i] = Hostname(id)
		}
		return "", fmt.Errorf("no bucket matches %q (available: %s)", preference, strings.Join(hosts, ", "))
	case 1:
		return matched[0], nil
	default:
		hosts := make([]string, len(matched))
		for i, id := range matched {
			hosts[i] = Hostname(id)
		}
		return "", fmt.Errorf("%q matches multiple buckets: %s", preference, strings.Join(hosts, ", "))
	}
}

func (c *Client) latestBucket(ctx context.Context, ids []string) string {
	best := ids[0]
	var bestTime time.Time
	for _, id := range ids {
		if last := c.lastEventTime(ctx, id); last.After(bestTime) {
			best, bestTime = id, last
		}
	}
	return best
}
