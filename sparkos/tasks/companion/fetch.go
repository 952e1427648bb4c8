package companion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"sensorwatch/internal/feed"
)

// ErrEmptyFeed is returned when a feed answers with no readings.
var ErrEmptyFeed = errors.New("companion: feed returned no readings")

// Fetcher returns the latest sensor readings.
type Fetcher interface {
	Fetch(ctx context.Context) ([]feed.Reading, error)
}

// HTTPFetcher reads `GET <URL>?uid=1,2,...` from a sensor feed.
type HTTPFetcher struct {
	URL    string
	UIDs   []int
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context) ([]feed.Reading, error) {
	u, err := url.Parse(f.URL)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}
	if len(f.UIDs) > 0 {
		q := u.Query()
		q.Set("uid", feed.FormatUIDs(f.UIDs))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %s", u.Redacted(), resp.Status)
	}

	var out []feed.Reading
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyFeed
	}
	return out, nil
}

// StaticFetcher always returns the same readings.
type StaticFetcher struct {
	Readings []feed.Reading
}

func (f StaticFetcher) Fetch(context.Context) ([]feed.Reading, error) {
	if len(f.Readings) == 0 {
		return nil, ErrEmptyFeed
	}
	out := make([]feed.Reading, len(f.Readings))
	copy(out, f.Readings)
	return out, nil
}
