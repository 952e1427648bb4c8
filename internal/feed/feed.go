// Package feed serves the last known sensor readings as JSON. The companion
// task consumes this shape, and cmd/feedserver hosts it for development.
package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Reading is one sensor's most recent sample.
type Reading struct {
	UID           int       `json:"uid"`
	Value         float64   `json:"value"`
	LocationLabel string    `json:"location_label"`
	Type          string    `json:"type"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Store keeps the latest reading per sensor UID.
type Store struct {
	mu       sync.RWMutex
	readings map[int]Reading
}

func NewStore(readings []Reading) *Store {
	s := &Store{readings: make(map[int]Reading, len(readings))}
	for _, r := range readings {
		s.readings[r.UID] = r
	}
	return s
}

// Put replaces the reading for r.UID.
func (s *Store) Put(r Reading) {
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	s.readings[r.UID] = r
	s.mu.Unlock()
}

// Last returns the readings for uids in request order, skipping unknown
// UIDs. An empty uids list returns every reading ordered by UID.
func (s *Store) Last(uids []int) []Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Reading, 0, len(s.readings))
	if len(uids) == 0 {
		for _, r := range s.readings {
			out = append(out, r)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
		return out
	}
	for _, uid := range uids {
		if r, ok := s.readings[uid]; ok {
			out = append(out, r)
		}
	}
	return out
}

// ParseUIDs parses a comma separated UID list such as "1,2,6".
func ParseUIDs(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		uid, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parse uid %q: %w", p, err)
		}
		out = append(out, uid)
	}
	return out, nil
}

// FormatUIDs is the inverse of ParseUIDs.
func FormatUIDs(uids []int) string {
	parts := make([]string, len(uids))
	for i, uid := range uids {
		parts[i] = strconv.Itoa(uid)
	}
	return strings.Join(parts, ",")
}

// LoadFile reads a JSON array of readings.
func LoadFile(path string) ([]Reading, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}
	var out []Reading
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode feed file %s: %w", path, err)
	}
	return out, nil
}

// SampleReadings is a small household used when no feed file is given.
func SampleReadings() []Reading {
	return []Reading{
		{UID: 1, Value: 21.4, LocationLabel: "Living room", Type: "temperature"},
		{UID: 2, Value: 6.2, LocationLabel: "Garden shed", Type: "temperature"},
		{UID: 6, Value: 48, LocationLabel: "Bathroom", Type: "humidity"},
		{UID: 8, Value: 3, LocationLabel: "Balcony", Type: "uv"},
		{UID: 10, Value: 1013, LocationLabel: "Hallway", Type: "barometer"},
	}
}
