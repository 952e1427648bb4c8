//go:build !tinygo

package hal

import (
	"testing"
	"time"
)

type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func TestHostClockScales(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	fn := &fakeNow{t: base}
	origin := time.Date(2024, 5, 1, 11, 29, 0, 0, time.UTC)

	c := newHostClock(fn.now, origin, 60, time.UTC)
	if got := c.Now(); !got.Equal(origin) {
		t.Fatalf("Now() = %s, want %s", got, origin)
	}

	fn.t = base.Add(1 * time.Second)
	want := origin.Add(1 * time.Minute)
	if got := c.Now(); !got.Equal(want) {
		t.Fatalf("Now() after 1s at 60x = %s, want %s", got, want)
	}
}

func TestHostClockDefaults(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	fn := &fakeNow{t: base}
	c := newHostClock(fn.now, time.Time{}, 0, time.UTC)

	fn.t = base.Add(90 * time.Second)
	if got := c.Now(); !got.Equal(base.Add(90 * time.Second)) {
		t.Fatalf("Now() = %s, want real time", got)
	}
}
