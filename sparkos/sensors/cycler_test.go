package sensors

import (
	"fmt"
	"image/color"
	"strings"
	"testing"
)

func labelTexts(labels []Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.Text
	}
	return out
}

func TestCycleEmptyTableShowsPlaceholder(t *testing.T) {
	tbl := NewTable()
	c := NewCycler(4, DefaultBanded())

	labels := c.Cycle(tbl)
	if len(labels) != 4 {
		t.Fatalf("len(labels) = %d, want 4", len(labels))
	}
	for i, l := range labels {
		if !l.Placeholder || l.Text != PlaceholderText || l.Color != ColorDarkGray || l.Index != -1 {
			t.Fatalf("label %d = %+v, want dark gray placeholder", i, l)
		}
	}
	if tbl.Cursor() != 0 {
		t.Fatalf("Cursor() = %d, want 0", tbl.Cursor())
	}
}

func TestCycleMoreSlotsThanRecords(t *testing.T) {
	tbl := populated(t)
	c := NewCycler(4, Monochrome{Text: ColorWhite})

	got := labelTexts(c.Cycle(tbl))
	want := []string{"21C@Living", "18%@Garden", "30B@Outside", "21C@Living"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("labels = %q, want %q", got, want)
	}
	if tbl.Cursor() != 1 {
		t.Fatalf("Cursor() = %d, want 1", tbl.Cursor())
	}

	got = labelTexts(c.Cycle(tbl))
	if got[0] != "18%@Garden" {
		t.Fatalf("second cycle first label = %q, want %q", got[0], "18%@Garden")
	}
}

func TestCycleVisitsEveryRecord(t *testing.T) {
	for count := 1; count <= Capacity; count++ {
		for slots := 1; slots <= 4; slots++ {
			tbl := NewTable()
			vals := make([]string, count)
			for i := range vals {
				vals[i] = fmt.Sprint(i)
			}
			tbl.UpdateValues(strings.Join(vals, "|"))
			c := NewCycler(slots, nil)

			seen := make(map[int]bool)
			rounds := (count + slots - 1) / slots
			for i := 0; i < rounds; i++ {
				for _, l := range c.Cycle(tbl) {
					seen[l.Index] = true
				}
			}
			if len(seen) != count {
				t.Fatalf("count=%d slots=%d: saw %d records in %d rounds", count, slots, len(seen), rounds)
			}
		}
	}
}

func TestCycleCursorWraps(t *testing.T) {
	tbl := NewTable()
	tbl.UpdateValues("1|2|3|4|5")
	c := NewCycler(4, nil)

	// After count cycles, count*slots assignments have been made.
	for i := 0; i < tbl.Count(); i++ {
		c.Cycle(tbl)
	}
	if tbl.Cursor() != 0 {
		t.Fatalf("Cursor() = %d, want 0", tbl.Cursor())
	}
}

func TestCycleResetsStaleCursor(t *testing.T) {
	tbl := NewTable()
	tbl.UpdateValues("1|2|3|4|5|6")
	c := NewCycler(1, nil)
	for i := 0; i < 5; i++ {
		c.Cycle(tbl)
	}
	tbl.UpdateValues("7|8")

	labels := c.Cycle(tbl)
	if labels[0].Index != 0 {
		t.Fatalf("Index = %d, want 0 after count shrank below cursor", labels[0].Index)
	}
}

func TestCycleTruncatesLabels(t *testing.T) {
	tbl := NewTable()
	tbl.UpdateValues("1013.25")
	tbl.UpdateKinds("barometer")
	tbl.UpdateLocations("Outside")
	c := NewCycler(1, nil)

	l := c.Cycle(tbl)[0]
	if !l.Truncated || len(l.Text) != LabelBufLen-1 {
		t.Fatalf("label = %q (truncated=%v), want %d bytes truncated", l.Text, l.Truncated, LabelBufLen-1)
	}
	if l.Text != "1013.25B@Outsid" {
		t.Fatalf("label = %q, want %q", l.Text, "1013.25B@Outsid")
	}
}

func TestFormatRecordWithoutKind(t *testing.T) {
	if got := FormatRecord(Record{Text: "21", Location: "Living"}); got != "21@Living" {
		t.Fatalf("FormatRecord() = %q, want %q", got, "21@Living")
	}
}

func TestBandedColors(t *testing.T) {
	p := DefaultBanded()
	tests := []struct {
		rec  Record
		want string
	}{
		{Record{Value: -5, Unit: UnitTemperature}, "blue"},
		{Record{Value: 10, Unit: UnitTemperature}, "blue"},
		{Record{Value: 11, Unit: UnitTemperature}, "green"},
		{Record{Value: 28}, "orange"},
		{Record{Value: 35, Unit: UnitTemperature}, "red"},
		{Record{Value: 90, Unit: UnitTemperature}, "red"},
		{Record{Value: 5, Unit: UnitHumidity}, "white"},
		{Record{Value: 1013, Unit: UnitPressure}, "white"},
		{Record{Value: 5, Unit: UnitUnknown}, "white"},
	}
	names := map[string]color.RGBA{
		"blue":   ColorBlue,
		"green":  ColorGreen,
		"orange": ColorOrange,
		"red":    ColorRed,
		"white":  ColorWhite,
	}
	for _, tt := range tests {
		if got := p.Color(tt.rec); got != names[tt.want] {
			t.Fatalf("Color(%+v) = %v, want %s", tt.rec, got, tt.want)
		}
	}
}

func TestBandColorEmpty(t *testing.T) {
	if got := BandColor(nil, 12, ColorBlack); got != ColorBlack {
		t.Fatalf("BandColor(nil) = %v, want fallback", got)
	}
}

func TestMonochromePlaceholder(t *testing.T) {
	tbl := NewTable()
	c := NewCycler(2, Monochrome{Text: ColorWhite})
	for _, l := range c.Cycle(tbl) {
		if l.Color != ColorWhite {
			t.Fatalf("placeholder color = %v, want white", l.Color)
		}
	}
}
