package sensors

import (
	"fmt"
	"strings"
	"testing"
)

func populated(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable()
	tbl.UpdateValues("21|18|30")
	tbl.UpdateKinds("t|h|b")
	tbl.UpdateLocations("Living|Garden|Outside")
	return tbl
}

func TestTableUpdateStreams(t *testing.T) {
	tbl := populated(t)

	if tbl.Count() != 3 || tbl.Cursor() != 0 {
		t.Fatalf("count, cursor = %d, %d, want 3, 0", tbl.Count(), tbl.Cursor())
	}
	want := []Record{
		{Text: "21", Value: 21, Unit: UnitTemperature, Location: "Living"},
		{Text: "18", Value: 18, Unit: UnitHumidity, Location: "Garden"},
		{Text: "30", Value: 30, Unit: UnitPressure, Location: "Outside"},
	}
	got := tbl.Records()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTableValuesSetCount(t *testing.T) {
	for k := 1; k <= Capacity; k++ {
		tbl := NewTable()
		vals := make([]string, k)
		for i := range vals {
			vals[i] = fmt.Sprint(i)
		}
		res := tbl.UpdateValues(strings.Join(vals, "|"))
		if tbl.Count() != k || res.Written != k || res.Dropped != 0 {
			t.Fatalf("k=%d: count=%d result=%+v", k, tbl.Count(), res)
		}
	}
}

func TestTableValuesStopAtCapacity(t *testing.T) {
	tbl := NewTable()
	res := tbl.UpdateValues("1|2|3|4|5|6|7|8|9|10")
	if tbl.Count() != Capacity {
		t.Fatalf("Count() = %d, want %d", tbl.Count(), Capacity)
	}
	if res.Written != Capacity || res.Dropped != 2 {
		t.Fatalf("result = %+v, want Written=%d Dropped=2", res, Capacity)
	}
	if r, _ := tbl.Record(Capacity - 1); r.Text != "8" {
		t.Fatalf("last record = %q, want %q", r.Text, "8")
	}
}

func TestTableValueTruncationAndInteger(t *testing.T) {
	tbl := NewTable()
	res := tbl.UpdateValues("21.46|-3.5|1013.25|abc|123456789")
	if res.Truncated != 1 {
		t.Fatalf("Truncated = %d, want 1", res.Truncated)
	}
	want := []struct {
		text  string
		value int
	}{
		{"21.46", 21},
		{"-3.5", -3},
		{"1013.25", 1013},
		{"abc", 0},
		{"1234567", 1234567},
	}
	for i, w := range want {
		r, ok := tbl.Record(i)
		if !ok || r.Text != w.text || r.Value != w.value {
			t.Fatalf("record %d = %q/%d, want %q/%d", i, r.Text, r.Value, w.text, w.value)
		}
	}
}

func TestTableKindsAndLocationsKeepCount(t *testing.T) {
	tbl := NewTable()
	tbl.UpdateValues("1|2")
	tbl.UpdateKinds("t|h|u|b|x")
	tbl.UpdateLocations("a|b|c|d")
	if tbl.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", tbl.Count())
	}
	if _, ok := tbl.Record(2); ok {
		t.Fatal("Record(2) ok = true beyond count")
	}
}

func TestTableShorterStreamsKeepStaleData(t *testing.T) {
	tbl := populated(t)
	tbl.UpdateValues("5|6|7")
	tbl.UpdateLocations("Attic")

	r, _ := tbl.Record(1)
	if r.Location != "Garden" || r.Unit != UnitHumidity {
		t.Fatalf("record 1 = %+v, want stale location Garden and humidity", r)
	}
	r, _ = tbl.Record(0)
	if r.Location != "Attic" || r.Text != "5" {
		t.Fatalf("record 0 = %+v, want 5@Attic", r)
	}
}

func TestTableEmptyValuesStream(t *testing.T) {
	tbl := populated(t)
	tbl.UpdateValues("")
	if tbl.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", tbl.Count())
	}
	if r, _ := tbl.Record(0); r.Text != "" || r.Value != 0 {
		t.Fatalf("record 0 = %+v, want empty value", r)
	}
}

func TestUnitForKind(t *testing.T) {
	tests := map[string]Unit{
		"temperature": UnitTemperature,
		"t":           UnitTemperature,
		"humidity":    UnitHumidity,
		"uv":          UnitUV,
		"barometer":   UnitPressure,
		"wind":        UnitUnknown,
		"":            UnitUnknown,
		"Temperature": UnitUnknown,
	}
	for kind, want := range tests {
		if got := UnitForKind(kind); got != want {
			t.Fatalf("UnitForKind(%q) = %s, want %s", kind, got, want)
		}
	}
}
