package companion

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"sensorwatch/internal/feed"
	"sensorwatch/sparkos/proto"
	"sensorwatch/sparkos/sensors"
)

// maxFieldLen bounds a kind or location field so a full batch always fits
// one kernel message.
const maxFieldLen = sensors.LabelBufLen - 1

// BuildDict turns readings into the dictionary the watchface expects: a
// timestamp plus pipe-joined values, kinds and locations. Every field is
// followed by the delimiter, including the last. Only the first
// sensors.Capacity readings are sent since the watch keeps no more.
func BuildDict(readings []feed.Reading, now time.Time) proto.Dict {
	if len(readings) > sensors.Capacity {
		readings = readings[:sensors.Capacity]
	}
	var values, kinds, locations strings.Builder
	for _, r := range readings {
		values.WriteString(strconv.Itoa(int(math.Round(r.Value))))
		values.WriteByte(sensors.Delimiter)
		kinds.WriteString(field(r.Type))
		kinds.WriteByte(sensors.Delimiter)
		locations.WriteString(Label(r.LocationLabel))
		locations.WriteByte(sensors.Delimiter)
	}
	return proto.Dict{
		proto.Uint32Tuple(sensors.KeyTimestamp, uint32(now.Unix())),
		proto.StringTuple(sensors.KeyValues, values.String()),
		proto.StringTuple(sensors.KeyKinds, kinds.String()),
		proto.StringTuple(sensors.KeyLocations, locations.String()),
	}
}

// Label shortens a location label to its first word, "Living room" => "Living".
func Label(location string) string {
	word, _, _ := strings.Cut(location, " ")
	return field(word)
}

// field drops delimiters from s so it stays one field, and clips it to
// maxFieldLen bytes on a rune boundary.
func field(s string) string {
	s = strings.ReplaceAll(s, string(sensors.Delimiter), "")
	if len(s) <= maxFieldLen {
		return s
	}
	n := maxFieldLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
