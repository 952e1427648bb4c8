package proto

import "encoding/binary"

// TimeUnits is a bitmask of calendar units that changed between two clock reads.
type TimeUnits uint8

const (
	SecondUnit TimeUnits = 1 << iota
	MinuteUnit
	HourUnit
	DayUnit
	MonthUnit
	YearUnit
)

// TickSubscribePayload encodes a MsgTickSubscribe request. The subscriber's
// reply capability travels in Message.Cap.
func TickSubscribePayload(units TimeUnits) []byte {
	return []byte{byte(units)}
}

func DecodeTickSubscribePayload(b []byte) (units TimeUnits, ok bool) {
	if len(b) != 1 {
		return 0, false
	}
	return TimeUnits(b[0]), true
}

// TickEventPayload encodes a MsgTickEvent.
//
// Layout (little-endian):
//   - i64: wall-clock unix seconds
//   - i32: UTC offset in seconds of the wall-clock zone
//   - u8: units changed since the previous event
func TickEventPayload(unix int64, offset int32, changed TimeUnits) []byte {
	buf := make([]byte, 13)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(unix))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(offset))
	buf[12] = byte(changed)
	return buf
}

func DecodeTickEventPayload(b []byte) (unix int64, offset int32, changed TimeUnits, ok bool) {
	if len(b) < 13 {
		return 0, 0, 0, false
	}
	unix = int64(binary.LittleEndian.Uint64(b[0:8]))
	offset = int32(binary.LittleEndian.Uint32(b[8:12]))
	return unix, offset, TimeUnits(b[12]), true
}

// Axis names the accelerometer axis a tap was detected on.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// TapPayload encodes a MsgTap event: u8 axis, i8 direction (+1 or -1).
func TapPayload(axis Axis, direction int8) []byte {
	return []byte{byte(axis), byte(direction)}
}

func DecodeTapPayload(b []byte) (axis Axis, direction int8, ok bool) {
	if len(b) != 2 {
		return 0, 0, false
	}
	return Axis(b[0]), int8(b[1]), true
}
