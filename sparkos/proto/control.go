package proto

import "encoding/binary"

// ErrCode says why a service rejected a request. It travels in MsgError.
type ErrCode uint16

const (
	ErrUnknown ErrCode = iota
	ErrBadMessage
	ErrUnauthorized
	ErrNotFound
	ErrBusy
	ErrOverflow
	ErrTooLarge
	ErrInternal
)

var errCodeNames = [...]string{
	ErrUnknown:      "unknown",
	ErrBadMessage:   "bad_message",
	ErrUnauthorized: "unauthorized",
	ErrNotFound:     "not_found",
	ErrBusy:         "busy",
	ErrOverflow:     "overflow",
	ErrTooLarge:     "too_large",
	ErrInternal:     "internal",
}

func (c ErrCode) String() string {
	if int(c) < len(errCodeNames) {
		return errCodeNames[c]
	}
	return errCodeNames[ErrUnknown]
}

// ErrorPayload builds a MsgError body: code and the rejected kind as two
// little-endian u16, followed by detail bytes owned by the service.
func ErrorPayload(code ErrCode, ref Kind, detail []byte) []byte {
	b := make([]byte, 0, 4+len(detail))
	b = binary.LittleEndian.AppendUint16(b, uint16(code))
	b = binary.LittleEndian.AppendUint16(b, uint16(ref))
	return append(b, detail...)
}

func DecodeErrorPayload(b []byte) (code ErrCode, ref Kind, detail []byte, ok bool) {
	if len(b) < 4 {
		return 0, 0, nil, false
	}
	return ErrCode(binary.LittleEndian.Uint16(b)), Kind(binary.LittleEndian.Uint16(b[2:])), b[4:], true
}

// RequestDetail is the error detail used by services that number their
// requests, so a client can tell which call failed.
func RequestDetail(requestID uint32, rest []byte) []byte {
	b := binary.LittleEndian.AppendUint32(make([]byte, 0, 4+len(rest)), requestID)
	return append(b, rest...)
}

func DecodeRequestDetail(detail []byte) (requestID uint32, rest []byte, ok bool) {
	if len(detail) < 4 {
		return 0, nil, false
	}
	return binary.LittleEndian.Uint32(detail), detail[4:], true
}

// SleepPayload asks the time service for a MsgWake carrying requestID once
// dt kernel ticks have passed.
func SleepPayload(requestID, dt uint32) []byte {
	b := binary.LittleEndian.AppendUint32(make([]byte, 0, 8), requestID)
	return binary.LittleEndian.AppendUint32(b, dt)
}

func DecodeSleepPayload(b []byte) (requestID, dt uint32, ok bool) {
	if len(b) < 8 {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint32(b), binary.LittleEndian.Uint32(b[4:]), true
}

func WakePayload(requestID uint32) []byte {
	return binary.LittleEndian.AppendUint32(make([]byte, 0, 4), requestID)
}

func DecodeWakePayload(b []byte) (requestID uint32, ok bool) {
	if len(b) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

// LogLinePayload copies one log line, without its newline, into a message
// body. Lines may be dropped when the logger is backed up.
func LogLinePayload(line []byte) []byte {
	if line == nil {
		return nil
	}
	return append([]byte(nil), line...)
}

// AppControlPayload switches the console on or off. The console echoes the
// same single byte back as its acknowledgement.
func AppControlPayload(active bool) []byte {
	var b byte
	if active {
		b = 1
	}
	return []byte{b}
}

func DecodeAppControlPayload(b []byte) (active, ok bool) {
	if len(b) != 1 {
		return false, false
	}
	return b[0] != 0, true
}
