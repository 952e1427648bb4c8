package proto

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// TupleType is the value encoding of one dictionary entry.
type TupleType uint8

const (
	TupleBytes TupleType = iota
	TupleCString
	TupleUint
	TupleInt
)

func (t TupleType) String() string {
	switch t {
	case TupleBytes:
		return "bytes"
	case TupleCString:
		return "cstring"
	case TupleUint:
		return "uint"
	case TupleInt:
		return "int"
	default:
		return "unknown"
	}
}

// Tuple is one key/value pair of an app message dictionary.
type Tuple struct {
	Key   uint32
	Type  TupleType
	Value []byte
}

// Dict is an ordered app message dictionary. Order is preserved on the wire
// and receivers process tuples in arrival order.
type Dict []Tuple

const (
	dictHeaderLen  = 1
	tupleHeaderLen = 4 + 1 + 2
	maxDictTuples  = 255
)

var (
	ErrDictTruncated = errors.New("app message: truncated dictionary")
	ErrDictTooMany   = errors.New("app message: too many tuples")
)

// Uint8Tuple builds a one-byte unsigned tuple.
func Uint8Tuple(key uint32, v uint8) Tuple {
	return Tuple{Key: key, Type: TupleUint, Value: []byte{v}}
}

// Uint32Tuple builds a little-endian u32 tuple.
func Uint32Tuple(key uint32, v uint32) Tuple {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return Tuple{Key: key, Type: TupleUint, Value: b}
}

// StringTuple builds a NUL-terminated string tuple.
func StringTuple(key uint32, s string) Tuple {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return Tuple{Key: key, Type: TupleCString, Value: b}
}

// Uint32 returns the tuple as an unsigned integer. Widths of 1, 2 and 4 bytes
// are accepted.
func (t Tuple) Uint32() (uint32, bool) {
	if t.Type != TupleUint && t.Type != TupleInt {
		return 0, false
	}
	switch len(t.Value) {
	case 1:
		return uint32(t.Value[0]), true
	case 2:
		return uint32(binary.LittleEndian.Uint16(t.Value)), true
	case 4:
		return binary.LittleEndian.Uint32(t.Value), true
	default:
		return 0, false
	}
}

// CString returns a cstring tuple's text up to the first NUL.
func (t Tuple) CString() (string, bool) {
	if t.Type != TupleCString {
		return "", false
	}
	b := t.Value
	for i, c := range b {
		if c == 0 {
			b = b[:i]
			break
		}
	}
	return string(b), true
}

// Lookup returns the first tuple with the given key.
func (d Dict) Lookup(key uint32) (Tuple, bool) {
	for _, t := range d {
		if t.Key == key {
			return t, true
		}
	}
	return Tuple{}, false
}

// EncodedLen reports the wire size of d.
func (d Dict) EncodedLen() int {
	n := dictHeaderLen
	for _, t := range d {
		n += tupleHeaderLen + len(t.Value)
	}
	return n
}

// EncodeDict encodes an app message dictionary.
//
// Layout (little-endian):
//   - u8: tuple count
//   - per tuple: u32 key, u8 type, u16 length, bytes value
func EncodeDict(d Dict) ([]byte, error) {
	if len(d) > maxDictTuples {
		return nil, ErrDictTooMany
	}
	buf := make([]byte, 0, d.EncodedLen())
	buf = append(buf, byte(len(d)))
	for _, t := range d {
		if len(t.Value) > 0xFFFF {
			return nil, fmt.Errorf("app message: key %d value too large (%d bytes)", t.Key, len(t.Value))
		}
		var hdr [tupleHeaderLen]byte
		binary.LittleEndian.PutUint32(hdr[0:4], t.Key)
		hdr[4] = byte(t.Type)
		binary.LittleEndian.PutUint16(hdr[5:7], uint16(len(t.Value)))
		buf = append(buf, hdr[:]...)
		buf = append(buf, t.Value...)
	}
	return buf, nil
}

// DecodeDict decodes an EncodeDict payload. Tuple values alias b.
func DecodeDict(b []byte) (Dict, error) {
	if len(b) < dictHeaderLen {
		return nil, ErrDictTruncated
	}
	n := int(b[0])
	b = b[dictHeaderLen:]
	d := make(Dict, 0, n)
	for i := 0; i < n; i++ {
		if len(b) < tupleHeaderLen {
			return nil, ErrDictTruncated
		}
		key := binary.LittleEndian.Uint32(b[0:4])
		typ := TupleType(b[4])
		l := int(binary.LittleEndian.Uint16(b[5:7]))
		b = b[tupleHeaderLen:]
		if len(b) < l {
			return nil, ErrDictTruncated
		}
		d = append(d, Tuple{Key: key, Type: typ, Value: b[:l:l]})
		b = b[l:]
	}
	return d, nil
}

// OutboxResultPayload encodes a MsgOutboxResult reply.
//
// Layout:
//   - u8: 1 when delivered, 0 when failed
//   - bytes: optional reason (UTF-8)
func OutboxResultPayload(ok bool, reason string) []byte {
	b := make([]byte, 1, 1+len(reason))
	if ok {
		b[0] = 1
	}
	return append(b, reason...)
}

func DecodeOutboxResultPayload(b []byte) (delivered bool, reason string, ok bool) {
	if len(b) < 1 {
		return false, "", false
	}
	return b[0] != 0, string(b[1:]), true
}
