package sensors

const (
	// Capacity is the number of sensor records a watch keeps.
	Capacity = 8

	// ValueBufLen and LocationBufLen size the per-record text buffers,
	// terminator included.
	ValueBufLen    = 8
	LocationBufLen = 8
)

// Unit is the single-letter marker shown after a value. The zero value means
// no kind was received for the record.
type Unit byte

const (
	UnitNone        Unit = 0
	UnitTemperature Unit = 'C'
	UnitHumidity    Unit = '%'
	UnitUV          Unit = 'U'
	UnitPressure    Unit = 'B'
	UnitUnknown     Unit = '?'
)

// UnitForKind maps a kind token to its unit by first letter.
func UnitForKind(kind string) Unit {
	if kind == "" {
		return UnitUnknown
	}
	switch kind[0] {
	case 't':
		return UnitTemperature
	case 'h':
		return UnitHumidity
	case 'u':
		return UnitUV
	case 'b':
		return UnitPressure
	default:
		return UnitUnknown
	}
}

// Marker returns the text appended after a value, empty when no kind is known.
func (u Unit) Marker() string {
	if u == UnitNone {
		return ""
	}
	return string(rune(u))
}

func (u Unit) String() string {
	switch u {
	case UnitNone:
		return "none"
	case UnitTemperature:
		return "temperature"
	case UnitHumidity:
		return "humidity"
	case UnitUV:
		return "uv"
	case UnitPressure:
		return "pressure"
	default:
		return "unknown"
	}
}

// Record is one sensor reading as shown on the watch.
type Record struct {
	// Text is the value as received, truncated to ValueBufLen-1 bytes.
	Text string
	// Value is the leading integer of Text.
	Value    int
	Unit     Unit
	Location string
}

// UpdateResult reports how one stream update went.
type UpdateResult struct {
	Written   int
	Dropped   int
	Truncated int
}

// Table is the bounded set of sensor records plus the display cursor.
//
// A Table is not safe for concurrent use; the watchface owns it from a single
// goroutine.
type Table struct {
	records [Capacity]Record
	count   int
	cursor  int
}

func NewTable() *Table {
	return &Table{}
}

// UpdateValues overwrites record values from a pipe-joined stream and sets
// the record count to the number of fields written.
func (t *Table) UpdateValues(s string) UpdateResult {
	res := t.each(s, ValueBufLen, func(r *Record, tok Token) {
		r.Text = tok.Text
		r.Value = leadingInt(tok.Text)
	})
	t.count = res.Written
	return res
}

// UpdateKinds overwrites record units from a pipe-joined stream of kind
// names. The record count is unchanged.
func (t *Table) UpdateKinds(s string) UpdateResult {
	return t.each(s, ValueBufLen, func(r *Record, tok Token) {
		r.Unit = UnitForKind(tok.Text)
	})
}

// UpdateLocations overwrites record locations from a pipe-joined stream. The
// record count is unchanged.
func (t *Table) UpdateLocations(s string) UpdateResult {
	return t.each(s, LocationBufLen, func(r *Record, tok Token) {
		r.Location = tok.Text
	})
}

func (t *Table) each(s string, size int, set func(*Record, Token)) UpdateResult {
	var res UpdateResult
	tz := NewTokenizer(s, Delimiter, size)
	for tz.Next() {
		if res.Written >= Capacity {
			res.Dropped++
			continue
		}
		tok := tz.Token()
		if tok.Truncated {
			res.Truncated++
		}
		set(&t.records[res.Written], tok)
		res.Written++
	}
	return res
}

// ResetCursor moves the display cursor back to the first record.
func (t *Table) ResetCursor() { t.cursor = 0 }

// Count returns the number of valid records.
func (t *Table) Count() int { return t.count }

// Cursor returns the index of the next record to display.
func (t *Table) Cursor() int { return t.cursor }

// Record returns record i if it is within the valid range.
func (t *Table) Record(i int) (Record, bool) {
	if i < 0 || i >= t.count {
		return Record{}, false
	}
	return t.records[i], true
}

// Records returns a copy of the valid records.
func (t *Table) Records() []Record {
	out := make([]Record, t.count)
	copy(out, t.records[:t.count])
	return out
}

// leadingInt parses the integer prefix of s the way C atoi does: optional
// leading spaces and sign, then digits up to the first non-digit.
func leadingInt(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
