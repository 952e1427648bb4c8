package sensors

import "sensorwatch/sparkos/proto"

// Inbound app message keys.
const (
	KeyTimestamp  uint32 = 0
	KeyValues     uint32 = 1
	KeyKinds      uint32 = 2
	KeyLocations  uint32 = 3
	KeySensorList uint32 = 4 // reserved, reported as unrecognized
)

// Diagnostics receives the updater's log lines.
type Diagnostics interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopDiagnostics struct{}

func (nopDiagnostics) Infof(string, ...any)  {}
func (nopDiagnostics) Errorf(string, ...any) {}

// BatchResult summarises one inbound dictionary.
type BatchResult struct {
	Timestamp    uint32
	HasTimestamp bool

	Values    UpdateResult
	Kinds     UpdateResult
	Locations UpdateResult

	Unrecognized int
	Malformed    int
}

// Updater applies inbound sensor dictionaries to a Table.
type Updater struct {
	Diag Diagnostics
}

func NewUpdater(diag Diagnostics) *Updater {
	return &Updater{Diag: diag}
}

// Apply processes every tuple of d in arrival order and then rewinds the
// display cursor. Unknown keys and mistyped tuples are reported and skipped.
func (u *Updater) Apply(t *Table, d proto.Dict) BatchResult {
	diag := u.Diag
	if diag == nil {
		diag = nopDiagnostics{}
	}

	var res BatchResult
	for _, tup := range d {
		switch tup.Key {
		case KeyTimestamp:
			v, ok := tup.Uint32()
			if !ok {
				diag.Errorf("Timestamp has type %s, want uint", tup.Type)
				res.Malformed++
				continue
			}
			res.Timestamp = v
			res.HasTimestamp = true
			diag.Infof("Sensor Timestamp is %d", v)

		case KeyValues:
			s, ok := u.text(diag, tup, "Values")
			if !ok {
				res.Malformed++
				continue
			}
			res.Values = t.UpdateValues(s)
			diag.Infof("Sensor Values are %s", s)
			report(diag, "Values", res.Values)

		case KeyKinds:
			s, ok := u.text(diag, tup, "Types")
			if !ok {
				res.Malformed++
				continue
			}
			res.Kinds = t.UpdateKinds(s)
			diag.Infof("Sensor Types are %s", s)
			report(diag, "Types", res.Kinds)

		case KeyLocations:
			s, ok := u.text(diag, tup, "Locations")
			if !ok {
				res.Malformed++
				continue
			}
			res.Locations = t.UpdateLocations(s)
			diag.Infof("Sensor Locations are %s", s)
			report(diag, "Locations", res.Locations)

		default:
			diag.Errorf("Key %d not recognized!", tup.Key)
			res.Unrecognized++
		}
	}
	t.ResetCursor()
	return res
}

func (u *Updater) text(diag Diagnostics, tup proto.Tuple, name string) (string, bool) {
	s, ok := tup.CString()
	if !ok {
		diag.Errorf("%s has type %s, want cstring", name, tup.Type)
	}
	return s, ok
}

func report(diag Diagnostics, name string, r UpdateResult) {
	diag.Infof("Found %d %s", r.Written, name)
	if r.Dropped > 0 {
		diag.Errorf("%s: dropped %d past capacity %d", name, r.Dropped, Capacity)
	}
	if r.Truncated > 0 {
		diag.Infof("%s: truncated %d", name, r.Truncated)
	}
}
