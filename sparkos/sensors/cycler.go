package sensors

import "image/color"

const (
	// DefaultSlots is the number of sensor labels on the watchface.
	DefaultSlots = 4

	// LabelBufLen sizes a formatted label, terminator included.
	LabelBufLen = 16

	// PlaceholderText is shown in every slot until the first values arrive.
	PlaceholderText = "Loading..."
)

// Label is one formatted slot ready for rendering.
type Label struct {
	Text        string
	Color       color.RGBA
	Truncated   bool
	Placeholder bool

	// Index is the record shown, -1 for placeholders.
	Index int
}

// Cycler pages a Table through a fixed number of label slots.
type Cycler struct {
	Slots       int
	BufLen      int
	Placeholder string
	Palette     Palette
}

// NewCycler returns a Cycler with slots labels and default formatting.
// A nil palette draws everything white.
func NewCycler(slots int, palette Palette) *Cycler {
	if slots <= 0 {
		slots = DefaultSlots
	}
	if palette == nil {
		palette = Monochrome{Text: ColorWhite}
	}
	return &Cycler{
		Slots:       slots,
		BufLen:      LabelBufLen,
		Placeholder: PlaceholderText,
		Palette:     palette,
	}
}

// Cycle fills every slot with the next records after the cursor, wrapping
// around the valid records, and advances the cursor by the slot count.
// With no records every slot gets the placeholder and the cursor stays put.
func (c *Cycler) Cycle(t *Table) []Label {
	labels := make([]Label, c.Slots)

	if t.count == 0 {
		text, trunc := clip(c.Placeholder, c.BufLen-1)
		for i := range labels {
			labels[i] = Label{
				Text:        text,
				Color:       c.Palette.Placeholder(),
				Truncated:   trunc,
				Placeholder: true,
				Index:       -1,
			}
		}
		return labels
	}

	if t.cursor < 0 || t.cursor >= t.count {
		t.cursor = 0
	}
	for i := range labels {
		idx := (t.cursor + i) % t.count
		r := t.records[idx]
		text, trunc := clip(FormatRecord(r), c.BufLen-1)
		labels[i] = Label{
			Text:      text,
			Color:     c.Palette.Color(r),
			Truncated: trunc,
			Index:     idx,
		}
	}
	t.cursor = (t.cursor + c.Slots) % t.count
	return labels
}

// FormatRecord renders a record as value, unit marker and location, for
// example "21.4C@Living".
func FormatRecord(r Record) string {
	return r.Text + r.Unit.Marker() + "@" + r.Location
}
