package sensors

import "image/color"

var (
	ColorWhite      = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorBlack      = color.RGBA{A: 0xFF}
	ColorDarkGray   = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
	ColorBlue       = color.RGBA{R: 0x00, G: 0x55, B: 0xFF, A: 0xFF}
	ColorGreen      = color.RGBA{R: 0x00, G: 0xAA, B: 0x55, A: 0xFF}
	ColorOrange     = color.RGBA{R: 0xFF, G: 0x55, B: 0x00, A: 0xFF}
	ColorRed        = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	ColorPictonBlue = color.RGBA{R: 0x55, G: 0xAA, B: 0xFF, A: 0xFF}
)

// Palette picks label colours. It is chosen once when the watchface is built.
type Palette interface {
	Color(r Record) color.RGBA
	Placeholder() color.RGBA
}

// Monochrome draws every label in one colour.
type Monochrome struct {
	Text color.RGBA
}

func (m Monochrome) Color(Record) color.RGBA { return m.Text }
func (m Monochrome) Placeholder() color.RGBA { return m.Text }

// Band maps values up to and including Threshold to Color.
type Band struct {
	Threshold int
	Color     color.RGBA
}

// Banded colours temperature records by value. Bands must be sorted by
// ascending Threshold; values above the last threshold take the last colour.
// Records of any other kind use Neutral. Records without a kind are treated
// as temperatures.
type Banded struct {
	Bands       []Band
	Neutral     color.RGBA
	Unavailable color.RGBA
}

func (b Banded) Color(r Record) color.RGBA {
	if r.Unit != UnitNone && r.Unit != UnitTemperature {
		return b.Neutral
	}
	return BandColor(b.Bands, r.Value, b.Neutral)
}

func (b Banded) Placeholder() color.RGBA { return b.Unavailable }

// BandColor returns the colour of the first band whose threshold v does not
// exceed, the last band's colour when v exceeds them all, or fallback when
// bands is empty.
func BandColor(bands []Band, v int, fallback color.RGBA) color.RGBA {
	if len(bands) == 0 {
		return fallback
	}
	for _, band := range bands {
		if v <= band.Threshold {
			return band.Color
		}
	}
	return bands[len(bands)-1].Color
}

// DefaultTemperatureBands splits temperatures into cold, mild, warm and hot.
var DefaultTemperatureBands = []Band{
	{Threshold: 10, Color: ColorBlue},
	{Threshold: 20, Color: ColorGreen},
	{Threshold: 28, Color: ColorOrange},
	{Threshold: 40, Color: ColorRed},
}

// DefaultBanded is the palette used on colour displays.
func DefaultBanded() Banded {
	return Banded{
		Bands:       DefaultTemperatureBands,
		Neutral:     ColorWhite,
		Unavailable: ColorDarkGray,
	}
}
