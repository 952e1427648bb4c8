package watchface

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

var (
	timeFont   tinyfont.Fonter = &freesans.Bold24pt7b
	sensorFont tinyfont.Fonter = &freesans.Regular9pt7b
)

const (
	timeBaseline = 90
	rowHeight    = 22
	topFirstRow  = 22
	bottomRow    = 126
)

// rowBaselines places half the slots above the time label and the rest
// below it.
func rowBaselines(slots int) []int16 {
	out := make([]int16, slots)
	top := (slots + 1) / 2
	for i := 0; i < slots; i++ {
		if i < top {
			out[i] = int16(topFirstRow + i*rowHeight)
		} else {
			out[i] = int16(bottomRow + (i-top)*rowHeight)
		}
	}
	return out
}

func (t *Task) render() {
	if t.d == nil || t.consoleOn {
		return
	}
	t.d.Clear(t.background())
	t.d.DrawTextCentered(timeFont, timeBaseline, t.timeText, t.foreground())

	rows := rowBaselines(len(t.labels))
	for i, l := range t.labels {
		t.d.DrawTextCentered(sensorFont, rows[i], l.Text, l.Color)
	}
	_ = t.d.Display()
}
