// Package watchface shows the wall-clock time and round-robins the sensor
// readings pushed by the companion. Table updates happen only when an inbox
// batch arrives and the display only changes on a minute tick; both run on
// the task's single receive loop.
package watchface

import (
	"image/color"
	"time"

	"sensorwatch/hal"
	logclient "sensorwatch/sparkos/client/logger"
	termclient "sensorwatch/sparkos/client/term"
	timeclient "sensorwatch/sparkos/client/time"
	"sensorwatch/sparkos/gfx"
	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"
	"sensorwatch/sparkos/sensors"
)

// DefaultRefreshMinutes is how often the watch asks the companion for data.
const DefaultRefreshMinutes = 30

// RequestKey is the single key of the outbound refresh request.
const RequestKey uint32 = 0

// MaxSlots is the most sensor rows the 144x168 layout holds: two above the
// time label and two below it.
const MaxSlots = 4

type Config struct {
	Slots          int
	Palette        sensors.Palette
	Color          bool
	Use24h         bool
	RefreshMinutes int
}

// Caps are the endpoints the watchface talks to. Any of them may be left
// invalid to disable that feature.
type Caps struct {
	Time      kernel.Capability
	Log       kernel.Capability
	Console   kernel.Capability
	Companion kernel.Capability
}

type Task struct {
	disp hal.Display
	ep   kernel.Capability
	caps Caps
	cfg  Config

	d       *gfx.Display
	diag    sensors.Diagnostics
	table   *sensors.Table
	cycler  *sensors.Cycler
	updater *sensors.Updater

	timeText string
	labels   []sensors.Label

	// consoleOn is true from the moment the console is asked to show until
	// it acknowledges being hidden. The face does not draw meanwhile.
	consoleOn bool
}

// New returns a watchface. ep must carry both send and receive rights: the
// receive side is the inbox, the send side is handed out as the reply
// capability for ticks, outbox results and console acks.
func New(disp hal.Display, ep kernel.Capability, caps Caps, cfg Config) *Task {
	if cfg.Slots <= 0 {
		cfg.Slots = sensors.DefaultSlots
	}
	if cfg.Slots > MaxSlots {
		cfg.Slots = MaxSlots
	}
	if cfg.RefreshMinutes <= 0 {
		cfg.RefreshMinutes = DefaultRefreshMinutes
	}
	if cfg.Palette == nil {
		if cfg.Color {
			cfg.Palette = sensors.DefaultBanded()
		} else {
			cfg.Palette = sensors.Monochrome{Text: sensors.ColorWhite}
		}
	}
	t := &Task{
		disp:     disp,
		ep:       ep,
		caps:     caps,
		cfg:      cfg,
		table:    sensors.NewTable(),
		cycler:   sensors.NewCycler(cfg.Slots, cfg.Palette),
		timeText: "00:00",
	}
	t.labels = t.cycler.Cycle(t.table)
	return t
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep.Restrict(kernel.RightRecv))
	if !ok {
		return
	}
	if t.disp != nil {
		if fb := t.disp.Framebuffer(); fb != nil {
			t.d = gfx.New(fb)
		}
	}

	diag := logclient.Diag{Ctx: ctx, Cap: t.caps.Log}
	t.diag = diag
	t.updater = sensors.NewUpdater(diag)

	diag.Infof("MAX_NB_SENSORS = %d", sensors.Capacity)
	t.render()

	if t.caps.Time.Valid() {
		if res := timeclient.Subscribe(ctx, t.caps.Time, proto.MinuteUnit, t.reply()); res != kernel.SendOK {
			diag.Errorf("tick subscribe: %s", res)
		}
	}

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgAppInbox:
			t.handleInbox(msg.Payload())
		case proto.MsgOutboxResult:
			t.handleOutboxResult(msg.Payload())
		case proto.MsgTickEvent:
			t.handleTick(ctx, msg.Payload())
		case proto.MsgTap:
			t.handleTap(ctx, msg.Payload())
		case proto.MsgAppControl:
			t.handleConsoleAck(msg.Payload())
		case proto.MsgError:
			if code, ref, _, ok := proto.DecodeErrorPayload(msg.Payload()); ok {
				diag.Errorf("%s failed: %s", ref, code)
			}
		}
	}
}

func (t *Task) reply() kernel.Capability {
	return t.ep.Restrict(kernel.RightSend)
}

func (t *Task) handleInbox(payload []byte) {
	d, err := proto.DecodeDict(payload)
	if err != nil {
		t.diag.Errorf("Message dropped! %v", err)
		return
	}
	t.updater.Apply(t.table, d)
}

func (t *Task) handleOutboxResult(payload []byte) {
	delivered, reason, ok := proto.DecodeOutboxResultPayload(payload)
	switch {
	case !ok:
		t.diag.Errorf("Outbox result malformed")
	case delivered:
		t.diag.Infof("Outbox send success!")
	case reason != "":
		t.diag.Errorf("Outbox send failed! %s", reason)
	default:
		t.diag.Errorf("Outbox send failed!")
	}
}

func (t *Task) handleTick(ctx *kernel.Context, payload []byte) {
	unix, offset, changed, ok := proto.DecodeTickEventPayload(payload)
	if !ok || changed&proto.MinuteUnit == 0 {
		return
	}
	now := time.Unix(unix, 0).In(time.FixedZone("", int(offset)))
	t.timeText = FormatClock(now, t.cfg.Use24h)

	if now.Minute()%t.cfg.RefreshMinutes == 0 {
		t.requestUpdate(ctx)
	}

	t.labels = t.cycler.Cycle(t.table)
	for _, l := range t.labels {
		if !l.Placeholder {
			t.diag.Infof("Displaying sensor %d/%d %s", l.Index+1, t.table.Count(), l.Text)
		}
	}
	t.render()
}

// requestUpdate sends the one-byte refresh request to the companion.
func (t *Task) requestUpdate(ctx *kernel.Context) {
	if !t.caps.Companion.Valid() {
		return
	}
	payload, err := proto.EncodeDict(proto.Dict{proto.Uint8Tuple(RequestKey, 0)})
	if err != nil {
		t.diag.Errorf("Outbox send failed! %v", err)
		return
	}
	res := ctx.SendToCapResult(t.caps.Companion, uint16(proto.MsgAppOutbox), payload, t.reply())
	if res != kernel.SendOK {
		t.diag.Errorf("Outbox send failed! %s", res)
	}
}

func (t *Task) handleTap(ctx *kernel.Context, payload []byte) {
	axis, dir, ok := proto.DecodeTapPayload(payload)
	if !ok {
		return
	}
	t.diag.Infof("Tap received axis:%s dir:%d", axis, dir)

	if !t.caps.Console.Valid() {
		return
	}
	want := !t.consoleOn
	if termclient.SetActive(ctx, t.caps.Console, want, t.reply()) != kernel.SendOK {
		return
	}
	if want {
		t.consoleOn = true
	}
}

func (t *Task) handleConsoleAck(payload []byte) {
	active, ok := proto.DecodeAppControlPayload(payload)
	if !ok {
		return
	}
	t.consoleOn = active
	if !active {
		t.render()
	}
}

// FormatClock renders the time label as "15:04" or "03:04".
func FormatClock(now time.Time, use24h bool) string {
	if use24h {
		return now.Format("15:04")
	}
	return now.Format("03:04")
}

func (t *Task) background() color.RGBA {
	if t.cfg.Color {
		return sensors.ColorPictonBlue
	}
	return sensors.ColorBlack
}

func (t *Task) foreground() color.RGBA {
	if t.cfg.Color {
		return sensors.ColorBlack
	}
	return sensors.ColorWhite
}
