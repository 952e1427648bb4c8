package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgSleep
	MsgWake
	MsgError
	MsgTermWrite
	MsgTermClear
	MsgAppControl
	MsgTickSubscribe
	MsgTickEvent
	MsgAppInbox
	MsgAppOutbox
	MsgOutboxResult
	MsgTap
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgSleep:
		return "sleep"
	case MsgWake:
		return "wake"
	case MsgError:
		return "error"
	case MsgTermWrite:
		return "term_write"
	case MsgTermClear:
		return "term_clear"
	case MsgAppControl:
		return "app_control"
	case MsgTickSubscribe:
		return "tick_subscribe"
	case MsgTickEvent:
		return "tick_event"
	case MsgAppInbox:
		return "app_inbox"
	case MsgAppOutbox:
		return "app_outbox"
	case MsgOutboxResult:
		return "outbox_result"
	case MsgTap:
		return "tap"
	default:
		return "unknown"
	}
}
