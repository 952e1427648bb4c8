// Package term is the client side of the diagnostics console.
package term

import (
	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"
)

const crlf = "\r\n"

// WriteLine appends line to the console history, cutting it short so the
// CRLF still fits in one message. Delivery is best effort.
func WriteLine(ctx *kernel.Context, console kernel.Capability, line []byte) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	if limit := kernel.MaxMessageBytes - len(crlf); len(line) > limit {
		line = line[:limit]
	}
	msg := append(append(make([]byte, 0, len(line)+len(crlf)), line...), crlf...)
	return ctx.SendToCapResult(console, uint16(proto.MsgTermWrite), msg, kernel.Capability{})
}

// Clear drops the console history and blanks it if it is showing.
func Clear(ctx *kernel.Context, console kernel.Capability) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(console, uint16(proto.MsgTermClear), nil, kernel.Capability{})
}

// SetActive shows or hides the console. A valid reply capability gets a
// MsgAppControl back with the state the console actually took.
func SetActive(ctx *kernel.Context, console kernel.Capability, active bool, reply kernel.Capability) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(console, uint16(proto.MsgAppControl), proto.AppControlPayload(active), reply)
}
