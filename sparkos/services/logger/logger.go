package logger

import (
	"sensorwatch/hal"
	termclient "sensorwatch/sparkos/client/term"
	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"
)

// Service writes log lines to the HAL logger and mirrors them to the
// diagnostics console when one is attached.
type Service struct {
	log     hal.Logger
	ep      kernel.Capability
	console kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability, console kernel.Capability) *Service {
	return &Service{log: log, ep: ep, console: console}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgLogLine {
			continue
		}
		line := msg.Payload()
		if s.log != nil {
			s.log.WriteLineBytes(line)
		}
		if s.console.Valid() {
			_ = termclient.WriteLine(ctx, s.console, line)
		}
	}
}
