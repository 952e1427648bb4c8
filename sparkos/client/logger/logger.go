package logger

import (
	"fmt"

	"sensorwatch/sparkos/kernel"
	"sensorwatch/sparkos/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), payload(line), kernel.Capability{})
}

// Logf formats and sends a log line.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, fmt.Sprintf(format, args...))
}

// LogRetry sends a log line, waiting a tick between attempts while the
// logger's mailbox is full.
func LogRetry(ctx *kernel.Context, logCap kernel.Capability, line string, limit int) error {
	if ctx == nil {
		return fmt.Errorf("logger retry: nil context")
	}
	res := ctx.SendToCapRetry(logCap, uint16(proto.MsgLogLine), payload(line), kernel.Capability{}, limit)
	if res != kernel.SendOK {
		return fmt.Errorf("logger send: %s", res)
	}
	return nil
}

func payload(line string) []byte {
	b := []byte(line)
	if len(b) > kernel.MaxMessageBytes {
		b = b[:kernel.MaxMessageBytes]
	}
	return proto.LogLinePayload(b)
}

// Diag formats leveled lines for a task and sends them to the logger
// service. It satisfies sensors.Diagnostics.
type Diag struct {
	Ctx *kernel.Context
	Cap kernel.Capability
}

func (d Diag) Infof(format string, args ...any) {
	_ = Logf(d.Ctx, d.Cap, "INFO: "+format, args...)
}

func (d Diag) Errorf(format string, args ...any) {
	_ = Logf(d.Ctx, d.Cap, "ERROR: "+format, args...)
}
