package logger

import (
	"fmt"

	"wristwx/wxos/kernel"
	"wristwx/wxos/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	payload := proto.LogLinePayload(line, kernel.MaxMessageBytes)
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), payload, kernel.Capability{})
}

// Logf formats and sends a log line.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, fmt.Sprintf(format, args...))
}

// Logger binds a context and logger capability. The zero value discards lines.
type Logger struct {
	ctx    *kernel.Context
	cap    kernel.Capability
	prefix string
	debug  bool
}

// New returns a Logger that prefixes every line with prefix.
func New(ctx *kernel.Context, logCap kernel.Capability, prefix string, debug bool) Logger {
	return Logger{ctx: ctx, cap: logCap, prefix: prefix, debug: debug}
}

// Printf logs unconditionally.
func (l Logger) Printf(format string, args ...any) {
	if l.ctx == nil || !l.cap.Valid() {
		return
	}
	_ = Log(l.ctx, l.cap, l.prefix+fmt.Sprintf(format, args...))
}

// Debugf logs only when the logger was created with debug enabled.
func (l Logger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	l.Printf(format, args...)
}
