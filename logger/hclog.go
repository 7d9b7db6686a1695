package logger

import (
	"io"
	stdlog "log"
	"os"

	"github.com/hashicorp/go-hclog"
)

// hclogAdapter satisfies hclog.Logger by forwarding to a Logger, mirroring
// nabbar-golib/logger/hashicorp's model.go adapter. pion/dtls/v2's
// logging.LeveledLogger and nutsdb's logger hook are the two consumers
// SPEC_FULL.md's DOMAIN STACK table names for this.
type hclogAdapter struct {
	name string
	l    Logger
	args []interface{}
}

// NewHclog wraps l as an hclog.Logger under name.
func NewHclog(name string, l Logger) hclog.Logger {
	return &hclogAdapter{name: name, l: l}
}

func (h *hclogAdapter) fields(args []interface{}) []Field {
	all := append(append([]interface{}{}, h.args...), args...)
	fields := make([]Field, 0, len(all)/2)
	for i := 0; i+1 < len(all); i += 2 {
		key, _ := all[i].(string)
		fields = append(fields, Field{Key: key, Value: all[i+1]})
	}
	return fields
}

func (h *hclogAdapter) Log(level hclog.Level, msg string, args ...interface{}) {
	switch level {
	case hclog.Trace, hclog.Debug:
		h.Debug(msg, args...)
	case hclog.Warn:
		h.Warn(msg, args...)
	case hclog.Error:
		h.Error(msg, args...)
	default:
		h.Info(msg, args...)
	}
}

func (h *hclogAdapter) Trace(msg string, args ...interface{}) { h.l.Debug(msg, h.fields(args)...) }
func (h *hclogAdapter) Debug(msg string, args ...interface{}) { h.l.Debug(msg, h.fields(args)...) }
func (h *hclogAdapter) Info(msg string, args ...interface{})  { h.l.Info(msg, h.fields(args)...) }
func (h *hclogAdapter) Warn(msg string, args ...interface{})  { h.l.Warn(msg, h.fields(args)...) }
func (h *hclogAdapter) Error(msg string, args ...interface{}) { h.l.Error(msg, h.fields(args)...) }

func (h *hclogAdapter) IsTrace() bool { return true }
func (h *hclogAdapter) IsDebug() bool { return true }
func (h *hclogAdapter) IsInfo() bool  { return true }
func (h *hclogAdapter) IsWarn() bool  { return true }
func (h *hclogAdapter) IsError() bool { return true }

func (h *hclogAdapter) ImpliedArgs() []interface{} { return h.args }

func (h *hclogAdapter) With(args ...interface{}) hclog.Logger {
	return &hclogAdapter{name: h.name, l: h.l, args: append(append([]interface{}{}, h.args...), args...)}
}

func (h *hclogAdapter) Name() string { return h.name }

func (h *hclogAdapter) Named(name string) hclog.Logger {
	n := h.name
	if n != "" {
		n = n + "." + name
	} else {
		n = name
	}
	return &hclogAdapter{name: n, l: h.l, args: h.args}
}

func (h *hclogAdapter) ResetNamed(name string) hclog.Logger {
	return &hclogAdapter{name: name, l: h.l, args: h.args}
}

func (h *hclogAdapter) SetLevel(hclog.Level) {}

func (h *hclogAdapter) GetLevel() hclog.Level { return hclog.Debug }

func (h *hclogAdapter) StandardLogger(opts *hclog.StandardLoggerOptions) *stdlog.Logger {
	return stdlog.New(h.StandardWriter(opts), "", 0)
}

func (h *hclogAdapter) StandardWriter(opts *hclog.StandardLoggerOptions) io.Writer {
	return os.Stderr
}
