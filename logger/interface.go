// Package logger provides the node's structured logging surface, in the
// teacher's manner: a small interface over github.com/sirupsen/logrus,
// grounded on nabbar-golib/logger's Fields-map-plus-level-gated-methods
// shape (logger/fields.go, logger/interface.go), scaled down to what this
// node actually needs (no gin/gorm hooks, no syslog/file-hook sub-
// packages — this node has no HTTP surface and writes to stderr/stdout
// only).
package logger

// Field is one key/value pair attached to a log line, mirroring
// nabbar-golib/logger's Fields map entry.
type Field struct {
	Key   string
	Value interface{}
}

// Logger is the level-gated structured logging contract every package in
// this module logs through.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a Logger that prepends fields to every subsequent call,
	// mirroring the teacher's per-session field attachment
	// (logger/fields.go's Merge, applied at session/handler construction).
	With(fields ...Field) Logger
}
