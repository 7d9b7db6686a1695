package logger

import "github.com/sirupsen/logrus"

// logrusLogger backs Logger with github.com/sirupsen/logrus, the teacher's
// own logging backend (logger/golog.go wraps the same library).
type logrusLogger struct {
	entry *logrus.Entry
}

// New constructs a Logger writing through a fresh *logrus.Logger at level.
func New(level logrus.Level) Logger {
	l := logrus.New()
	l.SetLevel(level)
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

func (l *logrusLogger) log(level logrus.Level, msg string, fields ...Field) {
	if len(fields) == 0 {
		l.entry.Log(level, msg)
		return
	}
	l.entry.WithFields(toLogrusFields(fields)).Log(level, msg)
}

func (l *logrusLogger) Debug(msg string, fields ...Field) { l.log(logrus.DebugLevel, msg, fields...) }
func (l *logrusLogger) Info(msg string, fields ...Field)  { l.log(logrus.InfoLevel, msg, fields...) }
func (l *logrusLogger) Warn(msg string, fields ...Field)  { l.log(logrus.WarnLevel, msg, fields...) }
func (l *logrusLogger) Error(msg string, fields ...Field) { l.log(logrus.ErrorLevel, msg, fields...) }

func (l *logrusLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	return &logrusLogger{entry: l.entry.WithFields(toLogrusFields(fields))}
}

func toLogrusFields(fields []Field) logrus.Fields {
	f := make(logrus.Fields, len(fields))
	for _, fld := range fields {
		f[fld.Key] = fld.Value
	}
	return f
}

type nopLogger struct{}

// NewNop returns a Logger that discards everything, used as the default
// when a caller configures none.
func NewNop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}
func (nopLogger) Warn(string, ...Field)  {}
func (nopLogger) Error(string, ...Field) {}
func (nopLogger) With(...Field) Logger   { return nopLogger{} }
