package logger

import (
	"testing"

	"github.com/hashicorp/go-hclog"
)

type capturedCall struct {
	level  string
	msg    string
	fields []Field
}

type recordingLogger struct {
	calls *[]capturedCall
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{calls: &[]capturedCall{}}
}

func (r *recordingLogger) Debug(msg string, fields ...Field) {
	*r.calls = append(*r.calls, capturedCall{"debug", msg, fields})
}
func (r *recordingLogger) Info(msg string, fields ...Field) {
	*r.calls = append(*r.calls, capturedCall{"info", msg, fields})
}
func (r *recordingLogger) Warn(msg string, fields ...Field) {
	*r.calls = append(*r.calls, capturedCall{"warn", msg, fields})
}
func (r *recordingLogger) Error(msg string, fields ...Field) {
	*r.calls = append(*r.calls, capturedCall{"error", msg, fields})
}
func (r *recordingLogger) With(fields ...Field) Logger { return r }

func TestHclogAdapterLevelDispatch(t *testing.T) {
	rec := newRecordingLogger()
	h := NewHclog("test", rec)

	h.Trace("trace-msg")
	h.Debug("debug-msg")
	h.Info("info-msg")
	h.Warn("warn-msg")
	h.Error("error-msg")

	calls := *rec.calls
	if len(calls) != 5 {
		t.Fatalf("got %d calls, want 5", len(calls))
	}
	want := []string{"debug", "debug", "info", "warn", "error"}
	for i, lvl := range want {
		if calls[i].level != lvl {
			t.Errorf("call %d: level = %q, want %q", i, calls[i].level, lvl)
		}
	}
}

func TestHclogAdapterFieldsZipArgs(t *testing.T) {
	rec := newRecordingLogger()
	h := NewHclog("test", rec)

	h.Info("msg", "key1", "val1", "key2", 42)

	calls := *rec.calls
	if len(calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(calls))
	}
	fields := calls[0].fields
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Key != "key1" || fields[0].Value != "val1" {
		t.Errorf("field 0 = %+v, want key1=val1", fields[0])
	}
	if fields[1].Key != "key2" || fields[1].Value != 42 {
		t.Errorf("field 1 = %+v, want key2=42", fields[1])
	}
}

func TestHclogAdapterWithAccumulatesImpliedArgs(t *testing.T) {
	rec := newRecordingLogger()
	h := NewHclog("test", rec)

	h2 := h.With("scope", "session")
	h2.Info("msg", "extra", "field")

	calls := *rec.calls
	if len(calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(calls))
	}
	fields := calls[0].fields
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Key != "scope" || fields[0].Value != "session" {
		t.Errorf("field 0 = %+v, want scope=session", fields[0])
	}
	if fields[1].Key != "extra" || fields[1].Value != "field" {
		t.Errorf("field 1 = %+v, want extra=field", fields[1])
	}
}

func TestHclogAdapterNamed(t *testing.T) {
	rec := newRecordingLogger()
	h := NewHclog("parent", rec)

	named := h.Named("child")
	if named.Name() != "parent.child" {
		t.Fatalf("Name() = %q, want \"parent.child\"", named.Name())
	}

	reset := h.ResetNamed("fresh")
	if reset.Name() != "fresh" {
		t.Fatalf("Name() after ResetNamed = %q, want \"fresh\"", reset.Name())
	}
}

func TestHclogAdapterIsLevelAlwaysTrue(t *testing.T) {
	h := NewHclog("test", NewNop())
	if !h.IsTrace() || !h.IsDebug() || !h.IsInfo() || !h.IsWarn() || !h.IsError() {
		t.Fatal("expected all Is* level checks to report true")
	}
	if h.GetLevel() != hclog.Debug {
		t.Fatalf("GetLevel() = %v, want hclog.Debug", h.GetLevel())
	}
}
