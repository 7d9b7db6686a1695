package logger

import "testing"

func TestToLogrusFields(t *testing.T) {
	fields := []Field{{Key: "a", Value: 1}, {Key: "b", Value: "two"}}
	got := toLogrusFields(fields)
	if got["a"] != 1 || got["b"] != "two" {
		t.Fatalf("got %+v", got)
	}
}

func TestNopLoggerDiscardsEverything(t *testing.T) {
	l := NewNop()
	// None of these should panic; NewNop's contract is silent discard.
	l.Debug("x")
	l.Info("x", Field{Key: "k", Value: "v"})
	l.Warn("x")
	l.Error("x")
	if l.With(Field{Key: "k", Value: "v"}) == nil {
		t.Fatal("With returned nil")
	}
}

func TestNewLoggerWithFieldsDoesNotPanic(t *testing.T) {
	l := New(4)
	l2 := l.With(Field{Key: "session", Value: "abc"})
	l2.Info("hello", Field{Key: "extra", Value: 1})
}
