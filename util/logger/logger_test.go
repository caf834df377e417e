package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	lv := &slog.LevelVar{}
	lv.Set(level)
	l := &Logger{
		slog:  slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: lv})),
		level: lv,
	}
	return l, &buf
}

func TestErrorWritesMessageAndAttrs(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	l.Error("boom happened", "id", "f-1")
	out := buf.String()
	if !strings.Contains(out, "boom happened") || !strings.Contains(out, "id=f-1") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestLevelFiltersBelow(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelError)
	l.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	l.Error("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Fatal("expected error to pass the filter")
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	l.SetLevel("error")
	l.Warn("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected warn to be filtered after SetLevel(error), got %q", buf.String())
	}
	l.SetLevel("debug")
	l.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatal("expected debug to pass after SetLevel(debug)")
	}
}

func TestWithAddsFixedFields(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	l.With("component", "future").Info("hello")
	if !strings.Contains(buf.String(), "component=future") {
		t.Fatalf("expected fixed field in output, got %q", buf.String())
	}
}

func TestDefaultIsStableAndReplaceable(t *testing.T) {
	d1 := Default()
	if d1 == nil || Default() != d1 {
		t.Fatal("expected Default to return one stable logger")
	}
	custom, _ := newBufferLogger(slog.LevelInfo)
	SetDefault(custom)
	defer SetDefault(d1)
	if Default() != custom {
		t.Fatal("expected SetDefault to replace the default logger")
	}
}
