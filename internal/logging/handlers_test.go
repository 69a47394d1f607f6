package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestTeeHandlerCollapses(t *testing.T) {
	if _, ok := newTeeHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}
	inner := NewRecorder(nil)
	if newTeeHandler(nil, inner, nil) != slog.Handler(inner) {
		t.Fatal("expected a single non-nil handler to be returned unwrapped")
	}
}

func TestTeeHandlerRoutesByLevel(t *testing.T) {
	info := NewRecorder(slog.LevelInfo)
	debug := NewRecorder(slog.LevelDebug)
	h := newTeeHandler(info, debug)

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("tee should be enabled when any handler accepts the level")
	}
	if newTeeHandler(NewRecorder(slog.LevelWarn), NewRecorder(slog.LevelError)).Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected tee to be disabled for info")
	}

	logger := slog.New(h)
	logger.Debug("debug only")
	logger.Info("both")

	if info.Len() != 1 {
		t.Fatalf("info recorder got %d lines, want 1", info.Len())
	}
	if debug.Len() != 2 {
		t.Fatalf("debug recorder got %d lines, want 2", debug.Len())
	}
}

func TestTeeHandlerWithAttrsReachesAll(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(nil)
	h := newTeeHandler(slog.NewJSONHandler(&buf, nil), rec)

	slog.New(h.WithAttrs([]slog.Attr{slog.String("key", "value")})).Info("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"key":"value"`)) {
		t.Fatalf("expected key attribute in json output, got %s", buf.Bytes())
	}
	if lines := rec.Lines(); len(lines) != 1 || lines[0] != "test key=value" {
		t.Fatalf("expected key attribute in recorder, got %q", lines)
	}
}

func TestTeeLogger(t *testing.T) {
	base := NewRecorder(nil)
	tee := NewRecorder(nil)
	TeeLogger(slog.New(base), tee).Info("teed message")
	if base.Len() != 1 || tee.Len() != 1 {
		t.Fatalf("expected one line each, got base=%d tee=%d", base.Len(), tee.Len())
	}

	solo := NewRecorder(nil)
	TeeLogger(nil, solo).Info("no base")
	if solo.Len() != 1 {
		t.Fatal("expected output with nil base")
	}
}

func TestWithLevelOverride(t *testing.T) {
	rec := NewRecorder(slog.LevelDebug)
	quiet := WithLevelOverride(slog.New(rec), slog.LevelWarn)
	quiet.Info("dropped")
	quiet.Warn("kept")
	if lines := rec.Lines(); len(lines) != 1 || lines[0] != "WARN kept" {
		t.Fatalf("unexpected lines %q", lines)
	}

	// A second override replaces the first floor instead of stacking.
	WithLevelOverride(quiet, slog.LevelDebug).Debug("loud again")
	if rec.Len() != 2 {
		t.Fatalf("expected replaced floor to admit debug, got %q", rec.Lines())
	}
}
