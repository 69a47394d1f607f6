package logging

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Recorder is a slog handler that keeps every record it sees as a plain text
// line. One Recorder belongs to one run; clones made through WithAttrs share
// the same transcript.
type Recorder struct {
	log    *transcript
	level  slog.Leveler
	bound  []slog.Attr
	groups []string
}

type transcript struct {
	mu     sync.Mutex
	lines  []string
	events map[string]int
}

// NewRecorder returns an empty Recorder. A nil level records info and above.
func NewRecorder(level slog.Leveler) *Recorder {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Recorder{log: &transcript{events: make(map[string]int)}, level: level}
}

func (r *Recorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.level.Level()
}

// Handle appends "[stage]: message k=v" with warnings and errors prefixed by
// their level. Correlation fields are dropped from the line.
func (r *Recorder) Handle(_ context.Context, record slog.Record) error {
	fs := gather(r.groups, r.bound, record)
	stage, fs := fs.take(FieldStage)
	eventType, fs := fs.take(FieldEventType)
	fs = fs.without(FieldComponent, FieldRunID, FieldRoot, FieldCorrelationID)

	var buf bytes.Buffer
	if record.Level >= slog.LevelWarn {
		buf.WriteString(levelLabel(record.Level) + " ")
	}
	writeSubject(&buf, "", stage)
	buf.WriteString(strings.TrimSpace(record.Message))
	fs.writeTo(&buf)

	r.log.mu.Lock()
	defer r.log.mu.Unlock()
	r.log.lines = append(r.log.lines, buf.String())
	if eventType != "" {
		r.log.events[eventType]++
	}
	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *r
	next.bound = append(slices.Clip(r.bound), attrs...)
	return &next
}

func (r *Recorder) WithGroup(name string) slog.Handler {
	next := *r
	next.groups = append(slices.Clip(r.groups), name)
	return &next
}

// Lines returns a copy of the transcript so far.
func (r *Recorder) Lines() []string {
	r.log.mu.Lock()
	defer r.log.mu.Unlock()
	return slices.Clone(r.log.lines)
}

// Len reports how many lines have been recorded.
func (r *Recorder) Len() int {
	r.log.mu.Lock()
	defer r.log.mu.Unlock()
	return len(r.log.lines)
}

// EventCount reports how many records carried the given event_type.
func (r *Recorder) EventCount(eventType string) int {
	r.log.mu.Lock()
	defer r.log.mu.Unlock()
	return r.log.events[eventType]
}
