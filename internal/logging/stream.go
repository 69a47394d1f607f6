package logging

import (
	"context"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"
)

// LogEvent represents a structured log line published to the streaming hub.
type LogEvent struct {
	Sequence      uint64            `json:"seq"`
	Timestamp     time.Time         `json:"ts"`
	Level         string            `json:"level"`
	Message       string            `json:"msg"`
	Component     string            `json:"component,omitempty"`
	Stage         string            `json:"stage,omitempty"`
	RunID         string            `json:"run_id,omitempty"`
	EventType     string            `json:"event_type,omitempty"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
}

// StreamFilter narrows a query to one component, run, or phase. Empty fields
// match everything; component and stage compare case-insensitively.
type StreamFilter struct {
	Component string
	RunID     string
	Stage     string
}

// Matches reports whether evt passes the filter.
func (f StreamFilter) Matches(evt LogEvent) bool {
	if f.Component != "" && !strings.EqualFold(f.Component, evt.Component) {
		return false
	}
	if f.RunID != "" && f.RunID != evt.RunID {
		return false
	}
	if f.Stage != "" && !strings.EqualFold(f.Stage, evt.Stage) {
		return false
	}
	return true
}

// LogEventSink receives every published log event.
type LogEventSink interface {
	Append(LogEvent)
}

// StreamHub keeps the most recent events in a ring and wakes waiters when
// new ones arrive. Sequence numbers start at 1 and never repeat.
type StreamHub struct {
	mu      sync.Mutex
	cond    *sync.Cond
	ring    []LogEvent
	head    int // index of the oldest event
	size    int
	lastSeq uint64
	sinks   []LogEventSink
}

// NewStreamHub constructs a hub holding at most capacity events (default 512).
func NewStreamHub(capacity int) *StreamHub {
	if capacity <= 0 {
		capacity = 512
	}
	h := &StreamHub{ring: make([]LogEvent, capacity)}
	h.cond = sync.NewCond(&h.mu)
	return h
}

// AddSink wires an additional sink that receives every published event.
func (h *StreamHub) AddSink(sink LogEventSink) {
	if h == nil || sink == nil {
		return
	}
	h.mu.Lock()
	h.sinks = append(h.sinks, sink)
	h.mu.Unlock()
}

// Publish assigns the next sequence number to evt and stores it, evicting the
// oldest event when full. Sinks run outside the lock.
func (h *StreamHub) Publish(evt LogEvent) {
	if h == nil {
		return
	}
	h.mu.Lock()
	h.lastSeq++
	evt.Sequence = h.lastSeq
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	if h.size < len(h.ring) {
		h.ring[(h.head+h.size)%len(h.ring)] = evt
		h.size++
	} else {
		h.ring[h.head] = evt
		h.head = (h.head + 1) % len(h.ring)
	}
	sinks := h.sinks
	h.cond.Broadcast()
	h.mu.Unlock()

	for _, sink := range sinks {
		sink.Append(evt)
	}
}

// Fetch returns up to limit matching events with a sequence above since, and
// the cursor to pass as since next time. With wait set it blocks until a
// matching event arrives or ctx ends.
func (h *StreamHub) Fetch(ctx context.Context, since uint64, limit int, wait bool, filter StreamFilter) ([]LogEvent, uint64, error) {
	if h == nil {
		return nil, since, nil
	}
	if limit <= 0 || limit > len(h.ring) {
		limit = len(h.ring)
	}

	if wait && ctx != nil && ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			h.mu.Lock()
			h.cond.Broadcast()
			h.mu.Unlock()
		})
		defer stop()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for {
		events, next := h.collectLocked(since, limit, filter)
		if len(events) > 0 || !wait {
			return events, next, nil
		}
		if err := contextError(ctx); err != nil {
			return nil, next, err
		}
		since = next
		h.cond.Wait()
		if err := contextError(ctx); err != nil {
			return nil, since, err
		}
	}
}

// Tail returns the newest limit matching events without blocking, plus the
// cursor after them.
func (h *StreamHub) Tail(limit int, filter StreamFilter) ([]LogEvent, uint64) {
	if h == nil {
		return nil, 0
	}
	if limit <= 0 || limit > len(h.ring) {
		limit = len(h.ring)
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []LogEvent
	for i := h.size - 1; i >= 0 && len(out) < limit; i-- {
		if evt := h.at(i); filter.Matches(evt) {
			out = append(out, evt)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, h.lastSeq
}

// FirstSequence reports the oldest sequence still buffered, or the last
// assigned sequence when the hub is empty.
func (h *StreamHub) FirstSequence() uint64 {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.size == 0 {
		return h.lastSeq
	}
	return h.at(0).Sequence
}

func (h *StreamHub) at(i int) LogEvent {
	return h.ring[(h.head+i)%len(h.ring)]
}

// collectLocked scans forward from since. When limit cuts the page short the
// cursor is the last event returned; otherwise it is the newest sequence, so
// filtered-out events are not rescanned.
func (h *StreamHub) collectLocked(since uint64, limit int, filter StreamFilter) ([]LogEvent, uint64) {
	var out []LogEvent
	for i := 0; i < h.size; i++ {
		evt := h.at(i)
		if evt.Sequence <= since || !filter.Matches(evt) {
			continue
		}
		if len(out) == limit {
			return out, out[len(out)-1].Sequence
		}
		out = append(out, evt)
	}
	return out, h.lastSeq
}

func contextError(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}

// streamHandler publishes every record to a hub before passing it on. Attrs
// bound through WithAttrs are decoded once into base.
type streamHandler struct {
	next slog.Handler
	hub  *StreamHub
	base LogEvent
}

func newStreamHandler(next slog.Handler, hub *StreamHub) slog.Handler {
	if hub == nil || next == nil {
		return next
	}
	return &streamHandler{next: next, hub: hub}
}

func (h *streamHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *streamHandler) Handle(ctx context.Context, record slog.Record) error {
	evt := h.base.clone()
	evt.Timestamp = record.Time
	evt.Level = strings.ToUpper(record.Level.String())
	evt.Message = strings.TrimSpace(record.Message)
	record.Attrs(func(attr slog.Attr) bool {
		evt.set(attr)
		return true
	})
	h.hub.Publish(evt)
	return h.next.Handle(ctx, record)
}

func (h *streamHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	base := h.base.clone()
	for _, attr := range attrs {
		base.set(attr)
	}
	return &streamHandler{next: h.next.WithAttrs(attrs), hub: h.hub, base: base}
}

func (h *streamHandler) WithGroup(name string) slog.Handler {
	return &streamHandler{next: h.next.WithGroup(name), hub: h.hub, base: h.base}
}

func (e LogEvent) clone() LogEvent {
	e.Fields = maps.Clone(e.Fields)
	return e
}

// set routes well-known keys onto their LogEvent field; everything else lands
// in Fields. Later values win.
func (e *LogEvent) set(attr slog.Attr) {
	key := strings.TrimSpace(attr.Key)
	if key == "" {
		return
	}
	value := plainValue(attr.Value)
	switch key {
	case FieldStage:
		e.Stage = value
	case FieldRunID:
		e.RunID = value
	case FieldEventType:
		e.EventType = value
	case FieldCorrelationID:
		e.CorrelationID = value
	case FieldComponent:
		e.Component = value
	default:
		if e.Fields == nil {
			e.Fields = make(map[string]string)
		}
		e.Fields[key] = value
	}
}
