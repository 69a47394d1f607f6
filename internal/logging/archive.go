package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// EventArchive journals every stream event as one JSON line, so callers can
// replay events the in-memory hub has already evicted. The journal lives for
// one daemon process and is truncated on open.
type EventArchive struct {
	path string

	mu  sync.Mutex
	out *os.File
}

// NewEventArchive opens the journal at path. A blank path disables archiving
// and yields a nil archive, which every method accepts.
func NewEventArchive(path string) (*EventArchive, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if err := ensureParent(path); err != nil {
		return nil, err
	}
	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("truncate event archive %s: %w", path, err)
	}
	return &EventArchive{path: path, out: out}, nil
}

// Append implements LogEventSink. Write errors are dropped so logging never
// fails because the journal did.
func (a *EventArchive) Append(evt LogEvent) {
	if a == nil {
		return
	}
	line, err := json.Marshal(evt)
	if err != nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.out != nil {
		_, _ = a.out.Write(append(line, '\n'))
	}
}

// ReadSince scans the journal for events after since. It stops after limit
// events (0 means no limit) and returns the last sequence it returned, or
// since when nothing matched.
func (a *EventArchive) ReadSince(since uint64, limit int) ([]LogEvent, uint64, error) {
	if a == nil {
		return nil, since, nil
	}
	in, err := os.Open(a.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, since, nil
	}
	if err != nil {
		return nil, since, fmt.Errorf("read event archive: %w", err)
	}
	defer in.Close()

	var events []LogEvent
	cursor := since
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() && (limit <= 0 || len(events) < limit) {
		var evt LogEvent
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			return events, cursor, fmt.Errorf("decode event archive %s: %w", a.path, err)
		}
		if evt.Sequence > since {
			events = append(events, evt)
			cursor = evt.Sequence
		}
	}
	return events, cursor, scanner.Err()
}

// Close releases the journal file.
func (a *EventArchive) Close() error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.out == nil {
		return nil
	}
	err := a.out.Close()
	a.out = nil
	return err
}
