package logging

import (
	"context"
	"path/filepath"
	"testing"
)

func TestEventArchiveReplaysEvictedEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "brandsort.events")
	archive, err := NewEventArchive(path)
	if err != nil {
		t.Fatalf("NewEventArchive: %v", err)
	}
	defer archive.Close()

	hub := NewStreamHub(2)
	hub.AddSink(archive)
	for _, msg := range []string{"one", "two", "three", "four"} {
		hub.Publish(LogEvent{Message: msg})
	}

	if first := hub.FirstSequence(); first != 3 {
		t.Fatalf("expected hub to keep from seq 3, got %d", first)
	}
	events, next, err := archive.ReadSince(0, 2)
	if err != nil {
		t.Fatalf("ReadSince: %v", err)
	}
	if len(events) != 2 || events[0].Message != "one" || next != 2 {
		t.Fatalf("unexpected replay: %+v next=%d", events, next)
	}

	rest, _, err := hub.Fetch(context.Background(), next, 10, false, StreamFilter{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(rest) != 2 || rest[0].Message != "three" {
		t.Fatalf("unexpected hub events: %+v", rest)
	}
}

func TestNilEventArchive(t *testing.T) {
	archive, err := NewEventArchive("  ")
	if err != nil || archive != nil {
		t.Fatalf("expected nil archive for blank path, got %v %v", archive, err)
	}
	archive.Append(LogEvent{Message: "ignored"})
	if events, next, err := archive.ReadSince(5, 0); err != nil || len(events) != 0 || next != 5 {
		t.Fatalf("nil archive should be empty: %v %d %v", events, next, err)
	}
	if err := archive.Close(); err != nil {
		t.Fatal(err)
	}
}
