package api

import (
	"maps"

	"brandsort/internal/logging"
	"brandsort/internal/organizer"
)

// FromLogEvents converts hub events into their wire form.
func FromLogEvents(events []logging.LogEvent) []LogEvent {
	out := make([]LogEvent, 0, len(events))
	for _, evt := range events {
		out = append(out, LogEvent{
			Sequence:      evt.Sequence,
			Timestamp:     evt.Timestamp,
			Level:         evt.Level,
			Message:       evt.Message,
			Component:     evt.Component,
			Stage:         evt.Stage,
			RunID:         evt.RunID,
			EventType:     evt.EventType,
			CorrelationID: evt.CorrelationID,
			Fields:        maps.Clone(evt.Fields),
		})
	}
	return out
}

// FromStats converts organizer counters into their wire form.
func FromStats(s organizer.Stats) RunStats {
	return RunStats{
		FilesMoved:       s.FilesMoved,
		FoldersMoved:     s.FoldersMoved,
		FoldersCreated:   s.FoldersCreated,
		FoldersFlattened: s.FoldersFlattened,
		FoldersMerged:    s.FoldersMerged,
		FoldersRemoved:   s.FoldersRemoved,
		Duplicates:       s.Duplicates,
		Replaced:         s.Replaced,
		Conflicts:        s.Conflicts,
		Skipped:          s.Skipped,
		Errors:           s.Errors,
	}
}
