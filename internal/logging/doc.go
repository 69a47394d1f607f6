// Package logging assembles structured slog loggers and formatting helpers used
// across brandsort.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so organizer phases can tag log
// lines with run IDs and phase names. A Recorder captures the lines of a single
// run, and a StreamHub buffers recent events for the daemon's log API.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape and routing as the rest of the system.
package logging
