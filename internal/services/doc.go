// Package services defines shared utilities consumed by the organizer phases,
// the daemon, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, phase names, the organized root, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures into HTTP statuses and process exit codes.
//
// Use these helpers when wiring new organizer logic so error handling and
// observability stay uniform across the pipeline.
package services
