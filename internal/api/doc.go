// Package api defines the wire-format types of the brandsort HTTP API and a
// small client for it.
//
// # Key Types
//
// OrganizeRequest/OrganizeResponse: submit a folder for organizing.
//
// RunStatus: progress of the current or most recent run, with the message
// transcript and change counters.
//
// LogEvent/LogStreamResponse: structured log payloads for live tailing.
//
// # Design Notes
//
// JSON tags use snake_case to match the original web UI's polling contract
// (running, progress, messages, error, completed). Timestamps are RFC3339.
package api
