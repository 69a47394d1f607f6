// Package daemon coordinates the long-running brandsort process.
//
// It wires configuration, the log stream hub, the organize Runner, and the
// HTTP API into a single lifecycle with flock-based locking to prevent
// multiple instances. At most one organize run executes at a time: the Runner
// guards itself in-process and also holds the run lock file shared with the
// CLI's organize command.
//
// Keep orchestration logic here: the pipeline itself lives in
// internal/organizer while the daemon focuses on startup, shutdown, and
// run bookkeeping.
package daemon
