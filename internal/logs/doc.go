// Package logs locates and reads the per-run log files brandsort writes to
// its log directory.
//
// Every CLI organize run and every daemon run gets its own file named after
// the start time and run ID. `brandsort logs --file` uses this package to
// show the newest one when no daemon is reachable.
package logs
