// Package daemonrun wires the brandsort daemon process: log files and the
// event archive, retention, the PID file, and signal-driven shutdown.
package daemonrun
