// Package preflight provides readiness checks for the folder brandsort is
// about to organize and for the directories it writes its own logs to.
//
// These checks run in two contexts:
//   - The organize command and the daemon call RunAll before starting a run.
//     Only a missing root is fatal; the rest are reported as warnings.
//   - The CLI "brandsort status" command shows the same results for the
//     configured default root.
package preflight
