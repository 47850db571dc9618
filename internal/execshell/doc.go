// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution with optional standard output streaming, and
// notifies CommandEventObserver implementations about command lifecycles.
package execshell
