// Package log provides the global zerolog logger for wakegrid.
//
// Call Init once at startup, then obtain component-scoped child loggers
// via WithComponent or WithNode. Console output (the default) is meant
// for interactive runs; JSON output is for running under a supervisor.
package log
