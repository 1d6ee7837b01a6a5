// Package app wires configuration, the poll loop, the shared store and the
// front ends together.
//
// Every entry point builds the same runtime: a logtail.File for the
// configured log, an engine.Loop polling it and a state.Store receiving the
// loop's events. Run attaches the terminal UI (and optionally the web
// dashboard) to that runtime, Serve attaches only the dashboard, and
// ClearLog truncates the log once without polling.
//
// Only configuration and listen failures are returned as errors. Poll and
// clear failures are shown to the user by the engine and logged. While the
// TUI owns the terminal, log output goes to the --debug-log file or is
// discarded.
package app
