// Package app is the composition root for uetail.
//
// # Overview
//
// Run wires configuration, preferences, logging, target discovery, the
// engine and the UI together, then blocks until the user quits or the
// context is cancelled.
//
//  1. Open the log file (the TUI owns the terminal, so slog writes to disk)
//  2. Load the projects file and user preferences
//  3. Build the target list once, then start the discovery poller
//  4. Create the engine with the tail options from the command line
//  5. Run the Bubble Tea program
//  6. Stop any running tail session on the way out
//
// # Discovery Poller
//
// StartPoller refreshes the shared state.Store every few seconds. Each
// refresh expands the configured projects and globs, lists running editor
// processes, and merges the two. The UI pauses the poller while a log is
// shown and resumes it, with an immediate refresh, on return to the target
// list.
//
// A failed refresh keeps the last good list and records the error. Repeated
// failures back off exponentially up to 30 seconds.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Projects file unreadable or malformed
//   - Terminal setup failure
//
// Recoverable errors (logged, shown in the UI):
//   - Process listing failures
//   - Glob expansion failures
//   - Preferences file unreadable
//   - Tail I/O errors
package app
