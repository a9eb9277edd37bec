// Package logtail follows a growing editor log file and turns appended bytes
// into parsed lines.
//
// # Overview
//
// The package has three layers:
//
//  1. Decode/Decoder: a pure transform from (carry, chunk) to complete lines
//     plus a new carry. Lines are split on '\n', a trailing '\r' is removed,
//     blank lines are dropped and invalid UTF-8 is replaced.
//  2. Worker: owns one path and a byte offset. Each poll it stats the file,
//     detects replacement (creation time changed, modification time moved
//     backwards) and truncation (size below offset), then reads everything
//     past the offset and feeds it to its Decoder.
//  3. Session: runs a Worker on its own goroutine with a private event
//     channel and control channel. Stop cancels and waits, so at most one
//     worker is alive per session and no file handle outlives it.
//
// # Data Flow
//
//	Session.Start()
//	  ├─> startPosition()   end of file, or Tail() backfill
//	  ├─> notifyWrites()    fsnotify wakeups (optional)
//	  └─> Worker.Run()
//	        ├─> Apply(CommandReset)   at most one command per interval
//	        ├─> Poll()                stat, rotation checks, read, Decode, Parse
//	        └─> Event{Line|Error|Tick} ──> Session.Events()
//
// # Error Handling
//
// A missing file is not an error: the worker waits for it to appear. Other
// stat/open/seek/read failures are reported once as an EventError advisory
// and retried every interval. The worker never exits on its own; only
// cancellation or a closed control channel stops it.
//
// Truncation always restarts at offset 0, which can replay a prefix that was
// already shown when a file is truncated to a non-zero size.
package logtail
