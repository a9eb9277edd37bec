package logtail

import (
	"github.com/google/uuid"

	"github.com/five82/uetail/internal/logline"
)

// EventKind tags an Event.
type EventKind int

const (
	EventLine EventKind = iota
	EventError
	EventTick
)

// Event is sent from a worker to the consumer loop.
type Event struct {
	Kind    EventKind
	Session uuid.UUID
	Line    logline.LogLine
	Message string // advisory text for EventError
}

// Command is sent from the consumer to a worker.
type Command int

const (
	// CommandReset moves the read offset to the current end of file and
	// drops any partial line.
	CommandReset Command = iota
)

// eventBuffer sizes the per-session event channel. The consumer drains in
// bounded batches; a worker only blocks when this many lines are queued.
const eventBuffer = 1 << 16
