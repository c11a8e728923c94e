package live

import "reviserr/internal/generate"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventGenerationState reports a generator state change.
	EventGenerationState EventKind = iota
	// EventProgress reports generation progress in [0,1].
	EventProgress
	// EventKeyRequested asks the UI to open the key form.
	EventKeyRequested
)

// Event carries an update from a background generation run.
type Event struct {
	Kind     EventKind
	State    generate.State
	Progress float64
}
