package live

import (
	"deepsearch/internal/event"
)

// UpdateKind enumerates the kinds of updates the UI consumes.
type UpdateKind int

const (
	// UpdateEvent carries an agent lifecycle event.
	UpdateEvent UpdateKind = iota
	// UpdateToken carries a streamed answer fragment.
	UpdateToken
	// UpdateDone signals the run has finished.
	UpdateDone
)

// Update is a single message on the UI event stream.
type Update struct {
	Kind  UpdateKind
	Event event.Event
	Token string
}
