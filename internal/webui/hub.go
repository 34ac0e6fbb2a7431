package webui

import (
	"sync"

	"deepsearch/internal/event"
	"deepsearch/internal/history"
	"deepsearch/internal/session"
)

// frameKind distinguishes stream frame types.
type frameKind int

const (
	frameToken frameKind = iota
	frameEvent
)

// frame is one replayable item on a run's stream.
type frame struct {
	kind frameKind
	name string
	data string
}

// hub fans a run's tokens and events out to any number of stream
// subscribers. Frames are kept for replay so a browser that connects
// mid-run still sees the whole transcript.
type hub struct {
	mu      sync.Mutex
	session *session.Session
	frames  []frame
	waiters []chan struct{}
	closed  bool
}

func newHub(sess *session.Session) *hub {
	return &hub{session: sess}
}

// Event implements the agent sink: record and broadcast.
func (h *hub) Event(evt event.Event) {
	payload, err := history.PayloadJSON(evt.Data)
	if err != nil {
		payload = "null"
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session != nil {
		h.session.Record(evt)
	}
	h.append(frame{kind: frameEvent, name: evt.Name, data: payload})
}

// Token implements the agent sink: record and broadcast.
func (h *hub) Token(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session != nil {
		h.session.AppendToken(token)
	}
	h.append(frame{kind: frameToken, data: token})
}

// Close marks the stream finished and wakes all subscribers.
func (h *hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.wake()
}

// snapshot returns frames from the given offset and whether the stream
// has ended.
func (h *hub) snapshot(from int) ([]frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if from > len(h.frames) {
		from = len(h.frames)
	}
	frames := make([]frame, len(h.frames)-from)
	copy(frames, h.frames[from:])
	return frames, h.closed
}

// wait returns a channel that is closed once new frames arrive past the
// offset or the stream ends.
func (h *hub) wait(from int) <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan struct{})
	if from < len(h.frames) || h.closed {
		close(ch)
		return ch
	}
	h.waiters = append(h.waiters, ch)
	return ch
}

// append stores a frame and wakes subscribers. Caller holds the lock.
func (h *hub) append(f frame) {
	if h.closed {
		return
	}
	h.frames = append(h.frames, f)
	h.wake()
}

// wake signals all pending waiters. Caller holds the lock.
func (h *hub) wake() {
	for _, ch := range h.waiters {
		close(ch)
	}
	h.waiters = nil
}
