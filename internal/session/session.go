// Package session owns the per-search state shared by presenters: the
// streamed token buffer and the ordered lifecycle event log. A session is
// created (or reset) by the owning front-end before each search request.
package session

import (
	"strings"
	"sync"
	"time"

	"deepsearch/internal/event"

	"github.com/google/uuid"
)

// Session accumulates solver output for one search request.
type Session struct {
	mu        sync.Mutex
	id        string
	subject   string
	startedAt time.Time
	tokens    strings.Builder
	events    []event.Event
}

// New creates a session for the given research subject.
func New(subject string) *Session {
	return &Session{
		id:        uuid.NewString(),
		subject:   subject,
		startedAt: time.Now(),
	}
}

// ID returns the session identity.
func (s *Session) ID() string {
	return s.id
}

// Subject returns the research subject the session was created for.
func (s *Session) Subject() string {
	return s.subject
}

// StartedAt returns the session creation time.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Reset clears accumulated state and assigns a fresh identity, keeping
// the subject. Used when a front-end reuses one session slot across
// consecutive requests.
func (s *Session) Reset(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = uuid.NewString()
	s.subject = subject
	s.startedAt = time.Now()
	s.tokens.Reset()
	s.events = nil
}

// AppendToken appends a streamed fragment to the token buffer. Fragments
// concatenate without separators.
func (s *Session) AppendToken(fragment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens.WriteString(fragment)
}

// Transcript returns the full concatenated token stream.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens.String()
}

// Record appends a lifecycle event to the ordered log.
func (s *Session) Record(ev event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// Events returns a copy of the event log in arrival order.
func (s *Session) Events() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out
}

// EventCount returns the number of recorded events.
func (s *Session) EventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}
