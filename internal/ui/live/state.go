package live

import (
	"time"

	"deepsearch/internal/event"
)

// EventRow holds UI state for a single lifecycle event.
type EventRow struct {
	Seq    int
	Kind   event.Kind
	Name   string
	Detail string
	At     time.Time
}

// StatusCounts aggregates event counts by bucket.
type StatusCounts struct {
	Thinks      int
	ToolCalls   int
	ToolErrors  int
	Compactions int
	Completed   bool
	HitMaxIter  bool
}

// State captures the live UI state for a search run.
type State struct {
	Subject    string
	Model      string
	SessionID  string
	StartedAt  time.Time
	FinishedAt time.Time
	LastEvent  string
	Rows       []EventRow
	Counts     StatusCounts
	Transcript string
}
