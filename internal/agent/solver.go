// Package agent defines the boundary to the autonomous research agent
// and adapts the smolagents tool-calling agent to it. The reasoning
// loop, memory, and tool dispatch belong to the library; this package
// supplies the model backend, the tool set, and the event plumbing.
package agent

import (
	"context"

	"deepsearch/internal/event"
)

// SolveOptions controls a single solve call.
type SolveOptions struct {
	// Streaming requests per-step delivery of lifecycle events and
	// tokens while the solve runs.
	Streaming bool
	// MaxIterations caps the agent's reasoning steps.
	MaxIterations int
}

// Solver runs a research task to completion and returns the final
// answer text.
type Solver interface {
	Solve(ctx context.Context, task string, opts SolveOptions) (string, error)
}

// Sink receives lifecycle events and token fragments in emission order.
// Calls are made synchronously from within the solve call.
type Sink interface {
	Event(ev event.Event)
	Token(fragment string)
}

// Confirmer answers natural-language yes/no questions from the agent.
type Confirmer interface {
	Confirm(question string) bool
}

// AlwaysYes displays each question through Notify and consents to all of
// them. This is the only confirmation policy the front-ends install.
type AlwaysYes struct {
	Notify func(question string)
}

func (a AlwaysYes) Confirm(question string) bool {
	if a.Notify != nil {
		a.Notify(question)
	}
	return true
}

// NopSink discards everything. Useful for non-streaming solves.
type NopSink struct{}

func (NopSink) Event(event.Event) {}
func (NopSink) Token(string)      {}
