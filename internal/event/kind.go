package event

import "time"

// Kind identifies a lifecycle event emitted by the solver.
type Kind int

const (
	// KindUnknown marks an event name outside the known set.
	KindUnknown Kind = iota
	// KindTaskComplete signals the solver produced a final answer.
	KindTaskComplete
	// KindThinkStart signals the start of a reasoning step.
	KindThinkStart
	// KindThinkEnd signals the end of a reasoning step.
	KindThinkEnd
	// KindToolStart signals the start of a tool invocation.
	KindToolStart
	// KindToolEnd signals the completion of a tool invocation.
	KindToolEnd
	// KindMaxIterations signals the iteration budget was exhausted.
	KindMaxIterations
	// KindMemoryFull signals the solver memory reached capacity.
	KindMemoryFull
	// KindMemoryCompacted signals the solver compacted its memory.
	KindMemoryCompacted
	// KindMemorySummary carries a summary of the solver memory.
	KindMemorySummary
)

var kindNames = map[Kind]string{
	KindTaskComplete:    "task_complete",
	KindThinkStart:      "task_think_start",
	KindThinkEnd:        "task_think_end",
	KindToolStart:       "tool_execution_start",
	KindToolEnd:         "tool_execution_end",
	KindMaxIterations:   "error_max_iterations_reached",
	KindMemoryFull:      "memory_full",
	KindMemoryCompacted: "memory_compacted",
	KindMemorySummary:   "memory_summary",
}

var kindsByName = func() map[string]Kind {
	byName := make(map[string]Kind, len(kindNames))
	for kind, name := range kindNames {
		byName[name] = kind
	}
	return byName
}()

// ParseKind maps an event name to its kind. Unrecognized names map to
// KindUnknown; the raw name is preserved on the event itself.
func ParseKind(name string) Kind {
	if kind, ok := kindsByName[name]; ok {
		return kind
	}
	return KindUnknown
}

// String returns the wire name of the kind, or "unknown".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Known reports whether the kind belongs to the closed set.
func (k Kind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

// Event is a single lifecycle notification with optional structured data.
type Event struct {
	Kind Kind
	// Name is the event name as emitted, kept verbatim so unknown
	// events stay identifiable.
	Name string
	Data Value
	At   time.Time
}

// New builds an event from a raw name and arbitrary payload data.
func New(name string, data any) Event {
	return Event{
		Kind: ParseKind(name),
		Name: name,
		Data: FromAny(data),
		At:   time.Now(),
	}
}
