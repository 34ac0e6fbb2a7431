package agent

import "deepsearch/internal/event"

// defaultMemorySoftLimit bounds observed tool output before the watcher
// reports memory pressure.
const defaultMemorySoftLimit = 256 * 1024

// memoryWatcher tracks the volume of observations flowing out of the
// agent and reports memory pressure as lifecycle events: memory_full
// when the soft limit is crossed, memory_compacted after the tally is
// folded down, and memory_summary at the end of the solve.
type memoryWatcher struct {
	softLimit     int
	emit          func(name string, data any)
	observedBytes int
	retainedBytes int
	steps         int
	toolCalls     int
	compactions   int
}

func newMemoryWatcher(softLimit int, emit func(name string, data any)) *memoryWatcher {
	if softLimit <= 0 {
		softLimit = defaultMemorySoftLimit
	}
	return &memoryWatcher{softLimit: softLimit, emit: emit}
}

// observe records one step's observation size and tool call count.
func (w *memoryWatcher) observe(observationBytes, toolCalls int) {
	w.steps++
	w.toolCalls += toolCalls
	w.observedBytes += observationBytes
	w.retainedBytes += observationBytes
	if w.retainedBytes <= w.softLimit {
		return
	}
	w.emit("memory_full", event.Mapping(
		"retained_bytes", w.retainedBytes,
		"soft_limit", w.softLimit,
	))
	before := w.retainedBytes
	// Fold the tally down to half the soft limit, mirroring a
	// summarize-and-trim pass over the transcript.
	w.retainedBytes = w.softLimit / 2
	w.compactions++
	w.emit("memory_compacted", event.Mapping(
		"before_bytes", before,
		"after_bytes", w.retainedBytes,
	))
}

// summarize reports the final memory tally for the solve.
func (w *memoryWatcher) summarize() {
	w.emit("memory_summary", event.Mapping(
		"steps", w.steps,
		"tool_calls", w.toolCalls,
		"observed_bytes", w.observedBytes,
		"compactions", w.compactions,
	))
}
