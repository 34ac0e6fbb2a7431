package live

import (
	"time"

	"deepsearch/internal/event"
)

// transcriptLimit caps the retained token tail in bytes.
const transcriptLimit = 8 << 10

// Reduce applies a lifecycle event to the UI state.
func Reduce(state State, evt event.Event) State {
	state = appendRow(state, evt)
	state = applyCounts(state, evt)
	if message := formatLastEvent(evt); message != "" {
		state.LastEvent = message
	}
	return state
}

// AppendToken folds a streamed fragment into the transcript tail.
func AppendToken(state State, token string) State {
	state.Transcript += token
	if len(state.Transcript) > transcriptLimit {
		state.Transcript = state.Transcript[len(state.Transcript)-transcriptLimit:]
	}
	return state
}

// appendRow records the event in arrival order.
func appendRow(state State, evt event.Event) State {
	at := evt.At
	if at.IsZero() {
		at = time.Now()
	}
	state.Rows = append(state.Rows, EventRow{
		Seq:    len(state.Rows) + 1,
		Kind:   evt.Kind,
		Name:   evt.Name,
		Detail: formatEventDetail(evt),
		At:     at,
	})
	return state
}

// applyCounts updates the summary buckets for the event.
func applyCounts(state State, evt event.Event) State {
	switch evt.Kind {
	case event.KindThinkStart:
		state.Counts.Thinks++
	case event.KindToolStart:
		state.Counts.ToolCalls++
	case event.KindToolEnd:
		if _, ok := evt.Data.Field("error"); ok {
			state.Counts.ToolErrors++
		}
	case event.KindMemoryCompacted:
		state.Counts.Compactions++
	case event.KindTaskComplete:
		state.Counts.Completed = true
		state.FinishedAt = evt.At
	case event.KindMaxIterations:
		state.Counts.HitMaxIter = true
		state.FinishedAt = evt.At
	}
	return state
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(evt event.Event) string {
	switch evt.Kind {
	case event.KindTaskComplete:
		return "task complete"
	case event.KindMaxIterations:
		return "stopped: max iterations reached"
	case event.KindToolStart:
		if name, ok := leafField(evt.Data, "tool"); ok {
			return "tool " + name + " started"
		}
		return "tool started"
	case event.KindToolEnd:
		name, _ := leafField(evt.Data, "tool")
		if errText, ok := leafField(evt.Data, "error"); ok {
			return "tool " + name + " error: " + truncateDetail(errText, 60)
		}
		if ms, ok := leafField(evt.Data, "duration_ms"); ok {
			return "tool " + name + " finished (" + ms + "ms)"
		}
		return "tool " + name + " finished"
	case event.KindMemoryFull:
		return "memory pressure: compacting observations"
	case event.KindMemoryCompacted:
		return "observations compacted"
	}
	return ""
}
