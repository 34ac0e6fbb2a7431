package live

import (
	"strconv"
	"strings"
	"time"

	"deepsearch/internal/event"

	"github.com/charmbracelet/lipgloss"
)

// leafField returns the string value of a mapping field when it is a leaf.
func leafField(v event.Value, key string) (string, bool) {
	field, ok := v.Field(key)
	if !ok || field.Kind != event.ValueLeaf {
		return "", false
	}
	return field.Leaf, true
}

// formatEventDetail condenses the payload fields worth showing in a row.
func formatEventDetail(evt event.Event) string {
	var parts []string
	for _, key := range []string{"step", "tool", "duration_ms", "max_iterations", "tool_calls", "retained_bytes", "steps"} {
		if value, ok := leafField(evt.Data, key); ok {
			parts = append(parts, key+"="+value)
		}
	}
	if errText, ok := leafField(evt.Data, "error"); ok {
		parts = append(parts, "error="+truncateDetail(errText, 40))
	}
	if question, ok := leafField(evt.Data, "question"); ok {
		parts = append(parts, truncateDetail(question, 60))
		if answer, ok := leafField(evt.Data, "answer"); ok {
			parts = append(parts, "-> "+answer)
		}
	}
	if preview, ok := leafField(evt.Data, "answer_preview"); ok {
		parts = append(parts, truncateDetail(preview, 60))
	} else if preview, ok := leafField(evt.Data, "output_preview"); ok {
		parts = append(parts, truncateDetail(preview, 60))
	}
	return strings.Join(parts, " ")
}

// truncateDetail collapses whitespace and trims text for display.
func truncateDetail(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if len(normalized) <= limit {
		return normalized
	}
	if limit <= 3 {
		return normalized[:limit]
	}
	return normalized[:limit-3] + "..."
}

// formatAge renders how long ago a row's event fired.
func formatAge(at, now time.Time) string {
	if at.IsZero() || now.Before(at) {
		return ""
	}
	return now.Sub(at).Round(100 * time.Millisecond).String()
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// stylizeKind applies event kind coloring when enabled.
func stylizeKind(text string, kind event.Kind, noColor bool) string {
	if noColor {
		return text
	}
	return kindStyle(kind).Render(text)
}

// kindStyle selects a style for a given event kind.
func kindStyle(kind event.Kind) lipgloss.Style {
	color := lipgloss.Color("244")
	switch kind {
	case event.KindTaskComplete:
		color = lipgloss.Color("42")
	case event.KindMaxIterations:
		color = lipgloss.Color("196")
	case event.KindToolStart, event.KindToolEnd:
		color = lipgloss.Color("39")
	case event.KindThinkStart, event.KindThinkEnd:
		color = lipgloss.Color("33")
	case event.KindMemoryFull, event.KindMemoryCompacted, event.KindMemorySummary:
		color = lipgloss.Color("220")
	}
	return lipgloss.NewStyle().Foreground(color)
}
