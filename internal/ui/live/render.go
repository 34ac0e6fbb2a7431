package live

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// transcriptLines is how many trailing answer lines the UI shows.
const transcriptLines = 6

// renderHeader renders the session header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		end := now
		if !state.FinishedAt.IsZero() {
			end = state.FinishedAt
		}
		elapsed = end.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Session " + state.SessionID
	if state.Subject != "" {
		line += " | " + state.Subject
	}
	if state.Model != "" {
		line += " | " + state.Model
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the event counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Thinks: " + fmtInt(counts.Thinks) +
		" Tools: " + fmtInt(counts.ToolCalls) +
		" ToolErrs: " + fmtInt(counts.ToolErrors) +
		" Compactions: " + fmtInt(counts.Compactions)
	switch {
	case counts.Completed:
		line += " | done"
	case counts.HitMaxIter:
		line += " | max iterations"
	default:
		line += " | running"
	}
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderTranscript renders the trailing lines of the streamed answer.
func renderTranscript(state State, noColor bool) string {
	text := strings.TrimRight(state.Transcript, "\n")
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > transcriptLines {
		lines = lines[len(lines)-transcriptLines:]
	}
	return stylize(strings.Join(lines, "\n"), noColor, lipgloss.Color("252"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
