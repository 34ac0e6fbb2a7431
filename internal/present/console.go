package present

import (
	"fmt"
	"io"

	"deepsearch/internal/event"
	"deepsearch/internal/session"
)

const eventPrefix = "[event]"

// Console records solver output in a session and prints it as it
// arrives: one formatted block per event, token fragments verbatim.
// Unknown event kinds flow through the same pipeline as known ones.
type Console struct {
	Out     io.Writer
	NoColor bool
	Session *session.Session
}

// Event records and prints a single lifecycle event.
func (c *Console) Event(ev event.Event) {
	if c.Session != nil {
		c.Session.Record(ev)
	}
	if c.Out == nil {
		return
	}
	p := paletteFor(c.Out, c.NoColor)
	fmt.Fprintf(c.Out, "%s %s\n", p.prefix(eventPrefix), p.kind(ev.Kind, ev.Name))
	for _, line := range TreeLines(ev.Data) {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

// Token records and prints one streamed fragment. Fragments appear
// exactly as emitted, with no added separators.
func (c *Console) Token(fragment string) {
	if c.Session != nil {
		c.Session.AppendToken(fragment)
	}
	if c.Out == nil {
		return
	}
	io.WriteString(c.Out, fragment)
}

// Question prints a confirmation question and the always-yes answer.
func (c *Console) Question(question string) {
	if c.Out == nil {
		return
	}
	p := paletteFor(c.Out, c.NoColor)
	fmt.Fprintf(c.Out, "%s %s\n", p.prefix("[question]"), question)
	fmt.Fprintf(c.Out, "%s yes\n", p.prefix("[answer]"))
}
