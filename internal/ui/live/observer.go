package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"deepsearch/internal/event"
)

// Controller runs the live UI and implements the agent event sink.
type Controller struct {
	updates   chan Update
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	updates := make(chan Update, 256)
	model := NewModel(updates, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		updates: updates,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.updates)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// Event forwards a lifecycle event to the UI.
func (c *Controller) Event(evt event.Event) {
	c.send(Update{Kind: UpdateEvent, Event: evt})
}

// Token forwards a streamed answer fragment to the UI.
func (c *Controller) Token(token string) {
	c.send(Update{Kind: UpdateToken, Token: token})
}

// Done tells the UI the run has finished.
func (c *Controller) Done() {
	c.send(Update{Kind: UpdateDone})
}

// send enqueues an update without blocking the caller. A full buffer
// drops the update; the session log is recorded upstream, so a drop
// only affects the live view.
func (c *Controller) send(update Update) {
	if c == nil {
		return
	}
	select {
	case c.updates <- update:
	default:
	}
}
