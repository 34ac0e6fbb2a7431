package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model renders a live search run using Bubble Tea.
type Model struct {
	state        State
	table        table.Model
	updates      <-chan Update
	tickInterval time.Duration
	now          time.Time
	noColor      bool
}

// Options configures the live UI model.
type Options struct {
	Subject      string
	Model        string
	SessionID    string
	NoColor      bool
	TickInterval time.Duration
}

// NewModel constructs a live UI model for an update stream.
func NewModel(updates <-chan Update, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = 200 * time.Millisecond
	}
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		state: State{
			Subject:   opts.Subject,
			Model:     opts.Model,
			SessionID: opts.SessionID,
			StartedAt: time.Now(),
		},
		table:        t,
		updates:      updates,
		tickInterval: tickInterval,
		now:          time.Now(),
		noColor:      opts.NoColor,
	}
}

// Init starts ticking and waits for the first update.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tick(m.tickInterval))
}

// Update consumes UI updates and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-10, 1))
		m.table.SetColumns(columnsForWidth(typed.Width))
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "q" || typed.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case UpdateMsg:
		m = applyUpdate(m, typed.Update)
		return m, waitForUpdate(m.updates)
	case tickMsg:
		m.now = time.Time(typed)
		return m, tick(m.tickInterval)
	}
	return m, nil
}

// View renders the live UI.
func (m Model) View() string {
	header := renderHeader(m.state, m.now, m.noColor)
	summary := renderSummary(m.state, m.noColor)
	tableView := m.table.View()
	transcript := renderTranscript(m.state, m.noColor)
	footer := renderFooter(m.state, m.noColor)
	return lipgloss.JoinVertical(lipgloss.Left, header, summary, tableView, transcript, footer)
}

// UpdateMsg wraps a stream update for Bubble Tea.
type UpdateMsg struct {
	Update Update
}

// tickMsg carries a clock tick for updates.
type tickMsg time.Time

// waitForUpdate blocks until a stream update is available.
func waitForUpdate(updates <-chan Update) tea.Cmd {
	return func() tea.Msg {
		if updates == nil {
			return nil
		}
		update, ok := <-updates
		if !ok {
			return tea.Quit()
		}
		return UpdateMsg{Update: update}
	}
}

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// applyUpdate mutates model state based on a stream update.
func applyUpdate(model Model, update Update) Model {
	switch update.Kind {
	case UpdateEvent:
		model.state = Reduce(model.state, update.Event)
		model.table.SetRows(rowsForState(model.state, model.now, model.noColor))
		model.table.GotoBottom()
	case UpdateToken:
		model.state = AppendToken(model.state, update.Token)
	case UpdateDone:
		if model.state.FinishedAt.IsZero() {
			model.state.FinishedAt = time.Now()
		}
	}
	return model
}
