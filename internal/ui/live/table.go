package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns returns the event table layout.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Event", Width: 28},
		{Title: "Detail", Width: 60},
		{Title: "Age", Width: 8},
	}
}

// columnsForWidth widens the detail column to fill the terminal.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	fixed := columns[0].Width + columns[1].Width + columns[3].Width
	if detail := width - fixed - 8; detail > columns[2].Width {
		columns[2].Width = detail
	}
	return columns
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows, newest last.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			fmtInt(row.Seq),
			stylizeKind(row.Name, row.Kind, noColor),
			row.Detail,
			formatAge(row.At, now),
		})
	}
	return rows
}
