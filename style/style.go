package style

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	BackgroundColor  = lipgloss.Color("234")                                 // Dark warm grey
	TableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Subtle warm grey border
	SelectedStyle    = lipgloss.NewStyle().Background(lipgloss.Color("237")) // Selected cell
	CurrentStyle     = lipgloss.NewStyle().Background(lipgloss.Color("24"))  // Current cell
	CurrentSelStyle  = lipgloss.NewStyle().Background(lipgloss.Color("31"))  // Current and selected
	EditingStyle     = lipgloss.NewStyle().Background(lipgloss.Color("58")).Underline(true)
	ErrorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	MutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	HeaderStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	UnStyle          = lipgloss.NewStyle()
)

// Flags is what a styler needs to know about one cell.
type Flags struct {
	Selected bool
	Current  bool
	Editing  bool
	Invalid  bool
}

// CellStyler returns a StyleFunc painting each body cell from its flags.
// Row -1 is the header, as lipgloss/table numbers it.
func CellStyler(flags func(row, col int) Flags) func(row, col int) lipgloss.Style {
	return func(row, col int) lipgloss.Style {
		if row < 0 {
			return HeaderStyle
		}

		fl := flags(row, col)
		switch {
		case fl.Editing && fl.Invalid:
			return EditingStyle.Foreground(lipgloss.Color("203"))
		case fl.Editing:
			return EditingStyle
		case fl.Current && fl.Selected:
			return CurrentSelStyle
		case fl.Current:
			return CurrentStyle
		case fl.Selected:
			return SelectedStyle
		}
		return UnStyle
	}
}

// StyleTable applies consistent table styling for borders and separators
func StyleTable(tbl *table.Table) {
	tbl.Border(lipgloss.Border{
		Top:         "─", // Horizontal parts of separator
		Middle:      "─", // Between columns in separator
		MiddleLeft:  "─", // Left edge of separator
		MiddleRight: "─", // Right edge of separator
	}).
		BorderTop(false).    // Disable top border
		BorderBottom(false). // Disable bottom border
		BorderLeft(false).   // Disable left border
		BorderRight(false).  // Disable right border
		BorderColumn(false). // Disable column separators
		BorderStyle(TableBorderStyle)
}
