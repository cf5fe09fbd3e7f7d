package grille

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"grille/grid"
	"grille/message"
	"grille/style"
)

// status is what the footer shows, fed by panel messages.
type status struct {
	current   grid.CellInfo
	rows      int
	selection message.SelectionMsg
	edit      message.EditMsg
	saved     string
}

// RenderFooter renders a footer with the current cell, selection and edit state.
func RenderFooter(st status, column, filename string, width int) string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	left := fmt.Sprintf("%d/%d %s", st.current.Row+1, st.rows, column)
	if !st.current.Valid() {
		left = fmt.Sprintf("-/%d", st.rows)
	}

	sel := st.selection
	if sel.Cells > 0 {
		left += fmt.Sprintf("  sel %d cells", sel.Cells)
		if sel.Items > 0 {
			left += fmt.Sprintf(" %d rows", sel.Items)
		}
		if sel.Range.Ok {
			left += fmt.Sprintf(" [%d-%d x %d-%d]", sel.Range.MinRow+1, sel.Range.MaxRow+1, sel.Range.MinCol+1, sel.Range.MaxCol+1)
		}
	}

	right := filename
	if st.saved != "" {
		right = st.saved + "  " + right
	}
	if st.edit.State != grid.Idle {
		right = st.edit.State.String() + "  " + right
	}

	var flags string
	if st.edit.CellError {
		flags += " invalid cell"
	}
	if st.edit.RowError {
		flags += " invalid row"
	}

	// Calculate padding
	padding := width - lipgloss.Width(left) - lipgloss.Width(flags) - lipgloss.Width(right) - 1
	if padding < 0 {
		padding = 0
	}

	return muted.Render(left) + style.ErrorStyle.Render(flags) + strings.Repeat(" ", padding+1) + muted.Render(right)
}
