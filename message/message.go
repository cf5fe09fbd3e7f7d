// Package message holds the bubbletea messages passed between panels.
package message

import (
	"grille/grid"
)

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}

// SelectionMsg reports the net effect of one selection batch.
type SelectionMsg struct {
	Added   int
	Removed int
	Cells   int
	Items   int
	Range   Range
}

// Range is the inclusive bounding box of the selected cells.
type Range struct {
	MinRow int
	MaxRow int
	MinCol int
	MaxCol int
	Ok     bool
}

// CurrentMsg reports a move of the current cell.
type CurrentMsg struct {
	Current grid.CellInfo
}

// EditMsg reports the edit state after an edit command.
type EditMsg struct {
	State     grid.EditState
	CellError bool
	RowError  bool
}

// RowEndedMsg reports a finished row transaction.
type RowEndedMsg struct {
	Id     string
	Action grid.EditAction
}
