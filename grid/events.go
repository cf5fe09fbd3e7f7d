package grid

import nt "grille/entity"

// SelectionChange is the net effect of one outermost batch.
type SelectionChange struct {
	AddedCells   []CellInfo
	RemovedCells []CellInfo
	AddedItems   []nt.Item
	RemovedItems []nt.Item
}

// Empty reports whether nothing changed.
func (sc SelectionChange) Empty() bool {
	return len(sc.AddedCells) == 0 && len(sc.RemovedCells) == 0 &&
		len(sc.AddedItems) == 0 && len(sc.RemovedItems) == 0
}

// EditUnit is the granularity of an edit command.
type EditUnit int

const (
	CellEdit EditUnit = iota
	RowEdit
)

func (unit EditUnit) String() string {
	if unit == RowEdit {
		return "row"
	}
	return "cell"
}

// EditAction says how an edit is ending.
type EditAction int

const (
	Commit EditAction = iota
	Cancel
)

func (act EditAction) String() string {
	if act == Cancel {
		return "cancel"
	}
	return "commit"
}

// EditEvent describes an edit starting or ending.
type EditEvent struct {
	Item   nt.Item
	Row    int
	Column int
	Unit   EditUnit
	Action EditAction
	Value  nt.Value
}

// EditHandler inspects an edit transition and returns true to cancel it.
type EditHandler func(ev EditEvent) (cancel bool)

type events struct {
	selectionChanged []func(SelectionChange)
	currentChanged   []func(old, cur CellInfo)
	beginningEdit    []EditHandler
	cellEditEnding   []EditHandler
	rowEditEnding    []EditHandler
	rowEditEnded     []func(EditEvent)
}

// OnSelectionChanged registers for the aggregated change raised when a batch ends.
func (g *Grid) OnSelectionChanged(fn func(SelectionChange)) {
	g.events.selectionChanged = append(g.events.selectionChanged, fn)
}

// OnCurrentCellChanged registers for current cell moves.
func (g *Grid) OnCurrentCellChanged(fn func(old, cur CellInfo)) {
	g.events.currentChanged = append(g.events.currentChanged, fn)
}

// OnBeginningEdit registers a handler that may veto starting an edit.
func (g *Grid) OnBeginningEdit(fn EditHandler) {
	g.events.beginningEdit = append(g.events.beginningEdit, fn)
}

// OnCellEditEnding registers a handler that may veto a cell commit or cancel.
func (g *Grid) OnCellEditEnding(fn EditHandler) {
	g.events.cellEditEnding = append(g.events.cellEditEnding, fn)
}

// OnRowEditEnding registers a handler that may veto a row commit or cancel.
func (g *Grid) OnRowEditEnding(fn EditHandler) {
	g.events.rowEditEnding = append(g.events.rowEditEnding, fn)
}

// OnRowEditEnded registers for completed row transactions.
func (g *Grid) OnRowEditEnded(fn func(EditEvent)) {
	g.events.rowEditEnded = append(g.events.rowEditEnded, fn)
}

// vetoed asks every handler; all are consulted, any one may cancel.
func vetoed(handlers []EditHandler, ev EditEvent) (cancel bool) {

	for _, handler := range handlers {
		if handler(ev) {
			cancel = true
		}
	}
	return
}

func (g *Grid) raiseSelectionChanged(change SelectionChange) {
	for _, fn := range g.events.selectionChanged {
		fn(change)
	}
}

func (g *Grid) raiseCurrentChanged(old, cur CellInfo) {
	for _, fn := range g.events.currentChanged {
		fn(old, cur)
	}
}

func (g *Grid) raiseRowEditEnded(ev EditEvent) {
	for _, fn := range g.events.rowEditEnded {
		fn(ev)
	}
}
