package grid

import (
	"github.com/pkg/errors"

	nt "grille/entity"
	"grille/locate"
	"grille/region"
)

// EditState is the most specific edit state of the grid.
type EditState int

const (
	Idle EditState = iota
	CellEditing
	RowEditing
	RowAdding
)

func (state EditState) String() string {
	switch state {
	case CellEditing:
		return "cell editing"
	case RowEditing:
		return "row editing"
	case RowAdding:
		return "row adding"
	}
	return "idle"
}

type rowState int

const (
	rowIdle rowState = iota
	rowEditing
	rowAdding
)

type editState struct {
	row     rowState
	rowInfo *locate.Info

	cellEditing bool
	cellCol     int
	value       nt.Value
	dirty       bool

	cellError bool
	rowError  bool

	busy    bool   // an ending notification or collaborator call is in flight
	carried *carry // selection moved off the placeholder by an add
}

// carry is what the placeholder row had selected when an add began.
type carry struct {
	spans     []region.Span
	row       bool
	anchor    bool
	anchorCol int
}

// EditState returns CellEditing while a cell is open, else the row state.
func (g *Grid) EditState() EditState {

	switch {
	case g.edit.cellEditing:
		return CellEditing
	case g.edit.row == rowAdding:
		return RowAdding
	case g.edit.row == rowEditing:
		return RowEditing
	}
	return Idle
}

// IsEditing reports whether a cell or row edit is open.
func (g *Grid) IsEditing() bool {
	return g.edit.cellEditing || g.edit.row != rowIdle
}

// IsAddingNewItem reports whether the open row transaction is an add.
func (g *Grid) IsAddingNewItem() bool {
	return g.edit.row == rowAdding
}

// HasCellValidationError reports the sticky cell validation flag.
func (g *Grid) HasCellValidationError() bool {
	return g.edit.cellError
}

// HasRowValidationError reports the sticky row validation flag.
func (g *Grid) HasRowValidationError() bool {
	return g.edit.rowError
}

// EditingCell returns the cell under edit; Valid is false when none is.
func (g *Grid) EditingCell() CellInfo {

	if !g.edit.cellEditing {
		return CellInfo{Row: -1, Column: -1}
	}
	return g.infoCell(g.edit.rowInfo, g.edit.cellCol)
}

// EditingItem returns the item of the open row transaction, or nil.
func (g *Grid) EditingItem() nt.Item {

	if g.edit.row == rowIdle {
		return nil
	}
	return g.edit.rowInfo.Item()
}

// EditValue returns the pending value of the cell under edit.
func (g *Grid) EditValue() nt.Value {
	return g.edit.value
}

// SetEditValue replaces the pending value of the cell under edit.
func (g *Grid) SetEditValue(value nt.Value) (err error) {

	if !g.edit.cellEditing {
		return errors.Wrap(ErrInvalidOperation, "no cell is being edited")
	}
	g.edit.value = value
	g.edit.dirty = true
	return
}

// CanBeginEdit reports whether BeginEdit(cell) would execute.
func (g *Grid) CanBeginEdit(cell Cell) bool {

	col := cell.Column
	switch {
	case g.editable == nil || g.readOnly || g.edit.busy:
		return false
	case cell.Item == nil || col < 0 || col >= len(g.columns):
		return false
	case g.columns[col].ReadOnly:
		return false
	case g.edit.cellEditing && g.edit.rowInfo.Is(cell.Item) && g.edit.cellCol == col:
		return false
	case g.edit.cellError:
		return false
	case g.edit.rowError && !g.edit.rowInfo.Is(cell.Item):
		return false
	case nt.IsPlaceholder(cell.Item) && !g.editable.CanAddNew():
		return false
	}
	return g.loc.Lookup(cell.Item) >= 0
}

// BeginEdit makes cell current and opens it for editing, opening a row transaction
// first when none is open. Beginning on the placeholder adds a new row.
// It returns false, changing nothing further, when the command cannot execute.
func (g *Grid) BeginEdit(cell Cell) bool {

	if !g.CanBeginEdit(cell) {
		g.logger.Info(g.ctx, "begin edit rejected", "col", cell.Column, "state", g.EditState().String())
		return false
	}

	ok, err := g.SetCurrentCell(cell)
	if err != nil || !ok {
		return false
	}

	ev := EditEvent{Item: cell.Item, Row: g.current.Index(), Column: cell.Column, Unit: CellEdit}
	if g.veto(g.events.beginningEdit, ev) {
		return false
	}

	if g.edit.row == rowIdle {
		if nt.IsPlaceholder(cell.Item) {
			if !g.beginAdd(cell.Column) {
				return false
			}
		} else {
			err = g.editable.EditItem(cell.Item)
			if err != nil {
				g.logger.Error(g.ctx, "failed to begin row edit", err)
				return false
			}
			g.edit.row = rowEditing
			g.edit.rowInfo = g.loc.Resolve(cell.Item)
		}
	}

	item := g.edit.rowInfo.Item()
	g.edit.cellEditing = true
	g.edit.cellCol = cell.Column
	g.edit.value = g.editable.Value(item, cell.Column)
	g.edit.dirty = false

	g.paintEditing()
	return true
}

// CanCommitEdit reports whether CommitEdit(unit) would execute.
func (g *Grid) CanCommitEdit(unit EditUnit) bool {

	if g.editable == nil || g.edit.busy {
		return false
	}
	return g.edit.cellEditing || (unit == RowEdit && g.edit.row != rowIdle)
}

// CanCancelEdit reports whether CancelEdit(unit) would execute.
func (g *Grid) CanCancelEdit(unit EditUnit) bool {
	return g.CanCommitEdit(unit)
}

// CommitEdit commits the cell under edit and, for the row unit, the row transaction.
// Validation failure leaves the edit open with the matching sticky flag set.
func (g *Grid) CommitEdit(unit EditUnit) bool {

	if !g.CanCommitEdit(unit) {
		return false
	}
	if unit == RowEdit && g.edit.row != rowIdle {
		return g.commitRow()
	}
	return g.commitCell()
}

// CancelEdit discards the cell under edit and, for the row unit, the row transaction.
func (g *Grid) CancelEdit(unit EditUnit) bool {

	if !g.CanCancelEdit(unit) {
		return false
	}
	if unit == RowEdit && g.edit.row != rowIdle {
		return g.cancelRow()
	}
	return g.cancelCell()
}

// unexported

func (g *Grid) beginAdd(col int) bool {

	phRow := g.current.Index()
	staged := &carry{
		spans:     g.cells.Intersects(phRow),
		row:       g.rows.has(nt.Placeholder),
		anchor:    g.anchor.Is(nt.Placeholder),
		anchorCol: g.anchorCol,
	}

	item, err := g.editable.AddNew()
	if err != nil {
		g.logger.Error(g.ctx, "failed to add new item", err)
		return false
	}

	g.edit.row = rowAdding
	g.edit.rowInfo = g.loc.Resolve(item)
	g.edit.carried = staged

	g.carrySelection(nt.Placeholder, item, staged)
	g.moveCurrent(item, g.edit.rowInfo.Index(), col)
	return true
}

// carrySelection moves the selection staged in c from one row's item to another's.
func (g *Grid) carrySelection(from, to nt.Item, c *carry) {

	if c == nil {
		return
	}

	sc := g.beginBatch()
	defer sc.End()

	fromRow := g.loc.Lookup(from)
	toRow := g.loc.Lookup(to)

	if c.row {
		g.unselectRow(from)
	}
	for _, span := range c.spans {
		if fromRow >= 0 {
			g.cells.RemoveRegion(fromRow, span.Start, 1, span.Count)
		}
		if toRow >= 0 {
			g.cells.AddRegion(toRow, span.Start, 1, span.Count)
		}
	}
	if c.row {
		g.selectRow(to)
	}
	if c.anchor {
		g.setAnchor(to, c.anchorCol)
	}
}

func (g *Grid) commitCell() bool {

	if !g.edit.cellEditing {
		return true
	}

	_, ok := g.pushCell()
	if !ok {
		return false
	}

	g.endCell()
	return true
}

// pushCell raises cell-edit-ending and pushes the edited value into the collection,
// leaving the cell open. undo puts back the previous value and validation flag.
func (g *Grid) pushCell() (undo func(), ok bool) {

	undo = func() {}
	if !g.edit.cellEditing {
		return undo, true
	}
	if g.edit.busy {
		return nil, false
	}

	ev := g.editEvent(CellEdit, Commit)
	if g.veto(g.events.cellEditEnding, ev) {
		return nil, false
	}

	hadError := g.edit.cellError
	if !g.edit.dirty {
		g.edit.cellError = false
		return func() { g.edit.cellError = hadError }, true
	}

	prev := g.editable.Value(ev.Item, ev.Column)
	err := g.guarded(func() error {
		return g.editable.SetValue(ev.Item, ev.Column, ev.Value)
	})
	g.edit.cellError = err != nil
	if err != nil {
		g.logger.Info(g.ctx, "cell validation failed", "row", ev.Row, "col", ev.Column, "error", err.Error())
		return nil, false
	}

	undo = func() {
		err := g.guarded(func() error {
			return g.editable.SetValue(ev.Item, ev.Column, prev)
		})
		if err != nil {
			g.logger.Error(g.ctx, "failed to restore cell value", err, "row", ev.Row, "col", ev.Column)
		}
		g.edit.cellError = hadError
	}
	return undo, true
}

// commitRow commits the open cell and then the row. A vetoed row ending leaves the
// cell open with its value unpushed.
func (g *Grid) commitRow() bool {

	if g.edit.row == rowIdle {
		return true
	}
	if g.edit.busy {
		return false
	}

	undo, ok := g.pushCell()
	if !ok {
		return false
	}

	ev := g.rowEvent(Commit)
	if g.veto(g.events.rowEditEnding, ev) {
		undo()
		return false
	}
	if g.edit.cellEditing {
		g.endCell()
	}

	adding := g.edit.row == rowAdding
	err := g.guarded(func() error {
		if adding {
			return g.editable.CommitNew()
		}
		return g.editable.CommitEdit()
	})
	g.edit.rowError = err != nil
	if err != nil {
		g.logger.Info(g.ctx, "row validation failed", "row", ev.Row, "error", err.Error())
		return false
	}

	g.endRow()
	g.raiseRowEditEnded(ev)
	return true
}

func (g *Grid) cancelCell() bool {

	if !g.edit.cellEditing {
		return true
	}
	if g.edit.busy {
		return false
	}

	if g.veto(g.events.cellEditEnding, g.editEvent(CellEdit, Cancel)) {
		return false
	}

	g.edit.cellError = false
	g.endCell()
	return true
}

func (g *Grid) cancelRow() bool {

	if g.edit.row == rowIdle {
		return true
	}
	if g.edit.busy {
		return false
	}
	if g.edit.cellEditing && g.veto(g.events.cellEditEnding, g.editEvent(CellEdit, Cancel)) {
		return false
	}

	ev := g.rowEvent(Cancel)
	if g.veto(g.events.rowEditEnding, ev) {
		return false
	}
	if g.edit.cellEditing {
		g.edit.cellError = false
		g.endCell()
	}

	adding := g.edit.row == rowAdding
	col := max(g.currentCol, 0)
	err := g.guarded(func() error {
		switch {
		case adding:
			return g.editable.CancelNew()
		case g.editable.CanCancelEdit():
			return g.editable.CancelEdit()
		}
		return g.editable.CommitEdit()
	})
	if err != nil {
		g.logger.Error(g.ctx, "row cancel failed", err, "row", ev.Row)
	}

	staged := g.edit.carried
	g.edit.rowError = false
	g.endRow()

	if adding {
		g.restorePlaceholder(ev.Item, staged, col)
	}
	g.raiseRowEditEnded(ev)
	return true
}

// restorePlaceholder puts back what the placeholder had before a canceled add.
func (g *Grid) restorePlaceholder(added nt.Item, staged *carry, col int) {

	if staged != nil {
		g.carrySelection(added, nt.Placeholder, staged)
	}

	if g.current.Resolved() && !g.current.Is(added) {
		return
	}
	if row := g.loc.Lookup(nt.Placeholder); row >= 0 {
		g.moveCurrent(nt.Placeholder, row, col)
	}
}

func (g *Grid) endCell() {

	g.edit.cellEditing = false
	g.edit.cellCol = -1
	g.edit.value = nt.Value{}
	g.edit.dirty = false
	g.paintEditing()
}

func (g *Grid) endRow() {

	g.loc.Release(g.edit.rowInfo)
	g.edit.rowInfo = nil
	g.edit.row = rowIdle
	g.edit.carried = nil
}

// abandonEdit drops the edit state without calling the collection, for when the row
// under edit left the sequence behind the grid's back.
func (g *Grid) abandonEdit() {

	g.logger.Info(g.ctx, "abandoning edit of removed row", "state", g.EditState().String())

	g.edit.cellEditing = false
	g.edit.cellCol = -1
	g.edit.value = nt.Value{}
	g.edit.dirty = false
	g.edit.cellError = false
	g.edit.rowError = false
	g.endRow()
	g.paintEditing()
}

func (g *Grid) editEvent(unit EditUnit, act EditAction) EditEvent {

	return EditEvent{
		Item:   g.edit.rowInfo.Item(),
		Row:    g.edit.rowInfo.Index(),
		Column: g.edit.cellCol,
		Unit:   unit,
		Action: act,
		Value:  g.edit.value,
	}
}

// rowEvent describes the row transaction ending; it names no cell.
func (g *Grid) rowEvent(act EditAction) EditEvent {

	ev := g.editEvent(RowEdit, act)
	ev.Column = -1
	ev.Value = nt.Value{}
	return ev
}

// veto raises a cancelable notification with reentrant edit commands locked out.
func (g *Grid) veto(handlers []EditHandler, ev EditEvent) (cancel bool) {

	release := g.hold()
	defer release()

	return vetoed(handlers, ev)
}

// guarded calls into the collection with reentrant edit commands locked out.
func (g *Grid) guarded(call func() error) error {

	release := g.hold()
	defer release()

	return call()
}

func (g *Grid) hold() (release func()) {

	prev := g.edit.busy
	g.edit.busy = true
	return func() { g.edit.busy = prev }
}

func (g *Grid) paintEditing() {

	if g.containers == nil {
		return
	}

	for _, container := range g.containers.Realized() {
		col := -1
		if g.edit.cellEditing && g.edit.rowInfo.Is(container.Item()) {
			col = g.edit.cellCol
		}
		container.SetEditing(col)
	}
}
