package grid

import (
	"github.com/pkg/errors"

	nt "grille/entity"
	"grille/locate"
)

// MakeFullRowSelection applies a row gesture to item.
// Plain selects only item, minimalModify toggles it, extend selects the rows from the
// anchor to item; with both, rows selected outside the previous extend span are kept.
func (g *Grid) MakeFullRowSelection(item nt.Item, extend, minimalModify bool) (err error) {

	if g.unit == CellUnit {
		return errors.Wrap(ErrInvalidOperation, "row selection while the selection unit is cell")
	}
	if item == nil {
		return errors.Wrap(ErrInvalidArgument, "nil item")
	}

	row := g.loc.Lookup(item)
	if extend && row < 0 {
		return errors.Wrapf(ErrInvalidArgument, "cannot extend to unresolved item %q", item.Key())
	}

	g.makeRowSelection(item, row, g.current.Index(), extend, minimalModify)
	return
}

// MakeCellSelection applies a cell gesture. Under the full row unit it is rejected.
func (g *Grid) MakeCellSelection(cell Cell, extend, minimalModify bool) (err error) {

	if g.unit == FullRowUnit {
		return errors.Wrap(ErrInvalidOperation, "cell selection while the selection unit is full row")
	}
	err = g.checkColumn(cell.Column)
	if err != nil {
		return
	}
	if cell.Item == nil {
		return errors.Wrap(ErrInvalidArgument, "nil item")
	}

	row := g.loc.Lookup(cell.Item)
	if extend && row < 0 {
		return errors.Wrapf(ErrInvalidArgument, "cannot extend to unresolved item %q", cell.Item.Key())
	}

	g.makeCellSelection(cell, row, g.current.Index(), g.currentCol, extend, minimalModify)
	return
}

// HandleCellInput moves the current cell to cell and applies the gesture the way the
// selection unit calls for. A rejected current cell change rejects the gesture.
func (g *Grid) HandleCellInput(cell Cell, extend, minimalModify bool) (err error) {

	if cell.Item == nil {
		return errors.Wrap(ErrInvalidArgument, "nil item")
	}
	prevRow, prevCol := g.current.Index(), g.currentCol

	ok, err := g.SetCurrentCell(cell)
	if err != nil {
		return
	}
	if !ok {
		return errors.Wrap(ErrInvalidOperation, "current cell change was rejected")
	}

	row := g.current.Index()
	if g.unit == FullRowUnit {
		g.makeRowSelection(cell.Item, row, prevRow, extend, minimalModify)
		return
	}
	g.makeCellSelection(cell, row, prevRow, prevCol, extend, minimalModify)
	return
}

// HandleRowHeaderInput applies a row gesture from a row header, keeping the current column.
func (g *Grid) HandleRowHeaderInput(item nt.Item, extend, minimalModify bool) (err error) {

	if g.unit == CellUnit {
		return errors.Wrap(ErrInvalidOperation, "row header selection while the selection unit is cell")
	}
	if item == nil {
		return errors.Wrap(ErrInvalidArgument, "nil item")
	}

	col := max(g.currentCol, 0)
	prevRow := g.current.Index()

	ok, err := g.SetCurrentCell(Cell{Item: item, Column: col})
	if err != nil {
		return
	}
	if !ok {
		return errors.Wrap(ErrInvalidOperation, "current cell change was rejected")
	}

	g.makeRowSelection(item, g.current.Index(), prevRow, extend, minimalModify)
	return
}

// SelectAll selects every row, or every cell under the cell unit.
func (g *Grid) SelectAll() (err error) {

	if g.unit == CellUnit {
		return g.SelectAllCells()
	}
	if g.mode == Single {
		return errors.Wrap(ErrInvalidOperation, "select all in single selection mode")
	}

	sc := g.beginBatch()
	defer sc.End()

	g.selectRowRange(0, g.coll.Len()-1)
	g.unselectRow(nt.Placeholder)
	return
}

// UnselectAll clears the whole selection, parked selections included.
func (g *Grid) UnselectAll() {

	sc := g.beginBatch()
	defer sc.End()

	g.clearSelection()
}

// SelectAllCells selects every cell except the placeholder row.
// Under the full row unit this selects every row.
func (g *Grid) SelectAllCells() (err error) {

	if g.mode == Single {
		return errors.Wrap(ErrInvalidOperation, "select all in single selection mode")
	}
	if g.unit == FullRowUnit {
		return g.SelectAll()
	}

	sc := g.beginBatch()
	defer sc.End()

	g.cells.AddRegion(0, 0, g.coll.Len(), len(g.columns))
	if row := g.loc.Lookup(nt.Placeholder); row >= 0 {
		g.cells.RemoveRegion(row, 0, 1, len(g.columns))
	}
	return
}

// UnselectAllCells clears every selected cell and row.
func (g *Grid) UnselectAllCells() {
	g.UnselectAll()
}

// SelectItem adds item to the row selection.
func (g *Grid) SelectItem(item nt.Item) error {
	return g.OnUnderlyingRowSelectionChanged([]nt.Item{item}, nil)
}

// UnselectItem removes item from the row selection.
func (g *Grid) UnselectItem(item nt.Item) error {
	return g.OnUnderlyingRowSelectionChanged(nil, []nt.Item{item})
}

// OnContainerToggled applies a selected flag flipped on a materialized container.
// Column -1 addresses the row header under the cell-or-row-header unit.
func (g *Grid) OnContainerToggled(cell Cell, isSelected bool) (err error) {

	byRow := g.unit == FullRowUnit || (g.unit == CellOrRowHeaderUnit && cell.Column < 0)
	if !byRow {
		err = g.checkColumn(cell.Column)
		if err != nil {
			return
		}
	}

	row, err := g.checkItem(cell.Item)
	if err != nil {
		return
	}

	sc := g.beginBatch()
	defer sc.End()

	if !isSelected {
		if byRow {
			g.unselectRow(cell.Item)
			return
		}
		g.cells.RemoveRegion(row, cell.Column, 1, 1)
		g.dropPartialRows()
		return
	}

	if g.mode == Single {
		g.clearSelection()
	}

	col := cell.Column
	if byRow {
		g.selectRow(cell.Item)
		col = max(g.currentCol, 0)
	} else {
		g.cells.AddRegion(row, cell.Column, 1, 1)
	}

	if g.anchor == nil || g.mode == Single {
		g.setAnchor(cell.Item, col)
	}
	return
}

// OnUnderlyingRowSelectionChanged brings the cell store in line after items were added
// to or removed from the row selection.
func (g *Grid) OnUnderlyingRowSelectionChanged(added, removed []nt.Item) (err error) {

	if g.unit == CellUnit {
		return errors.Wrap(ErrInvalidOperation, "row selection while the selection unit is cell")
	}
	for _, item := range append(added, removed...) {
		if item == nil {
			return errors.Wrap(ErrInvalidArgument, "nil item")
		}
	}

	sc := g.beginBatch()
	defer sc.End()

	for _, item := range removed {
		g.unselectRow(item)
	}

	if g.mode == Single && len(added) > 0 {
		g.clearSelection()
		added = added[len(added)-1:]
	}
	for _, item := range added {
		g.selectRow(item)
	}
	return
}

// SetUnit switches the selection unit, collapsing the selection to one unit.
func (g *Grid) SetUnit(unit Unit) {

	if unit == g.unit {
		return
	}

	sc := g.beginBatch()
	defer sc.End()

	g.unit = unit
	g.collapse()
}

// SetMode switches the selection mode; single mode collapses to one unit.
func (g *Grid) SetMode(mode Mode) {

	if mode == g.mode {
		return
	}

	sc := g.beginBatch()
	defer sc.End()

	g.mode = mode
	if mode == Single {
		g.collapse()
	}
}

// unexported

func (g *Grid) makeRowSelection(item nt.Item, row, prevRow int, extend, minimal bool) {

	if g.mode == Single {
		extend = false
		minimal = minimal && g.IsRowSelected(item)
	}

	sc := g.beginBatch()
	defer sc.End()

	anchorRow := g.anchor.Index()
	col := max(g.currentCol, 0)

	switch {
	case extend && anchorRow >= 0:
		if prevRow < 0 {
			prevRow = anchorRow
		}
		if minimal {
			g.unselectRowRange(anchorRow, prevRow)
		} else {
			g.clearSelection()
		}
		g.selectRowRange(anchorRow, row)

	case minimal:
		if g.IsRowSelected(item) {
			g.unselectRow(item)
			return
		}
		g.selectRow(item)
		g.setAnchor(item, col)

	default:
		g.clearSelection()
		g.selectRow(item)
		g.setAnchor(item, col)
	}
}

func (g *Grid) makeCellSelection(cell Cell, row, prevRow, prevCol int, extend, minimal bool) {

	col := cell.Column
	if g.mode == Single {
		extend = false
		minimal = minimal && row >= 0 && g.cells.Contains(row, col)
	}

	sc := g.beginBatch()
	defer sc.End()

	anchorRow := g.anchor.Index()

	switch {
	case extend && anchorRow >= 0 && g.anchorCol >= 0:
		if prevRow < 0 || prevCol < 0 {
			prevRow, prevCol = anchorRow, g.anchorCol
		}
		if minimal {
			g.removeRect(anchorRow, g.anchorCol, prevRow, prevCol)
		} else {
			g.clearSelection()
		}
		g.addRect(anchorRow, g.anchorCol, row, col)

	case minimal && row >= 0 && g.cells.Contains(row, col):
		g.cells.RemoveRegion(row, col, 1, 1)
		g.dropPartialRows()

	default:
		if !minimal {
			g.clearSelection()
		}
		if row < 0 {
			g.loc.Park(locate.Pending{Info: g.loc.Track(cell.Item), Col: col, Cols: 1})
		} else {
			g.cells.AddRegion(row, col, 1, 1)
		}
		g.setAnchor(cell.Item, col)
	}
}

// collapse reduces the selection to a single unit of the current selection unit,
// preferring the current cell.
func (g *Grid) collapse() {

	var row, col int
	var ok bool

	if cur := g.current.Index(); cur >= 0 && g.currentCol >= 0 {
		row, col, ok = g.cells.RemoveAllButOneAt(cur, g.currentCol)
	} else {
		row, col, ok = g.cells.RemoveAllButOne()
	}

	g.clearRows()
	g.loc.ClearPending()
	if !ok {
		g.clearAnchor()
		return
	}

	item := g.coll.At(row)
	if g.unit == FullRowUnit {
		g.cells.Clear()
		g.selectRow(item)
	}
	g.setAnchor(item, col)
}

func (g *Grid) selectRow(item nt.Item) {

	if g.rows.has(item) || g.loc.IsPending(item) {
		return
	}

	row := g.loc.Lookup(item)
	if row < 0 {
		g.loc.Park(locate.Pending{Info: g.loc.Track(item), Row: true})
		return
	}

	g.cells.AddRegion(row, 0, 1, len(g.columns))
	g.rows.add(g.loc.TrackAt(item, row))
}

func (g *Grid) unselectRow(item nt.Item) {

	g.loc.DropPending(item)

	row := g.loc.Lookup(item)
	if row >= 0 {
		g.cells.RemoveRegion(row, 0, 1, len(g.columns))
	}
	g.loc.Release(g.rows.remove(item))
}

func (g *Grid) selectRowRange(from, to int) {

	lo, hi := min(from, to), max(from, to)
	lo = max(lo, 0)
	hi = min(hi, g.coll.Len()-1)
	if lo > hi {
		return
	}

	g.cells.AddRegion(lo, 0, hi-lo+1, len(g.columns))
	for row := lo; row <= hi; row++ {
		item := g.coll.At(row)
		if item != nil && !g.rows.has(item) {
			g.rows.add(g.loc.TrackAt(item, row))
		}
	}
}

func (g *Grid) unselectRowRange(from, to int) {

	lo, hi := min(from, to), max(from, to)
	lo = max(lo, 0)
	hi = min(hi, g.coll.Len()-1)
	if lo > hi {
		return
	}

	g.cells.RemoveRegion(lo, 0, hi-lo+1, len(g.columns))
	for row := lo; row <= hi; row++ {
		if item := g.coll.At(row); item != nil {
			g.loc.Release(g.rows.remove(item))
		}
	}
}

func (g *Grid) addRect(r1, c1, r2, c2 int) {
	g.cells.AddRegion(min(r1, r2), min(c1, c2), abs(r1-r2)+1, abs(c1-c2)+1)
}

func (g *Grid) removeRect(r1, c1, r2, c2 int) {
	g.cells.RemoveRegion(min(r1, r2), min(c1, c2), abs(r1-r2)+1, abs(c1-c2)+1)
	g.dropPartialRows()
}

// dropPartialRows removes rows from the row selection once any of their cells is unselected.
func (g *Grid) dropPartialRows() {

	for _, info := range append([]*locate.Info(nil), g.rows.order...) {
		row := info.Index()
		if row >= 0 && g.cells.ContainsRow(row, len(g.columns)) {
			continue
		}
		g.loc.Release(g.rows.remove(info.Item()))
	}
}

func (g *Grid) clearRows() {

	for _, info := range g.rows.order {
		g.loc.Release(info)
	}
	g.rows = newRowSet()
}

func (g *Grid) clearSelection() {

	g.cells.Clear()
	g.clearRows()
	g.loc.ClearPending()
}

func (g *Grid) setAnchor(item nt.Item, col int) {

	g.loc.Release(g.anchor)
	g.anchor = g.loc.Track(item)
	g.anchorCol = col
}

func (g *Grid) clearAnchor() {

	g.loc.Release(g.anchor)
	g.anchor = nil
	g.anchorCol = -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
