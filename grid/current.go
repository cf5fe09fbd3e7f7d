package grid

import (
	nt "grille/entity"
)

// CurrentCell returns the current cell; Valid is false when there is none.
func (g *Grid) CurrentCell() CellInfo {
	return g.infoCell(g.current, g.currentCol)
}

// SetCurrentCell moves the current cell. Any edit that cannot stay open at the new
// position is committed first; if that commit is vetoed or fails validation the move
// is rejected and ok is false. A nil item clears the current cell.
func (g *Grid) SetCurrentCell(cell Cell) (ok bool, err error) {

	if cell.Item == nil {
		if !g.endEditsFor(nil, -1) {
			return false, nil
		}
		g.moveCurrent(nil, -1, -1)
		return true, nil
	}

	err = g.checkColumn(cell.Column)
	if err != nil {
		return
	}
	row, err := g.checkItem(cell.Item)
	if err != nil {
		return
	}

	if g.current.Is(cell.Item) && g.currentCol == cell.Column {
		return true, nil
	}

	if !g.endEditsFor(cell.Item, cell.Column) {
		g.logger.Info(g.ctx, "current cell change rejected by open edit", "row", row, "col", cell.Column)
		return false, nil
	}

	// committing may have shifted rows
	row = g.loc.Lookup(cell.Item)
	if row < 0 {
		return false, nil
	}

	g.moveCurrent(cell.Item, row, cell.Column)
	return true, nil
}

// endEditsFor force-ends the edits that cannot remain open once item/col is current:
// the cell edit unless it is that very cell, the row edit unless it is that item.
func (g *Grid) endEditsFor(item nt.Item, col int) bool {

	sameRow := item != nil && g.edit.rowInfo.Is(item)

	if g.edit.row != rowIdle && !sameRow {
		return g.commitRow()
	}
	if g.edit.cellEditing && !(sameRow && g.edit.cellCol == col) {
		return g.commitCell()
	}
	return true
}

func (g *Grid) moveCurrent(item nt.Item, row, col int) {

	old := g.CurrentCell()
	g.loc.Release(g.current)

	if item == nil {
		g.current = nil
		g.currentCol = -1
	} else {
		g.current = g.loc.TrackAt(item, row)
		g.currentCol = col
	}

	g.raiseCurrentChanged(old, g.CurrentCell())
}
