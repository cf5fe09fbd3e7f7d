package grid

import (
	nt "grille/entity"
)

// SelectedCells returns every selected cell in row-major order.
func (g *Grid) SelectedCells() []CellInfo {
	return g.cellInfos(g.cells)
}

// SelectedCellCount returns the number of selected cells without listing them.
func (g *Grid) SelectedCellCount() int {
	return g.cells.Count()
}

// SelectedItems returns the row selection in selection order, parked rows included.
func (g *Grid) SelectedItems() []nt.Item {
	return g.selectedRowItems()
}

// IsCellSelected reports whether the cell at row, col is selected.
func (g *Grid) IsCellSelected(row, col int) bool {
	return g.cells.Contains(row, col)
}

// IsRowSelected reports whether item is in the row selection.
func (g *Grid) IsRowSelected(item nt.Item) bool {
	return item != nil && (g.rows.has(item) || g.loc.IsPending(item))
}

// SelectionRange returns the bounding box of the selected cells, inclusive.
func (g *Grid) SelectionRange() (minCol, maxCol, minRow, maxRow int, ok bool) {
	return g.cells.Range()
}

// Anchor returns the fixed end of range gestures; Valid is false when unset.
func (g *Grid) Anchor() CellInfo {
	return g.infoCell(g.anchor, g.anchorCol)
}

// PendingSelections returns the number of selections parked on unresolved items.
func (g *Grid) PendingSelections() int {
	return g.loc.PendingCount()
}
