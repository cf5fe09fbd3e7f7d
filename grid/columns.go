package grid

import (
	"slices"

	"github.com/pkg/errors"

	nt "grille/entity"
	"grille/region"
)

// InsertColumn adds a display column at at. Fully selected rows stay fully selected.
func (g *Grid) InsertColumn(at int, column nt.Column) (err error) {

	if at < 0 || at > len(g.columns) {
		return errors.Wrapf(ErrInvalidArgument, "column insert position %d outside [0,%d]", at, len(g.columns))
	}

	sc := g.beginBatch()
	defer sc.End()

	g.shiftColumns(func(set *region.Set) { set.InsertColumns(at, 1) })
	g.columns = slices.Insert(slices.Clone(g.columns), at, column)

	for _, info := range g.rows.order {
		if row := info.Index(); row >= 0 {
			g.cells.AddRegion(row, at, 1, 1)
		}
	}

	g.currentCol = shiftedUp(g.currentCol, at)
	g.anchorCol = shiftedUp(g.anchorCol, at)
	g.edit.cellCol = shiftedUp(g.edit.cellCol, at)
	return
}

// RemoveColumn drops the display column at at. An edit open in that column is
// canceled first; if the cancel is vetoed the removal is rejected.
func (g *Grid) RemoveColumn(at int) (err error) {

	err = g.checkColumn(at)
	if err != nil {
		return
	}

	if g.edit.cellEditing && g.edit.cellCol == at && !g.cancelCell() {
		return errors.Wrapf(ErrInvalidOperation, "edit in column %d could not be canceled", at)
	}

	sc := g.beginBatch()
	defer sc.End()

	if g.batch.before != nil {
		for _, rgn := range g.batch.before.Regions() {
			if at < rgn.Col || at >= rgn.ColEnd() {
				continue
			}
			for row := rgn.Row; row < rgn.RowEnd(); row++ {
				g.batch.gone = append(g.batch.gone, g.cellInfo(row, at))
			}
		}
	}

	g.shiftColumns(func(set *region.Set) { set.RemoveColumns(at, 1) })
	g.columns = slices.Delete(slices.Clone(g.columns), at, at+1)

	g.currentCol = shiftedDown(g.currentCol, at, len(g.columns))
	g.anchorCol = shiftedDown(g.anchorCol, at, len(g.columns))
	g.edit.cellCol = shiftedDown(g.edit.cellCol, at, len(g.columns))
	if len(g.columns) == 0 && g.current != nil {
		g.moveCurrent(nil, -1, -1)
	}
	return
}

func (g *Grid) shiftColumns(shift func(set *region.Set)) {

	shift(g.cells)
	if g.batch.before != nil {
		shift(g.batch.before)
	}
}

func shiftedUp(col, at int) int {
	if col >= at {
		return col + 1
	}
	return col
}

// shiftedDown keeps a column reference on a neighbor when its column goes away.
func shiftedDown(col, at, count int) int {

	switch {
	case col < 0:
		return col
	case col > at:
		return col - 1
	case col == at:
		return min(at, count-1)
	}
	return col
}
