package grid

import (
	nt "grille/entity"
	"grille/locate"
	"grille/region"
)

// OnCollectionChanged repairs selection, anchor, current cell and edit state after the
// backing sequence changed. Collections call it through Subscribe.
func (g *Grid) OnCollectionChanged(change locate.Change) {

	sc := g.beginBatch()
	defer sc.End()

	var known map[int]nt.Item
	if change.Action == locate.Reset {
		known = g.loc.Known()
	}
	g.loc.Adjust(change)

	at, n := change.Index, change.N()
	switch change.Action {
	case locate.Add:
		g.shiftRows(func(set *region.Set) { set.InsertRows(at, n) })

	case locate.Remove:
		g.noteGoneRows(at, n, change.Items)
		g.shiftRows(func(set *region.Set) { set.RemoveRows(at, n) })

	case locate.Replace:
		g.noteGoneRows(at, n, nil)
		g.shiftRows(func(set *region.Set) { set.RemoveRegion(at, 0, n, len(g.columns)) })

	case locate.Move:
		g.shiftRows(func(set *region.Set) { moveRows(set, change.OldIndex, at, n) })

	case locate.Reset:
		g.logger.Info(g.ctx, "collection reset", "rows", g.coll.Len())
		g.remapBefore(known)
		g.cells.Clear()
	}

	g.repairRows(change.Action == locate.Reset)
	g.repairAnchorAndCurrent()
	g.repairEdit()
	g.applyPending(g.loc.FlushPending())
}

// OnContainersRegenerated re-attaches tracked items to newly materialized containers,
// flushes selections parked while their index was unknown and repaints every container.
func (g *Grid) OnContainersRegenerated() {

	sc := g.beginBatch()
	defer sc.End()

	g.applyPending(g.loc.AdjustForContainerRegeneration())

	if g.containers == nil {
		return
	}
	for _, container := range g.containers.Realized() {
		g.syncContainer(container)
	}
}

// unexported

// shiftRows applies an index shift to the selection and, so the batch delta stays in
// one index space, to the snapshot taken when the batch opened.
func (g *Grid) shiftRows(shift func(set *region.Set)) {

	shift(g.cells)
	if g.batch.before != nil {
		shift(g.batch.before)
	}
}

// noteGoneRows records cells selected before the batch on rows leaving the sequence.
func (g *Grid) noteGoneRows(at, n int, items []nt.Item) {

	if g.batch.before == nil {
		return
	}

	for i := 0; i < n; i++ {
		var item nt.Item
		if i < len(items) {
			item = items[i]
		}
		for _, span := range g.batch.before.Intersects(at + i) {
			for col := span.Start; col < span.End(); col++ {
				g.batch.gone = append(g.batch.gone, CellInfo{Item: item, Row: at + i, Column: col})
			}
		}
	}
}

// remapBefore carries the batch snapshot across a reset into the new index space.
// Rows whose item is unknown or no longer in the sequence are recorded as gone.
func (g *Grid) remapBefore(known map[int]nt.Item) {

	if g.batch.before == nil {
		return
	}

	remapped := region.New()
	for _, rgn := range g.batch.before.Regions() {
		for row := rgn.Row; row < rgn.RowEnd(); row++ {
			item := known[row]
			if idx := g.indexOf(item); idx >= 0 {
				remapped.AddRegion(idx, rgn.Col, 1, rgn.Cols)
				continue
			}
			for col := rgn.Col; col < rgn.ColEnd(); col++ {
				g.batch.gone = append(g.batch.gone, CellInfo{Item: item, Row: row, Column: col})
			}
		}
	}
	g.batch.before = remapped
}

func (g *Grid) indexOf(item nt.Item) int {
	if item == nil {
		return -1
	}
	return g.coll.IndexOf(item)
}

func moveRows(set *region.Set, from, to, n int) {

	spans := make([][]region.Span, n)
	for i := range spans {
		spans[i] = set.Intersects(from + i)
	}

	set.RemoveRows(from, n)
	set.InsertRows(to, n)

	for i, rowSpans := range spans {
		for _, span := range rowSpans {
			set.AddRegion(to+i, span.Start, 1, span.Count)
		}
	}
}

// repairRows drops selected rows whose item left the sequence. After a reset the
// survivors are re-selected at their rescanned index.
func (g *Grid) repairRows(reset bool) {

	for _, info := range append([]*locate.Info(nil), g.rows.order...) {
		row := info.Index()
		if row < 0 {
			g.loc.Release(g.rows.remove(info.Item()))
			continue
		}
		if reset {
			g.cells.AddRegion(row, 0, 1, len(g.columns))
		}
	}
}

func (g *Grid) repairAnchorAndCurrent() {

	if g.anchor != nil && !g.anchor.Resolved() {
		g.clearAnchor()
	}
	if g.current != nil && !g.current.Resolved() {
		g.moveCurrent(nil, -1, -1)
	}
}

func (g *Grid) repairEdit() {

	if g.edit.busy || g.edit.row == rowIdle {
		return
	}
	if !g.edit.rowInfo.Resolved() {
		g.abandonEdit()
	}
}

// applyPending selects parked selections whose item now has an index.
func (g *Grid) applyPending(ready []locate.Pending) {

	for _, pnd := range ready {
		row := pnd.Info.Index()

		if !pnd.Row {
			g.cells.AddRegion(row, pnd.Col, 1, pnd.Cols)
			g.loc.Release(pnd.Info)
			continue
		}

		g.cells.AddRegion(row, 0, 1, len(g.columns))
		if !g.rows.add(pnd.Info) {
			g.loc.Release(pnd.Info)
		}
	}
}
