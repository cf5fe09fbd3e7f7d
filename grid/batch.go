package grid

import (
	"slices"

	nt "grille/entity"
	"grille/region"
)

type batchState struct {
	depth  int
	before *region.Set
	rows   map[string]nt.Item
	order  []nt.Item
	gone   []CellInfo // cells lost with rows removed from the sequence
}

// Scope is one level of a reentrant batch. End it exactly once, normally via defer.
type Scope struct {
	g     *Grid
	ended bool
}

// Batch runs fn as one batch: however many selection mutations fn makes, one net
// SelectionChange is raised when the outermost batch ends, even if fn panics.
func (g *Grid) Batch(fn func()) {

	sc := g.beginBatch()
	defer sc.End()

	fn()
}

// InBatch reports whether a batch is open.
func (g *Grid) InBatch() bool {
	return g.batch.depth > 0
}

func (g *Grid) beginBatch() *Scope {

	if g.batch.depth == 0 {
		g.batch.before = g.cells.Clone()
		g.batch.order = g.selectedRowItems()
		g.batch.rows = make(map[string]nt.Item, len(g.batch.order))
		for _, item := range g.batch.order {
			g.batch.rows[item.Key()] = item
		}
		g.batch.gone = nil
	}
	g.batch.depth++

	return &Scope{g: g}
}

// End closes the scope; closing the outermost scope publishes the net change.
func (sc *Scope) End() {

	if sc.ended {
		return
	}
	sc.ended = true

	g := sc.g
	g.batch.depth--
	if g.batch.depth > 0 {
		return
	}
	g.flushBatch()
}

func (g *Grid) flushBatch() {

	before, beforeRows, beforeOrder, gone := g.batch.before, g.batch.rows, g.batch.order, g.batch.gone
	g.batch = batchState{}

	added, removed := region.Delta(before, g.cells)

	change := SelectionChange{
		AddedCells:   g.cellInfos(added),
		RemovedCells: append(gone, g.cellInfos(removed)...),
	}

	nowOrder := g.selectedRowItems()
	nowRows := make(map[string]bool, len(nowOrder))
	for _, item := range nowOrder {
		nowRows[item.Key()] = true
	}
	for _, item := range beforeOrder {
		if !nowRows[item.Key()] {
			change.RemovedItems = append(change.RemovedItems, item)
		}
	}
	for _, item := range nowOrder {
		if _, ok := beforeRows[item.Key()]; !ok {
			change.AddedItems = append(change.AddedItems, item)
		}
	}

	if change.Empty() {
		return
	}

	g.refreshContainers(added, removed, append(slices.Clone(change.AddedItems), change.RemovedItems...))
	g.raiseSelectionChanged(change)
}

// refreshContainers updates the selected flags of materialized rows and cells.
// Past the refresh ratio it is cheaper to sweep every materialized container than to
// look up each changed cell.
func (g *Grid) refreshContainers(added, removed *region.Set, items []nt.Item) {

	if g.containers == nil {
		return
	}

	realized := g.containers.Realized()
	changed := added.Count() + removed.Count()
	materialized := len(realized) * len(g.columns)

	if float64(changed) > g.refreshRatio*float64(materialized) {
		for _, container := range realized {
			g.syncContainer(container)
		}
		return
	}

	visit := func(row, col int) bool {
		if container := g.containers.ContainerFromIndex(row); container != nil {
			container.SetCellSelected(col, g.cells.Contains(row, col))
		}
		return true
	}
	added.Cells(visit)
	removed.Cells(visit)

	for _, item := range items {
		if container := g.containers.ContainerFromItem(item); container != nil {
			container.SetSelected(g.IsRowSelected(item))
		}
	}
}

// syncContainer sets every flag of one container from the grid state.
func (g *Grid) syncContainer(container Container) {

	item := container.Item()
	row := g.containers.IndexFromContainer(container)

	container.SetSelected(item != nil && g.IsRowSelected(item))
	for col := range g.columns {
		container.SetCellSelected(col, row >= 0 && g.cells.Contains(row, col))
	}

	editing := -1
	if g.edit.cellEditing && g.edit.rowInfo.Is(item) {
		editing = g.edit.cellCol
	}
	container.SetEditing(editing)
}

func (g *Grid) cellInfos(set *region.Set) (infos []CellInfo) {

	set.Cells(func(row, col int) bool {
		infos = append(infos, g.cellInfo(row, col))
		return true
	})
	sortCells(infos)
	return
}

func sortCells(infos []CellInfo) {

	slices.SortFunc(infos, func(a, b CellInfo) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Column - b.Column
	})
}

// selectedRowItems lists the row selection, parked rows included.
func (g *Grid) selectedRowItems() []nt.Item {

	items := make([]nt.Item, 0, g.rows.len())
	for _, info := range g.rows.order {
		items = append(items, info.Item())
	}
	for _, pnd := range g.loc.Pending() {
		if pnd.Row {
			items = append(items, pnd.Info.Item())
		}
	}
	return items
}
