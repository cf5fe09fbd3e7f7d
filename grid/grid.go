// Package grid tracks selection, the current cell and in-place edit transactions for a
// virtualized table whose backing sequence may change at any time.
//
// All state for one table lives in a Grid. Every method runs synchronously on the
// caller's goroutine; a Grid is not safe for concurrent use. Callbacks raised by the
// grid may call back into it.
package grid

import (
	"context"

	"github.com/pkg/errors"

	nt "grille/entity"
	"grille/locate"
	"grille/region"
)

// Cell addresses one cell by item identity and display column.
type Cell struct {
	Item   nt.Item
	Column int
}

// CellInfo is a cell with its resolved row index.
type CellInfo struct {
	Item   nt.Item
	Row    int
	Column int
}

// Valid reports whether both the row and the column resolved.
func (ci CellInfo) Valid() bool {
	return ci.Item != nil && ci.Row >= 0 && ci.Column >= 0
}

// Grid is the selection and editing state of one table instance.
type Grid struct {
	coll       Collection
	editable   EditableCollection // nil when the collection cannot edit
	containers Containers
	columns    []nt.Column

	unit         Unit
	mode         Mode
	readOnly     bool
	refreshRatio float64

	loc   *locate.Locator
	cells *region.Set
	rows  *rowSet

	anchor    *locate.Info
	anchorCol int

	current    *locate.Info
	currentCol int

	edit   editState
	batch  batchState
	events events

	ctx    context.Context
	logger nt.Logger
}

// New creates a grid over coll and subscribes to its changes.
func New(coll Collection, columns []nt.Column, opts ...Option) *Grid {

	g := &Grid{
		coll:         coll,
		columns:      columns,
		refreshRatio: defaultRefreshRatio,
		cells:        region.New(),
		rows:         newRowSet(),
		currentCol:   -1,
		anchorCol:    -1,
		ctx:          context.Background(),
		logger:       nt.NopLogger{},
	}
	g.edit.cellCol = -1

	if editable, ok := coll.(EditableCollection); ok {
		g.editable = editable
	}

	for _, opt := range opts {
		opt(g)
	}

	g.loc = locate.New(coll.IndexOf)
	if g.containers != nil {
		g.loc.SetContainerLookup(g.containerIndex)
	}

	coll.Subscribe(g.OnCollectionChanged)
	return g
}

// SetContainers attaches or replaces the virtualizing host.
func (g *Grid) SetContainers(containers Containers) {

	g.containers = containers
	if containers == nil {
		g.loc.SetContainerLookup(nil)
		return
	}
	g.loc.SetContainerLookup(g.containerIndex)
	g.OnContainersRegenerated()
}

// Columns returns the display columns.
func (g *Grid) Columns() []nt.Column {
	return g.columns
}

// RowCount returns the number of rows, placeholder included.
func (g *Grid) RowCount() int {
	return g.coll.Len()
}

// ItemAt returns the item shown at row.
func (g *Grid) ItemAt(row int) nt.Item {
	return g.coll.At(row)
}

// IndexOf resolves item to its row, -1 when unknown.
func (g *Grid) IndexOf(item nt.Item) int {
	return g.loc.Lookup(item)
}

// Generation changes on every structural mutation of the backing sequence.
func (g *Grid) Generation() uint64 {
	return g.loc.Generation()
}

// Unit returns the selection unit.
func (g *Grid) Unit() Unit {
	return g.unit
}

// Mode returns the selection mode.
func (g *Grid) Mode() Mode {
	return g.mode
}

// unexported

func (g *Grid) containerIndex(item nt.Item) int {

	container := g.containers.ContainerFromItem(item)
	if container == nil {
		return -1
	}
	return g.containers.IndexFromContainer(container)
}

func (g *Grid) checkColumn(col int) error {

	if col < 0 || col >= len(g.columns) {
		return errors.Wrapf(ErrInvalidArgument, "column %d outside [0,%d)", col, len(g.columns))
	}
	return nil
}

func (g *Grid) checkItem(item nt.Item) (row int, err error) {

	if item == nil {
		err = errors.Wrap(ErrInvalidArgument, "nil item")
		return
	}

	row = g.loc.Lookup(item)
	if row < 0 {
		err = errors.Wrapf(ErrInvalidArgument, "item %q not found", item.Key())
	}
	return
}

func (g *Grid) cellInfo(row, col int) CellInfo {
	return CellInfo{Item: g.coll.At(row), Row: row, Column: col}
}

func (g *Grid) infoCell(info *locate.Info, col int) CellInfo {

	if info == nil {
		return CellInfo{Row: -1, Column: -1}
	}
	return CellInfo{Item: info.Item(), Row: info.Index(), Column: col}
}

// rowSet is the row-selection collection: selected items in selection order.
type rowSet struct {
	order []*locate.Info
	byKey map[string]*locate.Info
}

func newRowSet() *rowSet {
	return &rowSet{byKey: map[string]*locate.Info{}}
}

func (rs *rowSet) has(item nt.Item) bool {
	_, ok := rs.byKey[item.Key()]
	return ok
}

func (rs *rowSet) add(info *locate.Info) bool {

	key := info.Item().Key()
	if _, ok := rs.byKey[key]; ok {
		return false
	}
	rs.byKey[key] = info
	rs.order = append(rs.order, info)
	return true
}

func (rs *rowSet) remove(item nt.Item) *locate.Info {

	key := item.Key()
	info, ok := rs.byKey[key]
	if !ok {
		return nil
	}
	delete(rs.byKey, key)
	for i, candidate := range rs.order {
		if candidate == info {
			rs.order = append(rs.order[:i], rs.order[i+1:]...)
			break
		}
	}
	return info
}

func (rs *rowSet) len() int {
	return len(rs.order)
}
