package grid

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"grille/edible"
	nt "grille/entity"
)

func testColumns(n int) []nt.Column {

	cols := make([]nt.Column, n)
	for i := range cols {
		cols[i] = nt.Column{Field: fmt.Sprintf("f%d", i), Width: 8}
	}
	return cols
}

func testRows(n int) []*nt.Row {

	rows := make([]*nt.Row, n)
	for i := range rows {
		rows[i] = &nt.Row{
			Id:     fmt.Sprintf("r%d", i),
			Values: []nt.Value{{Raw: fmt.Sprintf("name%d", i)}, {Raw: int64(i)}, {Raw: "x"}},
		}
	}
	return rows
}

// fixture is a grid over n rows of three columns.
func fixture(n int, collOpts []edible.Option, opts ...Option) (*Grid, *edible.Collection) {

	coll := edible.New(testRows(n), collOpts...)
	return New(coll, testColumns(3), opts...), coll
}

func at(coll *edible.Collection, row, col int) Cell {
	return Cell{Item: coll.At(row), Column: col}
}

func intColumn(col int) edible.Option {
	return edible.WithCellValidator(col, func(val nt.Value) error {
		_, err := val.Int()
		return err
	})
}

// cellSet renders the selection as "row:col" strings in row-major order.
func cellSet(g *Grid) (out []string) {

	for _, ci := range g.SelectedCells() {
		out = append(out, fmt.Sprintf("%d:%d", ci.Row, ci.Column))
	}
	return
}

func keys(items []nt.Item) (out []string) {

	for _, item := range items {
		out = append(out, item.Key())
	}
	return
}

func sameStrings(a, b []string) bool {

	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func wantCause(t *testing.T, err, cause error) {
	t.Helper()

	if errors.Cause(err) != cause {
		t.Errorf("error = %v, want cause %v", err, cause)
	}
}

type changeLog struct {
	changes []SelectionChange
}

func logChanges(g *Grid) *changeLog {

	lg := &changeLog{}
	g.OnSelectionChanged(func(sc SelectionChange) {
		lg.changes = append(lg.changes, sc)
	})
	return lg
}

type fakeContainer struct {
	item     nt.Item
	selected bool
	cells    map[int]bool
	editing  int
	calls    int
}

func (fc *fakeContainer) Item() nt.Item { return fc.item }

func (fc *fakeContainer) SetSelected(selected bool) { fc.selected = selected }

func (fc *fakeContainer) SetCellSelected(col int, selected bool) {
	fc.calls++
	fc.cells[col] = selected
}

func (fc *fakeContainer) SetEditing(col int) { fc.editing = col }

// fakeHost materializes the rows in [first, first+count).
type fakeHost struct {
	coll  *edible.Collection
	first int
	count int
	built map[string]*fakeContainer
}

func newHost(coll *edible.Collection, first, count int) *fakeHost {
	return &fakeHost{coll: coll, first: first, count: count, built: map[string]*fakeContainer{}}
}

func (fh *fakeHost) ContainerFromIndex(index int) Container {

	if index < fh.first || index >= fh.first+fh.count || index >= fh.coll.Len() {
		return nil
	}

	item := fh.coll.At(index)
	fc, ok := fh.built[item.Key()]
	if !ok {
		fc = &fakeContainer{item: item, cells: map[int]bool{}, editing: -1}
		fh.built[item.Key()] = fc
	}
	return fc
}

func (fh *fakeHost) ContainerFromItem(item nt.Item) Container {

	idx := fh.coll.IndexOf(item)
	if idx < 0 {
		return nil
	}
	return fh.ContainerFromIndex(idx)
}

func (fh *fakeHost) IndexFromContainer(container Container) int {
	return fh.coll.IndexOf(container.Item())
}

func (fh *fakeHost) Realized() (out []Container) {

	for idx := fh.first; idx < fh.first+fh.count; idx++ {
		if container := fh.ContainerFromIndex(idx); container != nil {
			out = append(out, container)
		}
	}
	return
}

func (fh *fakeHost) container(row int) *fakeContainer {

	container := fh.ContainerFromIndex(row)
	if container == nil {
		return nil
	}
	return container.(*fakeContainer)
}

func (fh *fakeHost) resetCalls() {
	for _, fc := range fh.built {
		fc.calls = 0
	}
}
