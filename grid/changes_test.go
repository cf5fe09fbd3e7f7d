package grid

import (
	"testing"

	"grille/edible"
	nt "grille/entity"
)

func TestRemoveShiftsSelection(t *testing.T) {

	g, coll := fixture(5, nil, WithUnit(FullRowUnit))
	g.SelectItem(coll.At(3))

	if err := coll.RemoveAt(1); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}

	if got := keys(g.SelectedItems()); !sameStrings(got, []string{"r3"}) {
		t.Errorf("items = %v", got)
	}
	if !g.IsCellSelected(2, 0) || g.IsCellSelected(3, 0) {
		t.Errorf("selection did not follow r3 to row 2: %v", cellSet(g))
	}
}

func TestRemoveSelectedRowReportsIt(t *testing.T) {

	g, coll := fixture(5, nil, WithUnit(FullRowUnit))
	g.SelectItem(coll.At(1))
	g.SelectItem(coll.At(2))
	lg := logChanges(g)

	if err := coll.RemoveAt(1); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}

	if len(lg.changes) != 1 {
		t.Fatalf("got %d events, want 1", len(lg.changes))
	}
	change := lg.changes[0]
	if got := keys(change.RemovedItems); !sameStrings(got, []string{"r1"}) {
		t.Errorf("removed items = %v", got)
	}
	if len(change.RemovedCells) != 3 || change.RemovedCells[0].Item.Key() != "r1" {
		t.Errorf("removed cells = %+v", change.RemovedCells)
	}
	if len(change.AddedCells) != 0 {
		t.Errorf("shift reported as added cells: %+v", change.AddedCells)
	}
	if !g.IsCellSelected(1, 0) || g.SelectedCellCount() != 3 {
		t.Errorf("r2 selection not at row 1: %v", cellSet(g))
	}
}

func TestInsertShiftsSelectionAndCurrent(t *testing.T) {

	g, coll := fixture(4, nil)
	g.HandleCellInput(at(coll, 2, 1), false, false)
	lg := logChanges(g)

	coll.Insert(0, &nt.Row{Id: "new"})

	if got := cellSet(g); !sameStrings(got, []string{"3:1"}) {
		t.Errorf("selection = %v, want [3:1]", got)
	}
	if cur := g.CurrentCell(); cur.Row != 3 || cur.Item.Key() != "r2" {
		t.Errorf("current = %+v", cur)
	}
	if anchor := g.Anchor(); anchor.Row != 3 {
		t.Errorf("anchor row = %d, want 3", anchor.Row)
	}
	if len(lg.changes) != 0 {
		t.Errorf("a pure shift raised %d events", len(lg.changes))
	}
}

func TestMoveCarriesSelection(t *testing.T) {

	g, coll := fixture(5, nil)
	g.HandleCellInput(at(coll, 0, 2), false, false)

	if err := coll.Move(0, 3); err != nil {
		t.Fatalf("Move: %v", err)
	}

	if got := cellSet(g); !sameStrings(got, []string{"3:2"}) {
		t.Errorf("selection = %v, want [3:2]", got)
	}
	if cur := g.CurrentCell(); cur.Row != 3 {
		t.Errorf("current row = %d, want 3", cur.Row)
	}
}

func TestResetKeepsSurvivingRows(t *testing.T) {

	g, coll := fixture(4, nil, WithUnit(FullRowUnit))
	g.SelectItem(coll.At(1))
	g.SelectItem(coll.At(3))

	rows := coll.Rows()
	coll.Reset([]*nt.Row{rows[3], {Id: "fresh"}, rows[0]})

	if got := keys(g.SelectedItems()); !sameStrings(got, []string{"r3"}) {
		t.Errorf("items = %v, want [r3]", got)
	}
	if got := cellSet(g); !sameStrings(got, []string{"0:0", "0:1", "0:2"}) {
		t.Errorf("selection = %v", got)
	}
}

func TestPendingSelectionFlushed(t *testing.T) {

	g, coll := fixture(3, nil, WithUnit(FullRowUnit))
	late := &nt.Row{Id: "late"}

	if err := g.SelectItem(late); err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	if g.PendingSelections() != 1 || !g.IsRowSelected(late) {
		t.Fatalf("selection of an unknown item not parked")
	}

	coll.Append(late)

	if g.PendingSelections() != 0 {
		t.Errorf("pending selection not flushed")
	}
	if !g.IsCellSelected(3, 0) || !g.IsRowSelected(late) {
		t.Errorf("late row not selected: %v", cellSet(g))
	}
}

func TestPlaceholderAtBeginningIndexing(t *testing.T) {

	g, coll := fixture(3, []edible.Option{edible.WithPlaceholder(nt.PlaceholderAtBeginning)})
	g.HandleCellInput(at(coll, 2, 0), false, false)

	coll.SetPlaceholder(nt.PlaceholderNone)

	if cur := g.CurrentCell(); cur.Row != 1 || cur.Item.Key() != "r1" {
		t.Errorf("current = %+v, want r1 at row 1", cur)
	}
}

func TestColumnInsertAndRemove(t *testing.T) {

	g, coll := fixture(3, nil, WithUnit(CellOrRowHeaderUnit))
	g.SelectItem(coll.At(1))
	g.MakeCellSelection(at(coll, 0, 2), false, true)

	if err := g.InsertColumn(1, nt.Column{Field: "extra"}); err != nil {
		t.Fatalf("InsertColumn: %v", err)
	}
	for col := 0; col < 4; col++ {
		if !g.IsCellSelected(1, col) {
			t.Errorf("selected row lost cell 1:%d", col)
		}
	}
	if !g.IsCellSelected(0, 3) || g.IsCellSelected(0, 2) {
		t.Errorf("cell 0:2 did not shift to 0:3: %v", cellSet(g))
	}

	lg := logChanges(g)
	if err := g.RemoveColumn(3); err != nil {
		t.Fatalf("RemoveColumn: %v", err)
	}

	if len(g.Columns()) != 3 || g.IsCellSelected(0, 3) {
		t.Errorf("column not removed: %v", cellSet(g))
	}
	if len(lg.changes) != 1 {
		t.Fatalf("got %d events, want 1", len(lg.changes))
	}
	removed := lg.changes[0].RemovedCells
	if len(removed) != 2 || removed[0].Row != 0 || removed[1].Row != 1 {
		t.Errorf("removed = %+v, want cells of column 3 in rows 0 and 1", removed)
	}

	wantCause(t, g.RemoveColumn(3), ErrInvalidArgument)
	wantCause(t, g.InsertColumn(5, nt.Column{}), ErrInvalidArgument)
}

func TestContainerRegeneration(t *testing.T) {

	g, coll := fixture(10, nil)
	host := newHost(coll, 0, 3)
	g.SetContainers(host)

	g.MakeCellSelection(at(coll, 6, 1), false, false)

	host.first = 5
	g.OnContainersRegenerated()

	if !host.container(6).cells[1] || host.container(5).cells[1] {
		t.Errorf("regenerated containers not synced")
	}
	if g.IndexOf(coll.At(6)) != 6 {
		t.Errorf("lookup through containers = %d", g.IndexOf(coll.At(6)))
	}
}

func TestResetReordersWithoutEvent(t *testing.T) {

	g, coll := fixture(4, nil, WithUnit(FullRowUnit))
	g.SelectItem(coll.At(1))
	lg := logChanges(g)

	rows := coll.Rows()
	coll.Reset([]*nt.Row{rows[3], rows[2], rows[1], rows[0]})

	if len(lg.changes) != 0 {
		t.Errorf("got %d events for an unchanged selection: %+v", len(lg.changes), lg.changes)
	}
	if got := keys(g.SelectedItems()); !sameStrings(got, []string{"r1"}) {
		t.Errorf("items = %v, want [r1]", got)
	}
	if got := cellSet(g); !sameStrings(got, []string{"2:0", "2:1", "2:2"}) {
		t.Errorf("selection = %v", got)
	}
}

func TestResetReportsLostRows(t *testing.T) {

	g, coll := fixture(4, nil, WithUnit(FullRowUnit))
	g.SelectItem(coll.At(1))
	g.SelectItem(coll.At(3))
	lg := logChanges(g)

	rows := coll.Rows()
	coll.Reset([]*nt.Row{rows[3], {Id: "fresh"}, rows[0]})

	if len(lg.changes) != 1 {
		t.Fatalf("got %d events, want 1", len(lg.changes))
	}
	sc := lg.changes[0]

	if len(sc.AddedCells) != 0 || len(sc.AddedItems) != 0 {
		t.Errorf("added %d cells %v items, want none", len(sc.AddedCells), keys(sc.AddedItems))
	}
	if got := keys(sc.RemovedItems); !sameStrings(got, []string{"r1"}) {
		t.Errorf("removed items = %v, want [r1]", got)
	}
	if len(sc.RemovedCells) != 3 {
		t.Fatalf("removed %d cells, want 3", len(sc.RemovedCells))
	}
	for _, ci := range sc.RemovedCells {
		if ci.Item == nil || ci.Item.Key() != "r1" || ci.Row != 1 {
			t.Errorf("removed cell %+v, want r1 at its old row 1", ci)
		}
	}
}

func TestResetDropsCellsOfSurvivors(t *testing.T) {

	g, coll := fixture(4, nil)
	if err := g.HandleCellInput(at(coll, 2, 1), false, false); err != nil {
		t.Fatalf("HandleCellInput: %v", err)
	}
	lg := logChanges(g)

	rows := coll.Rows()
	coll.Reset([]*nt.Row{rows[2], rows[0]})

	if len(lg.changes) != 1 {
		t.Fatalf("got %d events, want 1", len(lg.changes))
	}
	removed := lg.changes[0].RemovedCells
	if len(removed) != 1 || removed[0].Row != 0 || removed[0].Column != 1 || removed[0].Item.Key() != "r2" {
		t.Errorf("removed = %+v, want r2 at its new row 0", removed)
	}
	if g.SelectedCellCount() != 0 {
		t.Errorf("selection = %v, want empty", cellSet(g))
	}
}
