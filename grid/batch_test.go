package grid

import (
	"testing"
)

func TestBatchRaisesOneNetChange(t *testing.T) {

	g, coll := fixture(5, nil)
	lg := logChanges(g)

	g.Batch(func() {
		g.MakeCellSelection(at(coll, 0, 0), false, true)
		g.MakeCellSelection(at(coll, 1, 1), false, true)
		g.MakeCellSelection(at(coll, 2, 2), false, true)
		g.MakeCellSelection(at(coll, 1, 1), false, true)
	})

	if len(lg.changes) != 1 {
		t.Fatalf("got %d events, want 1", len(lg.changes))
	}

	added := lg.changes[0].AddedCells
	if len(added) != 2 || added[0].Row != 0 || added[1].Row != 2 {
		t.Errorf("added = %+v, want 0:0 and 2:2", added)
	}
	if len(lg.changes[0].RemovedCells) != 0 {
		t.Errorf("removed = %+v, want none", lg.changes[0].RemovedCells)
	}
}

func TestBatchNetZeroIsSilent(t *testing.T) {

	g, coll := fixture(3, nil)
	lg := logChanges(g)

	g.Batch(func() {
		g.MakeCellSelection(at(coll, 1, 1), false, false)
		g.UnselectAll()
	})

	if len(lg.changes) != 0 {
		t.Errorf("got %d events for a net-zero batch", len(lg.changes))
	}
}

func TestNestedBatches(t *testing.T) {

	g, coll := fixture(3, nil)
	lg := logChanges(g)

	g.Batch(func() {
		g.Batch(func() {
			g.MakeCellSelection(at(coll, 0, 0), false, false)
		})
		if len(lg.changes) != 0 {
			t.Errorf("inner batch raised before the outer one ended")
		}
		g.MakeCellSelection(at(coll, 1, 0), false, true)
	})

	if len(lg.changes) != 1 || len(lg.changes[0].AddedCells) != 2 {
		t.Errorf("events = %+v", lg.changes)
	}
}

func TestBatchEndsOnPanic(t *testing.T) {

	g, coll := fixture(3, nil)
	lg := logChanges(g)

	func() {
		defer func() { recover() }()
		g.Batch(func() {
			g.MakeCellSelection(at(coll, 2, 1), false, false)
			panic("boom")
		})
	}()

	if g.InBatch() {
		t.Errorf("batch still open after panic")
	}
	if len(lg.changes) != 1 {
		t.Errorf("got %d events, want 1", len(lg.changes))
	}

	g.MakeCellSelection(at(coll, 0, 1), false, false)
	if len(lg.changes) != 2 {
		t.Errorf("selection after panic raised %d events in total, want 2", len(lg.changes))
	}
}

func TestScopeEndIsIdempotent(t *testing.T) {

	g, _ := fixture(2, nil)

	outer := g.beginBatch()
	inner := g.beginBatch()
	inner.End()
	inner.End()

	if !g.InBatch() {
		t.Errorf("double End closed the outer scope")
	}
	outer.End()
	if g.InBatch() {
		t.Errorf("batch still open")
	}
}

func TestRefreshTargetsChangedCells(t *testing.T) {

	g, coll := fixture(10, nil)
	host := newHost(coll, 0, 5)
	g.SetContainers(host)
	host.resetCalls()

	g.MakeCellSelection(at(coll, 1, 1), false, false)

	calls := 0
	for _, fc := range host.built {
		calls += fc.calls
	}
	if calls != 1 {
		t.Errorf("got %d cell flag updates, want 1", calls)
	}
	if !host.container(1).cells[1] {
		t.Errorf("container flag not set")
	}
}

func TestRefreshSweepsOnLargeChange(t *testing.T) {

	g, coll := fixture(10, nil, WithUnit(FullRowUnit))
	host := newHost(coll, 2, 5)
	g.SetContainers(host)
	host.resetCalls()

	g.SelectAll()

	for row := 2; row < 7; row++ {
		fc := host.container(row)
		if fc.calls != 3 || !fc.selected {
			t.Errorf("row %d: %d updates, selected %t", row, fc.calls, fc.selected)
		}
		for col := 0; col < 3; col++ {
			if !fc.cells[col] {
				t.Errorf("row %d col %d flag not set", row, col)
			}
		}
	}
	if host.container(7) != nil {
		t.Errorf("row 7 should not be materialized")
	}

	g.UnselectAll()
	if host.container(3).selected || host.container(3).cells[0] {
		t.Errorf("flags not cleared")
	}
}
