package region

import "testing"

func TestXorCancelsOut(t *testing.T) {
	before := New()
	before.AddRegion(0, 0, 2, 2)

	after := before.Clone()
	after.AddRegion(5, 0, 1, 3)
	after.RemoveRegion(5, 0, 1, 3)

	if diff := Xor(before, after); !diff.IsEmpty() {
		t.Errorf("select then unselect should cancel, got %v", diff.Regions())
	}
}

func TestDelta(t *testing.T) {
	before := New()
	before.AddRegion(0, 0, 3, 3)

	after := New()
	after.AddRegion(2, 0, 3, 3)

	added, removed := Delta(before, after)

	if added.Count() != 6 || !added.Contains(3, 0) || added.Contains(2, 0) {
		t.Errorf("unexpected added %v", added.Regions())
	}
	if removed.Count() != 6 || !removed.Contains(0, 0) || removed.Contains(2, 2) {
		t.Errorf("unexpected removed %v", removed.Regions())
	}
}

func TestIntersectAndUnion(t *testing.T) {
	a := New()
	a.AddRegion(0, 0, 4, 4)
	b := New()
	b.AddRegion(2, 2, 4, 4)

	if got := Intersect(a, b).Count(); got != 4 {
		t.Errorf("expected 4 common cells, got %d", got)
	}
	if got := Union(a, b).Count(); got != 28 {
		t.Errorf("expected 28 cells in union, got %d", got)
	}
	if got := Subtract(a, b).Count(); got != 12 {
		t.Errorf("expected 12 cells in difference, got %d", got)
	}
}

func TestInsertRows(t *testing.T) {
	s := New()
	s.AddRegion(1, 0, 4, 2)
	s.InsertRows(3, 2)

	for _, row := range []int{1, 2, 5, 6} {
		if !s.Contains(row, 1) {
			t.Errorf("row %d should stay selected", row)
		}
	}
	for _, row := range []int{0, 3, 4, 7} {
		if s.Contains(row, 1) {
			t.Errorf("row %d should not be selected", row)
		}
	}
}

func TestRemoveRows(t *testing.T) {
	s := New()
	s.AddRegion(1, 0, 4, 2)
	s.AddRegion(8, 0, 1, 1)
	s.RemoveRows(2, 2)

	if s.Count() != 5 {
		t.Errorf("expected 5 cells left, got %d", s.Count())
	}
	if !s.Contains(1, 0) || !s.Contains(2, 1) || s.Contains(3, 0) || !s.Contains(6, 0) {
		t.Errorf("unexpected regions after removal %v", s.Regions())
	}
	if s.Len() != 2 {
		t.Errorf("rows around the cut should merge back, got %v", s.Regions())
	}
}

func TestColumnShifts(t *testing.T) {
	s := New()
	s.AddRegion(0, 1, 2, 3)

	s.InsertColumns(2, 1)
	if !s.Contains(0, 1) || s.Contains(0, 2) || !s.Contains(1, 4) {
		t.Errorf("unexpected regions after insert %v", s.Regions())
	}

	s.RemoveColumns(2, 1)
	if s.Len() != 1 || s.Count() != 6 {
		t.Errorf("expected original region back, got %v", s.Regions())
	}
}
