package region

import (
	"slices"
	"sort"
)

// Set is a normalized collection of regions kept in row-major order.
// The zero value is an empty set ready to use.
type Set struct {
	regions []Region
	tallest int // height of the tallest region, bounds the Intersects scan
}

// New creates an empty set.
func New() *Set {
	return &Set{}
}

// AddRegion selects the rectangle, merging it with existing coverage.
func (s *Set) AddRegion(row, col, rows, cols int) {

	add := Region{Row: row, Col: col, Rows: rows, Cols: cols}
	if add.Empty() {
		return
	}

	pieces := []Region{add}
	for _, existing := range s.regions {
		var next []Region
		for _, piece := range pieces {
			next = append(next, piece.minus(existing)...)
		}
		pieces = next
		if len(pieces) == 0 {
			return // already covered
		}
	}

	s.regions = append(s.regions, pieces...)
	s.normalize()
}

// RemoveRegion unselects the rectangle, splitting regions it cuts through.
func (s *Set) RemoveRegion(row, col, rows, cols int) {

	cut := Region{Row: row, Col: col, Rows: rows, Cols: cols}
	if cut.Empty() || len(s.regions) == 0 {
		return
	}

	changed := false
	remaining := make([]Region, 0, len(s.regions))
	for _, existing := range s.regions {
		if _, ok := existing.intersect(cut); !ok {
			remaining = append(remaining, existing)
			continue
		}
		changed = true
		remaining = append(remaining, existing.minus(cut)...)
	}

	if !changed {
		return
	}
	s.regions = remaining
	s.normalize()
}

// Contains reports whether the cell is selected.
func (s *Set) Contains(row, col int) bool {

	for _, span := range s.Intersects(row) {
		if col >= span.Start && col < span.End() {
			return true
		}
	}
	return false
}

// ContainsRow reports whether every column in [0, cols) of row is selected.
func (s *Set) ContainsRow(row, cols int) bool {

	if cols <= 0 {
		return false
	}
	spans := s.Intersects(row)
	return len(spans) == 1 && spans[0].Start == 0 && spans[0].Count >= cols
}

// Intersects returns the selected column spans of row, ordered and coalesced.
// Only regions starting within the tallest region's height above row are visited.
func (s *Set) Intersects(row int) (spans []Span) {

	// first region starting below row
	end := sort.Search(len(s.regions), func(i int) bool {
		return s.regions[i].Row > row
	})

	for i := end - 1; i >= 0; i-- {
		rgn := s.regions[i]
		if rgn.Row+s.tallest <= row {
			break
		}
		if row < rgn.RowEnd() {
			spans = append(spans, Span{Start: rgn.Col, Count: rgn.Cols})
		}
	}

	if len(spans) < 2 {
		return
	}

	slices.SortFunc(spans, func(a, b Span) int { return a.Start - b.Start })
	merged := spans[:1]
	for _, span := range spans[1:] {
		last := &merged[len(merged)-1]
		if span.Start <= last.End() {
			last.Count = max(last.End(), span.End()) - last.Start
			continue
		}
		merged = append(merged, span)
	}
	return merged
}

// Range returns the bounding box of the selection, inclusive on both ends.
// ok is false for an empty set.
func (s *Set) Range() (minCol, maxCol, minRow, maxRow int, ok bool) {

	if len(s.regions) == 0 {
		return -1, -1, -1, -1, false
	}

	first := s.regions[0]
	minCol, maxCol = first.Col, first.ColEnd()-1
	minRow, maxRow = first.Row, first.RowEnd()-1

	for _, rgn := range s.regions[1:] {
		minCol = min(minCol, rgn.Col)
		maxCol = max(maxCol, rgn.ColEnd()-1)
		minRow = min(minRow, rgn.Row)
		maxRow = max(maxRow, rgn.RowEnd()-1)
	}
	return minCol, maxCol, minRow, maxRow, true
}

// Clear empties the set.
func (s *Set) Clear() {
	s.regions = nil
	s.tallest = 0
}

// RemoveAllButOne keeps only the top-left cell of the first region.
func (s *Set) RemoveAllButOne() (row, col int, ok bool) {

	if len(s.regions) == 0 {
		return -1, -1, false
	}

	first := s.regions[0]
	s.regions = []Region{{Row: first.Row, Col: first.Col, Rows: 1, Cols: 1}}
	s.tallest = 1
	return first.Row, first.Col, true
}

// RemoveAllButOneAt keeps only the given cell, provided it is selected.
// Otherwise it behaves as RemoveAllButOne.
func (s *Set) RemoveAllButOneAt(row, col int) (keptRow, keptCol int, ok bool) {

	if !s.Contains(row, col) {
		return s.RemoveAllButOne()
	}

	s.regions = []Region{{Row: row, Col: col, Rows: 1, Cols: 1}}
	s.tallest = 1
	return row, col, true
}

// IsEmpty reports whether nothing is selected.
func (s *Set) IsEmpty() bool {
	return len(s.regions) == 0
}

// Len returns the number of stored regions.
func (s *Set) Len() int {
	return len(s.regions)
}

// Count returns the number of selected cells.
func (s *Set) Count() (count int) {
	for _, rgn := range s.regions {
		count += rgn.Count()
	}
	return
}

// Regions returns a copy of the stored regions in row-major order.
func (s *Set) Regions() []Region {
	return slices.Clone(s.regions)
}

// Cells visits every selected cell region by region until fn returns false.
func (s *Set) Cells(fn func(row, col int) bool) {

	for _, rgn := range s.regions {
		for row := rgn.Row; row < rgn.RowEnd(); row++ {
			for col := rgn.Col; col < rgn.ColEnd(); col++ {
				if !fn(row, col) {
					return
				}
			}
		}
	}
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	return &Set{
		regions: slices.Clone(s.regions),
		tallest: s.tallest,
	}
}

// Equal reports whether both sets cover exactly the same cells.
func (s *Set) Equal(o *Set) bool {
	return Xor(s, o).IsEmpty()
}

// normalize merges adjacent regions until stable and restores row-major order.
func (s *Set) normalize() {

	regions := s.regions
	for merged := true; merged; {
		merged = false
	scan:
		for i := 0; i < len(regions); i++ {
			for j := i + 1; j < len(regions); j++ {
				joined, ok := regions[i].merge(regions[j])
				if !ok {
					continue
				}
				regions[i] = joined
				regions = slices.Delete(regions, j, j+1)
				merged = true
				break scan
			}
		}
	}

	slices.SortFunc(regions, func(a, b Region) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		}
		return 0
	})

	s.tallest = 0
	for _, rgn := range regions {
		s.tallest = max(s.tallest, rgn.Rows)
	}
	s.regions = regions
}
