// Package region stores a set of selected cells as normalized rectangles.
//
// Rectangles never overlap and adjacent rectangles with identical spans are merged,
// so the set stays proportional to the number of selection gestures rather than the
// number of selected cells. All extents are trusted: the caller clamps, and degenerate
// (empty) rectangles are ignored.
package region

// Region is a rectangle of rows [Row, Row+Rows) by columns [Col, Col+Cols).
type Region struct {
	Row  int
	Col  int
	Rows int
	Cols int
}

// Span is a column range [Start, Start+Count).
type Span struct {
	Start int
	Count int
}

// End returns the exclusive end of the span.
func (sp Span) End() int {
	return sp.Start + sp.Count
}

// RowEnd returns the exclusive last row.
func (r Region) RowEnd() int {
	return r.Row + r.Rows
}

// ColEnd returns the exclusive last column.
func (r Region) ColEnd() int {
	return r.Col + r.Cols
}

// Empty reports whether the region covers no cells.
func (r Region) Empty() bool {
	return r.Rows <= 0 || r.Cols <= 0
}

// Contains reports whether the cell lies inside the region.
func (r Region) Contains(row, col int) bool {
	return row >= r.Row && row < r.RowEnd() && col >= r.Col && col < r.ColEnd()
}

// Count returns the number of cells covered.
func (r Region) Count() int {
	if r.Empty() {
		return 0
	}
	return r.Rows * r.Cols
}

func (r Region) intersect(o Region) (Region, bool) {

	row := max(r.Row, o.Row)
	col := max(r.Col, o.Col)
	rowEnd := min(r.RowEnd(), o.RowEnd())
	colEnd := min(r.ColEnd(), o.ColEnd())

	if row >= rowEnd || col >= colEnd {
		return Region{}, false
	}
	return Region{Row: row, Col: col, Rows: rowEnd - row, Cols: colEnd - col}, true
}

// minus returns the parts of r not covered by o: at most a top band, a bottom band
// and the left and right pieces beside the overlap.
func (r Region) minus(o Region) []Region {

	in, ok := r.intersect(o)
	if !ok {
		return []Region{r}
	}

	pieces := make([]Region, 0, 4)
	keep := func(piece Region) {
		if !piece.Empty() {
			pieces = append(pieces, piece)
		}
	}

	keep(Region{Row: r.Row, Col: r.Col, Rows: in.Row - r.Row, Cols: r.Cols})
	keep(Region{Row: in.RowEnd(), Col: r.Col, Rows: r.RowEnd() - in.RowEnd(), Cols: r.Cols})
	keep(Region{Row: in.Row, Col: r.Col, Rows: in.Rows, Cols: in.Col - r.Col})
	keep(Region{Row: in.Row, Col: in.ColEnd(), Rows: in.Rows, Cols: r.ColEnd() - in.ColEnd()})

	return pieces
}

// merge joins two non-overlapping regions that share an edge of identical length.
func (r Region) merge(o Region) (Region, bool) {

	if r.Col == o.Col && r.Cols == o.Cols {
		switch {
		case r.RowEnd() == o.Row:
			return Region{Row: r.Row, Col: r.Col, Rows: r.Rows + o.Rows, Cols: r.Cols}, true
		case o.RowEnd() == r.Row:
			return Region{Row: o.Row, Col: r.Col, Rows: r.Rows + o.Rows, Cols: r.Cols}, true
		}
	}

	if r.Row == o.Row && r.Rows == o.Rows {
		switch {
		case r.ColEnd() == o.Col:
			return Region{Row: r.Row, Col: r.Col, Rows: r.Rows, Cols: r.Cols + o.Cols}, true
		case o.ColEnd() == r.Col:
			return Region{Row: r.Row, Col: o.Col, Rows: r.Rows, Cols: r.Cols + o.Cols}, true
		}
	}

	return Region{}, false
}

func less(a, b Region) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
