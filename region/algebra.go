package region

// Union returns the cells in either set.
func Union(a, b *Set) *Set {

	out := a.Clone()
	for _, rgn := range b.regions {
		out.AddRegion(rgn.Row, rgn.Col, rgn.Rows, rgn.Cols)
	}
	return out
}

// Subtract returns the cells of a not in b.
func Subtract(a, b *Set) *Set {

	out := a.Clone()
	for _, rgn := range b.regions {
		out.RemoveRegion(rgn.Row, rgn.Col, rgn.Rows, rgn.Cols)
	}
	return out
}

// Intersect returns the cells in both sets.
func Intersect(a, b *Set) *Set {

	out := New()
	for _, ra := range a.regions {
		for _, rb := range b.regions {
			if in, ok := ra.intersect(rb); ok {
				out.AddRegion(in.Row, in.Col, in.Rows, in.Cols)
			}
		}
	}
	return out
}

// Xor returns the symmetric difference: cells in exactly one of the sets.
// Selecting then unselecting a cell within one batch leaves it out of the result.
func Xor(a, b *Set) *Set {

	out := Subtract(a, b)
	for _, rgn := range Subtract(b, a).regions {
		out.AddRegion(rgn.Row, rgn.Col, rgn.Rows, rgn.Cols)
	}
	return out
}

// Delta splits the change from before to after into added and removed cells.
func Delta(before, after *Set) (added, removed *Set) {

	diff := Xor(before, after)
	if diff.IsEmpty() {
		return diff, New()
	}
	return Intersect(diff, after), Intersect(diff, before)
}

// InsertRows shifts rows at or below at down by n.
// A region spanning the insertion point is split; inserted rows are unselected.
func (s *Set) InsertRows(at, n int) {

	if n <= 0 || len(s.regions) == 0 {
		return
	}

	out := make([]Region, 0, len(s.regions)+1)
	for _, rgn := range s.regions {
		switch {
		case rgn.Row >= at:
			rgn.Row += n
			out = append(out, rgn)
		case rgn.RowEnd() > at:
			above := rgn
			above.Rows = at - rgn.Row
			below := rgn
			below.Row = at + n
			below.Rows = rgn.RowEnd() - at
			out = append(out, above, below)
		default:
			out = append(out, rgn)
		}
	}

	s.regions = out
	s.normalize()
}

// RemoveRows drops rows [at, at+n) and shifts rows below them up.
func (s *Set) RemoveRows(at, n int) {

	if n <= 0 || len(s.regions) == 0 {
		return
	}

	out := make([]Region, 0, len(s.regions))
	for _, rgn := range s.regions {
		for _, piece := range rgn.minus(Region{Row: at, Col: rgn.Col, Rows: n, Cols: rgn.Cols}) {
			if piece.Row >= at {
				piece.Row -= n
			}
			out = append(out, piece)
		}
	}

	s.regions = out
	s.normalize()
}

// InsertColumns shifts columns at or right of at by n, splitting spanning regions.
func (s *Set) InsertColumns(at, n int) {

	if n <= 0 || len(s.regions) == 0 {
		return
	}

	out := make([]Region, 0, len(s.regions)+1)
	for _, rgn := range s.regions {
		switch {
		case rgn.Col >= at:
			rgn.Col += n
			out = append(out, rgn)
		case rgn.ColEnd() > at:
			left := rgn
			left.Cols = at - rgn.Col
			right := rgn
			right.Col = at + n
			right.Cols = rgn.ColEnd() - at
			out = append(out, left, right)
		default:
			out = append(out, rgn)
		}
	}

	s.regions = out
	s.normalize()
}

// RemoveColumns drops columns [at, at+n) and shifts columns right of them left.
func (s *Set) RemoveColumns(at, n int) {

	if n <= 0 || len(s.regions) == 0 {
		return
	}

	out := make([]Region, 0, len(s.regions))
	for _, rgn := range s.regions {
		for _, piece := range rgn.minus(Region{Row: rgn.Row, Col: at, Rows: rgn.Rows, Cols: n}) {
			if piece.Col >= at {
				piece.Col -= n
			}
			out = append(out, piece)
		}
	}

	s.regions = out
	s.normalize()
}
