package table

import (
	nt "grille/entity"
	"grille/grid"
)

// box is a materialized row. It holds its item by identity and the flags the grid
// pushes to it; rendering reads the flags.
type box struct {
	item     nt.Item
	selected bool
	cells    []bool
	editing  int
}

func (bx *box) Item() nt.Item { return bx.item }

func (bx *box) SetSelected(selected bool) { bx.selected = selected }

func (bx *box) SetCellSelected(col int, selected bool) {
	if col >= len(bx.cells) {
		bx.cells = append(bx.cells, make([]bool, col-len(bx.cells)+1)...)
	}
	bx.cells[col] = selected
}

func (bx *box) SetEditing(col int) { bx.editing = col }

func (bx *box) cellSelected(col int) bool {
	return bx.selected || (col < len(bx.cells) && bx.cells[col])
}

// page materializes the visible rows and is the grid's container collaborator.
// It is shared by pointer between copies of the panel.
type page struct {
	rows       func(index int) nt.Item
	offset     int
	boxes      []*box
	generation uint64
	pending    bool // a realize is scheduled
}

// realize rebuilds the boxes for size rows starting at offset.
func (pg *page) realize(offset, size int, count int, generation uint64) {

	pg.offset = offset
	pg.generation = generation
	pg.boxes = pg.boxes[:0]

	for idx := offset; idx < offset+size && idx < count; idx++ {
		item := pg.rows(idx)
		if item == nil {
			break
		}
		pg.boxes = append(pg.boxes, &box{item: item, editing: -1})
	}
}

// ContainerFromIndex returns the box at index when it is materialized and current.
func (pg *page) ContainerFromIndex(index int) grid.Container {

	bx := pg.boxAt(index)
	if bx == nil {
		return nil
	}
	return bx
}

// ContainerFromItem returns the box holding item.
func (pg *page) ContainerFromItem(item nt.Item) grid.Container {

	for i, bx := range pg.boxes {
		if nt.SameItem(bx.item, item) && pg.live(i) {
			return bx
		}
	}
	return nil
}

// IndexFromContainer returns the row index of a box, -1 when it went stale.
func (pg *page) IndexFromContainer(container grid.Container) int {

	for i, bx := range pg.boxes {
		if bx == container && pg.live(i) {
			return pg.offset + i
		}
	}
	return -1
}

// Realized returns the materialized boxes.
func (pg *page) Realized() []grid.Container {

	out := make([]grid.Container, len(pg.boxes))
	for i, bx := range pg.boxes {
		out[i] = bx
	}
	return out
}

func (pg *page) boxAt(index int) *box {

	i := index - pg.offset
	if i < 0 || i >= len(pg.boxes) || !pg.live(i) {
		return nil
	}
	return pg.boxes[i]
}

// live reports whether box i still shows the item at its row; boxes go stale when the
// collection shifts before the page is realized again.
func (pg *page) live(i int) bool {
	return nt.SameItem(pg.boxes[i].item, pg.rows(pg.offset+i))
}
