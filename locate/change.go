package locate

import nt "grille/entity"

// Action is the kind of structural mutation applied to the backing sequence.
type Action int

const (
	Add Action = iota
	Remove
	Replace
	Move
	Reset
)

func (act Action) String() string {
	switch act {
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Replace:
		return "replace"
	case Move:
		return "move"
	case Reset:
		return "reset"
	}
	return "unknown"
}

// Change describes one mutation of the backing sequence.
// Index is where items were added, removed or replaced, or the destination of a move.
type Change struct {
	Action   Action
	Index    int
	OldIndex int       // source of a move
	Count    int       // zero means one
	Items    []nt.Item // items added, removed or moved, when known
}

// N returns the number of items affected.
func (chg Change) N() int {
	if chg.Count <= 0 {
		return 1
	}
	return chg.Count
}

// Inserted returns an Add change for items at index.
func Inserted(index int, items ...nt.Item) Change {
	return Change{Action: Add, Index: index, Count: len(items), Items: items}
}

// Removed returns a Remove change for items formerly at index.
func Removed(index int, items ...nt.Item) Change {
	return Change{Action: Remove, Index: index, Count: len(items), Items: items}
}

// Moved returns a Move change of one item from oldIndex to index.
func Moved(oldIndex, index int, item nt.Item) Change {
	return Change{Action: Move, Index: index, OldIndex: oldIndex, Count: 1, Items: []nt.Item{item}}
}

// Replaced returns a Replace change at index.
func Replaced(index int, item nt.Item) Change {
	return Change{Action: Replace, Index: index, Count: 1, Items: []nt.Item{item}}
}

// Refreshed returns a Reset change: the whole sequence may differ.
func Refreshed() Change {
	return Change{Action: Reset}
}
