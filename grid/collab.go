package grid

import (
	nt "grille/entity"
	"grille/locate"
)

// Collection is the backing data sequence the grid displays but does not own.
type Collection interface {
	// Len returns the number of items, placeholder included.
	Len() int
	// At returns the item at index, or nil when out of range.
	At(index int) nt.Item
	// IndexOf scans for item by identity, -1 when absent.
	IndexOf(item nt.Item) int
	// Subscribe registers for structural change notifications.
	Subscribe(fn func(locate.Change))
}

// EditableCollection is a Collection that supports row transactions and adding rows.
// Errors from the commit paths and SetValue are validation failures.
type EditableCollection interface {
	Collection

	CanAddNew() bool
	AddNew() (item nt.Item, err error)
	CommitNew() (err error)
	CancelNew() (err error)

	EditItem(item nt.Item) (err error)
	CommitEdit() (err error)
	CancelEdit() (err error)
	CanCancelEdit() bool

	CurrentAddItem() nt.Item
	CurrentEditItem() nt.Item
	PlaceholderPosition() nt.PlaceholderPosition

	// Value returns the value shown in display column col of item.
	Value(item nt.Item, col int) nt.Value
	// SetValue pushes an edited cell value into item.
	SetValue(item nt.Item, col int, value nt.Value) (err error)
}

// Container is a materialized row. It holds its item by identity only.
type Container interface {
	Item() nt.Item
	SetSelected(selected bool)
	SetCellSelected(col int, selected bool)
	// SetEditing marks col as the cell under edit, -1 for none.
	SetEditing(col int)
}

// Containers is the virtualizing host: only some rows are materialized at a time.
type Containers interface {
	ContainerFromItem(item nt.Item) Container
	ContainerFromIndex(index int) Container
	IndexFromContainer(container Container) int
	Realized() []Container
}
