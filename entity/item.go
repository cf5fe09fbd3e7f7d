package entity

// Item is a logical data item shown as one row of the grid.
// Identity is the key; the grid never holds containers or indices on the item itself.
type Item interface {
	Key() string
}

type placeholder struct{}

func (*placeholder) Key() string { return "\x00new-item-placeholder" }

func (*placeholder) String() string { return "{NewItemPlaceholder}" }

// Placeholder is the sentinel standing in for the "add new row" slot.
// Compare by reference: item == Placeholder.
var Placeholder Item = &placeholder{}

// IsPlaceholder reports whether item is the add-new sentinel.
func IsPlaceholder(item Item) bool {
	return item == Placeholder
}

// SameItem reports whether a and b denote the same logical item.
func SameItem(a, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if IsPlaceholder(a) || IsPlaceholder(b) {
		return a == b
	}
	return a.Key() == b.Key()
}
