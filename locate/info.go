package locate

import nt "grille/entity"

// Info is a tracked handle on a logical item: the item plus its best-known index.
// It never references a container; those are looked up on demand.
type Info struct {
	item       nt.Item
	index      int
	generation uint64
	loc        *Locator
	released   bool
}

// Item returns the tracked item.
func (info *Info) Item() nt.Item {
	if info == nil {
		return nil
	}
	return info.item
}

// Index returns the current index, re-resolving if the locator moved on since the
// last resolution. -1 means unresolved.
func (info *Info) Index() int {

	if info == nil {
		return -1
	}
	if !info.released && info.generation != info.loc.generation {
		info.refresh()
	}
	return info.index
}

// Resolved reports whether the item currently has an index.
func (info *Info) Resolved() bool {
	return info.Index() >= 0
}

// Is reports whether info tracks item.
func (info *Info) Is(item nt.Item) bool {
	return info != nil && nt.SameItem(info.item, item)
}

// Invalidate forces the next read to rescan.
func (info *Info) Invalidate() {
	if info != nil {
		info.generation = 0
	}
}

func (info *Info) refresh() {
	info.index = info.loc.Lookup(info.item)
	info.generation = info.loc.generation
}
