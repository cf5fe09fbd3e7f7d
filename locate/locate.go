// Package locate maps logical items to their index in the backing sequence and keeps
// that mapping valid while the sequence is mutated underneath it.
//
// Tracked infos are repaired eagerly for inserts, removes and moves. A reset only bumps
// the generation counter; stale infos re-resolve by identity scan the next time their
// index is read.
package locate

import (
	nt "grille/entity"
)

// Lookup returns the index of item, or -1 when it cannot be found.
type Lookup func(item nt.Item) int

// Locator owns the tracked infos and the pending selection list for one grid.
type Locator struct {
	scan       Lookup // identity scan of the collection
	containers Lookup // materialized containers only, may be nil
	generation uint64
	tracked    map[*Info]struct{}
	pending    []Pending
}

// New creates a locator resolving by identity scan.
func New(scan Lookup) *Locator {
	return &Locator{
		scan:       scan,
		generation: 1,
		tracked:    map[*Info]struct{}{},
	}
}

// SetContainerLookup installs the fast path through materialized containers.
func (loc *Locator) SetContainerLookup(lookup Lookup) {
	loc.containers = lookup
}

// Generation returns the structural mutation counter.
func (loc *Locator) Generation() uint64 {
	return loc.generation
}

// Lookup resolves an item without tracking it.
// Materialized containers are asked first; an unmaterialized item falls back to a scan.
func (loc *Locator) Lookup(item nt.Item) int {

	if item == nil {
		return -1
	}
	if loc.containers != nil {
		if idx := loc.containers(item); idx >= 0 {
			return idx
		}
	}
	if loc.scan == nil {
		return -1
	}
	return loc.scan(item)
}

// Track starts tracking item. The index is resolved lazily on first read.
func (loc *Locator) Track(item nt.Item) *Info {

	info := &Info{item: item, index: -1, loc: loc}
	loc.tracked[info] = struct{}{}
	return info
}

// Resolve tracks item and resolves its index now.
func (loc *Locator) Resolve(item nt.Item) *Info {

	info := loc.Track(item)
	info.refresh()
	return info
}

// TrackAt tracks item at a known index, skipping the scan.
func (loc *Locator) TrackAt(item nt.Item, index int) *Info {

	info := loc.Track(item)
	info.index = index
	info.generation = loc.generation
	return info
}

// Release stops tracking info. Releasing nil or twice is harmless.
func (loc *Locator) Release(info *Info) {

	if info == nil {
		return
	}
	delete(loc.tracked, info)
	info.released = true
}

// Tracked returns the number of live infos.
func (loc *Locator) Tracked() int {
	return len(loc.tracked)
}

// Known maps the indices the current generation still vouches for to their items,
// without rescanning. Read before Adjust it describes the sequence as it was.
func (loc *Locator) Known() map[int]nt.Item {

	known := make(map[int]nt.Item, len(loc.tracked))
	for info := range loc.tracked {
		if info.generation == loc.generation && info.index >= 0 {
			known[info.index] = info.item
		}
	}
	return known
}

// Adjust repairs tracked indices after a structural mutation.
func (loc *Locator) Adjust(change Change) {

	prev := loc.generation
	loc.generation++
	n := change.N()

	if change.Action == Reset {
		for info := range loc.tracked {
			info.index = -1 // generation left stale: rescan on next read
		}
		return
	}

	for info := range loc.tracked {
		if info.generation != prev {
			continue // already stale, will rescan
		}
		info.generation = loc.generation

		idx := info.index
		switch change.Action {
		case Add:
			if idx >= change.Index {
				info.index = idx + n
			} else if idx < 0 {
				info.index = found(info.item, change.Items, change.Index)
			}

		case Remove:
			switch {
			case idx >= change.Index+n:
				info.index = idx - n
			case idx >= change.Index:
				info.index = -1
			}

		case Replace:
			if idx >= change.Index && idx < change.Index+n {
				info.index = -1
			}
			if info.index < 0 {
				info.index = found(info.item, change.Items, change.Index)
			}

		case Move:
			info.index = moved(idx, change.OldIndex, change.Index, n)
		}
	}
}

// AdjustForContainerRegeneration re-resolves unresolved infos after containers were
// generated or recycled, and returns the pending selections that became resolvable.
func (loc *Locator) AdjustForContainerRegeneration() []Pending {

	for info := range loc.tracked {
		if info.index < 0 || info.generation != loc.generation {
			info.refresh()
		}
	}
	return loc.FlushPending()
}

// found returns the index of item among items inserted at base, or -1.
func found(item nt.Item, items []nt.Item, base int) int {

	for i, candidate := range items {
		if nt.SameItem(item, candidate) {
			return base + i
		}
	}
	return -1
}

// moved maps an index through removing n items at from and inserting them at to.
func moved(idx, from, to, n int) int {

	if idx < 0 {
		return idx
	}
	if idx >= from && idx < from+n {
		return to + idx - from
	}
	if idx >= from+n {
		idx -= n
	}
	if idx >= to {
		idx += n
	}
	return idx
}
