package locate

import (
	"slices"

	nt "grille/entity"
)

// Pending is a selection made against an item whose index was not yet known.
// Row marks a whole-row selection; otherwise Col and Cols give the selected span.
type Pending struct {
	Info *Info
	Row  bool
	Col  int
	Cols int
}

// Park holds a selection until its item resolves. The pending list owns the info.
func (loc *Locator) Park(pnd Pending) {
	loc.pending = append(loc.pending, pnd)
}

// FlushPending removes and returns the pending selections whose item now resolves.
func (loc *Locator) FlushPending() (ready []Pending) {

	if len(loc.pending) == 0 {
		return nil
	}

	waiting := loc.pending[:0]
	for _, pnd := range loc.pending {
		if pnd.Info.Resolved() {
			ready = append(ready, pnd)
			continue
		}
		waiting = append(waiting, pnd)
	}
	loc.pending = waiting
	return
}

// Pending returns a copy of the selections still waiting on an index.
func (loc *Locator) Pending() []Pending {
	return slices.Clone(loc.pending)
}

// PendingCount returns the number of parked selections.
func (loc *Locator) PendingCount() int {
	return len(loc.pending)
}

// IsPending reports whether item has a parked row selection.
func (loc *Locator) IsPending(item nt.Item) bool {

	for _, pnd := range loc.pending {
		if pnd.Row && pnd.Info.Is(item) {
			return true
		}
	}
	return false
}

// DropPending discards parked selections for item and releases their infos.
func (loc *Locator) DropPending(item nt.Item) (dropped bool) {

	waiting := loc.pending[:0]
	for _, pnd := range loc.pending {
		if pnd.Info.Is(item) {
			loc.Release(pnd.Info)
			dropped = true
			continue
		}
		waiting = append(waiting, pnd)
	}
	loc.pending = waiting
	return
}

// ClearPending discards every parked selection.
func (loc *Locator) ClearPending() {

	for _, pnd := range loc.pending {
		loc.Release(pnd.Info)
	}
	loc.pending = nil
}
