// Package edible is an in-memory editable row collection with an optional add-new
// placeholder. It reports every structural change to its subscribers.
package edible

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"

	nt "grille/entity"
	"grille/locate"
)

// Collection holds rows in order plus the add-new placeholder.
// Indices given to and returned by Len/At/IndexOf include the placeholder;
// the Insert/Remove/Move helpers take data indices that exclude it.
type Collection struct {
	rows        []*nt.Row
	columns     int
	position    nt.PlaceholderPosition
	subscribers []func(locate.Change)

	adding   *nt.Row
	editing  *nt.Row
	snapshot []nt.Value

	nextId        func() string
	validateRow   func(row *nt.Row) error
	validateCells map[int]func(nt.Value) error
	onCommit      func(row *nt.Row, added bool) error
	noCancel      bool
}

// Option configures a Collection.
type Option func(*Collection)

// WithPlaceholder shows the add-new placeholder at pos.
func WithPlaceholder(pos nt.PlaceholderPosition) Option {
	return func(coll *Collection) { coll.position = pos }
}

// WithColumns sets how many values a new row starts with.
func WithColumns(n int) Option {
	return func(coll *Collection) { coll.columns = n }
}

// WithRowValidator checks a row when its transaction commits.
func WithRowValidator(fn func(row *nt.Row) error) Option {
	return func(coll *Collection) { coll.validateRow = fn }
}

// WithCellValidator checks values pushed into column col.
func WithCellValidator(col int, fn func(nt.Value) error) Option {
	return func(coll *Collection) { coll.validateCells[col] = fn }
}

// WithCommitHook runs after validation succeeds, e.g. to persist the row.
// An error fails the commit.
func WithCommitHook(fn func(row *nt.Row, added bool) error) Option {
	return func(coll *Collection) { coll.onCommit = fn }
}

// WithIds sets the id generator for added rows.
func WithIds(fn func() string) Option {
	return func(coll *Collection) { coll.nextId = fn }
}

// WithoutCancel makes edits non-cancelable, so cancel falls back to commit.
func WithoutCancel() Option {
	return func(coll *Collection) { coll.noCancel = true }
}

// New creates a collection over rows.
func New(rows []*nt.Row, opts ...Option) *Collection {

	seq := 0
	coll := &Collection{
		rows:          rows,
		validateCells: map[int]func(nt.Value) error{},
		nextId: func() string {
			seq++
			return fmt.Sprintf("new-%d", seq)
		},
	}
	for _, opt := range opts {
		opt(coll)
	}

	if coll.columns == 0 && len(rows) > 0 {
		coll.columns = len(rows[0].Values)
	}
	return coll
}

// Subscribe registers for change notifications.
func (coll *Collection) Subscribe(fn func(locate.Change)) {
	coll.subscribers = append(coll.subscribers, fn)
}

// Len returns the number of rows including the placeholder.
func (coll *Collection) Len() int {
	if coll.position == nt.PlaceholderNone {
		return len(coll.rows)
	}
	return len(coll.rows) + 1
}

// At returns the item at view index idx.
func (coll *Collection) At(idx int) nt.Item {

	if idx < 0 || idx >= coll.Len() {
		return nil
	}
	if idx == coll.placeholderIndex() {
		return nt.Placeholder
	}
	return coll.rows[idx-coll.offset()]
}

// IndexOf returns the view index of item, -1 when absent.
func (coll *Collection) IndexOf(item nt.Item) int {

	if item == nil {
		return -1
	}
	if nt.IsPlaceholder(item) {
		return coll.placeholderIndex()
	}

	key := item.Key()
	for i, row := range coll.rows {
		if row.Id == key {
			return i + coll.offset()
		}
	}
	return -1
}

// Rows returns the data rows, placeholder excluded.
func (coll *Collection) Rows() []*nt.Row {
	return slices.Clone(coll.rows)
}

// Row returns the data row for item.
func (coll *Collection) Row(item nt.Item) (row *nt.Row, err error) {

	if item == nil || nt.IsPlaceholder(item) {
		err = errors.New("placeholder has no row")
		return
	}

	idx := coll.IndexOf(item)
	if idx < 0 {
		err = errors.Errorf("row %q not found", item.Key())
		return
	}
	row = coll.rows[idx-coll.offset()]
	return
}

// Insert puts row at data index idx.
func (coll *Collection) Insert(idx int, row *nt.Row) {

	idx = max(0, min(idx, len(coll.rows)))
	coll.rows = slices.Insert(coll.rows, idx, row)
	coll.notify(locate.Inserted(idx+coll.offset(), row))
}

// Append adds row after the last data row.
func (coll *Collection) Append(row *nt.Row) {
	coll.Insert(len(coll.rows), row)
}

// RemoveAt removes the row at data index idx.
func (coll *Collection) RemoveAt(idx int) (err error) {

	if idx < 0 || idx >= len(coll.rows) {
		return errors.Errorf("index %d is out of bounds of %d rows", idx, len(coll.rows))
	}

	row := coll.rows[idx]
	coll.rows = slices.Delete(coll.rows, idx, idx+1)
	if row == coll.adding {
		coll.adding = nil
	}
	if row == coll.editing {
		coll.editing = nil
		coll.snapshot = nil
	}

	coll.notify(locate.Removed(idx+coll.offset(), row))
	return
}

// Remove removes item.
func (coll *Collection) Remove(item nt.Item) (err error) {

	idx := coll.IndexOf(item)
	if idx < 0 || nt.IsPlaceholder(item) {
		return errors.Errorf("cannot remove %v", item)
	}
	return coll.RemoveAt(idx - coll.offset())
}

// Move moves the row at data index from to data index to.
func (coll *Collection) Move(from, to int) (err error) {

	if from < 0 || from >= len(coll.rows) || to < 0 || to >= len(coll.rows) {
		return errors.Errorf("move %d to %d is out of bounds of %d rows", from, to, len(coll.rows))
	}
	if from == to {
		return
	}

	row := coll.rows[from]
	coll.rows = slices.Delete(coll.rows, from, from+1)
	coll.rows = slices.Insert(coll.rows, to, row)

	coll.notify(locate.Moved(from+coll.offset(), to+coll.offset(), row))
	return
}

// Replace swaps the row at data index idx for row.
func (coll *Collection) Replace(idx int, row *nt.Row) (err error) {

	if idx < 0 || idx >= len(coll.rows) {
		return errors.Errorf("index %d is out of bounds of %d rows", idx, len(coll.rows))
	}

	coll.rows[idx] = row
	coll.notify(locate.Replaced(idx+coll.offset(), row))
	return
}

// Reset replaces every row, e.g. after re-sorting or reloading.
func (coll *Collection) Reset(rows []*nt.Row) {

	coll.rows = rows
	coll.adding = nil
	coll.editing = nil
	coll.snapshot = nil
	coll.notify(locate.Refreshed())
}

// SetPlaceholder moves or hides the placeholder.
func (coll *Collection) SetPlaceholder(pos nt.PlaceholderPosition) {

	if pos == coll.position {
		return
	}
	coll.position = pos
	coll.notify(locate.Refreshed())
}

// unexported

func (coll *Collection) offset() int {
	if coll.position == nt.PlaceholderAtBeginning {
		return 1
	}
	return 0
}

func (coll *Collection) placeholderIndex() int {

	switch coll.position {
	case nt.PlaceholderAtBeginning:
		return 0
	case nt.PlaceholderAtEnd:
		return len(coll.rows)
	}
	return -1
}

func (coll *Collection) notify(change locate.Change) {
	for _, fn := range coll.subscribers {
		fn(change)
	}
}
