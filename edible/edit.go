package edible

import (
	"slices"

	"github.com/pkg/errors"

	nt "grille/entity"
)

// CanAddNew reports whether a new row can be started.
func (coll *Collection) CanAddNew() bool {
	return coll.position != nt.PlaceholderNone && coll.adding == nil && coll.editing == nil
}

// AddNew inserts a blank row next to the placeholder and opens its transaction.
func (coll *Collection) AddNew() (item nt.Item, err error) {

	if !coll.CanAddNew() {
		err = errors.New("cannot add new row")
		return
	}

	row := &nt.Row{Id: coll.nextId(), Values: make([]nt.Value, coll.columns)}
	coll.adding = row

	idx := 0
	if coll.position == nt.PlaceholderAtEnd {
		idx = len(coll.rows)
	}
	coll.Insert(idx, row)

	item = row
	return
}

// CommitNew validates and keeps the added row.
func (coll *Collection) CommitNew() (err error) {

	if coll.adding == nil {
		return errors.New("no row is being added")
	}

	err = coll.commit(coll.adding, true)
	if err != nil {
		return
	}
	coll.adding = nil
	return
}

// CancelNew discards the added row.
func (coll *Collection) CancelNew() (err error) {

	if coll.adding == nil {
		return errors.New("no row is being added")
	}

	idx := slices.Index(coll.rows, coll.adding)
	coll.adding = nil
	if idx < 0 {
		return
	}
	return coll.RemoveAt(idx)
}

// EditItem opens a transaction on item, keeping its values for cancel.
func (coll *Collection) EditItem(item nt.Item) (err error) {

	if coll.editing != nil || coll.adding != nil {
		return errors.New("a row transaction is already open")
	}

	row, err := coll.Row(item)
	if err != nil {
		return
	}

	coll.editing = row
	coll.snapshot = row.Snapshot()
	return
}

// CommitEdit validates and keeps the edited values.
func (coll *Collection) CommitEdit() (err error) {

	if coll.editing == nil {
		return errors.New("no row is being edited")
	}

	err = coll.commit(coll.editing, false)
	if err != nil {
		return
	}
	coll.editing = nil
	coll.snapshot = nil
	return
}

// CancelEdit restores the values held when the transaction opened.
func (coll *Collection) CancelEdit() (err error) {

	if coll.editing == nil {
		return errors.New("no row is being edited")
	}
	if coll.noCancel {
		return errors.New("edits cannot be canceled")
	}

	coll.editing.Values = coll.snapshot
	coll.editing = nil
	coll.snapshot = nil
	return
}

// CanCancelEdit reports whether CancelEdit is supported.
func (coll *Collection) CanCancelEdit() bool {
	return !coll.noCancel
}

// CurrentAddItem returns the row being added, if any.
func (coll *Collection) CurrentAddItem() nt.Item {
	if coll.adding == nil {
		return nil
	}
	return coll.adding
}

// CurrentEditItem returns the row being edited, if any.
func (coll *Collection) CurrentEditItem() nt.Item {
	if coll.editing == nil {
		return nil
	}
	return coll.editing
}

// PlaceholderPosition returns where the placeholder is shown.
func (coll *Collection) PlaceholderPosition() nt.PlaceholderPosition {
	return coll.position
}

// Value returns the value in column col of item.
func (coll *Collection) Value(item nt.Item, col int) nt.Value {

	row, err := coll.Row(item)
	if err != nil {
		return nt.Value{}
	}
	return row.Value(col)
}

// SetValue validates value and stores it in column col of item.
func (coll *Collection) SetValue(item nt.Item, col int, value nt.Value) (err error) {

	row, err := coll.Row(item)
	if err != nil {
		return
	}
	if col < 0 {
		return errors.Errorf("column %d is out of range", col)
	}

	validate, ok := coll.validateCells[col]
	if ok {
		err = validate(value)
		if err != nil {
			err = errors.Wrapf(err, "invalid value for column %d", col)
			return
		}
	}

	if col >= len(row.Values) {
		row.Values = append(row.Values, make([]nt.Value, col-len(row.Values)+1)...)
	}
	row.Values[col] = value
	return
}

// unexported

func (coll *Collection) commit(row *nt.Row, added bool) (err error) {

	if coll.validateRow != nil {
		err = coll.validateRow(row)
		if err != nil {
			err = errors.Wrapf(err, "invalid row %q", row.Id)
			return
		}
	}

	if coll.onCommit != nil {
		err = coll.onCommit(row, added)
		err = errors.Wrapf(err, "failed to save row %q", row.Id)
	}
	return
}
