package entity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Value wraps a cell value and provides type conversion helpers.
type Value struct {
	Raw any
}

// String returns the value as a string.
func (v Value) String() string {
	if v.Raw == nil {
		return ""
	}
	return fmt.Sprintf("%v", v.Raw)
}

// Int returns the value as an int, parsing strings typed in by an editor.
func (v Value) Int() (int, error) {
	switch raw := v.Raw.(type) {
	case int64:
		return int(raw), nil
	case int32:
		return int(raw), nil
	case int:
		return raw, nil
	case string:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return 0, errors.Wrapf(err, "value is not an int: %q", raw)
		}
		return i, nil
	}
	return 0, errors.Errorf("value is not an int: %T", v.Raw)
}

// Float returns the value as a float64.
func (v Value) Float() (float64, error) {
	switch raw := v.Raw.(type) {
	case float64:
		return raw, nil
	case string:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "value is not a float: %q", raw)
		}
		return f, nil
	}
	return 0, errors.Errorf("value is not a float64: %T", v.Raw)
}

// Bool returns the value as a bool.
func (v Value) Bool() (bool, error) {
	b, ok := v.Raw.(bool)
	if !ok {
		return false, errors.Errorf("value is not a bool: %T", v.Raw)
	}
	return b, nil
}

// Time returns the value as a time.Time.
func (v Value) Time() (time.Time, error) {
	t, ok := v.Raw.(time.Time)
	if !ok {
		return time.Time{}, errors.Errorf("value is not a time.Time: %T", v.Raw)
	}
	return t, nil
}

// Row is a data item: an id plus values in store field order.
type Row struct {
	Id     string
	Values []Value
}

// Key returns the row id.
func (row *Row) Key() string {
	return row.Id
}

// Value returns the value at idx or an empty value when out of range.
func (row *Row) Value(idx int) Value {
	if idx < 0 || idx >= len(row.Values) {
		return Value{}
	}
	return row.Values[idx]
}

// Snapshot copies the values so they can be restored after a canceled edit.
func (row *Row) Snapshot() []Value {
	values := make([]Value, len(row.Values))
	copy(values, row.Values)
	return values
}
