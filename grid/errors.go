package grid

import "github.com/pkg/errors"

// Errors returned at the grid's call boundary. Nothing is mutated when one is returned.
var (
	// ErrInvalidArgument indicates an out-of-range row or column, or an unknown item.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidOperation indicates a command that cannot execute in the current state,
	// such as a cell gesture while rows are the selection unit.
	ErrInvalidOperation = errors.New("invalid operation")
)
