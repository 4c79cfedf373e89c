package history

import "errors"

var (
	// ErrNotFound is returned when the requested run does not exist.
	ErrNotFound = errors.New("history: not found")
	// ErrInvalidID indicates an empty run id.
	ErrInvalidID = errors.New("history: invalid id")
	// ErrNilRecord is returned when saving a nil record.
	ErrNilRecord = errors.New("history: nil record")
)
