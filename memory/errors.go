package memory

import "errors"

var (
	// ErrNilVector is returned when a nil *Vector argument is supplied.
	ErrNilVector = errors.New("memory: nil vector")

	// ErrNilMatrix is returned when a nil *Matrix argument is supplied.
	ErrNilMatrix = errors.New("memory: nil matrix")

	// ErrLengthMismatch indicates operands of incompatible length.
	ErrLengthMismatch = errors.New("memory: length mismatch")

	// ErrOutOfRange indicates an index outside the valid bounds.
	ErrOutOfRange = errors.New("memory: index out of range")

	// ErrNotRowMajor is returned by VecMatMul when the receiver is a column vector.
	ErrNotRowMajor = errors.New("memory: vector is not row major")
)
