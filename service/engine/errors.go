package engine

import "errors"

var (
	// ErrNilRoot is returned when Run is called without a tree.
	ErrNilRoot = errors.New("engine: root node is nil")
	// ErrDimensionMismatch is returned when operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("Illegal operation: dimensions mismatch")
	// ErrOperandCount is returned when an operator has the wrong number of operands.
	ErrOperandCount = errors.New("engine: wrong number of operands")
	// ErrRaggedMatrix is returned when an operand's rows differ in length.
	ErrRaggedMatrix = errors.New("engine: ragged matrix")
	// ErrNoResolvable is returned when the root is unresolved but no node can be resolved.
	ErrNoResolvable = errors.New("engine: no resolvable node")
	// ErrMalformedTree is returned when the tree fails structural validation.
	ErrMalformedTree = errors.New("engine: malformed tree")
	// ErrUnsupportedOperator is returned for an operator without a row task.
	ErrUnsupportedOperator = errors.New("engine: unsupported operator")
)
