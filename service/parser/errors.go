package parser

import "errors"

var (
	// ErrSyntax is returned for documents or expressions that cannot be parsed.
	ErrSyntax = errors.New("parser: syntax error")
	// ErrUnknownOperator is returned for an unsupported operator symbol.
	ErrUnknownOperator = errors.New("parser: unknown operator")
	// ErrUnboundMatrix is returned when an expression names a matrix missing from bindings.
	ErrUnboundMatrix = errors.New("parser: unbound matrix")
)
