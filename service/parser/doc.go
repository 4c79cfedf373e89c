// Package parser decodes computation trees from input documents.
//
// A document is JSON or YAML holding one of:
//
//	{"operator": "+", "operands": [[[1, 2]], [[3, 4]]]}
//	[[1, 2], [3, 4]]
//	{"expression": "A + B * T(C)", "bindings": {"A": [[1]], "B": [[2]], "C": [[3]]}}
//
// Operands of an operator are matrices, numbers (1x1 matrices) or nested
// operator documents.
package parser
