package model

import "fmt"

// NodeType identifies a leaf or an operator.
type NodeType string

const (
	NodeTypeMatrix    NodeType = "matrix"
	NodeTypeAdd       NodeType = "+"
	NodeTypeMultiply  NodeType = "*"
	NodeTypeNegate    NodeType = "-"
	NodeTypeTranspose NodeType = "T"
)

// ParseOperator maps an operator symbol to its NodeType.
func ParseOperator(symbol string) (NodeType, error) {
	switch NodeType(symbol) {
	case NodeTypeAdd, NodeTypeMultiply, NodeTypeNegate, NodeTypeTranspose:
		return NodeType(symbol), nil
	}
	return "", fmt.Errorf("unknown operator %q", symbol)
}

// IsOperator reports whether t is one of the supported operators.
func (t NodeType) IsOperator() bool {
	switch t {
	case NodeTypeAdd, NodeTypeMultiply, NodeTypeNegate, NodeTypeTranspose:
		return true
	}
	return false
}

// IsAssociative reports whether n-ary nodes of this type can be nested into a
// left-leaning chain of binary nodes without changing the result.
func (t NodeType) IsAssociative() bool {
	return t == NodeTypeAdd || t == NodeTypeMultiply
}

// IsUnary reports whether the operator takes exactly one operand.
func (t NodeType) IsUnary() bool {
	return t == NodeTypeNegate || t == NodeTypeTranspose
}

// Name returns a human readable operator name.
func (t NodeType) Name() string {
	switch t {
	case NodeTypeMatrix:
		return "MATRIX"
	case NodeTypeAdd:
		return "ADD"
	case NodeTypeMultiply:
		return "MULTIPLY"
	case NodeTypeNegate:
		return "NEGATE"
	case NodeTypeTranspose:
		return "TRANSPOSE"
	}
	return string(t)
}
