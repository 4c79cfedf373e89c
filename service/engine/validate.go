package engine

import (
	"fmt"

	"github.com/viant/lae/model"
)

// validate checks operand count and shape for node, whose children are all
// matrix leaves. Nothing is scheduled when it fails.
func validate(node *model.Node) error {
	for i, child := range node.Children {
		if !child.IsRectangular() {
			return fmt.Errorf("%w: operand %d of %s", ErrRaggedMatrix, i, node.Type.Name())
		}
	}
	switch node.Type {
	case model.NodeTypeAdd:
		if len(node.Children) != 2 {
			return operandCount(node, 2)
		}
		lr, lc := node.Children[0].Dimensions()
		rr, rc := node.Children[1].Dimensions()
		if lr != rr || lc != rc {
			return ErrDimensionMismatch
		}
	case model.NodeTypeMultiply:
		if len(node.Children) != 2 {
			return operandCount(node, 2)
		}
		_, lc := node.Children[0].Dimensions()
		rr, _ := node.Children[1].Dimensions()
		if lc != rr {
			return ErrDimensionMismatch
		}
	case model.NodeTypeNegate, model.NodeTypeTranspose:
		if len(node.Children) != 1 {
			return operandCount(node, 1)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedOperator, node.Type)
	}
	return nil
}

func operandCount(node *model.Node, expect int) error {
	return fmt.Errorf("%w: %s requires %d, got %d", ErrOperandCount, node.Type.Name(), expect, len(node.Children))
}
