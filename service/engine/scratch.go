package engine

import (
	"github.com/viant/lae/memory"
	"github.com/viant/lae/model"
)

// scratch holds the two working matrices of a resolution step. Left receives
// a private copy of the first operand and is mutated in place by row tasks;
// right wraps the second operand read-only, or is empty for unary operators.
type scratch struct {
	left  *memory.Matrix
	right *memory.Matrix
}

func newScratch() *scratch {
	return &scratch{left: memory.NewMatrix(), right: memory.NewMatrix()}
}

// load prepares both matrices for node.
func (s *scratch) load(node *model.Node) error {
	if err := s.left.LoadRowMajor(deepCopy(node.Children[0].Matrix)); err != nil {
		return err
	}
	switch node.Type {
	case model.NodeTypeAdd:
		return s.right.LoadRowMajor(node.Children[1].Matrix)
	case model.NodeTypeMultiply:
		return s.right.LoadColumnMajor(node.Children[1].Matrix)
	default:
		return s.right.LoadRowMajor(nil)
	}
}

// dimensions returns the logical shape of m.
func dimensions(m *memory.Matrix) (rows, cols int) {
	count := m.Len()
	if count == 0 {
		return 0, 0
	}
	first, err := m.Get(0)
	if err != nil {
		return 0, 0
	}
	if first.Orientation() == memory.ColumnMajor {
		return first.Len(), count
	}
	return count, first.Len()
}

func deepCopy(data [][]float64) [][]float64 {
	result := make([][]float64, len(data))
	for i, row := range data {
		result[i] = append([]float64(nil), row...)
	}
	return result
}
