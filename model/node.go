package model

import "fmt"

// Node is a computation tree node: either a Matrix leaf or an operator with
// ordered children.
type Node struct {
	Type     NodeType    `json:"type" yaml:"type"`
	Matrix   [][]float64 `json:"matrix,omitempty" yaml:"matrix,omitempty"`
	Children []*Node     `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewMatrix creates a Matrix leaf.
func NewMatrix(data [][]float64) *Node {
	if data == nil {
		data = [][]float64{}
	}
	return &Node{Type: NodeTypeMatrix, Matrix: data}
}

// NewOperator creates an operator node.
func NewOperator(nodeType NodeType, children ...*Node) *Node {
	return &Node{Type: nodeType, Children: children}
}

// IsMatrix reports whether the node is a resolved leaf.
func (n *Node) IsMatrix() bool {
	return n.Type == NodeTypeMatrix
}

// Dimensions returns rows and columns of a Matrix leaf; columns are taken from
// the first row.
func (n *Node) Dimensions() (rows, cols int) {
	rows = len(n.Matrix)
	if rows > 0 {
		cols = len(n.Matrix[0])
	}
	return rows, cols
}

// IsRectangular reports whether every row of a Matrix leaf has the same length.
func (n *Node) IsRectangular() bool {
	for i := 1; i < len(n.Matrix); i++ {
		if len(n.Matrix[i]) != len(n.Matrix[0]) {
			return false
		}
	}
	return true
}

// AssociativeNesting rewrites an n-ary associative node in place into a
// left-nested binary chain: A+B+C+D becomes ((A+B)+C)+D. Only this node is
// rewritten; children are left untouched.
func (n *Node) AssociativeNesting() {
	if !n.Type.IsAssociative() || len(n.Children) <= 2 {
		return
	}
	last := len(n.Children) - 1
	nested := NewOperator(n.Type, n.Children[0], n.Children[1])
	for _, child := range n.Children[2:last] {
		nested = NewOperator(n.Type, nested, child)
	}
	n.Children = []*Node{nested, n.Children[last]}
}

// FindResolvable returns the leftmost-deepest operator node whose children
// are all Matrix leaves, or nil when there is none.
func (n *Node) FindResolvable() *Node {
	if n == nil || n.IsMatrix() {
		return nil
	}
	ready := true
	for _, child := range n.Children {
		if child == nil {
			return nil
		}
		if child.IsMatrix() {
			continue
		}
		ready = false
		if found := child.FindResolvable(); found != nil {
			return found
		}
	}
	if !ready || len(n.Children) == 0 {
		return nil
	}
	return n
}

// Resolve turns the node into a Matrix leaf holding data.
func (n *Node) Resolve(data [][]float64) {
	n.Type = NodeTypeMatrix
	n.Matrix = data
	n.Children = nil
}

// Validate performs a structural check of the tree rooted at n: known types,
// operators with operands, leaves without children, no nil children and no
// cycles. Operand counts and dimensions are checked at resolution time. The
// returned slice is empty when the tree is sound.
func (n *Node) Validate() []error {
	var issues []error
	onPath := map[*Node]bool{}
	checked := map[*Node]bool{}

	var walk func(node *Node, path string)
	walk = func(node *Node, path string) {
		if onPath[node] {
			issues = append(issues, fmt.Errorf("%s: cycle detected", path))
			return
		}
		if checked[node] {
			return
		}
		checked[node] = true
		switch {
		case node.IsMatrix():
			if len(node.Children) > 0 {
				issues = append(issues, fmt.Errorf("%s: matrix leaf has %d children", path, len(node.Children)))
			}
			return
		case !node.Type.IsOperator():
			issues = append(issues, fmt.Errorf("%s: unknown node type %q", path, node.Type))
			return
		case len(node.Children) == 0:
			issues = append(issues, fmt.Errorf("%s: %s has no operands", path, node.Type.Name()))
			return
		}
		onPath[node] = true
		for i, child := range node.Children {
			childPath := fmt.Sprintf("%s/%d", path, i)
			if child == nil {
				issues = append(issues, fmt.Errorf("%s: nil operand", childPath))
				continue
			}
			walk(child, childPath)
		}
		onPath[node] = false
	}
	if n == nil {
		return []error{fmt.Errorf("root is nil")}
	}
	walk(n, "root")
	return issues
}
