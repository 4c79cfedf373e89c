package parser

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/lae/model"
	"gopkg.in/yaml.v3"
)

type document struct {
	Operator   string                 `yaml:"operator"`
	Operands   []yaml.Node            `yaml:"operands"`
	Expression string                 `yaml:"expression"`
	Bindings   map[string][][]float64 `yaml:"bindings"`
}

// Load reads and decodes the document at URL.
func Load(ctx context.Context, fs afs.Service, URL string, options ...storage.Option) (*model.Node, error) {
	data, err := fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %v: %w", URL, err)
	}
	return Decode(data)
}

// Decode builds a tree from a JSON or YAML document.
func Decode(data []byte) (*model.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrSyntax)
	}
	return decodeNode(root.Content[0])
}

func decodeNode(node *yaml.Node) (*model.Node, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeNode(node.Alias)
	case yaml.ScalarNode:
		var value float64
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, node.Line, err)
		}
		return model.NewMatrix([][]float64{{value}}), nil
	case yaml.SequenceNode:
		var data [][]float64
		if err := node.Decode(&data); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, node.Line, err)
		}
		return model.NewMatrix(data), nil
	case yaml.MappingNode:
		return decodeDocument(node)
	}
	return nil, fmt.Errorf("%w: line %d: unexpected node", ErrSyntax, node.Line)
}

func decodeDocument(node *yaml.Node) (*model.Node, error) {
	doc := &document{}
	if err := node.Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, node.Line, err)
	}
	if doc.Expression != "" {
		return ParseExpression(doc.Expression, doc.Bindings)
	}
	if doc.Operator == "" {
		return nil, fmt.Errorf("%w: line %d: expected operator or expression", ErrSyntax, node.Line)
	}
	nodeType, err := model.ParseOperator(doc.Operator)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownOperator, err)
	}
	operands := make([]*model.Node, 0, len(doc.Operands))
	for i := range doc.Operands {
		operand, err := decodeNode(&doc.Operands[i])
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	return model.NewOperator(nodeType, operands...), nil
}
