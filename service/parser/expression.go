package parser

import (
	"fmt"
	"strconv"

	"github.com/viant/lae/model"
	"github.com/viant/parsly"
	"gopkg.in/yaml.v3"
)

// ParseExpression builds a tree from an infix expression:
//
//	expr    := term (('+' | '-') term)*
//	term    := unary ('*' unary)*
//	unary   := '-' unary | 'T' '(' expr ')' | primary
//	primary := identifier | number | '[' rows ']' | '(' expr ')'
//
// A chain of additions becomes a single n-ary add node; a - b is read as
// a + (-b). Multiplication chains are left-nested. Identifiers are resolved
// against bindings, numbers are 1x1 matrices.
func ParseExpression(expression string, bindings map[string][][]float64) (*model.Node, error) {
	p := &expressionParser{
		cursor:   parsly.NewCursor("", []byte(expression), 0),
		bindings: bindings,
	}
	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.cursor.MatchOne(whitespaceToken)
	if p.cursor.HasMore() {
		return nil, p.syntaxError(plusToken, minusToken, starToken)
	}
	return node, nil
}

type expressionParser struct {
	cursor   *parsly.Cursor
	bindings map[string][][]float64
}

func (p *expressionParser) expr() (*model.Node, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	operands := []*model.Node{first}
	for {
		matched := p.cursor.MatchAfterOptional(whitespaceToken, plusToken, minusToken)
		if matched.Code != plusCode && matched.Code != minusCode {
			break
		}
		next, err := p.term()
		if err != nil {
			return nil, err
		}
		if matched.Code == minusCode {
			next = model.NewOperator(model.NodeTypeNegate, next)
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return model.NewOperator(model.NodeTypeAdd, operands...), nil
}

func (p *expressionParser) term() (*model.Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.cursor.MatchAfterOptional(whitespaceToken, starToken).Code == starCode {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = model.NewOperator(model.NodeTypeMultiply, left, right)
	}
	return left, nil
}

func (p *expressionParser) unary() (*model.Node, error) {
	matched := p.cursor.MatchAfterOptional(whitespaceToken, minusToken, numberToken, matrixToken, openParenToken, identifierToken)
	switch matched.Code {
	case minusCode:
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return model.NewOperator(model.NodeTypeNegate, operand), nil
	case numberCode:
		value, err := strconv.ParseFloat(matched.Text(p.cursor), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		return model.NewMatrix([][]float64{{value}}), nil
	case matrixCode:
		data, err := decodeMatrixLiteral(matched.Text(p.cursor))
		if err != nil {
			return nil, err
		}
		return model.NewMatrix(data), nil
	case openParenCode:
		return p.group()
	case identifierCode:
		name := matched.Text(p.cursor)
		if name == string(model.NodeTypeTranspose) && p.cursor.MatchAfterOptional(whitespaceToken, openParenToken).Code == openParenCode {
			operand, err := p.group()
			if err != nil {
				return nil, err
			}
			return model.NewOperator(model.NodeTypeTranspose, operand), nil
		}
		data, ok := p.bindings[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnboundMatrix, name)
		}
		return model.NewMatrix(data), nil
	case parsly.EOF:
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	return nil, p.syntaxError(minusToken, numberToken, matrixToken, openParenToken, identifierToken)
}

// group parses an expression followed by the closing parenthesis; the
// opening one is already consumed.
func (p *expressionParser) group() (*model.Node, error) {
	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.cursor.MatchAfterOptional(whitespaceToken, closeParenToken).Code != closeParenCode {
		return nil, p.syntaxError(closeParenToken)
	}
	return node, nil
}

func (p *expressionParser) syntaxError(expected ...*parsly.Token) error {
	return fmt.Errorf("%w: %v", ErrSyntax, p.cursor.NewError(expected...))
}

// decodeMatrixLiteral reads a bracketed literal; a flat list is a single row.
func decodeMatrixLiteral(text string) ([][]float64, error) {
	var rows [][]float64
	if err := yaml.Unmarshal([]byte(text), &rows); err == nil {
		return rows, nil
	}
	var row []float64
	if err := yaml.Unmarshal([]byte(text), &row); err != nil {
		return nil, fmt.Errorf("%w: invalid matrix literal %s", ErrSyntax, text)
	}
	return [][]float64{row}, nil
}
