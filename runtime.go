package lae

import (
	"context"

	"github.com/viant/lae/model"
	"github.com/viant/lae/service/parser"
)

// Load decodes the computation tree stored at URL.
func (s *Service) Load(ctx context.Context, URL string) (*model.Node, error) {
	return parser.Load(ctx, s.fs, URL, s.fsOptions...)
}

// EvaluateExpression parses an infix expression and evaluates it.
func (s *Service) EvaluateExpression(ctx context.Context, expression string, bindings map[string][][]float64) ([][]float64, error) {
	root, err := parser.ParseExpression(expression, bindings)
	if err != nil {
		return nil, err
	}
	result, err := s.Evaluate(ctx, root)
	if err != nil {
		return nil, err
	}
	return result.Matrix, nil
}

// RunFile evaluates the document at inputURL and writes the payload to
// outputURL. Read, parse and evaluation failures are written as an error
// payload; only a failure to write the output is returned. A bare matrix
// input is written back without scheduling any work.
func (s *Service) RunFile(ctx context.Context, inputURL, outputURL string) error {
	root, err := s.Load(ctx, inputURL)
	if err == nil && !root.IsMatrix() {
		root, err = s.Evaluate(ctx, root)
	}
	if err != nil {
		s.logger.WithField("input", inputURL).WithError(err).Debug("writing error payload")
		return s.writer.WriteError(ctx, outputURL, err)
	}
	return s.writer.WriteResult(ctx, outputURL, root.Matrix)
}
