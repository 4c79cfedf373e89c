package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Writer uploads payloads to an afs URL.
type Writer struct {
	fs     afs.Service
	indent string
}

// Option configures the writer.
type Option func(*Writer)

// WithIndent pretty prints payloads using indent.
func WithIndent(indent string) Option {
	return func(w *Writer) {
		w.indent = indent
	}
}

// New creates a writer backed by fs.
func New(fs afs.Service, options ...Option) *Writer {
	w := &Writer{fs: fs}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// WriteResult writes {"result": data} to URL.
func (w *Writer) WriteResult(ctx context.Context, URL string, data [][]float64) error {
	return w.write(ctx, URL, NewResult(data))
}

// WriteError writes {"error": err.Error()} to URL.
func (w *Writer) WriteError(ctx context.Context, URL string, err error) error {
	return w.write(ctx, URL, NewError(err))
}

func (w *Writer) write(ctx context.Context, URL string, payload interface{}) error {
	data, err := w.encode(payload)
	if err != nil {
		return err
	}
	if err = w.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write output %v: %w", URL, err)
	}
	return nil
}

func (w *Writer) encode(payload interface{}) ([]byte, error) {
	if w.indent != "" {
		return json.MarshalIndent(payload, "", w.indent)
	}
	return json.Marshal(payload)
}
