package memory

import (
	"fmt"
	"sync"
)

// Matrix is an ordered list of vectors holding either the rows or the columns
// of a 2-D array. The list is replaced wholesale by the load methods; the
// vectors themselves carry their own locks.
type Matrix struct {
	mu      sync.RWMutex
	vectors []*Vector
}

// NewMatrix returns an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{}
}

// NewMatrixFromRows returns a row-major matrix wrapping data.
func NewMatrixFromRows(data [][]float64) (*Matrix, error) {
	m := NewMatrix()
	if err := m.LoadRowMajor(data); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadRowMajor replaces the content with one row vector per row of data. Row
// slices are wrapped, not copied.
func (m *Matrix) LoadRowMajor(data [][]float64) error {
	if err := checkRectangular(data); err != nil {
		return err
	}
	vectors := make([]*Vector, len(data))
	for i, row := range data {
		vectors[i] = NewVector(row, RowMajor)
	}
	m.swap(vectors)
	return nil
}

// LoadColumnMajor replaces the content with one column vector per column of data.
func (m *Matrix) LoadColumnMajor(data [][]float64) error {
	if err := checkRectangular(data); err != nil {
		return err
	}
	if len(data) == 0 {
		m.swap(nil)
		return nil
	}
	cols := len(data[0])
	vectors := make([]*Vector, cols)
	for j := 0; j < cols; j++ {
		column := make([]float64, len(data))
		for i := range data {
			column[i] = data[i][j]
		}
		vectors[j] = NewVector(column, ColumnMajor)
	}
	m.swap(vectors)
	return nil
}

// ReadRowMajor returns a detached row-major copy of the matrix. Every vector
// is read-locked in ascending index order for the duration of the copy and
// released in descending order.
func (m *Matrix) ReadRowMajor() [][]float64 {
	vectors := m.snapshot()
	if len(vectors) == 0 {
		return [][]float64{}
	}
	for _, vector := range vectors {
		vector.mu.RLock()
	}
	defer func() {
		for i := len(vectors) - 1; i >= 0; i-- {
			vectors[i].mu.RUnlock()
		}
	}()

	if vectors[0].orientation == RowMajor {
		result := make([][]float64, len(vectors))
		for i, vector := range vectors {
			result[i] = append([]float64(nil), vector.data...)
		}
		return result
	}
	rows, cols := len(vectors[0].data), len(vectors)
	result := make([][]float64, rows)
	for i := range result {
		result[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			result[i][j] = vectors[j].data[i]
		}
	}
	return result
}

// Get returns the vector at index i.
func (m *Matrix) Get(i int) (*Vector, error) {
	vectors := m.snapshot()
	if i < 0 || i >= len(vectors) {
		return nil, fmt.Errorf("%w: vector %d of %d", ErrOutOfRange, i, len(vectors))
	}
	return vectors[i], nil
}

// Len returns the number of stored vectors.
func (m *Matrix) Len() int {
	return len(m.snapshot())
}

// Orientation returns the orientation shared by the vectors; RowMajor when empty.
func (m *Matrix) Orientation() Orientation {
	vectors := m.snapshot()
	if len(vectors) == 0 {
		return RowMajor
	}
	return vectors[0].Orientation()
}

func (m *Matrix) swap(vectors []*Vector) {
	m.mu.Lock()
	m.vectors = vectors
	m.mu.Unlock()
}

// snapshot returns the current list; the slice is never mutated after a swap.
func (m *Matrix) snapshot() []*Vector {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vectors
}

func checkRectangular(data [][]float64) error {
	for i := 1; i < len(data); i++ {
		if len(data[i]) != len(data[0]) {
			return fmt.Errorf("%w: row %d has %d elements, want %d", ErrLengthMismatch, i, len(data[i]), len(data[0]))
		}
	}
	return nil
}
