package memory

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// sequence hands out vector identities; the lock order of two-vector
// operations follows it.
var sequence atomic.Uint64

// Vector is a mutable sequence of float64 values tagged with an orientation.
// A single reader/writer lock guards both the values and the tag.
type Vector struct {
	id          uint64
	mu          sync.RWMutex
	data        []float64
	orientation Orientation
}

// NewVector creates a vector that takes ownership of data. Callers that keep
// using data afterwards must pass a copy.
func NewVector(data []float64, orientation Orientation) *Vector {
	if data == nil {
		data = []float64{}
	}
	return &Vector{
		id:          sequence.Add(1),
		data:        data,
		orientation: orientation,
	}
}

// ID returns the stable identity assigned at construction.
func (v *Vector) ID() uint64 {
	return v.id
}

// Get returns the element at index i.
func (v *Vector) Get(i int) (float64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if i < 0 || i >= len(v.data) {
		return 0, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(v.data))
	}
	return v.data[i], nil
}

// Len returns the number of elements.
func (v *Vector) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.data)
}

// Orientation returns the current orientation tag.
func (v *Vector) Orientation() Orientation {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.orientation
}

// Values returns a detached copy of the elements.
func (v *Vector) Values() []float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]float64(nil), v.data...)
}

func (v *Vector) ReadLock()    { v.mu.RLock() }
func (v *Vector) ReadUnlock()  { v.mu.RUnlock() }
func (v *Vector) WriteLock()   { v.mu.Lock() }
func (v *Vector) WriteUnlock() { v.mu.Unlock() }

// Transpose flips the orientation tag. Data is never rearranged.
func (v *Vector) Transpose() {
	v.mu.Lock()
	v.orientation = v.orientation.Flip()
	v.mu.Unlock()
}

// Negate flips the sign of every element in place.
func (v *Vector) Negate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.data {
		v.data[i] = -v.data[i]
	}
}

// Add adds other element-wise into v.
func (v *Vector) Add(other *Vector) error {
	if other == nil {
		return ErrNilVector
	}
	if other == v {
		v.mu.Lock()
		defer v.mu.Unlock()
		for i := range v.data {
			v.data[i] += v.data[i]
		}
		return nil
	}
	unlock := lockForWrite(v, other)
	defer unlock()
	if len(v.data) != len(other.data) {
		return fmt.Errorf("%w: add %d to %d elements", ErrLengthMismatch, len(other.data), len(v.data))
	}
	for i := range v.data {
		v.data[i] += other.data[i]
	}
	return nil
}

// Dot returns the inner product of v and other.
func (v *Vector) Dot(other *Vector) (float64, error) {
	if other == nil {
		return 0, ErrNilVector
	}
	unlock := lockForRead(v, other)
	defer unlock()
	if len(v.data) != len(other.data) {
		return 0, fmt.Errorf("%w: dot of %d and %d elements", ErrLengthMismatch, len(v.data), len(other.data))
	}
	sum := 0.0
	for i := range v.data {
		sum += v.data[i] * other.data[i]
	}
	return sum, nil
}

// VecMatMul replaces v with the row vector product v × m. The receiver's lock
// is not held while m is read and the product computed, so every row task of a
// multiplication batch can read the shared right-hand matrix concurrently. The
// final replacement of data and orientation happens under the write lock.
func (v *Vector) VecMatMul(m *Matrix) error {
	if m == nil {
		return ErrNilMatrix
	}
	v.mu.RLock()
	if v.orientation != RowMajor {
		v.mu.RUnlock()
		return ErrNotRowMajor
	}
	row := append([]float64(nil), v.data...)
	v.mu.RUnlock()

	rows := m.ReadRowMajor()
	if len(rows) != len(row) {
		return fmt.Errorf("%w: vector of %d elements times matrix of %d rows", ErrLengthMismatch, len(row), len(rows))
	}
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	result := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := range rows {
			sum += row[i] * rows[i][j]
		}
		result[j] = sum
	}

	v.mu.Lock()
	v.data = result
	v.orientation = RowMajor
	v.mu.Unlock()
	return nil
}

// lockForWrite write-locks w and read-locks r, lower ID first.
func lockForWrite(w, r *Vector) func() {
	if w.id < r.id {
		w.mu.Lock()
		r.mu.RLock()
		return func() {
			r.mu.RUnlock()
			w.mu.Unlock()
		}
	}
	r.mu.RLock()
	w.mu.Lock()
	return func() {
		w.mu.Unlock()
		r.mu.RUnlock()
	}
}

// lockForRead read-locks a and b, lower ID first.
func lockForRead(a, b *Vector) func() {
	if a == b {
		a.mu.RLock()
		return a.mu.RUnlock
	}
	first, second := a, b
	if b.id < a.id {
		first, second = b, a
	}
	first.mu.RLock()
	second.mu.RLock()
	return func() {
		second.mu.RUnlock()
		first.mu.RUnlock()
	}
}
