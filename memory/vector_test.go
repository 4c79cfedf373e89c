package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestVector_BasicOperations(t *testing.T) {
	v1 := NewVector([]float64{1, 2, 3}, RowMajor)
	v2 := NewVector([]float64{4, 5, 6}, RowMajor)

	dot, err := v1.Dot(v2)
	require.NoError(t, err)
	assert.InDelta(t, 32.0, dot, 1e-9)

	require.NoError(t, v1.Add(v2))
	assert.Equal(t, []float64{5, 7, 9}, v1.Values())

	v1.Negate()
	assert.Equal(t, []float64{-5, -7, -9}, v1.Values())
	assert.Equal(t, []float64{4, 5, 6}, v2.Values())
}

func TestVector_Get(t *testing.T) {
	v := NewVector([]float64{1.5, 2.5}, ColumnMajor)
	value, err := v.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 2.5, value)

	_, err = v.Get(2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = v.Get(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestVector_Transpose(t *testing.T) {
	v := NewVector([]float64{1, 2}, RowMajor)
	v.Transpose()
	assert.Equal(t, ColumnMajor, v.Orientation())
	assert.Equal(t, []float64{1, 2}, v.Values())
	v.Transpose()
	assert.Equal(t, RowMajor, v.Orientation())
}

func TestVector_InvalidArguments(t *testing.T) {
	testCases := []struct {
		name   string
		run    func() error
		expect error
	}{
		{
			name:   "add nil",
			run:    func() error { return NewVector([]float64{1}, RowMajor).Add(nil) },
			expect: ErrNilVector,
		},
		{
			name: "add length mismatch",
			run: func() error {
				return NewVector([]float64{1, 2}, RowMajor).Add(NewVector([]float64{1, 2, 3}, RowMajor))
			},
			expect: ErrLengthMismatch,
		},
		{
			name: "dot nil",
			run: func() error {
				_, err := NewVector([]float64{1}, RowMajor).Dot(nil)
				return err
			},
			expect: ErrNilVector,
		},
		{
			name: "dot length mismatch",
			run: func() error {
				_, err := NewVector([]float64{1}, RowMajor).Dot(NewVector([]float64{1, 2}, RowMajor))
				return err
			},
			expect: ErrLengthMismatch,
		},
		{
			name:   "vecmatmul nil",
			run:    func() error { return NewVector([]float64{1}, RowMajor).VecMatMul(nil) },
			expect: ErrNilMatrix,
		},
		{
			name: "vecmatmul column vector",
			run: func() error {
				m, _ := NewMatrixFromRows([][]float64{{1}})
				return NewVector([]float64{1}, ColumnMajor).VecMatMul(m)
			},
			expect: ErrNotRowMajor,
		},
		{
			name: "vecmatmul rows mismatch",
			run: func() error {
				m, _ := NewMatrixFromRows([][]float64{{1, 2}, {3, 4}})
				return NewVector([]float64{1, 2, 3}, RowMajor).VecMatMul(m)
			},
			expect: ErrLengthMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), tc.expect)
		})
	}
}

func TestVector_AddSelf(t *testing.T) {
	v := NewVector([]float64{1, -2}, RowMajor)
	require.NoError(t, v.Add(v))
	assert.Equal(t, []float64{2, -4}, v.Values())

	dot, err := v.Dot(v)
	require.NoError(t, err)
	assert.Equal(t, 20.0, dot)
}

func TestVector_VecMatMul(t *testing.T) {
	t.Run("identity keeps values", func(t *testing.T) {
		identity, err := NewMatrixFromRows([][]float64{{1, 0}, {0, 1}})
		require.NoError(t, err)
		v := NewVector([]float64{1, 2}, RowMajor)
		require.NoError(t, v.VecMatMul(identity))
		assert.Equal(t, 2, v.Len())
		assert.Equal(t, []float64{1, 2}, v.Values())
		assert.Equal(t, RowMajor, v.Orientation())
	})

	t.Run("resizes to matrix columns", func(t *testing.T) {
		m, err := NewMatrixFromRows([][]float64{{1, 2}, {1, 2}, {1, 2}})
		require.NoError(t, err)
		v := NewVector([]float64{1, 1, 1}, RowMajor)
		require.NoError(t, v.VecMatMul(m))
		assert.Equal(t, []float64{3, 6}, v.Values())
	})

	t.Run("column major operand", func(t *testing.T) {
		m := NewMatrix()
		require.NoError(t, m.LoadColumnMajor([][]float64{{1, 2}, {3, 4}, {5, 6}}))
		v := NewVector([]float64{1, 2, 3}, RowMajor)
		require.NoError(t, v.VecMatMul(m))
		assert.Equal(t, []float64{22, 28}, v.Values())
	})

	t.Run("empty matrix", func(t *testing.T) {
		v := NewVector(nil, RowMajor)
		require.NoError(t, v.VecMatMul(NewMatrix()))
		assert.Equal(t, 0, v.Len())
	})
}

func TestVector_OrthogonalDot(t *testing.T) {
	dot, err := NewVector([]float64{1, 0}, RowMajor).Dot(NewVector([]float64{0, 1}, RowMajor))
	require.NoError(t, err)
	assert.Equal(t, 0.0, dot)
}

func TestVector_IDsAreUnique(t *testing.T) {
	a := NewVector(nil, RowMajor)
	b := NewVector(nil, RowMajor)
	assert.Less(t, a.ID(), b.ID())
}

// Cross pairs lock in the same global order, so opposing Add calls on the
// same two vectors must always terminate.
func TestVector_CrossPairAddDoesNotDeadlock(t *testing.T) {
	a := NewVector([]float64{1, 1}, RowMajor)
	b := NewVector([]float64{1, 1}, RowMajor)

	done := make(chan error, 1)
	go func() {
		var group errgroup.Group
		for i := 0; i < 200; i++ {
			group.Go(func() error { return a.Add(b) })
			group.Go(func() error { return b.Add(a) })
			group.Go(func() error {
				_, err := a.Dot(b)
				return err
			})
			group.Go(func() error {
				_, err := b.Dot(a)
				return err
			})
		}
		done <- group.Wait()
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("cross pair Add deadlocked")
	}
}

func TestVector_ConcurrentReadersDuringNegate(t *testing.T) {
	v := NewVector([]float64{1, 1, 1, 1}, RowMajor)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			v.Negate()
		}()
		go func() {
			defer wg.Done()
			values := v.Values()
			for _, value := range values[1:] {
				assert.Equal(t, values[0], value, "torn read")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, []float64{1, 1, 1, 1}, v.Values())
}
