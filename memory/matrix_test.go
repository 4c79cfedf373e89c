package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMatrix_LoadAndReadRowMajor(t *testing.T) {
	input := [][]float64{{1, 2, 3}, {4, 5, 6}}
	m, err := NewMatrixFromRows(input)
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, RowMajor, m.Orientation())
	assert.Equal(t, input, m.ReadRowMajor())
}

func TestMatrix_LoadColumnMajor(t *testing.T) {
	input := [][]float64{{1, 2, 3}, {4, 5, 6}}
	m := NewMatrix()
	require.NoError(t, m.LoadColumnMajor(input))

	assert.Equal(t, 3, m.Len())
	first, err := m.Get(0)
	require.NoError(t, err)
	assert.Equal(t, ColumnMajor, first.Orientation())
	assert.Equal(t, []float64{1, 4}, first.Values())
	assert.Equal(t, input, m.ReadRowMajor())
}

func TestMatrix_Empty(t *testing.T) {
	m := NewMatrix()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, RowMajor, m.Orientation())
	assert.Equal(t, [][]float64{}, m.ReadRowMajor())

	require.NoError(t, m.LoadColumnMajor(nil))
	assert.Equal(t, 0, m.Len())

	_, err := m.Get(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestMatrix_RaggedInput(t *testing.T) {
	m := NewMatrix()
	assert.ErrorIs(t, m.LoadRowMajor([][]float64{{1, 2}, {3}}), ErrLengthMismatch)
	assert.ErrorIs(t, m.LoadColumnMajor([][]float64{{1}, {2, 3}}), ErrLengthMismatch)
	assert.Equal(t, 0, m.Len(), "failed load must not replace content")
}

func TestMatrix_OrientationSwitchOnReload(t *testing.T) {
	data := [][]float64{{1, 2}, {3, 4}}
	m, err := NewMatrixFromRows(data)
	require.NoError(t, err)
	assert.Equal(t, RowMajor, m.Orientation())

	require.NoError(t, m.LoadColumnMajor(data))
	assert.Equal(t, ColumnMajor, m.Orientation())
	assert.Equal(t, data, m.ReadRowMajor())
}

func TestMatrix_ReloadReplacesData(t *testing.T) {
	m, err := NewMatrixFromRows([][]float64{{1, 1}, {1, 1}})
	require.NoError(t, err)
	require.NoError(t, m.LoadRowMajor([][]float64{{9.9, 8.8}, {7.7, 6.6}}))

	current := m.ReadRowMajor()
	assert.Equal(t, 9.9, current[0][0])
	assert.Equal(t, 6.6, current[1][1])
}

func TestMatrix_TransposedRowsReadAsColumns(t *testing.T) {
	m, err := NewMatrixFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	for i := 0; i < m.Len(); i++ {
		vector, err := m.Get(i)
		require.NoError(t, err)
		vector.Transpose()
	}
	assert.Equal(t, ColumnMajor, m.Orientation())
	assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, m.ReadRowMajor())
}

func TestMatrix_ReadIsDetached(t *testing.T) {
	m, err := NewMatrixFromRows([][]float64{{1, 2}})
	require.NoError(t, err)
	snapshot := m.ReadRowMajor()
	snapshot[0][0] = 100

	again := m.ReadRowMajor()
	assert.Equal(t, 1.0, again[0][0])
}

func TestMatrix_ConcurrentRowMutationAndSnapshots(t *testing.T) {
	const size = 64
	data := make([][]float64, size)
	for i := range data {
		data[i] = make([]float64, size)
	}
	m, err := NewMatrixFromRows(data)
	require.NoError(t, err)
	ones := make([]float64, size)
	for i := range ones {
		ones[i] = 1
	}
	increment := NewVector(ones, RowMajor)

	var group errgroup.Group
	for i := 0; i < size; i++ {
		row, err := m.Get(i)
		require.NoError(t, err)
		group.Go(func() error { return row.Add(increment) })
		group.Go(func() error {
			for _, values := range m.ReadRowMajor() {
				for _, value := range values[1:] {
					if value != values[0] {
						t.Errorf("torn row snapshot: %v", values)
					}
				}
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())

	for _, row := range m.ReadRowMajor() {
		for _, value := range row {
			assert.Equal(t, 1.0, value)
		}
	}
}
