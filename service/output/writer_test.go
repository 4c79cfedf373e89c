package output

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestNumber_MarshalJSON(t *testing.T) {
	testCases := []struct {
		value  float64
		expect string
	}{
		{value: 3, expect: "3.0"},
		{value: -7, expect: "-7.0"},
		{value: 0, expect: "0.0"},
		{value: 2.5, expect: "2.5"},
		{value: 1e21, expect: "1000000000000000000000.0"},
		{value: 0.000001, expect: "0.000001"},
		{value: math.Inf(1), expect: `"+Inf"`},
	}
	for _, tc := range testCases {
		data, err := Number(tc.value).MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, tc.expect, string(data))
	}
}

func TestWriter(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()

	testCases := []struct {
		description string
		write       func(w *Writer, URL string) error
		expect      string
	}{
		{
			description: "result",
			write: func(w *Writer, URL string) error {
				return w.WriteResult(ctx, URL, [][]float64{{3, 3}, {1.5, -2}})
			},
			expect: `{"result":[[3.0,3.0],[1.5,-2.0]]}`,
		},
		{
			description: "empty result",
			write: func(w *Writer, URL string) error {
				return w.WriteResult(ctx, URL, [][]float64{})
			},
			expect: `{"result":[]}`,
		},
		{
			description: "error",
			write: func(w *Writer, URL string) error {
				return w.WriteError(ctx, URL, errors.New("Illegal operation: dimensions mismatch"))
			},
			expect: `{"error":"Illegal operation: dimensions mismatch"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			URL := "mem://localhost/lae/output/" + tc.description + ".json"
			require.NoError(t, tc.write(New(fs), URL))
			data, err := fs.DownloadWithURL(ctx, URL)
			require.NoError(t, err)
			assert.JSONEq(t, tc.expect, string(data))
			assert.Equal(t, tc.expect, string(data))
		})
	}
}

func TestWriter_Indent(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/lae/output/indent.json"
	require.NoError(t, New(fs, WithIndent("  ")).WriteResult(ctx, URL, [][]float64{{1}}))
	data, err := fs.DownloadWithURL(ctx, URL)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"result\"")
	assert.Contains(t, string(data), "1.0")
}
