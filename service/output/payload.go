package output

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a float64 that always marshals with a decimal point (3.0, not 3).
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	value := float64(n)
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return json.Marshal(strconv.FormatFloat(value, 'g', -1, 64))
	}
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return []byte(text), nil
}

// Result is the success payload.
type Result struct {
	Result [][]Number `json:"result"`
}

// Error is the failure payload.
type Error struct {
	Error string `json:"error"`
}

// NewResult converts a row-major matrix into a result payload.
func NewResult(data [][]float64) *Result {
	rows := make([][]Number, len(data))
	for i, row := range data {
		rows[i] = make([]Number, len(row))
		for j, value := range row {
			rows[i][j] = Number(value)
		}
	}
	return &Result{Result: rows}
}

// NewError creates a failure payload carrying err's message.
func NewError(err error) *Error {
	return &Error{Error: err.Error()}
}
