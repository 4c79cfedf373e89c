package memory

// Orientation tells whether a vector holds a row or a column of a 2-D array.
type Orientation int

const (
	RowMajor Orientation = iota
	ColumnMajor
)

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation {
	if o == RowMajor {
		return ColumnMajor
	}
	return RowMajor
}

func (o Orientation) String() string {
	switch o {
	case RowMajor:
		return "row"
	case ColumnMajor:
		return "column"
	default:
		return "unknown"
	}
}
