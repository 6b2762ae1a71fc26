package pattern

// Matrix is a table of per-row outcome counts, e.g. one row per corpus file
// and one column per outcome.
type Matrix struct {
	Label   string
	Columns []string
	Failing int // leading columns that count failures
	Rows    []MatrixRow
	Footer  *MatrixRow
}

// MatrixRow is one row of counts aligned with Matrix.Columns.
type MatrixRow struct {
	Name   string
	Status string
	Counts []int
}

func (m *Matrix) Type() PatternType { return PatternTypeMatrix }
