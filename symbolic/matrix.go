package symbolic

import (
	"fmt"
	"strings"
)

// Matrix is a dense rows×cols matrix of expressions stored in row-major
// order. Operations return new matrices; a Matrix is never modified after
// it has been handed out except through Set.
type Matrix struct {
	rows, cols int
	cells      []Expr
}

// NewMatrix returns a rows×cols matrix of zeros.
func NewMatrix(rows, cols int) *Matrix {
	cells := make([]Expr, rows*cols)
	for i := range cells {
		cells[i] = N(0)
	}
	return &Matrix{rows: rows, cols: cols, cells: cells}
}

// MatrixFromSlice builds a matrix from entries in row-major order. It
// panics when len(entries) != rows*cols.
func MatrixFromSlice(rows, cols int, entries []Expr) *Matrix {
	if len(entries) != rows*cols {
		panic(fmt.Sprintf("symbolic: MatrixFromSlice needs %d entries, got %d", rows*cols, len(entries)))
	}
	return &Matrix{rows: rows, cols: cols, cells: append([]Expr(nil), entries...)}
}

// ColumnVector stacks entries into an n×1 matrix.
func ColumnVector(entries ...Expr) *Matrix {
	return MatrixFromSlice(len(entries), 1, entries)
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.cells[i*n+i] = N(1)
	}
	return m
}

func (m *Matrix) index(row, col int) int {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("symbolic: matrix index out of range [%d,%d] for %dx%d", row, col, m.rows, m.cols))
	}
	return row*m.cols + col
}

func (m *Matrix) Get(row, col int) Expr      { return m.cells[m.index(row, col)] }
func (m *Matrix) Set(row, col int, val Expr) { m.cells[m.index(row, col)] = val }
func (m *Matrix) Rows() int                  { return m.rows }
func (m *Matrix) Cols() int                  { return m.cols }

// Entries returns the entries in row-major order.
func (m *Matrix) Entries() []Expr { return append([]Expr(nil), m.cells...) }

func (m *Matrix) row(i int) []Expr { return m.cells[i*m.cols : (i+1)*m.cols] }

// RowStrings renders each row as a slice of entry strings.
func (m *Matrix) RowStrings() [][]string {
	out := make([][]string, m.rows)
	for i := range out {
		r := m.row(i)
		out[i] = make([]string, len(r))
		for j, e := range r {
			out[i][j] = e.String()
		}
	}
	return out
}

// String renders the matrix as nested lists, e.g. [[2, 0], [0, 3]].
func (m *Matrix) String() string {
	rows := make([]string, m.rows)
	for i, r := range m.RowStrings() {
		rows[i] = "[" + strings.Join(r, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

func (m *Matrix) LaTeX() string {
	rows := make([]string, m.rows)
	for i := range rows {
		r := m.row(i)
		parts := make([]string, len(r))
		for j, e := range r {
			parts[j] = e.LaTeX()
		}
		rows[i] = strings.Join(parts, " & ")
	}
	return "\\begin{pmatrix}" + strings.Join(rows, " \\\\ ") + "\\end{pmatrix}"
}

// each returns a matrix of the same shape with f applied to every entry.
func (m *Matrix) each(f func(Expr) Expr) *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, cells: make([]Expr, len(m.cells))}
	for i, e := range m.cells {
		out.cells[i] = f(e)
	}
	return out
}

// zip combines two matrices of equal shape entry by entry.
func (m *Matrix) zip(other *Matrix, op string, f func(a, b Expr) Expr) *Matrix {
	if m.rows != other.rows || m.cols != other.cols {
		panic(fmt.Sprintf("symbolic: matrix dimension mismatch in %s: %dx%d vs %dx%d", op, m.rows, m.cols, other.rows, other.cols))
	}
	out := &Matrix{rows: m.rows, cols: m.cols, cells: make([]Expr, len(m.cells))}
	for i := range m.cells {
		out.cells[i] = f(m.cells[i], other.cells[i])
	}
	return out
}

func (m *Matrix) MatAdd(other *Matrix) *Matrix {
	return m.zip(other, "MatAdd", func(a, b Expr) Expr { return AddOf(a, b) })
}

// MatSub returns m - other with structural simplification only.
func (m *Matrix) MatSub(other *Matrix) *Matrix {
	return m.zip(other, "MatSub", func(a, b Expr) Expr { return AddOf(a, MulOf(N(-1), b)) })
}

func (m *Matrix) MatMul(other *Matrix) *Matrix {
	if m.cols != other.rows {
		panic(fmt.Sprintf("symbolic: matrix dimension mismatch in MatMul: %dx%d * %dx%d", m.rows, m.cols, other.rows, other.cols))
	}
	out := NewMatrix(m.rows, other.cols)
	terms := make([]Expr, m.cols)
	for i := 0; i < m.rows; i++ {
		r := m.row(i)
		for j := 0; j < other.cols; j++ {
			for k, a := range r {
				terms[k] = MulOf(a, other.Get(k, j))
			}
			out.Set(i, j, AddOf(terms...))
		}
	}
	return out
}

// Scale multiplies every entry by scalar.
func (m *Matrix) Scale(scalar Expr) *Matrix {
	return m.each(func(e Expr) Expr { return MulOf(scalar, e) })
}

// ApplySubs substitutes bindings simultaneously in every entry.
func (m *Matrix) ApplySubs(bindings map[string]Expr) *Matrix {
	return m.each(func(e Expr) Expr { return SubsAll(e, bindings) })
}

// Map applies f to every entry and stops at the first error.
func (m *Matrix) Map(f func(Expr) (Expr, error)) (*Matrix, error) {
	out := &Matrix{rows: m.rows, cols: m.cols, cells: make([]Expr, len(m.cells))}
	for i, e := range m.cells {
		v, err := f(e)
		if err != nil {
			return nil, fmt.Errorf("entry [%d,%d]: %w", i/m.cols, i%m.cols, err)
		}
		out.cells[i] = v
	}
	return out, nil
}

// IsZeroLiteral reports whether every entry is the number 0 as written.
func (m *Matrix) IsZeroLiteral() bool {
	for _, e := range m.cells {
		if !IsZeroLiteral(e) {
			return false
		}
	}
	return true
}

// IsZero reports whether every entry is identically zero.
func (m *Matrix) IsZero(limits Limits) (bool, error) {
	for i, e := range m.cells {
		zero, err := IsZero(e, limits)
		if err != nil {
			return false, fmt.Errorf("entry [%d,%d]: %w", i/m.cols, i%m.cols, err)
		}
		if !zero {
			return false, nil
		}
	}
	return true, nil
}

func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, e := range m.cells {
		if !e.Equal(other.cells[i]) {
			return false
		}
	}
	return true
}
