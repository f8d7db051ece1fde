package symbolic

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense, row-major matrix of expressions. Shape mismatches panic with mat.ErrShape,
// matching the behavior of gonum's mat package.
type Matrix struct {
	rows, cols int
	data       []Expr
}

// MatrixFunc evaluates a compiled matrix. Values are bound positionally to the variables the
// matrix was compiled with.
type MatrixFunc func(vals ...float64) (*mat.Dense, error)

// Zeros returns a rows x cols matrix of zeros.
func Zeros(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(mat.ErrZeroLength)
	}
	data := make([]Expr, rows*cols)
	for i := range data {
		data[i] = zero
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := Zeros(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, one)
	}
	return m
}

// MatrixFromRows builds a matrix from a slice of equally sized rows.
func MatrixFromRows(rows [][]Expr) *Matrix {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic(mat.ErrZeroLength)
	}
	m := Zeros(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			panic(mat.ErrShape)
		}
		for j, e := range row {
			m.Set(i, j, e)
		}
	}
	return m
}

// FromDense converts a numeric matrix into a constant expression matrix.
func FromDense(d mat.Matrix) *Matrix {
	r, c := d.Dims()
	m := Zeros(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, Const(d.At(i, j)))
		}
	}
	return m
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (int, int) {
	return m.rows, m.cols
}

// At returns the expression at row i, column j.
func (m *Matrix) At(i, j int) Expr {
	m.checkBounds(i, j)
	return m.data[i*m.cols+j]
}

// Set stores e at row i, column j.
func (m *Matrix) Set(i, j int, e Expr) {
	m.checkBounds(i, j)
	m.data[i*m.cols+j] = e
}

func (m *Matrix) checkBounds(i, j int) {
	if i < 0 || i >= m.rows {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.cols {
		panic(mat.ErrColAccess)
	}
}

// Clone returns a copy of m.
func (m *Matrix) Clone() *Matrix {
	data := make([]Expr, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// Apply returns a new matrix with f applied to every entry.
func (m *Matrix) Apply(f func(Expr) Expr) *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, data: make([]Expr, len(m.data))}
	for i, e := range m.data {
		out.data[i] = f(e)
	}
	return out
}

// Mul returns the matrix product m * o.
func (m *Matrix) Mul(o *Matrix) *Matrix {
	if m.cols != o.rows {
		panic(mat.ErrShape)
	}
	out := Zeros(m.rows, o.cols)
	terms := make([]Expr, 0, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < o.cols; j++ {
			terms = terms[:0]
			for k := 0; k < m.cols; k++ {
				a, b := m.At(i, k), o.At(k, j)
				if IsZero(a) || IsZero(b) {
					continue
				}
				terms = append(terms, Mul(a, b))
			}
			out.Set(i, j, Add(terms...))
		}
	}
	return out
}

// Add returns the elementwise sum m + o.
func (m *Matrix) Add(o *Matrix) *Matrix {
	if m.rows != o.rows || m.cols != o.cols {
		panic(mat.ErrShape)
	}
	out := m.Clone()
	for i := range out.data {
		out.data[i] = Add(m.data[i], o.data[i])
	}
	return out
}

// Neg returns -m.
func (m *Matrix) Neg() *Matrix {
	return m.Apply(Neg)
}

// Scale returns s * m.
func (m *Matrix) Scale(s Expr) *Matrix {
	return m.Apply(func(e Expr) Expr { return Mul(s, e) })
}

// T returns the transpose of m.
func (m *Matrix) T() *Matrix {
	out := Zeros(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}
	return out
}

// Slice returns a copy of rows [i0, i1) and columns [j0, j1).
func (m *Matrix) Slice(i0, i1, j0, j1 int) *Matrix {
	if i0 < 0 || i1 > m.rows || i0 >= i1 || j0 < 0 || j1 > m.cols || j0 >= j1 {
		panic(mat.ErrIndexOutOfRange)
	}
	out := Zeros(i1-i0, j1-j0)
	for i := i0; i < i1; i++ {
		for j := j0; j < j1; j++ {
			out.Set(i-i0, j-j0, m.At(i, j))
		}
	}
	return out
}

// SetSlice overwrites the block of m starting at (i, j) with the contents of b.
func (m *Matrix) SetSlice(i, j int, b *Matrix) {
	if i+b.rows > m.rows || j+b.cols > m.cols {
		panic(mat.ErrShape)
	}
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			m.Set(i+r, j+c, b.At(r, c))
		}
	}
}

// VStack stacks matrices with equal column counts on top of each other.
func VStack(ms ...*Matrix) *Matrix {
	rows := 0
	for _, m := range ms {
		if m.cols != ms[0].cols {
			panic(mat.ErrShape)
		}
		rows += m.rows
	}
	out := Zeros(rows, ms[0].cols)
	at := 0
	for _, m := range ms {
		out.SetSlice(at, 0, m)
		at += m.rows
	}
	return out
}

// HStack places matrices with equal row counts side by side.
func HStack(ms ...*Matrix) *Matrix {
	cols := 0
	for _, m := range ms {
		if m.rows != ms[0].rows {
			panic(mat.ErrShape)
		}
		cols += m.cols
	}
	out := Zeros(ms[0].rows, cols)
	at := 0
	for _, m := range ms {
		out.SetSlice(0, at, m)
		at += m.cols
	}
	return out
}

// Diff differentiates every entry with respect to the named symbol.
func (m *Matrix) Diff(name string) *Matrix {
	return m.Apply(func(e Expr) Expr { return e.Diff(name) })
}

// Subs substitutes value for the named symbol in every entry.
func (m *Matrix) Subs(name string, value Expr) *Matrix {
	return m.Apply(func(e Expr) Expr { return e.Subs(name, value) })
}

// Rationalize snaps every constant in m to the simplest rational within tol and evaluates it back
// to a float. This collapses values such as 0.99999999 or 1e-9 that come from imprecise inputs.
func (m *Matrix) Rationalize(tol float64) *Matrix {
	return m.Apply(func(e Expr) Expr { return e.rationalize(tol) })
}

// Evalf evaluates every entry with the given symbol values.
func (m *Matrix) Evalf(env map[string]float64) (*mat.Dense, error) {
	vals := make([]float64, len(m.data))
	for i, e := range m.data {
		v, err := e.Eval(env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return mat.NewDense(m.rows, m.cols, vals), nil
}

// Compile turns m into a numeric function of vars. Every free symbol of m must appear in vars.
func (m *Matrix) Compile(vars ...*Symbol) (MatrixFunc, error) {
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		if _, dup := index[v.Name()]; dup {
			return nil, errors.Errorf("variable %q listed more than once", v.Name())
		}
		index[v.Name()] = i
	}
	fns, err := compileAll(m.data, index)
	if err != nil {
		return nil, errors.Wrap(err, "cannot compile matrix")
	}
	rows, cols, arity := m.rows, m.cols, len(vars)
	return func(vals ...float64) (*mat.Dense, error) {
		if len(vals) != arity {
			return nil, NewIncorrectArityError(len(vals), arity)
		}
		out := make([]float64, len(fns))
		for i, f := range fns {
			out[i] = f(vals)
		}
		return mat.NewDense(rows, cols, out), nil
	}, nil
}

// NewIncorrectArityError is returned when a compiled function receives the wrong number of values.
func NewIncorrectArityError(actual, expected int) error {
	return errors.Errorf("number of values given (%d) does not match number of variables (%d)", actual, expected)
}

// FreeSymbols returns the sorted names of every symbol used in m.
func (m *Matrix) FreeSymbols() []string {
	set := map[string]struct{}{}
	for _, e := range m.data {
		e.symbols(set)
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether m and o have the same shape and canonically equal entries.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.data {
		if !Equal(m.data[i], o.data[i]) {
			return false
		}
	}
	return true
}

// String formats m one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteString("\n ")
		}
		sb.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.At(i, j).String())
		}
		sb.WriteString("]")
	}
	sb.WriteString("]")
	return sb.String()
}

