// Package symbolic is a small computer algebra kernel used to derive closed-form joint transforms.
// It supports constants, symbols, sums, products, constant powers, sin and cos, along with
// differentiation, substitution, tolerance based rationalization of constants and compilation
// of expressions into numeric functions.
package symbolic

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Expr is an immutable symbolic expression.
type Expr interface {
	// String returns the canonical text form of the expression. Two expressions with the same
	// text are considered equal.
	String() string

	// Diff returns the derivative of the expression with respect to the named symbol.
	Diff(name string) Expr

	// Subs replaces every occurrence of the named symbol with value.
	Subs(name string, value Expr) Expr

	// Eval evaluates the expression with the given symbol values.
	Eval(env map[string]float64) (float64, error)

	rationalize(tol float64) Expr
	symbols(out map[string]struct{})
	compile(index map[string]int) (evalFunc, error)
}

type evalFunc func(vals []float64) float64

// Const is a numeric constant.
type Const float64

// Num returns a constant expression.
func Num(v float64) Expr {
	return Const(v)
}

var (
	zero Expr = Const(0)
	one  Expr = Const(1)
)

func (c Const) String() string {
	return formatFloat(float64(c))
}

// Diff of a constant is always zero.
func (c Const) Diff(string) Expr {
	return zero
}

// Subs returns the constant unchanged.
func (c Const) Subs(string, Expr) Expr {
	return c
}

// Eval returns the constant value.
func (c Const) Eval(map[string]float64) (float64, error) {
	return float64(c), nil
}

func (c Const) rationalize(tol float64) Expr {
	return Const(Rationalize(float64(c), tol))
}

func (c Const) symbols(map[string]struct{}) {}

func (c Const) compile(map[string]int) (evalFunc, error) {
	v := float64(c)
	return func([]float64) float64 { return v }, nil
}

// Symbol is a free variable.
type Symbol struct {
	name string
}

// NewSymbol returns a symbol with the given name.
func NewSymbol(name string) *Symbol {
	return &Symbol{name: name}
}

// Symbols returns one symbol per name, in order.
func Symbols(names ...string) []*Symbol {
	syms := make([]*Symbol, 0, len(names))
	for _, n := range names {
		syms = append(syms, NewSymbol(n))
	}
	return syms
}

// Name returns the name of the symbol.
func (s *Symbol) Name() string {
	return s.name
}

func (s *Symbol) String() string {
	return s.name
}

// Diff returns one if name is this symbol, zero otherwise.
func (s *Symbol) Diff(name string) Expr {
	if s.name == name {
		return one
	}
	return zero
}

// Subs returns value if name is this symbol.
func (s *Symbol) Subs(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

// Eval looks the symbol up in env.
func (s *Symbol) Eval(env map[string]float64) (float64, error) {
	v, ok := env[s.name]
	if !ok {
		return 0, NewUnboundSymbolError(s.name)
	}
	return v, nil
}

func (s *Symbol) rationalize(float64) Expr {
	return s
}

func (s *Symbol) symbols(out map[string]struct{}) {
	out[s.name] = struct{}{}
}

func (s *Symbol) compile(index map[string]int) (evalFunc, error) {
	i, ok := index[s.name]
	if !ok {
		return nil, NewUnboundSymbolError(s.name)
	}
	return func(vals []float64) float64 { return vals[i] }, nil
}

// ErrUnboundSymbol is returned when an expression is evaluated or compiled without a value for one of its symbols.
var ErrUnboundSymbol = errors.New("unbound symbol")

// NewUnboundSymbolError names the symbol that had no value.
func NewUnboundSymbolError(name string) error {
	return errors.Wrapf(ErrUnboundSymbol, "%q", name)
}

// Equal reports whether two expressions have the same canonical form.
func Equal(a, b Expr) bool {
	return a.String() == b.String()
}

// IsZero reports whether e is the constant zero.
func IsZero(e Expr) bool {
	c, ok := e.(Const)
	return ok && c == 0
}

// FreeSymbols returns the names of every symbol that appears in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	e.symbols(out)
	return out
}

func formatFloat(v float64) string {
	if v == 0 {
		// avoid printing -0
		return "0"
	}
	if math.Trunc(v) == v && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
