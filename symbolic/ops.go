package symbolic

import (
	"math"
	"sort"
	"strings"
)

// Sum is c + terms[0] + terms[1] + ... with terms kept in canonical order.
type Sum struct {
	c     float64
	terms []Expr
	str   string
}

// Product is coeff * factors[0] * factors[1] * ... with factors kept in canonical order.
type Product struct {
	coeff   float64
	factors []Expr
	str     string
}

// Power is base raised to a constant exponent.
type Power struct {
	base Expr
	exp  float64
	str  string
}

// Call is the application of an elementary function to an argument.
type Call struct {
	fn  string
	arg Expr
	str string
}

const (
	fnSin = "sin"
	fnCos = "cos"
)

// Add returns the simplified sum of the given terms. Constants are folded and like terms are combined.
func Add(terms ...Expr) Expr {
	type accum struct {
		coeff float64
		rest  Expr
	}
	var c float64
	accs := map[string]*accum{}
	var order []string

	var push func(e Expr)
	push = func(e Expr) {
		switch t := e.(type) {
		case Const:
			c += float64(t)
		case *Sum:
			c += t.c
			for _, s := range t.terms {
				push(s)
			}
		default:
			k, rest := splitCoeff(e)
			key := rest.String()
			if a, ok := accs[key]; ok {
				a.coeff += k
				return
			}
			accs[key] = &accum{k, rest}
			order = append(order, key)
		}
	}
	for _, t := range terms {
		push(t)
	}

	sort.Strings(order)
	out := make([]Expr, 0, len(order))
	for _, key := range order {
		a := accs[key]
		if a.coeff == 0 {
			continue
		}
		out = append(out, scale(a.coeff, a.rest))
	}
	if len(out) == 0 {
		return Const(c)
	}
	if len(out) == 1 && c == 0 {
		return out[0]
	}
	return newSum(c, out)
}

// Mul returns the simplified product of the given factors. Constants are folded and like bases are
// combined into powers.
func Mul(factors ...Expr) Expr {
	type accum struct {
		base Expr
		exp  float64
	}
	coeff := 1.0
	accs := map[string]*accum{}
	var order []string

	var push func(e Expr)
	push = func(e Expr) {
		switch f := e.(type) {
		case Const:
			coeff *= float64(f)
		case *Product:
			coeff *= f.coeff
			for _, g := range f.factors {
				push(g)
			}
		default:
			base, exp := e, 1.0
			if p, ok := e.(*Power); ok {
				base, exp = p.base, p.exp
			}
			key := base.String()
			if a, ok := accs[key]; ok {
				a.exp += exp
				return
			}
			accs[key] = &accum{base, exp}
			order = append(order, key)
		}
	}
	for _, f := range factors {
		push(f)
	}
	if coeff == 0 {
		return zero
	}

	sort.Strings(order)
	out := make([]Expr, 0, len(order))
	for _, key := range order {
		a := accs[key]
		if a.exp == 0 {
			continue
		}
		switch f := Pow(a.base, a.exp).(type) {
		case Const:
			coeff *= float64(f)
		case *Product:
			coeff *= f.coeff
			out = append(out, f.factors...)
		default:
			out = append(out, f)
		}
	}
	if coeff == 0 {
		return zero
	}
	if len(out) == 0 {
		return Const(coeff)
	}
	if len(out) == 1 && coeff == 1 {
		return out[0]
	}
	return newProduct(coeff, out)
}

// Pow returns base raised to a constant exponent.
func Pow(base Expr, exp float64) Expr {
	switch exp {
	case 0:
		return one
	case 1:
		return base
	}
	integral := exp == math.Trunc(exp)
	switch b := base.(type) {
	case Const:
		if v := math.Pow(float64(b), exp); !math.IsNaN(v) && !math.IsInf(v, 0) {
			return Const(v)
		}
	case *Power:
		if integral {
			return Pow(b.base, b.exp*exp)
		}
	case *Product:
		if integral {
			fs := make([]Expr, 0, len(b.factors)+1)
			fs = append(fs, Const(math.Pow(b.coeff, exp)))
			for _, f := range b.factors {
				fs = append(fs, Pow(f, exp))
			}
			return Mul(fs...)
		}
	}
	return newPower(base, exp)
}

// Neg returns -e.
func Neg(e Expr) Expr {
	return Mul(Const(-1), e)
}

// Sub returns a - b.
func Sub(a, b Expr) Expr {
	return Add(a, Neg(b))
}

// Div returns a / b.
func Div(a, b Expr) Expr {
	return Mul(a, Pow(b, -1))
}

// Sqrt returns the principal square root of e.
func Sqrt(e Expr) Expr {
	return Pow(e, 0.5)
}

// Sin returns sin(e).
func Sin(e Expr) Expr {
	return apply(fnSin, e)
}

// Cos returns cos(e).
func Cos(e Expr) Expr {
	return apply(fnCos, e)
}

func apply(fn string, arg Expr) Expr {
	if c, ok := arg.(Const); ok {
		return Const(callFloat(fn, float64(c)))
	}
	return &Call{fn: fn, arg: arg, str: fn + "(" + arg.String() + ")"}
}

func callFloat(fn string, v float64) float64 {
	switch fn {
	case fnSin:
		return math.Sin(v)
	case fnCos:
		return math.Cos(v)
	default:
		return math.NaN()
	}
}

// splitCoeff separates the numeric coefficient from the rest of a term.
func splitCoeff(e Expr) (float64, Expr) {
	p, ok := e.(*Product)
	if !ok || p.coeff == 1 {
		return 1, e
	}
	if len(p.factors) == 1 {
		return p.coeff, p.factors[0]
	}
	return p.coeff, newProduct(1, p.factors)
}

func scale(k float64, rest Expr) Expr {
	if k == 1 {
		return rest
	}
	if p, ok := rest.(*Product); ok {
		return newProduct(k*p.coeff, p.factors)
	}
	return newProduct(k, []Expr{rest})
}

func newSum(c float64, terms []Expr) *Sum {
	var sb strings.Builder
	first := true
	write := func(s string) {
		switch {
		case first:
			sb.WriteString(s)
		case strings.HasPrefix(s, "-"):
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		default:
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
		first = false
	}
	for _, t := range terms {
		write(t.String())
	}
	if c != 0 {
		write(formatFloat(c))
	}
	return &Sum{c: c, terms: terms, str: sb.String()}
}

func newProduct(coeff float64, factors []Expr) *Product {
	parts := make([]string, 0, len(factors))
	for _, f := range factors {
		if _, ok := f.(*Sum); ok {
			parts = append(parts, "("+f.String()+")")
			continue
		}
		parts = append(parts, f.String())
	}
	body := strings.Join(parts, "*")
	switch coeff {
	case 1:
	case -1:
		body = "-" + body
	default:
		body = formatFloat(coeff) + "*" + body
	}
	return &Product{coeff: coeff, factors: factors, str: body}
}

func newPower(base Expr, exp float64) *Power {
	b := base.String()
	switch base.(type) {
	case *Symbol, *Call:
	default:
		b = "(" + b + ")"
	}
	e := formatFloat(exp)
	if exp < 0 || exp != math.Trunc(exp) {
		e = "(" + e + ")"
	}
	return &Power{base: base, exp: exp, str: b + "^" + e}
}

func (s *Sum) String() string     { return s.str }
func (p *Product) String() string { return p.str }
func (p *Power) String() string   { return p.str }
func (c *Call) String() string    { return c.str }

// Diff differentiates term by term.
func (s *Sum) Diff(name string) Expr {
	parts := make([]Expr, 0, len(s.terms))
	for _, t := range s.terms {
		parts = append(parts, t.Diff(name))
	}
	return Add(parts...)
}

// Diff applies the product rule.
func (p *Product) Diff(name string) Expr {
	parts := make([]Expr, 0, len(p.factors))
	for i, f := range p.factors {
		d := f.Diff(name)
		if IsZero(d) {
			continue
		}
		fs := make([]Expr, 0, len(p.factors)+1)
		fs = append(fs, Const(p.coeff), d)
		for j, g := range p.factors {
			if j != i {
				fs = append(fs, g)
			}
		}
		parts = append(parts, Mul(fs...))
	}
	return Add(parts...)
}

// Diff applies the power rule with the chain rule.
func (p *Power) Diff(name string) Expr {
	d := p.base.Diff(name)
	if IsZero(d) {
		return zero
	}
	return Mul(Const(p.exp), Pow(p.base, p.exp-1), d)
}

// Diff applies the chain rule.
func (c *Call) Diff(name string) Expr {
	d := c.arg.Diff(name)
	if IsZero(d) {
		return zero
	}
	switch c.fn {
	case fnSin:
		return Mul(Cos(c.arg), d)
	case fnCos:
		return Mul(Const(-1), Sin(c.arg), d)
	default:
		return Const(math.NaN())
	}
}

func (s *Sum) Subs(name string, value Expr) Expr {
	parts := make([]Expr, 0, len(s.terms)+1)
	parts = append(parts, Const(s.c))
	for _, t := range s.terms {
		parts = append(parts, t.Subs(name, value))
	}
	return Add(parts...)
}

func (p *Product) Subs(name string, value Expr) Expr {
	fs := make([]Expr, 0, len(p.factors)+1)
	fs = append(fs, Const(p.coeff))
	for _, f := range p.factors {
		fs = append(fs, f.Subs(name, value))
	}
	return Mul(fs...)
}

func (p *Power) Subs(name string, value Expr) Expr {
	return Pow(p.base.Subs(name, value), p.exp)
}

func (c *Call) Subs(name string, value Expr) Expr {
	return apply(c.fn, c.arg.Subs(name, value))
}

func (s *Sum) Eval(env map[string]float64) (float64, error) {
	total := s.c
	for _, t := range s.terms {
		v, err := t.Eval(env)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

func (p *Product) Eval(env map[string]float64) (float64, error) {
	total := p.coeff
	for _, f := range p.factors {
		v, err := f.Eval(env)
		if err != nil {
			return 0, err
		}
		total *= v
	}
	return total, nil
}

func (p *Power) Eval(env map[string]float64) (float64, error) {
	v, err := p.base.Eval(env)
	if err != nil {
		return 0, err
	}
	return math.Pow(v, p.exp), nil
}

func (c *Call) Eval(env map[string]float64) (float64, error) {
	v, err := c.arg.Eval(env)
	if err != nil {
		return 0, err
	}
	return callFloat(c.fn, v), nil
}

func (s *Sum) rationalize(tol float64) Expr {
	parts := make([]Expr, 0, len(s.terms)+1)
	parts = append(parts, Const(Rationalize(s.c, tol)))
	for _, t := range s.terms {
		parts = append(parts, t.rationalize(tol))
	}
	return Add(parts...)
}

func (p *Product) rationalize(tol float64) Expr {
	fs := make([]Expr, 0, len(p.factors)+1)
	fs = append(fs, Const(Rationalize(p.coeff, tol)))
	for _, f := range p.factors {
		fs = append(fs, f.rationalize(tol))
	}
	return Mul(fs...)
}

func (p *Power) rationalize(tol float64) Expr {
	return Pow(p.base.rationalize(tol), p.exp)
}

func (c *Call) rationalize(tol float64) Expr {
	return apply(c.fn, c.arg.rationalize(tol))
}

func (s *Sum) symbols(out map[string]struct{}) {
	for _, t := range s.terms {
		t.symbols(out)
	}
}

func (p *Product) symbols(out map[string]struct{}) {
	for _, f := range p.factors {
		f.symbols(out)
	}
}

func (p *Power) symbols(out map[string]struct{}) { p.base.symbols(out) }
func (c *Call) symbols(out map[string]struct{})  { c.arg.symbols(out) }

func (s *Sum) compile(index map[string]int) (evalFunc, error) {
	fns, err := compileAll(s.terms, index)
	if err != nil {
		return nil, err
	}
	c := s.c
	return func(vals []float64) float64 {
		total := c
		for _, f := range fns {
			total += f(vals)
		}
		return total
	}, nil
}

func (p *Product) compile(index map[string]int) (evalFunc, error) {
	fns, err := compileAll(p.factors, index)
	if err != nil {
		return nil, err
	}
	coeff := p.coeff
	return func(vals []float64) float64 {
		total := coeff
		for _, f := range fns {
			total *= f(vals)
		}
		return total
	}, nil
}

func (p *Power) compile(index map[string]int) (evalFunc, error) {
	base, err := p.base.compile(index)
	if err != nil {
		return nil, err
	}
	switch exp := p.exp; exp {
	case 2:
		return func(vals []float64) float64 { v := base(vals); return v * v }, nil
	case -1:
		return func(vals []float64) float64 { return 1 / base(vals) }, nil
	case 0.5:
		return func(vals []float64) float64 { return math.Sqrt(base(vals)) }, nil
	default:
		return func(vals []float64) float64 { return math.Pow(base(vals), exp) }, nil
	}
}

func (c *Call) compile(index map[string]int) (evalFunc, error) {
	arg, err := c.arg.compile(index)
	if err != nil {
		return nil, err
	}
	switch c.fn {
	case fnSin:
		return func(vals []float64) float64 { return math.Sin(arg(vals)) }, nil
	case fnCos:
		return func(vals []float64) float64 { return math.Cos(arg(vals)) }, nil
	default:
		fn := c.fn
		return func(vals []float64) float64 { return callFloat(fn, arg(vals)) }, nil
	}
}

func compileAll(exprs []Expr, index map[string]int) ([]evalFunc, error) {
	fns := make([]evalFunc, 0, len(exprs))
	for _, e := range exprs {
		f, err := e.compile(index)
		if err != nil {
			return nil, err
		}
		fns = append(fns, f)
	}
	return fns, nil
}
