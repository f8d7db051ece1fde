package symbolic

// Engine is the set of symbolic capabilities the kinematic model depends on. Joints take an Engine
// so the transform assembly does not depend on how expressions are differentiated, cleaned up or
// compiled.
type Engine interface {
	// Diff returns the derivative of m with respect to v.
	Diff(m *Matrix, v *Symbol) *Matrix
	// Nsimplify replaces every constant in m with the simplest rational within tolerance, evaluated
	// back to floating point.
	Nsimplify(m *Matrix, tolerance float64) *Matrix
	// Compile returns a numeric function of vars, bound in the order given.
	Compile(m *Matrix, vars ...*Symbol) (MatrixFunc, error)
}

type engine struct{}

// NewEngine returns the built-in Engine.
func NewEngine() Engine {
	return engine{}
}

func (engine) Diff(m *Matrix, v *Symbol) *Matrix {
	return m.Diff(v.Name())
}

func (engine) Nsimplify(m *Matrix, tolerance float64) *Matrix {
	return m.Rationalize(tolerance)
}

func (engine) Compile(m *Matrix, vars ...*Symbol) (MatrixFunc, error) {
	return m.Compile(vars...)
}
