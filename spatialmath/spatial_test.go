package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"github.com/robomodel/robomodel/symbolic"
)

const floatEpsilon = 1e-9

func evalf(t *testing.T, m *symbolic.Matrix, env map[string]float64) *mat.Dense {
	t.Helper()
	d, err := m.Evalf(env)
	test.That(t, err, test.ShouldBeNil)
	return d
}

func TestSkew(t *testing.T) {
	p := r3.Vector{X: 1, Y: -2, Z: 3}
	v := r3.Vector{X: 0.5, Y: 4, Z: -1}
	tr := NewTranslationFromVector(p)

	skew := evalf(t, tr.Skew(), nil)
	var got mat.VecDense
	got.MulVec(skew, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	want := p.Cross(v)
	test.That(t, got.AtVec(0), test.ShouldAlmostEqual, want.X)
	test.That(t, got.AtVec(1), test.ShouldAlmostEqual, want.Y)
	test.That(t, got.AtVec(2), test.ShouldAlmostEqual, want.Z)

	// antisymmetric
	test.That(t, tr.Skew().T().Equal(tr.Skew().Neg()), test.ShouldBeTrue)
}

func TestTranslationOperators(t *testing.T) {
	tr := NewTranslationFromTuple([3]symbolic.Expr{symbolic.Num(0), symbolic.Num(0), symbolic.Num(1)})
	xlt := tr.Spatial()
	test.That(t, xlt.Slice(0, 3, 0, 3).Equal(symbolic.Identity(3)), test.ShouldBeTrue)
	test.That(t, xlt.Slice(0, 3, 3, 6).Equal(symbolic.Zeros(3, 3)), test.ShouldBeTrue)
	test.That(t, xlt.Slice(3, 6, 3, 6).Equal(symbolic.Identity(3)), test.ShouldBeTrue)
	test.That(t, xlt.Slice(3, 6, 0, 3).Equal(tr.Skew().Neg()), test.ShouldBeTrue)

	test.That(t, tr.Hom().Mul(tr.HomInv()).Equal(symbolic.Identity(4)), test.ShouldBeTrue)
	test.That(t, tr.Hom().At(2, 3), test.ShouldEqual, symbolic.Const(1))
}

func TestElementaryRotations(t *testing.T) {
	th := symbolic.NewSymbol("theta")
	s := symbolic.Sin(th)
	ms := symbolic.Neg(s)

	rx := Rx(th)
	test.That(t, symbolic.Equal(rx.At(1, 2), s), test.ShouldBeTrue)
	test.That(t, symbolic.Equal(rx.At(2, 1), ms), test.ShouldBeTrue)

	ry := Ry(th)
	test.That(t, symbolic.Equal(ry.At(0, 2), ms), test.ShouldBeTrue)
	test.That(t, symbolic.Equal(ry.At(2, 0), s), test.ShouldBeTrue)

	rz := Rz(th)
	test.That(t, symbolic.Equal(rz.At(0, 1), s), test.ShouldBeTrue)
	test.That(t, symbolic.Equal(rz.At(1, 0), ms), test.ShouldBeTrue)

	for _, r := range []*symbolic.Matrix{rx, ry, rz} {
		test.That(t, r.Subs("theta", symbolic.Num(0)).Equal(symbolic.Identity(3)), test.ShouldBeTrue)
	}
}

func TestRotationComposition(t *testing.T) {
	rpy := r3.Vector{X: 0.3, Y: -1.1, Z: 2.4}
	rot := NewRotationFromVector(rpy)

	rx := evalf(t, Rx(symbolic.Num(rpy.X)), nil)
	ry := evalf(t, Ry(symbolic.Num(rpy.Y)), nil)
	rz := evalf(t, Rz(symbolic.Num(rpy.Z)), nil)
	var want mat.Dense
	want.Product(rx, ry, rz)
	e := evalf(t, rot.E(), nil)
	test.That(t, mat.EqualApprox(e, &want, floatEpsilon), test.ShouldBeTrue)

	// orthonormal with determinant one
	var eet mat.Dense
	eet.Mul(e, e.T())
	test.That(t, mat.EqualApprox(&eet, eye(3), floatEpsilon), test.ShouldBeTrue)
	test.That(t, mat.Det(e), test.ShouldAlmostEqual, 1)

	// block diagonal spatial form and transposed homogeneous inverse
	sp := evalf(t, rot.Spatial(), nil)
	test.That(t, mat.EqualApprox(sp.Slice(3, 6, 3, 6), e, floatEpsilon), test.ShouldBeTrue)
	test.That(t, mat.EqualApprox(sp.Slice(0, 3, 3, 6), mat.NewDense(3, 3, nil), floatEpsilon), test.ShouldBeTrue)
	test.That(t, rot.HomInv().Equal(rot.Hom().T()), test.ShouldBeTrue)
}

func TestOrigin(t *testing.T) {
	o := NewOrigin()
	test.That(t, o.BuildFixedTransform(), test.ShouldBeError, ErrIncompleteOrigin)
	o.SetTranslation(NewTranslationFromVector(r3.Vector{Z: 1}))
	err := o.BuildFixedTransform()
	test.That(t, errors.Is(err, ErrIncompleteOrigin), test.ShouldBeTrue)
	test.That(t, o.Built(), test.ShouldBeFalse)

	o.SetRotation(NewRotationFromVector(r3.Vector{}))
	test.That(t, o.BuildFixedTransform(), test.ShouldBeNil)
	test.That(t, o.Built(), test.ShouldBeTrue)
	test.That(t, o.Spatial().Equal(Xlt(Skew(symbolic.Num(0), symbolic.Num(0), symbolic.Num(1)))), test.ShouldBeTrue)

	o.SetRotation(NewRotationFromVector(r3.Vector{X: 0.2, Y: 0.5, Z: -0.7}))
	test.That(t, o.Built(), test.ShouldBeFalse)
	test.That(t, o.BuildFixedTransform(), test.ShouldBeNil)
	var prod mat.Dense
	prod.Mul(evalf(t, o.Hom(), nil), evalf(t, o.HomInv(), nil))
	test.That(t, mat.EqualApprox(&prod, eye(4), floatEpsilon), test.ShouldBeTrue)
}

func eye(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}

func TestHomogeneousHelpers(t *testing.T) {
	o := NewOrigin()
	o.SetTranslation(NewTranslationFromVector(r3.Vector{X: 1, Y: 2, Z: 3}))
	o.SetRotation(NewRotationFromVector(r3.Vector{}))
	test.That(t, o.BuildFixedTransform(), test.ShouldBeNil)

	h, err := Mat4FromDense(evalf(t, o.Hom(), nil))
	test.That(t, err, test.ShouldBeNil)
	p := TransformPoint(h, r3.Vector{X: 1})
	test.That(t, p.ApproxEqual(r3.Vector{X: 2, Y: 2, Z: 3}), test.ShouldBeTrue)

	_, err = Mat4FromDense(mat.NewDense(3, 3, nil))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, math.IsNaN(p.X), test.ShouldBeFalse)
}

func TestNumericMatchesSymbolic(t *testing.T) {
	for _, v := range []r3.Vector{
		{},
		{X: 1, Y: -2, Z: 3},
		{X: 0.3, Y: -1.2, Z: math.Pi / 2},
	} {
		test.That(t, mat.EqualApprox(SkewMatrix(v), evalf(t, NewTranslationFromVector(v).Skew(), nil), floatEpsilon),
			test.ShouldBeTrue)
		test.That(t, mat.EqualApprox(RotationMatrix(v), evalf(t, NewRotationFromVector(v).E(), nil), floatEpsilon),
			test.ShouldBeTrue)
	}
}
