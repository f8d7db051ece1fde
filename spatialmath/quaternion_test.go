package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/robomodel/robomodel/symbolic"
)

func TestQuatToRotIdentity(t *testing.T) {
	e := QuatToRot(symbolic.Num(1), symbolic.Num(0), symbolic.Num(0), symbolic.Num(0))
	test.That(t, e.Equal(symbolic.Identity(3)), test.ShouldBeTrue)
	test.That(t, mat.Equal(QuatToRotationMatrix(quat.Number{Real: 1}), eye(3)), test.ShouldBeTrue)
}

func TestQuatToRotMatchesElementaryRotation(t *testing.T) {
	th := math.Pi / 4
	q := quat.Number{Real: math.Cos(th / 2), Imag: math.Sin(th / 2)}
	rx := evalf(t, Rx(symbolic.Num(th)), nil)
	test.That(t, mat.EqualApprox(QuatToRotationMatrix(q), rx, floatEpsilon), test.ShouldBeTrue)

	q = quat.Number{Real: math.Cos(th / 2), Kmag: math.Sin(th / 2)}
	rz := evalf(t, Rz(symbolic.Num(th)), nil)
	test.That(t, mat.EqualApprox(QuatToRotationMatrix(q), rz, floatEpsilon), test.ShouldBeTrue)
}

func TestQuatToRotIsProperRotation(t *testing.T) {
	q := symbolic.Symbols("q0", "q1", "q2", "q3")
	e := QuatToRot(q[0], q[1], q[2], q[3])
	f, err := e.Compile(q...)
	test.That(t, err, test.ShouldBeNil)

	for _, vals := range [][]float64{
		{1, 0, 0, 0},
		{0.3, -2, 0.5, 1.7},
		{0, 0, 0, 5},
		{-4, 1, 1, 1},
	} {
		rot, err := f(vals...)
		test.That(t, err, test.ShouldBeNil)

		var rrt mat.Dense
		rrt.Mul(rot, rot.T())
		test.That(t, mat.EqualApprox(&rrt, eye(3), floatEpsilon), test.ShouldBeTrue)
		test.That(t, mat.Det(rot), test.ShouldAlmostEqual, 1)

		// symbolic and numeric forms agree, including the unnormalized input
		numeric := QuatToRotationMatrix(quat.Number{Real: vals[0], Imag: vals[1], Jmag: vals[2], Kmag: vals[3]})
		test.That(t, mat.EqualApprox(rot, numeric, floatEpsilon), test.ShouldBeTrue)
	}

	test.That(t, QuatToRotationMatrix(quat.Number{}), test.ShouldBeNil)
}
