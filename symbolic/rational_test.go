package symbolic

import (
	"math"
	"math/big"
	"testing"

	"go.viam.com/test"
)

func TestRationalApprox(t *testing.T) {
	test.That(t, RationalApprox(0.3, 1e-9).Cmp(big.NewRat(3, 10)), test.ShouldEqual, 0)
	test.That(t, RationalApprox(-0.5000000001, 1e-6).Cmp(big.NewRat(-1, 2)), test.ShouldEqual, 0)
	test.That(t, RationalApprox(math.NaN(), 1e-6), test.ShouldBeNil)
	test.That(t, RationalApprox(math.Inf(1), 1e-6), test.ShouldBeNil)
}

func TestRationalize(t *testing.T) {
	test.That(t, Rationalize(0.9999999, 1e-6), test.ShouldEqual, 1.)
	test.That(t, Rationalize(1e-9, 1e-6), test.ShouldEqual, 0.)
	test.That(t, Rationalize(math.Cos(3.14159), 1e-6), test.ShouldEqual, -1.)
	test.That(t, math.Abs(Rationalize(3.14159, 1e-6)-3.14159), test.ShouldBeLessThanOrEqualTo, 1e-6)

	x := NewSymbol("x")
	e := Add(Mul(Num(0.99999999), Cos(x)), Num(1e-9))
	test.That(t, Equal(e.rationalize(1e-6), Cos(x)), test.ShouldBeTrue)
}
