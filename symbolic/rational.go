package symbolic

import (
	"math"
	"math/big"
)

// maxDenominator bounds the continued fraction expansion. Values that need a larger denominator to
// fall within tolerance are returned unchanged.
const maxDenominator = 1 << 40

// RationalApprox returns the simplest fraction p/q, taken from the continued fraction convergents of
// v, with |v - p/q| <= tol. It returns nil for NaN and infinite values or when no convergent within
// maxDenominator satisfies the tolerance.
func RationalApprox(v, tol float64) *big.Rat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	neg := v < 0
	x := math.Abs(v)

	// convergents h/k
	var h0, h1 int64 = 0, 1
	var k0, k1 int64 = 1, 0
	r := x
	for i := 0; i < 64; i++ {
		a := math.Floor(r)
		if a > maxDenominator {
			break
		}
		ai := int64(a)
		h := ai*h1 + h0
		k := ai*k1 + k0
		if k > maxDenominator || h < 0 {
			break
		}
		h0, h1 = h1, h
		k0, k1 = k1, k
		if math.Abs(x-float64(h)/float64(k)) <= tol {
			rat := big.NewRat(h, k)
			if neg {
				rat.Neg(rat)
			}
			return rat
		}
		frac := r - a
		if frac == 0 {
			break
		}
		r = 1 / frac
	}
	return nil
}

// Rationalize snaps v to the simplest rational within tol and returns it as a float64. Values with
// no such rational are returned unchanged.
func Rationalize(v, tol float64) float64 {
	rat := RationalApprox(v, tol)
	if rat == nil {
		return v
	}
	f, _ := rat.Float64()
	return f
}
