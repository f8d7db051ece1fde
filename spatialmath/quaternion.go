package spatialmath

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/robomodel/robomodel/symbolic"
)

// QuatToRot returns the 3x3 coordinate rotation for the scalar-first quaternion (q0, q1, q2, q3).
// The quaternion is reordered to scalar-last and normalized before use, so any nonzero quaternion
// yields a proper rotation.
func QuatToRot(q0, q1, q2, q3 symbolic.Expr) *symbolic.Matrix {
	x, y, z, w := q1, q2, q3, q0

	norm := symbolic.Sqrt(symbolic.Add(
		symbolic.Mul(x, x), symbolic.Mul(y, y), symbolic.Mul(z, z), symbolic.Mul(w, w)))
	x, y, z, w = symbolic.Div(x, norm), symbolic.Div(y, norm), symbolic.Div(z, norm), symbolic.Div(w, norm)

	ws, xs, ys, zs := symbolic.Mul(w, w), symbolic.Mul(x, x), symbolic.Mul(y, y), symbolic.Mul(z, z)
	wx, wy, wz := symbolic.Mul(w, x), symbolic.Mul(w, y), symbolic.Mul(w, z)
	xy, xz, yz := symbolic.Mul(x, y), symbolic.Mul(x, z), symbolic.Mul(y, z)
	half := symbolic.Num(-0.5)

	e := symbolic.MatrixFromRows([][]symbolic.Expr{
		{symbolic.Add(ws, xs, half), symbolic.Add(xy, wz), symbolic.Sub(xz, wy)},
		{symbolic.Sub(xy, wz), symbolic.Add(ws, ys, half), symbolic.Add(yz, wx)},
		{symbolic.Add(xz, wy), symbolic.Sub(yz, wx), symbolic.Add(ws, zs, half)},
	})
	return e.Scale(symbolic.Num(2))
}

// QuatToRotationMatrix is the numeric counterpart of QuatToRot. It uses the same sign pattern and
// returns nil for the zero quaternion.
func QuatToRotationMatrix(q quat.Number) *mat.Dense {
	norm := quat.Abs(q)
	if norm == 0 {
		return nil
	}
	w, x, y, z := q.Real/norm, q.Imag/norm, q.Jmag/norm, q.Kmag/norm

	e := mat.NewDense(3, 3, []float64{
		w*w + x*x - 0.5, x*y + w*z, x*z - w*y,
		x*y - w*z, w*w + y*y - 0.5, y*z + w*x,
		x*z + w*y, y*z - w*x, w*w + z*z - 0.5,
	})
	e.Scale(2, e)
	return e
}
