package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Mat4FromDense converts a numeric 4x4 matrix into an mgl64.Mat4.
func Mat4FromDense(d mat.Matrix) (mgl64.Mat4, error) {
	var m mgl64.Mat4
	if r, c := d.Dims(); r != 4 || c != 4 {
		return m, errors.Errorf("expected a 4x4 matrix but got %dx%d", r, c)
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m.Set(i, j, d.At(i, j))
		}
	}
	return m, nil
}

// TransformPoint applies the homogeneous transform h to p.
func TransformPoint(h mgl64.Mat4, p r3.Vector) r3.Vector {
	v := h.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return r3.Vector{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// SkewMatrix is the numeric counterpart of Skew.
func SkewMatrix(v r3.Vector) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	})
}

// RotationMatrix is the numeric counterpart of NewRotationFromVector(rpy).E(): the coordinate
// rotation rx*ry*rz with roll, pitch and yaw taken from X, Y and Z.
func RotationMatrix(rpy r3.Vector) *mat.Dense {
	sr, cr := math.Sincos(rpy.X)
	sp, cp := math.Sincos(rpy.Y)
	sy, cy := math.Sincos(rpy.Z)
	rx := mat.NewDense(3, 3, []float64{1, 0, 0, 0, cr, sr, 0, -sr, cr})
	ry := mat.NewDense(3, 3, []float64{cp, 0, -sp, 0, 1, 0, sp, 0, cp})
	rz := mat.NewDense(3, 3, []float64{cy, sy, 0, -sy, cy, 0, 0, 0, 1})

	var e mat.Dense
	e.Product(rx, ry, rz)
	return &e
}
