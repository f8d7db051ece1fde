package spatialmath

import (
	"github.com/golang/geo/r3"

	"github.com/robomodel/robomodel/symbolic"
)

// Rotation is a roll/pitch/yaw triple together with the operators derived from it.
// The rotation matrices are coordinate transforms (the transpose of the usual active rotation),
// which is the convention of spatial vector algebra.
type Rotation struct {
	Roll, Pitch, Yaw symbolic.Expr

	e       *symbolic.Matrix
	spatial *symbolic.Matrix
	hom     *symbolic.Matrix
	homInv  *symbolic.Matrix
}

// NewRotation creates a Rotation from roll, pitch and yaw. The rotations compose as rx*ry*rz.
func NewRotation(roll, pitch, yaw symbolic.Expr) *Rotation {
	r := &Rotation{Roll: roll, Pitch: pitch, Yaw: yaw}
	r.e = Rx(roll).Mul(Ry(pitch)).Mul(Rz(yaw))
	r.spatial = Rot(r.e)
	r.hom = RotHom(r.e)
	r.homInv = r.hom.T()
	return r
}

// NewRotationFromTuple creates a Rotation from a (roll, pitch, yaw) tuple.
func NewRotationFromTuple(rpy [3]symbolic.Expr) *Rotation {
	return NewRotation(rpy[0], rpy[1], rpy[2])
}

// NewRotationFromVector creates a constant Rotation with roll, pitch and yaw taken from X, Y and Z.
func NewRotationFromVector(rpy r3.Vector) *Rotation {
	return NewRotation(symbolic.Num(rpy.X), symbolic.Num(rpy.Y), symbolic.Num(rpy.Z))
}

// E returns the 3x3 rotation matrix.
func (r *Rotation) E() *symbolic.Matrix {
	return r.e
}

// Spatial returns the 6x6 spatial rotation operator.
func (r *Rotation) Spatial() *symbolic.Matrix {
	return r.spatial
}

// Hom returns the 4x4 homogeneous rotation.
func (r *Rotation) Hom() *symbolic.Matrix {
	return r.hom
}

// HomInv returns the inverse of the 4x4 homogeneous rotation.
func (r *Rotation) HomInv() *symbolic.Matrix {
	return r.homInv
}

// Rx is the coordinate rotation about x.
func Rx(theta symbolic.Expr) *symbolic.Matrix {
	c, s := symbolic.Cos(theta), symbolic.Sin(theta)
	return symbolic.MatrixFromRows([][]symbolic.Expr{
		{symbolic.Num(1), symbolic.Num(0), symbolic.Num(0)},
		{symbolic.Num(0), c, s},
		{symbolic.Num(0), symbolic.Neg(s), c},
	})
}

// Ry is the coordinate rotation about y.
func Ry(theta symbolic.Expr) *symbolic.Matrix {
	c, s := symbolic.Cos(theta), symbolic.Sin(theta)
	return symbolic.MatrixFromRows([][]symbolic.Expr{
		{c, symbolic.Num(0), symbolic.Neg(s)},
		{symbolic.Num(0), symbolic.Num(1), symbolic.Num(0)},
		{s, symbolic.Num(0), c},
	})
}

// Rz is the coordinate rotation about z.
func Rz(theta symbolic.Expr) *symbolic.Matrix {
	c, s := symbolic.Cos(theta), symbolic.Sin(theta)
	return symbolic.MatrixFromRows([][]symbolic.Expr{
		{c, s, symbolic.Num(0)},
		{symbolic.Neg(s), c, symbolic.Num(0)},
		{symbolic.Num(0), symbolic.Num(0), symbolic.Num(1)},
	})
}

// Rot returns the 6x6 block diagonal spatial rotation for the 3x3 rotation e.
func Rot(e *symbolic.Matrix) *symbolic.Matrix {
	z := symbolic.Zeros(3, 3)
	return symbolic.HStack(symbolic.VStack(e, z), symbolic.VStack(z, e))
}

// RotHom embeds the 3x3 rotation e into a 4x4 homogeneous transform.
func RotHom(e *symbolic.Matrix) *symbolic.Matrix {
	hom := symbolic.Identity(4)
	hom.SetSlice(0, 0, e)
	return hom
}
