// Package spatialmath builds the spatial-algebra (6x6) and homogeneous (4x4) operators for fixed
// offsets, rotations and quaternions on top of the symbolic package.
package spatialmath

import (
	"github.com/golang/geo/r3"

	"github.com/robomodel/robomodel/symbolic"
)

// Translation is a 3D offset together with the operators derived from it.
type Translation struct {
	X, Y, Z symbolic.Expr

	skew    *symbolic.Matrix
	spatial *symbolic.Matrix
	hom     *symbolic.Matrix
	homInv  *symbolic.Matrix
}

// NewTranslation creates a Translation from three scalar expressions.
func NewTranslation(x, y, z symbolic.Expr) *Translation {
	t := &Translation{X: x, Y: y, Z: z}
	t.skew = Skew(x, y, z)
	t.spatial = Xlt(t.skew)
	t.hom = TranslationHom(x, y, z)
	t.homInv = TranslationHom(symbolic.Neg(x), symbolic.Neg(y), symbolic.Neg(z))
	return t
}

// NewTranslationFromTuple creates a Translation from an (x, y, z) tuple.
func NewTranslationFromTuple(xyz [3]symbolic.Expr) *Translation {
	return NewTranslation(xyz[0], xyz[1], xyz[2])
}

// NewTranslationFromVector creates a constant Translation from a numeric vector.
func NewTranslationFromVector(v r3.Vector) *Translation {
	return NewTranslation(symbolic.Num(v.X), symbolic.Num(v.Y), symbolic.Num(v.Z))
}

// Skew returns the 3x3 cross product matrix of the translation.
func (t *Translation) Skew() *symbolic.Matrix {
	return t.skew
}

// Spatial returns the 6x6 spatial translation operator.
func (t *Translation) Spatial() *symbolic.Matrix {
	return t.spatial
}

// Hom returns the 4x4 homogeneous translation.
func (t *Translation) Hom() *symbolic.Matrix {
	return t.hom
}

// HomInv returns the inverse of the 4x4 homogeneous translation.
func (t *Translation) HomInv() *symbolic.Matrix {
	return t.homInv
}

// Skew returns the antisymmetric matrix r such that r*v is the cross product (x, y, z) x v.
func Skew(x, y, z symbolic.Expr) *symbolic.Matrix {
	return symbolic.MatrixFromRows([][]symbolic.Expr{
		{symbolic.Num(0), symbolic.Neg(z), y},
		{z, symbolic.Num(0), symbolic.Neg(x)},
		{symbolic.Neg(y), x, symbolic.Num(0)},
	})
}

// Xlt returns the 6x6 spatial translation operator for the skew matrix r:
//
//	[ 1  0 ]
//	[ -r 1 ]
func Xlt(r *symbolic.Matrix) *symbolic.Matrix {
	left := symbolic.VStack(symbolic.Identity(3), r.Neg())
	right := symbolic.VStack(symbolic.Zeros(3, 3), symbolic.Identity(3))
	return symbolic.HStack(left, right)
}

// TranslationHom returns the 4x4 homogeneous translation by (x, y, z).
func TranslationHom(x, y, z symbolic.Expr) *symbolic.Matrix {
	hom := symbolic.Identity(4)
	hom.Set(0, 3, x)
	hom.Set(1, 3, y)
	hom.Set(2, 3, z)
	return hom
}
