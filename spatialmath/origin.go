package spatialmath

import (
	"github.com/pkg/errors"

	"github.com/robomodel/robomodel/symbolic"
)

// ErrIncompleteOrigin is returned when a fixed transform is built before both the translation and
// the rotation of an Origin are set.
var ErrIncompleteOrigin = errors.New("origin translation and rotation must both be set before building the fixed transform")

// Origin is the fixed mounting pose of a joint relative to its parent.
type Origin struct {
	translation *Translation
	rotation    *Rotation

	spatial *symbolic.Matrix
	hom     *symbolic.Matrix
	homInv  *symbolic.Matrix
}

// NewOrigin returns an Origin with neither translation nor rotation set.
func NewOrigin() *Origin {
	return &Origin{}
}

// SetTranslation sets the offset of the origin. It invalidates any previously built transform.
func (o *Origin) SetTranslation(t *Translation) {
	o.translation = t
	o.reset()
}

// SetRotation sets the orientation of the origin. It invalidates any previously built transform.
func (o *Origin) SetRotation(r *Rotation) {
	o.rotation = r
	o.reset()
}

func (o *Origin) reset() {
	o.spatial, o.hom, o.homInv = nil, nil, nil
}

// Translation returns the translation, or nil if it was never set.
func (o *Origin) Translation() *Translation {
	return o.translation
}

// Rotation returns the rotation, or nil if it was never set.
func (o *Origin) Rotation() *Rotation {
	return o.rotation
}

// BuildFixedTransform computes the fixed spatial transform rotation*translation and the matching
// homogeneous transform and its inverse.
func (o *Origin) BuildFixedTransform() error {
	if o.translation == nil || o.rotation == nil {
		return ErrIncompleteOrigin
	}
	o.spatial = o.rotation.Spatial().Mul(o.translation.Spatial())
	o.hom = o.rotation.Hom().Mul(o.translation.Hom())
	o.homInv = o.translation.HomInv().Mul(o.rotation.HomInv())
	return nil
}

// Built reports whether BuildFixedTransform has succeeded since the last change.
func (o *Origin) Built() bool {
	return o.spatial != nil
}

// Spatial returns the fixed 6x6 spatial transform, or nil before it is built.
func (o *Origin) Spatial() *symbolic.Matrix {
	return o.spatial
}

// Hom returns the fixed 4x4 homogeneous transform, or nil before it is built.
func (o *Origin) Hom() *symbolic.Matrix {
	return o.hom
}

// HomInv returns the inverse of the fixed homogeneous transform, or nil before it is built.
func (o *Origin) HomInv() *symbolic.Matrix {
	return o.homInv
}
