package referenceframe

import (
	"github.com/pkg/errors"

	"github.com/robomodel/robomodel/spatialmath"
)

var (
	// ErrUnsupportedJointType is returned when a joint is given a type it cannot assemble.
	ErrUnsupportedJointType = errors.New("unsupported joint type")
	// ErrUnsupportedAxis is returned when a revolute or prismatic axis is not a unit x, y or z axis.
	ErrUnsupportedAxis = errors.New("joint axis must be a unit x, y or z axis")
	// ErrFloatingJointNotAllowed is returned for a floating joint on a robot without a floating base.
	ErrFloatingJointNotAllowed = errors.New("floating joints require a floating base robot")
	// ErrTransformNotBuilt is returned when a transform is requested before the joint type is set.
	ErrTransformNotBuilt = errors.New("joint transform has not been built")
	// ErrIncompleteOrigin is the spatialmath error for an origin missing its translation or rotation.
	ErrIncompleteOrigin = spatialmath.ErrIncompleteOrigin
)

// NewUnsupportedJointTypeError names the joint and the type it was given.
func NewUnsupportedJointTypeError(joint string, jt JointType) error {
	return errors.Wrapf(ErrUnsupportedJointType, "joint %q has type %q", joint, jt)
}

// NewUnsupportedAxisError names the joint and the axis it was given.
func NewUnsupportedAxisError(joint string, axis []float64) error {
	return errors.Wrapf(ErrUnsupportedAxis, "joint %q has axis %v", joint, axis)
}

// NewFloatingJointNotAllowedError names the floating joint.
func NewFloatingJointNotAllowedError(joint string) error {
	return errors.Wrapf(ErrFloatingJointNotAllowed, "joint %q", joint)
}

// NewTransformNotBuiltError names the joint whose transform was requested.
func NewTransformNotBuiltError(joint string) error {
	return errors.Wrapf(ErrTransformNotBuilt, "joint %q", joint)
}
