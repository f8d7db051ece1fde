// Package kinematics holds the robot model: its joints and links, their tree topology and the
// mapping between joints and the position, velocity and force vectors of the robot.
package kinematics

import (
	"github.com/samber/lo"

	"github.com/robomodel/robomodel/logging"
	"github.com/robomodel/robomodel/referenceframe"
)

// Options are the robot wide settings.
type Options struct {
	// FloatingBase connects the root link to the world through a 6 dof floating joint with id 0.
	FloatingBase bool `json:"floating_base" yaml:"floating_base"`
	// UsingQuaternion parameterizes the floating base orientation by a quaternion.
	UsingQuaternion bool `json:"using_quaternion" yaml:"using_quaternion"`
}

// JointOptions returns the options every joint of a robot with these settings is built with.
func (o Options) JointOptions(logger logging.Logger) referenceframe.JointOptions {
	return referenceframe.JointOptions{
		FloatingBase:    o.FloatingBase,
		UsingQuaternion: o.UsingQuaternion,
		Logger:          logger,
	}
}

// Robot is an ordered collection of joints and links. Ids are expected to be dense and zero based
// in depth first order; Robot does not renumber them.
type Robot struct {
	name   string
	opts   Options
	joints []*referenceframe.Joint
	links  []*referenceframe.Link
	logger logging.Logger
}

// NewRobot returns an empty robot.
func NewRobot(name string, opts Options, logger logging.Logger) *Robot {
	if logger == nil {
		logger = logging.Global()
	}
	return &Robot{name: name, opts: opts, logger: logger}
}

// Name returns the robot name.
func (r *Robot) Name() string { return r.name }

// Options returns the robot wide settings.
func (r *Robot) Options() Options { return r.opts }

// FloatingBase reports whether the robot has a floating base.
func (r *Robot) FloatingBase() bool { return r.opts.FloatingBase }

// UsingQuaternion reports whether a floating base is parameterized by a quaternion.
func (r *Robot) UsingQuaternion() bool { return r.opts.UsingQuaternion }

// AddJoint appends a joint.
func (r *Robot) AddJoint(j *referenceframe.Joint) {
	r.joints = append(r.joints, j)
}

// AddLink appends a link.
func (r *Robot) AddLink(l *referenceframe.Link) {
	r.links = append(r.links, l)
}

// RemoveJoint removes the joint and reports whether it was present.
func (r *Robot) RemoveJoint(j *referenceframe.Joint) bool {
	idx := lo.IndexOf(r.joints, j)
	if idx < 0 {
		return false
	}
	r.joints = append(r.joints[:idx], r.joints[idx+1:]...)
	return true
}

// RemoveLink removes the link and reports whether it was present.
func (r *Robot) RemoveLink(l *referenceframe.Link) bool {
	idx := lo.IndexOf(r.links, l)
	if idx < 0 {
		return false
	}
	r.links = append(r.links[:idx], r.links[idx+1:]...)
	return true
}

// Joints returns the joints in insertion order.
func (r *Robot) Joints() []*referenceframe.Joint {
	return append([]*referenceframe.Joint(nil), r.joints...)
}

// Links returns the links in insertion order.
func (r *Robot) Links() []*referenceframe.Link {
	return append([]*referenceframe.Link(nil), r.links...)
}

// NumVel is the size of the velocity vector, the sum of the joint dofs.
func (r *Robot) NumVel() int {
	return lo.SumBy(r.joints, func(j *referenceframe.Joint) int { return j.DoF() })
}

// NumPos is the size of the position vector. A quaternion floating base adds one entry over the
// velocity vector.
func (r *Robot) NumPos() int {
	if r.opts.FloatingBase && r.opts.UsingQuaternion {
		return r.NumVel() + 1
	}
	return r.NumVel()
}

// NumJoints returns the number of joints.
func (r *Robot) NumJoints() int { return len(r.joints) }

// NumLinks returns the number of links, including the base link.
func (r *Robot) NumLinks() int { return len(r.links) }

// NumLinksEffective returns the number of links without the base link.
func (r *Robot) NumLinksEffective() int { return r.NumLinks() - 1 }

// NumBodies returns the number of moving bodies.
func (r *Robot) NumBodies() int { return r.NumLinksEffective() }

// NumControls returns the number of control inputs, one per joint.
func (r *Robot) NumControls() int { return r.NumJoints() }

// JointIndexQ returns the indices of the position vector that belong to joint jid.
func (r *Robot) JointIndexQ(jid int) []int {
	if !r.opts.FloatingBase {
		return []int{jid}
	}
	if r.opts.UsingQuaternion {
		if jid == 0 {
			return lo.RangeFrom(0, 7)
		}
		return []int{jid + 6}
	}
	if jid == 0 {
		return lo.RangeFrom(0, 6)
	}
	return []int{jid + 5}
}

// JointIndexV returns the indices of the velocity vector that belong to joint jid.
func (r *Robot) JointIndexV(jid int) []int {
	if !r.opts.FloatingBase {
		return []int{jid}
	}
	if jid == 0 {
		return lo.RangeFrom(0, 6)
	}
	return []int{jid + 5}
}

// JointIndexF returns the indices of the force vector that belong to joint jid. Forces share the
// layout of velocities.
func (r *Robot) JointIndexF(jid int) []int {
	return r.JointIndexV(jid)
}
