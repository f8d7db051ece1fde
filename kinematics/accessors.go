package kinematics

import (
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/robomodel/robomodel/referenceframe"
	"github.com/robomodel/robomodel/symbolic"
)

// JointByID returns the joint with id jid.
func (r *Robot) JointByID(jid int) (*referenceframe.Joint, bool) {
	return lo.Find(r.joints, func(j *referenceframe.Joint) bool { return j.ID() == jid })
}

// JointByName returns the joint called name.
func (r *Robot) JointByName(name string) (*referenceframe.Joint, bool) {
	return lo.Find(r.joints, func(j *referenceframe.Joint) bool { return j.Name() == name })
}

// JointsByBFSLevel returns the joints on a breadth first level in insertion order.
func (r *Robot) JointsByBFSLevel(level int) []*referenceframe.Joint {
	return lo.Filter(r.joints, func(j *referenceframe.Joint, _ int) bool { return j.BFSLevel() == level })
}

// JointsOrderedByID returns the joints sorted by id.
func (r *Robot) JointsOrderedByID(reverse bool) []*referenceframe.Joint {
	return sortedBy(r.joints, func(a, b *referenceframe.Joint) bool { return a.ID() < b.ID() }, reverse)
}

// JointsOrderedByName returns the joints sorted by name.
func (r *Robot) JointsOrderedByName(reverse bool) []*referenceframe.Joint {
	return sortedBy(r.joints, func(a, b *referenceframe.Joint) bool { return a.Name() < b.Name() }, reverse)
}

// JointsByID returns the joints keyed by id.
func (r *Robot) JointsByID() map[int]*referenceframe.Joint {
	return lo.KeyBy(r.joints, func(j *referenceframe.Joint) int { return j.ID() })
}

// JointsByName returns the joints keyed by name.
func (r *Robot) JointsByName() map[string]*referenceframe.Joint {
	return lo.KeyBy(r.joints, func(j *referenceframe.Joint) string { return j.Name() })
}

// JointsByParentName returns the joints whose parent link is called parent.
func (r *Robot) JointsByParentName(parent string) []*referenceframe.Joint {
	return lo.Filter(r.joints, func(j *referenceframe.Joint, _ int) bool { return j.Parent() == parent })
}

// JointsByChildName returns the joints whose child link is called child.
func (r *Robot) JointsByChildName(child string) []*referenceframe.Joint {
	return lo.Filter(r.joints, func(j *referenceframe.Joint, _ int) bool { return j.Child() == child })
}

// JointByParentChildName returns the joint between the links called parent and child.
func (r *Robot) JointByParentChildName(parent, child string) (*referenceframe.Joint, bool) {
	return lo.Find(r.joints, func(j *referenceframe.Joint) bool {
		return j.Parent() == parent && j.Child() == child
	})
}

// DampingByID returns the damping of joint jid.
func (r *Robot) DampingByID(jid int) (float64, bool) {
	j, ok := r.JointByID(jid)
	if !ok {
		return 0, false
	}
	return j.Damping(), true
}

// LinkByID returns the link with id lid.
func (r *Robot) LinkByID(lid int) (*referenceframe.Link, bool) {
	return lo.Find(r.links, func(l *referenceframe.Link) bool { return l.ID() == lid })
}

// LinkByName returns the link called name.
func (r *Robot) LinkByName(name string) (*referenceframe.Link, bool) {
	return lo.Find(r.links, func(l *referenceframe.Link) bool { return l.Name() == name })
}

// LinksByBFSLevel returns the links on a breadth first level in insertion order.
func (r *Robot) LinksByBFSLevel(level int) []*referenceframe.Link {
	return lo.Filter(r.links, func(l *referenceframe.Link, _ int) bool { return l.BFSLevel() == level })
}

// LinksOrderedByID returns the links sorted by id.
func (r *Robot) LinksOrderedByID(reverse bool) []*referenceframe.Link {
	return sortedBy(r.links, func(a, b *referenceframe.Link) bool { return a.ID() < b.ID() }, reverse)
}

// LinksOrderedByName returns the links sorted by name.
func (r *Robot) LinksOrderedByName(reverse bool) []*referenceframe.Link {
	return sortedBy(r.links, func(a, b *referenceframe.Link) bool { return a.Name() < b.Name() }, reverse)
}

// LinksByID returns the links keyed by id.
func (r *Robot) LinksByID() map[int]*referenceframe.Link {
	return lo.KeyBy(r.links, func(l *referenceframe.Link) int { return l.ID() })
}

// LinksByName returns the links keyed by name.
func (r *Robot) LinksByName() map[string]*referenceframe.Link {
	return lo.KeyBy(r.links, func(l *referenceframe.Link) string { return l.Name() })
}

func sortedBy[T any](in []T, less func(a, b T) bool, reverse bool) []T {
	out := append([]T(nil), in...)
	sort.SliceStable(out, func(i, k int) bool {
		if reverse {
			return less(out[k], out[i])
		}
		return less(out[i], out[k])
	})
	return out
}

// JointQuantity reads one derived quantity off joints, in every lookup shape the code generator
// needs.
type JointQuantity[T any] struct {
	robot *Robot
	get   func(*referenceframe.Joint) T
}

// ByID returns the quantity of joint jid.
func (q JointQuantity[T]) ByID(jid int) (T, bool) {
	j, ok := q.robot.JointByID(jid)
	if !ok {
		var zero T
		return zero, false
	}
	return q.get(j), true
}

// ByName returns the quantity of the joint called name.
func (q JointQuantity[T]) ByName(name string) (T, bool) {
	j, ok := q.robot.JointByName(name)
	if !ok {
		var zero T
		return zero, false
	}
	return q.get(j), true
}

// ByBFSLevel returns the quantity of every joint on a breadth first level.
func (q JointQuantity[T]) ByBFSLevel(level int) []T {
	return lo.Map(q.robot.JointsByBFSLevel(level), func(j *referenceframe.Joint, _ int) T { return q.get(j) })
}

// OrderedByID returns the quantity of every joint in id order.
func (q JointQuantity[T]) OrderedByID(reverse bool) []T {
	return lo.Map(q.robot.JointsOrderedByID(reverse), func(j *referenceframe.Joint, _ int) T { return q.get(j) })
}

// OrderedByName returns the quantity of every joint in name order.
func (q JointQuantity[T]) OrderedByName(reverse bool) []T {
	return lo.Map(q.robot.JointsOrderedByName(reverse), func(j *referenceframe.Joint, _ int) T { return q.get(j) })
}

// MapByID returns the quantity of every joint keyed by joint id.
func (q JointQuantity[T]) MapByID() map[int]T {
	return lo.SliceToMap(q.robot.joints, func(j *referenceframe.Joint) (int, T) { return j.ID(), q.get(j) })
}

// MapByName returns the quantity of every joint keyed by joint name.
func (q JointQuantity[T]) MapByName() map[string]T {
	return lo.SliceToMap(q.robot.joints, func(j *referenceframe.Joint) (string, T) { return j.Name(), q.get(j) })
}

// Transforms accesses the symbolic spatial transforms.
func (r *Robot) Transforms() JointQuantity[*symbolic.Matrix] {
	return JointQuantity[*symbolic.Matrix]{r, (*referenceframe.Joint).Transform}
}

// TransformFuncs accesses the compiled spatial transforms.
func (r *Robot) TransformFuncs() JointQuantity[symbolic.MatrixFunc] {
	return JointQuantity[symbolic.MatrixFunc]{r, (*referenceframe.Joint).TransformFunc}
}

// HomTransforms accesses the symbolic homogeneous transforms.
func (r *Robot) HomTransforms() JointQuantity[*symbolic.Matrix] {
	return JointQuantity[*symbolic.Matrix]{r, (*referenceframe.Joint).HomTransform}
}

// HomTransformFuncs accesses the compiled homogeneous transforms.
func (r *Robot) HomTransformFuncs() JointQuantity[symbolic.MatrixFunc] {
	return JointQuantity[symbolic.MatrixFunc]{r, (*referenceframe.Joint).HomTransformFunc}
}

// DHomTransforms accesses the first derivatives of the homogeneous transforms.
func (r *Robot) DHomTransforms() JointQuantity[*symbolic.Matrix] {
	return JointQuantity[*symbolic.Matrix]{r, (*referenceframe.Joint).DHomTransform}
}

// DHomTransformFuncs accesses the compiled first derivatives.
func (r *Robot) DHomTransformFuncs() JointQuantity[symbolic.MatrixFunc] {
	return JointQuantity[symbolic.MatrixFunc]{r, (*referenceframe.Joint).DHomTransformFunc}
}

// D2HomTransforms accesses the second derivatives of the homogeneous transforms.
func (r *Robot) D2HomTransforms() JointQuantity[*symbolic.Matrix] {
	return JointQuantity[*symbolic.Matrix]{r, (*referenceframe.Joint).D2HomTransform}
}

// D2HomTransformFuncs accesses the compiled second derivatives.
func (r *Robot) D2HomTransformFuncs() JointQuantity[symbolic.MatrixFunc] {
	return JointQuantity[symbolic.MatrixFunc]{r, (*referenceframe.Joint).D2HomTransformFunc}
}

// Subspaces accesses the motion subspaces.
func (r *Robot) Subspaces() JointQuantity[*mat.Dense] {
	return JointQuantity[*mat.Dense]{r, (*referenceframe.Joint).Subspace}
}

// SpatialInertiaByID returns the spatial inertia of link lid.
func (r *Robot) SpatialInertiaByID(lid int) (*mat.Dense, bool) {
	l, ok := r.LinkByID(lid)
	if !ok {
		return nil, false
	}
	return l.SpatialInertia(), true
}

// SpatialInertiaByName returns the spatial inertia of the link called name.
func (r *Robot) SpatialInertiaByName(name string) (*mat.Dense, bool) {
	l, ok := r.LinkByName(name)
	if !ok {
		return nil, false
	}
	return l.SpatialInertia(), true
}

// SpatialInertiasByBFSLevel returns the spatial inertias of the links on a breadth first level.
func (r *Robot) SpatialInertiasByBFSLevel(level int) []*mat.Dense {
	return lo.Map(r.LinksByBFSLevel(level), func(l *referenceframe.Link, _ int) *mat.Dense { return l.SpatialInertia() })
}

// SpatialInertiasOrderedByID returns the spatial inertias in link id order.
func (r *Robot) SpatialInertiasOrderedByID(reverse bool) []*mat.Dense {
	return lo.Map(r.LinksOrderedByID(reverse), func(l *referenceframe.Link, _ int) *mat.Dense { return l.SpatialInertia() })
}

// SpatialInertiasOrderedByName returns the spatial inertias in link name order.
func (r *Robot) SpatialInertiasOrderedByName(reverse bool) []*mat.Dense {
	return lo.Map(r.LinksOrderedByName(reverse), func(l *referenceframe.Link, _ int) *mat.Dense { return l.SpatialInertia() })
}

// SpatialInertiasByID returns the spatial inertias keyed by link id.
func (r *Robot) SpatialInertiasByID() map[int]*mat.Dense {
	return lo.SliceToMap(r.links, func(l *referenceframe.Link) (int, *mat.Dense) { return l.ID(), l.SpatialInertia() })
}

// SpatialInertiasByName returns the spatial inertias keyed by link name.
func (r *Robot) SpatialInertiasByName() map[string]*mat.Dense {
	return lo.SliceToMap(r.links, func(l *referenceframe.Link) (string, *mat.Dense) { return l.Name(), l.SpatialInertia() })
}
