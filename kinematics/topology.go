package kinematics

import (
	"sort"

	"github.com/samber/lo"

	"github.com/robomodel/robomodel/referenceframe"
)

// ParentID returns the id of the parent of link lid, -1 for the root.
func (r *Robot) ParentID(lid int) (int, bool) {
	l, ok := r.LinkByID(lid)
	if !ok {
		return 0, false
	}
	return l.ParentID(), true
}

// ParentIDs returns the parent id of each link in lids. Unknown links are skipped.
func (r *Robot) ParentIDs(lids []int) []int {
	out := make([]int, 0, len(lids))
	for _, lid := range lids {
		if pid, ok := r.ParentID(lid); ok {
			out = append(out, pid)
		}
	}
	return out
}

// UniqueParentIDs returns the sorted distinct parent ids of the links in lids.
func (r *Robot) UniqueParentIDs(lids []int) []int {
	out := lo.Uniq(r.ParentIDs(lids))
	sort.Ints(out)
	return out
}

// ParentIDArray returns the parent ids of every link but the first, in link id order. Links with
// negative ids are not part of the array.
func (r *Robot) ParentIDArray() []int {
	links := lo.Filter(r.LinksOrderedByID(false), func(l *referenceframe.Link, _ int) bool {
		return l.ID() >= 0
	})
	if len(links) == 0 {
		return []int{}
	}
	return lo.Map(links[1:], func(l *referenceframe.Link, _ int) int { return l.ParentID() })
}

// HasRepeatedParents reports whether two of the given joints share a parent.
func (r *Robot) HasRepeatedParents(jids []int) bool {
	return len(r.ParentIDs(jids)) != len(r.UniqueParentIDs(jids))
}

// SubtreeByID returns the sorted ids in the subtree of lid, which includes lid itself.
func (r *Robot) SubtreeByID(lid int) []int {
	l, ok := r.LinkByID(lid)
	if !ok {
		return nil
	}
	return l.Subtree()
}

// TotalSubtreeCount sums the subtree sizes of every joint.
func (r *Robot) TotalSubtreeCount() int {
	return lo.SumBy(lo.Range(r.NumJoints()), func(jid int) int { return len(r.SubtreeByID(jid)) })
}

// AncestorsByID returns the ids from the parent of jid up to the root. The walk stops at the -1
// sentinel or at an unknown id. A cyclic parent chain is a caller error; the walk gives up after
// visiting every link once.
func (r *Robot) AncestorsByID(jid int) []int {
	ancestors := []int{}
	curr := jid
	for range r.links {
		pid, ok := r.ParentID(curr)
		if !ok || pid == -1 {
			break
		}
		ancestors = append(ancestors, pid)
		curr = pid
	}
	return ancestors
}

// TotalAncestorCount sums the ancestor counts of every joint.
func (r *Robot) TotalAncestorCount() int {
	return lo.SumBy(lo.Range(r.NumJoints()), func(jid int) int { return len(r.AncestorsByID(jid)) })
}

// IsAncestorOf reports whether jid is an ancestor of jidOf.
func (r *Robot) IsAncestorOf(jid, jidOf int) bool {
	return lo.Contains(r.AncestorsByID(jidOf), jid)
}

// IsInSubtreeOf reports whether jid is in the subtree of jidOf.
func (r *Robot) IsInSubtreeOf(jid, jidOf int) bool {
	return lo.Contains(r.SubtreeByID(jidOf), jid)
}

// MaxBFSLevel returns the deepest breadth first level, -1 for a robot without joints.
func (r *Robot) MaxBFSLevel() int {
	if len(r.joints) == 0 {
		return -1
	}
	return lo.MaxBy(r.joints, func(a, b *referenceframe.Joint) bool {
		return a.BFSLevel() > b.BFSLevel()
	}).BFSLevel()
}

// IDsByBFSLevel returns the ids of the joints on a breadth first level.
func (r *Robot) IDsByBFSLevel(level int) []int {
	return lo.Map(r.JointsByBFSLevel(level), func(j *referenceframe.Joint, _ int) int { return j.ID() })
}

// BFSLevelByID returns the breadth first level of joint jid.
func (r *Robot) BFSLevelByID(jid int) (int, bool) {
	j, ok := r.JointByID(jid)
	if !ok {
		return 0, false
	}
	return j.BFSLevel(), true
}

// MaxBFSWidth returns the largest number of joints on one breadth first level.
func (r *Robot) MaxBFSWidth() int {
	width := 0
	for level := 0; level <= r.MaxBFSLevel(); level++ {
		width = max(width, len(r.IDsByBFSLevel(level)))
	}
	return width
}

// IsLeafNode reports whether nothing is below jid.
func (r *Robot) IsLeafNode(jid int) bool {
	return len(r.SubtreeByID(jid)) == 1
}

// LeafNodes returns the ids of the leaf joints in id order.
func (r *Robot) LeafNodes() []int {
	return lo.Filter(lo.Range(r.NumJoints()), func(jid, _ int) bool { return r.IsLeafNode(jid) })
}

// TotalLeafNodes returns the number of leaf joints.
func (r *Robot) TotalLeafNodes() int {
	return len(r.LeafNodes())
}

// IsSerialChain reports whether every joint is the child of the joint numbered just before it.
func (r *Robot) IsSerialChain() bool {
	for jid := 0; jid < r.NumJoints(); jid++ {
		pid, ok := r.ParentID(jid)
		if !ok || jid-pid != 1 {
			return false
		}
	}
	return true
}
