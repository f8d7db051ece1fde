package kinematics

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrNoActiveAxis is returned when a motion subspace column has no entry equal to 1.
var ErrNoActiveAxis = errors.New("motion subspace has no active axis")

// NewJointNotFoundError names the missing joint id.
func NewJointNotFoundError(jid int) error {
	return errors.Errorf("no joint with id %d", jid)
}

// AreSubspacesIdentical reports whether every joint in jids has the same motion subspace. It is
// always false for a floating base robot, whose base subspace is the identity, and false if any
// id is unknown.
func (r *Robot) AreSubspacesIdentical(jids []int) bool {
	if r.opts.FloatingBase {
		return false
	}
	if len(jids) == 0 {
		return true
	}
	subspaces := r.Subspaces()
	first, ok := subspaces.ByID(jids[0])
	if !ok || first == nil {
		return false
	}
	return lo.EveryBy(jids, func(jid int) bool {
		s, ok := subspaces.ByID(jid)
		return ok && s != nil && mat.Equal(s, first)
	})
}

// SubspaceIndices returns the index of the 1 in the motion subspace of each of the first n joints.
// For a floating base robot the first six entries are the indices of the 1 in each column of the
// base subspace.
func (r *Robot) SubspaceIndices(n int) ([]int, error) {
	subspaces := r.Subspaces()
	out := make([]int, 0, n+5)
	start := 0
	if r.opts.FloatingBase {
		s, ok := subspaces.ByID(0)
		if !ok || s == nil {
			return nil, NewJointNotFoundError(0)
		}
		_, cols := s.Dims()
		for col := 0; col < cols; col++ {
			idx, err := activeAxis(s, col)
			if err != nil {
				return nil, errors.Wrapf(err, "joint 0 column %d", col)
			}
			out = append(out, idx)
		}
		start = 1
	}
	for jid := start; jid < n; jid++ {
		s, ok := subspaces.ByID(jid)
		if !ok || s == nil {
			return nil, NewJointNotFoundError(jid)
		}
		idx, err := activeAxis(s, 0)
		if err != nil {
			return nil, errors.Wrapf(err, "joint %d", jid)
		}
		out = append(out, idx)
	}
	return out, nil
}

func activeAxis(s *mat.Dense, col int) (int, error) {
	column := mat.Col(nil, col, s)
	// Subspace entries are exactly 0 or 1, so the largest entry is the active axis if there is one.
	idx := floats.MaxIdx(column)
	if column[idx] != 1 {
		return 0, ErrNoActiveAxis
	}
	return idx, nil
}
