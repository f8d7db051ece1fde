package referenceframe

import (
	"sort"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/robomodel/robomodel/spatialmath"
)

// Link is a rigid body of the robot. A base link fixed to the world has id -1.
type Link struct {
	name     string
	id       int
	parentID int
	bfsID    int
	bfsLevel int
	subtree  []int
	inertia  *mat.Dense
}

// NewLink returns a link with an empty subtree and a zero spatial inertia.
func NewLink(name string, id, parentID int) *Link {
	return &Link{
		name:     name,
		id:       id,
		parentID: parentID,
		bfsID:    id,
		inertia:  mat.NewDense(6, 6, nil),
	}
}

// Name returns the link name.
func (l *Link) Name() string { return l.name }

// ID returns the link id.
func (l *Link) ID() int { return l.id }

// ParentID returns the id of the parent link, -1 for the root.
func (l *Link) ParentID() int { return l.parentID }

// BFSID returns the breadth first id.
func (l *Link) BFSID() int { return l.bfsID }

// SetBFSID sets the breadth first id.
func (l *Link) SetBFSID(id int) { l.bfsID = id }

// BFSLevel returns the breadth first level.
func (l *Link) BFSLevel() int { return l.bfsLevel }

// SetBFSLevel sets the breadth first level.
func (l *Link) SetBFSLevel(level int) { l.bfsLevel = level }

// Subtree returns the sorted ids of the link and every link below it.
func (l *Link) Subtree() []int {
	return append([]int(nil), l.subtree...)
}

// SetSubtree sets the subtree ids.
func (l *Link) SetSubtree(ids []int) {
	l.subtree = append([]int(nil), ids...)
	sort.Ints(l.subtree)
}

// SpatialInertia returns the 6x6 spatial inertia in the link frame.
func (l *Link) SpatialInertia() *mat.Dense { return l.inertia }

// SetSpatialInertia sets the 6x6 spatial inertia.
func (l *Link) SetSpatialInertia(inertia *mat.Dense) { l.inertia = inertia }

// NewSpatialInertia returns the spatial inertia of a body of the given mass with its center of
// mass at com. inertia is the rotational inertia about the center of mass in a frame rotated by
// rpy relative to the link frame:
//
//	[ Ic + m*cx*cx^T  m*cx ]
//	[ m*cx^T          m*1  ]
func NewSpatialInertia(mass float64, com r3.Vector, inertia mat.Symmetric, rpy r3.Vector) *mat.Dense {
	// the rotation block is a coordinate transform, its transpose rotates the inertia frame
	// into the link frame
	e := spatialmath.RotationMatrix(rpy)
	var ic, tmp mat.Dense
	tmp.Mul(e.T(), inertia)
	ic.Mul(&tmp, e)

	cx := spatialmath.SkewMatrix(com)
	var cxcxT mat.Dense
	cxcxT.Mul(cx, cx.T())
	cxcxT.Scale(mass, &cxcxT)
	ic.Add(&ic, &cxcxT)

	var mcx mat.Dense
	mcx.Scale(mass, cx)

	out := mat.NewDense(6, 6, nil)
	out.Slice(0, 3, 0, 3).(*mat.Dense).Copy(&ic)
	out.Slice(0, 3, 3, 6).(*mat.Dense).Copy(&mcx)
	out.Slice(3, 6, 0, 3).(*mat.Dense).Copy(mcx.T())
	for i := 3; i < 6; i++ {
		out.Set(i, i, mass)
	}
	return out
}

// LinkConfig is the description of a link as produced by a loader.
type LinkConfig struct {
	Name     string    `json:"name" yaml:"name"`
	ID       int       `json:"id" yaml:"id"`
	ParentID int       `json:"parent_id" yaml:"parent_id"`
	Mass     float64   `json:"mass" yaml:"mass"`
	COM      r3.Vector `json:"com" yaml:"com"`
	RPY      r3.Vector `json:"rpy" yaml:"rpy"`
	// Inertia is ixx, ixy, ixz, iyy, iyz, izz.
	Inertia [6]float64 `json:"inertia" yaml:"inertia"`
}

// ParseConfig converts a LinkConfig into a Link with its spatial inertia computed.
func (cfg *LinkConfig) ParseConfig() *Link {
	l := NewLink(cfg.Name, cfg.ID, cfg.ParentID)
	in := cfg.Inertia
	ic := mat.NewSymDense(3, []float64{
		in[0], in[1], in[2],
		in[1], in[3], in[4],
		in[2], in[4], in[5],
	})
	l.SetSpatialInertia(NewSpatialInertia(cfg.Mass, cfg.COM, ic, cfg.RPY))
	return l
}
