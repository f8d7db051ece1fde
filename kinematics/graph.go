package kinematics

import (
	"strconv"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/robomodel/robomodel/referenceframe"
)

type linkNode struct {
	id   int64
	name string
}

func (n linkNode) ID() int64     { return n.id }
func (n linkNode) DOTID() string { return strconv.Quote(n.name) }

// jointEdge runs from the parent link of a joint to its child link.
type jointEdge struct {
	from, to linkNode
	joint    *referenceframe.Joint
}

func (e jointEdge) From() graph.Node         { return e.from }
func (e jointEdge) To() graph.Node           { return e.to }
func (e jointEdge) ReversedEdge() graph.Edge { return jointEdge{from: e.to, to: e.from, joint: e.joint} }

func (e jointEdge) Attributes() []encoding.Attribute {
	label := e.joint.Name() + " (" + string(e.joint.Type()) + ")"
	if axis := e.joint.Axis(); axis != "" {
		label += " " + axis
	}
	return []encoding.Attribute{{Key: "label", Value: strconv.Quote(label)}}
}

// Graph returns the link tree with one edge per joint. A parent that is not a link of the robot,
// such as the world frame of a floating base, becomes a node of its own.
func (r *Robot) Graph() graph.Directed {
	g := simple.NewDirectedGraph()
	nodes := map[string]linkNode{}
	node := func(name string) linkNode {
		if n, ok := nodes[name]; ok {
			return n
		}
		n := linkNode{id: int64(len(nodes)), name: name}
		nodes[name] = n
		g.AddNode(n)
		return n
	}
	for _, l := range r.LinksOrderedByID(false) {
		node(l.Name())
	}
	for _, j := range r.JointsOrderedByID(false) {
		from, to := node(j.Parent()), node(j.Child())
		if from.id == to.id {
			continue
		}
		g.SetEdge(jointEdge{from: from, to: to, joint: j})
	}
	return g
}

// MarshalDOT renders the link tree in the Graphviz DOT language.
func (r *Robot) MarshalDOT() ([]byte, error) {
	return dot.Marshal(r.Graph(), strconv.Quote(r.name), "", "\t")
}
