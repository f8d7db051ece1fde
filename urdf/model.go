// Package urdf loads a robot model from a Universal Robot Description Format (URDF) file.
package urdf

import (
	"context"
	"encoding/xml"
	"os"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/robomodel/robomodel/kinematics"
	"github.com/robomodel/robomodel/logging"
	"github.com/robomodel/robomodel/referenceframe"
)

const (
	// Extension is the file extension associated with URDF files.
	Extension = "urdf"
	// World is the parent link name of the floating base joint.
	World = "world"
	// FloatingBaseJoint is the name of the joint added for a floating base.
	FloatingBaseJoint = "floating_base"
	// ContinuousJoint is a revolute joint without limits.
	ContinuousJoint = "continuous"
)

// Options control how a URDF becomes a robot.
type Options struct {
	kinematics.Options
	// Name overrides the robot name in the file when set.
	Name string
	// Workers bounds how many joints are built at once.
	Workers int
	Logger  logging.Logger
}

// ErrNotATree is returned when the joints of a URDF do not form a tree of links.
var ErrNotATree = errors.New("urdf joints do not form a tree")

// ParseModelXMLFile reads a URDF file and builds the robot it describes.
func ParseModelXMLFile(ctx context.Context, filename string, opts Options) (*kinematics.Robot, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return UnmarshalModelXML(ctx, xmlData, opts)
}

// UnmarshalModelXML builds the robot described by URDF XML data.
func UnmarshalModelXML(ctx context.Context, xmlData []byte, opts Options) (*kinematics.Robot, error) {
	desc := &robot{}
	if err := xml.Unmarshal(xmlData, desc); err != nil {
		return nil, errors.Wrap(err, "failed to convert URDF data to equivalent URDF struct")
	}
	name := opts.Name
	if name == "" {
		name = desc.Name
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Global()
	}

	t, err := newTree(desc)
	if err != nil {
		return nil, err
	}
	jointCfgs, linkCfgs, err := t.configs(opts.FloatingBase)
	if err != nil {
		return nil, err
	}

	links := make([]*referenceframe.Link, 0, len(linkCfgs))
	for _, lc := range linkCfgs {
		l := lc.cfg.ParseConfig()
		l.SetBFSID(lc.bfsID)
		l.SetBFSLevel(lc.bfsLevel)
		l.SetSubtree(lc.subtree)
		links = append(links, l)
	}

	r := kinematics.NewRobot(name, opts.Options, logger)
	if err := r.Build(ctx, jointCfgs, links, opts.Workers); err != nil {
		return nil, err
	}
	return r, nil
}

// tree is the link graph of a URDF. Graph node ids are indices into desc.Links and edges run
// from the parent to the child link of each joint.
type tree struct {
	desc     *robot
	g        *simple.DirectedGraph
	linkIdx  map[string]int64
	children map[int64][]int // joint indices in file order
	parentOf map[int64]int   // joint index whose child is the link
	root     int64
}

func newTree(desc *robot) (*tree, error) {
	t := &tree{
		desc:     desc,
		g:        simple.NewDirectedGraph(),
		linkIdx:  map[string]int64{},
		children: map[int64][]int{},
		parentOf: map[int64]int{},
	}

	var errs error
	for i, l := range desc.Links {
		if _, ok := t.linkIdx[l.Name]; ok {
			errs = multierr.Append(errs, errors.Errorf("duplicate link %q", l.Name))
			continue
		}
		t.linkIdx[l.Name] = int64(i)
		t.g.AddNode(simple.Node(i))
	}
	for i, j := range desc.Joints {
		parent, pok := t.linkIdx[j.Parent.Link]
		child, cok := t.linkIdx[j.Child.Link]
		if !pok {
			errs = multierr.Append(errs, errors.Errorf("joint %q has unknown parent link %q", j.Name, j.Parent.Link))
		}
		if !cok {
			errs = multierr.Append(errs, errors.Errorf("joint %q has unknown child link %q", j.Name, j.Child.Link))
		}
		if !pok || !cok {
			continue
		}
		if parent == child {
			errs = multierr.Append(errs, errors.Wrapf(ErrNotATree, "joint %q connects link %q to itself", j.Name, j.Child.Link))
			continue
		}
		if prev, ok := t.parentOf[child]; ok {
			errs = multierr.Append(errs, errors.Wrapf(ErrNotATree, "link %q is the child of joints %q and %q",
				j.Child.Link, desc.Joints[prev].Name, j.Name))
			continue
		}
		t.parentOf[child] = i
		t.children[parent] = append(t.children[parent], i)
		t.g.SetEdge(t.g.NewEdge(simple.Node(parent), simple.Node(child)))
	}
	if errs != nil {
		return nil, errs
	}

	if _, err := topo.Sort(t.g); err != nil {
		return nil, errors.Wrap(ErrNotATree, err.Error())
	}

	var roots []int64
	for i := range desc.Links {
		if _, ok := t.parentOf[int64(i)]; !ok {
			roots = append(roots, int64(i))
		}
	}
	if len(roots) != 1 {
		names := make([]string, 0, len(roots))
		for _, r := range roots {
			names = append(names, desc.Links[r].Name)
		}
		return nil, errors.Wrapf(ErrNotATree, "expected one root link but found %v", names)
	}
	t.root = roots[0]
	return t, nil
}

// subtree returns the indices of every link reachable from link, including itself.
func (t *tree) subtree(link int64) []int64 {
	out := []int64{}
	df := traverse.DepthFirst{Visit: func(n graph.Node) { out = append(out, n.ID()) }}
	df.Walk(t.g, t.g.Node(link), nil)
	return out
}

type linkConfig struct {
	cfg      referenceframe.LinkConfig
	bfsID    int
	bfsLevel int
	subtree  []int
}

// configs numbers the joints depth first (children in file order) and breadth first, and returns
// the joint configs in depth first order with the matching links. The child link of joint i gets
// id i. The root link gets id -1, or 0 as the child of the floating base joint.
func (t *tree) configs(floatingBase bool) ([]referenceframe.JointConfig, []linkConfig, error) {
	type node struct {
		joint  int // index into desc.Joints, -1 for the floating base joint
		link   int64
		parent int // id of the parent link
	}

	linkID := map[int64]int{}
	var order []node
	next := 0
	var visit func(link int64, parentID int)
	visit = func(link int64, parentID int) {
		for _, ji := range t.children[link] {
			child := t.linkIdx[t.desc.Joints[ji].Child.Link]
			order = append(order, node{joint: ji, link: child, parent: parentID})
			linkID[child] = next
			next++
			visit(child, linkID[child])
		}
	}
	if floatingBase {
		order = append(order, node{joint: -1, link: t.root, parent: -1})
		linkID[t.root] = 0
		next = 1
		visit(t.root, 0)
	} else {
		linkID[t.root] = -1
		visit(t.root, -1)
	}

	// breadth first over the depth first ids; a parent's children keep file order
	bfsID := make([]int, len(order))
	bfsLevel := make([]int, len(order))
	childJoints := map[int][]int{}
	for id, n := range order {
		childJoints[n.parent] = append(childJoints[n.parent], id)
	}
	queue := append([]int(nil), childJoints[-1]...)
	for i := 0; i < len(queue); i++ {
		id := queue[i]
		bfsID[id] = i
		for _, c := range childJoints[id] {
			bfsLevel[c] = bfsLevel[id] + 1
			queue = append(queue, c)
		}
	}

	var errs error
	joints := make([]referenceframe.JointConfig, 0, len(order))
	links := make([]linkConfig, 0, len(order)+1)
	if !floatingBase {
		lc, err := t.linkConfig(t.root, -1, -1)
		errs = multierr.Append(errs, err)
		links = append(links, linkConfig{cfg: lc, bfsID: -1, bfsLevel: -1, subtree: t.subtreeIDs(t.root, linkID)})
	}
	for id, n := range order {
		cfg := referenceframe.JointConfig{
			ID:       id,
			URDFID:   n.joint,
			BFSID:    bfsID[id],
			BFSLevel: bfsLevel[id],
			Child:    t.desc.Links[n.link].Name,
		}
		if n.joint < 0 {
			cfg.Name = FloatingBaseJoint
			cfg.Type = string(referenceframe.FloatingJoint)
			cfg.Parent = World
		} else {
			jc, err := t.jointConfig(n.joint)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			jc.ID, jc.URDFID, jc.BFSID, jc.BFSLevel = cfg.ID, cfg.URDFID, cfg.BFSID, cfg.BFSLevel
			cfg = jc
		}
		joints = append(joints, cfg)

		lc, err := t.linkConfig(n.link, id, n.parent)
		errs = multierr.Append(errs, err)
		links = append(links, linkConfig{cfg: lc, bfsID: bfsID[id], bfsLevel: bfsLevel[id], subtree: t.subtreeIDs(n.link, linkID)})
	}
	if errs != nil {
		return nil, nil, errs
	}
	return joints, links, nil
}

func (t *tree) subtreeIDs(link int64, linkID map[int64]int) []int {
	ids := []int{}
	for _, idx := range t.subtree(link) {
		ids = append(ids, linkID[idx])
	}
	sort.Ints(ids)
	return ids
}

func (t *tree) jointConfig(idx int) (referenceframe.JointConfig, error) {
	j := t.desc.Joints[idx]
	xyz, rpy, err := j.Origin.Parse()
	if err != nil {
		return referenceframe.JointConfig{}, errors.Wrapf(err, "joint %q", j.Name)
	}
	ax, err := j.Axis.Parse()
	if err != nil {
		return referenceframe.JointConfig{}, errors.Wrapf(err, "joint %q axis", j.Name)
	}
	jointType := j.Type
	if jointType == ContinuousJoint {
		jointType = string(referenceframe.RevoluteJoint)
	}
	cfg := referenceframe.JointConfig{
		Name:   j.Name,
		Type:   jointType,
		Parent: j.Parent.Link,
		Child:  j.Child.Link,
		Axis:   ax,
		XYZ:    xyz,
		RPY:    rpy,
	}
	if j.Dynamics != nil {
		cfg.Damping = j.Dynamics.Damping
	}
	return cfg, nil
}

func (t *tree) linkConfig(idx int64, id, parentID int) (referenceframe.LinkConfig, error) {
	l := t.desc.Links[idx]
	cfg := referenceframe.LinkConfig{Name: l.Name, ID: id, ParentID: parentID}
	if l.Inertial == nil {
		return cfg, nil
	}
	com, rpy, err := l.Inertial.Origin.Parse()
	if err != nil {
		return cfg, errors.Wrapf(err, "link %q inertial", l.Name)
	}
	in := l.Inertial.Inertia
	cfg.Mass = l.Inertial.Mass.Value
	cfg.COM = com
	cfg.RPY = rpy
	cfg.Inertia = [6]float64{in.IXX, in.IXY, in.IXZ, in.IYY, in.IYZ, in.IZZ}
	return cfg, nil
}
