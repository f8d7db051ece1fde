package urdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/robomodel/robomodel/kinematics"
	"github.com/robomodel/robomodel/logging"
	"github.com/robomodel/robomodel/referenceframe"
)

// Joints are listed out of tree order on purpose.
const branchedArm = `<?xml version="1.0"?>
<robot name="branched">
  <link name="base"/>
  <link name="torso">
    <inertial>
      <origin xyz="0 0 0.1" rpy="0 0 0"/>
      <mass value="2"/>
      <inertia ixx="0.1" ixy="0" ixz="0" iyy="0.2" iyz="0" izz="0.3"/>
    </inertial>
  </link>
  <link name="left"/>
  <link name="left_hand"/>
  <link name="right"/>
  <joint name="right_shoulder" type="prismatic">
    <parent link="torso"/>
    <child link="right"/>
    <origin xyz="0 -0.2 0"/>
    <axis xyz="0 1 0"/>
  </joint>
  <joint name="waist" type="continuous">
    <parent link="base"/>
    <child link="torso"/>
    <origin xyz="0 0 1" rpy="0 0 0"/>
    <axis xyz="0 0 1"/>
    <dynamics damping="0.5"/>
  </joint>
  <joint name="left_shoulder" type="revolute">
    <parent link="torso"/>
    <child link="left"/>
    <origin xyz="0 0.2 0"/>
    <axis xyz="1 0 0"/>
  </joint>
  <joint name="left_wrist" type="fixed">
    <parent link="left"/>
    <child link="left_hand"/>
    <origin xyz="0.3 0 0"/>
  </joint>
</robot>`

func load(t *testing.T, data string, opts Options) *kinematics.Robot {
	t.Helper()
	opts.Logger = logging.NewTestLogger(t)
	r, err := UnmarshalModelXML(context.Background(), []byte(data), opts)
	test.That(t, err, test.ShouldBeNil)
	return r
}

func TestDepthFirstNumbering(t *testing.T) {
	r := load(t, branchedArm, Options{})
	test.That(t, r.Name(), test.ShouldEqual, "branched")
	test.That(t, r.NumJoints(), test.ShouldEqual, 4)
	test.That(t, r.NumLinks(), test.ShouldEqual, 5)

	names := []string{}
	for _, j := range r.JointsOrderedByID(false) {
		names = append(names, j.Name())
	}
	// children are visited in file order: right_shoulder is declared before left_shoulder
	test.That(t, names, test.ShouldResemble, []string{"waist", "right_shoulder", "left_shoulder", "left_wrist"})

	waist, ok := r.JointByName("waist")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, waist.Type(), test.ShouldEqual, referenceframe.RevoluteJoint)
	test.That(t, waist.URDFID(), test.ShouldEqual, 1)
	test.That(t, waist.Damping(), test.ShouldEqual, 0.5)

	base, ok := r.LinkByName("base")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, base.ID(), test.ShouldEqual, -1)

	test.That(t, r.ParentIDArray(), test.ShouldResemble, []int{0, 0, 2})
	test.That(t, r.SubtreeByID(0), test.ShouldResemble, []int{0, 1, 2, 3})
	test.That(t, r.SubtreeByID(2), test.ShouldResemble, []int{2, 3})
	test.That(t, r.LeafNodes(), test.ShouldResemble, []int{1, 3})
	test.That(t, r.IsSerialChain(), test.ShouldBeFalse)
	test.That(t, r.AncestorsByID(3), test.ShouldResemble, []int{2, 0})
	test.That(t, r.NumVel(), test.ShouldEqual, 3)

	torso, ok := r.SpatialInertiaByName("torso")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, torso.At(5, 5), test.ShouldAlmostEqual, 2)
	test.That(t, torso.At(0, 0), test.ShouldAlmostEqual, 0.1+2*0.01)
}

func TestBreadthFirstNumbering(t *testing.T) {
	r := load(t, branchedArm, Options{})
	test.That(t, r.MaxBFSLevel(), test.ShouldEqual, 2)
	test.That(t, r.IDsByBFSLevel(0), test.ShouldResemble, []int{0})
	test.That(t, r.IDsByBFSLevel(1), test.ShouldResemble, []int{1, 2})
	test.That(t, r.IDsByBFSLevel(2), test.ShouldResemble, []int{3})
	test.That(t, r.MaxBFSWidth(), test.ShouldEqual, 2)

	wrist, _ := r.JointByName("left_wrist")
	test.That(t, wrist.BFSID(), test.ShouldEqual, 3)
	hand, _ := r.LinkByName("left_hand")
	test.That(t, hand.BFSLevel(), test.ShouldEqual, 2)
}

func TestFloatingBase(t *testing.T) {
	r := load(t, branchedArm, Options{
		Options: kinematics.Options{FloatingBase: true, UsingQuaternion: true},
		Name:    "floater",
		Workers: 2,
	})
	test.That(t, r.Name(), test.ShouldEqual, "floater")
	test.That(t, r.NumJoints(), test.ShouldEqual, 5)
	test.That(t, r.NumLinks(), test.ShouldEqual, 5)

	fb, ok := r.JointByID(0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, fb.Name(), test.ShouldEqual, FloatingBaseJoint)
	test.That(t, fb.Parent(), test.ShouldEqual, World)
	test.That(t, fb.Child(), test.ShouldEqual, "base")

	base, _ := r.LinkByName("base")
	test.That(t, base.ID(), test.ShouldEqual, 0)
	test.That(t, base.ParentID(), test.ShouldEqual, -1)
	test.That(t, r.NumVel(), test.ShouldEqual, 9)
	test.That(t, r.NumPos(), test.ShouldEqual, 10)
	test.That(t, r.JointIndexQ(1), test.ShouldResemble, []int{7})
	test.That(t, r.AreSubspacesIdentical([]int{1}), test.ShouldBeFalse)
	test.That(t, r.IDsByBFSLevel(1), test.ShouldResemble, []int{1})
}

func TestMalformedDescriptions(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
		is   error
	}{
		{
			name: "two roots",
			data: `<robot name="r"><link name="a"/><link name="b"/></robot>`,
			is:   ErrNotATree,
		},
		{
			name: "two parents",
			data: `<robot name="r"><link name="a"/><link name="b"/><link name="c"/>
				<joint name="j1" type="fixed"><parent link="a"/><child link="c"/></joint>
				<joint name="j2" type="fixed"><parent link="b"/><child link="c"/></joint></robot>`,
			is: ErrNotATree,
		},
		{
			name: "cycle",
			data: `<robot name="r"><link name="root"/><link name="a"/><link name="b"/>
				<joint name="j1" type="fixed"><parent link="a"/><child link="b"/></joint>
				<joint name="j2" type="fixed"><parent link="b"/><child link="a"/></joint></robot>`,
			is: ErrNotATree,
		},
		{
			name: "unsupported joint",
			data: `<robot name="r"><link name="a"/><link name="b"/>
				<joint name="j" type="planar"><parent link="a"/><child link="b"/></joint></robot>`,
			is: referenceframe.ErrUnsupportedJointType,
		},
		{
			name: "floating without floating base",
			data: `<robot name="r"><link name="a"/><link name="b"/>
				<joint name="j" type="floating"><parent link="a"/><child link="b"/></joint></robot>`,
			is: referenceframe.ErrFloatingJointNotAllowed,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalModelXML(context.Background(), []byte(tc.data), Options{Logger: logging.NewTestLogger(t)})
			test.That(t, errors.Is(err, tc.is), test.ShouldBeTrue)
		})
	}

	_, err := UnmarshalModelXML(context.Background(), []byte(`<robot name="r"><link name="a"/>
		<joint name="j" type="fixed"><parent link="a"/><child link="missing"/></joint></robot>`), Options{})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "missing")

	_, err = UnmarshalModelXML(context.Background(), []byte(`<robot name="r"><link name="a"/><link name="b"/>
		<joint name="j" type="fixed"><parent link="a"/><child link="b"/><origin xyz="1 2"/></joint></robot>`), Options{})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = UnmarshalModelXML(context.Background(), []byte("not xml"), Options{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestParseModelXMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm."+Extension)
	test.That(t, os.WriteFile(path, []byte(branchedArm), 0o600), test.ShouldBeNil)

	r, err := ParseModelXMLFile(context.Background(), path, Options{Logger: logging.NewTestLogger(t)})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.NumJoints(), test.ShouldEqual, 4)

	_, err = ParseModelXMLFile(context.Background(), filepath.Join(t.TempDir(), "nope.urdf"), Options{})
	test.That(t, err, test.ShouldNotBeNil)
}
