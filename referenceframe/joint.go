// Package referenceframe assembles the per-joint symbolic transforms of a robot model and defines
// the joints and links a robot is built from.
package referenceframe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/robomodel/robomodel/logging"
	"github.com/robomodel/robomodel/spatialmath"
	"github.com/robomodel/robomodel/symbolic"
)

// JointType is the kind of motion a joint allows.
type JointType string

// The supported joint types.
const (
	RevoluteJoint  JointType = "revolute"
	PrismaticJoint JointType = "prismatic"
	FixedJoint     JointType = "fixed"
	FloatingJoint  JointType = "floating"
)

// DoF returns the number of velocity degrees of freedom of the joint type.
func (jt JointType) DoF() int {
	switch jt {
	case RevoluteJoint, PrismaticJoint:
		return 1
	case FloatingJoint:
		return 6
	default:
		return 0
	}
}

const (
	// NsimplifyTolerance is the absolute tolerance used to snap transform constants to rationals.
	NsimplifyTolerance = 1e-6
	// VariableName is the name of the scalar joint variable of every non-floating joint.
	VariableName = "theta"
)

// Floating base variable names. A quaternion floating base is compiled over
// x, y, z, q1, q2, q3, q4 and an Euler one over x, y, z, roll, pitch, yaw.
const (
	FloatingX     = "x_fb"
	FloatingY     = "y_fb"
	FloatingZ     = "z_fb"
	FloatingQ1    = "q1_fb"
	FloatingQ2    = "q2_fb"
	FloatingQ3    = "q3_fb"
	FloatingQ4    = "q4_fb"
	FloatingRoll  = "roll_fb"
	FloatingPitch = "pitch_fb"
	FloatingYaw   = "yaw_fb"
)

// JointOptions carries the robot wide settings every joint is built with.
type JointOptions struct {
	// FloatingBase allows a floating joint. Only the floating base joint lacks a homogeneous form.
	FloatingBase bool
	// UsingQuaternion parameterizes the floating base orientation by a quaternion instead of
	// roll, pitch and yaw.
	UsingQuaternion bool
	Engine          symbolic.Engine
	Logger          logging.Logger
}

// Joint is a single joint of a robot: its fixed mounting origin, its type and the transforms
// derived from them.
type Joint struct {
	name     string
	id       int
	urdfID   int
	bfsID    int
	bfsLevel int
	parent   string
	child    string
	damping  float64

	origin    *spatialmath.Origin
	jointType JointType
	axis      string
	opts      JointOptions
	logger    logging.Logger

	vars      []*symbolic.Symbol
	subspace  *mat.Dense
	transform *symbolic.Matrix
	hom       *symbolic.Matrix
	dHom      *symbolic.Matrix
	d2Hom     *symbolic.Matrix

	transformFunc symbolic.MatrixFunc
	homFunc       symbolic.MatrixFunc
	dHomFunc      symbolic.MatrixFunc
	d2HomFunc     symbolic.MatrixFunc
}

// NewJoint returns a joint with an empty origin and no type. Its URDF and BFS ids start equal to id.
func NewJoint(name string, id int, parent, child string, opts JointOptions) *Joint {
	if opts.Engine == nil {
		opts.Engine = symbolic.NewEngine()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Global()
	}
	return &Joint{
		name:   name,
		id:     id,
		urdfID: id,
		bfsID:  id,
		parent: parent,
		child:  child,
		origin: spatialmath.NewOrigin(),
		opts:   opts,
		logger: logger,
	}
}

// motion is the free part of a joint transform before it is combined with the origin.
type motion struct {
	spatial  *symbolic.Matrix
	hom      *symbolic.Matrix
	vars     []*symbolic.Symbol
	subspace *mat.Dense
	axis     string
}

// SetType sets the joint type and builds every transform of the joint. The origin's fixed
// transform is built first if needed. On error the joint keeps its previous state.
func (j *Joint) SetType(jt JointType, axis r3.Vector) error {
	if !j.origin.Built() {
		if err := j.origin.BuildFixedTransform(); err != nil {
			return errors.Wrapf(err, "joint %q", j.name)
		}
	}

	var (
		m   *motion
		err error
	)
	switch jt {
	case RevoluteJoint:
		m, err = revoluteMotion(j.name, axis)
	case PrismaticJoint:
		m, err = prismaticMotion(j.name, axis)
	case FixedJoint:
		m = fixedMotion()
	case FloatingJoint:
		if !j.opts.FloatingBase {
			return NewFloatingJointNotAllowedError(j.name)
		}
		m = floatingMotion(j.opts.UsingQuaternion)
	default:
		return NewUnsupportedJointTypeError(j.name, jt)
	}
	if err != nil {
		return err
	}

	eng := j.opts.Engine
	transform := eng.Nsimplify(m.spatial.Mul(j.origin.Spatial()), NsimplifyTolerance)
	transformFunc, err := eng.Compile(transform, m.vars...)
	if err != nil {
		return errors.Wrapf(err, "compiling transform of joint %q", j.name)
	}

	var hom, dHom, d2Hom *symbolic.Matrix
	var homFunc, dHomFunc, d2HomFunc symbolic.MatrixFunc
	if jt != FloatingJoint {
		theta := m.vars[0]
		hom = eng.Nsimplify(combineHom(m.hom, j.origin.Hom()), NsimplifyTolerance)
		dHom = eng.Diff(hom, theta)
		d2Hom = eng.Diff(dHom, theta)
		funcs := make([]symbolic.MatrixFunc, 3)
		for i, h := range []*symbolic.Matrix{hom, dHom, d2Hom} {
			if funcs[i], err = eng.Compile(h, theta); err != nil {
				return errors.Wrapf(err, "compiling homogeneous transform of joint %q", j.name)
			}
		}
		homFunc, dHomFunc, d2HomFunc = funcs[0], funcs[1], funcs[2]
	}

	j.jointType = jt
	j.axis = m.axis
	j.vars = m.vars
	j.subspace = m.subspace
	j.transform, j.transformFunc = transform, transformFunc
	j.hom, j.dHom, j.d2Hom = hom, dHom, d2Hom
	j.homFunc, j.dHomFunc, j.d2HomFunc = homFunc, dHomFunc, d2HomFunc

	j.logger.Debugw("built joint transform", "joint", j.name, "type", string(jt), "axis", m.axis, "dof", jt.DoF())
	return nil
}

// combineHom joins the rotation blocks of the free and fixed homogeneous transforms as the
// transposed product and their translations as the sum.
func combineHom(free, fixed *symbolic.Matrix) *symbolic.Matrix {
	rot := free.Slice(0, 3, 0, 3).Mul(fixed.Slice(0, 3, 0, 3)).T()
	trans := free.Slice(0, 3, 3, 4).Add(fixed.Slice(0, 3, 3, 4))
	hom := symbolic.Identity(4)
	hom.SetSlice(0, 0, rot)
	hom.SetSlice(0, 3, trans)
	return hom
}

// selectAxis returns the name of the unit axis, checking z then y then x.
func selectAxis(joint string, axis r3.Vector) (string, error) {
	switch {
	case axis == (r3.Vector{Z: 1}):
		return "z", nil
	case axis == (r3.Vector{Y: 1}):
		return "y", nil
	case axis == (r3.Vector{X: 1}):
		return "x", nil
	}
	return "", NewUnsupportedAxisError(joint, []float64{axis.X, axis.Y, axis.Z})
}

func oneHot(idx int) *mat.Dense {
	s := mat.NewDense(6, 1, nil)
	s.Set(idx, 0, 1)
	return s
}

func revoluteMotion(joint string, axis r3.Vector) (*motion, error) {
	name, err := selectAxis(joint, axis)
	if err != nil {
		return nil, err
	}
	theta := symbolic.NewSymbol(VariableName)
	var e *symbolic.Matrix
	var idx int
	switch name {
	case "z":
		e, idx = spatialmath.Rz(theta), 0
	case "y":
		e, idx = spatialmath.Ry(theta), 1
	default:
		e, idx = spatialmath.Rx(theta), 2
	}
	return &motion{
		spatial:  spatialmath.Rot(e),
		hom:      spatialmath.RotHom(e),
		vars:     []*symbolic.Symbol{theta},
		subspace: oneHot(idx),
		axis:     name,
	}, nil
}

func prismaticMotion(joint string, axis r3.Vector) (*motion, error) {
	name, err := selectAxis(joint, axis)
	if err != nil {
		return nil, err
	}
	theta := symbolic.NewSymbol(VariableName)
	xyz := [3]symbolic.Expr{symbolic.Num(0), symbolic.Num(0), symbolic.Num(0)}
	var idx int
	switch name {
	case "z":
		xyz[2], idx = theta, 5
	case "y":
		xyz[1], idx = theta, 4
	default:
		xyz[0], idx = theta, 3
	}
	return &motion{
		spatial:  spatialmath.Xlt(spatialmath.Skew(xyz[0], xyz[1], xyz[2])),
		hom:      spatialmath.TranslationHom(xyz[0], xyz[1], xyz[2]),
		vars:     []*symbolic.Symbol{theta},
		subspace: oneHot(idx),
		axis:     name,
	}, nil
}

func fixedMotion() *motion {
	return &motion{
		spatial:  symbolic.Identity(6),
		hom:      symbolic.Identity(4),
		vars:     []*symbolic.Symbol{symbolic.NewSymbol(VariableName)},
		subspace: mat.NewDense(6, 1, nil),
	}
}

func floatingMotion(usingQuaternion bool) *motion {
	pos := symbolic.Symbols(FloatingX, FloatingY, FloatingZ)
	var e *symbolic.Matrix
	var vars []*symbolic.Symbol
	if usingQuaternion {
		q := symbolic.Symbols(FloatingQ1, FloatingQ2, FloatingQ3, FloatingQ4)
		e = spatialmath.QuatToRot(q[0], q[1], q[2], q[3])
		vars = append(pos, q...)
	} else {
		rpy := symbolic.Symbols(FloatingRoll, FloatingPitch, FloatingYaw)
		e = spatialmath.NewRotation(rpy[0], rpy[1], rpy[2]).E()
		vars = append(pos, rpy...)
	}
	trans := spatialmath.NewTranslation(pos[0], pos[1], pos[2])

	s := mat.NewDense(6, 6, nil)
	for i := 0; i < 6; i++ {
		s.Set(i, i, 1)
	}
	return &motion{
		spatial:  spatialmath.Rot(e).Mul(trans.Spatial()),
		vars:     vars,
		subspace: s,
	}
}

// Name returns the joint name.
func (j *Joint) Name() string { return j.name }

// ID returns the canonical (depth first) id of the joint.
func (j *Joint) ID() int { return j.id }

// SetID sets the canonical id.
func (j *Joint) SetID(id int) { j.id = id }

// URDFID returns the id the joint had in its source description.
func (j *Joint) URDFID() int { return j.urdfID }

// SetURDFID sets the source description id.
func (j *Joint) SetURDFID(id int) { j.urdfID = id }

// BFSID returns the breadth first id.
func (j *Joint) BFSID() int { return j.bfsID }

// SetBFSID sets the breadth first id.
func (j *Joint) SetBFSID(id int) { j.bfsID = id }

// BFSLevel returns the breadth first level, with the root joint at level 0.
func (j *Joint) BFSLevel() int { return j.bfsLevel }

// SetBFSLevel sets the breadth first level.
func (j *Joint) SetBFSLevel(level int) { j.bfsLevel = level }

// Parent returns the name of the parent link.
func (j *Joint) Parent() string { return j.parent }

// Child returns the name of the child link.
func (j *Joint) Child() string { return j.child }

// Damping returns the damping coefficient.
func (j *Joint) Damping() float64 { return j.damping }

// SetDamping sets the damping coefficient.
func (j *Joint) SetDamping(damping float64) { j.damping = damping }

// Origin returns the fixed mounting origin. Changes to it take effect on the next SetType.
func (j *Joint) Origin() *spatialmath.Origin { return j.origin }

// SetOrigin replaces the fixed mounting origin.
func (j *Joint) SetOrigin(o *spatialmath.Origin) { j.origin = o }

// Type returns the joint type, empty until SetType succeeds.
func (j *Joint) Type() JointType { return j.jointType }

// Axis returns "x", "y" or "z" for revolute and prismatic joints and "" otherwise.
func (j *Joint) Axis() string { return j.axis }

// DoF returns the number of velocity degrees of freedom.
func (j *Joint) DoF() int { return j.jointType.DoF() }

// Variables returns the symbols the compiled functions of the joint are bound to, in order.
func (j *Joint) Variables() []*symbolic.Symbol {
	return append([]*symbolic.Symbol(nil), j.vars...)
}

// Subspace returns the motion subspace: a 6x1 one-hot (or zero) column, or the 6x6 identity for a
// floating joint.
func (j *Joint) Subspace() *mat.Dense { return j.subspace }

// Transform returns the symbolic 6x6 spatial transform, free motion times the fixed origin.
func (j *Joint) Transform() *symbolic.Matrix { return j.transform }

// TransformFunc returns the compiled spatial transform.
func (j *Joint) TransformFunc() symbolic.MatrixFunc { return j.transformFunc }

// HomTransform returns the symbolic 4x4 homogeneous transform, nil for a floating joint.
func (j *Joint) HomTransform() *symbolic.Matrix { return j.hom }

// HomTransformFunc returns the compiled homogeneous transform.
func (j *Joint) HomTransformFunc() symbolic.MatrixFunc { return j.homFunc }

// DHomTransform returns the first derivative of the homogeneous transform.
func (j *Joint) DHomTransform() *symbolic.Matrix { return j.dHom }

// DHomTransformFunc returns the compiled first derivative.
func (j *Joint) DHomTransformFunc() symbolic.MatrixFunc { return j.dHomFunc }

// D2HomTransform returns the second derivative of the homogeneous transform.
func (j *Joint) D2HomTransform() *symbolic.Matrix { return j.d2Hom }

// D2HomTransformFunc returns the compiled second derivative.
func (j *Joint) D2HomTransformFunc() symbolic.MatrixFunc { return j.d2HomFunc }

// EvalTransform evaluates the spatial transform at the given joint variables.
func (j *Joint) EvalTransform(vals ...float64) (*mat.Dense, error) {
	if j.transformFunc == nil {
		return nil, NewTransformNotBuiltError(j.name)
	}
	return j.transformFunc(vals...)
}

// EvalHomTransform evaluates the homogeneous transform at theta.
func (j *Joint) EvalHomTransform(theta float64) (mgl64.Mat4, error) {
	if j.homFunc == nil {
		return mgl64.Mat4{}, NewTransformNotBuiltError(j.name)
	}
	h, err := j.homFunc(theta)
	if err != nil {
		return mgl64.Mat4{}, err
	}
	return spatialmath.Mat4FromDense(h)
}
