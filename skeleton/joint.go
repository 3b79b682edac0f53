package skeleton

import (
	"go.rigidcore.dev/engine/spatialmath"
)

// Joint is implemented by every joint variant in spec §4.2. Rather than a
// class hierarchy, each variant is a small struct implementing this closed
// capability set (transform, motion subspace, its time derivative, DOF
// count, configuration integration) per the design note in spec §9: model
// joints as a tagged variant/capability set, not virtual inheritance.
type Joint interface {
	Name() string
	NumDOF() int
	Coords() []*GenCoord

	// TParentToJoint and TChildToJoint are the constant body-to-joint
	// offsets from spec §3.
	TParentToJoint() *spatialmath.Pose
	TChildToJoint() *spatialmath.Pose

	// Transform returns the cached T(q): the joint's local transform
	// relating parent body frame to child body frame, satisfying
	// T = T_parent_to_joint * T(q) * T_child_to_joint^-1.
	Transform() *spatialmath.Pose
	UpdateTransform()

	// MotionSubspace returns S(q), one 6-vector per DOF, mapping
	// generalized velocity to spatial twist.
	MotionSubspace() [][6]float64
	UpdateJacobian()

	// MotionSubspaceDot returns dS(q,v), the time derivative of S.
	MotionSubspaceDot() [][6]float64
	UpdateJacobianTimeDeriv()

	// IntegrateConfigs advances q by one step of size dt given the current
	// v, using whatever manifold structure the joint needs (e.g. Ball and
	// Free integrate an internal SO(3)/SE(3) element rather than raw q).
	IntegrateConfigs(dt float64)

	// SpringStiffness, Damping, and RestPosition are per-DOF spring/damper
	// parameters (spec §3/§4.2). They are independent: setting one must
	// never affect the others (spec §9 design note).
	SpringStiffness() []float64
	Damping() []float64
	RestPosition() []float64
}

// jointBase holds the fields and behavior shared by every joint variant:
// name, fixed offsets, the owned GenCoords, spring/damper parameters, and
// the cached local transform.
type jointBase struct {
	name           string
	tParentToJoint *spatialmath.Pose
	tChildToJoint  *spatialmath.Pose
	coords         []*GenCoord
	k, d, q0       []float64
	transform      *spatialmath.Pose
}

func newJointBase(name string, nDOF int, tp, tc *spatialmath.Pose) jointBase {
	if tp == nil {
		tp = spatialmath.NewZeroPose()
	}
	if tc == nil {
		tc = spatialmath.NewZeroPose()
	}
	coords := make([]*GenCoord, nDOF)
	for i := range coords {
		coords[i] = NewGenCoord(name)
	}
	return jointBase{
		name:           name,
		tParentToJoint: tp,
		tChildToJoint:  tc,
		coords:         coords,
		k:              make([]float64, nDOF),
		d:              make([]float64, nDOF),
		q0:             make([]float64, nDOF),
		transform:      spatialmath.NewZeroPose(),
	}
}

func (j *jointBase) Name() string                          { return j.name }
func (j *jointBase) NumDOF() int                            { return len(j.coords) }
func (j *jointBase) Coords() []*GenCoord                    { return j.coords }
func (j *jointBase) TParentToJoint() *spatialmath.Pose      { return j.tParentToJoint }
func (j *jointBase) TChildToJoint() *spatialmath.Pose       { return j.tChildToJoint }
func (j *jointBase) Transform() *spatialmath.Pose           { return j.transform }
func (j *jointBase) SpringStiffness() []float64             { return j.k }
func (j *jointBase) Damping() []float64                     { return j.d }
func (j *jointBase) RestPosition() []float64                { return j.q0 }

// SpringDampingForce computes the implicit-in-velocity spring force plus the
// damping force for a single DOF, per spec §4.2:
//
//	tau_spring = -k*(q + v*dt - q0)
//	tau_damp   = -d*v
//
// Kp (k) and Kd (d) are independent knobs; a setter for one must never write
// the other, despite a historical typo in one upstream setter (spec §9).
func SpringDampingForce(g *GenCoord, k, d, q0, dt float64) float64 {
	return -k*(g.Q+g.V*dt-q0) - d*g.V
}

// FullTransform composes T_parent_to_joint * T(q) * T_child_to_joint^-1, the
// joint invariant from spec §3.
func FullTransform(j Joint) *spatialmath.Pose {
	return j.TParentToJoint().Compose(j.Transform()).Compose(j.TChildToJoint().Inverse())
}
