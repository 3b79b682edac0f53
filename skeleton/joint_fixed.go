package skeleton

import "go.rigidcore.dev/engine/spatialmath"

// FixedJoint has zero DOF: it rigidly welds the child body to the parent at
// T_parent_to_joint * T_child_to_joint^-1, per spec §4.2.
type FixedJoint struct {
	jointBase
}

// NewFixedJoint builds a 0-DOF joint.
func NewFixedJoint(name string, tp, tc *spatialmath.Pose) *FixedJoint {
	j := &FixedJoint{jointBase: newJointBase(name, 0, tp, tc)}
	j.transform = spatialmath.NewZeroPose()
	return j
}

func (j *FixedJoint) UpdateTransform()          { j.transform = spatialmath.NewZeroPose() }
func (j *FixedJoint) MotionSubspace() [][6]float64    { return nil }
func (j *FixedJoint) UpdateJacobian()           {}
func (j *FixedJoint) MotionSubspaceDot() [][6]float64 { return nil }
func (j *FixedJoint) UpdateJacobianTimeDeriv()  {}
func (j *FixedJoint) IntegrateConfigs(dt float64) {}
