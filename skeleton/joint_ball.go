package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/spatialmath"
)

// BallJoint is a 3-DOF spherical joint, per spec §4.2. Rather than
// parameterizing orientation by three scalar angles (which gimbal-locks), it
// carries an internal rotation matrix R integrated directly on SO(3):
// R <- R * ExpMapSO3(v*dt). The GenCoords' Q values mirror LogMapSO3(R) after
// every integration step for external inspection only; V is the true state.
type BallJoint struct {
	jointBase
	r spatialmath.RotationMatrix
}

// NewBallJoint builds a ball joint at the identity orientation.
func NewBallJoint(name string, tp, tc *spatialmath.Pose) *BallJoint {
	j := &BallJoint{
		jointBase: newJointBase(name, 3, tp, tc),
		r:         spatialmath.RotationMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1},
	}
	j.UpdateTransform()
	return j
}

func (j *BallJoint) UpdateTransform() {
	j.transform = spatialmath.NewPose(j.r, r3.Vector{})
}

// MotionSubspace is constant: the joint's generalized velocity is defined as
// the body-frame angular velocity directly, so S is the 3x3 identity in the
// angular block.
func (j *BallJoint) MotionSubspace() [][6]float64 {
	return [][6]float64{
		{1, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 0},
		{0, 0, 1, 0, 0, 0},
	}
}

func (j *BallJoint) UpdateJacobian() {}

func (j *BallJoint) MotionSubspaceDot() [][6]float64 {
	return make([][6]float64, 3)
}

func (j *BallJoint) UpdateJacobianTimeDeriv() {}

// IntegrateConfigs advances the internal orientation on SO(3) directly,
// then refreshes Q with the corresponding LogMapSO3 for inspection.
func (j *BallJoint) IntegrateConfigs(dt float64) {
	w := mgl64.Vec3{j.coords[0].V, j.coords[1].V, j.coords[2].V}.Mul(dt)
	j.r = mulRot(j.r, spatialmath.ExpMapSO3(w))
	logged := spatialmath.LogMapSO3(j.r)
	for i, g := range j.coords {
		g.Q = logged[i]
	}
}
