package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/spatialmath"
)

// EulerJoint is a 3-DOF joint built from three elemental rotations about
// fixed body axes, T(q) = Rz(q1) * Ry(q2) * Rx(q3) (intrinsic Z-Y-X), per
// spec §4.2. It is distinct from Ball: Euler has a coordinate-singularity
// (gimbal lock) at pitch = +-pi/2, where axisChain's composed Jacobian
// becomes rank-deficient; Ball has none, since it integrates its orientation
// directly on SO(3) rather than through these three scalar angles.
type EulerJoint struct {
	jointBase
}

var eulerAxes = []mgl64.Vec3{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}}

// NewEulerJoint builds a Z-Y-X intrinsic Euler joint.
func NewEulerJoint(name string, tp, tc *spatialmath.Pose) *EulerJoint {
	j := &EulerJoint{jointBase: newJointBase(name, 3, tp, tc)}
	j.UpdateTransform()
	return j
}

func (j *EulerJoint) UpdateTransform() {
	rm := spatialmath.RotationMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i, axis := range eulerAxes {
		rm = mulRot(rm, rotationAbout(axis, j.coords[i].Q))
	}
	j.transform = spatialmath.NewPose(rm, r3.Vector{})
}

func (j *EulerJoint) qv() (q, v []float64) {
	q = make([]float64, 3)
	v = make([]float64, 3)
	for i, g := range j.coords {
		q[i], v[i] = g.Q, g.V
	}
	return q, v
}

func (j *EulerJoint) MotionSubspace() [][6]float64 {
	q, v := j.qv()
	s, _ := axisChain(eulerAxes, q, v)
	return s
}

func (j *EulerJoint) UpdateJacobian() {}

func (j *EulerJoint) MotionSubspaceDot() [][6]float64 {
	q, v := j.qv()
	_, ds := axisChain(eulerAxes, q, v)
	return ds
}

func (j *EulerJoint) UpdateJacobianTimeDeriv() {}

func (j *EulerJoint) IntegrateConfigs(dt float64) {
	for _, g := range j.coords {
		g.Q += g.V * dt
	}
}
