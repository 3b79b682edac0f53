package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/spatialmath"
)

// RevoluteJoint is a single-DOF rotation about a fixed axis, per spec §4.2.
// Its motion subspace is constant in the joint frame, so MotionSubspaceDot is
// always zero.
type RevoluteJoint struct {
	jointBase
	axis mgl64.Vec3
}

// NewRevoluteJoint builds a revolute joint about axis (need not be
// pre-normalized). Returns a *spatialmath.ConfigError if axis is degenerate.
func NewRevoluteJoint(name string, axis mgl64.Vec3, tp, tc *spatialmath.Pose) (*RevoluteJoint, error) {
	a, err := unitAxis(name, axis)
	if err != nil {
		return nil, err
	}
	j := &RevoluteJoint{jointBase: newJointBase(name, 1, tp, tc), axis: a}
	j.UpdateTransform()
	return j, nil
}

func (j *RevoluteJoint) UpdateTransform() {
	rm := rotationAbout(j.axis, j.coords[0].Q)
	j.transform = spatialmath.NewPose(rm, r3.Vector{})
}

func (j *RevoluteJoint) MotionSubspace() [][6]float64 {
	return [][6]float64{{j.axis[0], j.axis[1], j.axis[2], 0, 0, 0}}
}

func (j *RevoluteJoint) UpdateJacobian() {}

func (j *RevoluteJoint) MotionSubspaceDot() [][6]float64 {
	return [][6]float64{{0, 0, 0, 0, 0, 0}}
}

func (j *RevoluteJoint) UpdateJacobianTimeDeriv() {}

func (j *RevoluteJoint) IntegrateConfigs(dt float64) {
	g := j.coords[0]
	g.Q += g.V * dt
}
