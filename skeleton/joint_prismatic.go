package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/spatialmath"
)

// PrismaticJoint is a single-DOF translation along a fixed axis, per spec
// §4.2. Like Revolute, its motion subspace is constant.
type PrismaticJoint struct {
	jointBase
	axis mgl64.Vec3
}

// NewPrismaticJoint builds a prismatic joint sliding along axis.
func NewPrismaticJoint(name string, axis mgl64.Vec3, tp, tc *spatialmath.Pose) (*PrismaticJoint, error) {
	a, err := unitAxis(name, axis)
	if err != nil {
		return nil, err
	}
	j := &PrismaticJoint{jointBase: newJointBase(name, 1, tp, tc), axis: a}
	j.UpdateTransform()
	return j, nil
}

func (j *PrismaticJoint) UpdateTransform() {
	q := j.coords[0].Q
	j.transform = spatialmath.NewPose(
		spatialmath.RotationMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1},
		r3.Vector{X: j.axis[0] * q, Y: j.axis[1] * q, Z: j.axis[2] * q},
	)
}

func (j *PrismaticJoint) MotionSubspace() [][6]float64 {
	return [][6]float64{{0, 0, 0, j.axis[0], j.axis[1], j.axis[2]}}
}

func (j *PrismaticJoint) UpdateJacobian() {}

func (j *PrismaticJoint) MotionSubspaceDot() [][6]float64 {
	return [][6]float64{{0, 0, 0, 0, 0, 0}}
}

func (j *PrismaticJoint) UpdateJacobianTimeDeriv() {}

func (j *PrismaticJoint) IntegrateConfigs(dt float64) {
	g := j.coords[0]
	g.Q += g.V * dt
}
