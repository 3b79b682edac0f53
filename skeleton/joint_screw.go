package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/spatialmath"
)

// ScrewJoint is a single-DOF helical joint, per spec §4.2: rotation by q
// about axis coupled to translation pitch*q along the same axis. Its motion
// subspace [axis; pitch*axis] is constant, since the coupling is linear in q.
type ScrewJoint struct {
	jointBase
	axis  mgl64.Vec3
	pitch float64
}

// NewScrewJoint builds a screw joint about axis with the given pitch
// (translation per radian of rotation).
func NewScrewJoint(name string, axis mgl64.Vec3, pitch float64, tp, tc *spatialmath.Pose) (*ScrewJoint, error) {
	a, err := unitAxis(name, axis)
	if err != nil {
		return nil, err
	}
	j := &ScrewJoint{jointBase: newJointBase(name, 1, tp, tc), axis: a, pitch: pitch}
	j.UpdateTransform()
	return j, nil
}

func (j *ScrewJoint) UpdateTransform() {
	q := j.coords[0].Q
	rm := rotationAbout(j.axis, q)
	t := j.axis.Mul(j.pitch * q)
	j.transform = spatialmath.NewPose(rm, r3.Vector{X: t[0], Y: t[1], Z: t[2]})
}

func (j *ScrewJoint) MotionSubspace() [][6]float64 {
	lin := j.axis.Mul(j.pitch)
	return [][6]float64{{j.axis[0], j.axis[1], j.axis[2], lin[0], lin[1], lin[2]}}
}

func (j *ScrewJoint) UpdateJacobian() {}

func (j *ScrewJoint) MotionSubspaceDot() [][6]float64 {
	return [][6]float64{{0, 0, 0, 0, 0, 0}}
}

func (j *ScrewJoint) UpdateJacobianTimeDeriv() {}

func (j *ScrewJoint) IntegrateConfigs(dt float64) {
	g := j.coords[0]
	g.Q += g.V * dt
}
