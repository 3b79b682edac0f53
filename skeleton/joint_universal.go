package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/spatialmath"
)

// UniversalJoint is a 2-DOF joint composing two elemental rotations,
// T(q1,q2) = R(axis1,q1) * R(axis2,q2), where axis2 is expressed in the frame
// after axis1's rotation has been applied, per spec §4.2. Unlike Revolute,
// its motion subspace is q-dependent (axisChain).
type UniversalJoint struct {
	jointBase
	axis1, axis2 mgl64.Vec3
}

// NewUniversalJoint builds a universal joint from two non-parallel axes.
func NewUniversalJoint(name string, axis1, axis2 mgl64.Vec3, tp, tc *spatialmath.Pose) (*UniversalJoint, error) {
	a1, err := unitAxis(name, axis1)
	if err != nil {
		return nil, err
	}
	a2, err := unitAxis(name, axis2)
	if err != nil {
		return nil, err
	}
	if c := a1.Cross(a2).Len(); c < 1e-6 {
		return nil, &spatialmath.ConfigError{Msg: name + ": universal joint axes must not be parallel"}
	}
	j := &UniversalJoint{jointBase: newJointBase(name, 2, tp, tc), axis1: a1, axis2: a2}
	j.UpdateTransform()
	j.UpdateJacobian()
	return j, nil
}

func (j *UniversalJoint) UpdateTransform() {
	q1, q2 := j.coords[0].Q, j.coords[1].Q
	rm := mulRot(rotationAbout(j.axis1, q1), rotationAbout(j.axis2, q2))
	j.transform = spatialmath.NewPose(rm, r3.Vector{})
}

func (j *UniversalJoint) axisSlice() []mgl64.Vec3 { return []mgl64.Vec3{j.axis1, j.axis2} }

func (j *UniversalJoint) qv() (q, v []float64) {
	return []float64{j.coords[0].Q, j.coords[1].Q}, []float64{j.coords[0].V, j.coords[1].V}
}

func (j *UniversalJoint) MotionSubspace() [][6]float64 {
	q, v := j.qv()
	s, _ := axisChain(j.axisSlice(), q, v)
	return s
}

func (j *UniversalJoint) UpdateJacobian() {}

func (j *UniversalJoint) MotionSubspaceDot() [][6]float64 {
	q, v := j.qv()
	_, ds := axisChain(j.axisSlice(), q, v)
	return ds
}

func (j *UniversalJoint) UpdateJacobianTimeDeriv() {}

func (j *UniversalJoint) IntegrateConfigs(dt float64) {
	for _, g := range j.coords {
		g.Q += g.V * dt
	}
}
