package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/spatialmath"
)

// TranslationalJoint is a 3-DOF pure translation along three independent
// axes, per spec §4.2. Unlike Free, it carries no rotational DOF. The three
// axes need not be orthogonal, but a degenerate (linearly dependent) set
// makes the joint under-actuated; this implementation does not check for
// that, matching spec §9's "axis orthogonality is not runtime-checked except
// where the spec explicitly requires it" stance for Planar/ARBITRARY.
type TranslationalJoint struct {
	jointBase
	axes [3]mgl64.Vec3
}

// NewTranslationalJoint builds a translational joint along the three given
// axes (each normalized independently).
func NewTranslationalJoint(name string, ax, ay, az mgl64.Vec3, tp, tc *spatialmath.Pose) (*TranslationalJoint, error) {
	a0, err := unitAxis(name, ax)
	if err != nil {
		return nil, err
	}
	a1, err := unitAxis(name, ay)
	if err != nil {
		return nil, err
	}
	a2, err := unitAxis(name, az)
	if err != nil {
		return nil, err
	}
	j := &TranslationalJoint{jointBase: newJointBase(name, 3, tp, tc), axes: [3]mgl64.Vec3{a0, a1, a2}}
	j.UpdateTransform()
	return j, nil
}

func (j *TranslationalJoint) UpdateTransform() {
	var t mgl64.Vec3
	for i, g := range j.coords {
		t = t.Add(j.axes[i].Mul(g.Q))
	}
	j.transform = spatialmath.NewPose(
		spatialmath.RotationMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1},
		r3.Vector{X: t[0], Y: t[1], Z: t[2]},
	)
}

func (j *TranslationalJoint) MotionSubspace() [][6]float64 {
	s := make([][6]float64, 3)
	for i, a := range j.axes {
		s[i] = [6]float64{0, 0, 0, a[0], a[1], a[2]}
	}
	return s
}

func (j *TranslationalJoint) UpdateJacobian() {}

func (j *TranslationalJoint) MotionSubspaceDot() [][6]float64 {
	return make([][6]float64, 3)
}

func (j *TranslationalJoint) UpdateJacobianTimeDeriv() {}

func (j *TranslationalJoint) IntegrateConfigs(dt float64) {
	for _, g := range j.coords {
		g.Q += g.V * dt
	}
}
