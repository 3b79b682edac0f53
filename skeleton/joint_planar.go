package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/spatialmath"
)

// PlaneType selects which plane a PlanarJoint's two translational DOFs span,
// per spec §4.2.
type PlaneType int

const (
	PlaneXY PlaneType = iota
	PlaneYZ
	PlaneZX
	PlaneArbitrary
)

// PlanarJoint is a 3-DOF joint with two translational DOFs spanning a plane
// and one rotational DOF about the plane's normal, per spec §4.2. For
// PlaneArbitrary the two translation axes are caller-supplied and must be
// orthonormal; the rotation axis is their cross product.
type PlanarJoint struct {
	jointBase
	kind   PlaneType
	t1, t2 mgl64.Vec3
	normal mgl64.Vec3
}

// NewPlanarJoint builds a planar joint. For kind == PlaneArbitrary, t1 and t2
// must be supplied and orthonormal; a *spatialmath.ConfigError is returned if
// they are not (spec §7's "non-orthogonal axes" edge case). For the three
// fixed-plane kinds, t1/t2 are ignored and may be zero.
func NewPlanarJoint(name string, kind PlaneType, t1, t2 mgl64.Vec3, tp, tc *spatialmath.Pose) (*PlanarJoint, error) {
	var a1, a2 mgl64.Vec3
	switch kind {
	case PlaneXY:
		a1, a2 = mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}
	case PlaneYZ:
		a1, a2 = mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}
	case PlaneZX:
		a1, a2 = mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}
	case PlaneArbitrary:
		var err error
		a1, err = unitAxis(name, t1)
		if err != nil {
			return nil, err
		}
		a2, err = unitAxis(name, t2)
		if err != nil {
			return nil, err
		}
		if dot := a1.Dot(a2); dot > 1e-6 || dot < -1e-6 {
			return nil, &spatialmath.ConfigError{Msg: name + ": arbitrary planar axes must be orthogonal"}
		}
	default:
		return nil, &spatialmath.ConfigError{Msg: name + ": unknown plane type"}
	}
	n := a1.Cross(a2).Normalize()
	j := &PlanarJoint{jointBase: newJointBase(name, 3, tp, tc), kind: kind, t1: a1, t2: a2, normal: n}
	j.UpdateTransform()
	return j, nil
}

// DOF order is (translation along t1, translation along t2, rotation about
// the plane normal).
func (j *PlanarJoint) UpdateTransform() {
	q1, q2, q3 := j.coords[0].Q, j.coords[1].Q, j.coords[2].Q
	rm := rotationAbout(j.normal, q3)
	t := j.t1.Mul(q1).Add(j.t2.Mul(q2))
	j.transform = spatialmath.NewPose(rm, r3.Vector{X: t[0], Y: t[1], Z: t[2]})
}

func (j *PlanarJoint) MotionSubspace() [][6]float64 {
	return [][6]float64{
		{0, 0, 0, j.t1[0], j.t1[1], j.t1[2]},
		{0, 0, 0, j.t2[0], j.t2[1], j.t2[2]},
		{j.normal[0], j.normal[1], j.normal[2], 0, 0, 0},
	}
}

func (j *PlanarJoint) UpdateJacobian() {}

func (j *PlanarJoint) MotionSubspaceDot() [][6]float64 {
	return make([][6]float64, 3)
}

func (j *PlanarJoint) UpdateJacobianTimeDeriv() {}

// IntegrateConfigs is plain per-DOF Euler integration: the plane's
// translation axes and normal are fixed in the joint frame, so there is no
// manifold coupling between the three coordinates (unlike Ball or Free).
func (j *PlanarJoint) IntegrateConfigs(dt float64) {
	for _, g := range j.coords {
		g.Q += g.V * dt
	}
}
