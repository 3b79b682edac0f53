package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"go.rigidcore.dev/engine/spatialmath"
)

// FreeJoint is a 6-DOF joint giving the child body the full SE(3) freedom of
// an unconstrained rigid body, per spec §4.2. Like Ball, it carries internal
// manifold state (a Pose) rather than six raw scalar coordinates, integrated
// as T <- T * ExpMapSE3(v*dt). DOF order is (angular x,y,z, linear x,y,z),
// matching the spatial-vector convention used throughout.
type FreeJoint struct {
	jointBase
	t *spatialmath.Pose
}

// NewFreeJoint builds a free joint at the identity transform.
func NewFreeJoint(name string, tp, tc *spatialmath.Pose) *FreeJoint {
	j := &FreeJoint{jointBase: newJointBase(name, 6, tp, tc), t: spatialmath.NewZeroPose()}
	j.transform = j.t
	return j
}

func (j *FreeJoint) UpdateTransform() { j.transform = j.t }

// MotionSubspace is the 6x6 identity: the generalized velocity is defined as
// the body twist directly.
func (j *FreeJoint) MotionSubspace() [][6]float64 {
	s := make([][6]float64, 6)
	for i := range s {
		s[i][i] = 1
	}
	return s
}

func (j *FreeJoint) UpdateJacobian() {}

func (j *FreeJoint) MotionSubspaceDot() [][6]float64 {
	return make([][6]float64, 6)
}

func (j *FreeJoint) UpdateJacobianTimeDeriv() {}

// IntegrateConfigs advances the internal SE(3) state directly, then mirrors
// LogMapSE3(T) into the six GenCoords' Q for inspection.
func (j *FreeJoint) IntegrateConfigs(dt float64) {
	v := spatialmath.MotionVector{
		Angular: mgl64.Vec3{j.coords[0].V, j.coords[1].V, j.coords[2].V},
		Linear:  mgl64.Vec3{j.coords[3].V, j.coords[4].V, j.coords[5].V},
	}.Scale(dt)
	j.t = j.t.Compose(spatialmath.ExpMapSE3(v))
	logged := spatialmath.LogMapSE3(j.t)
	vec6 := logged.ToVec6()
	for i, g := range j.coords {
		g.Q = vec6[i]
	}
}
