package constraint

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/skeleton"
	"go.rigidcore.dev/engine/spatialmath"
)

func toMgl(v r3.Vector) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func toR3(v mgl64.Vec3) r3.Vector { return r3.Vector{X: v[0], Y: v[1], Z: v[2]} }

// wrenchAtPoint expresses a world-frame force applied at a world-frame point
// as a body-local wrench (moment, force), via the body's current world pose.
func wrenchAtPoint(body *skeleton.BodyNode, worldPoint, worldForce r3.Vector) spatialmath.ForceVector {
	rt := body.World.Orientation().RotationMatrix().Transpose()
	fx, fy, fz := rt.MulVec(worldForce.X, worldForce.Y, worldForce.Z)
	flocal := mgl64.Vec3{fx, fy, fz}

	rel := worldPoint.Sub(body.World.Point())
	rx, ry, rz := rt.MulVec(rel.X, rel.Y, rel.Z)
	rlocal := mgl64.Vec3{rx, ry, rz}

	return spatialmath.ForceVector{Moment: rlocal.Cross(flocal), Force: flocal}
}

// genForce maps a body-local wrench to the generalized force it induces on
// every DOF of the owning skeleton, via that body's Jacobian.
func genForce(body *skeleton.BodyNode, w spatialmath.ForceVector) []float64 {
	w6 := w.ToVec6()
	out := make([]float64, len(body.Jac))
	for k, jk := range body.Jac {
		out[k] = dotVec6(jk, w6)
	}
	return out
}

// matVec computes m*v for a dense row-major matrix.
func matVec(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(m))
	for i, row := range m {
		var sum float64
		for j, vj := range v {
			sum += row[j] * vj
		}
		out[i] = sum
	}
	return out
}

// pullTwist projects a generalized velocity vector into a body's own-frame
// spatial twist via that body's Jacobian.
func pullTwist(body *skeleton.BodyNode, genV []float64) [6]float64 {
	var v [6]float64
	for k, jk := range body.Jac {
		gv := genV[k]
		if gv == 0 {
			continue
		}
		for i := 0; i < 6; i++ {
			v[i] += jk[i] * gv
		}
	}
	return v
}

// pointVelocity returns the world-frame linear velocity of the material
// point on body currently coincident with worldPoint.
func pointVelocity(body *skeleton.BodyNode, worldPoint r3.Vector) r3.Vector {
	r := body.World.Orientation().RotationMatrix()
	rt := r.Transpose()
	rel := worldPoint.Sub(body.World.Point())
	rx, ry, rz := rt.MulVec(rel.X, rel.Y, rel.Z)
	rLocal := mgl64.Vec3{rx, ry, rz}

	vLocal := body.V.Linear.Add(body.V.Angular.Cross(rLocal))
	vx, vy, vz := r.MulVec(vLocal[0], vLocal[1], vLocal[2])
	return r3.Vector{X: vx, Y: vy, Z: vz}
}
