package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"go.rigidcore.dev/engine/spatialmath"
)

// unitAxis normalizes an axis and returns a ConfigError if it is
// degenerate, per spec §7's "malformed joint axes (non-unit ...)".
func unitAxis(name string, axis mgl64.Vec3) (mgl64.Vec3, error) {
	n := axis.Len()
	if n < 1e-9 {
		return axis, &spatialmath.ConfigError{Msg: name + ": axis must be non-zero"}
	}
	return axis.Mul(1 / n), nil
}

// rotationAbout returns the rotation matrix for angle theta about the given
// unit axis, via Rodrigues' formula (spatialmath.ExpMapSO3).
func rotationAbout(axis mgl64.Vec3, theta float64) spatialmath.RotationMatrix {
	return spatialmath.ExpMapSO3(axis.Mul(theta))
}

// mulRot composes two row-major 3x3 rotation matrices: a * b.
func mulRot(a, b spatialmath.RotationMatrix) spatialmath.RotationMatrix {
	var out spatialmath.RotationMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i*3+k] * b[k*3+j]
			}
			out[i*3+j] = sum
		}
	}
	return out
}

// axisChain computes the motion subspace S and its time derivative dS for a
// sequence of elemental rotations T(q) = R(axis_1,q_1) * R(axis_2,q_2) * ...
// * R(axis_n,q_n), each axis expressed in the frame it is applied in (i.e.
// axis_1 in the joint's base frame, axis_2 in the frame after applying
// R(axis_1,q_1), and so on). This is the shared closed form behind the
// Universal (n=2) and Euler (n=3) joints: column i of S is axis_i carried
// into the final body frame by the inverse of the product of the rotations
// applied after it, and dS/dt follows from differentiating that composed
// rotation.
func axisChain(axes []mgl64.Vec3, q, v []float64) (s, ds [][6]float64) {
	n := len(axes)
	s = make([][6]float64, n)
	ds = make([][6]float64, n)

	// accum is R(axis_{i+1},q_{i+1})*...*R(axis_n,q_n), the rotations applied
	// after axis_i; its transpose maps a vector expressed in frame i into the
	// final body frame.
	accum := spatialmath.RotationMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
	var omega mgl64.Vec3 // angular velocity of the final frame relative to frame i, in the final frame

	for i := n - 1; i >= 0; i-- {
		ax, ay, az := accum.Transpose().MulVec(axes[i][0], axes[i][1], axes[i][2])
		colAngular := mgl64.Vec3{ax, ay, az}
		s[i] = [6]float64{colAngular[0], colAngular[1], colAngular[2], 0, 0, 0}

		dCol := colAngular.Cross(omega)
		ds[i] = [6]float64{dCol[0], dCol[1], dCol[2], 0, 0, 0}

		omega = omega.Add(colAngular.Mul(v[i]))
		accum = mulRot(rotationAbout(axes[i], q[i]), accum)
	}
	return s, ds
}
