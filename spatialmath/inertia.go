package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// NewSpatialInertia assembles a body's 6x6 spatial inertia about its own
// origin from its mass, its center of mass in the body frame, and its 3x3
// rotational inertia about that center of mass (row-major, body-frame
// axes), per the standard rigid-body spatial inertia composition (spec
// §4.1's "spatial inertia I (6x6)" field) used by the inward ABA pass.
func NewSpatialInertia(mass float64, com r3.Vector, rotInertiaAboutCOM [9]float64) Mat6 {
	cx := SkewMat3(mgl64.Vec3{com.X, com.Y, com.Z})
	var cxcx [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += cx[r*3+k] * cx[k*3+c]
			}
			cxcx[r*3+c] = sum
		}
	}

	var out Mat6
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Set(r, c, rotInertiaAboutCOM[r*3+c]-mass*cxcx[r*3+c])
			out.Set(r, c+3, mass*cx[r*3+c])
			out.Set(r+3, c, mass*cx[c*3+r])
		}
		out.Set(r+3, r+3, mass)
	}
	return out
}

// PointMassInertia returns the spatial inertia of a point mass (zero
// rotational inertia about its own center) at com.
func PointMassInertia(mass float64, com r3.Vector) Mat6 {
	return NewSpatialInertia(mass, com, [9]float64{})
}
