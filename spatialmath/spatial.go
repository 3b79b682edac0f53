package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
)

// MotionVector is a spatial velocity/acceleration twist: an angular part and
// a linear part, both expressed in the same body frame. Grounded on the
// teacher's kinmath/spatial.MotionVector, generalized from a 3-DOF helper
// into the engine's full spatial-algebra kernel.
type MotionVector struct {
	Angular mgl64.Vec3
	Linear  mgl64.Vec3
}

// ForceVector is a spatial wrench: a moment and a force, both expressed in
// the same body frame. Grounded on the teacher's kinmath/spatial.ForceVector.
type ForceVector struct {
	Moment mgl64.Vec3
	Force  mgl64.Vec3
}

// Add returns the sum of two motion vectors.
func (m MotionVector) Add(o MotionVector) MotionVector {
	return MotionVector{Angular: m.Angular.Add(o.Angular), Linear: m.Linear.Add(o.Linear)}
}

// Scale returns m scaled by s.
func (m MotionVector) Scale(s float64) MotionVector {
	return MotionVector{Angular: m.Angular.Mul(s), Linear: m.Linear.Mul(s)}
}

// Add returns the sum of two force vectors.
func (f ForceVector) Add(o ForceVector) ForceVector {
	return ForceVector{Moment: f.Moment.Add(o.Moment), Force: f.Force.Add(o.Force)}
}

// Scale returns f scaled by s.
func (f ForceVector) Scale(s float64) ForceVector {
	return ForceVector{Moment: f.Moment.Mul(s), Force: f.Force.Mul(s)}
}

// Dot is the power pairing of a wrench against a twist.
func (f ForceVector) Dot(m MotionVector) float64 {
	return f.Moment.Dot(m.Angular) + f.Force.Dot(m.Linear)
}

// ToVec6 flattens (angular, linear) into a 6-vector, angular first, matching
// the spec's spatial-vector convention.
func (m MotionVector) ToVec6() [6]float64 {
	return [6]float64{m.Angular[0], m.Angular[1], m.Angular[2], m.Linear[0], m.Linear[1], m.Linear[2]}
}

// MotionVectorFromVec6 builds a MotionVector from a flattened 6-vector.
func MotionVectorFromVec6(v [6]float64) MotionVector {
	return MotionVector{
		Angular: mgl64.Vec3{v[0], v[1], v[2]},
		Linear:  mgl64.Vec3{v[3], v[4], v[5]},
	}
}

func (f ForceVector) ToVec6() [6]float64 {
	return [6]float64{f.Moment[0], f.Moment[1], f.Moment[2], f.Force[0], f.Force[1], f.Force[2]}
}

func ForceVectorFromVec6(v [6]float64) ForceVector {
	return ForceVector{
		Moment: mgl64.Vec3{v[0], v[1], v[2]},
		Force:  mgl64.Vec3{v[3], v[4], v[5]},
	}
}

// CrossMotion computes the motion-vector cross product m x o (the "ad(m)*o"
// bracket applied to another motion vector): angular x angular for the
// angular part, angular x linear + linear x angular for the linear part.
func (m MotionVector) CrossMotion(o MotionVector) MotionVector {
	return MotionVector{
		Angular: m.Angular.Cross(o.Angular),
		Linear:  m.Angular.Cross(o.Linear).Add(m.Linear.Cross(o.Angular)),
	}
}

// CrossForce computes ad(m)^T applied to a wrench, i.e. the spatial force
// cross product used to propagate bias forces: m x* f.
func (m MotionVector) CrossForce(f ForceVector) ForceVector {
	return ForceVector{
		Moment: m.Angular.Cross(f.Moment).Add(m.Linear.Cross(f.Force)),
		Force:  m.Angular.Cross(f.Force),
	}
}

// Mat6 is a dense 6x6 matrix stored row-major, used for spatial inertias,
// articulated inertias, and the adjoint operators.
type Mat6 [36]float64

// At returns the (r, c) entry, 0-indexed.
func (m Mat6) At(r, c int) float64 { return m[r*6+c] }

// Set assigns the (r, c) entry, 0-indexed.
func (m *Mat6) Set(r, c int, v float64) { m[r*6+c] = v }

// MulVec6 computes m * v.
func (m Mat6) MulVec6(v [6]float64) [6]float64 {
	var out [6]float64
	for r := 0; r < 6; r++ {
		var sum float64
		for c := 0; c < 6; c++ {
			sum += m.At(r, c) * v[c]
		}
		out[r] = sum
	}
	return out
}

// Add returns the entrywise sum.
func (m Mat6) Add(o Mat6) Mat6 {
	var out Mat6
	for i := range m {
		out[i] = m[i] + o[i]
	}
	return out
}

// Transpose returns the transpose of m.
func (m Mat6) Transpose() Mat6 {
	var out Mat6
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			out.Set(c, r, m.At(r, c))
		}
	}
	return out
}

// Mul computes m * o.
func (m Mat6) Mul(o Mat6) Mat6 {
	var out Mat6
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			var sum float64
			for k := 0; k < 6; k++ {
				sum += m.At(r, k) * o.At(k, c)
			}
			out.Set(r, c, sum)
		}
	}
	return out
}

// SkewMat3 returns the 3x3 skew-symmetric cross-product matrix [v]_x such
// that [v]_x * w == v.Cross(w).
func SkewMat3(v mgl64.Vec3) [9]float64 {
	return [9]float64{
		0, -v[2], v[1],
		v[2], 0, -v[0],
		-v[1], v[0], 0,
	}
}

// AdMotion returns the spatial motion-adjoint operator Ad(T) as a 6x6
// matrix: given a twist expressed in T's child/local frame, Ad(T) transforms
// it into the frame T maps into (i.e. V_parent = Ad(T) * V_child when T is
// the child-to-parent transform). Block form:
//
//	[ R        0 ]
//	[ [p]x R   R ]
func AdMotion(p *Pose) Mat6 {
	rm := p.Orientation().RotationMatrix()
	pt := p.Point()
	skew := SkewMat3(mgl64.Vec3{pt.X, pt.Y, pt.Z})
	var out Mat6
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Set(r, c, rm[r*3+c])
			out.Set(r+3, c+3, rm[r*3+c])
		}
	}
	// [p]x * R
	var skewR [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += skew[r*3+k] * rm[k*3+c]
			}
			skewR[r*3+c] = sum
		}
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Set(r+3, c, skewR[r*3+c])
		}
	}
	return out
}

// DAdMotion returns dAd(T) = Ad(T^-1)^T, the operator that transforms a
// wrench from T's local frame into the frame T maps into. Per spec §4.1.
func DAdMotion(p *Pose) Mat6 {
	return AdMotion(p.Inverse()).Transpose()
}

// AdInverse returns Ad(T^-1), used pervasively to pull a parent spatial
// quantity down into a child frame (the spec's Ad(J.T^-1) usage).
func AdInverse(p *Pose) Mat6 {
	return AdMotion(p.Inverse())
}

// AdBracket returns the 6x6 bracket matrix ad(v) for the twist v, such that
// AdBracket(v).MulVec6(w) equals v.CrossMotion(w) for any motion vector w:
//
//	[ [w]x   0   ]
//	[ [u]x  [w]x ]
//
// where w is the angular part and u the linear part of v.
func AdBracket(v MotionVector) Mat6 {
	wx := SkewMat3(v.Angular)
	ux := SkewMat3(v.Linear)
	var out Mat6
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Set(r, c, wx[r*3+c])
			out.Set(r+3, c+3, wx[r*3+c])
			out.Set(r+3, c, ux[r*3+c])
		}
	}
	return out
}
