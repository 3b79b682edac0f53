package spatialmath

import (
	"github.com/golang/geo/r3"
)

// MPRTolerance and MPRMaxIterations are the default convergence parameters
// for Minkowski Portal Refinement, per spec §4.4.
const (
	MPRTolerance     = 1e-6
	MPRMaxIterations = 500
)

// PlacedShape pairs a Shape with the world pose of the body that owns it,
// since support and center functions are defined in local frames (spec
// §4.4) but MPR operates in world space.
type PlacedShape struct {
	Shape Shape
	Pose  *Pose
}

func (p PlacedShape) supportWorld(dir r3.Vector) r3.Vector {
	// The support direction must be expressed in the shape's local frame.
	rm := p.Pose.Orientation().RotationMatrix()
	localDir := rotateInverse(rm, dir)
	local := p.Shape.Support(localDir)
	return p.Pose.Transform(local)
}

func (p PlacedShape) centerWorld() r3.Vector {
	return p.Pose.Transform(p.Shape.Center())
}

func rotateInverse(rm RotationMatrix, v r3.Vector) r3.Vector {
	t := rm.Transpose()
	x, y, z := t.MulVec(v.X, v.Y, v.Z)
	return r3.Vector{X: x, Y: y, Z: z}
}

// minkowskiSupport returns the Minkowski-difference support point for
// direction dir: support_A(dir) - support_B(-dir).
func minkowskiSupport(a, b PlacedShape, dir r3.Vector) r3.Vector {
	return a.supportWorld(dir).Sub(b.supportWorld(dir.Mul(-1)))
}

// MPRIntersect reports whether two convex shapes overlap, via Minkowski
// Portal Refinement. Per spec §4.4 this is the `intersect(o1,o2)` entry
// point.
func MPRIntersect(a, b PlacedShape) bool {
	hit, _, _, _ := mprPortalRefine(a, b)
	return hit
}

// MPRPenetration returns the penetration depth, contact normal (pointing
// from body2 toward body1, per spec §4.4's post-negation convention), and a
// representative contact point, via MPR. ok is false if the shapes are
// separated or MPR failed to converge (a spec §7 collision failure,
// reported by the caller as "no contact").
func MPRPenetration(a, b PlacedShape) (depth float64, normal, point r3.Vector, ok bool) {
	hit, n, p, converged := mprPortalRefine(a, b)
	if !hit || !converged {
		return 0, r3.Vector{}, r3.Vector{}, false
	}
	return n.d, n.normal, p, true
}

type depthNormal struct {
	d      float64
	normal r3.Vector
}

// mprPortalRefine implements the core Minkowski Portal Refinement loop: find
// an interior ray from the Minkowski-difference origin's approximate
// center, build a portal of three support points, and refine it toward the
// origin until the portal's plane brackets the origin (intersection) or the
// ray escapes the difference (separation).
func mprPortalRefine(a, b PlacedShape) (hit bool, dn depthNormal, point r3.Vector, converged bool) {
	v0 := a.centerWorld().Sub(b.centerWorld())
	if v0.Norm() < 1e-9 {
		v0 = r3.Vector{X: 1e-6}
	}
	rayDir := v0.Mul(-1)

	v1 := minkowskiSupport(a, b, rayDir)
	if v1.Dot(rayDir) <= 0 {
		return false, dn, point, true
	}

	dir2 := v1.Cross(v0)
	if dir2.Norm() < 1e-9 {
		dir2 = v1.Sub(v0)
		if dir2.Norm() < 1e-9 {
			dir2 = r3.Vector{Y: 1}
		}
	}
	v2 := minkowskiSupport(a, b, dir2)
	if v2.Dot(dir2) <= 0 {
		return false, dn, point, true
	}

	// Orient the portal (v1, v2) so the origin is on the inside relative to
	// v0.
	dir3 := v1.Sub(v0).Cross(v2.Sub(v0))
	if dir3.Dot(v0.Mul(-1)) > 0 {
		v1, v2 = v2, v1
		dir3 = dir3.Mul(-1)
	}

	for i := 0; i < MPRMaxIterations; i++ {
		dir3 = v1.Sub(v0).Cross(v2.Sub(v0))
		v3 := minkowskiSupport(a, b, dir3)
		if v3.Dot(dir3) <= 0 {
			return false, dn, point, true
		}

		// If the origin is outside the portal formed by (v0,v1,v2,v3) on the
		// v3 side of any of the three new faces, replace the appropriate
		// vertex and retry.
		if v3.Cross(v1).Dot(v0.Mul(-1)) < 0 {
			v2 = v3
			continue
		}
		if v2.Cross(v3).Dot(v0.Mul(-1)) < 0 {
			v1 = v3
			continue
		}

		// Portal v1,v2,v3 now contains the ray from v0 through the origin.
		// Refine until the portal is within tolerance of the Minkowski
		// boundary.
		for iter := 0; iter < MPRMaxIterations; iter++ {
			n := v2.Sub(v1).Cross(v3.Sub(v1))
			if n.Norm() < 1e-12 {
				break
			}
			n = n.Normalize()
			if n.Dot(v1) < 0 {
				n = n.Mul(-1)
			}
			dist := n.Dot(v1)
			v4 := minkowskiSupport(a, b, n)
			delta := v4.Dot(n) - dist
			if delta < MPRTolerance {
				depth := n.Dot(v1)
				point := v1.Add(v2).Add(v3).Mul(1.0 / 3.0)
				return true, depthNormal{d: depth, normal: n.Mul(-1)}, point, true
			}
			// Replace whichever of v1,v2,v3 is least aligned with the new
			// support direction to shrink the portal toward the surface.
			c1 := v4.Cross(v1).Dot(v0.Mul(-1))
			c2 := v4.Cross(v2).Dot(v0.Mul(-1))
			if c1 < 0 {
				if c2 < 0 {
					v1 = v4
				} else {
					v3 = v4
				}
			} else {
				c3 := v4.Cross(v3).Dot(v0.Mul(-1))
				if c3 < 0 {
					v2 = v4
				} else {
					v1 = v4
				}
			}
		}
		return false, dn, point, false
	}
	return false, dn, point, false
}
