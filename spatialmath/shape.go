package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Shape is implemented by every collision primitive the engine's narrow
// phase can dispatch on. Support and Center are the two operations MPR and
// GJK-style queries need; every primitive provides both in its own local
// frame and the caller (collision.Dispatcher) is responsible for placing
// them in world space via the owning body's Pose, per spec §4.4.
type Shape interface {
	// Support returns the point of the shape farthest in the given
	// direction, expressed in the shape's local frame.
	Support(dir r3.Vector) r3.Vector
	// Center returns the shape's centroid in its local frame.
	Center() r3.Vector
	// Kind identifies the primitive for dispatch-table lookups.
	Kind() ShapeKind
}

// ShapeKind enumerates the primitive kinds the collision dispatch table
// keys on.
type ShapeKind int

const (
	KindSphere ShapeKind = iota
	KindBox
	KindCapsule
	KindCylinder
	KindCone
	KindConvex
)

func (k ShapeKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	case KindCapsule:
		return "capsule"
	case KindCylinder:
		return "cylinder"
	case KindCone:
		return "cone"
	case KindConvex:
		return "convex"
	default:
		return "unknown"
	}
}

// Sphere is a solid ball of the given radius centered at the origin of its
// local frame.
type Sphere struct {
	Radius float64
}

func (s *Sphere) Kind() ShapeKind    { return KindSphere }
func (s *Sphere) Center() r3.Vector { return r3.Vector{} }
func (s *Sphere) Support(dir r3.Vector) r3.Vector {
	n := dir.Norm()
	if n < 1e-12 {
		return r3.Vector{X: s.Radius}
	}
	return dir.Mul(s.Radius / n)
}

// Box is an axis-aligned (in its own local frame) rectangular solid with
// half-extents HalfSize.
type Box struct {
	HalfSize r3.Vector
}

func (b *Box) Kind() ShapeKind    { return KindBox }
func (b *Box) Center() r3.Vector { return r3.Vector{} }

// Support returns the signed corner matching dir, per spec §4.4: each axis
// of the returned corner takes the sign of the corresponding component of
// dir (ties broken toward positive, which does not affect the support
// value).
func (b *Box) Support(dir r3.Vector) r3.Vector {
	sign := func(v float64) float64 {
		if v < 0 {
			return -1
		}
		return 1
	}
	return r3.Vector{
		X: sign(dir.X) * b.HalfSize.X,
		Y: sign(dir.Y) * b.HalfSize.Y,
		Z: sign(dir.Z) * b.HalfSize.Z,
	}
}

// Capsule is a cylinder of Radius capped with hemispheres, with its segment
// running along the local Z axis from -HalfLength to +HalfLength.
type Capsule struct {
	Radius    float64
	HalfLength float64
}

func (c *Capsule) Kind() ShapeKind    { return KindCapsule }
func (c *Capsule) Center() r3.Vector { return r3.Vector{} }
func (c *Capsule) Support(dir r3.Vector) r3.Vector {
	segZ := c.HalfLength
	if dir.Z < 0 {
		segZ = -c.HalfLength
	}
	n := dir.Norm()
	if n < 1e-12 {
		return r3.Vector{Z: segZ}
	}
	surf := dir.Mul(c.Radius / n)
	return r3.Vector{X: surf.X, Y: surf.Y, Z: surf.Z + segZ}
}

// Cylinder has its axis along local Z, running from -HalfLength to
// +HalfLength, with circular cross-section of the given Radius.
type Cylinder struct {
	Radius     float64
	HalfLength float64
}

func (c *Cylinder) Kind() ShapeKind    { return KindCylinder }
func (c *Cylinder) Center() r3.Vector { return r3.Vector{} }

// Support handles the degenerate case ||dir_xy|| ~= 0 by returning the axis
// tip, per spec §4.4.
func (c *Cylinder) Support(dir r3.Vector) r3.Vector {
	xyNorm := math.Hypot(dir.X, dir.Y)
	segZ := c.HalfLength
	if dir.Z < 0 {
		segZ = -c.HalfLength
	}
	if xyNorm < 1e-9 {
		return r3.Vector{Z: segZ}
	}
	scale := c.Radius / xyNorm
	return r3.Vector{X: dir.X * scale, Y: dir.Y * scale, Z: segZ}
}

// Cone has its apex at +HalfLength along local Z and its circular base of
// the given Radius at -HalfLength.
type Cone struct {
	Radius     float64
	HalfLength float64
}

func (c *Cone) Kind() ShapeKind    { return KindCone }
func (c *Cone) Center() r3.Vector { return r3.Vector{} }

// Support compares dir.Z against len*sin(halfAngle), per spec §4.4, where
// sin(alpha) = r / sqrt(r^2 + 4h^2) and h is HalfLength (the apex sits at
// +HalfLength and the base at -HalfLength, so HalfLength is the cone's
// half-height). If dir points more toward the apex than the base rim does
// in direction dir, the apex is the support point; otherwise a point on the
// base rim is.
func (c *Cone) Support(dir r3.Vector) r3.Vector {
	h := c.HalfLength
	sinAlpha := c.Radius / math.Sqrt(c.Radius*c.Radius+4*h*h)
	dirLen := dir.Norm()
	if dirLen < 1e-12 {
		return r3.Vector{Z: c.HalfLength}
	}
	if dir.Z > dirLen*sinAlpha {
		return r3.Vector{Z: c.HalfLength}
	}
	xyNorm := math.Hypot(dir.X, dir.Y)
	if xyNorm < 1e-9 {
		return r3.Vector{Z: -c.HalfLength}
	}
	scale := c.Radius / xyNorm
	return r3.Vector{X: dir.X * scale, Y: dir.Y * scale, Z: -c.HalfLength}
}

// ConvexMesh is an arbitrary convex hull given as a vertex cloud in its
// local frame.
type ConvexMesh struct {
	Vertices []r3.Vector
	centroid r3.Vector
}

// NewConvexMesh builds a ConvexMesh and precomputes its centroid.
func NewConvexMesh(vertices []r3.Vector) *ConvexMesh {
	var sum r3.Vector
	for _, v := range vertices {
		sum = sum.Add(v)
	}
	n := float64(len(vertices))
	centroid := r3.Vector{}
	if n > 0 {
		centroid = sum.Mul(1 / n)
	}
	return &ConvexMesh{Vertices: vertices, centroid: centroid}
}

func (m *ConvexMesh) Kind() ShapeKind    { return KindConvex }
func (m *ConvexMesh) Center() r3.Vector { return m.centroid }

// Support scans all vertices for the maximum dot product with dir. Callers
// with vertex-adjacency information are free to replace this with hill
// climbing, per spec §4.4; this is the always-correct baseline.
func (m *ConvexMesh) Support(dir r3.Vector) r3.Vector {
	best := 0
	bestDot := math.Inf(-1)
	for i, v := range m.Vertices {
		d := v.Dot(dir)
		if d > bestDot {
			bestDot = d
			best = i
		}
	}
	if len(m.Vertices) == 0 {
		return r3.Vector{}
	}
	return m.Vertices[best]
}
