package spatialmath_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.rigidcore.dev/engine/spatialmath"
)

func TestSphereSupportPointsAtRadiusAlongDirection(t *testing.T) {
	s := &spatialmath.Sphere{Radius: 2.0}
	p := s.Support(r3.Vector{X: 1})
	test.That(t, p.X, test.ShouldAlmostEqual, 2.0, 1e-9)
	test.That(t, p.Y, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, s.Kind(), test.ShouldEqual, spatialmath.KindSphere)
}

func TestBoxSupportPicksSignedCorner(t *testing.T) {
	b := &spatialmath.Box{HalfSize: r3.Vector{X: 1, Y: 2, Z: 3}}
	p := b.Support(r3.Vector{X: -1, Y: 1, Z: -1})
	test.That(t, p.X, test.ShouldAlmostEqual, -1.0, 1e-9)
	test.That(t, p.Y, test.ShouldAlmostEqual, 2.0, 1e-9)
	test.That(t, p.Z, test.ShouldAlmostEqual, -3.0, 1e-9)
}

func TestCapsuleSupportAddsHemisphereCap(t *testing.T) {
	c := &spatialmath.Capsule{Radius: 0.5, HalfLength: 2.0}
	p := c.Support(r3.Vector{Z: 1})
	test.That(t, p.Z, test.ShouldAlmostEqual, 2.0, 1e-9)

	pNeg := c.Support(r3.Vector{Z: -1})
	test.That(t, pNeg.Z, test.ShouldAlmostEqual, -2.0, 1e-9)
}

func TestCylinderSupportHandlesDegenerateAxialDirection(t *testing.T) {
	c := &spatialmath.Cylinder{Radius: 1.0, HalfLength: 1.5}
	p := c.Support(r3.Vector{Z: 1})
	test.That(t, p.X, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, p.Y, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, p.Z, test.ShouldAlmostEqual, 1.5, 1e-9)

	side := c.Support(r3.Vector{X: 1})
	test.That(t, side.X, test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, side.Z, test.ShouldAlmostEqual, 1.5, 1e-9)
}

func TestConeSupportSwitchesBetweenApexAndBaseRim(t *testing.T) {
	c := &spatialmath.Cone{Radius: 1.0, HalfLength: 1.0}
	apex := c.Support(r3.Vector{Z: 1})
	test.That(t, apex.Z, test.ShouldAlmostEqual, 1.0, 1e-9)

	base := c.Support(r3.Vector{Z: -1})
	test.That(t, base.Z, test.ShouldAlmostEqual, -1.0, 1e-9)
}

func TestConvexMeshSupportScansForMaxDotProduct(t *testing.T) {
	m := spatialmath.NewConvexMesh([]r3.Vector{
		{X: 1, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	})
	p := m.Support(r3.Vector{X: 1})
	test.That(t, p.X, test.ShouldAlmostEqual, 1.0, 1e-9)

	p2 := m.Support(r3.Vector{Y: 1})
	test.That(t, p2.Y, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestConvexMeshCentroidIsVertexAverage(t *testing.T) {
	m := spatialmath.NewConvexMesh([]r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 0, Y: 2, Z: 0},
	})
	c := m.Center()
	test.That(t, c.X, test.ShouldAlmostEqual, 2.0/3.0, 1e-9)
	test.That(t, c.Y, test.ShouldAlmostEqual, 2.0/3.0, 1e-9)
}

func TestConvexMeshSupportOnEmptyMeshReturnsZero(t *testing.T) {
	m := spatialmath.NewConvexMesh(nil)
	p := m.Support(r3.Vector{X: 1})
	test.That(t, p.X, test.ShouldAlmostEqual, 0.0, 1e-12)
}
