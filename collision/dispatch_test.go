package collision_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.rigidcore.dev/engine/collision"
	"go.rigidcore.dev/engine/skeleton"
	"go.rigidcore.dev/engine/spatialmath"
)

func sphereBody(name string, index, parent int, center r3.Vector, radius float64) *skeleton.BodyNode {
	b := skeleton.NewBodyNode(name, index, parent, nil)
	b.World = spatialmath.NewPose(spatialmath.NewZeroOrientation(), center)
	b.Shapes = []spatialmath.PlacedShape{{Shape: &spatialmath.Sphere{Radius: radius}, Pose: spatialmath.NewZeroPose()}}
	return b
}

func TestDispatcherFindsOverlappingSpherePair(t *testing.T) {
	d := collision.NewDispatcher()
	a := sphereBody("a", 0, -1, r3.Vector{}, 1.0)
	b := sphereBody("b", 1, -1, r3.Vector{X: 1.5}, 1.0)

	contacts, err := d.Contacts([]*skeleton.BodyNode{a, b})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, contacts, test.ShouldHaveLength, 1)

	c := contacts[0]
	// Depth = ra+rb-dist = 1+1-1.5 = 0.5.
	test.That(t, c.Depth, test.ShouldAlmostEqual, 0.5, 1e-9)
	// The normal points from Body2 (b, at +x) toward Body1 (a).
	test.That(t, c.Normal.X, test.ShouldAlmostEqual, -1.0, 1e-9)
	test.That(t, c.Normal.Y, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, c.Body1, test.ShouldEqual, a)
	test.That(t, c.Body2, test.ShouldEqual, b)
}

func TestDispatcherReportsNoContactWhenSeparated(t *testing.T) {
	d := collision.NewDispatcher()
	a := sphereBody("a", 0, -1, r3.Vector{}, 1.0)
	b := sphereBody("b", 1, -1, r3.Vector{X: 5}, 1.0)

	contacts, err := d.Contacts([]*skeleton.BodyNode{a, b})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, contacts, test.ShouldBeEmpty)
}

func TestDispatcherSkipsAdjacentBodiesByDefault(t *testing.T) {
	d := collision.NewDispatcher()
	test.That(t, d.SkipAdjacent, test.ShouldBeTrue)

	// b is a's joint child (ParentIndex points at a's Index) and the two
	// spheres overlap; the adjacency skip should suppress the contact.
	a := sphereBody("a", 0, -1, r3.Vector{}, 1.0)
	b := sphereBody("b", 1, 0, r3.Vector{X: 0.5}, 1.0)

	contacts, err := d.Contacts([]*skeleton.BodyNode{a, b})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, contacts, test.ShouldBeEmpty)
}

func TestDispatcherReportsAdjacentBodiesWhenDisabled(t *testing.T) {
	d := &collision.Dispatcher{SkipAdjacent: false}
	a := sphereBody("a", 0, -1, r3.Vector{}, 1.0)
	b := sphereBody("b", 1, 0, r3.Vector{X: 0.5}, 1.0)

	contacts, err := d.Contacts([]*skeleton.BodyNode{a, b})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, contacts, test.ShouldHaveLength, 1)
}

func TestDispatcherHandlesBoxBoxViaSAT(t *testing.T) {
	d := collision.NewDispatcher()
	boxBody := func(name string, index int, center r3.Vector) *skeleton.BodyNode {
		b := skeleton.NewBodyNode(name, index, -1, nil)
		b.World = spatialmath.NewPose(spatialmath.NewZeroOrientation(), center)
		b.Shapes = []spatialmath.PlacedShape{{
			Shape: &spatialmath.Box{HalfSize: r3.Vector{X: 1, Y: 1, Z: 1}},
			Pose:  spatialmath.NewZeroPose(),
		}}
		return b
	}
	a := boxBody("a", 0, r3.Vector{})
	b := boxBody("b", 1, r3.Vector{X: 1.5})

	contacts, err := d.Contacts([]*skeleton.BodyNode{a, b})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, contacts, test.ShouldHaveLength, 1)
	test.That(t, contacts[0].Depth, test.ShouldAlmostEqual, 0.5, 1e-9)
}

func TestDispatcherFallsBackToMPRForMixedShapes(t *testing.T) {
	d := collision.NewDispatcher()
	a := sphereBody("a", 0, -1, r3.Vector{}, 1.0)
	boxB := skeleton.NewBodyNode("b", 1, -1, nil)
	boxB.World = spatialmath.NewPose(spatialmath.NewZeroOrientation(), r3.Vector{X: 1.5})
	boxB.Shapes = []spatialmath.PlacedShape{{
		Shape: &spatialmath.Box{HalfSize: r3.Vector{X: 1, Y: 1, Z: 1}},
		Pose:  spatialmath.NewZeroPose(),
	}}

	contacts, err := d.Contacts([]*skeleton.BodyNode{a, boxB})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, contacts, test.ShouldHaveLength, 1)
	test.That(t, contacts[0].Depth, test.ShouldBeGreaterThan, 0.0)
}

func TestDispatcherSkipsBodiesWithNoShapes(t *testing.T) {
	d := collision.NewDispatcher()
	a := skeleton.NewBodyNode("a", 0, -1, nil)
	b := skeleton.NewBodyNode("b", 1, -1, nil)

	contacts, err := d.Contacts([]*skeleton.BodyNode{a, b})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, contacts, test.ShouldBeEmpty)
}
