package spatialmath_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.rigidcore.dev/engine/spatialmath"
)

func TestPoseComposeThenInverseIsIdentity(t *testing.T) {
	a := spatialmath.NewPose(spatialmath.R4AA{Theta: 0.4, RX: 0, RY: 0, RZ: 1}, r3.Vector{X: 1, Y: 2, Z: 3})
	b := spatialmath.NewPose(spatialmath.R4AA{Theta: -0.7, RX: 1, RY: 0, RZ: 0}, r3.Vector{X: -1, Y: 0.5, Z: 2})

	composed := a.Compose(b)
	roundTrip := composed.Compose(composed.Inverse())

	test.That(t, spatialmath.PoseAlmostEqual(roundTrip, spatialmath.NewZeroPose(), 1e-9), test.ShouldBeTrue)
}

func TestPoseTransformMatchesComposeAtOrigin(t *testing.T) {
	p := spatialmath.NewPose(spatialmath.R4AA{Theta: 1.2, RX: 0, RY: 1, RZ: 0}, r3.Vector{X: 5, Y: -2, Z: 1})
	point := r3.Vector{X: 0.3, Y: 0.4, Z: 0.5}

	got := p.Transform(point)
	// Transforming the local point is equivalent to composing p with a pose
	// placed at that local point and reading off the resulting translation.
	local := spatialmath.NewPose(spatialmath.NewZeroOrientation(), point)
	want := p.Compose(local).Point()

	test.That(t, got.X, test.ShouldAlmostEqual, want.X, 1e-9)
	test.That(t, got.Y, test.ShouldAlmostEqual, want.Y, 1e-9)
	test.That(t, got.Z, test.ShouldAlmostEqual, want.Z, 1e-9)
}

func TestPoseInverseUndoesTransform(t *testing.T) {
	p := spatialmath.NewPose(spatialmath.R4AA{Theta: 0.9, RX: 0.2, RY: 0.4, RZ: 0.8}, r3.Vector{X: 2, Y: -1, Z: 4})
	point := r3.Vector{X: 1, Y: 1, Z: 1}

	world := p.Transform(point)
	back := p.Inverse().Transform(world)

	test.That(t, back.X, test.ShouldAlmostEqual, point.X, 1e-9)
	test.That(t, back.Y, test.ShouldAlmostEqual, point.Y, 1e-9)
	test.That(t, back.Z, test.ShouldAlmostEqual, point.Z, 1e-9)
}

func TestZeroPoseIsIdentityTransform(t *testing.T) {
	p := spatialmath.NewZeroPose()
	point := r3.Vector{X: 3, Y: -4, Z: 5}
	got := p.Transform(point)
	test.That(t, got.X, test.ShouldAlmostEqual, point.X, 1e-12)
	test.That(t, got.Y, test.ShouldAlmostEqual, point.Y, 1e-12)
	test.That(t, got.Z, test.ShouldAlmostEqual, point.Z, 1e-12)
}

func TestVerifyTransformAcceptsIdentity(t *testing.T) {
	err := spatialmath.VerifyTransform(spatialmath.NewZeroPose(), 1e-9)
	test.That(t, err, test.ShouldBeNil)
}

func TestVerifyTransformAcceptsProperRotation(t *testing.T) {
	p := spatialmath.NewPose(spatialmath.R4AA{Theta: 2.1, RX: 0.3, RY: -0.5, RZ: 0.8}, r3.Vector{X: 1, Y: 2, Z: 3})
	err := spatialmath.VerifyTransform(p, 1e-9)
	test.That(t, err, test.ShouldBeNil)
}

func TestVerifyTransformRejectsNonRigidMatrix(t *testing.T) {
	m := spatialmath.NewZeroPose().Matrix()
	m[0] = 2 // scale the X column, breaking orthonormality.
	p := spatialmath.NewPoseFromMatrix(m)
	err := spatialmath.VerifyTransform(p, 1e-9)
	test.That(t, err, test.ShouldNotBeNil)
}
