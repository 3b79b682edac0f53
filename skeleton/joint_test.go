package skeleton_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.rigidcore.dev/engine/skeleton"
)

func TestRevoluteJointRotatesAboutItsAxis(t *testing.T) {
	j, err := skeleton.NewRevoluteJoint("hinge", mgl64.Vec3{0, 0, 1}, nil, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, j.NumDOF(), test.ShouldEqual, 1)

	j.Coords()[0].Q = math.Pi / 2
	j.UpdateTransform()
	p := j.Transform().Transform(r3.Vector{X: 1})
	test.That(t, p.X, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, p.Y, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestRevoluteJointRejectsDegenerateAxis(t *testing.T) {
	_, err := skeleton.NewRevoluteJoint("bad", mgl64.Vec3{0, 0, 0}, nil, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPrismaticJointTranslatesAlongAxis(t *testing.T) {
	j, err := skeleton.NewPrismaticJoint("slide", mgl64.Vec3{1, 0, 0}, nil, nil)
	test.That(t, err, test.ShouldBeNil)

	j.Coords()[0].Q = 2.5
	j.UpdateTransform()
	p := j.Transform().Point()
	test.That(t, p.X, test.ShouldAlmostEqual, 2.5, 1e-9)
	test.That(t, p.Y, test.ShouldAlmostEqual, 0.0, 1e-9)
}

func TestPrismaticJointIntegratesConfigs(t *testing.T) {
	j, err := skeleton.NewPrismaticJoint("slide", mgl64.Vec3{0, 1, 0}, nil, nil)
	test.That(t, err, test.ShouldBeNil)
	j.Coords()[0].V = 3.0
	j.IntegrateConfigs(0.1)
	test.That(t, j.Coords()[0].Q, test.ShouldAlmostEqual, 0.3, 1e-12)
}

// TestPlanarJointExactIntegration pins down the spec's reference scenario:
// a planar joint with axes (1,0,0),(0,1,0) and rotation axis (0,0,1),
// starting at q=(1,2,3), v=(4,5,6), integrated one step of dt=1e-3, lands
// exactly on (1.004, 2.005, 3.006) since the joint's configs integrate as
// plain per-DOF Euler with no manifold coupling.
func TestPlanarJointExactIntegration(t *testing.T) {
	j, err := skeleton.NewPlanarJoint("plane", skeleton.PlaneXY, mgl64.Vec3{}, mgl64.Vec3{}, nil, nil)
	test.That(t, err, test.ShouldBeNil)

	qs := []float64{1, 2, 3}
	vs := []float64{4, 5, 6}
	for i, g := range j.Coords() {
		g.Q, g.V = qs[i], vs[i]
	}
	j.IntegrateConfigs(1e-3)

	want := []float64{1.004, 2.005, 3.006}
	for i, g := range j.Coords() {
		test.That(t, g.Q, test.ShouldAlmostEqual, want[i], 1e-12)
	}
}

func TestPlanarJointArbitraryRejectsNonOrthogonalAxes(t *testing.T) {
	_, err := skeleton.NewPlanarJoint("plane", skeleton.PlaneArbitrary, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 1, 0}, nil, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestTranslationalJointIntegratesAllThreeAxesIndependently(t *testing.T) {
	j, err := skeleton.NewTranslationalJoint("t3", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}, nil, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, j.NumDOF(), test.ShouldEqual, 3)

	for i, g := range j.Coords() {
		g.V = float64(i + 1)
	}
	j.IntegrateConfigs(2.0)
	for i, g := range j.Coords() {
		test.That(t, g.Q, test.ShouldAlmostEqual, float64(i+1)*2.0, 1e-12)
	}
}

func TestUniversalJointRejectsParallelAxes(t *testing.T) {
	_, err := skeleton.NewUniversalJoint("u", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 0}, nil, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestUniversalJointComposesTwoRotations(t *testing.T) {
	j, err := skeleton.NewUniversalJoint("u", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, nil, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, j.NumDOF(), test.ShouldEqual, 2)

	// With both angles zero the transform is identity.
	rm := j.Transform().Orientation().RotationMatrix()
	test.That(t, math.Abs(rm.Determinant()-1), test.ShouldBeLessThan, 1e-9)

	// T = Rz(pi/2)*Rx(pi/2): Rx takes +Z to -Y, then Rz takes -Y to +X.
	j.Coords()[0].Q = math.Pi / 2
	j.Coords()[1].Q = math.Pi / 2
	j.UpdateTransform()
	x, _, z := j.Transform().Orientation().RotationMatrix().MulVec(0, 0, 1)
	test.That(t, x, test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, z, test.ShouldAlmostEqual, 0.0, 1e-9)
}

func TestScrewJointCouplesRotationAndTranslation(t *testing.T) {
	j, err := skeleton.NewScrewJoint("screw", mgl64.Vec3{0, 0, 1}, 0.5, nil, nil)
	test.That(t, err, test.ShouldBeNil)

	j.Coords()[0].Q = 2.0
	j.UpdateTransform()
	p := j.Transform().Point()
	// Translation along the axis is pitch*q = 0.5*2.0 = 1.0.
	test.That(t, p.Z, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestEulerJointIdentityAtZeroAngles(t *testing.T) {
	j := skeleton.NewEulerJoint("euler", nil, nil)
	test.That(t, j.NumDOF(), test.ShouldEqual, 3)
	j.UpdateTransform()
	rm := j.Transform().Orientation().RotationMatrix()
	test.That(t, math.Abs(rm.Determinant()-1), test.ShouldBeLessThan, 1e-9)
	for i := 0; i < 9; i++ {
		want := 0.0
		if i%4 == 0 {
			want = 1.0
		}
		test.That(t, rm[i], test.ShouldAlmostEqual, want, 1e-12)
	}
}

func TestEulerJointIntegratesAllThreeAngles(t *testing.T) {
	j := skeleton.NewEulerJoint("euler", nil, nil)
	for _, g := range j.Coords() {
		g.V = 1.0
	}
	j.IntegrateConfigs(0.1)
	for _, g := range j.Coords() {
		test.That(t, g.Q, test.ShouldAlmostEqual, 0.1, 1e-12)
	}
}

func TestBallJointIntegratesOnSO3AndMirrorsQ(t *testing.T) {
	j := skeleton.NewBallJoint("ball", nil, nil)
	test.That(t, j.NumDOF(), test.ShouldEqual, 3)

	j.Coords()[2].V = 1.0 // spin about local Z
	j.IntegrateConfigs(0.5)
	j.UpdateTransform()

	rm := j.Transform().Orientation().RotationMatrix()
	test.That(t, math.Abs(rm.Determinant()-1), test.ShouldBeLessThan, 1e-9)
	// Q mirrors LogMapSO3(R), which for a pure Z-axis spin of 0.5 rad should
	// land back on (0, 0, 0.5).
	test.That(t, j.Coords()[0].Q, test.ShouldAlmostEqual, 0.0, 1e-6)
	test.That(t, j.Coords()[1].Q, test.ShouldAlmostEqual, 0.0, 1e-6)
	test.That(t, j.Coords()[2].Q, test.ShouldAlmostEqual, 0.5, 1e-6)
}

func TestFixedJointHasNoDOFAndNeverMoves(t *testing.T) {
	j := skeleton.NewFixedJoint("weld", nil, nil)
	test.That(t, j.NumDOF(), test.ShouldEqual, 0)
	test.That(t, j.MotionSubspace(), test.ShouldBeEmpty)
	test.That(t, j.Coords(), test.ShouldBeEmpty)

	j.IntegrateConfigs(1.0) // no-op, must not panic on zero coords.
	test.That(t, j.Transform().Point().X, test.ShouldAlmostEqual, 0.0, 1e-12)
}

func TestFreeJointDOFOrderIsAngularThenLinear(t *testing.T) {
	j := skeleton.NewFreeJoint("free", nil, nil)
	test.That(t, j.NumDOF(), test.ShouldEqual, 6)

	for i, g := range j.Coords() {
		g.V = float64(i + 1)
	}
	j.IntegrateConfigs(1.0)
	// Linear DOFs are indices 3-5; with angular velocity present they are
	// coupled to the rotation, so only a nonzero update is checked here.
	test.That(t, j.Coords()[3].Q, test.ShouldNotEqual, 0.0)

	// With no angular velocity, DOF 3 alone translates along X.
	k := skeleton.NewFreeJoint("free2", nil, nil)
	k.Coords()[3].V = 2.0
	k.IntegrateConfigs(1.0)
	test.That(t, k.Transform().Point().X, test.ShouldAlmostEqual, 2.0, 1e-9)
}
