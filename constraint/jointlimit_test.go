package constraint_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.viam.com/test"

	"go.rigidcore.dev/engine/constraint"
	"go.rigidcore.dev/engine/skeleton"
)

func newSingleRevoluteSkeleton(t *testing.T, v float64) (*skeleton.Skeleton, [][]float64) {
	t.Helper()
	s := skeleton.NewSkeleton("arm")
	joint, err := skeleton.NewRevoluteJoint("hinge", mgl64.Vec3{0, 0, 1}, nil, nil)
	test.That(t, err, test.ShouldBeNil)
	_, err = s.AddBody("link", -1, joint)
	test.That(t, err, test.ShouldBeNil)
	s.Coords[0].V = v
	test.That(t, s.UpdateKinematics(), test.ShouldBeNil)
	minv, err := s.InverseMassMatrix()
	test.That(t, err, test.ShouldBeNil)
	return s, minv
}

func TestJointLimitConstraintRecoversFromLowerViolation(t *testing.T) {
	s, minv := newSingleRevoluteSkeleton(t, -0.05)
	c := &constraint.JointLimitConstraint{Skel: s, Minv: minv, DOF: 0, Sign: 1, Violation: 0.1, Dt: 0.1}

	result := lcpSolve(c)
	test.That(t, result.Converged, test.ShouldBeTrue)

	// limitERP/Dt*Violation = 0.2/0.1*0.1 = 0.2; Sign=1 tracks V directly, so
	// the recovered velocity should land exactly on that bias.
	test.That(t, s.Coords[0].V, test.ShouldAlmostEqual, 0.2, 1e-6)
}

func TestJointLimitConstraintRecoversFromUpperViolation(t *testing.T) {
	s, minv := newSingleRevoluteSkeleton(t, 0.05)
	c := &constraint.JointLimitConstraint{Skel: s, Minv: minv, DOF: 0, Sign: -1, Violation: 0.1, Dt: 0.1}

	result := lcpSolve(c)
	test.That(t, result.Converged, test.ShouldBeTrue)

	// Sign=-1 tracks -V, so the recovered velocity lands on -bias.
	test.That(t, s.Coords[0].V, test.ShouldAlmostEqual, -0.2, 1e-6)
}

func TestJointLimitConstraintLeavesAlreadyRecoveringVelocityUntouched(t *testing.T) {
	s, minv := newSingleRevoluteSkeleton(t, 5.0)
	c := &constraint.JointLimitConstraint{Skel: s, Minv: minv, DOF: 0, Sign: 1, Violation: 0.1, Dt: 0.1}

	result := lcpSolve(c)
	test.That(t, result.Converged, test.ShouldBeTrue)
	test.That(t, s.Coords[0].V, test.ShouldAlmostEqual, 5.0, 1e-9)
}
