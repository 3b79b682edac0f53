package spatialmath_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.rigidcore.dev/engine/spatialmath"
)

func identity6(t *testing.T, m spatialmath.Mat6, tol float64) {
	t.Helper()
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			want := 0.0
			if r == c {
				want = 1.0
			}
			test.That(t, m.At(r, c), test.ShouldAlmostEqual, want, tol)
		}
	}
}

// TestAdMotionInverseIsAdOfInverse pins down the round-trip law
// Ad(T^-1) = Ad(T)^-1 by checking Ad(T)*Ad(T^-1) == I, which avoids needing
// a general 6x6 matrix inverse in the test itself.
func TestAdMotionInverseIsAdOfInverse(t *testing.T) {
	p := spatialmath.NewPose(spatialmath.R4AA{Theta: 0.7, RX: 0.2, RY: -0.5, RZ: 0.9}, r3.Vector{X: 1, Y: -2, Z: 3})

	adT := spatialmath.AdMotion(p)
	adTinv := spatialmath.AdInverse(p)

	identity6(t, adT.Mul(adTinv), 1e-9)
}

func TestAdMotionIsIdentityAtZeroPose(t *testing.T) {
	identity6(t, spatialmath.AdMotion(spatialmath.NewZeroPose()), 1e-12)
}

// TestAdMotionMatchesTwistTransportForPureTranslation checks the adjoint's
// block structure directly: for a pure translation, the angular block is
// untouched and the linear block picks up [p]x times the angular velocity.
func TestAdMotionMatchesTwistTransportForPureTranslation(t *testing.T) {
	p := spatialmath.NewPose(spatialmath.NewZeroOrientation(), r3.Vector{X: 1, Y: 0, Z: 0})
	ad := spatialmath.AdMotion(p)

	v := spatialmath.MotionVector{Angular: mgl64.Vec3{0, 0, 1}, Linear: mgl64.Vec3{0, 0, 0}}
	out := ad.MulVec6(v.ToVec6())

	// Angular part passes through unchanged.
	test.That(t, out[0], test.ShouldAlmostEqual, 0.0, 1e-12)
	test.That(t, out[1], test.ShouldAlmostEqual, 0.0, 1e-12)
	test.That(t, out[2], test.ShouldAlmostEqual, 1.0, 1e-12)
	// Linear part gains [p]x*w = (1,0,0) x (0,0,1) = (0,-1,0).
	test.That(t, out[3], test.ShouldAlmostEqual, 0.0, 1e-12)
	test.That(t, out[4], test.ShouldAlmostEqual, -1.0, 1e-12)
	test.That(t, out[5], test.ShouldAlmostEqual, 0.0, 1e-12)
}

func TestDAdMotionIsAdOfInverseTransposed(t *testing.T) {
	p := spatialmath.NewPose(spatialmath.R4AA{Theta: 1.1, RX: 0, RY: 1, RZ: 0}, r3.Vector{X: 0.5, Y: 0.2, Z: -1})
	dad := spatialmath.DAdMotion(p)
	want := spatialmath.AdInverse(p).Transpose()
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			test.That(t, dad.At(r, c), test.ShouldAlmostEqual, want.At(r, c), 1e-9)
		}
	}
}

func TestAdBracketMatchesCrossMotion(t *testing.T) {
	v := spatialmath.MotionVector{Angular: mgl64.Vec3{1, 2, 3}, Linear: mgl64.Vec3{4, 5, 6}}
	w := spatialmath.MotionVector{Angular: mgl64.Vec3{0.5, -1, 2}, Linear: mgl64.Vec3{1, 0, -2}}

	viaBracket := spatialmath.AdBracket(v).MulVec6(w.ToVec6())
	viaCross := v.CrossMotion(w).ToVec6()

	for i := 0; i < 6; i++ {
		test.That(t, viaBracket[i], test.ShouldAlmostEqual, viaCross[i], 1e-9)
	}
}

func TestSkewMat3ActsAsCrossProduct(t *testing.T) {
	a := mgl64.Vec3{1, 0, 0}
	skew := spatialmath.SkewMat3(a)

	b := r3.Vector{X: 0, Y: 1, Z: 0}
	var out r3.Vector
	out.X = skew[0]*b.X + skew[1]*b.Y + skew[2]*b.Z
	out.Y = skew[3]*b.X + skew[4]*b.Y + skew[5]*b.Z
	out.Z = skew[6]*b.X + skew[7]*b.Y + skew[8]*b.Z

	want := r3.Vector{X: a[0], Y: a[1], Z: a[2]}.Cross(b)
	test.That(t, out.X, test.ShouldAlmostEqual, want.X, 1e-12)
	test.That(t, out.Y, test.ShouldAlmostEqual, want.Y, 1e-12)
	test.That(t, out.Z, test.ShouldAlmostEqual, want.Z, 1e-12)
}
