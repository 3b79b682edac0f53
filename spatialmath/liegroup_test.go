package spatialmath_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.viam.com/test"

	"go.rigidcore.dev/engine/spatialmath"
)

func TestExpLogMapSO3RoundTrip(t *testing.T) {
	cases := []mgl64.Vec3{
		{0, 0, 0},
		{0.1, 0, 0},
		{0, 0.2, 0.3},
		{0.5, -0.4, 0.2},
		{1e-8, 1e-9, 0},
	}
	for _, w := range cases {
		r := spatialmath.ExpMapSO3(w)
		back := spatialmath.LogMapSO3(r)
		test.That(t, back[0], test.ShouldAlmostEqual, w[0], 1e-6)
		test.That(t, back[1], test.ShouldAlmostEqual, w[1], 1e-6)
		test.That(t, back[2], test.ShouldAlmostEqual, w[2], 1e-6)
	}
}

func TestExpMapSO3IsOrthonormal(t *testing.T) {
	r := spatialmath.ExpMapSO3(mgl64.Vec3{0.3, -0.7, 1.1})
	det := r.Determinant()
	test.That(t, math.Abs(det-1), test.ShouldBeLessThan, 1e-9)

	rt := r.Transpose()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var dot float64
			for k := 0; k < 3; k++ {
				dot += rt[i*3+k] * r[k*3+j]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			test.That(t, math.Abs(dot-want), test.ShouldBeLessThan, 1e-9)
		}
	}
}

func TestExpLogMapSE3RoundTrip(t *testing.T) {
	v := spatialmath.MotionVector{
		Angular: mgl64.Vec3{0.2, 0.1, -0.3},
		Linear:  mgl64.Vec3{1, 2, 3},
	}
	p := spatialmath.ExpMapSE3(v)
	back := spatialmath.LogMapSE3(p)
	for i := 0; i < 3; i++ {
		test.That(t, back.Angular[i], test.ShouldAlmostEqual, v.Angular[i], 1e-6)
		test.That(t, back.Linear[i], test.ShouldAlmostEqual, v.Linear[i], 1e-6)
	}
}
