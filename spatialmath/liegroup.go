package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// ExpMapSO3 maps a rotation vector (axis*angle, in R3) to its rotation
// matrix via Rodrigues' formula. Used by the Ball joint to integrate its
// internal orientation (R <- R * ExpMapSO3(v*dt)).
func ExpMapSO3(w mgl64.Vec3) RotationMatrix {
	theta := w.Len()
	if theta < 1e-12 {
		// First-order Taylor expansion: R ~= I + [w]x.
		s := SkewMat3(w)
		return RotationMatrix{1 + s[0], s[1], s[2], s[3], 1 + s[4], s[5], s[6], s[7], 1 + s[8]}
	}
	axis := w.Mul(1 / theta)
	s := SkewMat3(axis)
	sinT, cosT := math.Sin(theta), math.Cos(theta)
	// Rodrigues: R = I + sin(theta)[k]x + (1-cos(theta))[k]x^2
	var s2 [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += s[r*3+k] * s[k*3+c]
			}
			s2[r*3+c] = sum
		}
	}
	var out RotationMatrix
	for i := 0; i < 9; i++ {
		ident := 0.0
		if i%4 == 0 {
			ident = 1
		}
		out[i] = ident + sinT*s[i] + (1-cosT)*s2[i]
	}
	return out
}

// LogMapSO3 maps a rotation matrix back to its rotation vector (axis*angle).
// Uses the principal branch of the angle (in [0, pi]); when trace is very
// close to 3 (near-identity rotation) it falls back to a first-order
// extraction directly from the skew part to avoid dividing by sin(theta)~0,
// per spec §4.1.
func LogMapSO3(r RotationMatrix) mgl64.Vec3 {
	tr := r[0] + r[4] + r[8]
	cosTheta := Clamp((tr-1)/2, -1, 1)
	theta := math.Acos(cosTheta)

	if math.Abs(tr-3) < 1e-9 {
		// Near-identity: R ~= I + [w]x, so w = vee(R - R^T)/2.
		return mgl64.Vec3{(r[7] - r[5]) / 2, (r[2] - r[6]) / 2, (r[3] - r[1]) / 2}
	}

	if math.Abs(theta-math.Pi) < 1e-6 {
		// Near the antipodal singularity sin(theta)~0: extract the axis from
		// the diagonal of (R + I)/2 instead of dividing by sin(theta).
		axis := mgl64.Vec3{
			math.Sqrt(math.Max(0, (r[0]+1)/2)),
			math.Sqrt(math.Max(0, (r[4]+1)/2)),
			math.Sqrt(math.Max(0, (r[8]+1)/2)),
		}
		// Recover signs from the off-diagonal terms.
		if r[1]+r[3] < 0 {
			axis[1] *= -1
		}
		if r[2]+r[6] < 0 {
			axis[2] *= -1
		}
		return axis.Mul(theta)
	}

	sinTheta := math.Sin(theta)
	axis := mgl64.Vec3{r[7] - r[5], r[2] - r[6], r[3] - r[1]}.Mul(1 / (2 * sinTheta))
	return axis.Mul(theta)
}

// ExpMapSE3 maps a spatial twist (angular, linear) scaled by dt into a rigid
// transform, used by Free joint integration (T <- T * ExpMapSE3(v*dt)).
func ExpMapSE3(v MotionVector) *Pose {
	rm := ExpMapSO3(v.Angular)
	theta := v.Angular.Len()
	var jac RotationMatrix
	if theta < 1e-12 {
		jac = RotationMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
	} else {
		axis := v.Angular.Mul(1 / theta)
		s := SkewMat3(axis)
		var s2 [9]float64
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				var sum float64
				for k := 0; k < 3; k++ {
					sum += s[r*3+k] * s[k*3+c]
				}
				s2[r*3+c] = sum
			}
		}
		a := (1 - math.Cos(theta)) / theta
		b := (theta - math.Sin(theta)) / theta
		for i := 0; i < 9; i++ {
			ident := 0.0
			if i%4 == 0 {
				ident = 1
			}
			jac[i] = ident + a*s[i] + b*s2[i]
		}
	}
	tx, ty, tz := jac.MulVec(v.Linear[0], v.Linear[1], v.Linear[2])
	return NewPose(rm, r3.Vector{X: tx, Y: ty, Z: tz})
}

// LogMapSE3 is the inverse of ExpMapSE3: given a rigid transform, returns
// the spatial twist (angular, linear) that would produce it under ExpMapSE3.
func LogMapSE3(p *Pose) MotionVector {
	rm := p.Orientation().RotationMatrix()
	w := LogMapSO3(rm)
	theta := w.Len()
	pt := p.Point()

	var jacInv RotationMatrix
	if theta < 1e-12 {
		jacInv = RotationMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
	} else {
		axis := w.Mul(1 / theta)
		s := SkewMat3(axis)
		var s2 [9]float64
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				var sum float64
				for k := 0; k < 3; k++ {
					sum += s[r*3+k] * s[k*3+c]
				}
				s2[r*3+c] = sum
			}
		}
		halfCot := 0.5 * theta * math.Cos(theta/2) / math.Sin(theta/2)
		coef := 1 - halfCot
		for i := 0; i < 9; i++ {
			ident := 0.0
			if i%4 == 0 {
				ident = 1
			}
			jacInv[i] = ident - 0.5*theta*s[i] + coef*s2[i]
		}
	}
	lx, ly, lz := jacInv.MulVec(pt.X, pt.Y, pt.Z)
	return MotionVector{Angular: w, Linear: mgl64.Vec3{lx, ly, lz}}
}
