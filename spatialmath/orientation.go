package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Orientation is implemented by every parameterization of a 3D rotation the
// engine uses. Joints are free to build orientations however is convenient
// for their DOF count (Euler angles, axis-angle, raw quaternion) and every
// other component consumes them uniformly through Quaternion() and
// RotationMatrix().
type Orientation interface {
	Quaternion() quat.Number
	AxisAngle() R4AA
	EulerAngles() EulerAngles
	RotationMatrix() RotationMatrix
}

// NewZeroOrientation returns an orientation representing no rotation.
func NewZeroOrientation() Orientation {
	return Quaternion{Real: 1}
}

// Quaternion is the canonical Orientation representation; every other
// representation is defined in terms of a conversion to/from it.
type Quaternion quat.Number

// Quaternion returns the receiver as a gonum quat.Number.
func (q Quaternion) Quaternion() quat.Number { return quat.Number(q) }

// AxisAngle converts the quaternion to an R4 axis-angle, using the same
// branch convention as the Eigen C++ library: denom<1e-6 collapses to the
// +X axis with the signed angle preserved.
func (q Quaternion) AxisAngle() R4AA {
	qn := quat.Number(q)
	denom := math.Sqrt(qn.Imag*qn.Imag + qn.Jmag*qn.Jmag + qn.Kmag*qn.Kmag)
	angle := 2 * math.Atan2(denom, math.Abs(qn.Real))
	if qn.Real < 0 {
		angle *= -1
	}
	if denom < 1e-6 {
		return R4AA{Theta: angle, RX: 1, RY: 0, RZ: 0}
	}
	return R4AA{Theta: angle, RX: qn.Imag / denom, RY: qn.Jmag / denom, RZ: qn.Kmag / denom}
}

// EulerAngles converts to intrinsic Z-Y-X (yaw-pitch-roll) Euler angles.
func (q Quaternion) EulerAngles() EulerAngles {
	qn := quat.Number(q)
	w, x, y, z := qn.Real, qn.Imag, qn.Jmag, qn.Kmag

	sinrCosp := 2 * (w*x + y*z)
	cosrCosp := 1 - 2*(x*x+y*y)
	roll := math.Atan2(sinrCosp, cosrCosp)

	sinp := 2 * (w*y - z*x)
	var pitch float64
	if math.Abs(sinp) >= 1 {
		pitch = math.Copysign(math.Pi/2, sinp)
	} else {
		pitch = math.Asin(sinp)
	}

	sinyCosp := 2 * (w*z + x*y)
	cosyCosp := 1 - 2*(y*y+z*z)
	yaw := math.Atan2(sinyCosp, cosyCosp)

	return EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}
}

// RotationMatrix converts to a 3x3 orthonormal rotation matrix.
func (q Quaternion) RotationMatrix() RotationMatrix {
	qn := quat.Number(q)
	n := math.Sqrt(qn.Real*qn.Real + qn.Imag*qn.Imag + qn.Jmag*qn.Jmag + qn.Kmag*qn.Kmag)
	if n < 1e-12 {
		return RotationMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
	}
	w, x, y, z := qn.Real/n, qn.Imag/n, qn.Jmag/n, qn.Kmag/n
	return RotationMatrix{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	}
}

// R4AA is an axis-angle orientation: rotate by Theta radians about the unit
// axis (RX, RY, RZ).
type R4AA struct {
	Theta, RX, RY, RZ float64
}

// NewR4AA returns the identity axis-angle (zero rotation about +Z).
func NewR4AA() R4AA { return R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1} }

// Quaternion converts the axis-angle to a unit quaternion.
func (r R4AA) Quaternion() quat.Number {
	norm := math.Sqrt(r.RX*r.RX + r.RY*r.RY + r.RZ*r.RZ)
	if norm < 1e-12 {
		return quat.Number{Real: 1}
	}
	ax, ay, az := r.RX/norm, r.RY/norm, r.RZ/norm
	s := math.Sin(r.Theta / 2)
	return quat.Number{Real: math.Cos(r.Theta / 2), Imag: ax * s, Jmag: ay * s, Kmag: az * s}
}

func (r R4AA) AxisAngle() R4AA               { return r }
func (r R4AA) EulerAngles() EulerAngles      { return Quaternion(r.Quaternion()).EulerAngles() }
func (r R4AA) RotationMatrix() RotationMatrix { return Quaternion(r.Quaternion()).RotationMatrix() }

// EulerAngles is an intrinsic Z-Y-X (yaw, pitch, roll) Euler angle triple.
// Roll is applied first, then pitch, then yaw, matching the common robotics
// convention and DART's default EulerJoint axis order.
type EulerAngles struct {
	Roll, Pitch, Yaw float64
}

func (e EulerAngles) Quaternion() quat.Number {
	cr, sr := math.Cos(e.Roll/2), math.Sin(e.Roll/2)
	cp, sp := math.Cos(e.Pitch/2), math.Sin(e.Pitch/2)
	cy, sy := math.Cos(e.Yaw/2), math.Sin(e.Yaw/2)
	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}
func (e EulerAngles) AxisAngle() R4AA               { return Quaternion(e.Quaternion()).AxisAngle() }
func (e EulerAngles) EulerAngles() EulerAngles      { return e }
func (e EulerAngles) RotationMatrix() RotationMatrix { return Quaternion(e.Quaternion()).RotationMatrix() }

// RotationMatrix is a row-major 3x3 orthonormal rotation matrix.
type RotationMatrix [9]float64

func (m RotationMatrix) Quaternion() quat.Number {
	tr := m[0] + m[4] + m[8]
	switch {
	case tr > 0:
		s := 0.5 / math.Sqrt(tr+1)
		return quat.Number{
			Real: 0.25 / s,
			Imag: (m[7] - m[5]) * s,
			Jmag: (m[2] - m[6]) * s,
			Kmag: (m[3] - m[1]) * s,
		}
	case m[0] > m[4] && m[0] > m[8]:
		s := 2 * math.Sqrt(1+m[0]-m[4]-m[8])
		return quat.Number{Real: (m[7] - m[5]) / s, Imag: 0.25 * s, Jmag: (m[1] + m[3]) / s, Kmag: (m[2] + m[6]) / s}
	case m[4] > m[8]:
		s := 2 * math.Sqrt(1+m[4]-m[0]-m[8])
		return quat.Number{Real: (m[2] - m[6]) / s, Imag: (m[1] + m[3]) / s, Jmag: 0.25 * s, Kmag: (m[5] + m[7]) / s}
	default:
		s := 2 * math.Sqrt(1+m[8]-m[0]-m[4])
		return quat.Number{Real: (m[3] - m[1]) / s, Imag: (m[2] + m[6]) / s, Jmag: (m[5] + m[7]) / s, Kmag: 0.25 * s}
	}
}
func (m RotationMatrix) AxisAngle() R4AA          { return Quaternion(m.Quaternion()).AxisAngle() }
func (m RotationMatrix) EulerAngles() EulerAngles { return Quaternion(m.Quaternion()).EulerAngles() }
func (m RotationMatrix) RotationMatrix() RotationMatrix { return m }

// Determinant returns the determinant of the rotation matrix; used by
// verifyTransform to detect reflection or degenerate rotations.
func (m RotationMatrix) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) - m[1]*(m[3]*m[8]-m[5]*m[6]) + m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Transpose returns the transpose (= inverse, for an orthonormal matrix).
func (m RotationMatrix) Transpose() RotationMatrix {
	return RotationMatrix{m[0], m[3], m[6], m[1], m[4], m[7], m[2], m[5], m[8]}
}

// MulVec applies the rotation to a vector given as (x, y, z).
func (m RotationMatrix) MulVec(x, y, z float64) (float64, float64, float64) {
	return m[0]*x + m[1]*y + m[2]*z,
		m[3]*x + m[4]*y + m[5]*z,
		m[6]*x + m[7]*y + m[8]*z
}

// OrientationAlmostEqual reports whether two orientations represent
// approximately the same rotation, accounting for quaternion double-cover
// (q and -q are the same rotation).
func OrientationAlmostEqual(a, b Orientation, tol float64) bool {
	qa, qb := a.Quaternion(), b.Quaternion()
	d1 := Square(qa.Real-qb.Real) + Square(qa.Imag-qb.Imag) + Square(qa.Jmag-qb.Jmag) + Square(qa.Kmag-qb.Kmag)
	d2 := Square(qa.Real+qb.Real) + Square(qa.Imag+qb.Imag) + Square(qa.Jmag+qb.Jmag) + Square(qa.Kmag+qb.Kmag)
	return math.Min(d1, d2) <= tol*tol
}
