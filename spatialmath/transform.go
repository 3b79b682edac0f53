package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Pose is a rigid transform in SE(3): an orthonormal rotation plus a
// translation. Internally it is stored as a homogeneous 4x4 matrix, the way
// the teacher's kinmath.Transform does, so composition and inversion are
// plain matrix operations.
type Pose struct {
	mat mgl64.Mat4
}

// NewPose builds a Pose from an orientation and a translation point.
func NewPose(o Orientation, point r3.Vector) *Pose {
	rm := o.RotationMatrix()
	m := mgl64.Mat4{
		rm[0], rm[3], rm[6], 0,
		rm[1], rm[4], rm[7], 0,
		rm[2], rm[5], rm[8], 0,
		point.X, point.Y, point.Z, 1,
	}
	return &Pose{mat: m}
}

// NewPoseFromMatrix wraps a caller-provided homogeneous matrix directly.
// The caller is responsible for it being a valid rigid transform.
func NewPoseFromMatrix(m mgl64.Mat4) *Pose {
	return &Pose{mat: m}
}

// NewZeroPose returns the identity transform.
func NewZeroPose() *Pose {
	return &Pose{mat: mgl64.Ident4()}
}

// Point returns the translation component.
func (p *Pose) Point() r3.Vector {
	return r3.Vector{X: p.mat[12], Y: p.mat[13], Z: p.mat[14]}
}

// Orientation returns the rotation component as a RotationMatrix.
func (p *Pose) Orientation() Orientation {
	return RotationMatrix{
		p.mat[0], p.mat[4], p.mat[8],
		p.mat[1], p.mat[5], p.mat[9],
		p.mat[2], p.mat[6], p.mat[10],
	}
}

// Matrix returns the underlying homogeneous transform.
func (p *Pose) Matrix() mgl64.Mat4 {
	return p.mat
}

// Compose returns p * other, i.e. other expressed in p's parent frame.
func (p *Pose) Compose(other *Pose) *Pose {
	return &Pose{mat: p.mat.Mul4(other.mat)}
}

// Inverse returns the inverse rigid transform, computed in closed form
// (transpose of R, -R^T*t) rather than a generic 4x4 inverse.
func (p *Pose) Inverse() *Pose {
	r := p.Orientation().RotationMatrix().Transpose()
	px, py, pz := p.mat[12], p.mat[13], p.mat[14]
	tx, ty, tz := r.MulVec(px, py, pz)
	return NewPose(r, r3.Vector{X: -tx, Y: -ty, Z: -tz})
}

// Transform applies the pose to a point given in the local frame, returning
// its coordinates in the parent frame.
func (p *Pose) Transform(point r3.Vector) r3.Vector {
	rm := p.Orientation().RotationMatrix()
	x, y, z := rm.MulVec(point.X, point.Y, point.Z)
	pt := p.Point()
	return r3.Vector{X: x + pt.X, Y: y + pt.Y, Z: z + pt.Z}
}

// PoseAlmostEqual reports whether two poses are approximately equal in both
// translation and rotation.
func PoseAlmostEqual(a, b *Pose, tol float64) bool {
	pa, pb := a.Point(), b.Point()
	dt := pa.Sub(pb).Norm()
	return dt <= tol && OrientationAlmostEqual(a.Orientation(), b.Orientation(), tol)
}

// VerifyTransform asserts that m is a valid rigid transform: the linear part
// is orthonormal (determinant within tol of +1) and every entry is finite.
// It mirrors the engine's boundary-invariant check (spec §4.1 / §7): a
// config or numerical error is the only acceptable way for this to fail.
func VerifyTransform(p *Pose, tol float64) error {
	for i := 0; i < 16; i++ {
		if math.IsNaN(p.mat[i]) || math.IsInf(p.mat[i], 0) {
			return &NumericalError{Field: fmt.Sprintf("transform[%d]", i)}
		}
	}
	rm := p.Orientation().RotationMatrix()
	det := rm.Determinant()
	if math.Abs(det-1) > tol {
		return &ConfigError{Msg: fmt.Sprintf("transform rotation is not a proper rotation: det=%.9f", det)}
	}
	// Orthogonality: R^T R should be identity.
	rt := rm.Transpose()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var dot float64
			for k := 0; k < 3; k++ {
				dot += rt[i*3+k] * rm[k*3+j]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(dot-want) > tol {
				return &ConfigError{Msg: "transform rotation is not orthonormal"}
			}
		}
	}
	return nil
}
