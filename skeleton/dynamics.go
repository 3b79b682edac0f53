package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/spatialmath"
)

func dotVec6(a, b [6]float64) float64 {
	var sum float64
	for i := 0; i < 6; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// recursiveNewtonEuler computes the generalized force required to produce
// generalized acceleration qddot given the skeleton's current q, v, and the
// supplied gravity vector, via the classic outward-velocity/inward-wrench
// recursion (spec §4.3). Gravity is folded in via the standard trick of
// giving the root a fictitious acceleration of -gravity rather than adding a
// pseudo-force at every body.
func (s *Skeleton) recursiveNewtonEuler(qddot []float64, gravity r3.Vector) ([]float64, error) {
	for _, b := range s.Bodies {
		j := b.Joint
		var parentV, parentA spatialmath.MotionVector
		if b.IsRoot() {
			parentA = spatialmath.MotionVector{Linear: negVec3(gravity)}
		} else {
			parent := s.Bodies[b.ParentIndex]
			parentV, parentA = parent.V, parent.A
		}
		jointT := FullTransform(j)
		if err := spatialmath.VerifyTransform(jointT, 1e-6); err != nil {
			return nil, err
		}
		adInv := spatialmath.AdInverse(jointT)
		baseV := spatialmath.MotionVectorFromVec6(adInv.MulVec6(parentV.ToVec6()))
		baseA := spatialmath.MotionVectorFromVec6(adInv.MulVec6(parentA.ToVec6()))

		var sv, dsv, sa spatialmath.MotionVector
		for k, s6 := range j.MotionSubspace() {
			g := j.Coords()[k]
			sv = sv.Add(spatialmath.MotionVectorFromVec6(s6).Scale(g.V))
			sa = sa.Add(spatialmath.MotionVectorFromVec6(s6).Scale(qddot[g.Index]))
		}
		dsCols := j.MotionSubspaceDot()
		for k, d6 := range dsCols {
			dsv = dsv.Add(spatialmath.MotionVectorFromVec6(d6).Scale(j.Coords()[k].V))
		}

		vb := baseV.Add(sv)
		adVb := spatialmath.AdBracket(vb)
		ab := baseA.Add(dsv).Add(sa).Add(spatialmath.MotionVectorFromVec6(adVb.MulVec6(sv.ToVec6())))

		b.V = vb
		b.A = ab
	}

	tau := make([]float64, s.NumDOF())
	wrench := make([]spatialmath.ForceVector, len(s.Bodies))
	for idx := len(s.Bodies) - 1; idx >= 0; idx-- {
		b := s.Bodies[idx]
		iv6 := b.Inertia.MulVec6(b.V.ToVec6())
		ia6 := b.Inertia.MulVec6(b.A.ToVec6())
		bias := b.V.CrossForce(spatialmath.ForceVectorFromVec6(iv6))
		f := spatialmath.ForceVectorFromVec6(ia6).Add(bias)
		for _, ci := range b.Children {
			f = f.Add(wrench[ci])
		}
		if !b.IsRoot() {
			childT := FullTransform(b.Joint)
			dAd := spatialmath.DAdMotion(childT)
			wrench[idx] = spatialmath.ForceVectorFromVec6(dAd.MulVec6(f.ToVec6()))
		} else {
			wrench[idx] = f
		}
		for k, s6 := range b.Joint.MotionSubspace() {
			tau[b.Joint.Coords()[k].Index] = f.Dot(spatialmath.MotionVectorFromVec6(s6))
		}
	}
	return tau, nil
}

func negVec3(v r3.Vector) mgl64.Vec3 { return mgl64.Vec3{-v.X, -v.Y, -v.Z} }

// BiasForce returns C(q,v)*v + g(q), per spec §4.3: the generalized force
// obtained by RNEA with qddot=0.
func (s *Skeleton) BiasForce(gravity r3.Vector) ([]float64, error) {
	if s.cachedBias != nil && !s.dirty {
		return s.cachedBias, nil
	}
	zero := make([]float64, s.NumDOF())
	tau, err := s.recursiveNewtonEuler(zero, gravity)
	if err != nil {
		return nil, err
	}
	s.cachedBias = tau
	return tau, nil
}

// MassMatrix computes M via the composite-rigid-body algorithm (spec §4.3):
// composite inertias propagate leaf-to-root, then for each body the
// diagonal block is S^T*Ic*S and off-diagonal blocks are filled by
// propagating the same force up to every ancestor.
func (s *Skeleton) MassMatrix() [][]float64 {
	n := s.NumDOF()
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	if n == 0 {
		return m
	}

	composite := make([]spatialmath.Mat6, len(s.Bodies))
	for i, b := range s.Bodies {
		composite[i] = b.Inertia
	}
	for idx := len(s.Bodies) - 1; idx >= 1; idx-- {
		b := s.Bodies[idx]
		parentT := FullTransform(b.Joint)
		adInv := spatialmath.AdInverse(parentT)
		transformed := adInv.Transpose().Mul(composite[idx]).Mul(adInv)
		composite[b.ParentIndex] = composite[b.ParentIndex].Add(transformed)
	}

	for idx := 0; idx < len(s.Bodies); idx++ {
		b := s.Bodies[idx]
		sCols := b.Joint.MotionSubspace()
		if len(sCols) == 0 {
			continue
		}
		dofs := b.Joint.Coords()
		f := make([][6]float64, len(sCols))
		for k, s6 := range sCols {
			f[k] = composite[idx].MulVec6(s6)
		}
		for k1 := range sCols {
			for k2 := range sCols {
				m[dofs[k1].Index][dofs[k2].Index] = dotVec6(f[k1], sCols[k2])
			}
		}
		j := idx
		for s.Bodies[j].ParentIndex >= 0 {
			parentIdx := s.Bodies[j].ParentIndex
			parentT := FullTransform(s.Bodies[j].Joint)
			dAd := spatialmath.DAdMotion(parentT)
			for k := range f {
				f[k] = dAd.MulVec6(f[k])
			}
			parentS := s.Bodies[parentIdx].Joint.MotionSubspace()
			parentDofs := s.Bodies[parentIdx].Joint.Coords()
			for k1 := range sCols {
				for k2 := range parentS {
					v := dotVec6(f[k1], parentS[k2])
					m[dofs[k1].Index][parentDofs[k2].Index] = v
					m[parentDofs[k2].Index][dofs[k1].Index] = v
				}
			}
			j = parentIdx
		}
	}
	return m
}
