package skeleton

import (
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/spatialmath"
)

// solveSmall solves A*x = b for a small (n<=6) dense system via Gaussian
// elimination with partial pivoting. Used for the per-joint D = S^T*IA*S
// solve in the articulated-body algorithm, where n is the joint's DOF count
// (0 to 6), never the full skeleton's DOF count.
func solveSmall(a [][]float64, b []float64) []float64 {
	n := len(b)
	if n == 0 {
		return nil
	}
	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = append(append([]float64{}, a[i]...), b[i])
	}
	for col := 0; col < n; col++ {
		pivot := col
		best := aug[col][col]
		if best < 0 {
			best = -best
		}
		for r := col + 1; r < n; r++ {
			v := aug[r][col]
			if v < 0 {
				v = -v
			}
			if v > best {
				pivot, best = r, v
			}
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		piv := aug[col][col]
		if piv == 0 {
			piv = 1e-12
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col] / piv
			for c := col; c <= n; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = aug[i][n] / aug[i][i]
	}
	return x
}

type abaBodyState struct {
	ia spatialmath.Mat6
	pa spatialmath.ForceVector
}

// articulatedBodyForwardDynamics implements Featherstone's articulated-body
// algorithm (spec §4.3): an outward pass computing per-body velocity and
// bias acceleration, an inward pass accumulating articulated inertia and
// bias force (projecting out each joint's own DOF before passing to the
// parent), and a final outward pass solving joint accelerations. When
// zeroVelocity is true, every body's velocity and velocity-product bias
// term is forced to zero -- used to probe columns of M^-1 (spec §4.3's
// "unit acceleration probe"), isolating the pure inertial response.
func (s *Skeleton) articulatedBodyForwardDynamics(tau []float64, gravity r3.Vector, zeroVelocity bool) ([]float64, error) {
	n := len(s.Bodies)
	c := make([]spatialmath.MotionVector, n)
	xup := make([]spatialmath.Mat6, n) // Ad(J.T^-1): parent frame -> this body's frame

	for idx, b := range s.Bodies {
		j := b.Joint
		jointT := FullTransform(j)
		if err := spatialmath.VerifyTransform(jointT, 1e-6); err != nil {
			return nil, err
		}
		adInv := spatialmath.AdInverse(jointT)
		xup[idx] = adInv

		var parentV spatialmath.MotionVector
		if !b.IsRoot() && !zeroVelocity {
			parentV = s.Bodies[b.ParentIndex].V
		}
		baseV := spatialmath.MotionVectorFromVec6(adInv.MulVec6(parentV.ToVec6()))

		var sv, dsv spatialmath.MotionVector
		sCols := j.MotionSubspace()
		dsCols := j.MotionSubspaceDot()
		for k := range sCols {
			vk := j.Coords()[k].V
			if zeroVelocity {
				vk = 0
			}
			sv = sv.Add(spatialmath.MotionVectorFromVec6(sCols[k]).Scale(vk))
			dsv = dsv.Add(spatialmath.MotionVectorFromVec6(dsCols[k]).Scale(vk))
		}
		vb := baseV.Add(sv)
		if zeroVelocity {
			vb = spatialmath.MotionVector{}
		}
		b.V = vb

		adVb := spatialmath.AdBracket(vb)
		c[idx] = dsv.Add(spatialmath.MotionVectorFromVec6(adVb.MulVec6(sv.ToVec6())))
	}

	states := make([]abaBodyState, n)
	uMat := make([][][6]float64, n) // U_b = IA_b * S_b, one column per DOF
	uProj := make([][]float64, n)   // u_b = tau_b - S_b^T*pA_b

	for idx := n - 1; idx >= 0; idx-- {
		b := s.Bodies[idx]
		iv6 := b.Inertia.MulVec6(b.V.ToVec6())
		bias := b.V.CrossForce(spatialmath.ForceVectorFromVec6(iv6))
		ia := b.Inertia
		pa := bias
		if !zeroVelocity {
			pa = bias.Add(b.Fext.Scale(-1))
		}

		for _, ci := range b.Children {
			cs := states[ci]
			adInv := xup[ci]
			ia = ia.Add(adInv.Transpose().Mul(cs.ia).Mul(adInv))
			pa = pa.Add(spatialmath.ForceVectorFromVec6(adInv.Transpose().MulVec6(cs.pa.ToVec6())))
		}
		if !zeroVelocity {
			b.IA, b.Pi = ia, pa
		}

		sCols := b.Joint.MotionSubspace()
		nd := len(sCols)
		u := make([][6]float64, nd)
		dMat := make([][]float64, nd)
		uProjLocal := make([]float64, nd)
		for k := 0; k < nd; k++ {
			u[k] = ia.MulVec6(sCols[k])
		}
		for k1 := 0; k1 < nd; k1++ {
			dMat[k1] = make([]float64, nd)
			for k2 := 0; k2 < nd; k2++ {
				dMat[k1][k2] = dotVec6(u[k1], sCols[k2])
			}
			tauK := b.Joint.Coords()[k1].Tau
			if tau != nil {
				tauK = tau[b.Joint.Coords()[k1].Index]
			}
			uProjLocal[k1] = tauK - spatialmath.ForceVectorFromVec6(pa.ToVec6()).Dot(spatialmath.MotionVectorFromVec6(sCols[k1]))
		}
		uMat[idx] = u
		uProj[idx] = uProjLocal

		if nd > 0 {
			winv := solveSmall(dMat, uProjLocal)
			// Project out this joint's DOF before passing inertia/bias to the
			// parent: IA' = IA - U*D^-1*U^T, pA' = pA + IA*c + U*D^-1*u.
			var uDinvUT spatialmath.Mat6
			for k1 := 0; k1 < nd; k1++ {
				dRow := solveSmall(dMat, unitVec(nd, k1))
				for k2 := 0; k2 < nd; k2++ {
					for r := 0; r < 6; r++ {
						for cc := 0; cc < 6; cc++ {
							uDinvUT[r*6+cc] += u[k1][r] * dRow[k2] * u[k2][cc]
						}
					}
				}
			}
			ia = ia.Add(scaleMat6(uDinvUT, -1))
			icAtC := ia.MulVec6(c[idx].ToVec6())
			var extra [6]float64
			for k := 0; k < nd; k++ {
				for r := 0; r < 6; r++ {
					extra[r] += u[k][r] * winv[k]
				}
			}
			pa = pa.Add(spatialmath.ForceVectorFromVec6(icAtC)).Add(spatialmath.ForceVectorFromVec6(extra))
		} else {
			icAtC := ia.MulVec6(c[idx].ToVec6())
			pa = pa.Add(spatialmath.ForceVectorFromVec6(icAtC))
		}
		states[idx] = abaBodyState{ia: ia, pa: pa}
	}

	qddot := make([]float64, s.NumDOF())
	a := make([]spatialmath.MotionVector, n)
	for idx, b := range s.Bodies {
		var parentA spatialmath.MotionVector
		if b.IsRoot() {
			parentA = spatialmath.MotionVector{Linear: negVec3(gravity)}
		} else {
			parentA = a[b.ParentIndex]
		}
		baseA := spatialmath.MotionVectorFromVec6(xup[idx].MulVec6(parentA.ToVec6()))
		ab := baseA.Add(c[idx])

		sCols := b.Joint.MotionSubspace()
		nd := len(sCols)
		if nd > 0 {
			u := uMat[idx]
			dMat := make([][]float64, nd)
			for k1 := 0; k1 < nd; k1++ {
				dMat[k1] = make([]float64, nd)
				for k2 := 0; k2 < nd; k2++ {
					dMat[k1][k2] = dotVec6(u[k1], sCols[k2])
				}
			}
			rhs := make([]float64, nd)
			for k := 0; k < nd; k++ {
				rhs[k] = uProj[idx][k] - dotVec6(u[k], ab.ToVec6())
			}
			qdd := solveSmall(dMat, rhs)
			for k, g := range b.Joint.Coords() {
				qddot[g.Index] = qdd[k]
				g.A = qdd[k]
				ab = ab.Add(spatialmath.MotionVectorFromVec6(sCols[k]).Scale(qdd[k]))
			}
		}
		a[idx] = ab
		b.A = ab
	}
	return qddot, nil
}

func unitVec(n, i int) []float64 {
	v := make([]float64, n)
	v[i] = 1
	return v
}

func scaleMat6(m spatialmath.Mat6, s float64) spatialmath.Mat6 {
	var out spatialmath.Mat6
	for i := range m {
		out[i] = m[i] * s
	}
	return out
}

// InverseMassMatrix computes M^-1 column by column via the articulated-body
// algorithm with zero velocity, gravity and external force (spec §4.3's "unit
// acceleration probe"): column j is the qddot response to tau=e_j, which by
// definition equals M^-1's j-th column. The velocities and accelerations the
// probe overwrites are restored before returning.
func (s *Skeleton) InverseMassMatrix() ([][]float64, error) {
	n := s.NumDOF()
	minv := make([][]float64, n)
	for i := range minv {
		minv[i] = make([]float64, n)
	}
	savedV := make([]float64, n)
	savedA := make([]float64, n)
	for i, g := range s.Coords {
		savedV[i], savedA[i] = g.V, g.A
	}
	savedBodyV := make([]spatialmath.MotionVector, len(s.Bodies))
	savedBodyA := make([]spatialmath.MotionVector, len(s.Bodies))
	for i, b := range s.Bodies {
		savedBodyV[i], savedBodyA[i] = b.V, b.A
	}
	for j := 0; j < n; j++ {
		tau := make([]float64, n)
		tau[j] = 1
		col, err := s.articulatedBodyForwardDynamics(tau, r3.Vector{}, true)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			minv[i][j] = col[i]
		}
	}
	for i, g := range s.Coords {
		g.V, g.A = savedV[i], savedA[i]
	}
	for i, b := range s.Bodies {
		b.V, b.A = savedBodyV[i], savedBodyA[i]
	}
	return minv, nil
}

// ForwardDynamicsFeatherstone solves for the generalized acceleration given
// the current q, v, actuator torques, and external forces, via the full
// articulated-body algorithm (spec §4.3). It also refreshes every body's V
// and A and every GenCoord's A as a side effect.
func (s *Skeleton) ForwardDynamicsFeatherstone(tau []float64, gravity r3.Vector) ([]float64, error) {
	return s.articulatedBodyForwardDynamics(tau, gravity, false)
}

// ForwardDynamicsID solves a = M^-1*(tau - (Cv+g) + Fext + Fd) via the
// mass-matrix/bias-force route (spec §4.3's "ID-based" formula), independent
// of ForwardDynamicsFeatherstone. The two must agree to 1e-9 relative
// tolerance for a correct implementation (exercised by dynamics_test.go).
func (s *Skeleton) ForwardDynamicsID(tau []float64, fd []float64, gravity r3.Vector) ([]float64, error) {
	bias, err := s.BiasForce(gravity)
	if err != nil {
		return nil, err
	}
	fext := s.GeneralizedExternalForce()
	n := s.NumDOF()
	rhs := make([]float64, n)
	for i := 0; i < n; i++ {
		rhs[i] = tau[i] - bias[i] + fext[i] + fd[i]
	}
	minv, err := s.InverseMassMatrix()
	if err != nil {
		return nil, err
	}
	a := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for k := 0; k < n; k++ {
			sum += minv[i][k] * rhs[k]
		}
		a[i] = sum
	}
	for i, g := range s.Coords {
		g.A = a[i]
	}
	return a, nil
}
