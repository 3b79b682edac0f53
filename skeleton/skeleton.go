package skeleton

import (
	"github.com/pkg/errors"

	"go.rigidcore.dev/engine/spatialmath"
)

// Skeleton owns a flat vector of body nodes (in parent-before-child
// assembly order, so a BFS/DFS traversal is just a linear scan) and the
// concatenation of every body's joint GenCoords, per spec §3. The bias-force
// vector is cached behind a dirty flag that MarkDirty sets (AddBody,
// SetVelocities, Integrate and the constraints' impulse application call
// it); external forces do not enter it. The mass matrix and its inverse are
// recomputed on every call.
type Skeleton struct {
	Name   string
	Bodies []*BodyNode
	Coords []*GenCoord

	// UnionRoot and UnionSize back the union-find grouping of skeletons that
	// share active contacts (spec §3, §4.5); the constraint layer manages
	// these fields directly.
	UnionRoot int
	UnionSize int

	dirty      bool
	cachedMass *massCache
	cachedBias []float64
}

type massCache struct {
	m    [][]float64
	minv [][]float64
}

// NewSkeleton returns an empty skeleton ready for AddBody calls.
func NewSkeleton(name string) *Skeleton {
	return &Skeleton{Name: name, UnionRoot: -1, UnionSize: 1}
}

// AddBody appends a new body node whose joint connects it to the body at
// parentIndex (-1 for a root body). Bodies must be added in parent-before-
// child order; the skeleton never reorders its flat slice (spec §9).
func (s *Skeleton) AddBody(name string, parentIndex int, j Joint) (*BodyNode, error) {
	if parentIndex >= len(s.Bodies) {
		return nil, &spatialmath.ConfigError{Msg: "AddBody: parentIndex out of range, bodies must be added parent-first"}
	}
	index := len(s.Bodies)
	for _, g := range j.Coords() {
		g.Index = len(s.Coords)
		s.Coords = append(s.Coords, g)
	}
	b := NewBodyNode(name, index, parentIndex, j)
	s.Bodies = append(s.Bodies, b)
	if parentIndex >= 0 {
		parent := s.Bodies[parentIndex]
		parent.Children = append(parent.Children, index)
	}
	s.MarkDirty()
	return b, nil
}

// NumDOF returns the total number of generalized coordinates.
func (s *Skeleton) NumDOF() int { return len(s.Coords) }

// MarkDirty invalidates the cached mass matrix, inverse mass matrix, and
// bias force, per spec §9's dirty-flag cache design note. Called
// automatically by AddBody; callers that mutate q/v directly outside of
// IntegrateConfigs/SetVelocities must call it themselves.
func (s *Skeleton) MarkDirty() {
	s.dirty = true
	s.cachedMass = nil
	s.cachedBias = nil
}

// Positions returns the flattened q vector in GenCoord.Index order.
func (s *Skeleton) Positions() []float64 {
	out := make([]float64, len(s.Coords))
	for i, g := range s.Coords {
		out[i] = g.Q
	}
	return out
}

// Velocities returns the flattened v vector.
func (s *Skeleton) Velocities() []float64 {
	out := make([]float64, len(s.Coords))
	for i, g := range s.Coords {
		out[i] = g.V
	}
	return out
}

// SetVelocities overwrites v for every GenCoord and invalidates the caches.
func (s *Skeleton) SetVelocities(v []float64) {
	for i, g := range s.Coords {
		g.V = v[i]
	}
	s.MarkDirty()
}

// RefreshVelocities recomputes every body's cached spatial velocity from the
// current generalized velocities via each body's Jacobian, without a full
// UpdateKinematics pass. Jac only depends on configuration, so it stays
// valid across a sequence of velocity-only mutations within a single step;
// constraint solvers call this after committing an impulse to a GenCoord so
// that other constraints sharing a body see the update immediately rather
// than through a stale BodyNode.V snapshot.
func (s *Skeleton) RefreshVelocities() {
	v := s.Velocities()
	for _, b := range s.Bodies {
		var sum [6]float64
		for k, jk := range b.Jac {
			gv := v[k]
			if gv == 0 {
				continue
			}
			for i := 0; i < 6; i++ {
				sum[i] += jk[i] * gv
			}
		}
		b.V = spatialmath.MotionVectorFromVec6(sum)
	}
}

// TauVector returns the flattened actuator generalized force.
func (s *Skeleton) TauVector() []float64 {
	out := make([]float64, len(s.Coords))
	for i, g := range s.Coords {
		out[i] = g.Tau
	}
	return out
}

// ClearExternalForces resets every body's external wrench accumulator, per
// spec §6's "cleared at end-of-step automatically".
func (s *Skeleton) ClearExternalForces() {
	for _, b := range s.Bodies {
		b.ClearExternalForce()
	}
}

// SpringDamperForce returns the per-DOF spring+damping generalized force
// F_d, per spec §4.2.
func (s *Skeleton) SpringDamperForce(dt float64) []float64 {
	out := make([]float64, s.NumDOF())
	for _, b := range s.Bodies {
		j := b.Joint
		k, d, q0 := j.SpringStiffness(), j.Damping(), j.RestPosition()
		for idx, g := range j.Coords() {
			out[g.Index] = SpringDampingForce(g, k[idx], d[idx], q0[idx], dt)
		}
	}
	return out
}

// GeneralizedExternalForce projects every body's accumulated external
// wrench onto the generalized coordinates by propagating wrenches up the
// tree through each joint's motion subspace, tip to base.
func (s *Skeleton) GeneralizedExternalForce() []float64 {
	tau := make([]float64, s.NumDOF())
	wrench := make([]spatialmath.ForceVector, len(s.Bodies))
	for idx := len(s.Bodies) - 1; idx >= 0; idx-- {
		b := s.Bodies[idx]
		f := b.Fext
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
	return tau
}

// UpdateKinematics runs the forward-kinematics pass (spec §4.3): refreshes
// every joint's cached transform/Jacobian/Jacobian-derivative, then the
// world pose and body-frame spatial velocity of every body, in
// parent-before-child order.
func (s *Skeleton) UpdateKinematics() error {
	n := s.NumDOF()
	for _, b := range s.Bodies {
		j := b.Joint
		j.UpdateTransform()
		j.UpdateJacobian()
		j.UpdateJacobianTimeDeriv()

		jointT := FullTransform(j)
		if err := spatialmath.VerifyTransform(jointT, 1e-6); err != nil {
			return errors.Wrapf(err, "body %q", b.Name)
		}

		var parentV spatialmath.MotionVector
		if b.IsRoot() {
			b.World = jointT
		} else {
			parent := s.Bodies[b.ParentIndex]
			b.World = parent.World.Compose(jointT)
			parentV = parent.V
		}
		adInv := spatialmath.AdInverse(jointT)
		base := spatialmath.MotionVectorFromVec6(adInv.MulVec6(parentV.ToVec6()))

		var sv spatialmath.MotionVector
		for k, s6 := range j.MotionSubspace() {
			sv = sv.Add(spatialmath.MotionVectorFromVec6(s6).Scale(j.Coords()[k].V))
		}
		b.V = base.Add(sv)

		jac := make([][6]float64, n)
		if !b.IsRoot() {
			parentJac := s.Bodies[b.ParentIndex].Jac
			for k := 0; k < n; k++ {
				jac[k] = spatialmath.MotionVectorFromVec6(adInv.MulVec6(parentJac[k])).ToVec6()
			}
		}
		for k, s6 := range j.MotionSubspace() {
			jac[j.Coords()[k].Index] = s6
		}
		b.Jac = jac
	}
	return nil
}

// Integrate advances velocities with semi-implicit Euler using the
// generalized acceleration a (GenCoord.A must already hold the result of a
// forward-dynamics solve), then lets each joint integrate its own q via
// IntegrateConfigs, per spec §4.3.
func (s *Skeleton) Integrate(dt float64) {
	for _, g := range s.Coords {
		g.V += g.A * dt
		g.ClampVelocity()
	}
	for _, b := range s.Bodies {
		b.Joint.IntegrateConfigs(dt)
	}
	s.MarkDirty()
}
