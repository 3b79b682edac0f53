package softbody

import "github.com/golang/geo/r3"

// PointMassSystem is an explicit mass-spring network, uncoupled from the
// skeleton/constraint/lcp rigid-body pipeline: it never reads a BodyNode and
// never contributes rows to the LCP solve.
type PointMassSystem struct {
	Masses  []*PointMass
	Springs []Spring
	Gravity r3.Vector
}

// NewPointMassSystem returns an empty network with the given gravity.
func NewPointMassSystem(gravity r3.Vector) *PointMassSystem {
	return &PointMassSystem{Gravity: gravity}
}

// AddMass appends a point mass and returns its index.
func (s *PointMassSystem) AddMass(pos r3.Vector, mass float64) int {
	invMass := 0.0
	if mass > 0 {
		invMass = 1 / mass
	}
	s.Masses = append(s.Masses, &PointMass{Pos: pos, InvMass: invMass})
	return len(s.Masses) - 1
}

// AddSpring connects masses i and j with the given rest length, stiffness,
// and damping.
func (s *PointMassSystem) AddSpring(i, j int, restLength, stiffness, damping float64) {
	s.Springs = append(s.Springs, Spring{I: i, J: j, RestLength: restLength, Stiffness: stiffness, Damping: damping})
}

// Step advances the network by dt using symplectic Euler: forces are
// accumulated from gravity and every spring, velocities are updated first,
// then positions are advanced with the updated velocity.
func (s *PointMassSystem) Step(dt float64) {
	for _, m := range s.Masses {
		if m.InvMass == 0 {
			m.force = r3.Vector{}
			continue
		}
		m.force = s.Gravity.Mul(1 / m.InvMass)
	}

	for _, sp := range s.Springs {
		a, b := s.Masses[sp.I], s.Masses[sp.J]
		delta := b.Pos.Sub(a.Pos)
		dist := delta.Norm()
		if dist == 0 {
			continue
		}
		n := delta.Mul(1 / dist)

		stretchForce := (dist - sp.RestLength) * sp.Stiffness
		relVel := b.Vel.Sub(a.Vel).Dot(n)
		dampForce := relVel * sp.Damping
		f := n.Mul(stretchForce + dampForce)

		a.force = a.force.Add(f)
		b.force = b.force.Sub(f)
	}

	for _, m := range s.Masses {
		if m.InvMass == 0 {
			continue
		}
		m.Vel = m.Vel.Add(m.force.Mul(m.InvMass * dt))
		m.Pos = m.Pos.Add(m.Vel.Mul(dt))
	}
}

// Energy returns the network's total kinetic plus spring potential energy,
// for energy-drift checks.
func (s *PointMassSystem) Energy() float64 {
	e := 0.0
	for _, m := range s.Masses {
		if m.InvMass == 0 {
			continue
		}
		mass := 1 / m.InvMass
		e += 0.5 * mass * m.Vel.Dot(m.Vel)
	}
	for _, sp := range s.Springs {
		a, b := s.Masses[sp.I], s.Masses[sp.J]
		stretch := b.Pos.Sub(a.Pos).Norm() - sp.RestLength
		e += 0.5 * sp.Stiffness * stretch * stretch
	}
	return e
}
