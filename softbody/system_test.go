package softbody_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.rigidcore.dev/engine/softbody"
)

func TestSingleSpringSettlesAtRestLength(t *testing.T) {
	s := softbody.NewPointMassSystem(r3.Vector{})
	anchor := s.AddMass(r3.Vector{}, 0)
	s.Masses[anchor].Pin()
	bob := s.AddMass(r3.Vector{X: 2}, 1)
	s.AddSpring(anchor, bob, 1, 50, 5)

	for i := 0; i < 20000; i++ {
		s.Step(1e-3)
	}

	dist := s.Masses[bob].Pos.Sub(s.Masses[anchor].Pos).Norm()
	test.That(t, dist, test.ShouldAlmostEqual, 1.0, 1e-2)
}

func TestPinnedMassNeverMoves(t *testing.T) {
	s := softbody.NewPointMassSystem(r3.Vector{Y: -9.81})
	anchor := s.AddMass(r3.Vector{X: 1, Y: 2, Z: 3}, 1)
	s.Masses[anchor].Pin()

	for i := 0; i < 1000; i++ {
		s.Step(1e-3)
	}

	test.That(t, s.Masses[anchor].Pos, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
}

func TestChainEnergyDoesNotGrowUnderDamping(t *testing.T) {
	s := softbody.NewPointMassSystem(r3.Vector{})
	prev := s.AddMass(r3.Vector{}, 0)
	s.Masses[prev].Pin()
	for i := 1; i <= 5; i++ {
		next := s.AddMass(r3.Vector{X: float64(i) * 1.5}, 1)
		s.AddSpring(prev, next, 1, 30, 2)
		prev = next
	}

	initial := s.Energy()
	for i := 0; i < 5000; i++ {
		s.Step(1e-3)
	}
	final := s.Energy()

	test.That(t, final, test.ShouldBeLessThanOrEqualTo, initial+1e-3)
}
