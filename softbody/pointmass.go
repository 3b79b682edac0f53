package softbody

import "github.com/golang/geo/r3"

// PointMass is one node of a mass-spring network. InvMass of 0 pins the
// point in place.
type PointMass struct {
	Pos, Vel r3.Vector
	InvMass  float64

	force r3.Vector
}

// Pin fixes the point mass at its current position for the rest of the
// simulation.
func (p *PointMass) Pin() { p.InvMass = 0 }
