// Package skeleton implements the body-node tree, its joints, and the
// composite-rigid-body / articulated-body algorithms that compute mass
// matrices, bias forces, and forward dynamics for a forest of articulated
// skeletons, per spec §3-§4.3.
package skeleton

import "math"

// GenCoord is a single scalar degree of freedom, per spec §3. It does not
// enforce qmin <= q <= qmax itself; limit violation is handled by
// joint-limit constraints (constraint package).
type GenCoord struct {
	Name string

	Q, V, A, Tau float64

	QMin, QMax     float64
	VMin, VMax     float64
	TauMin, TauMax float64

	// Index is this coordinate's position in the owning Skeleton's flat
	// registry.
	Index int
}

// NewGenCoord returns a GenCoord with unbounded limits.
func NewGenCoord(name string) *GenCoord {
	return &GenCoord{
		Name:   name,
		QMin:   math.Inf(-1),
		QMax:   math.Inf(1),
		VMin:   math.Inf(-1),
		VMax:   math.Inf(1),
		TauMin: math.Inf(-1),
		TauMax: math.Inf(1),
	}
}

// ClampVelocity restricts V to [VMin, VMax].
func (g *GenCoord) ClampVelocity() {
	if g.V < g.VMin {
		g.V = g.VMin
	} else if g.V > g.VMax {
		g.V = g.VMax
	}
}

// ClampForce restricts Tau to [TauMin, TauMax].
func (g *GenCoord) ClampForce() {
	if g.Tau < g.TauMin {
		g.Tau = g.TauMin
	} else if g.Tau > g.TauMax {
		g.Tau = g.TauMax
	}
}

// WithinLimits reports whether Q is inside [QMin, QMax].
func (g *GenCoord) WithinLimits() bool {
	return g.Q >= g.QMin && g.Q <= g.QMax
}
