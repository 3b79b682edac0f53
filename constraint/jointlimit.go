package constraint

import (
	"go.rigidcore.dev/engine/skeleton"
)

// Joint-limit stabilization parameters, per spec §4.5.
const (
	limitERP    = 0.2
	limitMaxERV = 10.0
)

// JointLimitConstraint is a 1-row unilateral constraint active when a single
// generalized coordinate has crossed its [qmin, qmax] range, pushing it back
// toward the boundary, per spec §4.5.
type JointLimitConstraint struct {
	Skel *skeleton.Skeleton
	Minv [][]float64
	DOF  int

	// Sign maps the coordinate's own velocity onto the constraint's recovery
	// direction: CurrentVelocity reports Sign*V, so a positive-only impulse
	// always pushes V toward recovery. +1 for a lower-limit violation (V
	// should rise), -1 for an upper-limit violation (V should fall).
	Sign      float64
	Violation float64
	Dt        float64

	dv []float64
}

func (c *JointLimitConstraint) Dim() int { return 1 }

func (c *JointLimitConstraint) GetInformation(info *Info) {
	erv := limitERP / c.Dt * c.Violation
	if erv > limitMaxERV {
		erv = limitMaxERV
	}
	info.B[0] = erv
	info.Lo[0] = 0
	info.Hi[0] = unboundedImpulse
	info.Findex[0] = -1
	info.X[0] = 0
	info.W[0] = 0
}

func (c *JointLimitConstraint) CurrentVelocity(out []float64) {
	out[0] = c.Sign * c.Skel.Coords[c.DOF].V
}

func (c *JointLimitConstraint) ApplyUnitImpulse(int) {
	tau := make([]float64, len(c.Skel.Coords))
	tau[c.DOF] = c.Sign
	c.dv = matVec(c.Minv, tau)
}

func (c *JointLimitConstraint) GetVelocityChange(out []float64, withCFM bool) {
	out[0] = c.Sign * c.dv[c.DOF]
	if withCFM {
		out[0] += contactCFM
	}
}

func (c *JointLimitConstraint) ApplyImpulse(x []float64) {
	if x[0] == 0 {
		return
	}
	tau := make([]float64, len(c.Skel.Coords))
	tau[c.DOF] = c.Sign * x[0]
	dv := matVec(c.Minv, tau)
	for k, g := range c.Skel.Coords {
		g.V += dv[k]
	}
	c.Skel.MarkDirty()
	c.Skel.RefreshVelocities()
}
