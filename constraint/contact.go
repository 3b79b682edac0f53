package constraint

import (
	"math"

	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/skeleton"
	"go.rigidcore.dev/engine/spatialmath"
)

// Default contact parameters, per spec §4.5.
const (
	contactAllowance     = 0.0
	contactERP           = 0.01
	contactMaxERV        = 10.0
	contactCFM           = 1e-5
	restitutionThreshold = 1e-3
	frictionThreshold    = 1e-3
	bounceVelThreshold   = 0.1
	maxBounceVel         = 100.0
	unboundedImpulse     = math.MaxFloat64
)

// ContactConstraint has one unilateral row along the contact normal and two
// friction rows in the tangent plane, coupled to the normal row's impulse via
// Findex, per spec §4.5; in frictionless mode only the normal row is kept
// (see Dim).
type ContactConstraint struct {
	Body1, Body2 *skeleton.BodyNode
	Skel1, Skel2 *skeleton.Skeleton
	Minv1, Minv2 [][]float64

	Point       r3.Vector
	Normal      r3.Vector // points from Body2 toward Body1
	Depth       float64
	Mu          float64
	Restitution float64
	Dt          float64

	dim  int
	dirs [3]r3.Vector
	w1   [3]spatialmath.ForceVector
	w2   [3]spatialmath.ForceVector

	lastRow  int
	dv1, dv2 []float64
}

// NewContactConstraint builds a contact constraint and its tangent-plane
// friction basis from a single preferred friction direction hint (e.g. a
// relative sliding velocity), per spec §4.5's tangent-basis construction.
func NewContactConstraint(
	b1, b2 *skeleton.BodyNode, s1, s2 *skeleton.Skeleton,
	minv1, minv2 [][]float64,
	point, normal r3.Vector, depth, mu, restitution, dt float64,
	firstFrictionDir r3.Vector,
) *ContactConstraint {
	n := normal.Normalize()

	t1 := firstFrictionDir.Cross(n)
	if t1.Norm() < 1e-9 {
		t1 = (r3.Vector{X: 1}).Cross(n)
	}
	if t1.Norm() < 1e-9 {
		t1 = (r3.Vector{Y: 1}).Cross(n)
	}
	t1 = t1.Normalize()
	t2 := n.Cross(t1)

	dim := 3
	if mu < frictionThreshold {
		dim = 1
	}
	c := &ContactConstraint{
		Body1: b1, Body2: b2, Skel1: s1, Skel2: s2,
		Minv1: minv1, Minv2: minv2,
		Point: point, Normal: n, Depth: depth, Mu: mu, Restitution: restitution, Dt: dt,
		dim:  dim,
		dirs: [3]r3.Vector{n, t1, t2},
	}
	for i := 0; i < dim; i++ {
		d := c.dirs[i]
		c.w1[i] = wrenchAtPoint(b1, point, d)
		c.w2[i] = wrenchAtPoint(b2, point, d.Mul(-1))
	}
	return c
}

// Dim returns 1 in frictionless mode (effective mu below threshold, per spec
// §4.5) and 3 otherwise.
func (c *ContactConstraint) Dim() int { return c.dim }

// relVel returns the relative velocity of Body1 minus Body2 at the contact
// point, projected onto row i's direction.
func (c *ContactConstraint) relVel(i int) float64 {
	v1 := pointVelocity(c.Body1, c.Point)
	v2 := pointVelocity(c.Body2, c.Point)
	return v1.Sub(v2).Dot(c.dirs[i])
}

func (c *ContactConstraint) GetInformation(info *Info) {
	vn := c.relVel(0)

	erp := contactERP / c.Dt * math.Max(c.Depth-contactAllowance, 0)
	if erp > contactMaxERV {
		erp = contactMaxERV
	}
	var bounce float64
	if vn < -restitutionThreshold {
		b := -c.Restitution * vn
		if b >= bounceVelThreshold {
			if b > maxBounceVel {
				b = maxBounceVel
			}
			bounce = b
		}
	}
	info.B[0] = math.Max(erp, bounce)
	info.Lo[0] = 0
	info.Hi[0] = unboundedImpulse
	info.Findex[0] = -1

	// Friction rows are coupled to the normal row's impulse: the LCP solver
	// is expected to scale Lo[i]/Hi[i] by the current x[Findex[i]] each
	// iteration (the Coulomb friction cone |x_i| <= mu*x_0).
	for i := 1; i < c.dim; i++ {
		info.B[i] = 0
		info.Lo[i] = -c.Mu
		info.Hi[i] = c.Mu
		info.Findex[i] = 0
	}
	for i := 0; i < c.dim; i++ {
		info.X[i] = 0
		info.W[i] = 0
	}
}

func (c *ContactConstraint) CurrentVelocity(out []float64) {
	for i := 0; i < c.dim; i++ {
		out[i] = c.relVel(i)
	}
}

func (c *ContactConstraint) ApplyUnitImpulse(r int) {
	c.lastRow = r
	c.dv1 = matVec(c.Minv1, genForce(c.Body1, c.w1[r]))
	c.dv2 = matVec(c.Minv2, genForce(c.Body2, c.w2[r]))
}

func (c *ContactConstraint) GetVelocityChange(out []float64, withCFM bool) {
	t1 := pullTwist(c.Body1, c.dv1)
	t2 := pullTwist(c.Body2, c.dv2)
	for i := 0; i < c.dim; i++ {
		out[i] = dotVec6(t1, c.w1[i].ToVec6()) + dotVec6(t2, c.w2[i].ToVec6())
	}
	if withCFM {
		out[c.lastRow] += contactCFM
	}
}

func (c *ContactConstraint) ApplyImpulse(x []float64) {
	var tau1, tau2 []float64
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		f1 := genForce(c.Body1, c.w1[i].Scale(xi))
		f2 := genForce(c.Body2, c.w2[i].Scale(xi))
		if tau1 == nil {
			tau1 = f1
			tau2 = f2
		} else {
			for k := range tau1 {
				tau1[k] += f1[k]
			}
			for k := range tau2 {
				tau2[k] += f2[k]
			}
		}
	}
	if tau1 == nil {
		return
	}
	dv1 := matVec(c.Minv1, tau1)
	dv2 := matVec(c.Minv2, tau2)
	for k, g := range c.Skel1.Coords {
		g.V += dv1[k]
	}
	for k, g := range c.Skel2.Coords {
		g.V += dv2[k]
	}
	c.Skel1.MarkDirty()
	c.Skel2.MarkDirty()
	c.Skel1.RefreshVelocities()
	c.Skel2.RefreshVelocities()
}
