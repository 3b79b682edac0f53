package constraint

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/skeleton"
	"go.rigidcore.dev/engine/spatialmath"
)

// Weld stabilization parameter, per spec §4.5.
const weldERP = 0.2

var worldAxes = [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}

func mulRotLocal(a, b spatialmath.RotationMatrix) spatialmath.RotationMatrix {
	var out spatialmath.RotationMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i*3+k] * b[k*3+j]
			}
			out[i*3+j] = sum
		}
	}
	return out
}

// WeldConstraint is a 6-row bilateral constraint holding two bodies rigidly
// together at a pair of anchor points, per spec §4.5: three linear rows
// pinning the anchors coincident, three angular rows pinning the relative
// orientation captured at formation time.
type WeldConstraint struct {
	Body1, Body2 *skeleton.BodyNode
	Skel1, Skel2 *skeleton.Skeleton
	Minv1, Minv2 [][]float64

	// Anchor1, Anchor2 are the weld point in each body's local frame.
	Anchor1, Anchor2 r3.Vector
	// RelRotTarget is R1^T * R2 captured at formation time.
	RelRotTarget spatialmath.RotationMatrix

	Dt float64

	w1, w2   [6]spatialmath.ForceVector
	lastRow  int
	dv1, dv2 []float64
}

// NewWeldConstraint builds a weld constraint from the two bodies' current
// poses: the anchor points and relative orientation at construction time
// become the rigidly maintained configuration.
func NewWeldConstraint(b1, b2 *skeleton.BodyNode, s1, s2 *skeleton.Skeleton, minv1, minv2 [][]float64, worldAnchor r3.Vector, dt float64) *WeldConstraint {
	r1t := b1.World.Orientation().RotationMatrix().Transpose()
	rel1 := worldAnchor.Sub(b1.World.Point())
	ax, ay, az := r1t.MulVec(rel1.X, rel1.Y, rel1.Z)

	r2t := b2.World.Orientation().RotationMatrix().Transpose()
	rel2 := worldAnchor.Sub(b2.World.Point())
	bx, by, bz := r2t.MulVec(rel2.X, rel2.Y, rel2.Z)

	relRot := mulRotLocal(r1t, b2.World.Orientation().RotationMatrix())

	c := &WeldConstraint{
		Body1: b1, Body2: b2, Skel1: s1, Skel2: s2,
		Minv1: minv1, Minv2: minv2,
		Anchor1: r3.Vector{X: ax, Y: ay, Z: az},
		Anchor2: r3.Vector{X: bx, Y: by, Z: bz},
		RelRotTarget: relRot,
		Dt:           dt,
	}
	c.Refresh()
	return c
}

// Refresh recomputes the constraint's per-row wrenches from each body's
// current world pose. Called once per step before assembly, since a weld's
// anchor points move with their bodies (and may have drifted apart, which
// is exactly what GetInformation's bias term corrects).
func (c *WeldConstraint) Refresh() {
	a1 := c.anchorWorld(c.Body1, c.Anchor1)
	a2 := c.anchorWorld(c.Body2, c.Anchor2)
	for i, axis := range worldAxes {
		c.w1[i] = wrenchAtPoint(c.Body1, a1, axis)
		c.w2[i] = wrenchAtPoint(c.Body2, a2, axis.Mul(-1))
		c.w1[3+i] = momentWrench(c.Body1, axis)
		c.w2[3+i] = momentWrench(c.Body2, axis.Mul(-1))
	}
}

func momentWrench(body *skeleton.BodyNode, worldAxis r3.Vector) spatialmath.ForceVector {
	rt := body.World.Orientation().RotationMatrix().Transpose()
	mx, my, mz := rt.MulVec(worldAxis.X, worldAxis.Y, worldAxis.Z)
	return spatialmath.ForceVector{Moment: mgl64.Vec3{mx, my, mz}}
}

func (c *WeldConstraint) Dim() int { return 6 }

func (c *WeldConstraint) anchorWorld(body *skeleton.BodyNode, local r3.Vector) r3.Vector {
	return body.World.Transform(local)
}

func (c *WeldConstraint) GetInformation(info *Info) {
	a1 := c.anchorWorld(c.Body1, c.Anchor1)
	a2 := c.anchorWorld(c.Body2, c.Anchor2)
	errLin := a1.Sub(a2)

	r1 := c.Body1.World.Orientation().RotationMatrix()
	r2 := c.Body2.World.Orientation().RotationMatrix()
	relActual := mulRotLocal(r1.Transpose(), r2)
	relError := mulRotLocal(relActual, c.RelRotTarget.Transpose())
	errAng := spatialmath.LogMapSO3(relError)
	ex, ey, ez := r1.MulVec(errAng[0], errAng[1], errAng[2])
	errAngWorld := [3]float64{ex, ey, ez}

	lin := [3]float64{errLin.X, errLin.Y, errLin.Z}
	for i := 0; i < 3; i++ {
		info.B[i] = -weldERP / c.Dt * lin[i]
		info.Lo[i] = -unboundedImpulse
		info.Hi[i] = unboundedImpulse
		info.Findex[i] = -1
	}
	for i := 0; i < 3; i++ {
		info.B[3+i] = -weldERP / c.Dt * errAngWorld[i]
		info.Lo[3+i] = -unboundedImpulse
		info.Hi[3+i] = unboundedImpulse
		info.Findex[3+i] = -1
	}
	for i := 0; i < 6; i++ {
		info.X[i] = 0
		info.W[i] = 0
	}
}

func (c *WeldConstraint) CurrentVelocity(out []float64) {
	a1 := c.anchorWorld(c.Body1, c.Anchor1)
	a2 := c.anchorWorld(c.Body2, c.Anchor2)
	vRel := pointVelocity(c.Body1, a1).Sub(pointVelocity(c.Body2, a2))

	r1 := c.Body1.World.Orientation().RotationMatrix()
	r2 := c.Body2.World.Orientation().RotationMatrix()
	w1x, w1y, w1z := r1.MulVec(c.Body1.V.Angular[0], c.Body1.V.Angular[1], c.Body1.V.Angular[2])
	w2x, w2y, w2z := r2.MulVec(c.Body2.V.Angular[0], c.Body2.V.Angular[1], c.Body2.V.Angular[2])
	wRel := r3.Vector{X: w1x - w2x, Y: w1y - w2y, Z: w1z - w2z}

	for i, axis := range worldAxes {
		out[i] = vRel.Dot(axis)
		out[3+i] = wRel.Dot(axis)
	}
}

func (c *WeldConstraint) ApplyUnitImpulse(r int) {
	c.lastRow = r
	c.dv1 = matVec(c.Minv1, genForce(c.Body1, c.w1[r]))
	c.dv2 = matVec(c.Minv2, genForce(c.Body2, c.w2[r]))
}

func (c *WeldConstraint) GetVelocityChange(out []float64, withCFM bool) {
	t1 := pullTwist(c.Body1, c.dv1)
	t2 := pullTwist(c.Body2, c.dv2)
	for i := 0; i < 6; i++ {
		out[i] = dotVec6(t1, c.w1[i].ToVec6()) + dotVec6(t2, c.w2[i].ToVec6())
	}
	if withCFM {
		out[c.lastRow] += contactCFM
	}
}

func (c *WeldConstraint) ApplyImpulse(x []float64) {
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
