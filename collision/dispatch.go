package collision

import (
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/skeleton"
	"go.rigidcore.dev/engine/spatialmath"
)

// Dispatcher runs the narrow-phase shape-pair dispatch table of spec §4.4
// over every pair of bodies carrying collision shapes.
type Dispatcher struct {
	// SkipAdjacent excludes contacts between a body and its direct joint
	// parent, since articulated neighbors are already constrained by their
	// joint and a contact there is almost always a geometric artifact of
	// coincident collision shapes at the joint origin.
	SkipAdjacent bool
}

// NewDispatcher returns a Dispatcher with SkipAdjacent enabled.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{SkipAdjacent: true}
}

// Contacts runs narrow-phase detection over every pair of bodies in bodies,
// across all skeletons in the world, per spec §4.4.
func (d *Dispatcher) Contacts(bodies []*skeleton.BodyNode) ([]Contact, error) {
	var contacts []Contact
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if d.SkipAdjacent && adjacent(a, b) {
				continue
			}
			for _, sa := range a.Shapes {
				for _, sb := range b.Shapes {
					wa := spatialmath.PlacedShape{Shape: sa.Shape, Pose: a.World.Compose(sa.Pose)}
					wb := spatialmath.PlacedShape{Shape: sb.Shape, Pose: b.World.Compose(sb.Pose)}
					c, ok, err := pairContact(a, b, wa, wb)
					if err != nil {
						return nil, err
					}
					if ok {
						contacts = append(contacts, c)
					}
				}
			}
		}
	}
	return contacts, nil
}

func adjacent(a, b *skeleton.BodyNode) bool {
	return a.ParentIndex == b.Index || b.ParentIndex == a.Index
}

func pairContact(bodyA, bodyB *skeleton.BodyNode, sa, sb spatialmath.PlacedShape) (Contact, bool, error) {
	sphereA, aIsSphere := sa.Shape.(*spatialmath.Sphere)
	sphereB, bIsSphere := sb.Shape.(*spatialmath.Sphere)
	boxA, aIsBox := sa.Shape.(*spatialmath.Box)
	boxB, bIsBox := sb.Shape.(*spatialmath.Box)

	switch {
	case aIsSphere && bIsSphere:
		return sphereSphere(bodyA, bodyB, sphereA, sa.Pose, sphereB, sb.Pose)
	case aIsBox && bIsBox:
		return boxBox(bodyA, bodyB, boxA, sa.Pose, boxB, sb.Pose)
	default:
		return mprContact(bodyA, bodyB, sa, sb)
	}
}

// sphereSphere is the closed-form sphere-sphere query of spec §4.4.
func sphereSphere(bodyA, bodyB *skeleton.BodyNode, a *spatialmath.Sphere, poseA *spatialmath.Pose, b *spatialmath.Sphere, poseB *spatialmath.Pose) (Contact, bool, error) {
	ca := poseA.Transform(a.Center())
	cb := poseB.Transform(b.Center())
	delta := ca.Sub(cb)
	dist := delta.Norm()
	depth := a.Radius + b.Radius - dist
	if depth <= 0 {
		return Contact{}, false, nil
	}
	var normal r3.Vector
	if dist < 1e-9 {
		normal = r3.Vector{Y: 1}
	} else {
		normal = delta.Mul(1 / dist)
	}
	point := cb.Add(normal.Mul(b.Radius))
	return Contact{Point: point, Normal: normal, Depth: depth, Body1: bodyA, Body2: bodyB}, true, nil
}

// boxBox runs the 15-axis SAT of spec §4.4.
func boxBox(bodyA, bodyB *skeleton.BodyNode, a *spatialmath.Box, poseA *spatialmath.Pose, b *spatialmath.Box, poseB *spatialmath.Pose) (Contact, bool, error) {
	res := spatialmath.BoxBoxSAT(a, poseA, b, poseB)
	if !res.Colliding {
		return Contact{}, false, nil
	}
	point := poseA.Point().Add(poseB.Point()).Mul(0.5)
	// The SAT axis points from A toward B; contact normals point from Body2
	// toward Body1.
	return Contact{Point: point, Normal: res.Axis.Mul(-1), Depth: res.Depth, Body1: bodyA, Body2: bodyB}, true, nil
}

// mprContact is the MPR fallback path for every other primitive pairing
// (primitive-convex, convex-convex, and any mixed primitive pair), per spec
// §4.4. A non-converged MPR query is reported as "no contact" for the pair,
// per spec §7's collision-failure policy; the caller may log a diagnostic.
func mprContact(bodyA, bodyB *skeleton.BodyNode, sa, sb spatialmath.PlacedShape) (Contact, bool, error) {
	depth, normal, point, ok := spatialmath.MPRPenetration(sa, sb)
	if !ok {
		return Contact{}, false, nil
	}
	return Contact{Point: point, Normal: normal, Depth: depth, Body1: bodyA, Body2: bodyB}, true, nil
}
