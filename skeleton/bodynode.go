package skeleton

import (
	"github.com/golang/geo/r3"
	"github.com/google/uuid"

	"go.rigidcore.dev/engine/spatialmath"
)

// BodyNode is a single rigid link in a skeleton's tree, per spec §3. Parent
// and child links are non-owning indices into the owning Skeleton's flat
// body slice (spec §9's "back-references in the tree" design note), so the
// tree never holds cyclic pointer ownership.
type BodyNode struct {
	ID   uuid.UUID
	Name string

	// Index is this body's position in the owning Skeleton's flat slice.
	// ParentIndex is -1 for a root body.
	Index       int
	ParentIndex int
	Children    []int

	Joint Joint

	// Inertia is the body's spatial inertia (6x6) about its own origin,
	// expressed in the body frame.
	Inertia spatialmath.Mat6
	// COM is the center of mass in the body's local frame.
	COM r3.Vector

	// World is the body frame's pose in the world frame, refreshed each
	// forward-kinematics pass.
	World *spatialmath.Pose

	// V and A are the body's spatial velocity and acceleration, both
	// expressed in the body's own frame.
	V, A spatialmath.MotionVector

	// Jac is the body-level geometric Jacobian: Jac[k] is the spatial twist
	// (in this body's own frame) that a unit generalized velocity at DOF k
	// produces, for every DOF in the skeleton (zero for DOFs that are not an
	// ancestor of this body). Refreshed each UpdateKinematics pass; consumed
	// by the constraint layer to map body-frame wrenches to/from generalized
	// coordinates without re-deriving the kinematic chain per constraint.
	Jac [][6]float64

	// Fext accumulates externally applied wrenches (gravity excluded; that is
	// folded in during the bias pass) between steps; cleared after each step
	// per spec §6.
	Fext spatialmath.ForceVector

	// IA and Pi are the Featherstone articulated inertia and articulated bias
	// force, recomputed by the inward pass of each forward-dynamics solve.
	IA spatialmath.Mat6
	Pi spatialmath.ForceVector

	Restitution float64
	Friction    float64

	Shapes []spatialmath.PlacedShape
}

// NewBodyNode constructs a body node with identity inertia placeholder; the
// caller fills Inertia, COM, and material properties.
func NewBodyNode(name string, index, parentIndex int, j Joint) *BodyNode {
	b := &BodyNode{
		ID:          uuid.New(),
		Name:        name,
		Index:       index,
		ParentIndex: parentIndex,
		Joint:       j,
		World:       spatialmath.NewZeroPose(),
		Restitution: 0,
		Friction:    0,
	}
	for i := 0; i < 6; i++ {
		b.Inertia[i*6+i] = 1
	}
	return b
}

// IsRoot reports whether this body has no parent.
func (b *BodyNode) IsRoot() bool { return b.ParentIndex < 0 }

// ClearExternalForce zeroes the external wrench accumulator, per spec §6's
// "cleared at end-of-step automatically".
func (b *BodyNode) ClearExternalForce() {
	b.Fext = spatialmath.ForceVector{}
}

// AddExternalForce accumulates a wrench expressed in the body frame.
func (b *BodyNode) AddExternalForce(f spatialmath.ForceVector) {
	b.Fext = b.Fext.Add(f)
}
