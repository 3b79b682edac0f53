package constraint

// Info carries the per-row quantities a Constraint fills in via
// GetInformation, per spec §4.5.
type Info struct {
	B      []float64 // bias
	Lo, Hi []float64
	Findex []int // row index this row's bounds are coupled to, or -1
	X      []float64 // initial impulse guess
	W      []float64 // RHS slack, initialized to 0
}

// NewInfo allocates an Info sized for dim rows, with Findex defaulted to -1.
func NewInfo(dim int) *Info {
	in := &Info{
		B:      make([]float64, dim),
		Lo:     make([]float64, dim),
		Hi:     make([]float64, dim),
		Findex: make([]int, dim),
		X:      make([]float64, dim),
		W:      make([]float64, dim),
	}
	for i := range in.Findex {
		in.Findex[i] = -1
	}
	return in
}

// Constraint is the polymorphic capability set every constraint kind
// implements, per spec §4.5: a fixed row count, bias/bounds/friction-index
// information, and the impulse-probe/apply interface the LCP engine drives.
type Constraint interface {
	Dim() int
	GetInformation(info *Info)

	// ApplyUnitImpulse propagates a unit impulse along row r through the
	// constrained bodies' articulated-inertia solve, caching the resulting
	// velocity change for GetVelocityChange to read.
	ApplyUnitImpulse(r int)

	// GetVelocityChange reads the velocity change (computed by the last
	// ApplyUnitImpulse call) projected onto every row of this constraint.
	// When withCFM is true, constraint-force-mixing softens the diagonal
	// entry corresponding to the row that was probed.
	GetVelocityChange(out []float64, withCFM bool)

	// ApplyImpulse permanently commits impulse vector x into the
	// constrained bodies' velocities.
	ApplyImpulse(x []float64)

	// CurrentVelocity fills out with the actual relative velocity at every
	// row, given the constrained bodies' current (real) velocity state. The
	// LCP engine uses this as the running residual a Gauss-Seidel sweep
	// drives to zero; it already reflects impulses committed by other
	// constraints sharing a body.
	CurrentVelocity(out []float64)
}

func dotVec6(a, b [6]float64) float64 {
	var sum float64
	for i := 0; i < 6; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
