package lcp

import (
	"math"

	"go.rigidcore.dev/engine/constraint"
)

// Solver runs boxed Projected-Gauss-Seidel over an assembled constraint set,
// per spec §4.6.
type Solver struct {
	MaxIterations int
	Epsilon       float64
}

// NewSolver returns a Solver with the defaults used elsewhere in the engine.
func NewSolver() *Solver {
	return &Solver{MaxIterations: 50, Epsilon: 1e-6}
}

// Result reports how the solve terminated, per spec §7's "solver
// non-convergence" diagnostic.
type Result struct {
	Iterations int
	Converged  bool
}

// Solve drives every row of every constraint to a feasible impulse. Each
// constraint keeps its own accumulated impulse guess (info.X); friction rows
// rescale their bounds by the current impulse at their Findex row before
// being clamped, per spec §4.6 and §9's row-coupling note.
func (s *Solver) Solve(constraints []constraint.Constraint) Result {
	if len(constraints) == 0 {
		return Result{Converged: true}
	}

	infos := make([]*constraint.Info, len(constraints))
	x := make([][]float64, len(constraints))
	cur := make([][]float64, len(constraints))
	for ci, c := range constraints {
		dim := c.Dim()
		info := constraint.NewInfo(dim)
		c.GetInformation(info)
		infos[ci] = info
		x[ci] = append([]float64(nil), info.X...)
		cur[ci] = make([]float64, dim)
	}

	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = 50
	}
	eps := s.Epsilon
	if eps <= 0 {
		eps = 1e-6
	}

	iter := 0
	converged := false
	dv := make([]float64, 0, 6)
	impulse := make([]float64, 0, 6)
	for ; iter < maxIter; iter++ {
		maxDelta := 0.0
		for ci, c := range constraints {
			info := infos[ci]
			dim := c.Dim()
			if cap(dv) < dim {
				dv = make([]float64, dim)
				impulse = make([]float64, dim)
			}
			dv = dv[:dim]
			impulse = impulse[:dim]

			for r := 0; r < dim; r++ {
				// Re-query rather than locally accumulate: ApplyImpulse on
				// this or any other constraint sharing a body commits
				// straight to real body state (skeleton.RefreshVelocities),
				// so this is the actual current residual rather than an
				// approximation that drifts across shared-body islands.
				c.CurrentVelocity(cur[ci])

				c.ApplyUnitImpulse(r)
				c.GetVelocityChange(dv, true)
				aii := dv[r]
				if aii < 1e-12 {
					aii = 1e-12
				}

				lo, hi := info.Lo[r], info.Hi[r]
				if fi := info.Findex[r]; fi >= 0 {
					base := x[ci][fi]
					lo = info.Lo[r] * base
					hi = info.Hi[r] * base
				}

				delta := (info.B[r] - cur[ci][r]) / aii
				old := x[ci][r]
				newX := old + delta
				if newX < lo {
					newX = lo
				}
				if newX > hi {
					newX = hi
				}
				applied := newX - old
				if applied == 0 {
					continue
				}

				for k := range impulse {
					impulse[k] = 0
				}
				impulse[r] = applied
				c.ApplyImpulse(impulse)

				x[ci][r] = newX
				if a := math.Abs(applied); a > maxDelta {
					maxDelta = a
				}
			}
		}
		if maxDelta < eps {
			converged = true
			iter++
			break
		}
	}
	return Result{Iterations: iter, Converged: converged}
}
