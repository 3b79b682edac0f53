package world

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.rigidcore.dev/engine/collision"
	"go.rigidcore.dev/engine/constraint"
	"go.rigidcore.dev/engine/skeleton"
)

// StepReport summarizes one call to Step, per spec §6's emit interface.
type StepReport struct {
	Time             float64
	Contacts         []collision.Contact
	ConstraintRows   int
	SolverIterations int
	Converged        bool
}

// Step advances every skeleton in the world by one Dt, per spec §2's
// control flow: kinematics refresh, external-force gather, collision
// detection, constraint assembly, LCP solve, impulse application,
// acceleration recompute, integration.
func (w *World) Step(ctx context.Context) (StepReport, error) {
	if err := ctx.Err(); err != nil {
		return StepReport{}, err
	}

	var kinematicsErr error
	for _, s := range w.Skeletons {
		kinematicsErr = multierr.Append(kinematicsErr, s.UpdateKinematics())
	}
	if kinematicsErr != nil {
		return StepReport{}, kinematicsErr
	}

	minv := make(map[*skeleton.Skeleton][][]float64, len(w.Skeletons))
	skelOf := make(map[*skeleton.BodyNode]*skeleton.Skeleton)
	var allBodies []*skeleton.BodyNode
	var massErr error
	for _, s := range w.Skeletons {
		m, err := s.InverseMassMatrix()
		if err != nil {
			massErr = multierr.Append(massErr, errors.Wrapf(err, "skeleton %q", s.Name))
			continue
		}
		minv[s] = m
		for _, b := range s.Bodies {
			skelOf[b] = s
			allBodies = append(allBodies, b)
		}
	}
	if massErr != nil {
		return StepReport{}, massErr
	}

	contacts, err := w.Dispatcher.Contacts(allBodies)
	if err != nil {
		return StepReport{}, err
	}

	var constraints []constraint.Constraint
	for _, c := range contacts {
		s1, s2 := skelOf[c.Body1], skelOf[c.Body2]
		restitution := c.Body1.Restitution * c.Body2.Restitution
		mu := math.Min(c.Body1.Friction, c.Body2.Friction)
		firstFrictionDir := constraint.RelativePointVelocity(c.Body1, c.Body2, c.Point)
		cc := constraint.NewContactConstraint(
			c.Body1, c.Body2, s1, s2, minv[s1], minv[s2],
			c.Point, c.Normal, c.Depth, mu, restitution, w.Dt, firstFrictionDir,
		)
		constraints = append(constraints, cc)
	}

	for _, s := range w.Skeletons {
		for _, g := range s.Coords {
			switch {
			case g.Q < g.QMin:
				// Below the lower limit: the recovery direction is +V (q rising
				// back toward QMin), so Sign=+1 makes CurrentVelocity/out track V
				// directly and the positive-only impulse push it up toward +erv.
				constraints = append(constraints, &constraint.JointLimitConstraint{
					Skel: s, Minv: minv[s], DOF: g.Index, Sign: 1, Violation: g.QMin - g.Q, Dt: w.Dt,
				})
			case g.Q > g.QMax:
				// Above the upper limit: the recovery direction is -V, so
				// Sign=-1 makes out track -V and the impulse push V down toward
				// -erv.
				constraints = append(constraints, &constraint.JointLimitConstraint{
					Skel: s, Minv: minv[s], DOF: g.Index, Sign: -1, Violation: g.Q - g.QMax, Dt: w.Dt,
				})
			}
		}
	}

	for _, wc := range w.Welds {
		wc.Dt = w.Dt
		wc.Minv1 = minv[wc.Skel1]
		wc.Minv2 = minv[wc.Skel2]
		wc.Refresh()
		constraints = append(constraints, wc)
	}

	result := w.Solver.Solve(constraints)
	if !result.Converged {
		w.Logger.Warnw("lcp solver reached iteration cap without converging",
			"iterations", result.Iterations, "constraints", len(constraints))
	}

	for _, s := range w.Skeletons {
		tau := s.TauVector()
		fd := s.SpringDamperForce(w.Dt)
		total := make([]float64, len(tau))
		for i := range total {
			total[i] = tau[i] + fd[i]
		}
		if _, err := s.ForwardDynamicsFeatherstone(total, w.Gravity); err != nil {
			return StepReport{}, err
		}
		s.Integrate(w.Dt)
		s.ClearExternalForces()
	}

	w.Time += w.Dt
	return StepReport{
		Time:             w.Time,
		Contacts:         contacts,
		ConstraintRows:   totalRows(constraints),
		SolverIterations: result.Iterations,
		Converged:        result.Converged,
	}, nil
}

func totalRows(constraints []constraint.Constraint) int {
	n := 0
	for _, c := range constraints {
		n += c.Dim()
	}
	return n
}
