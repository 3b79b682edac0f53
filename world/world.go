package world

import (
	"github.com/golang/geo/r3"

	"go.rigidcore.dev/engine/collision"
	"go.rigidcore.dev/engine/constraint"
	"go.rigidcore.dev/engine/lcp"
	"go.rigidcore.dev/engine/logging"
	"go.rigidcore.dev/engine/skeleton"
)

// World owns a forest of skeletons and the shared per-step settings that
// drive Step, per spec §6's ingest interface.
type World struct {
	Dt      float64
	Gravity r3.Vector

	Skeletons []*skeleton.Skeleton
	Welds     []*constraint.WeldConstraint

	Dispatcher *collision.Dispatcher
	Solver     *lcp.Solver
	Logger     logging.Logger

	Time float64
}

// Option configures a World at construction time.
type Option func(*World)

// WithGravity overrides the default gravity vector (0,-9.81,0).
func WithGravity(g r3.Vector) Option { return func(w *World) { w.Gravity = g } }

// WithTimestep overrides the default time step 1e-3.
func WithTimestep(dt float64) Option { return func(w *World) { w.Dt = dt } }

// WithLogger overrides the default logger.
func WithLogger(l logging.Logger) Option { return func(w *World) { w.Logger = l } }

// WithSolverIterations overrides the LCP solver's iteration cap.
func WithSolverIterations(n int) Option {
	return func(w *World) { w.Solver.MaxIterations = n }
}

// NewWorld returns a World with spec §6's default parameters, one skeleton
// list, and no welds.
func NewWorld(opts ...Option) *World {
	w := &World{
		Dt:         1e-3,
		Gravity:    r3.Vector{Y: -9.81},
		Dispatcher: collision.NewDispatcher(),
		Solver:     lcp.NewSolver(),
		Logger:     logging.NewLogger("world"),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// AddSkeleton registers a skeleton with the world.
func (w *World) AddSkeleton(s *skeleton.Skeleton) *skeleton.Skeleton {
	w.Skeletons = append(w.Skeletons, s)
	return s
}

// AddWeld registers a persistent weld constraint, re-assembled every step.
func (w *World) AddWeld(c *constraint.WeldConstraint) {
	w.Welds = append(w.Welds, c)
}
