// Package solver hands assembled decision vectors to a nonlinear
// optimizer. The optimizer is a black box to the rest of trajopt: it
// consumes the numeric vectors problem assembly produced, minimizes the
// objective over them, and returns an improved vector. The symbolic
// containers are never touched from here.
//
// Scaling follows the convention of the variable containers: the
// optimizer iterates on scaled values y while the objective, bounds,
// start point and result all live in physical space x = scale .* y.
package solver

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Objective scores one physical decision vector. Lower is better.
type Objective func(x []float64) float64

// Problem is the numeric hand-off from problem assembly.
type Problem struct {
	// Name labels the problem in logs.
	Name string
	// Size is the decision-vector length.
	Size int
	// Objective scores a candidate vector.
	Objective Objective
	// Initial is the starting point. Nil means all zeros.
	Initial []float64
	// Scale holds the per-entry scale factors the optimizer iterates
	// under. Nil means unit scaling; entries must be strictly positive.
	Scale []float64
	// LowerBounds and UpperBounds constrain each entry. Nil means
	// unbounded on that side.
	LowerBounds []float64
	UpperBounds []float64
}

// Validate reports whether the problem is well formed enough to hand to
// an optimizer.
func (p *Problem) Validate() error {
	if p.Size < 1 {
		return errors.Errorf("problem %q needs at least one decision variable, got %d", p.Name, p.Size)
	}
	if p.Objective == nil {
		return errors.Errorf("problem %q needs an objective", p.Name)
	}
	checkLen := func(what string, values []float64) error {
		if values != nil && len(values) != p.Size {
			return errors.Errorf("problem %q has %d decision variables but %d %s entries", p.Name, p.Size, len(values), what)
		}
		return nil
	}
	if err := checkLen("initial", p.Initial); err != nil {
		return err
	}
	if err := checkLen("scale", p.Scale); err != nil {
		return err
	}
	if err := checkLen("lower-bound", p.LowerBounds); err != nil {
		return err
	}
	if err := checkLen("upper-bound", p.UpperBounds); err != nil {
		return err
	}
	for i, s := range p.Scale {
		if s <= 0 {
			return errors.Errorf("problem %q scale entry %d must be strictly positive, got %v", p.Name, i, s)
		}
	}
	for i := range p.LowerBounds {
		if p.UpperBounds != nil && p.LowerBounds[i] > p.UpperBounds[i] {
			return errors.Errorf("problem %q entry %d has lower bound %v above upper bound %v",
				p.Name, i, p.LowerBounds[i], p.UpperBounds[i])
		}
	}
	return nil
}

// Result is one finished solve.
type Result struct {
	// ID identifies the solve run in logs.
	ID uuid.UUID
	// X is the optimized decision vector in physical space.
	X []float64
	// Score is the objective value at X.
	Score float64
	// Evaluations counts objective calls, gradient probes included.
	Evaluations int
	// Elapsed is the wall time the solve took.
	Elapsed time.Duration
}

// Solver minimizes assembled problems.
type Solver interface {
	// Solve runs the optimizer until convergence, exhaustion of its
	// evaluation budget, or ctx cancellation.
	Solve(ctx context.Context, prob *Problem) (*Result, error)
}

// NloptConfig tunes the nlopt-backed solver.
type NloptConfig struct {
	// MaxEval bounds objective evaluations. Below one means the
	// default budget.
	MaxEval int
	// Epsilon is the relative and absolute stopping tolerance. Zero
	// means the default.
	Epsilon float64
	// Clock measures elapsed time. Nil means the wall clock; tests
	// inject a mock.
	Clock clock.Clock
}

// toScaled divides values elementwise by scale. A nil scale returns a
// plain copy; nil values stay nil.
func toScaled(values, scale []float64) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	copy(out, values)
	for i, s := range scale {
		out[i] /= s
	}
	return out
}

// toPhysical multiplies values elementwise by scale into dst, growing it
// when needed, and returns dst. A nil scale copies values through.
func toPhysical(dst, values, scale []float64) []float64 {
	if len(dst) != len(values) {
		dst = make([]float64, len(values))
	}
	copy(dst, values)
	for i, s := range scale {
		dst[i] *= s
	}
	return dst
}
