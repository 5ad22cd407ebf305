//go:build !windows && !no_cgo

package solver

import (
	"context"
	"math"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/go-nlopt/nlopt"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/openmotionlab/trajopt/logging"
)

const (
	defaultMaxEval = 5000
	defaultEpsilon = 1e-6
	gradientJump   = 1e-8
)

// NloptSolver minimizes problems with nlopt's SLSQP implementation. The
// objective gradient is estimated by forward finite differences in
// scaled space, stepping backwards at the upper bound.
type NloptSolver struct {
	logger  logging.Logger
	maxEval int
	epsilon float64
	clock   clock.Clock
}

// NewNloptSolver returns an nlopt-backed solver.
func NewNloptSolver(logger logging.Logger, cfg NloptConfig) (*NloptSolver, error) {
	s := &NloptSolver{
		logger:  logger,
		maxEval: cfg.MaxEval,
		epsilon: cfg.Epsilon,
		clock:   cfg.Clock,
	}
	if s.maxEval < 1 {
		s.maxEval = defaultMaxEval
	}
	if s.epsilon <= 0 {
		s.epsilon = defaultEpsilon
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	return s, nil
}

type optimizeReturn struct {
	solution []float64
	score    float64
	err      error
}

// Solve runs SLSQP on prob until convergence, evaluation-budget
// exhaustion, or ctx cancellation.
func (s *NloptSolver) Solve(ctx context.Context, prob *Problem) (*Result, error) {
	if err := prob.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := uuid.New()
	start := s.clock.Now()
	s.logger.Debugw("starting nlopt solve", "id", id, "problem", prob.Name, "size", prob.Size)

	opt, err := nlopt.NewNLopt(nlopt.LD_SLSQP, uint(prob.Size))
	if err != nil {
		return nil, errors.Wrap(err, "nlopt creation error")
	}
	defer opt.Destroy()

	// The optimizer iterates on scaled values y; the objective scores
	// the physical point x = scale .* y.
	lower := toScaled(prob.LowerBounds, prob.Scale)
	upper := toScaled(prob.UpperBounds, prob.Scale)
	evaluations := 0
	physical := make([]float64, prob.Size)
	probe := make([]float64, prob.Size)
	minFunc := func(y, gradient []float64) float64 {
		evaluations++
		physical = toPhysical(physical, y, prob.Scale)
		score := prob.Objective(physical)

		for i := range gradient {
			evaluations++
			copy(probe, y)
			flip := false
			probe[i] += gradientJump
			if upper != nil && probe[i] >= upper[i] {
				flip = true
				probe[i] -= 2 * gradientJump
			}
			physical = toPhysical(physical, probe, prob.Scale)
			gradient[i] = (prob.Objective(physical) - score) / gradientJump
			if flip {
				gradient[i] *= -1
			}
		}
		return score
	}

	err = multierr.Combine(
		opt.SetFtolRel(s.epsilon),
		opt.SetFtolAbs(s.epsilon),
		opt.SetXtolRel(s.epsilon),
		opt.SetXtolAbs1(s.epsilon),
		opt.SetMinObjective(minFunc),
		opt.SetMaxEval(s.maxEval),
	)
	if lower != nil {
		err = multierr.Combine(err, opt.SetLowerBounds(lower))
	}
	if upper != nil {
		err = multierr.Combine(err, opt.SetUpperBounds(upper))
	}
	if err != nil {
		return nil, errors.Wrap(err, "configuring nlopt")
	}

	y0 := make([]float64, prob.Size)
	if prob.Initial != nil {
		y0 = toScaled(prob.Initial, prob.Scale)
	}

	solveChan := make(chan *optimizeReturn, 1)
	var worker sync.WaitGroup
	worker.Add(1)
	goutils.PanicCapturingGo(func() {
		defer worker.Done()
		solution, score, optErr := opt.Optimize(y0)
		solveChan <- &optimizeReturn{solution, score, optErr}
	})

	var ret *optimizeReturn
	select {
	case <-ctx.Done():
		stopErr := opt.ForceStop()
		worker.Wait()
		return nil, multierr.Combine(ctx.Err(), stopErr)
	case ret = <-solveChan:
	}
	if ret.err != nil {
		if ret.solution == nil {
			return nil, errors.Wrap(ret.err, "nlopt optimize")
		}
		// Rounding-limited convergence still carries a usable point.
		s.logger.Debugw("nlopt finished with a complaint", "id", id, "error", ret.err)
	}

	res := &Result{
		ID:          id,
		X:           toPhysical(nil, ret.solution, prob.Scale),
		Score:       ret.score,
		Evaluations: evaluations,
		Elapsed:     s.clock.Since(start),
	}
	if math.IsNaN(res.Score) {
		return nil, errors.Errorf("problem %q scored NaN at the returned point", prob.Name)
	}
	s.logger.Debugw("finished nlopt solve",
		"id", id, "score", res.Score, "evaluations", res.Evaluations, "elapsed", res.Elapsed)
	return res, nil
}
