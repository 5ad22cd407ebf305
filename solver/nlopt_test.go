//go:build !windows && !no_cgo

package solver

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"github.com/openmotionlab/trajopt/logging"
	"github.com/openmotionlab/trajopt/utils"
)

func TestNloptSolveQuadratic(t *testing.T) {
	logger := logging.NewTestLogger(t)
	s, err := NewNloptSolver(logger, NloptConfig{})
	test.That(t, err, test.ShouldBeNil)

	prob := &Problem{
		Name: "quadratic",
		Size: 2,
		Objective: func(x []float64) float64 {
			return (x[0]-3)*(x[0]-3) + (x[1]+1)*(x[1]+1)
		},
		Initial:     []float64{0, 0},
		Scale:       []float64{2, 1},
		LowerBounds: []float64{-10, -10},
		UpperBounds: []float64{10, 10},
	}

	res, err := s.Solve(context.Background(), prob)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res, test.ShouldNotBeNil)
	test.That(t, utils.Float64AlmostEqual(res.X[0], 3, 1e-2), test.ShouldBeTrue)
	test.That(t, utils.Float64AlmostEqual(res.X[1], -1, 1e-2), test.ShouldBeTrue)
	test.That(t, res.Score < 1e-3, test.ShouldBeTrue)
	test.That(t, res.Evaluations > 0, test.ShouldBeTrue)
}

func TestNloptUsesInjectedClock(t *testing.T) {
	logger := logging.NewTestLogger(t)
	mock := clock.NewMock()
	s, err := NewNloptSolver(logger, NloptConfig{Clock: mock})
	test.That(t, err, test.ShouldBeNil)

	prob := &Problem{
		Name: "flat",
		Size: 1,
		Objective: func(x []float64) float64 {
			return x[0] * x[0]
		},
	}
	res, err := s.Solve(context.Background(), prob)
	test.That(t, err, test.ShouldBeNil)
	// The mock never advances, so the measured time is exactly zero.
	test.That(t, res.Elapsed, test.ShouldEqual, time.Duration(0))
}

func TestNloptSolveRejectsInvalidAndCanceled(t *testing.T) {
	logger := logging.NewTestLogger(t)
	s, err := NewNloptSolver(logger, NloptConfig{})
	test.That(t, err, test.ShouldBeNil)

	_, err = s.Solve(context.Background(), &Problem{Name: "bad", Size: 0})
	test.That(t, err, test.ShouldNotBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Solve(ctx, newTestProblem())
	test.That(t, err, test.ShouldBeError, context.Canceled)
}
