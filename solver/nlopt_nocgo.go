//go:build windows || no_cgo

package solver

import (
	"context"

	"github.com/pkg/errors"

	"github.com/openmotionlab/trajopt/logging"
)

// NewNloptSolver is not supported on this build.
func NewNloptSolver(logger logging.Logger, cfg NloptConfig) (*NloptSolver, error) {
	return nil, errors.New("nlopt is not supported on this build")
}

// NloptSolver mimics the type in the cgo compiled code.
type NloptSolver struct{}

// Solve refuses to solve problems without cgo.
func (s *NloptSolver) Solve(ctx context.Context, prob *Problem) (*Result, error) {
	return nil, errors.New("cannot solve without cgo")
}
