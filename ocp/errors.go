package ocp

import "github.com/pkg/errors"

var (
	// ErrParallelPerNodeAllocation is returned when a variable is
	// configured in a per-node-allocated phase of a multithreaded
	// problem.
	ErrParallelPerNodeAllocation = errors.New("multithreaded solving is not supported with per-node variable allocation")

	// ErrCrossPhasePerNodeAllocation is returned when a per-node-
	// allocated phase borrows variables from another phase.
	ErrCrossPhasePerNodeAllocation = errors.New("cross-phase variable reuse requires shared-across-phase allocation")

	// ErrConflictingPlotCombine is returned when a variable requests
	// both a combine-to plot and combined state-control plots.
	ErrConflictingPlotCombine = errors.New("a combine-to plot and combined state-control plots cannot be requested together")

	// ErrFatigueNotOnControls is returned when fatigue is declared on a
	// variable that is not also a control.
	ErrFatigueNotOnControls = errors.New("fatigue is only implemented for variables that are also controls")
)
