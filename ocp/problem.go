// Package ocp assembles the decision variables of multi-phase optimal-
// control problems: per-phase state/control/state-derivative/algebraic
// containers, index mappings, scalings, initial guesses, cross-phase
// variable reuse and fatigue decomposition, plus the numeric vectors
// handed to a solver.
package ocp

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/openmotionlab/trajopt/logging"
	"github.com/openmotionlab/trajopt/mapping"
	"github.com/openmotionlab/trajopt/optvar"
	"github.com/openmotionlab/trajopt/plotting"
)

// Problem is a multi-phase optimal-control problem under construction.
type Problem struct {
	name     string
	nThreads int
	phases   []*Phase
	logger   logging.Logger
}

// ProblemConfig carries the problem-wide options.
type ProblemConfig struct {
	// NThreads is the solver thread count the problem is built for.
	// Values below one mean single-threaded.
	NThreads int
	// Logger, when nil, falls back to a logger named after the problem.
	Logger logging.Logger
}

// NewProblem returns an empty problem.
func NewProblem(name string, cfg ProblemConfig) *Problem {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger(name)
	}
	nThreads := cfg.NThreads
	if nThreads < 1 {
		nThreads = 1
	}
	return &Problem{name: name, nThreads: nThreads, logger: logger}
}

// Name returns the problem's name.
func (prob *Problem) Name() string {
	return prob.name
}

// NThreads returns the solver thread count the problem is built for.
func (prob *Problem) NThreads() int {
	return prob.nThreads
}

// NumPhases returns the number of phases added so far.
func (prob *Problem) NumPhases() int {
	return len(prob.phases)
}

// Phase returns the phase at index i.
func (prob *Problem) Phase(i int) *Phase {
	return prob.phases[i]
}

// Phases returns the phases in order.
func (prob *Problem) Phases() []*Phase {
	out := make([]*Phase, len(prob.phases))
	copy(out, prob.phases)
	return out
}

// PhaseConfig describes one phase to add.
type PhaseConfig struct {
	// Name defaults to "phase_<index>".
	Name string
	// ShootingNodes is the number of shooting intervals, at least one.
	ShootingNodes int
	// Allocation is the variable allocation policy.
	Allocation optvar.Allocation
	// Scheme defaults to RungeKutta4.
	Scheme IntegrationScheme
	// ControlType defaults to ControlTypeConstant.
	ControlType ControlType
	// UseStatesFrom, UseStatesDotFrom and UseControlsFrom borrow the
	// respective variables from an earlier phase. Nil means the phase
	// owns its own.
	UseStatesFrom    *int
	UseStatesDotFrom *int
	UseControlsFrom  *int
}

// AddPhase appends a phase built from cfg and returns it.
func (prob *Problem) AddPhase(cfg PhaseConfig) (*Phase, error) {
	if cfg.ShootingNodes < 1 {
		return nil, errors.Errorf("phase %q needs at least one shooting interval, got %d", cfg.Name, cfg.ShootingNodes)
	}
	idx := len(prob.phases)
	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("phase_%d", idx)
	}
	scheme := cfg.Scheme
	if scheme == (IntegrationScheme{}) {
		scheme = RungeKutta4()
	}
	resolveSource := func(what string, src *int) (int, error) {
		if src == nil {
			return idx, nil
		}
		if *src < 0 || *src > idx {
			return 0, errors.Errorf("phase %q cannot borrow %s from phase %d: the problem has %d phases",
				name, what, *src, idx)
		}
		return *src, nil
	}
	useStates, err := resolveSource("states", cfg.UseStatesFrom)
	if err != nil {
		return nil, err
	}
	useStatesDot, err := resolveSource("state derivatives", cfg.UseStatesDotFrom)
	if err != nil {
		return nil, err
	}
	useControls, err := resolveSource("controls", cfg.UseControlsFrom)
	if err != nil {
		return nil, err
	}

	stateNodes := cfg.ShootingNodes + 1
	controlNodes := cfg.ControlType.ControlNodes(cfg.ShootingNodes)
	ph := &Phase{
		index:         idx,
		name:          name,
		shootingNodes: cfg.ShootingNodes,
		allocation:    cfg.Allocation,
		scheme:        scheme,
		controlType:   cfg.ControlType,

		useStatesFrom:    useStates,
		useStatesDotFrom: useStatesDot,
		useControlsFrom:  useControls,

		mappings: map[string]*mapping.BiMapping{},
		borrowed: map[optvar.Kind]map[string]bool{},

		states:    optvar.NewContainer(optvar.KindStates, cfg.Allocation, stateNodes),
		statesDot: optvar.NewContainer(optvar.KindStatesDot, cfg.Allocation, stateNodes),
		controls:  optvar.NewContainer(optvar.KindControls, cfg.Allocation, controlNodes),
		algebraic: optvar.NewContainer(optvar.KindAlgebraicStates, cfg.Allocation, stateNodes),

		stateInit:     NewInitialGuessSet(),
		controlInit:   NewInitialGuessSet(),
		algebraicInit: NewInitialGuessSet(),

		stateScaling:     optvar.NewScalingSet(),
		stateDotScaling:  optvar.NewScalingSet(),
		controlScaling:   optvar.NewScalingSet(),
		algebraicScaling: optvar.NewScalingSet(),

		plots: plotting.NewRegistry(),
	}
	prob.phases = append(prob.phases, ph)
	prob.logger.Debugf(
		"added phase %d %q: %d shooting intervals, %s allocation, %s scheme, %s controls",
		idx, name, cfg.ShootingNodes, cfg.Allocation, scheme, cfg.ControlType,
	)
	return ph, nil
}
