package ocp

import (
	"github.com/openmotionlab/trajopt/mapping"
	"github.com/openmotionlab/trajopt/optvar"
	"github.com/openmotionlab/trajopt/plotting"
)

// Phase is one phase of a problem. It owns the per-kind variable
// containers, the per-variable index mappings, the initial-guess and
// scaling stores, and the plot registry that variable configuration
// fills in.
type Phase struct {
	index         int
	name          string
	shootingNodes int
	allocation    optvar.Allocation
	scheme        IntegrationScheme
	controlType   ControlType

	// Cross-phase borrow sources, resolved to this phase's own index
	// when not requested.
	useStatesFrom    int
	useStatesDotFrom int
	useControlsFrom  int

	mappings map[string]*mapping.BiMapping

	// borrowed records, per kind, the names whose symbols alias an
	// earlier phase. Their numeric storage belongs to the source phase.
	borrowed map[optvar.Kind]map[string]bool

	states    *optvar.Container
	statesDot *optvar.Container
	controls  *optvar.Container
	algebraic *optvar.Container

	stateInit     *InitialGuessSet
	controlInit   *InitialGuessSet
	algebraicInit *InitialGuessSet

	stateScaling     *optvar.ScalingSet
	stateDotScaling  *optvar.ScalingSet
	controlScaling   *optvar.ScalingSet
	algebraicScaling *optvar.ScalingSet

	plots *plotting.Registry
}

// Index returns the phase's position in the problem.
func (p *Phase) Index() int {
	return p.index
}

// Name returns the phase's name.
func (p *Phase) Name() string {
	return p.name
}

// ShootingNodes returns the number of shooting intervals.
func (p *Phase) ShootingNodes() int {
	return p.shootingNodes
}

// StateNodes returns the number of state nodes, one more than the
// shooting intervals.
func (p *Phase) StateNodes() int {
	return p.shootingNodes + 1
}

// ControlNodes returns the number of control nodes under the phase's
// control type.
func (p *Phase) ControlNodes() int {
	return p.controlType.ControlNodes(p.shootingNodes)
}

// Allocation returns the phase's variable allocation policy.
func (p *Phase) Allocation() optvar.Allocation {
	return p.allocation
}

// Scheme returns the phase's integration scheme.
func (p *Phase) Scheme() IntegrationScheme {
	return p.scheme
}

// ControlType returns the phase's control type.
func (p *Phase) ControlType() ControlType {
	return p.controlType
}

// UseStatesFrom returns the phase index states are borrowed from, the
// phase's own index when it owns them.
func (p *Phase) UseStatesFrom() int {
	return p.useStatesFrom
}

// UseStatesDotFrom returns the phase index state derivatives are
// borrowed from.
func (p *Phase) UseStatesDotFrom() int {
	return p.useStatesDotFrom
}

// UseControlsFrom returns the phase index controls are borrowed from.
func (p *Phase) UseControlsFrom() int {
	return p.useControlsFrom
}

// States returns the state container.
func (p *Phase) States() *optvar.Container {
	return p.states
}

// StatesDot returns the state-derivative container.
func (p *Phase) StatesDot() *optvar.Container {
	return p.statesDot
}

// Controls returns the control container.
func (p *Phase) Controls() *optvar.Container {
	return p.controls
}

// AlgebraicStates returns the algebraic-state container.
func (p *Phase) AlgebraicStates() *optvar.Container {
	return p.algebraic
}

func (p *Phase) container(kind optvar.Kind) *optvar.Container {
	switch kind {
	case optvar.KindStates:
		return p.states
	case optvar.KindStatesDot:
		return p.statesDot
	case optvar.KindControls:
		return p.controls
	case optvar.KindAlgebraicStates:
		return p.algebraic
	default:
		return nil
	}
}

// StateInit returns the state initial-guess store.
func (p *Phase) StateInit() *InitialGuessSet {
	return p.stateInit
}

// ControlInit returns the control initial-guess store.
func (p *Phase) ControlInit() *InitialGuessSet {
	return p.controlInit
}

// AlgebraicInit returns the algebraic-state initial-guess store.
func (p *Phase) AlgebraicInit() *InitialGuessSet {
	return p.algebraicInit
}

// StateScaling returns the state scaling store.
func (p *Phase) StateScaling() *optvar.ScalingSet {
	return p.stateScaling
}

// StateDotScaling returns the state-derivative scaling store.
func (p *Phase) StateDotScaling() *optvar.ScalingSet {
	return p.stateDotScaling
}

// ControlScaling returns the control scaling store.
func (p *Phase) ControlScaling() *optvar.ScalingSet {
	return p.controlScaling
}

// AlgebraicScaling returns the algebraic-state scaling store.
func (p *Phase) AlgebraicScaling() *optvar.ScalingSet {
	return p.algebraicScaling
}

// Plots returns the phase's plot registry.
func (p *Phase) Plots() *plotting.Registry {
	return p.plots
}

// Borrowed reports whether name's symbols in the given kind alias an
// earlier phase.
func (p *Phase) Borrowed(kind optvar.Kind, name string) bool {
	return p.borrowed[kind][name]
}

func (p *Phase) markBorrowed(kind optvar.Kind, name string) {
	if p.borrowed[kind] == nil {
		p.borrowed[kind] = map[string]bool{}
	}
	p.borrowed[kind][name] = true
}

// Mapping returns the index mapping registered for name.
func (p *Phase) Mapping(name string) (*mapping.BiMapping, bool) {
	bim, ok := p.mappings[name]
	return bim, ok
}

// SetMapping registers the index mapping of name, replacing any previous
// registration. Configuration registers an identity mapping for names
// without one, so only non-identity mappings need declaring, before the
// variable is configured.
func (p *Phase) SetMapping(name string, bim *mapping.BiMapping) {
	p.mappings[name] = bim
}
