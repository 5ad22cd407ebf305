// Package optvar implements the decision-variable containers of a phase:
// named scaled and unscaled symbolic variables, their per-interval
// columns, index bookkeeping and scaling stores. Containers are built
// incrementally during phase configuration and read by every downstream
// consumer afterwards.
package optvar

// Kind enumerates the decision-variable containers a phase owns.
type Kind int

const (
	// KindStates is the state variable set.
	KindStates Kind = iota
	// KindControls is the control variable set.
	KindControls
	// KindStatesDot is the state-derivative variable set.
	KindStatesDot
	// KindAlgebraicStates is the algebraic state variable set.
	KindAlgebraicStates
)

func (k Kind) String() string {
	switch k {
	case KindStates:
		return "states"
	case KindControls:
		return "controls"
	case KindStatesDot:
		return "states_dot"
	case KindAlgebraicStates:
		return "algebraic_states"
	default:
		return "unknown"
	}
}

// Allocation selects how many distinct symbol sets a phase allocates for
// each of its variables.
type Allocation int

const (
	// AllocationSharedAcrossPhase allocates one symbol set serving every
	// node of the phase.
	AllocationSharedAcrossPhase Allocation = iota
	// AllocationOnePerNode allocates a fresh symbol set per node.
	AllocationOnePerNode
)

func (a Allocation) String() string {
	switch a {
	case AllocationSharedAcrossPhase:
		return "shared-across-phase"
	case AllocationOnePerNode:
		return "one-per-node"
	default:
		return "unknown"
	}
}
