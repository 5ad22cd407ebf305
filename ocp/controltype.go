package ocp

// ControlType is how a phase's controls evolve across each shooting
// interval. It fixes the number of control nodes and how control plots
// are drawn.
type ControlType int

const (
	// ControlTypeConstant holds one control value per interval.
	ControlTypeConstant ControlType = iota
	// ControlTypeConstantWithLastNode additionally declares a control at
	// the final node.
	ControlTypeConstantWithLastNode
	// ControlTypeLinearContinuous interpolates controls linearly and
	// continuously across nodes.
	ControlTypeLinearContinuous
	// ControlTypeNone declares no controls at all.
	ControlTypeNone
)

func (ct ControlType) String() string {
	switch ct {
	case ControlTypeConstant:
		return "constant"
	case ControlTypeConstantWithLastNode:
		return "constant-with-last-node"
	case ControlTypeLinearContinuous:
		return "linear-continuous"
	case ControlTypeNone:
		return "none"
	default:
		return "unknown"
	}
}

// ControlNodes returns the number of control nodes for shootingNodes
// shooting intervals.
func (ct ControlType) ControlNodes(shootingNodes int) int {
	switch ct {
	case ControlTypeConstant:
		return shootingNodes
	case ControlTypeConstantWithLastNode, ControlTypeLinearContinuous:
		return shootingNodes + 1
	default:
		return 0
	}
}
