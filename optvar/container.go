package optvar

import (
	"github.com/pkg/errors"

	"github.com/openmotionlab/trajopt/mapping"
	"github.com/openmotionlab/trajopt/sym"
)

// Container holds the scaled and unscaled variable lists of one
// decision-variable kind across a phase's nodes. Under shared-across-
// phase allocation a single list pair serves every node index.
type Container struct {
	kind       Kind
	allocation Allocation
	scaled     []*List
	unscaled   []*List
}

// NewContainer builds the container for nodes nodes. Shared allocation
// backs the container with one list pair regardless of the node count,
// and at least one pair exists even for kinds with no nodes.
func NewContainer(kind Kind, allocation Allocation, nodes int) *Container {
	count := nodes
	if allocation == AllocationSharedAcrossPhase || count < 1 {
		count = 1
	}
	c := &Container{
		kind:       kind,
		allocation: allocation,
		scaled:     make([]*List, count),
		unscaled:   make([]*List, count),
	}
	for i := 0; i < count; i++ {
		c.scaled[i] = NewList("scaled " + kind.String())
		c.unscaled[i] = NewList(kind.String())
	}
	return c
}

// Kind returns the decision-variable kind the container holds.
func (c *Container) Kind() Kind {
	return c.kind
}

// Allocation returns the container's allocation policy.
func (c *Container) Allocation() Allocation {
	return c.allocation
}

// ListCount returns the number of distinct list pairs backing the
// container: one under shared allocation, one per node otherwise.
func (c *Container) ListCount() int {
	return len(c.scaled)
}

// Scaled returns the scaled list serving node. Under shared allocation
// every node resolves to the same list.
func (c *Container) Scaled(node int) *List {
	if c.allocation == AllocationSharedAcrossPhase {
		return c.scaled[0]
	}
	return c.scaled[node]
}

// Unscaled returns the unscaled list serving node. Under shared
// allocation every node resolves to the same list.
func (c *Container) Unscaled(node int) *List {
	if c.allocation == AllocationSharedAcrossPhase {
		return c.unscaled[0]
	}
	return c.unscaled[node]
}

// Has reports whether name is declared in the container's node-0 lists.
func (c *Container) Has(name string) bool {
	if len(c.unscaled) == 0 {
		return false
	}
	return c.unscaled[0].Has(name)
}

// Append registers name into the scaled and unscaled lists serving node
// in one step: the scaled columns are appended as-is, and the unscaled
// list derives its reduced form from the freshly appended scaled element
// and the scaling. Everything is validated before either list mutates, so
// a failed call registers nothing.
func (c *Container) Append(
	node int,
	name string,
	scaledCols, unscaledCols []sym.Vector,
	full sym.Vector,
	bim *mapping.BiMapping,
	scaling *Scaling,
) error {
	sl := c.Scaled(node)
	ul := c.Unscaled(node)
	if err := sl.validateAppend(name, scaledCols, full, bim); err != nil {
		return err
	}
	if err := ul.validateAppend(name, unscaledCols, full, bim); err != nil {
		return err
	}
	if len(unscaledCols) != len(scaledCols) {
		return errors.Errorf("variable %q has %d unscaled columns but %d scaled ones",
			name, len(unscaledCols), len(scaledCols))
	}
	if scaling == nil {
		return errors.Errorf("variable %q needs a scaling", name)
	}
	if scaling.Len() != scaledCols[0].Len() {
		return errors.Errorf("scaling %q has %d elements but variable %q has %d",
			scaling.Name(), scaling.Len(), name, scaledCols[0].Len())
	}

	scaledVar := sl.append(name, scaledCols, full, bim)
	ul.copyFromScaled(name, unscaledCols, full, bim, scaledVar, scaling)
	return nil
}
