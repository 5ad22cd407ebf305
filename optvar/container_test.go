package optvar

import (
	"testing"

	"go.viam.com/test"

	"github.com/openmotionlab/trajopt/mapping"
	"github.com/openmotionlab/trajopt/sym"
)

func TestContainerSharedAllocation(t *testing.T) {
	c := NewContainer(KindStates, AllocationSharedAcrossPhase, 11)
	test.That(t, c.Kind(), test.ShouldEqual, KindStates)
	test.That(t, c.Allocation(), test.ShouldEqual, AllocationSharedAcrossPhase)
	test.That(t, c.ListCount(), test.ShouldEqual, 1)

	// Every node resolves to the same backing pair.
	test.That(t, c.Scaled(0) == c.Scaled(10), test.ShouldBeTrue)
	test.That(t, c.Unscaled(0) == c.Unscaled(10), test.ShouldBeTrue)
	test.That(t, c.Scaled(0).Label(), test.ShouldEqual, "scaled states")
	test.That(t, c.Unscaled(0).Label(), test.ShouldEqual, "states")
}

func TestContainerPerNodeAllocation(t *testing.T) {
	c := NewContainer(KindControls, AllocationOnePerNode, 3)
	test.That(t, c.ListCount(), test.ShouldEqual, 3)
	test.That(t, c.Scaled(0) == c.Scaled(1), test.ShouldBeFalse)
	test.That(t, c.Scaled(1) == c.Scaled(2), test.ShouldBeFalse)
	test.That(t, c.Unscaled(0) == c.Unscaled(1), test.ShouldBeFalse)
}

func TestContainerAppend(t *testing.T) {
	c := NewContainer(KindControls, AllocationOnePerNode, 2)
	scaling, err := NewScaling("tau", []float64{10, 20})
	test.That(t, err, test.ShouldBeNil)

	scaledCols := newTestColumns("tau", 2, 3)
	unscaledCols := make([]sym.Vector, len(scaledCols))
	for i, col := range scaledCols {
		unscaledCols[i], err = col.Scale(scaling.Values())
		test.That(t, err, test.ShouldBeNil)
	}
	full := newTestFull("tau", 2)
	bim := mapping.NewIdentityBiMapping(2)

	err = c.Append(0, "tau", scaledCols, unscaledCols, full, bim, scaling)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.Has("tau"), test.ShouldBeTrue)

	// Both views registered the element, and only at node 0.
	test.That(t, c.Scaled(0).Has("tau"), test.ShouldBeTrue)
	test.That(t, c.Unscaled(0).Has("tau"), test.ShouldBeTrue)
	test.That(t, c.Scaled(1).Has("tau"), test.ShouldBeFalse)

	// The unscaled reduced form shares the scaled placeholders with the
	// scale folded in.
	sr := c.Scaled(0).Reduced()
	ur := c.Unscaled(0).Reduced()
	test.That(t, ur.Len(), test.ShouldEqual, 2)
	for i := 0; i < 2; i++ {
		test.That(t, ur.At(i).Symbol() == sr.At(i).Symbol(), test.ShouldBeTrue)
	}
	test.That(t, ur.At(0).Coeff(), test.ShouldEqual, 10.0)
	test.That(t, ur.At(1).Coeff(), test.ShouldEqual, 20.0)
}

func TestContainerAppendNoPartialState(t *testing.T) {
	c := NewContainer(KindStates, AllocationSharedAcrossPhase, 5)
	scaledCols := newTestColumns("q", 2, 2)
	unscaledCols := newTestColumns("q", 2, 2)
	full := newTestFull("q", 2)
	bim := mapping.NewIdentityBiMapping(2)

	err := c.Append(0, "q", scaledCols, unscaledCols, full, bim, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "needs a scaling")

	short, err := NewScaling("q", []float64{1})
	test.That(t, err, test.ShouldBeNil)
	err = c.Append(0, "q", scaledCols, unscaledCols, full, bim, short)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "has 1 elements")

	err = c.Append(0, "q", scaledCols, unscaledCols[:1], full, bim, short)
	test.That(t, err, test.ShouldNotBeNil)

	// The failed calls left both views untouched.
	test.That(t, c.Has("q"), test.ShouldBeFalse)
	test.That(t, c.Scaled(0).Shape(), test.ShouldEqual, 0)
	test.That(t, c.Unscaled(0).Shape(), test.ShouldEqual, 0)
}
