package fatigue

import (
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"
)

func newTestXiaTau(split bool) *XiaTau {
	return NewXiaTau(NewXia(100, 100, 5, 10), NewXia(100, 100, 5, 10), split)
}

func TestListOrdering(t *testing.T) {
	l := NewList()
	l.Add("tau", newTestXiaTau(true))
	l.Add("tau", newTestXiaTau(true))
	l.Add("muscles", NewEffort(0.1, 1))

	test.That(t, l.Has("tau"), test.ShouldBeTrue)
	test.That(t, l.Has("q"), test.ShouldBeFalse)
	test.That(t, l.Names(), test.ShouldResemble, []string{"tau", "muscles"})
	test.That(t, l.Elements("tau"), test.ShouldHaveLength, 2)
	test.That(t, l.Elements("muscles"), test.ShouldHaveLength, 1)
	test.That(t, l.Elements("q"), test.ShouldBeNil)
}

func TestModelSurfaces(t *testing.T) {
	xt := newTestXiaTau(true)
	test.That(t, xt.MetaSuffixes(), test.ShouldResemble, []string{"minus", "plus"})
	test.That(t, xt.Model("minus"), test.ShouldEqual, xt.Minus)
	test.That(t, xt.Model("plus"), test.ShouldEqual, xt.Plus)
	test.That(t, xt.Model("sideways"), test.ShouldBeNil)
	test.That(t, xt.MultiInterface(), test.ShouldBeFalse)
	test.That(t, xt.PlotFactors(), test.ShouldResemble, []float64{-1, 1})
	test.That(t, xt.Minus.StateSuffixes(), test.ShouldResemble, []string{"ma", "mr", "mf"})
	test.That(t, len(xt.Minus.StateColors()), test.ShouldEqual, 3)
	test.That(t, len(xt.ControlColors()), test.ShouldEqual, 2)

	e := NewEffort(0.05, 2)
	test.That(t, e.MetaSuffixes(), test.ShouldResemble, []string{"effort"})
	test.That(t, e.Model("effort"), test.ShouldEqual, e)
	test.That(t, e.Model("minus"), test.ShouldBeNil)
	test.That(t, e.MultiInterface(), test.ShouldBeTrue)
	test.That(t, e.SplitControls(), test.ShouldBeFalse)
	test.That(t, e.StateSuffixes(), test.ShouldResemble, []string{"mf"})
}

func TestCheckHomogeneous(t *testing.T) {
	l := NewList()
	l.Add("tau", newTestXiaTau(true))
	l.Add("tau", newTestXiaTau(true))
	test.That(t, CheckHomogeneous("tau", l.Elements("tau")), test.ShouldBeNil)

	test.That(t, CheckHomogeneous("tau", nil), test.ShouldNotBeNil)
}

func TestCheckHomogeneousMixedSuffixes(t *testing.T) {
	// A third element with a different compartment set fails the whole
	// declaration.
	l := NewList()
	l.Add("tau", newTestXiaTau(true))
	l.Add("tau", newTestXiaTau(true))
	l.Add("tau", NewEffort(0.1, 1))

	err := CheckHomogeneous("tau", l.Elements("tau"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "must be of all the same type")
	test.That(t, err.Error(), test.ShouldContainSubstring, "element 2")
}

func TestCheckHomogeneousMixedFlags(t *testing.T) {
	l := NewList()
	l.Add("tau", newTestXiaTau(true))
	l.Add("tau", newTestXiaTau(false))
	l.Add("tau", newTestXiaTau(false))

	err := CheckHomogeneous("tau", l.Elements("tau"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "split-controls must be the same")
	// Both later elements disagree with the reference; each reports.
	test.That(t, multierr.Errors(err), test.ShouldHaveLength, 2)

	mixed := NewList()
	mixed.Add("muscles", NewEffort(0.1, 1))
	mixed.Add("muscles", NewEffort(0.1, 1))
	test.That(t, CheckHomogeneous("muscles", mixed.Elements("muscles")), test.ShouldBeNil)
}
