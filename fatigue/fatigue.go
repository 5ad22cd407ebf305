// Package fatigue describes how fatigable variables decompose into
// underlying fatigue-state and control variables.
//
// A fatigable variable is declared once by name; each of its scalar
// elements carries a ModelSet describing the meta variants the element
// splits into (for example the negative and positive sides of a torque)
// and, per variant, the fatigue model whose compartments become extra
// states. Phase configuration consumes these declarations to synthesize
// the underlying variables and the composite accessors that let
// downstream code keep referring to the original name.
package fatigue

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Model is the fatigue dynamics applied to one meta variant of a scalar
// element. Its compartments become state variables suffixed onto the
// variant's name.
type Model interface {
	// StateSuffixes returns the compartment names, in declaration order.
	StateSuffixes() []string
	// StateColors returns one plot color per compartment.
	StateColors() []string
}

// ModelSet describes the decomposition of one scalar element: the meta
// variants, the per-variant models, and the control layout.
type ModelSet interface {
	// MetaSuffixes returns the variant names, in declaration order.
	MetaSuffixes() []string
	// Model returns the fatigue model of a variant, nil if the variant is
	// not part of the set.
	Model(meta string) Model
	// SplitControls reports whether each variant gets its own control
	// variable instead of all variants sharing one.
	SplitControls() bool
	// MultiInterface reports whether the set presents all variants behind
	// the original variable name instead of per-variant names.
	MultiInterface() bool
	// ControlColors returns one plot color per variant.
	ControlColors() []string
	// PlotFactors returns the factor each variant's fatigue states are
	// multiplied by when drawn on the combined plot.
	PlotFactors() []float64
}

// Fatigue binds one scalar element of a fatigable variable to its
// decomposition.
type Fatigue struct {
	models ModelSet
}

// Models returns the element's model set.
func (f *Fatigue) Models() ModelSet {
	return f.models
}

// List collects the fatigue declarations of a phase, keyed by fatigable
// variable name with one entry per scalar element.
type List struct {
	names  []string
	byName map[string][]*Fatigue
}

// NewList returns an empty declaration list.
func NewList() *List {
	return &List{byName: map[string][]*Fatigue{}}
}

// Add appends one scalar element's model set under name. Elements keep
// the order they were added in.
func (l *List) Add(name string, models ModelSet) {
	if _, ok := l.byName[name]; !ok {
		l.names = append(l.names, name)
	}
	l.byName[name] = append(l.byName[name], &Fatigue{models: models})
}

// Has reports whether name was declared fatigable.
func (l *List) Has(name string) bool {
	_, ok := l.byName[name]
	return ok
}

// Elements returns the per-element entries of name in declaration order,
// nil if name was never declared.
func (l *List) Elements(name string) []*Fatigue {
	return l.byName[name]
}

// Names returns the declared variable names in declaration order.
func (l *List) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// CheckHomogeneous verifies every element of a fatigable variable
// declares the same decomposition: identical compartment suffixes across
// all variants, one multi-interface flag, one split-controls flag. Mixed
// declarations cannot share the combined plots and composite accessors.
// Each offending element contributes its own error.
func CheckHomogeneous(name string, elements []*Fatigue) error {
	if len(elements) == 0 {
		return errors.Errorf("fatigue for %q has no elements", name)
	}
	ref := elements[0].Models()
	refMetas := ref.MetaSuffixes()
	if len(refMetas) == 0 {
		return errors.Errorf("fatigue for %q has no meta variants", name)
	}
	refSuffixes := ref.Model(refMetas[0]).StateSuffixes()

	var errs error
	for i, elt := range elements {
		set := elt.Models()
		for _, meta := range set.MetaSuffixes() {
			if !stringsEqual(set.Model(meta).StateSuffixes(), refSuffixes) {
				errs = multierr.Append(errs,
					errors.Errorf("element %d: fatigue for %q must be of all the same type", i, name))
				break
			}
		}
		if set.MultiInterface() != ref.MultiInterface() {
			errs = multierr.Append(errs,
				errors.Errorf("element %d: multi-interface must be the same for all the elements", i))
		}
		if set.SplitControls() != ref.SplitControls() {
			errs = multierr.Append(errs,
				errors.Errorf("element %d: split-controls must be the same for all the elements", i))
		}
	}
	return errs
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
