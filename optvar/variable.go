package optvar

import (
	"github.com/pkg/errors"

	"github.com/openmotionlab/trajopt/mapping"
	"github.com/openmotionlab/trajopt/sym"
)

// ErrNoParent is returned when interval segments are requested from a
// variable that no list owns. The transient "all" and "some" accessors
// are the usual case; they expose indices and the full form only.
var ErrNoParent = errors.New("variable was not created by a list and has no interval columns")

// Variable is a named view into its parent list: an index range of the
// list's concatenated vectors, the full-space symbolic form, and the
// index mapping between the two spaces.
type Variable struct {
	name    string
	full    sym.Vector
	indices []int
	bim     *mapping.BiMapping
	parent  *List
	columns []sym.Vector
}

// Name returns the variable name.
func (v *Variable) Name() string {
	return v.name
}

// Len returns the reduced-dimension size, the length of the index range.
func (v *Variable) Len() int {
	return len(v.indices)
}

// Indices returns a copy of the rows this variable occupies in its parent
// list's concatenated vectors.
func (v *Variable) Indices() []int {
	out := make([]int, len(v.indices))
	copy(out, v.indices)
	return out
}

// Mapping returns the variable's index mapping, nil for the transient
// "all" and "some" accessors.
func (v *Variable) Mapping() *mapping.BiMapping {
	return v.bim
}

// Full returns the full-space symbolic form of the variable.
func (v *Variable) Full() sym.Vector {
	return v.full
}

// Columns returns the per-interval evaluation columns the variable was
// registered with: first the interval start, last the interval end, any
// middle entries the intermediate stages. It is nil for fake elements and
// the transient accessors.
func (v *Variable) Columns() []sym.Vector {
	if v.columns == nil {
		return nil
	}
	out := make([]sym.Vector, len(v.columns))
	copy(out, v.columns)
	return out
}

// StartSegment returns the variable's rows of the parent's concatenated
// interval-start vector.
func (v *Variable) StartSegment() (sym.Vector, error) {
	if v.parent == nil {
		return sym.Vector{}, errors.Wrap(ErrNoParent, v.name)
	}
	return v.parent.cxStart.Rows(v.indices), nil
}

// EndSegment returns the variable's rows of the parent's concatenated
// interval-end vector.
func (v *Variable) EndSegment() (sym.Vector, error) {
	if v.parent == nil {
		return sym.Vector{}, errors.Wrap(ErrNoParent, v.name)
	}
	return v.parent.cxEnd.Rows(v.indices), nil
}

// reducedSegment returns the variable's rows of the parent's reduced
// symbolic form.
func (v *Variable) reducedSegment() (sym.Vector, error) {
	if v.parent == nil {
		return sym.Vector{}, errors.Wrap(ErrNoParent, v.name)
	}
	return v.parent.reduced.Rows(v.indices), nil
}
