package optvar

import (
	"github.com/pkg/errors"

	"github.com/openmotionlab/trajopt/mapping"
	"github.com/openmotionlab/trajopt/sym"
)

// List is the per-node container of one decision-variable kind. Real
// elements occupy disjoint contiguous ranges of the concatenated vectors
// in declaration order; fake elements alias ranges real elements already
// own without growing anything.
type List struct {
	label    string
	elements []*Variable
	fakes    []*Variable

	cxStart sym.Vector
	cxEnd   sym.Vector
	cxMid   []sym.Vector
	reduced sym.Vector
}

// NewList returns an empty list labeled for error messages, typically
// with the kind it holds.
func NewList(label string) *List {
	return &List{label: label}
}

// Label returns the list's label.
func (l *List) Label() string {
	return l.label
}

// Get resolves a key to an element. Lookups by name try real elements
// first, fake elements second. The name "all" and the multi-name form
// synthesize transient composite accessors that no list owns.
func (l *List) Get(key Key) (*Variable, error) {
	switch key.kind {
	case keyByIndex:
		if key.index < 0 || key.index >= len(l.elements) {
			return nil, &NotFoundError{Key: key.String(), List: l.label}
		}
		return l.elements[key.index], nil

	case keyByName:
		name := key.names[0]
		if name == "all" {
			var indices []int
			for _, elt := range l.elements {
				indices = append(indices, elt.indices...)
			}
			return &Variable{name: "all", full: l.Full(), indices: indices}, nil
		}
		for _, elt := range l.elements {
			if elt.name == name {
				return elt, nil
			}
		}
		for _, elt := range l.fakes {
			if elt.name == name {
				return elt, nil
			}
		}
		return nil, &NotFoundError{Key: key.String(), List: l.label}

	case keyByNames:
		wanted := make(map[string]bool, len(key.names))
		for _, name := range key.names {
			wanted[name] = true
		}
		// The union is built in list-declaration order, not in the order
		// the caller gave the names.
		var fulls []sym.Vector
		var indices []int
		for _, elt := range l.elements {
			if wanted[elt.name] {
				fulls = append(fulls, elt.full)
				indices = append(indices, elt.indices...)
			}
		}
		return &Variable{name: "some", full: sym.Vertcat(fulls...), indices: indices}, nil

	default:
		return nil, &NotFoundError{Key: key.String(), List: l.label}
	}
}

// Has reports whether name is declared as a real or fake element.
func (l *List) Has(name string) bool {
	for _, elt := range l.elements {
		if elt.name == name {
			return true
		}
	}
	for _, elt := range l.fakes {
		if elt.name == name {
			return true
		}
	}
	return false
}

// Keys returns the real element names in declaration order.
func (l *List) Keys() []string {
	out := make([]string, len(l.elements))
	for i, elt := range l.elements {
		out[i] = elt.name
	}
	return out
}

// Len returns the number of real elements.
func (l *List) Len() int {
	return len(l.elements)
}

// Shape returns the total width of the concatenated vectors, the sum of
// every real element's range length.
func (l *List) Shape() int {
	return l.cxStart.Len()
}

// CxStart returns the concatenated interval-start vector.
func (l *List) CxStart() sym.Vector {
	return l.cxStart
}

// CxEnd returns the concatenated interval-end vector.
func (l *List) CxEnd() sym.Vector {
	return l.cxEnd
}

// CxIntermediates returns the concatenated intermediate-stage vectors,
// aligned by stage index. Stages later variables never reported stay at
// the width of the variables that did.
func (l *List) CxIntermediates() []sym.Vector {
	out := make([]sym.Vector, len(l.cxMid))
	copy(out, l.cxMid)
	return out
}

// Reduced returns the reduced symbolic form of the list.
func (l *List) Reduced() sym.Vector {
	return l.reduced
}

// Full returns the full-space forms of every real element concatenated.
func (l *List) Full() sym.Vector {
	fulls := make([]sym.Vector, len(l.elements))
	for i, elt := range l.elements {
		fulls[i] = elt.full
	}
	return sym.Vertcat(fulls...)
}

func (l *List) validateAppend(name string, columns []sym.Vector, full sym.Vector, bim *mapping.BiMapping) error {
	if bim == nil {
		return errors.Errorf("variable %q needs an index mapping", name)
	}
	if len(columns) < 2 {
		return errors.Errorf("variable %q needs at least the interval start and end columns, got %d", name, len(columns))
	}
	rows := columns[0].Len()
	for i, col := range columns {
		if col.Len() != rows {
			return errors.Errorf("variable %q has ragged columns: column %d has %d rows, want %d", name, i, col.Len(), rows)
		}
	}
	if rows != bim.ToFirst().Len() {
		return errors.Errorf("variable %q columns have %d rows but the mapping's reduced size is %d",
			name, rows, bim.ToFirst().Len())
	}
	if full.Len() != bim.ToSecond().Len() {
		return errors.Errorf("variable %q full form has %d rows but the mapping's full size is %d",
			name, full.Len(), bim.ToSecond().Len())
	}
	return nil
}

// grow extends the concatenated vectors with the variable's columns and
// returns the index range the new element occupies.
func (l *List) grow(columns []sym.Vector) []int {
	start := l.cxStart.Len()
	rows := columns[0].Len()
	indices := make([]int, rows)
	for i := range indices {
		indices[i] = start + i
	}
	l.cxStart = sym.Vertcat(l.cxStart, columns[0])
	l.cxEnd = sym.Vertcat(l.cxEnd, columns[len(columns)-1])
	for i, col := range columns[1 : len(columns)-1] {
		if i >= len(l.cxMid) {
			l.cxMid = append(l.cxMid, col)
		} else {
			l.cxMid[i] = sym.Vertcat(l.cxMid[i], col)
		}
	}
	return indices
}

// Append registers a new real element. The first column extends the
// interval-start vector, the last the interval-end vector, and middle
// columns accumulate into the stage-aligned intermediates. The reduced
// form grows by a fresh placeholder of matching width, and the element
// takes the next contiguous index range.
func (l *List) Append(name string, columns []sym.Vector, full sym.Vector, bim *mapping.BiMapping) error {
	if err := l.validateAppend(name, columns, full, bim); err != nil {
		return err
	}
	l.append(name, columns, full, bim)
	return nil
}

func (l *List) append(name string, columns []sym.Vector, full sym.Vector, bim *mapping.BiMapping) *Variable {
	indices := l.grow(columns)
	labels := make([]string, len(indices))
	for i := range labels {
		labels[i] = "var"
	}
	l.reduced = sym.Vertcat(l.reduced, sym.NewVector(labels...))

	owned := make([]sym.Vector, len(columns))
	copy(owned, columns)
	elt := &Variable{name: name, full: full, indices: indices, bim: bim, parent: l, columns: owned}
	l.elements = append(l.elements, elt)
	return elt
}

// CopyFromScaled grows the list exactly like Append, except the reduced
// placeholder is not fresh: it is the scaled variable's reduced segment
// multiplied elementwise by the scaling. This is how the unscaled view of
// a variable declared in the scaled view is produced without declaring
// new symbols.
func (l *List) CopyFromScaled(
	name string,
	columns []sym.Vector,
	full sym.Vector,
	bim *mapping.BiMapping,
	scaledVar *Variable,
	scaling *Scaling,
) error {
	if err := l.validateAppend(name, columns, full, bim); err != nil {
		return err
	}
	if err := l.validateCopyFromScaled(name, columns, scaledVar, scaling); err != nil {
		return err
	}
	l.copyFromScaled(name, columns, full, bim, scaledVar, scaling)
	return nil
}

func (l *List) validateCopyFromScaled(name string, columns []sym.Vector, scaledVar *Variable, scaling *Scaling) error {
	if scaledVar == nil || scaledVar.parent == nil {
		return errors.Errorf("variable %q needs a list-owned scaled counterpart to derive its reduced form from", name)
	}
	if scaling == nil {
		return errors.Errorf("variable %q needs a scaling to derive its reduced form", name)
	}
	if scaledVar.Len() != columns[0].Len() {
		return errors.Errorf("variable %q columns have %d rows but its scaled counterpart has %d",
			name, columns[0].Len(), scaledVar.Len())
	}
	if scaling.Len() != scaledVar.Len() {
		return errors.Errorf("scaling %q has %d elements but variable %q has %d",
			scaling.Name(), scaling.Len(), name, scaledVar.Len())
	}
	return nil
}

func (l *List) copyFromScaled(
	name string,
	columns []sym.Vector,
	full sym.Vector,
	bim *mapping.BiMapping,
	scaledVar *Variable,
	scaling *Scaling,
) *Variable {
	indices := l.grow(columns)
	// Validation guarantees the segment and scaling lengths agree.
	seg, _ := scaledVar.reducedSegment()
	scaledSeg, _ := seg.Scale(scaling.Values())
	l.reduced = sym.Vertcat(l.reduced, scaledSeg)

	owned := make([]sym.Vector, len(columns))
	copy(owned, columns)
	elt := &Variable{name: name, full: full, indices: indices, bim: bim, parent: l, columns: owned}
	l.elements = append(l.elements, elt)
	return elt
}

// AppendFake registers a composite accessor that resolves to index ranges
// real elements already own. The concatenated vectors do not grow.
func (l *List) AppendFake(name string, indices []int, full sym.Vector, bim *mapping.BiMapping) error {
	if bim == nil {
		return errors.Errorf("fake element %q needs an index mapping", name)
	}
	if len(indices) != bim.ToFirst().Len() {
		return errors.Errorf("fake element %q has %d indices but the mapping's reduced size is %d",
			name, len(indices), bim.ToFirst().Len())
	}
	if full.Len() != bim.ToSecond().Len() {
		return errors.Errorf("fake element %q full form has %d rows but the mapping's full size is %d",
			name, full.Len(), bim.ToSecond().Len())
	}
	covered := make(map[int]bool, l.Shape())
	for _, elt := range l.elements {
		for _, idx := range elt.indices {
			covered[idx] = true
		}
	}
	for _, idx := range indices {
		if !covered[idx] {
			return errors.Errorf("fake element %q references row %d which no real element owns", name, idx)
		}
	}
	owned := make([]int, len(indices))
	copy(owned, indices)
	l.fakes = append(l.fakes, &Variable{name: name, full: full, indices: owned, bim: bim, parent: l})
	return nil
}
