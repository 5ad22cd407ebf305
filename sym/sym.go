// Package sym implements the small symbolic-vector kernel the decision
// variable containers are built on. A Symbol is an opaque named scalar
// unknown compared by identity, and a Vector is an ordered column of
// symbol terms. The only algebra supported is concatenation, row
// gathering and elementwise scaling, which is everything variable
// bookkeeping needs; differentiation and general expressions belong to
// the solver side and are out of scope here.
package sym

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Symbol is a named scalar unknown. Two symbols denote the same unknown
// only when they are the same *Symbol; labels may repeat freely.
type Symbol struct {
	label string
}

// NewSymbol allocates a fresh unknown with the given label.
func NewSymbol(label string) *Symbol {
	return &Symbol{label: label}
}

// Label returns the display label of the symbol.
func (s *Symbol) Label() string {
	return s.label
}

// Scalar is one row of a Vector: a symbol together with a multiplicative
// coefficient. The zero Scalar has no symbol and renders as "0".
type Scalar struct {
	sym   *Symbol
	coeff float64
}

// Term wraps a symbol with coefficient one.
func Term(s *Symbol) Scalar {
	return Scalar{sym: s, coeff: 1}
}

// Symbol returns the underlying unknown, nil for the zero Scalar.
func (sc Scalar) Symbol() *Symbol {
	return sc.sym
}

// Coeff returns the multiplicative coefficient.
func (sc Scalar) Coeff() float64 {
	return sc.coeff
}

// Scale returns the scalar multiplied by f. The underlying symbol is
// shared, not copied.
func (sc Scalar) Scale(f float64) Scalar {
	return Scalar{sym: sc.sym, coeff: sc.coeff * f}
}

func (sc Scalar) String() string {
	if sc.sym == nil {
		return "0"
	}
	switch sc.coeff {
	case 1:
		return sc.sym.label
	case -1:
		return "-" + sc.sym.label
	default:
		return strconv.FormatFloat(sc.coeff, 'g', -1, 64) + "*" + sc.sym.label
	}
}

// Vector is an immutable ordered column of scalars. The zero Vector is
// empty and ready to use.
type Vector struct {
	rows []Scalar
}

// NewVector allocates one fresh symbol per label and returns them as a
// column of unit terms.
func NewVector(labels ...string) Vector {
	rows := make([]Scalar, len(labels))
	for i, label := range labels {
		rows[i] = Term(NewSymbol(label))
	}
	return Vector{rows: rows}
}

// FromScalars builds a vector from existing rows.
func FromScalars(rows ...Scalar) Vector {
	out := make([]Scalar, len(rows))
	copy(out, rows)
	return Vector{rows: out}
}

// Vertcat concatenates vectors top to bottom.
func Vertcat(vs ...Vector) Vector {
	n := 0
	for _, v := range vs {
		n += len(v.rows)
	}
	rows := make([]Scalar, 0, n)
	for _, v := range vs {
		rows = append(rows, v.rows...)
	}
	return Vector{rows: rows}
}

// Len returns the number of rows.
func (v Vector) Len() int {
	return len(v.rows)
}

// At returns row i. It panics when i is out of range.
func (v Vector) At(i int) Scalar {
	return v.rows[i]
}

// Rows gathers the given rows into a new vector, preserving the order of
// indices. It panics when an index is out of range.
func (v Vector) Rows(indices []int) Vector {
	rows := make([]Scalar, len(indices))
	for i, idx := range indices {
		rows[i] = v.rows[idx]
	}
	return Vector{rows: rows}
}

// Scale multiplies the vector elementwise by factors. The result shares
// the receiver's symbols.
func (v Vector) Scale(factors []float64) (Vector, error) {
	if len(factors) != len(v.rows) {
		return Vector{}, errors.Errorf("cannot scale a %d-row vector by %d factors", len(v.rows), len(factors))
	}
	rows := make([]Scalar, len(v.rows))
	for i, row := range v.rows {
		rows[i] = row.Scale(factors[i])
	}
	return Vector{rows: rows}, nil
}

// Labels returns the label of every row's symbol, "0" for zero rows.
func (v Vector) Labels() []string {
	out := make([]string, len(v.rows))
	for i, row := range v.rows {
		if row.sym == nil {
			out[i] = "0"
			continue
		}
		out[i] = row.sym.label
	}
	return out
}

func (v Vector) String() string {
	parts := make([]string, len(v.rows))
	for i, row := range v.rows {
		parts[i] = row.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
