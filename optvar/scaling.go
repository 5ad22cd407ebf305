package optvar

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Scaling is a named scale vector with one strictly positive entry per
// reduced-dimension element of its variable.
type Scaling struct {
	name  string
	scale []float64
}

// NewScaling validates and stores a copy of the scale vector.
func NewScaling(name string, scale []float64) (*Scaling, error) {
	if len(scale) == 0 {
		return nil, errors.Errorf("scaling %q needs at least one element", name)
	}
	for i, v := range scale {
		if v <= 0 {
			return nil, errors.Errorf("scaling %q element %d must be strictly positive, got %v", name, i, v)
		}
	}
	owned := make([]float64, len(scale))
	copy(owned, scale)
	return &Scaling{name: name, scale: owned}, nil
}

// Name returns the variable name the scaling belongs to.
func (s *Scaling) Name() string {
	return s.name
}

// Len returns the number of scale entries.
func (s *Scaling) Len() int {
	return len(s.scale)
}

// Values returns a copy of the scale entries.
func (s *Scaling) Values() []float64 {
	out := make([]float64, len(s.scale))
	copy(out, s.scale)
	return out
}

// ToVector tiles the scale entries into a flat column repeated
// repetitions times. count must match the stored vector's length.
func (s *Scaling) ToVector(count, repetitions int) (*mat.VecDense, error) {
	if count != len(s.scale) {
		return nil, errors.Errorf("scaling %q has %d elements, not %d", s.name, len(s.scale), count)
	}
	if repetitions < 1 {
		return nil, errors.Errorf("scaling %q needs at least one repetition, got %d", s.name, repetitions)
	}
	out := mat.NewVecDense(count*repetitions, nil)
	for rep := 0; rep < repetitions; rep++ {
		for i, v := range s.scale {
			out.SetVec(rep*count+i, v)
		}
	}
	return out, nil
}

// ToArray tiles the scale entries into a count by repetitions grid, one
// column per repetition. count must match the stored vector's length.
func (s *Scaling) ToArray(count, repetitions int) (*mat.Dense, error) {
	if count != len(s.scale) {
		return nil, errors.Errorf("scaling %q has %d elements, not %d", s.name, len(s.scale), count)
	}
	if repetitions < 1 {
		return nil, errors.Errorf("scaling %q needs at least one repetition, got %d", s.name, repetitions)
	}
	out := mat.NewDense(count, repetitions, nil)
	for rep := 0; rep < repetitions; rep++ {
		out.SetCol(rep, s.scale)
	}
	return out, nil
}

// ScalingSet stores the per-variable scalings of one phase and kind, in
// declaration order.
type ScalingSet struct {
	names  []string
	byName map[string]*Scaling
}

// NewScalingSet returns an empty set.
func NewScalingSet() *ScalingSet {
	return &ScalingSet{byName: map[string]*Scaling{}}
}

// Add stores a copy of the scale vector under name. Adding a name twice
// is an error.
func (ss *ScalingSet) Add(name string, scale []float64) error {
	if _, ok := ss.byName[name]; ok {
		return errors.Errorf("scaling %q was already declared", name)
	}
	s, err := NewScaling(name, scale)
	if err != nil {
		return err
	}
	ss.names = append(ss.names, name)
	ss.byName[name] = s
	return nil
}

// Has reports whether a scaling was declared under name.
func (ss *ScalingSet) Has(name string) bool {
	_, ok := ss.byName[name]
	return ok
}

// Get returns the scaling declared under name.
func (ss *ScalingSet) Get(name string) (*Scaling, error) {
	s, ok := ss.byName[name]
	if !ok {
		return nil, &NotFoundError{Key: name, List: "scaling"}
	}
	return s, nil
}

// Names returns the declared names in declaration order.
func (ss *ScalingSet) Names() []string {
	out := make([]string, len(ss.names))
	copy(out, ss.names)
	return out
}

// Len returns the number of declared scalings.
func (ss *ScalingSet) Len() int {
	return len(ss.names)
}
