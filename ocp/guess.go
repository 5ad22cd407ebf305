package ocp

import (
	"github.com/pkg/errors"

	"github.com/openmotionlab/trajopt/optvar"
)

// InitialGuessSet stores per-variable initial guesses for one variable
// kind of a phase. Guesses are sized to the variable's reduced
// dimension.
type InitialGuessSet struct {
	names  []string
	byName map[string][]float64
}

// NewInitialGuessSet returns an empty set.
func NewInitialGuessSet() *InitialGuessSet {
	return &InitialGuessSet{byName: map[string][]float64{}}
}

// Add declares the guess for name, keeping a copy. Redeclaring a name
// fails.
func (s *InitialGuessSet) Add(name string, values []float64) error {
	if _, ok := s.byName[name]; ok {
		return errors.Errorf("an initial guess for %q was already declared", name)
	}
	owned := make([]float64, len(values))
	copy(owned, values)
	s.names = append(s.names, name)
	s.byName[name] = owned
	return nil
}

// Has reports whether a guess for name was declared.
func (s *InitialGuessSet) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Get returns a copy of the guess for name.
func (s *InitialGuessSet) Get(name string) ([]float64, error) {
	values, ok := s.byName[name]
	if !ok {
		return nil, &optvar.NotFoundError{Key: name, List: "initial-guess"}
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out, nil
}

// Names returns the declared names in declaration order.
func (s *InitialGuessSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of declared guesses.
func (s *InitialGuessSet) Len() int {
	return len(s.byName)
}
