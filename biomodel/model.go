// Package biomodel defines the biomechanical-model queries phase
// configuration and the examples rely on. Models are purely numeric;
// symbolic work happens elsewhere.
package biomodel

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Model is a musculoskeletal model. Configuration only needs the counts
// and names to size variables; the dynamics queries serve the examples
// and sanity tests.
type Model interface {
	// Name returns the model's name.
	Name() string
	// NumQ returns the number of generalized coordinates.
	NumQ() int
	// NumQdot returns the number of generalized velocities.
	NumQdot() int
	// NumTau returns the number of joint torques.
	NumTau() int
	// DofNames returns one name per degree of freedom.
	DofNames() []string
	// MassMatrix returns the joint-space mass matrix at q.
	MassMatrix(q []float64) (*mat.SymDense, error)
	// ForwardDynamics returns the generalized accelerations produced by
	// tau at the given configuration and velocities.
	ForwardDynamics(q, qdot, tau []float64) ([]float64, error)
	// Markers returns the model's marker positions at q.
	Markers(q []float64) ([]r3.Vector, error)
}
