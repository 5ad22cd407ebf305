package biomodel

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const gravity = 9.81

// Pendulum is a single point mass on a massless rod, rotating about the
// origin in the XZ plane. The angle is measured from straight down.
type Pendulum struct {
	// Mass is the bob mass in kg.
	Mass float64
	// Length is the rod length in m.
	Length float64
}

// NewPendulum returns a pendulum with the given bob mass and rod length.
func NewPendulum(mass, length float64) *Pendulum {
	return &Pendulum{Mass: mass, Length: length}
}

// Name returns "pendulum".
func (p *Pendulum) Name() string {
	return "pendulum"
}

// NumQ returns 1.
func (p *Pendulum) NumQ() int {
	return 1
}

// NumQdot returns 1.
func (p *Pendulum) NumQdot() int {
	return 1
}

// NumTau returns 1.
func (p *Pendulum) NumTau() int {
	return 1
}

// DofNames returns the single rotational degree of freedom.
func (p *Pendulum) DofNames() []string {
	return []string{"theta"}
}

func (p *Pendulum) checkLen(kind string, values []float64, want int) error {
	if len(values) != want {
		return errors.Errorf("model %q expects %d %s, got %d", p.Name(), want, kind, len(values))
	}
	return nil
}

// MassMatrix returns the 1x1 matrix m*l^2.
func (p *Pendulum) MassMatrix(q []float64) (*mat.SymDense, error) {
	if err := p.checkLen("coordinates", q, 1); err != nil {
		return nil, err
	}
	return mat.NewSymDense(1, []float64{p.Mass * p.Length * p.Length}), nil
}

// ForwardDynamics returns the angular acceleration produced by tau.
func (p *Pendulum) ForwardDynamics(q, qdot, tau []float64) ([]float64, error) {
	if err := p.checkLen("coordinates", q, 1); err != nil {
		return nil, err
	}
	if err := p.checkLen("velocities", qdot, 1); err != nil {
		return nil, err
	}
	if err := p.checkLen("torques", tau, 1); err != nil {
		return nil, err
	}
	qddot := (tau[0] - p.Mass*gravity*p.Length*math.Sin(q[0])) / (p.Mass * p.Length * p.Length)
	return []float64{qddot}, nil
}

// Markers returns the pivot and the bob position.
func (p *Pendulum) Markers(q []float64) ([]r3.Vector, error) {
	if err := p.checkLen("coordinates", q, 1); err != nil {
		return nil, err
	}
	return []r3.Vector{
		{},
		{X: p.Length * math.Sin(q[0]), Z: -p.Length * math.Cos(q[0])},
	}, nil
}
