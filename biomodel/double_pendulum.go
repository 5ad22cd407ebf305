package biomodel

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DoublePendulum is two point masses on massless rods in the XZ plane.
// Both angles are absolute, measured from straight down.
type DoublePendulum struct {
	Mass1   float64
	Mass2   float64
	Length1 float64
	Length2 float64
}

// NewDoublePendulum returns a double pendulum with the given masses and
// rod lengths.
func NewDoublePendulum(mass1, length1, mass2, length2 float64) *DoublePendulum {
	return &DoublePendulum{Mass1: mass1, Mass2: mass2, Length1: length1, Length2: length2}
}

// Name returns "double_pendulum".
func (p *DoublePendulum) Name() string {
	return "double_pendulum"
}

// NumQ returns 2.
func (p *DoublePendulum) NumQ() int {
	return 2
}

// NumQdot returns 2.
func (p *DoublePendulum) NumQdot() int {
	return 2
}

// NumTau returns 2.
func (p *DoublePendulum) NumTau() int {
	return 2
}

// DofNames returns the two rotational degrees of freedom.
func (p *DoublePendulum) DofNames() []string {
	return []string{"theta_1", "theta_2"}
}

func (p *DoublePendulum) checkLen(kind string, values []float64, want int) error {
	if len(values) != want {
		return errors.Errorf("model %q expects %d %s, got %d", p.Name(), want, kind, len(values))
	}
	return nil
}

// MassMatrix returns the 2x2 joint-space mass matrix at q.
func (p *DoublePendulum) MassMatrix(q []float64) (*mat.SymDense, error) {
	if err := p.checkLen("coordinates", q, 2); err != nil {
		return nil, err
	}
	coupling := p.Mass2 * p.Length1 * p.Length2 * math.Cos(q[0]-q[1])
	return mat.NewSymDense(2, []float64{
		(p.Mass1 + p.Mass2) * p.Length1 * p.Length1, coupling,
		coupling, p.Mass2 * p.Length2 * p.Length2,
	}), nil
}

// ForwardDynamics solves the 2x2 joint-space system for the angular
// accelerations produced by tau.
func (p *DoublePendulum) ForwardDynamics(q, qdot, tau []float64) ([]float64, error) {
	if err := p.checkLen("coordinates", q, 2); err != nil {
		return nil, err
	}
	if err := p.checkLen("velocities", qdot, 2); err != nil {
		return nil, err
	}
	if err := p.checkLen("torques", tau, 2); err != nil {
		return nil, err
	}
	massMatrix, err := p.MassMatrix(q)
	if err != nil {
		return nil, err
	}
	coriolis := p.Mass2 * p.Length1 * p.Length2 * math.Sin(q[0]-q[1])
	rhs := mat.NewVecDense(2, []float64{
		tau[0] - coriolis*qdot[1]*qdot[1] - (p.Mass1+p.Mass2)*gravity*p.Length1*math.Sin(q[0]),
		tau[1] + coriolis*qdot[0]*qdot[0] - p.Mass2*gravity*p.Length2*math.Sin(q[1]),
	})
	var qddot mat.VecDense
	if err := qddot.SolveVec(massMatrix, rhs); err != nil {
		return nil, errors.Wrapf(err, "model %q mass matrix is singular at q=%v", p.Name(), q)
	}
	return []float64{qddot.AtVec(0), qddot.AtVec(1)}, nil
}

// Markers returns the pivot, the elbow and the end-effector positions.
func (p *DoublePendulum) Markers(q []float64) ([]r3.Vector, error) {
	if err := p.checkLen("coordinates", q, 2); err != nil {
		return nil, err
	}
	elbow := r3.Vector{X: p.Length1 * math.Sin(q[0]), Z: -p.Length1 * math.Cos(q[0])}
	tip := elbow.Add(r3.Vector{X: p.Length2 * math.Sin(q[1]), Z: -p.Length2 * math.Cos(q[1])})
	return []r3.Vector{{}, elbow, tip}, nil
}
