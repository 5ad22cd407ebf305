package ocp

import (
	"github.com/pkg/errors"

	"github.com/openmotionlab/trajopt/biomodel"
	"github.com/openmotionlab/trajopt/fatigue"
)

// ConfigureModelVariables declares the canonical variable triple of a
// musculoskeletal model into the phase at phaseIdx: the generalized
// coordinates q as states, the velocities qdot as states and state
// derivatives, and the joint torques tau as controls. The model's
// degree-of-freedom names size every default mapping. A fatigue list
// naming tau routes its configuration through the fatigue decomposition.
func (prob *Problem) ConfigureModelVariables(phaseIdx int, model biomodel.Model, fat *fatigue.List) error {
	dofNames := model.DofNames()
	if len(dofNames) != model.NumQ() {
		return errors.Errorf("model %q names %d degrees of freedom but has %d coordinates",
			model.Name(), len(dofNames), model.NumQ())
	}
	if model.NumTau() > len(dofNames) {
		return errors.Errorf("model %q has more torques (%d) than degrees of freedom (%d)",
			model.Name(), model.NumTau(), len(dofNames))
	}

	if err := prob.ConfigureNewVariable(phaseIdx, VariableConfig{
		Name:     "q",
		Elements: dofNames,
		AsStates: true,
	}); err != nil {
		return errors.Wrap(err, "configuring q")
	}
	if err := prob.ConfigureNewVariable(phaseIdx, VariableConfig{
		Name:        "qdot",
		Elements:    dofNames,
		AsStates:    true,
		AsStatesDot: true,
	}); err != nil {
		return errors.Wrap(err, "configuring qdot")
	}
	if err := prob.ConfigureNewVariable(phaseIdx, VariableConfig{
		Name:       "tau",
		Elements:   dofNames[:model.NumTau()],
		AsControls: true,
		Fatigue:    fat,
	}); err != nil {
		return errors.Wrap(err, "configuring tau")
	}
	return nil
}
