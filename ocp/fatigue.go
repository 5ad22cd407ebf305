package ocp

import (
	"github.com/pkg/errors"

	"github.com/openmotionlab/trajopt/fatigue"
	"github.com/openmotionlab/trajopt/mapping"
	"github.com/openmotionlab/trajopt/optvar"
	"github.com/openmotionlab/trajopt/plotting"
	"github.com/openmotionlab/trajopt/sym"
)

// manageFatigue intercepts the configuration of a fatigable name. It
// replaces the single declared variable with the underlying per-variant
// control and compartment-state variables, draws them onto two combined
// plots, and publishes fake accessors so downstream consumers keep
// addressing the original name. The boolean reports whether the name was
// fatigable at all; when it is, this is the entire invocation.
func (c *newVariableConfiguration) manageFatigue() (bool, error) {
	if c.cfg.Fatigue == nil || !c.cfg.Fatigue.Has(c.cfg.Name) {
		return false, nil
	}
	name := c.cfg.Name
	if !c.cfg.AsControls {
		return true, errors.Wrapf(ErrFatigueNotOnControls, "variable %q", name)
	}

	elements := c.cfg.Fatigue.Elements(name)
	if len(elements) != len(c.cfg.Elements) {
		return true, errors.Errorf("fatigue for %q declares %d elements but the variable has %d",
			name, len(elements), len(c.cfg.Elements))
	}
	if err := fatigue.CheckHomogeneous(name, elements); err != nil {
		return true, err
	}

	// Homogeneity holds, so the first element describes them all.
	set := elements[0].Models()
	metaSuffixes := set.MetaSuffixes()
	stateSuffixes := set.Model(metaSuffixes[0]).StateSuffixes()
	multiInterface := set.MultiInterface()
	splitControls := set.SplitControls()
	controlColors := set.ControlColors()
	plotFactors := set.PlotFactors()

	// The two canvases the sub-variables draw onto. Their own producers
	// stay blank; every series comes from a combined-in plot.
	nElements := len(c.cfg.Elements)
	legend := make([]string, nElements)
	for i, element := range c.cfg.Elements {
		legend[i] = name + "_" + element
	}
	fatiguePlotName := "fatigue_" + name
	c.phase.plots.Add(fatiguePlotName, &plotting.CustomPlot{
		Producer: plotting.NaNRows(nElements),
		Type:     plotting.TypeIntegrated,
		Legend:   legend,
		Bounds:   &plotting.Bounds{Min: -1, Max: 1},
	})
	controlPlotName := name
	if !multiInterface && splitControls {
		controlPlotName = name + "_controls"
	}
	c.phase.plots.Add(controlPlotName, &plotting.CustomPlot{
		Producer: plotting.NaNRows(nElements),
		Type:     plotting.TypeStep,
		Legend:   legend,
	})

	varNames := make([]string, 0, len(metaSuffixes))
	for i, meta := range metaSuffixes {
		varName := name
		if !multiInterface {
			varName = name + "_" + meta
		}
		varNames = append(varNames, varName)

		if splitControls {
			if err := c.configureFatigueSub(varName, c.cfg.AsStates, true); err != nil {
				return true, err
			}
			if err := c.addFatigueControlPlot(varName, controlPlotName, controlColors[i]); err != nil {
				return true, err
			}
		} else if i == 0 {
			if err := c.configureFatigueSub(name, c.cfg.AsStates, true); err != nil {
				return true, err
			}
			if err := c.addFatigueControlPlot(name, controlPlotName, controlColors[i]); err != nil {
				return true, err
			}
		}

		stateColors := set.Model(meta).StateColors()
		for p, suffix := range stateSuffixes {
			stateName := varName + "_" + suffix
			if err := c.configureFatigueSub(stateName, true, false); err != nil {
				return true, err
			}
			if err := c.addFatigueStatePlot(stateName, fatiguePlotName, stateColors[p], plotFactors[i]); err != nil {
				return true, err
			}
		}
	}

	// Fake accessors on every backing control list, scaled and unscaled:
	// under split controls the original name combines the per-variant
	// controls; under a shared control the variant names all resolve to
	// the single real one.
	for node := 0; node < c.phase.controls.ListCount(); node++ {
		scaled := c.phase.controls.Scaled(node)
		unscaled := c.phase.controls.Unscaled(node)
		if splitControls {
			if err := appendFakeComposite(scaled, name, varNames); err != nil {
				return true, err
			}
			if err := appendFakeComposite(unscaled, name, varNames); err != nil {
				return true, err
			}
			continue
		}
		for _, varName := range varNames {
			if err := appendFakeComposite(scaled, varName, []string{name}); err != nil {
				return true, err
			}
			if err := appendFakeComposite(unscaled, varName, []string{name}); err != nil {
				return true, err
			}
		}
	}
	return true, nil
}

// configureFatigueSub declares one underlying variable through the
// normal configuration path, with plotting suppressed and no recursive
// fatigue handling.
func (c *newVariableConfiguration) configureFatigueSub(name string, asStates, asControls bool) error {
	return c.problem.ConfigureNewVariable(c.phase.index, VariableConfig{
		Name:       name,
		Elements:   c.cfg.Elements,
		AsStates:   asStates,
		AsControls: asControls,
		SkipPlot:   true,
	})
}

// addFatigueControlPlot draws one underlying control onto the combined
// control canvas. Rows are resolved now and captured by value.
func (c *newVariableConfiguration) addFatigueControlPlot(varName, combineTo, color string) error {
	v, err := c.phase.controls.Unscaled(0).Get(optvar.ByName(varName))
	if err != nil {
		return err
	}
	c.phase.plots.Add(varName+"_controls", &plotting.CustomPlot{
		Producer:  plotting.ControlRows(v.Indices()),
		Type:      plotting.TypeStep,
		CombineTo: combineTo,
		Color:     color,
	})
	return nil
}

// addFatigueStatePlot draws one compartment state onto the combined
// fatigue canvas, scaled by the variant's plot factor.
func (c *newVariableConfiguration) addFatigueStatePlot(stateName, combineTo, color string, factor float64) error {
	v, err := c.phase.states.Unscaled(0).Get(optvar.ByName(stateName))
	if err != nil {
		return err
	}
	c.phase.plots.Add(stateName, &plotting.CustomPlot{
		Producer:  plotting.ScaledStateRows(v.Indices(), factor),
		Type:      plotting.TypeIntegrated,
		CombineTo: combineTo,
		Color:     color,
	})
	return nil
}

// appendFakeComposite registers name on l as a fake element combining
// the named keys: their index ranges concatenate, their full forms stack
// and their mappings concatenate with offset-shifted sources.
func appendFakeComposite(l *optvar.List, name string, keys []string) error {
	var indices []int
	fulls := make([]sym.Vector, 0, len(keys))
	bims := make([]*mapping.BiMapping, 0, len(keys))
	for _, key := range keys {
		v, err := l.Get(optvar.ByName(key))
		if err != nil {
			return errors.Wrapf(err, "combining %q into %q", key, name)
		}
		indices = append(indices, v.Indices()...)
		fulls = append(fulls, v.Full())
		bims = append(bims, v.Mapping())
	}
	return l.AppendFake(name, indices, sym.Vertcat(fulls...), mapping.ConcatBiMappings(bims...))
}
