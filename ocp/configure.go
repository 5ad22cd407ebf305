package ocp

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/openmotionlab/trajopt/fatigue"
	"github.com/openmotionlab/trajopt/mapping"
	"github.com/openmotionlab/trajopt/optvar"
	"github.com/openmotionlab/trajopt/plotting"
	"github.com/openmotionlab/trajopt/sym"
	"github.com/openmotionlab/trajopt/utils"
)

// VariableConfig describes one variable to configure into a phase.
type VariableConfig struct {
	// Name is the variable's name.
	Name string
	// Elements names each scalar element of the full physical vector.
	Elements []string
	// AsStates, AsControls, AsStatesDot and AsAlgebraicStates select the
	// variable pools the name joins.
	AsStates          bool
	AsControls        bool
	AsStatesDot       bool
	AsAlgebraicStates bool
	// Fatigue, when it declares Name, replaces this configuration with
	// the fatigue decomposition.
	Fatigue *fatigue.List
	// CombineName draws the variable's plots onto the named plot.
	CombineName string
	// CombineStateControlPlot draws the control plot onto the state
	// plot. Only effective when the variable is both a state and a
	// control, and exclusive with CombineName.
	CombineStateControlPlot bool
	// SkipPlot suppresses plot registration.
	SkipPlot bool
	// AxesIdx remaps element rows onto plot axes; nil means identity.
	AxesIdx *mapping.BiMapping
}

// ConfigureNewVariable declares a variable into the phase at phaseIdx:
// it resolves the index mapping, cross-phase reuse and defaults, builds
// the symbolic placeholders, appends the per-node columns into the
// requested variable pools and registers the plots. Fatigable names
// delegate to the fatigue decomposition instead.
func (prob *Problem) ConfigureNewVariable(phaseIdx int, cfg VariableConfig) error {
	if phaseIdx < 0 || phaseIdx >= len(prob.phases) {
		return errors.Errorf("problem %q has no phase %d", prob.name, phaseIdx)
	}
	if cfg.Name == "" {
		return errors.New("a variable needs a name")
	}
	if len(cfg.Elements) == 0 {
		return errors.Errorf("variable %q needs at least one element", cfg.Name)
	}
	c := &newVariableConfiguration{problem: prob, phase: prob.phases[phaseIdx], cfg: cfg}
	if err := c.configure(); err != nil {
		return err
	}
	prob.logger.Debugf("configured variable %q in phase %d", cfg.Name, phaseIdx)
	return nil
}

// newVariableConfiguration carries the working state of one
// ConfigureNewVariable invocation.
type newVariableConfiguration struct {
	problem *Problem
	phase   *Phase
	cfg     VariableConfig

	copyStates    bool
	copyStatesDot bool
	copyControls  bool
	copyAlgebraic bool

	fullStates    sym.Vector
	fullStatesDot sym.Vector
	fullControls  sym.Vector
	fullAlgebraic sym.Vector

	axes   *mapping.BiMapping
	legend []string
}

func (c *newVariableConfiguration) configure() error {
	if c.cfg.CombineStateControlPlot && c.cfg.CombineName != "" {
		return errors.Wrapf(ErrConflictingPlotCombine, "variable %q", c.cfg.Name)
	}
	if done, err := c.manageFatigue(); done {
		return err
	}
	if err := c.checkThreads(); err != nil {
		return err
	}
	if err := c.checkCrossPhaseAllocation(); err != nil {
		return err
	}
	if err := c.declareAutoMapping(); err != nil {
		return err
	}
	c.declareCopyEligibility()
	if err := c.declareDefaults(); err != nil {
		return err
	}
	if err := c.buildFullVectors(); err != nil {
		return err
	}
	c.declareAutoAxes()
	if !c.cfg.SkipPlot {
		c.declareLegend()
	}
	return c.declareColumnsAndPlots()
}

func (c *newVariableConfiguration) checkThreads() error {
	if c.problem.nThreads > 1 && c.phase.allocation == optvar.AllocationOnePerNode {
		return errors.Wrapf(ErrParallelPerNodeAllocation, "variable %q in phase %d", c.cfg.Name, c.phase.index)
	}
	return nil
}

// checkCrossPhaseAllocation rejects borrowing under per-node allocation:
// reuse aliases the source's single shared symbol set, which per-node
// phases do not have.
func (c *newVariableConfiguration) checkCrossPhaseAllocation() error {
	if c.phase.allocation != optvar.AllocationOnePerNode {
		return nil
	}
	if c.phase.useStatesFrom != c.phase.index ||
		c.phase.useStatesDotFrom != c.phase.index ||
		c.phase.useControlsFrom != c.phase.index {
		return errors.Wrapf(ErrCrossPhasePerNodeAllocation, "variable %q in phase %d", c.cfg.Name, c.phase.index)
	}
	return nil
}

func (c *newVariableConfiguration) declareAutoMapping() error {
	bim, ok := c.phase.mappings[c.cfg.Name]
	if !ok {
		c.phase.mappings[c.cfg.Name] = mapping.NewIdentityBiMapping(len(c.cfg.Elements))
		return nil
	}
	// A pre-registered mapping must agree with the element names.
	if bim.ToSecond().Len() != len(c.cfg.Elements) {
		return errors.Errorf("the mapping of %q spans %d full elements but %d element names were given",
			c.cfg.Name, bim.ToSecond().Len(), len(c.cfg.Elements))
	}
	for k := 0; k < bim.ToFirst().Len(); k++ {
		idx := bim.ToFirst().At(k)
		if !idx.IsZero() && idx.Source() >= len(c.cfg.Elements) {
			return errors.Errorf("the mapping of %q selects element %d but only %d elements exist",
				c.cfg.Name, idx.Source(), len(c.cfg.Elements))
		}
	}
	for k := 0; k < bim.ToSecond().Len(); k++ {
		idx := bim.ToSecond().At(k)
		if !idx.IsZero() && (idx.Source() >= bim.ToFirst().Len() || idx.Source() >= len(c.cfg.Elements)) {
			return errors.Errorf("the mapping of %q slot %d draws on reduced element %d but the reduced size is %d",
				c.cfg.Name, k, idx.Source(), bim.ToFirst().Len())
		}
	}
	return nil
}

func (c *newVariableConfiguration) declareCopyEligibility() {
	c.copyStates = c.copyCondition(c.phase.useStatesFrom, optvar.KindStates)
	c.copyControls = c.copyCondition(c.phase.useControlsFrom, optvar.KindControls)
	c.copyStatesDot = c.copyCondition(c.phase.useStatesDotFrom, optvar.KindStatesDot)
	// Algebraic states follow the states' borrow source.
	c.copyAlgebraic = c.copyCondition(c.phase.useStatesFrom, optvar.KindAlgebraicStates)
}

// copyCondition is true when the borrow source is an earlier phase that
// already declared this name in the matching pool.
func (c *newVariableConfiguration) copyCondition(source int, kind optvar.Kind) bool {
	return source < c.phase.index && c.problem.phases[source].container(kind).Has(c.cfg.Name)
}

func (c *newVariableConfiguration) declareDefaults() error {
	bim := c.phase.mappings[c.cfg.Name]
	reduced := bim.ToFirst().Len()
	zeros := make([]float64, reduced)
	ones := utils.RepeatFloat64(1, reduced)

	if c.cfg.AsStates && !c.phase.stateInit.Has(c.cfg.Name) {
		if err := c.phase.stateInit.Add(c.cfg.Name, zeros); err != nil {
			return err
		}
	}
	if c.cfg.AsControls && !c.phase.controlInit.Has(c.cfg.Name) {
		if err := c.phase.controlInit.Add(c.cfg.Name, zeros); err != nil {
			return err
		}
	}
	if c.cfg.AsAlgebraicStates && !c.phase.algebraicInit.Has(c.cfg.Name) {
		if err := c.phase.algebraicInit.Add(c.cfg.Name, zeros); err != nil {
			return err
		}
	}

	if c.cfg.AsStates && !c.phase.stateScaling.Has(c.cfg.Name) {
		if err := c.phase.stateScaling.Add(c.cfg.Name, ones); err != nil {
			return err
		}
	}
	if c.cfg.AsStatesDot && !c.phase.stateDotScaling.Has(c.cfg.Name) {
		if err := c.phase.stateDotScaling.Add(c.cfg.Name, ones); err != nil {
			return err
		}
	}
	if c.cfg.AsControls && !c.phase.controlScaling.Has(c.cfg.Name) {
		if err := c.phase.controlScaling.Add(c.cfg.Name, ones); err != nil {
			return err
		}
	}
	if c.cfg.AsAlgebraicStates && !c.phase.algebraicScaling.Has(c.cfg.Name) {
		if err := c.phase.algebraicScaling.Add(c.cfg.Name, ones); err != nil {
			return err
		}
	}
	return nil
}

func (c *newVariableConfiguration) buildFullVectors() error {
	var err error
	if c.fullStates, err = c.fullVector(c.copyStates, c.phase.useStatesFrom, optvar.KindStates); err != nil {
		return err
	}
	if c.fullStatesDot, err = c.fullVector(c.copyStatesDot, c.phase.useStatesDotFrom, optvar.KindStatesDot); err != nil {
		return err
	}
	if c.fullControls, err = c.fullVector(c.copyControls, c.phase.useControlsFrom, optvar.KindControls); err != nil {
		return err
	}
	if c.fullAlgebraic, err = c.fullVector(c.copyAlgebraic, c.phase.useStatesFrom, optvar.KindAlgebraicStates); err != nil {
		return err
	}
	return nil
}

// fullVector builds one kind's full-space symbolic form: fresh symbols
// per full slot, or the source phase's node-zero form when the kind is
// borrowed. Aliasing is sound because borrowing requires shared
// allocation, so one symbol set serves the source's whole phase.
func (c *newVariableConfiguration) fullVector(copyEligible bool, source int, kind optvar.Kind) (sym.Vector, error) {
	if copyEligible {
		src := c.problem.phases[source].container(kind).Unscaled(0)
		v, err := src.Get(optvar.ByName(c.cfg.Name))
		if err != nil {
			return sym.Vector{}, errors.Wrapf(err, "borrowing %q from phase %d", c.cfg.Name, source)
		}
		return v.Full(), nil
	}
	toSecond := c.phase.mappings[c.cfg.Name].ToSecond()
	labels := make([]string, toSecond.Len())
	for i := 0; i < toSecond.Len(); i++ {
		labels[i] = c.fullLabel(toSecond.At(i))
	}
	return sym.NewVector(labels...), nil
}

// fullLabel names one full-space slot after the reduced element feeding
// it. The sign prefix only records a flip; the flip itself is applied
// wherever the slot is consumed.
func (c *newVariableConfiguration) fullLabel(idx mapping.Index) string {
	if idx.IsZero() {
		return "zero"
	}
	sign := ""
	if idx.Flipped() {
		sign = "-"
	}
	return fmt.Sprintf("%s%s_%s", sign, c.cfg.Name, c.cfg.Elements[idx.Source()])
}

func (c *newVariableConfiguration) declareAutoAxes() {
	if c.cfg.AxesIdx != nil {
		c.axes = c.cfg.AxesIdx
		return
	}
	c.axes = mapping.NewIdentityBiMapping(len(c.cfg.Elements))
}

// declareLegend labels each plotted element, annotated with the phase
// index every phase of the problem borrows this variable's role from.
func (c *newVariableConfiguration) declareLegend() {
	plotted := map[int]bool{}
	toFirst := c.axes.ToFirst()
	for k := 0; k < toFirst.Len(); k++ {
		idx := toFirst.At(k)
		if !idx.IsZero() {
			plotted[idx.Source()] = true
		}
	}
	var legend []string
	for i, element := range c.cfg.Elements {
		if !plotted[i] {
			continue
		}
		entry := fmt.Sprintf("%s_%s", c.cfg.Name, element)
		for _, ph := range c.problem.phases {
			if c.cfg.AsStates {
				entry += fmt.Sprintf("-%d", ph.useStatesFrom)
			}
			if c.cfg.AsControls {
				entry += fmt.Sprintf("-%d", ph.useControlsFrom)
			}
		}
		legend = append(legend, entry)
	}
	c.legend = legend
}

func (c *newVariableConfiguration) declareColumnsAndPlots() error {
	name := c.cfg.Name

	if c.cfg.AsStates {
		nCols := c.phase.scheme.RequiredPoints() + 2
		err := c.appendColumns(c.phase.states, nCols, c.copyStates, c.phase.useStatesFrom, c.fullStates, c.phase.stateScaling)
		if err != nil {
			return err
		}
		if c.copyStates {
			c.phase.markBorrowed(optvar.KindStates, name)
		}
		if !c.cfg.SkipPlot {
			v, err := c.phase.states.Unscaled(0).Get(optvar.ByName(name))
			if err != nil {
				return err
			}
			c.phase.plots.Add(name+"_states", &plotting.CustomPlot{
				Producer:  plotting.StateRows(v.Indices()),
				Type:      plotting.TypeIntegrated,
				AxesIdx:   c.axes.ToFirst(),
				Legend:    c.legend,
				CombineTo: c.cfg.CombineName,
			})
		}
	}

	if c.cfg.AsControls {
		err := c.appendColumns(c.phase.controls, 3, c.copyControls, c.phase.useControlsFrom, c.fullControls, c.phase.controlScaling)
		if err != nil {
			return err
		}
		if c.copyControls {
			c.phase.markBorrowed(optvar.KindControls, name)
		}
		if !c.cfg.SkipPlot {
			v, err := c.phase.controls.Unscaled(0).Get(optvar.ByName(name))
			if err != nil {
				return err
			}
			plotType := plotting.TypeStep
			if c.phase.controlType == ControlTypeLinearContinuous {
				plotType = plotting.TypeLine
			}
			combineTo := c.cfg.CombineName
			if c.cfg.AsStates && c.cfg.CombineStateControlPlot {
				combineTo = name + "_states"
			}
			c.phase.plots.Add(name+"_controls", &plotting.CustomPlot{
				Producer:  plotting.ControlRows(v.Indices()),
				Type:      plotType,
				AxesIdx:   c.axes.ToFirst(),
				Legend:    c.legend,
				CombineTo: combineTo,
			})
		}
	}

	if c.cfg.AsStatesDot {
		nCols := c.phase.scheme.RequiredPoints() + 2
		err := c.appendColumns(c.phase.statesDot, nCols, c.copyStatesDot, c.phase.useStatesDotFrom, c.fullStatesDot, c.phase.stateDotScaling)
		if err != nil {
			return err
		}
		if c.copyStatesDot {
			c.phase.markBorrowed(optvar.KindStatesDot, name)
		}
	}

	if c.cfg.AsAlgebraicStates {
		err := c.appendColumns(c.phase.algebraic, 2, c.copyAlgebraic, c.phase.useStatesFrom, c.fullAlgebraic, c.phase.algebraicScaling)
		if err != nil {
			return err
		}
		if c.copyAlgebraic {
			c.phase.markBorrowed(optvar.KindAlgebraicStates, name)
		}
	}
	return nil
}

// appendColumns fills one kind's container: per backing list, either
// fresh interval columns (and their elementwise-scaled unscaled forms)
// or the borrow source's column set verbatim.
func (c *newVariableConfiguration) appendColumns(
	cont *optvar.Container,
	nCols int,
	copyEligible bool,
	source int,
	full sym.Vector,
	scalings *optvar.ScalingSet,
) error {
	name := c.cfg.Name
	bim := c.phase.mappings[name]
	scaling, err := scalings.Get(name)
	if err != nil {
		return err
	}
	for node := 0; node < cont.ListCount(); node++ {
		var scaledCols, unscaledCols []sym.Vector
		if copyEligible {
			srcCont := c.problem.phases[source].container(cont.Kind())
			srcScaled, err := srcCont.Scaled(node).Get(optvar.ByName(name))
			if err != nil {
				return errors.Wrapf(err, "borrowing %q columns from phase %d", name, source)
			}
			srcUnscaled, err := srcCont.Unscaled(node).Get(optvar.ByName(name))
			if err != nil {
				return errors.Wrapf(err, "borrowing %q columns from phase %d", name, source)
			}
			scaledCols = srcScaled.Columns()
			unscaledCols = srcUnscaled.Columns()
		} else {
			scaledCols = c.buildScaledColumns(node, nCols, bim)
			unscaledCols = make([]sym.Vector, len(scaledCols))
			for i, col := range scaledCols {
				unscaledCols[i], err = col.Scale(scaling.Values())
				if err != nil {
					return errors.Wrapf(err, "scaling %q", name)
				}
			}
		}
		if err := cont.Append(node, name, scaledCols, unscaledCols, full, bim, scaling); err != nil {
			return errors.Wrapf(err, "phase %d", c.phase.index)
		}
	}
	return nil
}

func (c *newVariableConfiguration) buildScaledColumns(node, nCols int, bim *mapping.BiMapping) []sym.Vector {
	toFirst := bim.ToFirst()
	cols := make([]sym.Vector, nCols)
	for j := range cols {
		labels := make([]string, toFirst.Len())
		for k := 0; k < toFirst.Len(); k++ {
			labels[k] = c.scaledLabel(toFirst.At(k), node, j)
		}
		cols[j] = sym.NewVector(labels...)
	}
	return cols
}

func (c *newVariableConfiguration) scaledLabel(idx mapping.Index, node, col int) string {
	if idx.IsZero() {
		return "zero"
	}
	sign := ""
	if idx.Flipped() {
		sign = "-"
	}
	return fmt.Sprintf("%s%s_%s_phase%d_node%d.%d",
		sign, c.cfg.Name, c.cfg.Elements[idx.Source()], c.phase.index, node, col)
}
