// Package config loads multi-phase problem descriptions from YAML and
// builds them through variable configuration. A description names the
// problem, its phases, and the variables each phase declares; Build
// turns it into a fully configured ocp.Problem.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openmotionlab/trajopt/fatigue"
	"github.com/openmotionlab/trajopt/logging"
	"github.com/openmotionlab/trajopt/mapping"
	"github.com/openmotionlab/trajopt/ocp"
	"github.com/openmotionlab/trajopt/optvar"
)

// Config is a whole problem description.
type Config struct {
	Name     string  `yaml:"name"`
	NThreads int     `yaml:"n_threads"`
	Phases   []Phase `yaml:"phases"`
}

// Phase describes one phase and the variables it declares.
type Phase struct {
	Name          string `yaml:"name"`
	ShootingNodes int    `yaml:"shooting_nodes"`
	// Allocation is "shared" (default) or "per-node".
	Allocation string `yaml:"allocation"`
	Scheme     Scheme `yaml:"scheme"`
	// ControlType is "constant" (default), "constant-with-last-node",
	// "linear-continuous" or "none".
	ControlType string `yaml:"control_type"`

	UseStatesFrom    *int `yaml:"use_states_from"`
	UseStatesDotFrom *int `yaml:"use_states_dot_from"`
	UseControlsFrom  *int `yaml:"use_controls_from"`

	Variables []Variable `yaml:"variables"`
}

// Scheme selects the phase's integration scheme. Name is "rk4"
// (default) or "collocation"; Degree only applies to collocation.
type Scheme struct {
	Name   string `yaml:"name"`
	Degree int    `yaml:"degree"`
}

// Variable describes one variable declaration.
type Variable struct {
	Name     string   `yaml:"name"`
	Elements []string `yaml:"elements"`

	States          bool `yaml:"states"`
	Controls        bool `yaml:"controls"`
	StatesDot       bool `yaml:"states_dot"`
	AlgebraicStates bool `yaml:"algebraic_states"`

	// Scaling and InitialGuess override the unit/zero defaults. Both are
	// sized to the variable's reduced dimension.
	Scaling      []float64 `yaml:"scaling"`
	InitialGuess []float64 `yaml:"initial_guess"`

	Mapping *Mapping `yaml:"mapping"`
	Fatigue *Fatigue `yaml:"fatigue"`

	CombineStateControlPlot bool `yaml:"combine_state_control_plot"`
	SkipPlot                bool `yaml:"skip_plot"`
}

// Mapping declares a non-identity index mapping.
type Mapping struct {
	ToFirst  []Index `yaml:"to_first"`
	ToSecond []Index `yaml:"to_second"`
}

// Index is one mapping entry. Zero slots ignore Source and Flip.
type Index struct {
	Source int  `yaml:"source"`
	Flip   bool `yaml:"flip"`
	Zero   bool `yaml:"zero"`
}

// Fatigue declares a fatigue model applied to every element of the
// variable. Model is "xia_tau" or "effort".
type Fatigue struct {
	Model         string `yaml:"model"`
	SplitControls bool   `yaml:"split_controls"`

	// Xia exchange rates, applied to both torque sides.
	DevelopRate  float64 `yaml:"develop_rate"`
	RecoveryRate float64 `yaml:"recovery_rate"`
	FatigueRate  float64 `yaml:"fatigue_rate"`
	RestRate     float64 `yaml:"rest_rate"`

	// Effort parameters.
	Threshold float64 `yaml:"threshold"`
	Factor    float64 `yaml:"factor"`
}

// Load reads a problem description from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading problem description")
	}
	return Parse(data)
}

// Parse decodes a problem description from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing problem description")
	}
	return &cfg, nil
}

// Build configures a problem from the description: phases first, then
// every variable of every phase in declaration order.
func Build(cfg *Config, logger logging.Logger) (*ocp.Problem, error) {
	if cfg.Name == "" {
		return nil, errors.New("the problem description needs a name")
	}
	if len(cfg.Phases) == 0 {
		return nil, errors.Errorf("problem %q declares no phases", cfg.Name)
	}

	prob := ocp.NewProblem(cfg.Name, ocp.ProblemConfig{NThreads: cfg.NThreads, Logger: logger})
	for i, phc := range cfg.Phases {
		allocation, err := parseAllocation(phc.Allocation)
		if err != nil {
			return nil, errors.Wrapf(err, "phase %d", i)
		}
		scheme, err := parseScheme(phc.Scheme)
		if err != nil {
			return nil, errors.Wrapf(err, "phase %d", i)
		}
		controlType, err := parseControlType(phc.ControlType)
		if err != nil {
			return nil, errors.Wrapf(err, "phase %d", i)
		}
		ph, err := prob.AddPhase(ocp.PhaseConfig{
			Name:             phc.Name,
			ShootingNodes:    phc.ShootingNodes,
			Allocation:       allocation,
			Scheme:           scheme,
			ControlType:      controlType,
			UseStatesFrom:    phc.UseStatesFrom,
			UseStatesDotFrom: phc.UseStatesDotFrom,
			UseControlsFrom:  phc.UseControlsFrom,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "phase %d", i)
		}
		for _, vc := range phc.Variables {
			if err := buildVariable(prob, ph, vc); err != nil {
				return nil, errors.Wrapf(err, "phase %d variable %q", i, vc.Name)
			}
		}
	}
	return prob, nil
}

// buildVariable registers the declaration's mapping, scaling and guess
// overrides on the phase, then runs variable configuration.
func buildVariable(prob *ocp.Problem, ph *ocp.Phase, vc Variable) error {
	if vc.Mapping != nil {
		bim, err := buildMapping(vc.Mapping)
		if err != nil {
			return err
		}
		ph.SetMapping(vc.Name, bim)
	}

	if vc.Scaling != nil {
		for _, store := range scalingStores(ph, vc) {
			if err := store.Add(vc.Name, vc.Scaling); err != nil {
				return err
			}
		}
	}
	if vc.InitialGuess != nil {
		for _, store := range guessStores(ph, vc) {
			if err := store.Add(vc.Name, vc.InitialGuess); err != nil {
				return err
			}
		}
	}

	var fat *fatigue.List
	if vc.Fatigue != nil {
		models, err := buildFatigueModels(vc.Fatigue)
		if err != nil {
			return err
		}
		fat = fatigue.NewList()
		for range vc.Elements {
			fat.Add(vc.Name, models)
		}
	}

	return prob.ConfigureNewVariable(ph.Index(), ocp.VariableConfig{
		Name:                    vc.Name,
		Elements:                vc.Elements,
		AsStates:                vc.States,
		AsControls:              vc.Controls,
		AsStatesDot:             vc.StatesDot,
		AsAlgebraicStates:       vc.AlgebraicStates,
		Fatigue:                 fat,
		CombineStateControlPlot: vc.CombineStateControlPlot,
		SkipPlot:                vc.SkipPlot,
	})
}

func scalingStores(ph *ocp.Phase, vc Variable) []*optvar.ScalingSet {
	var out []*optvar.ScalingSet
	if vc.States {
		out = append(out, ph.StateScaling())
	}
	if vc.StatesDot {
		out = append(out, ph.StateDotScaling())
	}
	if vc.Controls {
		out = append(out, ph.ControlScaling())
	}
	if vc.AlgebraicStates {
		out = append(out, ph.AlgebraicScaling())
	}
	return out
}

func guessStores(ph *ocp.Phase, vc Variable) []*ocp.InitialGuessSet {
	var out []*ocp.InitialGuessSet
	if vc.States {
		out = append(out, ph.StateInit())
	}
	if vc.Controls {
		out = append(out, ph.ControlInit())
	}
	if vc.AlgebraicStates {
		out = append(out, ph.AlgebraicInit())
	}
	return out
}

func buildMapping(mc *Mapping) (*mapping.BiMapping, error) {
	toFirst, err := buildDirection(mc.ToFirst)
	if err != nil {
		return nil, errors.Wrap(err, "to_first")
	}
	toSecond, err := buildDirection(mc.ToSecond)
	if err != nil {
		return nil, errors.Wrap(err, "to_second")
	}
	return mapping.NewBiMapping(toFirst, toSecond)
}

func buildDirection(entries []Index) (*mapping.Mapping, error) {
	out := make([]mapping.Index, len(entries))
	for i, e := range entries {
		switch {
		case e.Zero:
			out[i] = mapping.ZeroIndex()
		case e.Flip:
			out[i] = mapping.NewFlippedIndex(e.Source)
		default:
			out[i] = mapping.NewIndex(e.Source)
		}
	}
	return mapping.NewMapping(out...)
}

func buildFatigueModels(fc *Fatigue) (fatigue.ModelSet, error) {
	switch fc.Model {
	case "xia_tau":
		minus := fatigue.NewXia(fc.DevelopRate, fc.RecoveryRate, fc.FatigueRate, fc.RestRate)
		plus := fatigue.NewXia(fc.DevelopRate, fc.RecoveryRate, fc.FatigueRate, fc.RestRate)
		return fatigue.NewXiaTau(minus, plus, fc.SplitControls), nil
	case "effort":
		if fc.SplitControls {
			return nil, errors.New("the effort model shares the original control and cannot split")
		}
		return fatigue.NewEffort(fc.Threshold, fc.Factor), nil
	default:
		return nil, errors.Errorf("unknown fatigue model %q", fc.Model)
	}
}

func parseAllocation(s string) (optvar.Allocation, error) {
	switch s {
	case "", "shared":
		return optvar.AllocationSharedAcrossPhase, nil
	case "per-node":
		return optvar.AllocationOnePerNode, nil
	default:
		return 0, errors.Errorf("unknown allocation %q", s)
	}
}

func parseScheme(sc Scheme) (ocp.IntegrationScheme, error) {
	switch sc.Name {
	case "", "rk4":
		return ocp.RungeKutta4(), nil
	case "collocation":
		if sc.Degree < 1 {
			return ocp.IntegrationScheme{}, errors.Errorf("collocation needs a degree of at least one, got %d", sc.Degree)
		}
		return ocp.Collocation(sc.Degree), nil
	default:
		return ocp.IntegrationScheme{}, errors.Errorf("unknown integration scheme %q", sc.Name)
	}
}

func parseControlType(s string) (ocp.ControlType, error) {
	switch s {
	case "", "constant":
		return ocp.ControlTypeConstant, nil
	case "constant-with-last-node":
		return ocp.ControlTypeConstantWithLastNode, nil
	case "linear-continuous":
		return ocp.ControlTypeLinearContinuous, nil
	case "none":
		return ocp.ControlTypeNone, nil
	default:
		return 0, errors.Errorf("unknown control type %q", s)
	}
}
