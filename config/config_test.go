package config

import (
	"testing"

	"go.viam.com/test"

	"github.com/openmotionlab/trajopt/logging"
	"github.com/openmotionlab/trajopt/ocp"
	"github.com/openmotionlab/trajopt/optvar"
)

func TestLoadAndBuild(t *testing.T) {
	logger := logging.NewTestLogger(t)
	cfg, err := Load("testdata/arm.yaml")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Name, test.ShouldEqual, "arm_lift")
	test.That(t, cfg.Phases, test.ShouldHaveLength, 2)

	prob, err := Build(cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, prob.NumPhases(), test.ShouldEqual, 2)

	// Phase 0: the fatigable torque split into per-side controls behind
	// the composite accessor.
	ph0 := prob.Phase(0)
	test.That(t, ph0.Name(), test.ShouldEqual, "lift")
	controls := ph0.Controls().Unscaled(0)
	test.That(t, controls.Keys(), test.ShouldResemble, []string{"tau_minus", "tau_plus"})
	tau, err := controls.Get(optvar.ByName("tau"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tau.Len(), test.ShouldEqual, 4)

	// The YAML scaling override beat the unit default.
	scaling, err := ph0.StateScaling().Get("qdot")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scaling.Values(), test.ShouldResemble, []float64{10, 10})

	// Phase 1 borrows its states from phase 0 and owns fresh controls.
	ph1 := prob.Phase(1)
	test.That(t, ph1.ControlType(), test.ShouldEqual, ocp.ControlTypeLinearContinuous)
	test.That(t, ph1.Borrowed(optvar.KindStates, "q"), test.ShouldBeTrue)
	test.That(t, ph1.Borrowed(optvar.KindControls, "tau"), test.ShouldBeFalse)
	q0, err := ph0.States().Unscaled(0).Get(optvar.ByName("q"))
	test.That(t, err, test.ShouldBeNil)
	q1, err := ph1.States().Unscaled(0).Get(optvar.ByName("q"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q1.Full().At(0).Symbol() == q0.Full().At(0).Symbol(), test.ShouldBeTrue)

	// The guess override was stored for phase 1's qdot.
	guess, err := ph1.StateInit().Get("qdot")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, guess, test.ShouldResemble, []float64{0.5, 0.5})
}

func TestParseMappingDeclaration(t *testing.T) {
	logger := logging.NewTestLogger(t)
	cfg, err := Parse([]byte(`
name: symmetric
phases:
  - name: only
    shooting_nodes: 5
    variables:
      - name: tau
        elements: [left, right]
        controls: true
        mapping:
          to_first:
            - source: 0
          to_second:
            - source: 0
            - source: 0
              flip: true
`))
	test.That(t, err, test.ShouldBeNil)

	prob, err := Build(cfg, logger)
	test.That(t, err, test.ShouldBeNil)

	v, err := prob.Phase(0).Controls().Unscaled(0).Get(optvar.ByName("tau"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v.Len(), test.ShouldEqual, 1)
	test.That(t, v.Full().Labels(), test.ShouldResemble, []string{"tau_left", "-tau_left"})
}

func TestBuildDefaults(t *testing.T) {
	logger := logging.NewTestLogger(t)
	cfg, err := Parse([]byte(`
name: plain
phases:
  - shooting_nodes: 3
    variables:
      - name: q
        elements: [theta]
        states: true
`))
	test.That(t, err, test.ShouldBeNil)

	prob, err := Build(cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	ph := prob.Phase(0)
	test.That(t, ph.Name(), test.ShouldEqual, "phase_0")
	test.That(t, ph.Allocation(), test.ShouldEqual, optvar.AllocationSharedAcrossPhase)
	test.That(t, ph.Scheme().Name(), test.ShouldEqual, "rk4")
	test.That(t, ph.ControlType(), test.ShouldEqual, ocp.ControlTypeConstant)
}

func TestBuildRejectsBadDescriptions(t *testing.T) {
	logger := logging.NewTestLogger(t)

	_, err := Build(&Config{}, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "needs a name")

	_, err = Build(&Config{Name: "empty"}, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "declares no phases")

	bad := func(doc string, wantSubstring string) {
		t.Helper()
		cfg, err := Parse([]byte(doc))
		test.That(t, err, test.ShouldBeNil)
		_, err = Build(cfg, logger)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, wantSubstring)
	}

	bad(`
name: p
phases:
  - shooting_nodes: 3
    allocation: scattered
`, "unknown allocation")

	bad(`
name: p
phases:
  - shooting_nodes: 3
    control_type: wavy
`, "unknown control type")

	bad(`
name: p
phases:
  - shooting_nodes: 3
    scheme:
      name: collocation
`, "degree of at least one")

	bad(`
name: p
phases:
  - shooting_nodes: 3
    variables:
      - name: tau
        elements: [theta]
        controls: true
        fatigue:
          model: mystery
`, "unknown fatigue model")

	bad(`
name: p
phases:
  - shooting_nodes: 3
    variables:
      - name: tau
        elements: [theta]
        controls: true
        fatigue:
          model: effort
          split_controls: true
`, "cannot split")
}
