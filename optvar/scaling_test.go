package optvar

import (
	"testing"

	"go.viam.com/test"
)

func TestNewScalingValidation(t *testing.T) {
	_, err := NewScaling("q", nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "at least one element")

	_, err = NewScaling("q", []float64{1, 0})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "strictly positive")

	_, err = NewScaling("q", []float64{1, -2})
	test.That(t, err, test.ShouldNotBeNil)

	input := []float64{1, 10}
	s, err := NewScaling("q", input)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Name(), test.ShouldEqual, "q")
	test.That(t, s.Len(), test.ShouldEqual, 2)

	// The stored vector is a copy.
	input[0] = 99
	test.That(t, s.Values(), test.ShouldResemble, []float64{1, 10})
}

func TestToVectorTiling(t *testing.T) {
	s, err := NewScaling("q", []float64{1, 10})
	test.That(t, err, test.ShouldBeNil)

	vec, err := s.ToVector(2, 3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, vec.Len(), test.ShouldEqual, 6)
	test.That(t, vec.RawVector().Data, test.ShouldResemble, []float64{1, 10, 1, 10, 1, 10})

	_, err = s.ToVector(3, 2)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "has 2 elements, not 3")

	_, err = s.ToVector(2, 0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "at least one repetition")
}

func TestToArrayReproducesScaleInEveryColumn(t *testing.T) {
	s, err := NewScaling("q", []float64{2, 4, 8})
	test.That(t, err, test.ShouldBeNil)

	arr, err := s.ToArray(3, 4)
	test.That(t, err, test.ShouldBeNil)
	rows, cols := arr.Dims()
	test.That(t, rows, test.ShouldEqual, 3)
	test.That(t, cols, test.ShouldEqual, 4)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			test.That(t, arr.At(r, c), test.ShouldEqual, s.Values()[r])
		}
	}

	_, err = s.ToArray(2, 4)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestScalingSet(t *testing.T) {
	ss := NewScalingSet()
	test.That(t, ss.Len(), test.ShouldEqual, 0)
	test.That(t, ss.Has("q"), test.ShouldBeFalse)

	test.That(t, ss.Add("q", []float64{1, 10}), test.ShouldBeNil)
	test.That(t, ss.Add("tau", []float64{100}), test.ShouldBeNil)
	test.That(t, ss.Has("q"), test.ShouldBeTrue)
	test.That(t, ss.Names(), test.ShouldResemble, []string{"q", "tau"})

	err := ss.Add("q", []float64{2, 2})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `scaling "q" was already declared`)

	s, err := ss.Get("tau")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Values(), test.ShouldResemble, []float64{100})

	_, err = ss.Get("missing")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, IsNotFound(err), test.ShouldBeTrue)
}
