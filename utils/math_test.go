package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1.0, 1.0+1e-9, 1e-8), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1.0, 1.1, 1e-8), test.ShouldBeFalse)
	test.That(t, Float64SliceAlmostEqual([]float64{1, 2}, []float64{1, 2}, 1e-8), test.ShouldBeTrue)
	test.That(t, Float64SliceAlmostEqual([]float64{1, 2}, []float64{1}, 1e-8), test.ShouldBeFalse)
	test.That(t, Float64SliceAlmostEqual([]float64{1, 2}, []float64{1, 3}, 1e-8), test.ShouldBeFalse)
}

func TestIntHelpers(t *testing.T) {
	test.That(t, AbsInt(-3), test.ShouldEqual, 3)
	test.That(t, AbsInt(3), test.ShouldEqual, 3)
	test.That(t, MaxInt(2, 5), test.ShouldEqual, 5)
	test.That(t, MinInt(2, 5), test.ShouldEqual, 2)
	test.That(t, RepeatFloat64(1.5, 3), test.ShouldResemble, []float64{1.5, 1.5, 1.5})
}
