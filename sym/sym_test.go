package sym

import (
	"testing"

	"go.viam.com/test"
)

func TestSymbolIdentity(t *testing.T) {
	a := NewSymbol("q_0")
	b := NewSymbol("q_0")
	test.That(t, a.Label(), test.ShouldEqual, b.Label())
	test.That(t, a == b, test.ShouldBeFalse)
	test.That(t, a == a, test.ShouldBeTrue)
}

func TestNewVectorAllocatesFreshSymbols(t *testing.T) {
	v1 := NewVector("q_0", "q_1")
	v2 := NewVector("q_0", "q_1")
	test.That(t, v1.Len(), test.ShouldEqual, 2)
	test.That(t, v1.Labels(), test.ShouldResemble, []string{"q_0", "q_1"})
	// Same labels, distinct unknowns.
	test.That(t, v1.At(0).Symbol() == v2.At(0).Symbol(), test.ShouldBeFalse)
	test.That(t, v1.At(0).Symbol() == v1.At(0).Symbol(), test.ShouldBeTrue)
}

func TestVertcatPreservesOrderAndIdentity(t *testing.T) {
	q := NewVector("q_0", "q_1")
	tau := NewVector("tau_0")
	cat := Vertcat(q, tau)
	test.That(t, cat.Len(), test.ShouldEqual, 3)
	test.That(t, cat.Labels(), test.ShouldResemble, []string{"q_0", "q_1", "tau_0"})
	test.That(t, cat.At(0).Symbol() == q.At(0).Symbol(), test.ShouldBeTrue)
	test.That(t, cat.At(2).Symbol() == tau.At(0).Symbol(), test.ShouldBeTrue)

	empty := Vertcat()
	test.That(t, empty.Len(), test.ShouldEqual, 0)
}

func TestRowsGather(t *testing.T) {
	v := NewVector("a", "b", "c", "d")
	picked := v.Rows([]int{2, 0})
	test.That(t, picked.Len(), test.ShouldEqual, 2)
	test.That(t, picked.Labels(), test.ShouldResemble, []string{"c", "a"})
	test.That(t, picked.At(0).Symbol() == v.At(2).Symbol(), test.ShouldBeTrue)
}

func TestScaleSharesSymbols(t *testing.T) {
	v := NewVector("q_0", "q_1")
	scaled, err := v.Scale([]float64{2, 0.5})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scaled.Len(), test.ShouldEqual, 2)
	test.That(t, scaled.At(0).Symbol() == v.At(0).Symbol(), test.ShouldBeTrue)
	test.That(t, scaled.At(0).Coeff(), test.ShouldEqual, 2.0)
	test.That(t, scaled.At(1).Coeff(), test.ShouldEqual, 0.5)
	// The original rows are untouched.
	test.That(t, v.At(0).Coeff(), test.ShouldEqual, 1.0)

	_, err = v.Scale([]float64{1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "2-row vector by 1 factors")
}

func TestScalarString(t *testing.T) {
	s := NewSymbol("q_0")
	test.That(t, Term(s).String(), test.ShouldEqual, "q_0")
	test.That(t, Term(s).Scale(-1).String(), test.ShouldEqual, "-q_0")
	test.That(t, Term(s).Scale(2.5).String(), test.ShouldEqual, "2.5*q_0")
	test.That(t, Scalar{}.String(), test.ShouldEqual, "0")
}

func TestVectorString(t *testing.T) {
	v := NewVector("a", "b")
	test.That(t, v.String(), test.ShouldEqual, "[a, b]")
	scaled, err := v.Scale([]float64{1, 10})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scaled.String(), test.ShouldEqual, "[a, 10*b]")
}
