package ocp

import "fmt"

// IntegrationScheme tells configuration how many interior evaluation
// points each shooting interval carries. The integration itself happens
// elsewhere; configuration only sizes the interval columns.
type IntegrationScheme struct {
	name           string
	requiredPoints int
}

// RungeKutta4 is a single-step scheme: intervals carry only their start
// and end columns.
func RungeKutta4() IntegrationScheme {
	return IntegrationScheme{name: "rk4"}
}

// Collocation carries one interior column per collocation point of the
// given polynomial degree. The degree must be at least one.
func Collocation(degree int) IntegrationScheme {
	return IntegrationScheme{name: fmt.Sprintf("collocation-%d", degree), requiredPoints: degree}
}

// Name returns the scheme's name.
func (s IntegrationScheme) Name() string {
	return s.name
}

// RequiredPoints returns the number of interior evaluation points per
// interval.
func (s IntegrationScheme) RequiredPoints() int {
	return s.requiredPoints
}

func (s IntegrationScheme) String() string {
	return s.name
}
