// Package utils contains small helpers shared across the trajopt packages.
package utils

import "math"

// Float64AlmostEqual returns whether a and b are within epsilon of each other.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Float64SliceAlmostEqual returns whether two slices have the same length and
// are elementwise within epsilon of each other.
func Float64SliceAlmostEqual(a, b []float64, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i, x := range a {
		if !Float64AlmostEqual(x, b[i], epsilon) {
			return false
		}
	}
	return true
}

func AbsInt(n int) int {
	if n < 0 {
		return -1 * n
	}
	return n
}

func MaxInt(a, b int) int {
	if a < b {
		return b
	}
	return a
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// RepeatFloat64 returns a slice of n copies of v.
func RepeatFloat64(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
