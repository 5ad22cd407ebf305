// Package plotting registers and renders the per-variable plots declared
// during phase configuration.
//
// Producers are plain functions over the numeric series of a solve; they
// capture the row indices they need by value at registration time, so a
// registered plot never changes meaning when later variables are
// declared.
package plotting

import (
	"gonum.org/v1/gonum/mat"

	"github.com/openmotionlab/trajopt/mapping"
)

// Type selects how a plot's series are drawn.
type Type int

const (
	// TypeLine draws straight segments between node values.
	TypeLine Type = iota
	// TypeIntegrated draws the integrated trajectory across each interval.
	TypeIntegrated
	// TypeStep holds each value until the next node.
	TypeStep
	// TypePoint draws node values as markers.
	TypePoint
)

func (t Type) String() string {
	switch t {
	case TypeLine:
		return "line"
	case TypeIntegrated:
		return "integrated"
	case TypeStep:
		return "step"
	case TypePoint:
		return "point"
	default:
		return "unknown"
	}
}

// Bounds is an optional vertical range drawn with a plot.
type Bounds struct {
	Min float64
	Max float64
}

// Producer computes the matrix a plot draws, one row per series and one
// column per time sample, from the numeric series of a solve.
type Producer func(t0 float64, phasesDt []float64, nodeIdx int, x, u, p, a *mat.Dense) *mat.Dense

// CustomPlot is one registered plot.
type CustomPlot struct {
	Producer Producer
	Type     Type
	// Legend holds one label per produced row.
	Legend []string
	// CombineTo, when set, draws this plot onto the named plot's figure
	// instead of its own.
	CombineTo string
	// AxesIdx remaps produced rows onto plot axes; nil means row i on
	// axis i.
	AxesIdx *mapping.Mapping
	// Color, when set, overrides the palette for every series of this
	// plot. Matplotlib "tab:" names are understood.
	Color string
	// Bounds, when set, is drawn as the plot's vertical range.
	Bounds *Bounds
}

// NaNRows returns a producer that always yields a rows-by-one NaN
// matrix: the blank canvas that plots registered with CombineTo draw
// onto.
func NaNRows(rows int) Producer {
	return func(_ float64, _ []float64, _ int, _, _, _, _ *mat.Dense) *mat.Dense {
		return NaNFilled(rows, 1)
	}
}

// StateRows returns a producer selecting rows of the state matrix.
func StateRows(rows []int) Producer {
	return ScaledStateRows(rows, 1)
}

// ScaledStateRows returns a producer selecting rows of the state matrix
// multiplied by factor. Without state data it produces a single NaN
// column of matching height.
func ScaledStateRows(rows []int, factor float64) Producer {
	captured := append([]int(nil), rows...)
	return func(_ float64, _ []float64, _ int, x, _, _, _ *mat.Dense) *mat.Dense {
		if matrixEmpty(x) {
			return NaNFilled(len(captured), 1)
		}
		out := ExtractRows(x, captured)
		if factor != 1 {
			out.Scale(factor, out)
		}
		return out
	}
}

// ControlRows returns a producer selecting rows of the control matrix.
// Without control data it produces a single NaN column of matching
// height.
func ControlRows(rows []int) Producer {
	captured := append([]int(nil), rows...)
	return func(_ float64, _ []float64, _ int, _, u, _, _ *mat.Dense) *mat.Dense {
		if matrixEmpty(u) {
			return NaNFilled(len(captured), 1)
		}
		return ExtractRows(u, captured)
	}
}

// AlgebraicRows returns a producer selecting rows of the algebraic-state
// matrix. Without algebraic data it produces a single NaN column of
// matching height.
func AlgebraicRows(rows []int) Producer {
	captured := append([]int(nil), rows...)
	return func(_ float64, _ []float64, _ int, _, _, _, a *mat.Dense) *mat.Dense {
		if matrixEmpty(a) {
			return NaNFilled(len(captured), 1)
		}
		return ExtractRows(a, captured)
	}
}
