package plotting

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/openmotionlab/trajopt/mapping"
)

// Data carries the numeric series producers consume plus the time grid
// used for the horizontal axis. All matrices are optional; producers fall
// back to NaN output for the ones they need but do not get.
type Data struct {
	T0       float64
	PhasesDt []float64
	// Time holds one entry per matrix column. When shorter than a
	// produced row, remaining samples plot against their column index.
	Time []float64
	// X, U, P, A are the state, control, parameter and algebraic-state
	// series, one row per scalar and one column per sample.
	X *mat.Dense
	U *mat.Dense
	P *mat.Dense
	A *mat.Dense
}

// NaNFilled returns a rows by cols matrix with every entry NaN.
func NaNFilled(rows, cols int) *mat.Dense {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = math.NaN()
	}
	return mat.NewDense(rows, cols, data)
}

// ExtractRows returns a new matrix holding the given rows of m in the
// given order. Rows outside m panic, matching gonum's own access rules.
func ExtractRows(m *mat.Dense, rows []int) *mat.Dense {
	_, cols := m.Dims()
	if len(rows) == 0 || cols == 0 {
		return nil
	}
	out := mat.NewDense(len(rows), cols, nil)
	for i, r := range rows {
		out.SetRow(i, m.RawRowView(r))
	}
	return out
}

func matrixEmpty(m *mat.Dense) bool {
	if m == nil {
		return true
	}
	r, c := m.Dims()
	return r == 0 || c == 0
}

// remapRows reorders a produced matrix's rows onto plot axes: output row
// i is the produced row the mapping's entry i names, with sign flips
// applied and zero slots all-NaN.
func remapRows(m *mat.Dense, axes *mapping.Mapping) (*mat.Dense, error) {
	if axes == nil || m == nil {
		return m, nil
	}
	rows, cols := m.Dims()
	out := mat.NewDense(axes.Len(), cols, nil)
	for i := 0; i < axes.Len(); i++ {
		idx := axes.At(i)
		if idx.IsZero() {
			for j := 0; j < cols; j++ {
				out.Set(i, j, math.NaN())
			}
			continue
		}
		if idx.Source() >= rows {
			return nil, errors.Errorf("axes mapping needs row %d but the plot only produced %d", idx.Source(), rows)
		}
		for j := 0; j < cols; j++ {
			v := m.At(idx.Source(), j)
			if idx.Flipped() {
				v = -v
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}
