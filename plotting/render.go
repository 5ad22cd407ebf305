package plotting

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// The matplotlib tab10 palette, which the model colors are named after.
var tabPalette = map[string]color.Color{
	"tab:blue":   color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"tab:orange": color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	"tab:green":  color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"tab:red":    color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"tab:purple": color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	"tab:brown":  color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	"tab:pink":   color.RGBA{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	"tab:gray":   color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	"tab:olive":  color.RGBA{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	"tab:cyan":   color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

// SeriesColor resolves a color name to a drawable color. Unknown or
// empty names fall back to the default palette color of the series
// index.
func SeriesColor(name string, series int) color.Color {
	if c, ok := tabPalette[name]; ok {
		return c
	}
	return plotutil.Color(series)
}

// Render draws every top-level plot in the registry over d and writes
// one PNG per figure into dir, creating it if needed. Plots registered
// with CombineTo draw onto their target's figure instead of their own.
// It returns the files written, in figure order.
func Render(reg *Registry, d *Data, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating plot directory")
	}
	var files []string
	for _, name := range reg.Names() {
		cp, _ := reg.Get(name)
		if cp.CombineTo != "" {
			continue
		}
		fig := plot.New()
		fig.Title.Text = name
		fig.X.Label.Text = "time [s]"
		if cp.Bounds != nil {
			fig.Y.Min = cp.Bounds.Min
			fig.Y.Max = cp.Bounds.Max
		}
		if err := drawOne(fig, name, cp, d); err != nil {
			return nil, err
		}
		for _, sub := range reg.combinedInto(name) {
			subPlot, _ := reg.Get(sub)
			if err := drawOne(fig, sub, subPlot, d); err != nil {
				return nil, err
			}
		}
		file := filepath.Join(dir, name+".png")
		if err := fig.Save(6*vg.Inch, 4*vg.Inch, file); err != nil {
			return nil, errors.Wrapf(err, "saving plot %q", name)
		}
		files = append(files, file)
	}
	return files, nil
}

func drawOne(fig *plot.Plot, name string, cp *CustomPlot, d *Data) error {
	if cp.Producer == nil {
		return nil
	}
	produced := cp.Producer(d.T0, d.PhasesDt, 0, d.X, d.U, d.P, d.A)
	produced, err := remapRows(produced, cp.AxesIdx)
	if err != nil {
		return errors.Wrapf(err, "plot %q", name)
	}
	if produced == nil {
		return nil
	}
	rows, _ := produced.Dims()
	for i := 0; i < rows; i++ {
		pts := seriesPoints(produced, i, d.Time)
		if len(pts) == 0 {
			continue
		}
		label := seriesLabel(cp.Legend, name, i)
		seriesColor := SeriesColor(cp.Color, i)
		if cp.Type == TypePoint {
			scatter, err := plotter.NewScatter(pts)
			if err != nil {
				return errors.Wrapf(err, "plot %q series %d", name, i)
			}
			scatter.Color = seriesColor
			fig.Add(scatter)
			fig.Legend.Add(label, scatter)
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrapf(err, "plot %q series %d", name, i)
		}
		line.Color = seriesColor
		if cp.Type == TypeStep {
			line.StepStyle = plotter.PostStep
		}
		fig.Add(line)
		fig.Legend.Add(label, line)
	}
	return nil
}

// seriesPoints builds the drawable points of one produced row, plotting
// against the time grid where available and the column index past it.
// NaN samples are dropped.
func seriesPoints(m *mat.Dense, row int, time []float64) plotter.XYs {
	_, cols := m.Dims()
	pts := make(plotter.XYs, 0, cols)
	for j := 0; j < cols; j++ {
		v := m.At(row, j)
		if math.IsNaN(v) {
			continue
		}
		x := float64(j)
		if j < len(time) {
			x = time[j]
		}
		pts = append(pts, plotter.XY{X: x, Y: v})
	}
	return pts
}

func seriesLabel(legend []string, name string, i int) string {
	if i < len(legend) {
		return legend[i]
	}
	return fmt.Sprintf("%s[%d]", name, i)
}
