package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"funcplot/pkg/config"
)

// Grid draws grid lines at the major and/or minor ticks of one or both
// axes. plotter.Grid only knows about major ticks.
type Grid struct {
	Which string // config.GridBoth, GridMajor or GridMinor
	Axis  string // config.GridBoth, AxisX or AxisY

	Major draw.LineStyle
	Minor draw.LineStyle
}

// NewGrid returns a grid with the default line styles.
func NewGrid(which, axis string) *Grid {
	return &Grid{
		Which: which,
		Axis:  axis,
		Major: plotter.DefaultGridLineStyle,
		Minor: draw.LineStyle{
			Color:  color.Gray{Y: 200},
			Width:  vg.Points(0.25),
			Dashes: []vg.Length{vg.Points(1), vg.Points(2)},
		},
	}
}

func (g *Grid) style(tk plot.Tick) (draw.LineStyle, bool) {
	if tk.IsMinor() {
		return g.Minor, g.Which != config.GridMajor
	}
	return g.Major, g.Which != config.GridMinor
}

// Plot implements plot.Plotter.
func (g *Grid) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	if g.Axis != config.AxisY {
		for _, tk := range plt.X.Tick.Marker.Ticks(plt.X.Min, plt.X.Max) {
			sty, ok := g.style(tk)
			if !ok {
				continue
			}
			x := trX(tk.Value)
			c.StrokeLine2(sty, x, c.Min.Y, x, c.Max.Y)
		}
	}

	if g.Axis != config.AxisX {
		for _, tk := range plt.Y.Tick.Marker.Ticks(plt.Y.Min, plt.Y.Max) {
			sty, ok := g.style(tk)
			if !ok {
				continue
			}
			y := trY(tk.Value)
			c.StrokeLine2(sty, c.Min.X, y, c.Max.X, y)
		}
	}
}
