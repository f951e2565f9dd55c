// Package render draws sampled curves: a chart file through gonum/plot and
// an optional text preview through asciigraph.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"funcplot/pkg/config"
	"funcplot/pkg/lib"
)

var ErrNothingToDraw = errors.New("no finite points to draw")

const (
	previewWidth  = 72
	previewHeight = 16
)

// Chart renders to a file, "-" meaning stdout, and optionally prints a
// text preview.
type Chart struct {
	Path    string
	Preview io.Writer // nil disables the preview
}

// New returns a Chart writing to path.
func New(path string, preview io.Writer) *Chart {
	return &Chart{Path: path, Preview: preview}
}

// Render implements plotting.Renderer.
func (c *Chart) Render(data plotter.XYer, label string, cfg config.Plot) error {
	p, err := NewPlot(data, label, cfg)
	if err != nil {
		return err
	}

	format, err := lib.FormatFor(c.Path)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Length(cfg.WidthIn)*vg.Inch, vg.Length(cfg.HeightIn)*vg.Inch, format)
	if err != nil {
		return err
	}

	sink, err := lib.OpenChartSink(c.Path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(sink); err != nil {
		sink.Discard()
		return fmt.Errorf("write %s: %w", c.Path, err)
	}
	if err := sink.Close(); err != nil {
		sink.Discard()
		return fmt.Errorf("close %s: %w", c.Path, err)
	}
	log.Debugf("wrote %s chart to %s", sink.Format, c.Path)

	if c.Preview != nil {
		w, h := previewSize(c.Preview)
		fmt.Fprintln(c.Preview, Preview(data, label, w, h))
	}
	return nil
}

// NewPlot builds the chart for data. The curve is split into one line per
// run of finite samples.
func NewPlot(data plotter.XYer, label string, cfg config.Plot) (*plot.Plot, error) {
	segs := Segments(data)
	if len(segs) == 0 {
		return nil, ErrNothingToDraw
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.XLabel
	p.Y.Label.Text = cfg.YLabel
	p.Legend.Top = true

	if cfg.Grid {
		p.Add(NewGrid(cfg.GridWhich, cfg.GridAxis))
	}

	for i, seg := range segs {
		line, err := plotter.NewLine(seg)
		if err != nil {
			return nil, err
		}
		p.Add(line)
		if i == 0 {
			p.Legend.Add(label, line)
		}
	}
	return p, nil
}

// Segments splits data at NaN and ±Inf samples into runs of finite points.
func Segments(data plotter.XYer) []plotter.XYs {
	var (
		segs []plotter.XYs
		cur  plotter.XYs
	)
	for i := 0; i < data.Len(); i++ {
		x, y := data.XY(i)
		if !finite(x) || !finite(y) {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: x, Y: y})
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

// Preview renders data as a text chart of roughly width x height cells.
// Non-finite samples show up as gaps.
func Preview(data plotter.XYer, caption string, width, height int) string {
	ys := make([]float64, data.Len())
	for i := range ys {
		_, y := data.XY(i)
		if !finite(y) {
			y = math.NaN()
		}
		ys[i] = y
	}
	return asciigraph.Plot(ys,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

func previewSize(w io.Writer) (int, int) {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, rows, err := term.GetSize(int(f.Fd())); err == nil && cols > 20 && rows > 8 {
			return min(cols-12, previewWidth*2), min(rows/2, previewHeight)
		}
	}
	return previewWidth, previewHeight
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
