// Package plotting turns user text into a sampled curve: it parses the
// expression, estimates a domain, samples it and hands the series to a
// Renderer.
package plotting

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotter"

	"funcplot/pkg/config"
	"funcplot/pkg/estimate"
	"funcplot/pkg/symbolic"
)

var (
	ErrNoSolution      = errors.New("no solution for y")
	ErrNoFiniteSamples = errors.New("function is undefined over the whole domain")
)

// Renderer draws a sampled curve.
type Renderer interface {
	Render(data plotter.XYer, label string, cfg config.Plot) error
}

// Plotter plots functions and equations through a Renderer.
type Plotter struct {
	Renderer Renderer
	Settings estimate.Settings
}

// New returns a Plotter drawing with r and estimating domains with s.
func New(r Renderer, s estimate.Settings) *Plotter {
	return &Plotter{Renderer: r, Settings: s}
}

// Result describes a plot that was rendered.
type Result struct {
	Expr           symbolic.Expr
	Label          string
	Domain         estimate.Domain
	CriticalPoints []float64
	Series         Series
	Plot           config.Plot
}

// PlotFunction plots y = f(x) given as text in x.
func (p *Plotter) PlotFunction(text string, n int, cfg config.Plot) (res *Result, err error) {
	defer guard(&res, &err)

	if cfg.Title == "" {
		cfg.Title = config.DefaultFunctionTitle
	}
	expr, err := symbolic.Parse(text, "x")
	if err != nil {
		return nil, err
	}
	log.Debugf("parsed function: %s", symbolic.Format(expr))
	return p.plot(expr, text, n, cfg)
}

// PlotEquation plots an equation in x and y, written either as lhs = rhs
// or as an expression meant to equal zero. The equation is solved for y
// and the first real branch is drawn.
func (p *Plotter) PlotEquation(text string, n int, cfg config.Plot) (res *Result, err error) {
	defer guard(&res, &err)

	if cfg.Title == "" {
		cfg.Title = config.DefaultEquationTitle
	}
	eq, err := symbolic.ParseEquation(text, "x", "y")
	if err != nil {
		return nil, err
	}
	log.Debugf("parsed equation: %s", eq)

	sols, err := symbolic.SolveFor(eq.Residual(), "y")
	if err != nil {
		return nil, fmt.Errorf("solve %s for y: %w", eq, err)
	}
	if len(sols) == 0 {
		return nil, ErrNoSolution
	}
	for i, s := range sols {
		log.Debugf("branch %d: y = %s", i, symbolic.Format(s))
	}
	return p.plot(sols[0], eq.Pretty(), n, cfg)
}

func (p *Plotter) plot(expr symbolic.Expr, label string, n int, cfg config.Plot) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrSampleCount, n)
	}

	est, err := p.Settings.Estimate(expr, "x")
	if err != nil {
		return nil, err
	}
	log.Debugf("domain: %s", est.Domain)

	f, err := symbolic.Compile(expr, "x")
	if err != nil {
		return nil, err
	}
	series, err := Sample(f, est.Domain, n)
	if err != nil {
		return nil, err
	}

	finite := series.Finite()
	if finite == 0 {
		return nil, fmt.Errorf("%s on %s: %w", symbolic.Format(expr), est.Domain, ErrNoFiniteSamples)
	}
	if log.IsLevelEnabled(log.TraceLevel) {
		ys := make([]float64, 0, finite)
		for _, y := range series.Y {
			if !isNonFinite(y) {
				ys = append(ys, y)
			}
		}
		log.Tracef("%d/%d finite samples, y in [%g, %g]", finite, n, floats.Min(ys), floats.Max(ys))
	}

	if err := p.Renderer.Render(series, label, cfg); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return &Result{
		Expr:           expr,
		Label:          label,
		Domain:         est.Domain,
		CriticalPoints: est.CriticalPoints,
		Series:         series,
		Plot:           cfg,
	}, nil
}

// guard turns a panic below the plotters into an error.
func guard(res **Result, err *error) {
	if r := recover(); r != nil {
		*res = nil
		*err = fmt.Errorf("unexpected failure: %v", r)
	}
}
