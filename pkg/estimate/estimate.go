// Package estimate guesses an interesting plotting domain for a function
// from the critical points of its first derivative.
package estimate

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"funcplot/pkg/symbolic"
)

// Defaults for Settings. A function without real critical points is
// plotted over [DefaultMin, DefaultMax]; otherwise the critical points are
// padded by Margin on each side.
const (
	DefaultMin = -10.0
	DefaultMax = 10.0
	Margin     = 1.0
)

// Domain is the inclusive interval [Min, Max] a function is sampled over.
type Domain struct {
	Min, Max float64
}

func (d Domain) String() string { return fmt.Sprintf("[%g, %g]", d.Min, d.Max) }

// Settings holds the tunable constants of the estimator.
type Settings struct {
	DefaultMin float64 `toml:"default_min"`
	DefaultMax float64 `toml:"default_max"`
	Margin     float64 `toml:"margin"`
}

// DefaultSettings returns the package defaults.
func DefaultSettings() Settings {
	return Settings{DefaultMin: DefaultMin, DefaultMax: DefaultMax, Margin: Margin}
}

// Estimate is the outcome of a range estimation.
type Estimate struct {
	Domain         Domain
	Derivative     symbolic.Expr
	CriticalPoints []float64
}

// Range estimates the domain of expr in v with the default settings.
func Range(expr symbolic.Expr, v string) (Domain, error) {
	est, err := DefaultSettings().Estimate(expr, v)
	if err != nil {
		return Domain{}, err
	}
	return est.Domain, nil
}

// Estimate differentiates expr once in v and solves for the real critical
// points. Having none is not an error; it selects the default domain.
func (s Settings) Estimate(expr symbolic.Expr, v string) (Estimate, error) {
	d := symbolic.Diff(expr, v)
	log.Debugf("d/d%s %s = %s", v, symbolic.Format(expr), symbolic.Format(d))

	roots, err := symbolic.Roots(d, v)
	if err != nil {
		return Estimate{}, fmt.Errorf("critical points of %s: %w", symbolic.Format(expr), err)
	}

	est := Estimate{Derivative: d, CriticalPoints: roots}
	if len(roots) == 0 {
		log.Debugf("no real critical points, using default domain")
		est.Domain = Domain{Min: s.DefaultMin, Max: s.DefaultMax}
		return est, nil
	}

	log.Debugf("critical points: %v", roots)
	est.Domain = Domain{
		Min: floats.Min(roots) - s.Margin,
		Max: floats.Max(roots) + s.Margin,
	}
	return est, nil
}
