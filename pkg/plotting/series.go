package plotting

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"funcplot/pkg/estimate"
	"funcplot/pkg/symbolic"
)

// ErrSampleCount is returned for fewer than two samples.
var ErrSampleCount = errors.New("need at least 2 samples")

// Series holds n samples of a function. X is evenly spaced over a domain,
// both ends included. Y may hold NaN or ±Inf where the function is
// undefined.
type Series struct {
	X, Y []float64
}

// Len implements plotter.XYer.
func (s Series) Len() int { return len(s.X) }

// XY implements plotter.XYer.
func (s Series) XY(i int) (float64, float64) { return s.X[i], s.Y[i] }

// Finite counts the samples with a finite Y.
func (s Series) Finite() int {
	n := 0
	for _, y := range s.Y {
		if !isNonFinite(y) {
			n++
		}
	}
	return n
}

func isNonFinite(y float64) bool { return math.IsNaN(y) || math.IsInf(y, 0) }

// Sample evaluates f at n evenly spaced points of d.
func Sample(f symbolic.Func1, d estimate.Domain, n int) (Series, error) {
	if n < 2 {
		return Series{}, fmt.Errorf("%w, got %d", ErrSampleCount, n)
	}
	xs := floats.Span(make([]float64, n), d.Min, d.Max)
	xs[n-1] = d.Max
	return Series{X: xs, Y: f.Map(nil, xs)}, nil
}
