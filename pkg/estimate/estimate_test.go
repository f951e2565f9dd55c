package estimate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funcplot/pkg/estimate"
	"funcplot/pkg/symbolic"
)

func TestRange(t *testing.T) {
	cases := []struct {
		name     string
		expr     string
		min, max float64
	}{
		{"linear", "2*x + 3", -10, 10},
		{"constant", "5", -10, 10},
		{"parabola", "x**2", -1, 1},
		{"cubic", "x**3 - 3*x", -2, 2},
		{"shifted parabola", "(x - 4)**2 + 1", 3, 5},
		{"reciprocal", "x + 1/x", -2, 2},
		{"no real critical points", "x**3 + x", -10, 10},
		{"upper semicircle", "sqrt(25 - x**2)", -1, 1},
		{"double root", "x**4", -1, 1},
		{"product with exponential", "x*exp(x)", -2, 0},
		{"exponential minus line", "exp(x) - x", -1, 1},
		{"sine plus line", "sin(x) + x", math.Pi - 1, math.Pi + 1},
		{"x log x", "x*log(x)", 1/math.E - 1, 1/math.E + 1},
		{"self power", "x**x", 1/math.E - 1, 1/math.E + 1},
		{"sine times cosine", "sin(x)*cos(x)", math.Pi/4 - 1, 7*math.Pi/4 + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := estimate.Range(symbolic.MustParse(tc.expr, "x"), "x")
			require.NoError(t, err)
			assert.InDelta(t, tc.min, d.Min, 1e-9)
			assert.InDelta(t, tc.max, d.Max, 1e-9)
		})
	}
}

func TestRange_FollowsCriticalPointSpan(t *testing.T) {
	// derivative 3x**2 - 12x + 9 = 3(x - 1)(x - 3)
	est, err := estimate.DefaultSettings().Estimate(symbolic.MustParse("x**3 - 6*x**2 + 9*x", "x"), "x")
	require.NoError(t, err)
	require.Len(t, est.CriticalPoints, 2)
	assert.InDelta(t, 1, est.CriticalPoints[0], 1e-9)
	assert.InDelta(t, 3, est.CriticalPoints[1], 1e-9)
	assert.InDelta(t, est.CriticalPoints[0]-estimate.Margin, est.Domain.Min, 1e-12)
	assert.InDelta(t, est.CriticalPoints[1]+estimate.Margin, est.Domain.Max, 1e-12)
}

func TestSettings_Override(t *testing.T) {
	s := estimate.Settings{DefaultMin: -3, DefaultMax: 7, Margin: 0.5}

	est, err := s.Estimate(symbolic.MustParse("2*x + 3", "x"), "x")
	require.NoError(t, err)
	assert.Equal(t, estimate.Domain{Min: -3, Max: 7}, est.Domain)
	assert.Empty(t, est.CriticalPoints)

	est, err = s.Estimate(symbolic.MustParse("x**2", "x"), "x")
	require.NoError(t, err)
	assert.Equal(t, estimate.Domain{Min: -0.5, Max: 0.5}, est.Domain)
}

func TestRange_ExactRationalCriticalPoints(t *testing.T) {
	// derivative (1 - x**2)/(x**2 + 1)**2 vanishes at exactly -1 and 1
	d, err := estimate.Range(symbolic.MustParse("x/(x**2 + 1)", "x"), "x")
	require.NoError(t, err)
	assert.Equal(t, estimate.Domain{Min: -2, Max: 2}, d)
}

func TestRange_PropagatesSolverFailure(t *testing.T) {
	// derivative cos(x) + x mixes a transcendental term with a polynomial
	_, err := estimate.Range(symbolic.MustParse("sin(x) + x**2/2", "x"), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, symbolic.ErrNoClosedForm)
}
