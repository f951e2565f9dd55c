package symbolic_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"funcplot/pkg/symbolic"
)

func eval(t *testing.T, e symbolic.Expr, x float64) float64 {
	t.Helper()
	f, err := symbolic.Compile(e, "x")
	require.NoError(t, err)
	return f(x)
}

func TestParse_Printing(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2*x + 3", "2*x + 3"},
		{"x^2", "x**2"},
		{"x**2 + y**2 - 25", "x**2 + y**2 - 25"},
		{"x - x", "0"},
		{"x/x", "1"},
		{"2**3", "8"},
		{"1/x", "1/x"},
		{"-(x)", "-x"},
		{"sqrt(4)", "2"},
		{"sqrt(x)", "sqrt(x)"},
		{"x*x", "x**2"},
		{"2*x + 3*x", "5*x"},
		{"x**2/2", "x**2/2"},
		{"ln(x)", "log(x)"},
		{"sqrt(x**2)", "abs(x)"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			e, err := symbolic.Parse(tc.in, "x", "y")
			require.NoError(t, err)
			assert.Equal(t, tc.want, symbolic.Format(e))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"(x + 1", "x +", "x + z", "2 $ x", "sin x", "x = 3", "", "asin(2)", "log(0)"} {
		t.Run(in, func(t *testing.T) {
			_, err := symbolic.Parse(in, "x")
			require.Error(t, err)
			assert.True(t, errors.Is(err, symbolic.ErrParse), "got %v", err)

			var perr *symbolic.ParseError
			require.ErrorAs(t, err, &perr)
			assert.GreaterOrEqual(t, perr.Pos, 0)
		})
	}
}

func TestParse_Precedence(t *testing.T) {
	// -x**2 is -(x**2); ** is right associative
	assert.Equal(t, -9.0, eval(t, symbolic.MustParse("-x**2", "x"), 3))
	assert.Equal(t, 512.0, eval(t, symbolic.MustParse("2**3**x", "x"), 2))
	assert.Equal(t, 0.5, eval(t, symbolic.MustParse("2**-1", "x"), 0))
	assert.Equal(t, 7.0, eval(t, symbolic.MustParse("1 + 2*3", "x"), 0))
	assert.Equal(t, 1.5, eval(t, symbolic.MustParse("3/2", "x"), 0))
	assert.Equal(t, 1500.0, eval(t, symbolic.MustParse("1.5e3", "x"), 0))
	assert.InDelta(t, 1.0, eval(t, symbolic.MustParse("ln(E)", "x"), 0), 1e-15)
	assert.InDelta(t, 0.0, eval(t, symbolic.MustParse("sin(pi)", "x"), 0), 1e-15)
}

func TestParseEquation(t *testing.T) {
	eq, err := symbolic.ParseEquation("x**2 + y**2 = 25", "x", "y")
	require.NoError(t, err)
	assert.True(t, eq.Explicit)
	assert.Equal(t, "x**2 + y**2 - 25", symbolic.Format(eq.Residual()))
	assert.Equal(t, "x**2 + y**2 = 25", eq.String())
	assert.Equal(t, "x² + y² = 25", eq.Pretty())

	eq, err = symbolic.ParseEquation("x**2 + y**2 - 25", "x", "y")
	require.NoError(t, err)
	assert.False(t, eq.Explicit)
	assert.Equal(t, "x² + y² - 25", eq.Pretty())

	_, err = symbolic.ParseEquation("x = y = 1", "x", "y")
	assert.ErrorIs(t, err, symbolic.ErrParse)
}

func TestDiff_MatchesFiniteDifference(t *testing.T) {
	exprs := []string{
		"x**3 - 3*x",
		"sin(x**2)",
		"cos(x)*exp(x)",
		"x/(x**2 + 1)",
		"sqrt(x**2 + 4)",
		"log(x**2 + 1)",
		"atan(x) + tanh(x)",
		"2**x",
		"x**x",
		"abs(x - 3)",
	}
	for _, s := range exprs {
		t.Run(s, func(t *testing.T) {
			e := symbolic.MustParse(s, "x")
			f, err := symbolic.Compile(e, "x")
			require.NoError(t, err)
			d := symbolic.Diff(e, "x")

			for _, x := range []float64{0.3, 1.1, 2.5} {
				want := fd.Derivative(f, x, &fd.Settings{Formula: fd.Central})
				assert.InDelta(t, want, eval(t, d, x), 1e-5, "at x=%g, d=%s", x, d)
			}
		})
	}
}

func TestDiff_Exact(t *testing.T) {
	cases := map[string]string{
		"x**2":     "2*x",
		"2*x + 3":  "2",
		"5":        "0",
		"x*log(x)": "log(x) + 1",
		"abs(x)":   "sign(x)",
	}
	for in, want := range cases {
		assert.Equal(t, want, symbolic.Format(symbolic.Diff(symbolic.MustParse(in, "x"), "x")), in)
	}
}

func TestPretty(t *testing.T) {
	assert.Equal(t, "2·x·y", symbolic.Pretty(symbolic.MustParse("2*x*y", "x", "y")))
	assert.Equal(t, "x² - 1", symbolic.Pretty(symbolic.MustParse("x**2 - 1", "x")))
	assert.Equal(t, "√(x)", symbolic.Pretty(symbolic.MustParse("sqrt(x)", "x")))
	assert.Equal(t, "pi", symbolic.Pretty(symbolic.Pi))
}

func TestExpandAndCoeffs(t *testing.T) {
	coeffs, ok := symbolic.Coeffs(symbolic.MustParse("(x + 1)**2", "x"), "x")
	require.True(t, ok)
	require.Len(t, coeffs, 3)
	for i, want := range []float64{1, 2, 1} {
		got, err := symbolic.Value(coeffs[i])
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.Equal(t, 3, symbolic.Degree(symbolic.MustParse("x*(x - 1)*(x + 2)", "x"), "x"))
	assert.Equal(t, -1, symbolic.Degree(symbolic.MustParse("sin(x) + x", "x"), "x"))
	assert.Equal(t, -1, symbolic.Degree(symbolic.MustParse("1/x", "x"), "x"))
}

func TestRoots(t *testing.T) {
	cases := []struct {
		in   string
		want []float64
	}{
		{"2*x", []float64{0}},
		{"3*x**2 - 3", []float64{-1, 1}},
		{"x**2 + 1", nil},
		{"7", nil},
		{"0", nil},
		{"x**3 - 6*x**2 + 11*x - 6", []float64{1, 2, 3}},
		{"4*x**3", []float64{0}},
		{"1 - 1/x**2", []float64{-1, 1}},
		{"-1/x**2", nil},
		{"x/sqrt(25 - x**2)", []float64{0}},
		{"cos(x)", []float64{math.Pi / 2, 3 * math.Pi / 2}},
		{"exp(x)", nil},
		{"2**x*log(2)", nil},
		{"(x - 2)**2", []float64{2}},
		{"exp(x) - 1", []float64{0}},
		{"log(x) + 1", []float64{1 / math.E}},
		{"cos(x) + 1", []float64{math.Pi}},
		{"2*sin(x) - 1", []float64{math.Pi / 6, 5 * math.Pi / 6}},
		{"(x + 1)*exp(x)", []float64{-1}},
		{"exp(x) + x*exp(x)", []float64{-1}},
		{"x**x*(log(x) + 1)", []float64{1 / math.E}},
		{"cos(x)**2 - sin(x)**2", []float64{math.Pi / 4, 3 * math.Pi / 4, 5 * math.Pi / 4, 7 * math.Pi / 4}},
		{"x**3 - 8", []float64{2}},
		{"x**2 - 2", []float64{-math.Sqrt2, math.Sqrt2}},
		{"(x**2 + 1)**-2*(1 - x**2)", []float64{-1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := symbolic.Roots(symbolic.MustParse(tc.in, "x"), "x")
			require.NoError(t, err)
			require.Len(t, got, len(tc.want), "roots %v", got)
			for i := range tc.want {
				assert.InDelta(t, tc.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestRoots_NoClosedForm(t *testing.T) {
	for _, in := range []string{"cos(x) + x", "exp(x) + x", "sign(x) - 1"} {
		_, err := symbolic.Roots(symbolic.MustParse(in, "x"), "x")
		assert.ErrorIs(t, err, symbolic.ErrNoClosedForm, in)
	}
}

func TestRoots_ExactForRationalDerivative(t *testing.T) {
	// d/dx x/(x**2 + 1) = (1 - x**2)/(x**2 + 1)**2
	d := symbolic.Diff(symbolic.MustParse("x/(x**2 + 1)", "x"), "x")
	got, err := symbolic.Roots(d, "x")
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 1}, got)
}

func TestPolyRoots(t *testing.T) {
	got, err := symbolic.PolyRoots([]float64{1, 0, 0, 0, -1})
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{1, -1}, got)

	// no rational roots: closed-form cubic and companion matrix paths
	got, err = symbolic.PolyRoots([]float64{-2, 0, 0, 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, math.Cbrt(2), got[0], 1e-12)

	got, err = symbolic.PolyRoots([]float64{-2, 0, 0, 0, 0, 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, math.Pow(2, 0.2), got[0], 1e-12)

	got, err = symbolic.PolyRoots([]float64{0, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, got)
}

func TestRoots_Unbound(t *testing.T) {
	_, err := symbolic.Roots(symbolic.MustParse("x + y", "x", "y"), "x")
	assert.ErrorIs(t, err, symbolic.ErrUnbound)
}

func TestSolveFor(t *testing.T) {
	t.Run("circle", func(t *testing.T) {
		e := symbolic.MustParse("x**2 + y**2 - 25", "x", "y")
		sols, err := symbolic.SolveFor(e, "y")
		require.NoError(t, err)
		require.Len(t, sols, 2)
		assert.Equal(t, "-sqrt(-x**2 + 25)", symbolic.Format(sols[0]))
		assert.Equal(t, "sqrt(-x**2 + 25)", symbolic.Format(sols[1]))
		assert.InDelta(t, -4.0, eval(t, sols[0], 3), 1e-12)
		assert.InDelta(t, 4.0, eval(t, sols[1], 3), 1e-12)
	})

	t.Run("no real branch", func(t *testing.T) {
		sols, err := symbolic.SolveFor(symbolic.MustParse("x**2 + y**2 + 25", "x", "y"), "y")
		require.NoError(t, err)
		assert.Empty(t, sols)
	})

	t.Run("linear", func(t *testing.T) {
		sols, err := symbolic.SolveFor(symbolic.MustParse("y - 2*x - 1", "x", "y"), "y")
		require.NoError(t, err)
		require.Len(t, sols, 1)
		assert.Equal(t, 7.0, eval(t, sols[0], 3))
	})

	t.Run("general quadratic", func(t *testing.T) {
		// y**2 + 2*y - x = 0  =>  y = -1 -/+ sqrt(1 + x)
		sols, err := symbolic.SolveFor(symbolic.MustParse("y**2 + 2*y - x", "x", "y"), "y")
		require.NoError(t, err)
		require.Len(t, sols, 2)
		assert.InDelta(t, -3.0, eval(t, sols[0], 3), 1e-12)
		assert.InDelta(t, 1.0, eval(t, sols[1], 3), 1e-12)
	})

	t.Run("y absent", func(t *testing.T) {
		sols, err := symbolic.SolveFor(symbolic.MustParse("x**2 - 1", "x", "y"), "y")
		require.NoError(t, err)
		assert.Empty(t, sols)
	})

	t.Run("transcendental", func(t *testing.T) {
		sols, err := symbolic.SolveFor(symbolic.MustParse("sin(y) - x", "x", "y"), "y")
		require.NoError(t, err)
		require.Len(t, sols, 2)
		assert.Equal(t, "-asin(x) + pi", symbolic.Format(sols[0]))
		assert.Equal(t, "asin(x)", symbolic.Format(sols[1]))
		assert.InDelta(t, 5*math.Pi/6, eval(t, sols[0], 0.5), 1e-12)
		assert.InDelta(t, math.Pi/6, eval(t, sols[1], 0.5), 1e-12)
	})

	t.Run("exponential", func(t *testing.T) {
		sols, err := symbolic.SolveFor(symbolic.MustParse("exp(y) - x", "x", "y"), "y")
		require.NoError(t, err)
		require.Len(t, sols, 1)
		assert.Equal(t, "log(x)", symbolic.Format(sols[0]))
	})

	t.Run("odd power", func(t *testing.T) {
		sols, err := symbolic.SolveFor(symbolic.MustParse("y**3 - x", "x", "y"), "y")
		require.NoError(t, err)
		require.Len(t, sols, 1)
		assert.InDelta(t, -2.0, eval(t, sols[0], -8), 1e-12)
		assert.InDelta(t, 3.0, eval(t, sols[0], 27), 1e-12)
	})

	t.Run("cubic", func(t *testing.T) {
		sols, err := symbolic.SolveFor(symbolic.MustParse("y**3 + y - x", "x", "y"), "y")
		require.NoError(t, err)
		require.Len(t, sols, 1)
		assert.InDelta(t, 1.0, eval(t, sols[0], 2), 1e-9)
		assert.InDelta(t, 0.0, eval(t, sols[0], 0), 1e-9)
	})

	t.Run("numeric cubic", func(t *testing.T) {
		sols, err := symbolic.SolveFor(symbolic.MustParse("y**3 - 6*y**2 + 11*y - 6", "x", "y"), "y")
		require.NoError(t, err)
		require.Len(t, sols, 3)
		for i, want := range []float64{1, 2, 3} {
			assert.InDelta(t, want, eval(t, sols[i], 0), 1e-9)
		}
	})

	t.Run("mixed", func(t *testing.T) {
		_, err := symbolic.SolveFor(symbolic.MustParse("sin(y) + y - x", "x", "y"), "y")
		assert.ErrorIs(t, err, symbolic.ErrNoClosedForm)
	})
}

func TestCompile(t *testing.T) {
	f, err := symbolic.Compile(symbolic.MustParse("1/x", "x"), "x")
	require.NoError(t, err)
	assert.True(t, math.IsInf(f(0), 1))

	f, err = symbolic.Compile(symbolic.MustParse("sqrt(x)", "x"), "x")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f(-1)))

	ys := f.Map(nil, []float64{0, 1, 4, 9})
	assert.Equal(t, []float64{0, 1, 2, 3}, ys)

	_, err = symbolic.Compile(symbolic.MustParse("x*y", "x", "y"), "x")
	assert.ErrorIs(t, err, symbolic.ErrUnbound)
}

func TestEqual(t *testing.T) {
	assert.True(t, symbolic.Equal(symbolic.MustParse("(x + 1)*(x + 1)", "x"), symbolic.MustParse("(x + 1)**2", "x")))
	assert.True(t, symbolic.Equal(symbolic.MustParse("x*exp(x)/x", "x"), symbolic.MustParse("exp(x)", "x")))
	assert.False(t, symbolic.Equal(symbolic.MustParse("x", "x"), symbolic.MustParse("-x", "x")))
}

func TestIsNegative(t *testing.T) {
	assert.True(t, symbolic.IsNegative(symbolic.MustParse("-x**2 - 25", "x")))
	assert.True(t, symbolic.IsNegative(symbolic.MustParse("-exp(x)", "x")))
	assert.False(t, symbolic.IsNegative(symbolic.MustParse("-x**2", "x")))
	assert.False(t, symbolic.IsNegative(symbolic.MustParse("25 - x**2", "x")))
	assert.False(t, symbolic.IsNegative(symbolic.MustParse("x - 1", "x")))
}
