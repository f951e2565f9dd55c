package symbolic

import (
	"fmt"
	"math"

	"github.com/njchilds90/gosymbol"
)

// inverses gives, per function f, the real u with f(u) = t. Periodic
// functions list the solutions within one period.
var inverses = map[string]func(t float64) ([]float64, error){
	"sin": func(t float64) ([]float64, error) {
		if math.Abs(t) > 1 {
			return nil, nil
		}
		a := math.Asin(t)
		return []float64{a, math.Pi - a}, nil
	},
	"cos": func(t float64) ([]float64, error) {
		if math.Abs(t) > 1 {
			return nil, nil
		}
		a := math.Acos(t)
		return []float64{a, 2*math.Pi - a}, nil
	},
	"tan": func(t float64) ([]float64, error) { return []float64{math.Atan(t)}, nil },
	"asin": func(t float64) ([]float64, error) {
		if math.Abs(t) > math.Pi/2 {
			return nil, nil
		}
		return []float64{math.Sin(t)}, nil
	},
	"acos": func(t float64) ([]float64, error) {
		if t < 0 || t > math.Pi {
			return nil, nil
		}
		return []float64{math.Cos(t)}, nil
	},
	"atan": func(t float64) ([]float64, error) {
		if math.Abs(t) >= math.Pi/2 {
			return nil, nil
		}
		return []float64{math.Tan(t)}, nil
	},
	"sinh": func(t float64) ([]float64, error) { return []float64{math.Asinh(t)}, nil },
	"cosh": func(t float64) ([]float64, error) {
		if t < 1 {
			return nil, nil
		}
		a := math.Acosh(t)
		return []float64{-a, a}, nil
	},
	"tanh": func(t float64) ([]float64, error) {
		if math.Abs(t) >= 1 {
			return nil, nil
		}
		return []float64{math.Atanh(t)}, nil
	},
	"exp": func(t float64) ([]float64, error) {
		if t <= 0 {
			return nil, nil
		}
		return []float64{math.Log(t)}, nil
	},
	"ln": func(t float64) ([]float64, error) { return []float64{math.Exp(t)}, nil },
	"abs": func(t float64) ([]float64, error) {
		if t < 0 {
			return nil, nil
		}
		return []float64{-t, t}, nil
	},
	"sign": func(t float64) ([]float64, error) {
		switch t {
		case 0:
			return []float64{0}, nil
		case 1, -1:
			// a whole half line
			return nil, ErrNoClosedForm
		}
		return nil, nil
	},
}

// invertRoots returns the v with g(v) = t, for g a single function call or
// power.
func invertRoots(g Expr, t float64, v string) ([]float64, error) {
	var u Expr
	var vals []float64
	switch g := g.(type) {
	case *gosymbol.Sym:
		return []float64{t}, nil

	case *gosymbol.Func:
		inv, ok := inverses[g.FuncName()]
		if !ok {
			return nil, fmt.Errorf("%s = %g: %w", Format(g), t, ErrNoClosedForm)
		}
		var err error
		if vals, err = inv(t); err != nil {
			return nil, fmt.Errorf("%s = %g: %w", Format(g), t, err)
		}
		u = g.Arg()

	case *gosymbol.Pow:
		if n, ok := asNum(g.ExpExpr()); ok {
			u, vals = g.Base(), powInverse(n.Float64(), t)
			break
		}
		b, ok := asNum(g.Base())
		if !ok || !b.IsPositive() || b.IsOne() {
			if t == 0 {
				return nil, nil
			}
			return nil, fmt.Errorf("%s = %g: %w", Format(g), t, ErrNoClosedForm)
		}
		u = g.ExpExpr()
		if t > 0 {
			vals = []float64{math.Log(t) / math.Log(b.Float64())}
		}

	default:
		return roots(Canonical(SubOf(g, gosymbol.NFloat(t))), v)
	}

	var out []float64
	for _, w := range vals {
		rs, err := roots(Canonical(SubOf(u, gosymbol.NFloat(w))), v)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}

// powInverse returns the real u with u**p = t.
func powInverse(p, t float64) []float64 {
	if p != math.Trunc(p) {
		if t < 0 || t == 0 && p < 0 {
			return nil
		}
		return []float64{math.Pow(t, 1/p)}
	}
	if p < 0 {
		if t == 0 {
			return nil
		}
		p, t = -p, 1/t
	}
	if math.Mod(p, 2) == 1 {
		return []float64{math.Copysign(math.Pow(math.Abs(t), 1/p), t)}
	}
	switch {
	case t < 0:
		return nil
	case t == 0:
		return []float64{0}
	}
	r := math.Pow(t, 1/p)
	return []float64{-r, r}
}

// symbolicInverses is the counterpart of inverses for a symbolic right-hand
// side. Branches follow the same period convention.
var symbolicInverses = map[string]func(t Expr) []Expr{
	"sin": func(t Expr) []Expr {
		a, ok := apply("asin", t)
		if !ok {
			return nil
		}
		return []Expr{SubOf(Pi, a), a}
	},
	"cos": func(t Expr) []Expr {
		a, ok := apply("acos", t)
		if !ok {
			return nil
		}
		return []Expr{SubOf(gosymbol.MulOf(N(2), Pi), a), a}
	},
	"tan":  func(t Expr) []Expr { return calls("atan", t) },
	"asin": func(t Expr) []Expr { return calls("sin", t) },
	"acos": func(t Expr) []Expr { return calls("cos", t) },
	"atan": func(t Expr) []Expr { return calls("tan", t) },
	"sinh": func(t Expr) []Expr {
		// asinh(t) = log(t + sqrt(t**2 + 1))
		return calls("ln", gosymbol.AddOf(t, Sqrt(gosymbol.AddOf(gosymbol.PowOf(t, N(2)), N(1)))))
	},
	"cosh": func(t Expr) []Expr {
		// acosh(t) = log(t + sqrt(t**2 - 1)), t >= 1
		a := calls("ln", gosymbol.AddOf(t, Sqrt(gosymbol.AddOf(gosymbol.PowOf(t, N(2)), N(-1)))))
		if a == nil {
			return nil
		}
		return []Expr{Neg(a[0]), a[0]}
	},
	"tanh": func(t Expr) []Expr {
		// atanh(t) = log((1 + t)/(1 - t))/2
		a := calls("ln", DivOf(gosymbol.AddOf(N(1), t), SubOf(N(1), t)))
		if a == nil {
			return nil
		}
		return []Expr{gosymbol.MulOf(F(1, 2), a[0])}
	},
	"exp": func(t Expr) []Expr {
		if IsNegative(t) {
			return nil
		}
		return calls("ln", t)
	},
	"ln": func(t Expr) []Expr { return calls("exp", t) },
	"abs": func(t Expr) []Expr {
		if IsNegative(t) {
			return nil
		}
		return []Expr{Neg(t), t}
	},
}

// calls is apply returning a one-element slice, or nil when the call is
// undefined.
func calls(name string, arg Expr) []Expr {
	e, ok := apply(name, arg)
	if !ok {
		return nil
	}
	return []Expr{e}
}

// invertFor solves g = t for v, for g a single function call or power.
func invertFor(g, t Expr, v string) ([]Expr, error) {
	var u Expr
	var vals []Expr
	switch g := g.(type) {
	case *gosymbol.Sym:
		return []Expr{t}, nil

	case *gosymbol.Func:
		inv, ok := symbolicInverses[g.FuncName()]
		if !ok {
			return nil, fmt.Errorf("%s = %s for %s: %w", Format(g), Format(t), v, ErrNoClosedForm)
		}
		u, vals = g.Arg(), inv(t)

	case *gosymbol.Pow:
		if n, ok := asNum(g.ExpExpr()); ok {
			u, vals = g.Base(), rootsOf(n, t)
			break
		}
		b, ok := asNum(g.Base())
		if !ok || !b.IsPositive() || b.IsOne() {
			return nil, fmt.Errorf("%s = %s for %s: %w", Format(g), Format(t), v, ErrNoClosedForm)
		}
		u = g.ExpExpr()
		if !IsNegative(t) {
			vals = calls("ln", t)
			for i := range vals {
				vals[i] = DivOf(vals[i], gosymbol.LnOf(b))
			}
		}

	default:
		return SolveFor(SubOf(g, t), v)
	}

	var out []Expr
	for _, w := range vals {
		sols, err := SolveFor(SubOf(u, w), v)
		if err != nil {
			return nil, err
		}
		out = append(out, sols...)
	}
	return distinctExprs(out), nil
}

// rootsOf returns the real u with u**p = t.
func rootsOf(p *gosymbol.Num, t Expr) []Expr {
	t = Canonical(t)
	if !p.IsInteger() {
		if IsNegative(t) {
			return nil
		}
		return []Expr{Canonical(gosymbol.PowOf(t, gosymbol.PowOf(p, N(-1))))}
	}

	n := p.Rat().Num().Int64()
	if n < 0 {
		if isZero(t) {
			return nil
		}
		n, t = -n, Canonical(gosymbol.PowOf(t, N(-1)))
	}
	switch {
	case n == 1:
		return []Expr{t}
	case isZero(t):
		return []Expr{N(0)}
	}
	if n%2 == 1 {
		if c, ok := asNum(t); ok {
			f := c.Float64()
			return []Expr{gosymbol.NFloat(math.Copysign(math.Pow(math.Abs(f), 1/float64(n)), f))}
		}
		return []Expr{gosymbol.MulOf(gosymbol.SignOf(t), gosymbol.PowOf(gosymbol.AbsOf(t), F(1, n)))}
	}
	if IsNegative(t) {
		return nil
	}
	r := power(t, F(1, n))
	return []Expr{Neg(r), r}
}
