package symbolic

import (
	"math"

	"github.com/njchilds90/gosymbol"
)

// theta stands in for the shared argument of a trigonometric sum. The
// parser never produces it since it is not a declared variable.
const theta = "θ"

// periodicRoots solves e = 0 when v occurs only inside sin, cos and tan of
// one shared argument a*v + b. The argument's roots are searched over one
// period, [0, 2*pi), with gosymbol's Newton scan and mapped back to v.
func periodicRoots(e Expr, v string) ([]float64, bool) {
	arg, ok := trigArg(e, v)
	if !ok {
		return nil, false
	}
	cs, ok := Coeffs(arg, v)
	if !ok || trimmedDegree(cs) != 1 {
		return nil, false
	}
	a, err := Value(cs[1])
	if err != nil {
		return nil, false
	}
	b, err := Value(cs[0])
	if err != nil {
		return nil, false
	}

	g := substitute(e, key(arg), S(theta))
	res := gosymbol.SolvePolynomialNewton(g, theta, 2*math.Pi, 1e-12, 100)

	var ts []float64
	for _, s := range res.Solutions {
		t := math.Mod(s.(*gosymbol.Num).Float64(), 2*math.Pi)
		if t < 0 {
			t += 2 * math.Pi
		}
		if 2*math.Pi-t < 1e-9 {
			t = 0
		}
		ts = append(ts, t)
	}

	out := make([]float64, 0, len(ts))
	for _, t := range distinct(ts) {
		out = append(out, (t-b)/a)
	}
	return out, true
}

// trigArg returns the argument shared by every sin, cos and tan call of e
// that depends on v. ok is false when v also occurs elsewhere.
func trigArg(e Expr, v string) (arg Expr, ok bool) {
	var walk func(Expr) bool
	walk = func(e Expr) bool {
		if !Has(e, v) {
			return true
		}
		switch t := e.(type) {
		case *gosymbol.Func:
			switch t.FuncName() {
			case "sin", "cos", "tan":
				if arg == nil {
					arg = t.Arg()
					return true
				}
				return key(arg) == key(t.Arg())
			}
		case *gosymbol.Add:
			for _, term := range t.Terms() {
				if !walk(term) {
					return false
				}
			}
			return true
		case *gosymbol.Mul:
			for _, f := range t.Factors() {
				if !walk(f) {
					return false
				}
			}
			return true
		case *gosymbol.Pow:
			return walk(t.Base()) && walk(t.ExpExpr())
		}
		return false
	}
	return arg, walk(e) && arg != nil
}

// substitute replaces the argument of every sin, cos and tan call whose
// argument has the given key by sym.
func substitute(e Expr, argKey string, sym Expr) Expr {
	switch t := e.(type) {
	case *gosymbol.Func:
		switch t.FuncName() {
		case "sin", "cos", "tan":
			if key(t.Arg()) == argKey {
				return builders[t.FuncName()](sym)
			}
		}
		return e
	case *gosymbol.Add:
		terms := make([]Expr, len(t.Terms()))
		for i, term := range t.Terms() {
			terms[i] = substitute(term, argKey, sym)
		}
		return gosymbol.AddOf(terms...)
	case *gosymbol.Mul:
		factors := make([]Expr, len(t.Factors()))
		for i, f := range t.Factors() {
			factors[i] = substitute(f, argKey, sym)
		}
		return gosymbol.MulOf(factors...)
	case *gosymbol.Pow:
		return gosymbol.PowOf(substitute(t.Base(), argKey, sym), substitute(t.ExpExpr(), argKey, sym))
	}
	return e
}
