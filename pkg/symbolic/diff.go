package symbolic

import "github.com/njchilds90/gosymbol"

// Diff returns the derivative of e with respect to v in canonical form.
func Diff(e Expr, v string) Expr {
	return Canonical(resolveStubs(gosymbol.Diff(e, v)))
}

// stubs gives the derivative of the functions gosymbol leaves as an
// unevaluated D[name](u) call.
var stubs = map[string]func(u Expr) Expr{
	"D[abs]":  gosymbol.SignOf,
	"D[sign]": func(Expr) Expr { return N(0) },
}

// resolveStubs rebuilds e with every known D[name](u) replaced.
func resolveStubs(e Expr) Expr {
	switch t := e.(type) {
	case *gosymbol.Add:
		terms := make([]Expr, len(t.Terms()))
		for i, term := range t.Terms() {
			terms[i] = resolveStubs(term)
		}
		return gosymbol.AddOf(terms...)
	case *gosymbol.Mul:
		factors := make([]Expr, len(t.Factors()))
		for i, f := range t.Factors() {
			factors[i] = resolveStubs(f)
		}
		return gosymbol.MulOf(factors...)
	case *gosymbol.Pow:
		return gosymbol.PowOf(resolveStubs(t.Base()), resolveStubs(t.ExpExpr()))
	case *gosymbol.Func:
		arg := resolveStubs(t.Arg())
		if d, ok := stubs[t.FuncName()]; ok {
			return d(arg)
		}
		if f, ok := apply(t.FuncName(), arg); ok {
			return f
		}
	}
	return e
}
