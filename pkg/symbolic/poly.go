package symbolic

import "github.com/njchilds90/gosymbol"

// Expand multiplies out products and small integer powers of sums.
func Expand(e Expr) Expr { return Canonical(gosymbol.Expand(e)) }

// Coeffs returns the coefficients of e as a polynomial in v, lowest degree
// first. Coefficients may contain other symbols but never v. ok is false
// when e is not a polynomial in v.
func Coeffs(e Expr, v string) (coeffs []Expr, ok bool) {
	ex := Expand(e)
	if !polynomial(ex, v) {
		return nil, false
	}

	// gosymbol.PolyCoeffs skips function calls, so they are added to the
	// constant term here.
	var poly, calls []Expr
	for _, term := range addTerms(ex) {
		if _, ok := term.(*gosymbol.Func); ok {
			calls = append(calls, term)
			continue
		}
		poly = append(poly, term)
	}
	byDegree := gosymbol.PolyCoeffs(gosymbol.AddOf(poly...), v)

	deg := 0
	for d := range byDegree {
		deg = max(deg, d)
	}
	coeffs = make([]Expr, deg+1)
	for d := range coeffs {
		coeffs[d] = N(0)
		if c, ok := byDegree[d]; ok {
			coeffs[d] = Canonical(c)
		}
	}
	coeffs[0] = Canonical(gosymbol.AddOf(append([]Expr{coeffs[0]}, calls...)...))
	return coeffs, true
}

// Degree returns the degree of e in v, or -1 when e is not a polynomial
// in v.
func Degree(e Expr, v string) int {
	c, ok := Coeffs(e, v)
	if !ok {
		return -1
	}
	return trimmedDegree(c)
}

func trimmedDegree(coeffs []Expr) int {
	for d := len(coeffs) - 1; d >= 0; d-- {
		if !isZero(coeffs[d]) {
			return d
		}
	}
	return 0
}

// polynomial reports whether an expanded expression is a sum of products
// of v**k, k a non-negative integer, and factors free of v.
func polynomial(e Expr, v string) bool {
	if !Has(e, v) {
		return true
	}
	switch t := e.(type) {
	case *gosymbol.Sym:
		return true
	case *gosymbol.Pow:
		s, ok := t.Base().(*gosymbol.Sym)
		n, isNum := asNum(t.ExpExpr())
		return ok && s.Name() == v && isNum && n.IsInteger() && !n.IsNegative()
	case *gosymbol.Add:
		for _, term := range t.Terms() {
			if !polynomial(term, v) {
				return false
			}
		}
		return true
	case *gosymbol.Mul:
		for _, f := range t.Factors() {
			if !polynomial(f, v) {
				return false
			}
		}
		return true
	}
	return false
}

func addTerms(e Expr) []Expr {
	if a, ok := e.(*gosymbol.Add); ok {
		return a.Terms()
	}
	return []Expr{e}
}

func mulFactors(e Expr) []Expr {
	if m, ok := e.(*gosymbol.Mul); ok {
		return m.Factors()
	}
	return []Expr{e}
}
