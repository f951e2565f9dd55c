package symbolic

import (
	"math/big"

	"github.com/njchilds90/gosymbol"
)

// Canonical rewrites e so that like terms of a sum share one coefficient,
// equal bases of a product share one exponent and exact square roots of
// rationals are evaluated. gosymbol's own constructors only fold numbers
// and bare symbols; every expression this package hands out has been
// through Canonical.
func Canonical(e Expr) Expr {
	switch t := e.(type) {
	case *gosymbol.Add:
		terms := make([]Expr, len(t.Terms()))
		for i, term := range t.Terms() {
			terms[i] = Canonical(term)
		}
		return collect(terms)

	case *gosymbol.Mul:
		factors := make([]Expr, len(t.Factors()))
		for i, f := range t.Factors() {
			factors[i] = Canonical(f)
		}
		return merge(factors)

	case *gosymbol.Pow:
		return power(Canonical(t.Base()), Canonical(t.ExpExpr()))

	case *gosymbol.Func:
		if f, ok := apply(t.FuncName(), Canonical(t.Arg())); ok {
			return f
		}
	}
	return e
}

// collect sums like terms. Terms keep the order of their first occurrence.
func collect(terms []Expr) Expr {
	type like struct {
		coeff *gosymbol.Num
		body  Expr
	}
	constant := N(0)
	groups := map[string]*like{}
	var order []string

	for _, term := range flattenAdd(terms) {
		c, body := splitCoeff(term)
		if body == nil {
			constant = addNum(constant, c)
			continue
		}
		k := key(body)
		if g, ok := groups[k]; ok {
			g.coeff = addNum(g.coeff, c)
			continue
		}
		groups[k] = &like{coeff: c, body: body}
		order = append(order, k)
	}

	out := make([]Expr, 0, len(order)+1)
	for _, k := range order {
		if g := groups[k]; !g.coeff.IsZero() {
			out = append(out, gosymbol.MulOf(g.coeff, g.body))
		}
	}
	return gosymbol.AddOf(append(out, constant)...)
}

func flattenAdd(terms []Expr) []Expr {
	var out []Expr
	for _, t := range terms {
		if a, ok := t.(*gosymbol.Add); ok {
			out = append(out, flattenAdd(a.Terms())...)
			continue
		}
		out = append(out, t)
	}
	return out
}

// splitCoeff splits a term into its numeric coefficient and the rest. The
// rest is nil for a plain number.
func splitCoeff(term Expr) (*gosymbol.Num, Expr) {
	switch t := term.(type) {
	case *gosymbol.Num:
		return t, nil
	case *gosymbol.Mul:
		fs := t.Factors()
		if c, ok := asNum(fs[0]); ok {
			return c, gosymbol.MulOf(fs[1:]...)
		}
	}
	return N(1), term
}

// merge multiplies factors, adding the exponents of equal bases.
func merge(factors []Expr) Expr {
	type like struct {
		base Expr
		exps []Expr
	}
	coeff := N(1)
	groups := map[string]*like{}
	var order []string

	for _, f := range flattenMul(factors) {
		if n, ok := asNum(f); ok {
			coeff = mulNum(coeff, n)
			continue
		}
		base, exp := splitPow(f)
		k := key(base)
		if g, ok := groups[k]; ok {
			g.exps = append(g.exps, exp)
			continue
		}
		groups[k] = &like{base: base, exps: []Expr{exp}}
		order = append(order, k)
	}

	out := []Expr{coeff}
	for _, k := range order {
		g := groups[k]
		out = append(out, power(g.base, Canonical(gosymbol.AddOf(g.exps...))))
	}
	return gosymbol.MulOf(out...)
}

func flattenMul(factors []Expr) []Expr {
	var out []Expr
	for _, f := range factors {
		if m, ok := f.(*gosymbol.Mul); ok {
			out = append(out, flattenMul(m.Factors())...)
			continue
		}
		out = append(out, f)
	}
	return out
}

func splitPow(f Expr) (base, exp Expr) {
	if p, ok := f.(*gosymbol.Pow); ok {
		return p.Base(), p.ExpExpr()
	}
	return f, N(1)
}

// power is gosymbol.PowOf plus exact evaluation of half-integer powers of
// perfect squares, e.g. 4**(1/2) = 2. An even power raised to a fraction
// keeps its sign: (x**2)**(1/2) is abs(x).
func power(base, exp Expr) Expr {
	if inner, ok := base.(*gosymbol.Pow); ok {
		n, ok1 := asNum(inner.ExpExpr())
		x, ok2 := asNum(exp)
		if ok1 && ok2 && isEven(n) && !x.IsInteger() {
			base = gosymbol.PowOf(gosymbol.AbsOf(inner.Base()), n)
		}
	}
	b, ok1 := asNum(base)
	x, ok2 := asNum(exp)
	if ok1 && ok2 && !b.IsNegative() {
		xr := x.Rat()
		if xr.Denom().Cmp(big.NewInt(2)) == 0 {
			if r, ok := ratSqrt(b.Rat()); ok {
				return gosymbol.PowOf(R(r), R(new(big.Rat).SetInt(xr.Num())))
			}
		}
	}
	return gosymbol.PowOf(base, exp)
}

// ratSqrt returns the exact square root of r when there is one.
func ratSqrt(r *big.Rat) (*big.Rat, bool) {
	num, den := r.Num(), r.Denom()
	sn, sd := new(big.Int).Sqrt(num), new(big.Int).Sqrt(den)
	if new(big.Int).Mul(sn, sn).Cmp(num) != 0 || new(big.Int).Mul(sd, sd).Cmp(den) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(sn, sd), true
}

func addNum(a, b *gosymbol.Num) *gosymbol.Num {
	return gosymbol.AddOf(a, b).(*gosymbol.Num)
}

func mulNum(a, b *gosymbol.Num) *gosymbol.Num {
	return gosymbol.MulOf(a, b).(*gosymbol.Num)
}
