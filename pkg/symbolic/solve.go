package symbolic

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/njchilds90/gosymbol"
)

// ErrNoClosedForm is returned when an equation is outside the forms the
// solvers can handle.
var ErrNoClosedForm = errors.New("no closed-form solution")

// Roots returns the sorted, distinct real solutions of e = 0 in v. e must
// not contain symbols other than v. An empty result is not an error.
// Periodic equations report the solutions within one period of the
// function's argument, [0, 2*pi) for sin and cos.
func Roots(e Expr, v string) ([]float64, error) {
	f, err := Compile(e, v)
	if err != nil {
		return nil, err
	}
	cands, err := roots(Canonical(e), v)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(cands))
	for _, r := range cands {
		// drop candidates where e is undefined, e.g. a cancelled pole
		if y := f(r); math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		out = append(out, r+0) // +0 normalises -0
	}
	return distinct(out), nil
}

func distinct(xs []float64) []float64 {
	slices.Sort(xs)
	return slices.CompactFunc(xs, func(a, b float64) bool {
		return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(a))
	})
}

func roots(e Expr, v string) ([]float64, error) {
	if !Has(e, v) {
		return nil, nil
	}
	switch t := e.(type) {
	case *gosymbol.Sym:
		return []float64{0}, nil

	case *gosymbol.Mul:
		var out []float64
		for _, f := range t.Factors() {
			rs, err := roots(f, v)
			if err != nil {
				return nil, err
			}
			out = append(out, rs...)
		}
		return out, nil

	case *gosymbol.Pow:
		if n, ok := asNum(t.ExpExpr()); ok {
			if n.IsPositive() {
				return roots(t.Base(), v)
			}
			return nil, nil
		}
		// u**w is exp(w*log(u)) and never vanishes
		return nil, nil

	case *gosymbol.Func:
		return invertRoots(t, 0, v)

	case *gosymbol.Add:
		return sumRoots(t.Terms(), v)
	}
	return nil, fmt.Errorf("%s = 0: %w", Format(e), ErrNoClosedForm)
}

// sumRoots tries, in order: pulling out a common factor, clearing
// denominators into a polynomial, inverting the only term that depends on
// v and searching one period of a trigonometric sum.
func sumRoots(terms []Expr, v string) ([]float64, error) {
	if f, ok := factorOut(terms, v); ok {
		return roots(f, v)
	}
	if rs, ok, err := rationalRoots(terms, v); ok || err != nil {
		return rs, err
	}

	if g, c, b, ok := isolate(terms, v); ok {
		cv, err := Value(c)
		if err != nil {
			return nil, err
		}
		bv, err := Value(b)
		if err != nil {
			return nil, err
		}
		return invertRoots(g, -bv/cv, v)
	}

	e := gosymbol.AddOf(terms...)
	if rs, ok := periodicRoots(e, v); ok {
		return rs, nil
	}
	return nil, fmt.Errorf("%s = 0: %w", Format(e), ErrNoClosedForm)
}

// isolate writes a sum with a single term depending on v as c*g + b, with
// g the only factor of that term depending on v.
func isolate(terms []Expr, v string) (g, c, b Expr, ok bool) {
	var inner Expr
	var rest []Expr
	for _, t := range terms {
		if !Has(t, v) {
			rest = append(rest, t)
			continue
		}
		if inner != nil {
			return nil, nil, nil, false
		}
		inner = t
	}
	if inner == nil {
		return nil, nil, nil, false
	}

	var coeff []Expr
	for _, f := range mulFactors(inner) {
		if !Has(f, v) {
			coeff = append(coeff, f)
			continue
		}
		if g != nil {
			return nil, nil, nil, false
		}
		g = f
	}
	return g, gosymbol.MulOf(coeff...), gosymbol.AddOf(rest...), true
}

// factorOut pulls out the factors depending on v that every term of a sum
// shares, each at its lowest numeric power. ok is false when nothing is
// shared.
func factorOut(terms []Expr, v string) (Expr, bool) {
	type pow struct {
		base Expr
		exp  *gosymbol.Num
	}
	decompose := func(term Expr) map[string]pow {
		out := map[string]pow{}
		for _, f := range mulFactors(term) {
			if !Has(f, v) {
				continue
			}
			base, exp := splitPow(f)
			n, ok := asNum(exp)
			if !ok {
				base, n = f, N(1)
			}
			out[key(base)] = pow{base: base, exp: n}
		}
		return out
	}

	common := decompose(terms[0])
	for _, t := range terms[1:] {
		next := decompose(t)
		for k, p := range common {
			q, ok := next[k]
			switch {
			case !ok:
				delete(common, k)
			case q.exp.Rat().Cmp(p.exp.Rat()) < 0:
				common[k] = q
			}
		}
	}
	if len(common) == 0 {
		return nil, false
	}

	keys := make([]string, 0, len(common))
	for k := range common {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var shared, inverse []Expr
	for _, k := range keys {
		p := common[k]
		shared = append(shared, power(p.base, p.exp))
		inverse = append(inverse, power(p.base, Neg(p.exp)))
	}
	quotients := make([]Expr, len(terms))
	for i, t := range terms {
		quotients[i] = Canonical(gosymbol.MulOf(append([]Expr{t}, inverse...)...))
	}
	rest := Canonical(gosymbol.AddOf(quotients...))
	return gosymbol.MulOf(append(shared, rest)...), true
}

// rationalRoots clears monomial denominators from a sum and solves the
// resulting polynomial numerator. ok is false when the numerator is not a
// polynomial in v.
func rationalRoots(terms []Expr, v string) (rs []float64, ok bool, err error) {
	nums := make([]Expr, len(terms))
	dens := make([]Expr, len(terms))
	for i, t := range terms {
		nums[i], dens[i] = fraction(t)
	}

	parts := make([]Expr, len(terms))
	for i := range terms {
		fs := []Expr{nums[i]}
		for j, d := range dens {
			if j != i {
				fs = append(fs, d)
			}
		}
		parts[i] = gosymbol.MulOf(fs...)
	}

	coeffs, ok := Coeffs(gosymbol.AddOf(parts...), v)
	if !ok {
		return nil, false, nil
	}
	cs := make([]float64, len(coeffs))
	for i, c := range coeffs {
		if cs[i], err = Value(c); err != nil {
			return nil, true, err
		}
	}
	rs, err = PolyRoots(cs)
	return rs, true, err
}

// fraction splits a term into numerator and denominator, moving every
// factor with a negative numeric exponent below the line.
func fraction(term Expr) (num, den Expr) {
	var ns, ds []Expr
	for _, f := range mulFactors(term) {
		if inv, ok := reciprocal(f); ok {
			ds = append(ds, inv)
		} else {
			ns = append(ns, f)
		}
	}
	return gosymbol.MulOf(ns...), gosymbol.MulOf(ds...)
}

// SolveFor solves e = 0 for v, treating every other symbol as a parameter.
// Branches that are provably non-real are dropped. For a quadratic the
// -sqrt branch comes first. An empty result means there is no solution.
func SolveFor(e Expr, v string) ([]Expr, error) {
	e = Canonical(e)
	if !Has(e, v) {
		return nil, nil
	}
	if coeffs, ok := Coeffs(e, v); ok {
		sols, err := solvePoly(coeffs)
		if err != nil {
			return nil, fmt.Errorf("%s = 0 for %s: %w", Format(e), v, err)
		}
		return sols, nil
	}

	switch t := e.(type) {
	case *gosymbol.Mul:
		var out []Expr
		for _, f := range t.Factors() {
			sols, err := SolveFor(f, v)
			if err != nil {
				return nil, err
			}
			out = append(out, sols...)
		}
		return distinctExprs(out), nil

	case *gosymbol.Pow:
		if n, ok := asNum(t.ExpExpr()); ok && n.IsPositive() {
			return SolveFor(t.Base(), v)
		}
		return nil, nil

	case *gosymbol.Func:
		return invertFor(t, N(0), v)

	case *gosymbol.Add:
		if f, ok := factorOut(t.Terms(), v); ok {
			return SolveFor(f, v)
		}
		if g, c, b, ok := isolate(t.Terms(), v); ok {
			return invertFor(g, Canonical(Neg(DivOf(b, c))), v)
		}
	}
	return nil, fmt.Errorf("%s = 0 for %s: %w", Format(e), v, ErrNoClosedForm)
}

// solvePoly solves a polynomial given by its coefficients, lowest degree
// first.
func solvePoly(coeffs []Expr) ([]Expr, error) {
	d := trimmedDegree(coeffs)
	switch {
	case d == 0:
		return nil, nil
	case d == 1:
		return []Expr{Expand(Neg(DivOf(coeffs[0], coeffs[1])))}, nil
	case pure(coeffs, d):
		r := Expand(Neg(DivOf(coeffs[0], coeffs[d])))
		return rootsOf(N(int64(d)), r), nil
	case d == 2:
		return quadratic(coeffs[2], coeffs[1], coeffs[0]), nil
	case d == 3:
		return cubic(coeffs[3], coeffs[2], coeffs[1], coeffs[0]), nil
	}
	return nil, ErrNoClosedForm
}

// pure reports whether only the constant and the leading coefficient are
// non-zero.
func pure(coeffs []Expr, d int) bool {
	for _, c := range coeffs[1:d] {
		if !isZero(c) {
			return false
		}
	}
	return true
}

func quadratic(a, b, c Expr) []Expr {
	disc := Expand(SubOf(gosymbol.PowOf(b, N(2)), gosymbol.MulOf(N(4), a, c)))
	if IsNegative(disc) {
		return nil
	}
	if isZero(disc) {
		return []Expr{Expand(Neg(DivOf(b, gosymbol.MulOf(N(2), a))))}
	}
	res := gosymbol.SolveQuadraticExact(a, b, c)
	if res.Error != "" || len(res.Solutions) != 2 {
		// a complex pair
		return nil
	}
	// gosymbol lists the +sqrt branch first
	return []Expr{Canonical(res.Solutions[1]), Canonical(res.Solutions[0])}
}

// cubic solves numeric cubics completely. With parameters it returns the
// real Cardano branch, which is defined where the cubic has one real root.
func cubic(a, b, c, d Expr) []Expr {
	res := gosymbol.SolveCubic(a, b, c, d)
	if len(res.Solutions) > 0 {
		xs := make([]float64, len(res.Solutions))
		for i, s := range res.Solutions {
			xs[i] = s.(*gosymbol.Num).Float64()
		}
		xs = distinct(xs)
		out := make([]Expr, len(xs))
		for i, x := range xs {
			out[i] = gosymbol.NFloat(x)
		}
		return out
	}

	// y = t - b/(3a) turns the cubic into t**3 + p*t + q
	p := DivOf(SubOf(gosymbol.MulOf(N(3), a, c), gosymbol.PowOf(b, N(2))),
		gosymbol.MulOf(N(3), gosymbol.PowOf(a, N(2))))
	q := DivOf(gosymbol.AddOf(
		gosymbol.MulOf(N(2), gosymbol.PowOf(b, N(3))),
		gosymbol.MulOf(N(-9), a, b, c),
		gosymbol.MulOf(N(27), gosymbol.PowOf(a, N(2)), d),
	), gosymbol.MulOf(N(27), gosymbol.PowOf(a, N(3))))
	disc := gosymbol.AddOf(
		gosymbol.MulOf(F(1, 4), gosymbol.PowOf(q, N(2))),
		gosymbol.MulOf(F(1, 27), gosymbol.PowOf(p, N(3))),
	)
	half := gosymbol.MulOf(F(-1, 2), q)
	root := Sqrt(disc)
	y := gosymbol.AddOf(
		cbrt(gosymbol.AddOf(half, root)),
		cbrt(SubOf(half, root)),
		Neg(DivOf(b, gosymbol.MulOf(N(3), a))),
	)
	return []Expr{Canonical(y)}
}

// cbrt is the real cube root sign(u)*|u|**(1/3).
func cbrt(u Expr) Expr {
	return gosymbol.MulOf(gosymbol.SignOf(u), gosymbol.PowOf(gosymbol.AbsOf(u), F(1, 3)))
}

func distinctExprs(es []Expr) []Expr {
	seen := map[string]bool{}
	out := es[:0]
	for _, e := range es {
		if k := key(e); !seen[k] {
			seen[k] = true
			out = append(out, e)
		}
	}
	return out
}
