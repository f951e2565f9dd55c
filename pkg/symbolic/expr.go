// Package symbolic parses algebraic text into gosymbol expression trees and
// adds what a plotter needs on top of them: a canonical form with like
// terms and powers merged, real root finding, solving a relation for a
// named variable and compilation to float64 functions.
//
// Constants are exact rationals where the input allows it. pi and E are the
// nearest float64 values.
package symbolic

import (
	"math"
	"math/big"
	"slices"

	"github.com/njchilds90/gosymbol"
)

// Expr is a gosymbol expression.
type Expr = gosymbol.Expr

var (
	Pi = gosymbol.NFloat(math.Pi)
	E  = gosymbol.NFloat(math.E)
)

// N returns the integer n.
func N(n int64) *gosymbol.Num { return gosymbol.N(n) }

// F returns the fraction p/q. It panics if q is zero.
func F(p, q int64) *gosymbol.Num { return gosymbol.F(p, q) }

// S returns the symbol called name.
func S(name string) *gosymbol.Sym { return gosymbol.S(name) }

// R returns r as a number, rounding through float64 when the numerator or
// denominator overflows int64.
func R(r *big.Rat) *gosymbol.Num {
	if r.Num().IsInt64() && r.Denom().IsInt64() {
		return gosymbol.F(r.Num().Int64(), r.Denom().Int64())
	}
	f, _ := r.Float64()
	return gosymbol.NFloat(f)
}

// Neg returns -e.
func Neg(e Expr) Expr { return gosymbol.MulOf(N(-1), e) }

// SubOf returns a - b.
func SubOf(a, b Expr) Expr { return gosymbol.AddOf(a, Neg(b)) }

// DivOf returns a / b.
func DivOf(a, b Expr) Expr { return gosymbol.MulOf(a, gosymbol.PowOf(b, N(-1))) }

// Sqrt returns e**(1/2).
func Sqrt(e Expr) Expr { return power(e, F(1, 2)) }

// Equal reports whether a and b have the same canonical form.
func Equal(a, b Expr) bool { return key(Canonical(a)) == key(Canonical(b)) }

// key is the text used for grouping like terms and bases.
func key(e Expr) string { return e.String() }

// Has reports whether the symbol v occurs in e.
func Has(e Expr, v string) bool {
	_, ok := gosymbol.FreeSymbols(e)[v]
	return ok
}

// FreeSymbols returns the sorted names of the symbols occurring in e.
func FreeSymbols(e Expr) []string {
	seen := gosymbol.FreeSymbols(e)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func asNum(e Expr) (*gosymbol.Num, bool) {
	n, ok := e.(*gosymbol.Num)
	return n, ok
}

func isZero(e Expr) bool {
	n, ok := asNum(e)
	return ok && n.IsZero()
}

// builders maps function names to their gosymbol constructors.
var builders = map[string]func(Expr) Expr{
	"sin": gosymbol.SinOf, "cos": gosymbol.CosOf, "tan": gosymbol.TanOf,
	"asin": gosymbol.AsinOf, "acos": gosymbol.AcosOf, "atan": gosymbol.AtanOf,
	"sinh": gosymbol.SinhOf, "cosh": gosymbol.CoshOf, "tanh": gosymbol.TanhOf,
	"exp": gosymbol.ExpOf, "ln": gosymbol.LnOf,
	"abs": gosymbol.AbsOf, "sign": gosymbol.SignOf,
}

// apply calls the function name on arg. A numeric argument is evaluated
// right away, so apply reports false when the value would not be a finite
// real number.
func apply(name string, arg Expr) (Expr, bool) {
	build, ok := builders[name]
	if !ok {
		return nil, false
	}
	if n, ok := asNum(arg); ok {
		if y := elementary[name](n.Float64()); math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, false
		}
	}
	return build(arg), true
}
