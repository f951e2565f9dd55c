package symbolic

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/njchilds90/gosymbol"
)

// Binding strength of a printed form, weakest first.
const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

// maxDenom is the largest denominator printed as a fraction. Values coming
// from float64 arithmetic have huge power-of-two denominators and print as
// decimals instead.
const maxDenom = 1 << 20

type style struct {
	mul  string
	sqrt string
	// pow renders base**exp; base is already parenthesised when needed.
	pow func(base string, exp Expr, st *style) string
}

var (
	textStyle = &style{
		mul:  "*",
		sqrt: "sqrt",
		pow: func(base string, exp Expr, st *style) string {
			return base + "**" + st.print(exp, precAtom)
		},
	}
	prettyStyle = &style{
		mul:  "·",
		sqrt: "√",
		pow: func(base string, exp Expr, st *style) string {
			if n, ok := asNum(exp); ok && n.IsInteger() && n.IsPositive() {
				return base + superscript(n.Rat().Num().String())
			}
			return base + "^" + st.print(exp, precAtom)
		},
	}
)

// Format renders e in the input syntax, e.g. "x**2 - 4". Unlike gosymbol's
// String the result parses back to the same expression.
func Format(e Expr) string { return textStyle.print(e, 0) }

// Pretty renders e for chart labels: unicode superscripts, a middle dot
// for multiplication and a radical sign for square roots.
func Pretty(e Expr) string { return prettyStyle.print(e, 0) }

func (st *style) print(e Expr, outer int) string {
	s, prec := st.render(e)
	if prec < outer {
		return "(" + s + ")"
	}
	return s
}

func (st *style) render(e Expr) (string, int) {
	switch t := e.(type) {
	case *gosymbol.Num:
		return number(t)
	case *gosymbol.Sym:
		return t.Name(), precAtom
	case *gosymbol.Func:
		name := t.FuncName()
		if name == "ln" {
			name = "log"
		}
		return name + "(" + st.print(t.Arg(), 0) + ")", precAtom
	case *gosymbol.Add:
		return st.sum(t.Terms()), precAdd
	case *gosymbol.Mul:
		return st.product(t.Factors())
	case *gosymbol.Pow:
		return st.power(t)
	}
	return e.String(), precAtom
}

func number(n *gosymbol.Num) (string, int) {
	r := n.Rat()
	f := n.Float64()
	var s string
	switch {
	case f == math.Pi:
		return "pi", precAtom
	case f == math.E:
		return "E", precAtom
	case r.IsInt():
		s = r.Num().String()
	case r.Denom().Cmp(big.NewInt(maxDenom)) <= 0:
		s = r.RatString()
	default:
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	switch {
	case n.IsNegative():
		return s, precAdd
	case !r.IsInt() && strings.Contains(s, "/"):
		return s, precMul
	}
	return s, precAtom
}

func (st *style) sum(terms []Expr) string {
	var b strings.Builder
	for i, term := range terms {
		if pos, ok := negated(term); ok {
			if i == 0 {
				b.WriteString("-")
			} else {
				b.WriteString(" - ")
			}
			b.WriteString(st.print(pos, precMul))
			continue
		}
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(st.print(term, precAdd))
	}
	return b.String()
}

// negated returns -term when term carries a negative coefficient.
func negated(term Expr) (Expr, bool) {
	switch t := term.(type) {
	case *gosymbol.Num:
		if t.IsNegative() {
			return Neg(t), true
		}
	case *gosymbol.Mul:
		if c, ok := asNum(t.Factors()[0]); ok && c.IsNegative() {
			return Neg(t), true
		}
	}
	return nil, false
}

func (st *style) product(factors []Expr) (string, int) {
	sign := ""
	var num, den []string
	if n, ok := asNum(factors[0]); ok {
		c := n.Rat()
		if c.Sign() < 0 {
			sign = "-"
			c.Neg(c)
		}
		if c.Denom().Cmp(big.NewInt(maxDenom)) > 0 {
			s, _ := number(R(c))
			num = append(num, s)
		} else {
			if c.Num().Cmp(big.NewInt(1)) != 0 {
				num = append(num, c.Num().String())
			}
			if !c.IsInt() {
				den = append(den, c.Denom().String())
			}
		}
		factors = factors[1:]
	}
	for _, f := range factors {
		if inv, ok := reciprocal(f); ok {
			den = append(den, st.print(inv, precPow))
			continue
		}
		num = append(num, st.print(f, precMul+1))
	}

	numStr := strings.Join(num, st.mul)
	if numStr == "" {
		numStr = "1"
	}
	if len(den) == 0 {
		return sign + numStr, precMul
	}
	denStr := strings.Join(den, st.mul)
	if len(den) > 1 {
		denStr = "(" + denStr + ")"
	}
	return sign + numStr + "/" + denStr, precMul
}

// reciprocal returns 1/f when f is a power with a negative numeric exponent.
func reciprocal(f Expr) (Expr, bool) {
	p, ok := f.(*gosymbol.Pow)
	if !ok {
		return nil, false
	}
	x, ok := asNum(p.ExpExpr())
	if !ok || !x.IsNegative() {
		return nil, false
	}
	return gosymbol.PowOf(p.Base(), Neg(x)), true
}

func (st *style) power(p *gosymbol.Pow) (string, int) {
	if _, ok := reciprocal(p); ok {
		return st.product([]Expr{p})
	}
	if x, ok := asNum(p.ExpExpr()); ok && x.Rat().Cmp(big.NewRat(1, 2)) == 0 {
		return st.sqrt + "(" + st.print(p.Base(), 0) + ")", precAtom
	}
	return st.pow(st.print(p.Base(), precAtom), p.ExpExpr(), st), precPow
}

var superscripts = strings.NewReplacer(
	"0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴",
	"5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹",
)

func superscript(digits string) string { return superscripts.Replace(digits) }
