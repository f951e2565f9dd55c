package symbolic

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/njchilds90/gosymbol"
)

// ErrUnbound is returned when an expression mentions a symbol that the
// caller did not bind.
var ErrUnbound = errors.New("unbound symbol")

// Func1 is a compiled single-variable function. Undefined points yield
// NaN or ±Inf, never a panic.
type Func1 func(x float64) float64

// Compile turns e into a float64 function of v. Every other symbol in e is
// an error.
func Compile(e Expr, v string) (Func1, error) {
	for _, name := range FreeSymbols(e) {
		if name != v {
			return nil, fmt.Errorf("compile %s: %w %q", Format(e), ErrUnbound, name)
		}
	}
	return compile(e, v), nil
}

// Value evaluates an expression without free symbols.
func Value(e Expr) (float64, error) {
	if names := FreeSymbols(e); len(names) > 0 {
		return 0, fmt.Errorf("value of %s: %w %s", Format(e), ErrUnbound, strings.Join(names, ", "))
	}
	return compile(e, "")(0), nil
}

// Map evaluates f at each xs[i] and stores the result in dst[i]. dst is
// allocated when nil.
func (f Func1) Map(dst, xs []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(xs))
	}
	for i, x := range xs {
		dst[i] = f(x)
	}
	return dst
}

func compile(e Expr, v string) Func1 {
	switch t := e.(type) {
	case *gosymbol.Num:
		c := t.Float64()
		return func(float64) float64 { return c }
	case *gosymbol.Sym:
		return func(x float64) float64 { return x }

	case *gosymbol.Add:
		fs := compileAll(t.Terms(), v)
		return func(x float64) float64 {
			sum := 0.0
			for _, f := range fs {
				sum += f(x)
			}
			return sum
		}

	case *gosymbol.Mul:
		fs := compileAll(t.Factors(), v)
		return func(x float64) float64 {
			prod := 1.0
			for _, f := range fs {
				prod *= f(x)
			}
			return prod
		}

	case *gosymbol.Pow:
		base := compile(t.Base(), v)
		if n, ok := asNum(t.ExpExpr()); ok {
			switch n.Float64() {
			case 0.5:
				return func(x float64) float64 { return math.Sqrt(base(x)) }
			case -1:
				return func(x float64) float64 { return 1 / base(x) }
			case 2:
				return func(x float64) float64 { b := base(x); return b * b }
			}
		}
		exp := compile(t.ExpExpr(), v)
		return func(x float64) float64 { return math.Pow(base(x), exp(x)) }

	case *gosymbol.Func:
		arg := compile(t.Arg(), v)
		if fn, ok := elementary[t.FuncName()]; ok {
			return func(x float64) float64 { return fn(arg(x)) }
		}
	}
	return func(float64) float64 { return math.NaN() }
}

func compileAll(es []Expr, v string) []Func1 {
	fs := make([]Func1, len(es))
	for i, e := range es {
		fs[i] = compile(e, v)
	}
	return fs
}

// elementary holds the float64 implementation of each gosymbol function.
var elementary = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,
	"exp":  math.Exp,
	"ln":   math.Log,
	"abs":  math.Abs,
	"sign": sign,
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x // keeps 0 and NaN
}
