package symbolic

import (
	"fmt"
	"math"
	"math/big"

	"github.com/njchilds90/gosymbol"
	"gonum.org/v1/gonum/mat"
)

// imagTol is the largest imaginary part, relative to the modulus, for an
// eigenvalue to count as a real root.
const imagTol = 1e-9

// maxExact bounds the integer coefficients searched for rational roots.
const maxExact = 1 << 20

// PolyRoots returns the real roots of the polynomial with coefficients
// c[0] + c[1]*x + ... + c[n]*x**n. Rational roots of integer polynomials
// are found exactly and divided out. What is left is solved in closed form
// up to degree three and through the eigenvalues of the companion matrix
// above that, with every inexact root refined by Newton steps.
func PolyRoots(c []float64) ([]float64, error) {
	n := len(c) - 1
	for n >= 0 && c[n] == 0 {
		n--
	}
	c = c[:n+1]

	var out []float64
	for len(c) > 1 && c[0] == 0 {
		out = append(out, 0)
		c = c[1:]
	}

	exact, c := rationalFactors(c)
	out = append(out, exact...)

	switch len(c) - 1 {
	case -1, 0:
		return out, nil
	case 1:
		return append(out, -c[0]/c[1]), nil
	case 2:
		a, b, k := c[2], c[1], c[0]
		disc := b*b - 4*a*k
		switch {
		case disc < 0:
			return out, nil
		case disc == 0:
			return append(out, -b/(2*a)), nil
		}
		sq := math.Sqrt(disc)
		return append(out, polish(c, (-b-sq)/(2*a)), polish(c, (-b+sq)/(2*a))), nil
	case 3:
		res := gosymbol.SolveCubic(gosymbol.NFloat(c[3]), gosymbol.NFloat(c[2]), gosymbol.NFloat(c[1]), gosymbol.NFloat(c[0]))
		for _, s := range res.Solutions {
			out = append(out, polish(c, s.(*gosymbol.Num).Float64()))
		}
		return out, nil
	}

	deg := len(c) - 1
	comp := mat.NewDense(deg, deg, nil)
	for i := 1; i < deg; i++ {
		comp.Set(i, i-1, 1)
	}
	for i := 0; i < deg; i++ {
		comp.Set(i, deg-1, -c[i]/c[deg])
	}
	var eig mat.Eigen
	if !eig.Factorize(comp, mat.EigenNone) {
		return nil, fmt.Errorf("degree %d polynomial: %w", deg, ErrNoClosedForm)
	}
	for _, z := range eig.Values(nil) {
		if math.Abs(imag(z)) <= imagTol*math.Max(1, math.Abs(real(z))) {
			out = append(out, polish(c, real(z)))
		}
	}
	return out, nil
}

// polish refines an approximate root of c with up to three Newton steps,
// keeping a step only when it shrinks the residual.
func polish(c []float64, x float64) float64 {
	for step := 0; step < 3; step++ {
		p, dp := horner(c, x)
		if p == 0 || dp == 0 {
			break
		}
		next := x - p/dp
		if q, _ := horner(c, next); math.Abs(q) >= math.Abs(p) {
			break
		}
		x = next
	}
	return x
}

// horner returns the value and the derivative of c at x.
func horner(c []float64, x float64) (p, dp float64) {
	for i := len(c) - 1; i >= 0; i-- {
		dp = dp*x + p
		p = p*x + c[i]
	}
	return p, dp
}

// rationalFactors finds the rational roots of a polynomial with integer
// coefficients by the rational root theorem and divides them out. It
// returns the roots found and the remaining coefficients.
func rationalFactors(c []float64) ([]float64, []float64) {
	poly := make([]*big.Rat, len(c))
	for i, x := range c {
		if x != math.Trunc(x) || math.Abs(x) > maxExact {
			return nil, c
		}
		poly[i] = new(big.Rat).SetFloat64(x)
	}

	var found []float64
	for len(poly) > 1 {
		r, ok := rationalRoot(poly)
		if !ok {
			break
		}
		f, _ := r.Float64()
		found = append(found, f)
		poly = deflate(poly, r)
	}

	rest := make([]float64, len(poly))
	for i, x := range poly {
		rest[i], _ = x.Float64()
	}
	return found, rest
}

// rationalRoot tries every candidate ±p/q with p dividing the constant and
// q the leading coefficient.
func rationalRoot(poly []*big.Rat) (*big.Rat, bool) {
	ints := integral(poly)
	lead, constant := ints[len(ints)-1], ints[0]
	if !lead.IsInt64() || !constant.IsInt64() {
		return nil, false
	}
	ps, qs := divisors(constant.Int64()), divisors(lead.Int64())
	if ps == nil || qs == nil {
		return nil, false
	}
	for _, p := range ps {
		for _, q := range qs {
			for _, s := range []int64{1, -1} {
				r := big.NewRat(s*p, q)
				if value(poly, r).Sign() == 0 {
					return r, true
				}
			}
		}
	}
	return nil, false
}

// integral scales poly by the least common multiple of its denominators.
func integral(poly []*big.Rat) []*big.Int {
	lcm := big.NewInt(1)
	for _, x := range poly {
		d := x.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Quo(d, g))
	}
	out := make([]*big.Int, len(poly))
	for i, x := range poly {
		scaled := new(big.Rat).Mul(x, new(big.Rat).SetInt(lcm))
		out[i] = new(big.Int).Set(scaled.Num())
	}
	return out
}

// divisors returns the positive divisors of |n|, or nil when n is zero or
// too large to enumerate.
func divisors(n int64) []int64 {
	if n < 0 {
		n = -n
	}
	if n == 0 || n > maxExact {
		return nil
	}
	var small, large []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		small = append(small, d)
		if d*d != n {
			large = append([]int64{n / d}, large...)
		}
	}
	return append(small, large...)
}

func value(poly []*big.Rat, x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(poly) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, poly[i])
	}
	return acc
}

// deflate divides poly by (x - r) by synthetic division.
func deflate(poly []*big.Rat, r *big.Rat) []*big.Rat {
	n := len(poly) - 1
	out := make([]*big.Rat, n)
	carry := new(big.Rat)
	for k := n; k >= 1; k-- {
		carry = new(big.Rat).Add(poly[k], new(big.Rat).Mul(r, carry))
		out[k-1] = carry
	}
	return out
}
