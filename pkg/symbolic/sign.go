package symbolic

import "github.com/njchilds90/gosymbol"

// signSet is the set of signs an expression can take for real inputs.
type signSet uint8

const (
	signNeg signSet = 1 << iota
	signZero
	signPos

	signAny = signNeg | signZero | signPos
)

// signs over-approximates the signs e can take. signAny means nothing is
// known.
func signs(e Expr) signSet {
	switch t := e.(type) {
	case *gosymbol.Num:
		switch {
		case t.IsNegative():
			return signNeg
		case t.IsZero():
			return signZero
		}
		return signPos

	case *gosymbol.Add:
		terms := t.Terms()
		acc := signs(terms[0])
		for _, term := range terms[1:] {
			acc = addSigns(acc, signs(term))
		}
		return acc

	case *gosymbol.Mul:
		acc := signPos
		for _, f := range t.Factors() {
			acc = mulSigns(acc, signs(f))
		}
		return acc

	case *gosymbol.Pow:
		base := signs(t.Base())
		n, ok := asNum(t.ExpExpr())
		switch {
		case ok && isEven(n):
			out := base &^ signNeg
			if base&signNeg != 0 {
				out |= signPos
			}
			return out
		case ok && n.IsInteger():
			return base
		case base&signNeg == 0:
			return base
		}
		return signAny

	case *gosymbol.Func:
		switch t.FuncName() {
		case "exp", "cosh":
			return signPos
		case "abs":
			arg := signs(t.Arg())
			out := arg &^ signNeg
			if arg&signNeg != 0 {
				out |= signPos
			}
			return out
		}
	}
	return signAny
}

func addSigns(a, b signSet) signSet {
	switch {
	case a == signZero:
		return b
	case b == signZero:
		return a
	case a&signPos == 0 && b&signPos == 0:
		// both non-positive: zero only when both can be zero
		out := signNeg
		if a&signZero != 0 && b&signZero != 0 {
			out |= signZero
		}
		return out
	case a&signNeg == 0 && b&signNeg == 0:
		out := signPos
		if a&signZero != 0 && b&signZero != 0 {
			out |= signZero
		}
		return out
	}
	return signAny
}

func mulSigns(a, b signSet) signSet {
	var out signSet
	for _, x := range []signSet{signNeg, signZero, signPos} {
		if a&x == 0 {
			continue
		}
		for _, y := range []signSet{signNeg, signZero, signPos} {
			if b&y == 0 {
				continue
			}
			switch {
			case x == signZero || y == signZero:
				out |= signZero
			case x == y:
				out |= signPos
			default:
				out |= signNeg
			}
		}
	}
	return out
}

// IsNegative reports whether e is provably negative for every real value
// of its symbols.
func IsNegative(e Expr) bool { return signs(e) == signNeg }

func isEven(n *gosymbol.Num) bool {
	return n.IsInteger() && n.Rat().Num().Bit(0) == 0
}
