package symbolic

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/njchilds90/gosymbol"
)

// ErrParse is wrapped by every *ParseError.
var ErrParse = errors.New("parse error")

// ParseError reports malformed input text.
type ParseError struct {
	Pos int // byte offset into the input
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// Equation is the relation LHS = RHS.
type Equation struct {
	*gosymbol.Equation
	// Explicit is set when the text contained an '='.
	Explicit bool
}

// Residual returns LHS - RHS in canonical form.
func (eq *Equation) Residual() Expr { return Canonical(eq.Equation.Residual()) }

func (eq *Equation) String() string {
	if !eq.Explicit {
		return Format(eq.LHS)
	}
	return Format(eq.LHS) + " = " + Format(eq.RHS)
}

// Pretty renders the equation the way Pretty renders an expression.
func (eq *Equation) Pretty() string {
	if !eq.Explicit {
		return Pretty(eq.LHS)
	}
	return Pretty(eq.LHS) + " = " + Pretty(eq.RHS)
}

// functions maps the names accepted in call position to gosymbol function
// names. sqrt is a power and has no entry in builders.
var functions = map[string]string{
	"sin": "sin", "cos": "cos", "tan": "tan",
	"asin": "asin", "acos": "acos", "atan": "atan",
	"sinh": "sinh", "cosh": "cosh", "tanh": "tanh",
	"exp": "exp", "log": "ln", "ln": "ln",
	"abs": "abs", "sign": "sign", "sqrt": "sqrt",
}

var constants = map[string]Expr{"pi": Pi, "E": E}

// Parse parses an expression over the declared variables. Both ** and ^
// denote powers. An '=' in the text is an error; use ParseEquation.
func Parse(text string, vars ...string) (Expr, error) {
	p, err := newParser(text, vars)
	if err != nil {
		return nil, err
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %s", tok)
	}
	return Canonical(e), nil
}

// ParseEquation parses "lhs = rhs" or a bare expression meaning "expr = 0".
func ParseEquation(text string, vars ...string) (*Equation, error) {
	p, err := newParser(text, vars)
	if err != nil {
		return nil, err
	}
	lhs, err := p.expr()
	if err != nil {
		return nil, err
	}
	var rhs Expr = N(0)
	explicit := false
	if tok := p.peek(); tok.kind == tokEquals {
		p.next()
		if rhs, err = p.expr(); err != nil {
			return nil, err
		}
		explicit = true
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %s", tok)
	}
	return &Equation{Equation: gosymbol.Eq(Canonical(lhs), Canonical(rhs)), Explicit: explicit}, nil
}

// MustParse is like Parse but panics on error. It simplifies tests and
// package-level tables.
func MustParse(text string, vars ...string) Expr {
	e, err := Parse(text, vars...)
	if err != nil {
		panic(err)
	}
	return e
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
	tokEquals
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

func lex(text string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(text) {
		switch {
		case unicode.IsSpace(rune(text[i])):
			i++
		case isDigit(text[i]) || text[i] == '.':
			start := i
			for i < len(text) && (isDigit(text[i]) || text[i] == '.') {
				i++
			}
			// exponent part, e.g. 1.5e-3
			if i+1 < len(text) && (text[i] == 'e' || text[i] == 'E') {
				j := i + 1
				if text[j] == '+' || text[j] == '-' {
					j++
				}
				if j < len(text) && isDigit(text[j]) {
					for j < len(text) && isDigit(text[j]) {
						j++
					}
					i = j
				}
			}
			toks = append(toks, token{kind: tokNumber, text: text[start:i], pos: start})
		case isLetter(text[i]):
			start := i
			for i < len(text) && (isLetter(text[i]) || isDigit(text[i])) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: text[start:i], pos: start})
		case strings.HasPrefix(text[i:], "**"):
			toks = append(toks, token{kind: tokPow, text: "**", pos: i})
			i += 2
		default:
			kind, ok := punctuation[text[i]]
			if !ok {
				return nil, &ParseError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", text[i])}
			}
			toks = append(toks, token{kind: kind, text: text[i : i+1], pos: i})
			i++
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(text)}), nil
}

var punctuation = map[byte]tokenKind{
	'+': tokPlus, '-': tokMinus, '*': tokStar, '/': tokSlash,
	'^': tokPow, '(': tokLParen, ')': tokRParen, '=': tokEquals,
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool { return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }

type parser struct {
	toks []token
	i    int
	vars map[string]bool
}

func newParser(text string, vars []string) (*parser, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, vars: map[string]bool{}}
	for _, v := range vars {
		p.vars[v] = true
	}
	return p, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &ParseError{Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	terms := []Expr{left}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			t, err := p.term()
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		case tokMinus:
			p.next()
			t, err := p.term()
			if err != nil {
				return nil, err
			}
			terms = append(terms, Neg(t))
		default:
			return gosymbol.AddOf(terms...), nil
		}
	}
}

// term := unary (('*' | '/') unary)*
func (p *parser) term() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	factors := []Expr{left}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			f, err := p.unary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
		case tokSlash:
			p.next()
			f, err := p.unary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, gosymbol.PowOf(f, N(-1)))
		default:
			return gosymbol.MulOf(factors...), nil
		}
	}
}

// unary := ('-' | '+') unary | power
func (p *parser) unary() (Expr, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Neg(e), nil
	case tokPlus:
		p.next()
		return p.unary()
	}
	return p.power()
}

// power := atom [('**' | '^') unary]
func (p *parser) power() (Expr, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return power(base, exp), nil
}

// atom := number | constant | variable | function '(' expr ')' | '(' expr ')'
func (p *parser) atom() (Expr, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		r, ok := new(big.Rat).SetString(tok.text)
		if !ok {
			return nil, p.errorf(tok, "malformed number %s", tok)
		}
		return R(r), nil

	case tokIdent:
		if name, ok := functions[tok.text]; ok {
			open := p.peek()
			if p.peek().kind != tokLParen {
				return nil, p.errorf(p.peek(), "expected '(' after %s", tok.text)
			}
			p.next()
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(tokRParen); err != nil {
				return nil, err
			}
			if name == "sqrt" {
				return Sqrt(arg), nil
			}
			f, ok := apply(name, arg)
			if !ok {
				return nil, p.errorf(open, "%s is undefined at %s", tok.text, Format(arg))
			}
			return f, nil
		}
		if c, ok := constants[tok.text]; ok {
			return c, nil
		}
		if p.vars[tok.text] {
			return S(tok.text), nil
		}
		return nil, p.errorf(tok, "unknown symbol %s", tok)

	case tokLParen:
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, p.errorf(tok, "unexpected %s", tok)
}

func (p *parser) expect(kind tokenKind) error {
	if tok := p.peek(); tok.kind != kind {
		return p.errorf(tok, "expected ')' but found %s", tok)
	}
	p.next()
	return nil
}
