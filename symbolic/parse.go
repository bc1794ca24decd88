package symbolic

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// ============================================================
// Parser — infix source text to Expr
// ============================================================

// maxNesting bounds parenthesis depth so hostile input cannot exhaust the
// stack. maxDecimalExponent bounds the e-notation exponent of literals.
const (
	maxNesting         = 200
	maxDecimalExponent = 1000
)

type ParseOption func(*parseConfig)

type parseConfig struct {
	symbols   map[string]struct{}
	maxLength int
}

// WithSymbols declares identifiers that always parse as symbols. A
// declared name shadows a constant of the same spelling and cannot be
// called as a function.
func WithSymbols(names ...string) ParseOption {
	return func(c *parseConfig) {
		for _, n := range names {
			c.symbols[n] = struct{}{}
		}
	}
}

// WithMaxLength rejects sources longer than n runes. Zero means no limit.
func WithMaxLength(n int) ParseOption {
	return func(c *parseConfig) { c.maxLength = n }
}

// Parse reads an expression written in the usual infix notation:
//
//	2*x + y**2 - sin(z)/3
//
// Both ** and ^ denote powers; they are right-associative and bind
// tighter than a leading minus, so -x**2 is -(x**2). Identifiers that are
// neither functions nor constants become symbols.
func Parse(src string, opts ...ParseOption) (Expr, error) {
	cfg := &parseConfig{symbols: map[string]struct{}{}}
	for _, opt := range opts {
		opt(cfg)
	}
	runes := []rune(src)
	if cfg.maxLength > 0 && len(runes) > cfg.maxLength {
		return nil, &ParseError{Pos: cfg.maxLength, Msg: fmt.Sprintf("input longer than %d characters", cfg.maxLength)}
	}
	p := &parser{tok: &tokenizer{input: runes}, cfg: cfg}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.kind == tokEOF {
		return nil, &ParseError{Pos: p.cur.pos, Msg: "empty expression"}
	}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, p.unexpected()
	}
	return e, nil
}

// MustParse is Parse for trusted literals; it panics on error.
func MustParse(src string, opts ...ParseOption) Expr {
	e, err := Parse(src, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// ============================================================
// Tokenizer
// ============================================================

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
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type tokenizer struct {
	input []rune
	pos   int
}

func (t *tokenizer) peek() rune {
	if t.pos >= len(t.input) {
		return 0
	}
	return t.input[t.pos]
}

func (t *tokenizer) peekAt(off int) rune {
	if t.pos+off >= len(t.input) {
		return 0
	}
	return t.input[t.pos+off]
}

func (t *tokenizer) next() (token, error) {
	for t.pos < len(t.input) && unicode.IsSpace(t.input[t.pos]) {
		t.pos++
	}
	start := t.pos
	if t.pos >= len(t.input) {
		return token{kind: tokEOF, pos: start}, nil
	}
	c := t.peek()
	single := func(k tokenKind) (token, error) {
		t.pos++
		return token{kind: k, text: string(c), pos: start}, nil
	}
	switch {
	case c == '+':
		return single(tokPlus)
	case c == '-':
		return single(tokMinus)
	case c == '*':
		if t.peekAt(1) == '*' {
			t.pos += 2
			return token{kind: tokPow, text: "**", pos: start}, nil
		}
		return single(tokStar)
	case c == '^':
		return single(tokPow)
	case c == '/':
		return single(tokSlash)
	case c == '(':
		return single(tokLParen)
	case c == ')':
		return single(tokRParen)
	case c == ',':
		return single(tokComma)
	case isDigit(c) || (c == '.' && isDigit(t.peekAt(1))):
		return t.number()
	case c == '_' || unicode.IsLetter(c):
		for t.pos < len(t.input) && (t.peek() == '_' || unicode.IsLetter(t.peek()) || unicode.IsDigit(t.peek())) {
			t.pos++
		}
		return token{kind: tokIdent, text: string(t.input[start:t.pos]), pos: start}, nil
	}
	return token{}, &ParseError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", c)}
}

func (t *tokenizer) number() (token, error) {
	start := t.pos
	for isDigit(t.peek()) {
		t.pos++
	}
	if t.peek() == '.' {
		t.pos++
		for isDigit(t.peek()) {
			t.pos++
		}
	}
	if t.peek() == 'e' || t.peek() == 'E' {
		off := 1
		if s := t.peekAt(1); s == '+' || s == '-' {
			off = 2
		}
		if isDigit(t.peekAt(off)) {
			t.pos += off
			for isDigit(t.peek()) {
				t.pos++
			}
		}
	}
	return token{kind: tokNumber, text: string(t.input[start:t.pos]), pos: start}, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// parseDecimal converts a decimal literal such as 12.5e-3 to an exact
// rational. big.Rat.SetString is not used because it also accepts base
// prefixes and fraction syntax.
func parseDecimal(text string) (*big.Rat, error) {
	mantissa, exponent := text, ""
	if i := strings.IndexAny(text, "eE"); i >= 0 {
		mantissa, exponent = text[:i], text[i+1:]
	}
	intPart, fracPart := mantissa, ""
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		intPart, fracPart = mantissa[:i], mantissa[i+1:]
	}
	digits := new(big.Int)
	if _, ok := digits.SetString("0"+intPart+fracPart, 10); !ok {
		return nil, fmt.Errorf("invalid number %q", text)
	}
	scale := -len(fracPart)
	if exponent != "" {
		e, err := strconv.Atoi(exponent)
		if err != nil {
			return nil, fmt.Errorf("invalid exponent in %q", text)
		}
		if e > maxDecimalExponent || e < -maxDecimalExponent {
			return nil, fmt.Errorf("exponent of %q out of range", text)
		}
		scale += e
	}
	r := new(big.Rat).SetInt(digits)
	if scale != 0 {
		abs := scale
		if abs < 0 {
			abs = -abs
		}
		pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs)), nil)
		if scale > 0 {
			r.Mul(r, new(big.Rat).SetInt(pow))
		} else {
			r.Quo(r, new(big.Rat).SetInt(pow))
		}
	}
	return r, nil
}

// ============================================================
// Recursive-descent parser
// ============================================================

type parser struct {
	tok   *tokenizer
	cur   token
	cfg   *parseConfig
	depth int
}

func (p *parser) advance() error {
	t, err := p.tok.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) unexpected() error {
	if p.cur.kind == tokEOF {
		return &ParseError{Pos: p.cur.pos, Msg: "unexpected end of input"}
	}
	return &ParseError{Pos: p.cur.pos, Msg: fmt.Sprintf("unexpected %q", p.cur.text)}
}

func (p *parser) expect(k tokenKind, what string) error {
	if p.cur.kind != k {
		if p.cur.kind == tokEOF {
			return &ParseError{Pos: p.cur.pos, Msg: "expected " + what + " before end of input"}
		}
		return &ParseError{Pos: p.cur.pos, Msg: fmt.Sprintf("expected %s, found %q", what, p.cur.text)}
	}
	return p.advance()
}

// sum := product (('+' | '-') product)*
func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	terms := []Expr{left}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		neg := p.cur.kind == tokMinus
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		if neg {
			right = MulOf(N(-1), right)
		}
		terms = append(terms, right)
	}
	if len(terms) == 1 {
		return left, nil
	}
	return AddOf(terms...), nil
}

// product := unary (('*' | '/') unary)*
func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	factors := []Expr{left}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash {
		div := p.cur.kind == tokSlash
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if div {
			right = PowOf(right, N(-1))
		}
		factors = append(factors, right)
	}
	if len(factors) == 1 {
		return left, nil
	}
	return MulOf(factors...), nil
}

// unary := ('-' | '+') unary | power
func (p *parser) parseUnary() (Expr, error) {
	switch p.cur.kind {
	case tokMinus:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), operand), nil
	case tokPlus:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseUnary()
	}
	return p.parsePower()
}

// power := primary (('**' | '^') unary)?
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokPow {
		return base, nil
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	if err := p.advance(); err != nil {
		return nil, err
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return PowOf(base, exp), nil
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.cur.kind {
	case tokNumber:
		r, err := parseDecimal(p.cur.text)
		if err != nil {
			return nil, &ParseError{Pos: p.cur.pos, Msg: err.Error()}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Num{val: r}, nil
	case tokIdent:
		return p.parseIdent()
	case tokLParen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.unexpected()
}

func (p *parser) parseIdent() (Expr, error) {
	name, pos := p.cur.text, p.cur.pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	_, declared := p.cfg.symbols[name]
	if p.cur.kind != tokLParen {
		if !declared {
			if c, ok := LookupConst(name); ok {
				return c, nil
			}
			if _, isFunc := builtins[name]; isFunc {
				return nil, &ParseError{Pos: pos, Msg: fmt.Sprintf("function %s needs arguments", name)}
			}
		}
		return S(name), nil
	}
	if declared {
		return nil, &ParseError{Pos: pos, Msg: fmt.Sprintf("%s is a variable, not a function", name)}
	}
	fn, ok := builtins[name]
	if !ok {
		return nil, &ParseError{Pos: pos, Msg: fmt.Sprintf("unknown function %s", name)}
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if len(args) < fn.minArgs || (fn.maxArgs >= 0 && len(args) > fn.maxArgs) {
		return nil, &ParseError{Pos: pos, Msg: fmt.Sprintf("%s takes %s, got %d", name, fn.arity(), len(args))}
	}
	return fn.build(args), nil
}

func (p *parser) parseArgs() ([]Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []Expr
	if p.cur.kind == tokRParen {
		return nil, p.advance()
	}
	for {
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxNesting {
		return &ParseError{Pos: p.cur.pos, Msg: "expression nested too deeply"}
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// ============================================================
// Built-in functions
// ============================================================

type builtin struct {
	minArgs, maxArgs int // maxArgs < 0 means variadic
	build            func(args []Expr) Expr
}

func (b builtin) arity() string {
	switch {
	case b.maxArgs < 0:
		return fmt.Sprintf("at least %d arguments", b.minArgs)
	case b.minArgs == b.maxArgs && b.minArgs == 1:
		return "1 argument"
	case b.minArgs == b.maxArgs:
		return fmt.Sprintf("%d arguments", b.minArgs)
	}
	return fmt.Sprintf("%d to %d arguments", b.minArgs, b.maxArgs)
}

func unary(f func(Expr) Expr) builtin {
	return builtin{minArgs: 1, maxArgs: 1, build: func(a []Expr) Expr { return f(a[0]) }}
}

var builtins = map[string]builtin{
	"sin":   unary(SinOf),
	"cos":   unary(CosOf),
	"tan":   unary(TanOf),
	"asin":  unary(AsinOf),
	"acos":  unary(AcosOf),
	"atan":  unary(AtanOf),
	"sinh":  unary(SinhOf),
	"cosh":  unary(CoshOf),
	"tanh":  unary(TanhOf),
	"exp":   unary(ExpOf),
	"ln":    unary(LnOf),
	"sqrt":  unary(SqrtOf),
	"abs":   unary(AbsOf),
	"Abs":   unary(AbsOf),
	"floor": unary(FloorOf),
	"ceil":  unary(CeilOf),
	"sign":  unary(SignOf),
	"log": {minArgs: 1, maxArgs: 2, build: func(a []Expr) Expr {
		if len(a) == 2 {
			return LogOf(a[0], a[1])
		}
		return LnOf(a[0])
	}},
	"atan2": {minArgs: 2, maxArgs: 2, build: func(a []Expr) Expr { return Atan2Of(a[0], a[1]) }},
	"min":   {minArgs: 1, maxArgs: -1, build: func(a []Expr) Expr { return MinOf(a...) }},
	"max":   {minArgs: 1, maxArgs: -1, build: func(a []Expr) Expr { return MaxOf(a...) }},
	"Min":   {minArgs: 1, maxArgs: -1, build: func(a []Expr) Expr { return MinOf(a...) }},
	"Max":   {minArgs: 1, maxArgs: -1, build: func(a []Expr) Expr { return MaxOf(a...) }},
}

// IsBuiltinFunction reports whether name is callable in parsed source.
func IsBuiltinFunction(name string) bool {
	_, ok := builtins[name]
	return ok
}
