// Package symbolic is a deterministic symbolic math kernel.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat)
//   - Simultaneous substitution and stable, re-parseable output
//   - A rational normal form that decides whether an expression is
//     identically zero
//   - JSON and LaTeX output for tool and presentation layers
package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is a node of an expression tree. Values are immutable; every
// operation returns a new tree.
type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	// Subs replaces every bound symbol in one pass. Values are not
	// themselves substituted again.
	Subs(bindings map[string]Expr) Expr
	Diff(varName string) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
	exprType() string
	toJSON() map[string]interface{}
}

// ============================================================
// Num — exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}
func NRat(r *big.Rat) *Num  { return &Num{val: new(big.Rat).Set(r)} }
func NFloat(f float64) *Num { return &Num{val: new(big.Rat).SetFloat64(f)} }

func (n *Num) Simplify() Expr            { return n }
func (n *Num) Subs(map[string]Expr) Expr { return n }
func (n *Num) Diff(string) Expr          { return N(0) }
func (n *Num) Eval() (*Num, bool)        { return n, true }
func (n *Num) Equal(other Expr) bool     { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) exprType() string          { return "num" }
func (n *Num) Float64() float64          { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool              { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool               { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsNegOne() bool            { return n.val.Cmp(big.NewRat(-1, 1)) == 0 }
func (n *Num) IsInteger() bool           { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat             { return new(big.Rat).Set(n.val) }
func (n *Num) IsPositive() bool          { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool          { return n.val.Sign() < 0 }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numAbs(a *Num) *Num    { return &Num{val: new(big.Rat).Abs(a.val)} }

// Bounds for folding numeric powers. Larger powers stay unevaluated.
const (
	maxFoldExponent = 4096
	maxFoldBits     = 1 << 16
)

// numPowInt returns a^e exactly, or false when the result is undefined
// (0^-n) or would be unreasonably large.
func numPowInt(a *Num, e int64) (*Num, bool) {
	if e < -maxFoldExponent || e > maxFoldExponent {
		return nil, false
	}
	if a.IsZero() && e < 0 {
		return nil, false
	}
	abs := e
	if abs < 0 {
		abs = -abs
	}
	bits := int64(a.val.Num().BitLen() + a.val.Denom().BitLen())
	if bits*abs > maxFoldBits {
		return nil, false
	}
	num := new(big.Int).Exp(a.val.Num(), big.NewInt(abs), nil)
	den := new(big.Int).Exp(a.val.Denom(), big.NewInt(abs), nil)
	if e < 0 {
		num, den = den, num
	}
	return &Num{val: new(big.Rat).SetFrac(num, den)}, true
}

// numPowRat folds integer powers and square roots of perfect squares.
func numPowRat(a, e *Num) (*Num, bool) {
	if e.IsInteger() {
		if !e.val.Num().IsInt64() {
			return nil, false
		}
		return numPowInt(a, e.val.Num().Int64())
	}
	if e.val.Denom().Cmp(big.NewInt(2)) != 0 || a.IsNegative() {
		return nil, false
	}
	rn := new(big.Int).Sqrt(a.val.Num())
	rd := new(big.Int).Sqrt(a.val.Denom())
	if new(big.Int).Mul(rn, rn).Cmp(a.val.Num()) != 0 || new(big.Int).Mul(rd, rd).Cmp(a.val.Denom()) != 0 {
		return nil, false
	}
	root := &Num{val: new(big.Rat).SetFrac(rn, rd)}
	if !e.val.Num().IsInt64() {
		return nil, false
	}
	return numPowInt(root, e.val.Num().Int64())
}

// ============================================================
// Sym — symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym      { return &Sym{name: name} }
func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string  { return latexName(s.name) }
func (s *Sym) Eval() (*Num, bool) {
	return nil, false
}
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) exprType() string      { return "sym" }
func (s *Sym) Name() string          { return s.name }
func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}
func (s *Sym) Subs(bindings map[string]Expr) Expr {
	if v, ok := bindings[s.name]; ok {
		return v
	}
	return s
}
func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

// latexName renders u0 as u_{0}, trailing underscores as primes and
// multi-letter names upright.
func latexName(name string) string {
	primes := 0
	for len(name) > 1 && strings.HasSuffix(name, "_") {
		name = name[:len(name)-1]
		primes++
	}
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	var out string
	switch {
	case i > 0 && i < len(name):
		out = latexName(name[:i]) + "_{" + name[i:] + "}"
	case len([]rune(name)) > 1:
		out = "\\mathrm{" + strings.ReplaceAll(name, "_", "\\_") + "}"
	default:
		out = name
	}
	return out + strings.Repeat("'", primes)
}

// ============================================================
// Const — named mathematical constants (not free symbols)
// ============================================================

type Const struct{ name string }

var (
	Pi = &Const{name: "pi"}
	E  = &Const{name: "E"}
)

// LookupConst resolves a constant by its source spelling.
func LookupConst(name string) (*Const, bool) {
	switch name {
	case "pi":
		return Pi, true
	case "E":
		return E, true
	}
	return nil, false
}

func (c *Const) Simplify() Expr            { return c }
func (c *Const) String() string            { return c.name }
func (c *Const) Subs(map[string]Expr) Expr { return c }
func (c *Const) Diff(string) Expr          { return N(0) }
func (c *Const) Equal(other Expr) bool     { o, ok := other.(*Const); return ok && c.name == o.name }
func (c *Const) exprType() string          { return "const" }
func (c *Const) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "name": c.name}
}
func (c *Const) LaTeX() string {
	if c.name == "pi" {
		return "\\pi"
	}
	return "e"
}
func (c *Const) Eval() (*Num, bool) {
	if c.name == "pi" {
		return NFloat(math.Pi), true
	}
	return NFloat(math.E), true
}

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Simplify flattens nested sums, folds numbers and merges terms whose
// non-numeric parts are equal.
func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}
	numAccum := N(0)
	coeffs := map[string]*Num{}
	bodies := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, v)
			continue
		}
		coeff, body := extractCoefficient(t)
		key := typedKey(body)
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = N(0)
			bodies[key] = body
		}
		coeffs[key] = numAdd(coeffs[key], coeff)
	}
	sort.Slice(order, func(i, j int) bool {
		return bodies[order[i]].String() < bodies[order[j]].String()
	})
	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		coeff := coeffs[key]
		if coeff.IsZero() {
			continue
		}
		if coeff.IsOne() {
			result = append(result, bodies[key])
		} else {
			result = append(result, MulOf(coeff, bodies[key]))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		if i > 0 {
			if neg, ok := negated(t); ok {
				sb.WriteString(" - ")
				sb.WriteString(neg.String())
				continue
			}
			sb.WriteString(" + ")
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

func (a *Add) LaTeX() string {
	var sb strings.Builder
	for i, t := range a.terms {
		if i > 0 {
			if neg, ok := negated(t); ok {
				sb.WriteString(" - ")
				sb.WriteString(neg.LaTeX())
				continue
			}
			sb.WriteString(" + ")
		}
		sb.WriteString(t.LaTeX())
	}
	return sb.String()
}

func (a *Add) Subs(bindings map[string]Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Subs(bindings)
	}
	return AddOf(newTerms...)
}

func (a *Add) Diff(varName string) Expr {
	dTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		dTerms[i] = t.Diff(varName)
	}
	return AddOf(dTerms...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) exprType() string { return "add" }
func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts}
}
func (a *Add) Terms() []Expr { return a.terms }

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Simplify flattens nested products, folds the numeric coefficient into
// the first position and merges powers of equal bases.
func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	coeff := N(1)
	bases := map[string]Expr{}
	exps := map[string][]Expr{}
	order := []string{}
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
			continue
		}
		base, exp := f, Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		key := typedKey(base)
		if _, seen := bases[key]; !seen {
			order = append(order, key)
			bases[key] = base
		}
		exps[key] = append(exps[key], exp)
	}
	if coeff.IsZero() {
		return N(0)
	}
	others := make([]Expr, 0, len(order))
	for _, key := range order {
		var merged Expr
		if len(exps[key]) == 1 {
			merged = powFromParts(bases[key], exps[key][0])
		} else {
			merged = PowOf(bases[key], AddOf(exps[key]...))
		}
		switch v := merged.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Mul:
			for _, f := range v.factors {
				if n, ok := f.(*Num); ok {
					coeff = numMul(coeff, n)
				} else {
					others = append(others, f)
				}
			}
		default:
			others = append(others, merged)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	// Precompute sort keys to avoid repeated String() calls in comparator.
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	sorted := make([]Expr, len(ks))
	for i := range ks {
		sorted[i] = ks[i].e
	}

	// A number distributes over a lone sum: 2*(x + y) is 2*x + 2*y.
	if a, ok := sorted[0].(*Add); ok && len(sorted) == 1 && !coeff.IsOne() {
		terms := make([]Expr, len(a.terms))
		for i, t := range a.terms {
			terms[i] = MulOf(coeff, t)
		}
		return AddOf(terms...)
	}
	if coeff.IsOne() {
		if len(sorted) == 1 {
			return sorted[0]
		}
		return &Mul{factors: sorted}
	}
	return &Mul{factors: append([]Expr{coeff}, sorted...)}
}

// powFromParts rebuilds a single factor without re-simplifying its base.
func powFromParts(base, exp Expr) Expr {
	if n, ok := exp.(*Num); ok && n.IsOne() {
		return base
	}
	return PowOf(base, exp)
}

// splitFraction separates a product into its coefficient, the factors
// with a positive exponent and the reciprocals of those with a negative one.
func (m *Mul) splitFraction() (coeff *Num, numer, denom []Expr) {
	coeff = N(1)
	for _, f := range m.factors {
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Pow:
			if en, ok := v.exp.(*Num); ok && en.IsNegative() {
				denom = append(denom, PowOf(v.base, numNeg(en)))
				continue
			}
			numer = append(numer, f)
		default:
			numer = append(numer, f)
		}
	}
	return coeff, numer, denom
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	coeff, numer, denom := m.splitFraction()
	sign := ""
	if coeff.IsNegative() {
		sign = "-"
		coeff = numNeg(coeff)
	}
	top := make([]string, 0, len(numer)+1)
	if !coeff.val.Num().IsInt64() || coeff.val.Num().Int64() != 1 || len(numer) == 0 {
		top = append(top, coeff.val.Num().String())
	}
	for _, f := range numer {
		top = append(top, factorString(f))
	}
	bottom := make([]string, 0, len(denom)+1)
	if !coeff.val.IsInt() {
		bottom = append(bottom, coeff.val.Denom().String())
	}
	for _, f := range denom {
		bottom = append(bottom, factorString(f))
	}
	out := sign + strings.Join(top, "*")
	switch len(bottom) {
	case 0:
	case 1:
		out += "/" + bottom[0]
	default:
		out += "/(" + strings.Join(bottom, "*") + ")"
	}
	return out
}

func (m *Mul) LaTeX() string {
	coeff, numer, denom := m.splitFraction()
	sign := ""
	if coeff.IsNegative() {
		sign = "-"
		coeff = numNeg(coeff)
	}
	top := make([]string, 0, len(numer)+1)
	if !coeff.val.Num().IsInt64() || coeff.val.Num().Int64() != 1 || len(numer) == 0 {
		top = append(top, coeff.val.Num().String())
	}
	for _, f := range numer {
		top = append(top, factorLaTeX(f))
	}
	bottom := make([]string, 0, len(denom)+1)
	if !coeff.val.IsInt() {
		bottom = append(bottom, coeff.val.Denom().String())
	}
	for _, f := range denom {
		bottom = append(bottom, factorLaTeX(f))
	}
	if len(bottom) == 0 {
		return sign + strings.Join(top, " ")
	}
	return sign + "\\frac{" + strings.Join(top, " ") + "}{" + strings.Join(bottom, " ") + "}"
}

func factorString(f Expr) string {
	switch f.(type) {
	case *Add, *Mul:
		return "(" + f.String() + ")"
	}
	return f.String()
}

func factorLaTeX(f Expr) string {
	switch f.(type) {
	case *Add, *Mul:
		return "\\left(" + f.LaTeX() + "\\right)"
	}
	return f.LaTeX()
}

func (m *Mul) Subs(bindings map[string]Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Subs(bindings)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(varName)
		others := make([]Expr, 0, len(m.factors)-1)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		terms[i] = MulOf(append([]Expr{dfi}, others...)...)
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) exprType() string { return "mul" }
func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}
func (m *Mul) Factors() []Expr { return m.factors }

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }
func SqrtOf(arg Expr) Expr      { return PowOf(arg, F(1, 2)) }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()
	en, expIsNum := exp.(*Num)

	if expIsNum && en.IsZero() {
		return N(1)
	}
	if expIsNum && en.IsOne() {
		return base
	}
	if bn, ok := base.(*Num); ok {
		// 0^negative is a division by zero and 0^x depends on the sign of
		// x; both stay unevaluated so the normal form can report them.
		if bn.IsZero() {
			if expIsNum && en.IsPositive() {
				return N(0)
			}
			return &Pow{base: base, exp: exp}
		}
		if bn.IsOne() {
			return N(1)
		}
		if expIsNum {
			if r, ok := numPowRat(bn, en); ok {
				return r
			}
		}
	}
	// (b^e)^n = b^(e*n) and (a*b)^n = a^n*b^n only hold for integer n.
	if expIsNum && en.IsInteger() {
		switch b := base.(type) {
		case *Pow:
			return PowOf(b.base, MulOf(b.exp, en))
		case *Mul:
			factors := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				factors[i] = PowOf(f, en)
			}
			return MulOf(factors...)
		}
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	if en, ok := p.exp.(*Num); ok {
		if en.Equal(F(1, 2)) {
			return "sqrt(" + p.base.String() + ")"
		}
		if en.IsNegative() {
			return "1/" + factorString(PowOf(p.base, numNeg(en)))
		}
	}
	baseStr := p.base.String()
	if needsBaseParens(p.base) {
		baseStr = "(" + baseStr + ")"
	}
	expStr := p.exp.String()
	if !isAtomicExp(p.exp) {
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	if en, ok := p.exp.(*Num); ok {
		if en.Equal(F(1, 2)) {
			return "\\sqrt{" + p.base.LaTeX() + "}"
		}
		if en.IsNegative() {
			return "\\frac{1}{" + PowOf(p.base, numNeg(en)).LaTeX() + "}"
		}
	}
	baseStr := p.base.LaTeX()
	if needsBaseParens(p.base) {
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func needsBaseParens(base Expr) bool {
	switch b := base.(type) {
	case *Add, *Mul, *Pow:
		return true
	case *Num:
		return b.IsNegative() || !b.IsInteger()
	}
	return false
}

func isAtomicExp(exp Expr) bool {
	switch e := exp.(type) {
	case *Sym, *Const, *Func:
		return true
	case *Num:
		return e.IsInteger() && !e.IsNegative()
	}
	return false
}

func (p *Pow) Subs(bindings map[string]Expr) Expr {
	return PowOf(p.base.Subs(bindings), p.exp.Subs(bindings))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if _, expIsNum := p.exp.(*Num); expIsNum {
		newExp := AddOf(p.exp, N(-1))
		return MulOf(p.exp, PowOf(p.base, newExp), du)
	}
	if _, baseIsNum := p.base.(*Num); baseIsNum {
		return MulOf(PowOf(p.base, p.exp), LnOf(p.base), dv)
	}
	logTerm := MulOf(dv, LnOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if ok1 && ok2 {
		if r, ok := numPowRat(b, e); ok {
			return r, true
		}
		pf := math.Pow(b.Float64(), e.Float64())
		if math.IsNaN(pf) || math.IsInf(pf, 0) {
			return nil, false
		}
		return NFloat(pf), true
	}
	return nil, false
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) exprType() string { return "pow" }
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }

// ============================================================
// Helpers
// ============================================================

// typedKey distinguishes nodes that print the same, such as a symbol
// named pi and the constant pi.
func typedKey(e Expr) string { return e.exprType() + ":" + e.String() }

func extractCoefficient(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	return N(1), e
}

// negated returns -t when t carries a negative coefficient.
func negated(t Expr) (Expr, bool) {
	switch v := t.(type) {
	case *Num:
		if v.IsNegative() {
			return numNeg(v), true
		}
	case *Mul:
		coeff, body := extractCoefficient(v)
		if coeff.IsNegative() {
			return MulOf(numNeg(coeff), body), true
		}
	}
	return nil, false
}

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.Equal(N(v))
}

// IsZeroLiteral reports whether e is the number 0 as written. Use IsZero
// to decide whether an expression is identically zero.
func IsZeroLiteral(e Expr) bool { return isNumEqual(e, 0) }
