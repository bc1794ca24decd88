package symbolic

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ============================================================
// Rational normal form
// ============================================================
//
// An expression is rewritten as P/Q where P and Q are polynomials with
// exact rational coefficients over atoms: symbols, constants, roots and
// other non-integer powers, and function applications whose arguments are
// themselves normalised. The expression is identically zero iff P is the
// zero polynomial.

// Limits bounds the work done by Normalize and IsZero.
type Limits struct {
	// MaxExponent is the largest integer power that is multiplied out.
	MaxExponent int
	// MaxTerms is the largest number of terms any intermediate polynomial
	// may hold.
	MaxTerms int
}

var DefaultLimits = Limits{MaxExponent: 64, MaxTerms: 50000}

func (l Limits) withDefaults() Limits {
	if l.MaxExponent <= 0 {
		l.MaxExponent = DefaultLimits.MaxExponent
	}
	if l.MaxTerms <= 0 {
		l.MaxTerms = DefaultLimits.MaxTerms
	}
	return l
}

const (
	// mulWorkFactor scales MaxTerms into the largest term-by-term product
	// a single multiplication may perform.
	mulWorkFactor = 64
	// maxRootPasses bounds nested rewrites of root atoms.
	maxRootPasses = 64
)

// Normalize returns e in rational normal form. Identically zero
// expressions become the literal 0.
func Normalize(e Expr, limits Limits) (Expr, error) {
	n := newNormalizer(limits)
	r, err := n.fromExpr(e)
	if err != nil {
		return nil, err
	}
	return n.toExpr(r), nil
}

// IsZero reports whether e is identically zero.
func IsZero(e Expr, limits Limits) (bool, error) {
	n := newNormalizer(limits)
	r, err := n.fromExpr(e)
	if err != nil {
		return false, err
	}
	return r.num.isZero(), nil
}

// ============================================================
// Monomials and sparse polynomials
// ============================================================

// monomial holds one exponent per atom index, with trailing zeros trimmed.
type monomial []int

func (m monomial) key() string {
	var sb strings.Builder
	for i, e := range m {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(e))
	}
	return sb.String()
}

func trimMono(m monomial) monomial {
	end := len(m)
	for end > 0 && m[end-1] == 0 {
		end--
	}
	return m[:end]
}

func expAt(m monomial, i int) int {
	if i < len(m) {
		return m[i]
	}
	return 0
}

func monoMul(a, b monomial) monomial {
	size := len(a)
	if len(b) > size {
		size = len(b)
	}
	out := make(monomial, size)
	for i := range out {
		out[i] = expAt(a, i) + expAt(b, i)
	}
	return trimMono(out)
}

// monoDiv returns a/b when b divides a.
func monoDiv(a, b monomial) (monomial, bool) {
	b = trimMono(b)
	if len(b) > len(a) {
		return nil, false
	}
	out := make(monomial, len(a))
	for i := range out {
		d := a[i] - expAt(b, i)
		if d < 0 {
			return nil, false
		}
		out[i] = d
	}
	return trimMono(out), true
}

// monoCmp orders monomials lexicographically by atom index.
func monoCmp(a, b monomial) int {
	size := len(a)
	if len(b) > size {
		size = len(b)
	}
	for i := 0; i < size; i++ {
		ai, bi := expAt(a, i), expAt(b, i)
		if ai != bi {
			if ai > bi {
				return 1
			}
			return -1
		}
	}
	return 0
}

type term struct {
	mono  monomial
	coeff *big.Rat
}

type poly struct{ terms map[string]term }

func newPoly() *poly { return &poly{terms: map[string]term{}} }

func constPoly(c *big.Rat) *poly {
	p := newPoly()
	p.addTerm(nil, c)
	return p
}

func onePoly() *poly { return constPoly(big.NewRat(1, 1)) }

func monoPoly(m monomial, c *big.Rat) *poly {
	p := newPoly()
	p.addTerm(m, c)
	return p
}

func (p *poly) addTerm(m monomial, c *big.Rat) {
	if c.Sign() == 0 {
		return
	}
	k := m.key()
	if t, ok := p.terms[k]; ok {
		sum := new(big.Rat).Add(t.coeff, c)
		if sum.Sign() == 0 {
			delete(p.terms, k)
			return
		}
		p.terms[k] = term{mono: t.mono, coeff: sum}
		return
	}
	p.terms[k] = term{mono: m, coeff: new(big.Rat).Set(c)}
}

func (p *poly) isZero() bool { return len(p.terms) == 0 }

// constant returns the value of a polynomial without atoms.
func (p *poly) constant() (*big.Rat, bool) {
	switch len(p.terms) {
	case 0:
		return new(big.Rat), true
	case 1:
		if t, ok := p.terms[""]; ok {
			return t.coeff, true
		}
	}
	return nil, false
}

func (p *poly) isOne() bool {
	c, ok := p.constant()
	return ok && c.Cmp(big.NewRat(1, 1)) == 0
}

func (p *poly) equal(q *poly) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for k, t := range p.terms {
		o, ok := q.terms[k]
		if !ok || t.coeff.Cmp(o.coeff) != 0 {
			return false
		}
	}
	return true
}

func (p *poly) scale(c *big.Rat) *poly {
	out := newPoly()
	for _, t := range p.terms {
		out.addTerm(t.mono, new(big.Rat).Mul(t.coeff, c))
	}
	return out
}

func (p *poly) leading() term {
	var lt term
	first := true
	for _, t := range p.terms {
		if first || monoCmp(t.mono, lt.mono) > 0 {
			lt = t
			first = false
		}
	}
	return lt
}

// subScaled returns p - c*m*d.
func (p *poly) subScaled(d *poly, m monomial, c *big.Rat) *poly {
	out := newPoly()
	for _, t := range p.terms {
		out.addTerm(t.mono, t.coeff)
	}
	for _, t := range d.terms {
		out.addTerm(monoMul(t.mono, m), new(big.Rat).Neg(new(big.Rat).Mul(t.coeff, c)))
	}
	return out
}

// exactDiv returns p/d when d divides p. A single divisor is a Gröbner
// basis of the ideal it generates, so the division algorithm leaves a zero
// remainder exactly when d divides p.
func exactDiv(p, d *poly, maxSteps int) (*poly, bool) {
	if d.isZero() {
		return nil, false
	}
	lt := d.leading()
	inv := new(big.Rat).Inv(lt.coeff)
	rem := p
	q := newPoly()
	for steps := 0; !rem.isZero(); steps++ {
		if steps > maxSteps {
			return nil, false
		}
		t := rem.leading()
		m, ok := monoDiv(t.mono, lt.mono)
		if !ok {
			return nil, false
		}
		c := new(big.Rat).Mul(t.coeff, inv)
		q.addTerm(m, c)
		rem = rem.subScaled(d, m, c)
	}
	return q, true
}

// ============================================================
// Rational functions
// ============================================================

type rat struct{ num, den *poly }

func zeroRat() rat            { return rat{num: newPoly(), den: onePoly()} }
func oneRat() rat             { return rat{num: onePoly(), den: onePoly()} }
func constRat(c *big.Rat) rat { return rat{num: constPoly(c), den: onePoly()} }
func polyRat(p *poly) rat     { return rat{num: p, den: onePoly()} }

type atom struct {
	expr Expr
	// root and deg describe an atom b^(1/deg); atom^deg rewrites to root.
	root *rat
	deg  int
}

type normalizer struct {
	limits Limits
	atoms  []atom
	index  map[string]int
	passes int
}

func newNormalizer(limits Limits) *normalizer {
	return &normalizer{limits: limits.withDefaults(), index: map[string]int{}}
}

func (n *normalizer) atomRat(e Expr, root *rat, deg int) rat {
	key := typedKey(e)
	idx, ok := n.index[key]
	if !ok {
		idx = len(n.atoms)
		n.atoms = append(n.atoms, atom{expr: e, root: root, deg: deg})
		n.index[key] = idx
	}
	m := make(monomial, idx+1)
	m[idx] = 1
	return polyRat(monoPoly(m, big.NewRat(1, 1)))
}

func (n *normalizer) fromExpr(e Expr) (rat, error) {
	switch v := e.(type) {
	case *Num:
		return constRat(v.val), nil
	case *Sym, *Const:
		return n.atomRat(v, nil, 0), nil
	case *Add:
		acc := zeroRat()
		for _, t := range v.terms {
			r, err := n.fromExpr(t)
			if err != nil {
				return rat{}, err
			}
			if acc, err = n.add(acc, r); err != nil {
				return rat{}, err
			}
		}
		return acc, nil
	case *Mul:
		acc := oneRat()
		for _, f := range v.factors {
			r, err := n.fromExpr(f)
			if err != nil {
				return rat{}, err
			}
			if acc, err = n.mul(acc, r); err != nil {
				return rat{}, err
			}
		}
		return acc, nil
	case *Pow:
		return n.fromPow(v)
	case *Func:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			r, err := n.fromExpr(a)
			if err != nil {
				return rat{}, err
			}
			args[i] = n.toExpr(r)
		}
		fe := funcOf(v.name, args...).Simplify()
		if f, ok := fe.(*Func); ok {
			return n.atomRat(f, nil, 0), nil
		}
		return n.fromExpr(fe)
	}
	return rat{}, fmt.Errorf("symbolic: cannot normalise %T", e)
}

func (n *normalizer) fromPow(p *Pow) (rat, error) {
	expR, err := n.fromExpr(p.exp)
	if err != nil {
		return rat{}, err
	}
	expE := n.toExpr(expR)
	baseR, err := n.fromExpr(p.base)
	if err != nil {
		return rat{}, err
	}
	if en, ok := expE.(*Num); ok {
		if en.IsInteger() {
			k, err := n.exponent(en.val.Num())
			if err != nil {
				return rat{}, err
			}
			return n.pow(baseR, k)
		}
		return n.fromRoot(baseR, en)
	}
	baseE := n.toExpr(baseR)
	if IsZeroLiteral(baseE) {
		// 0^x depends on the sign of x and stays opaque.
		return n.atomRat(&Pow{base: baseE, exp: expE}, nil, 0), nil
	}
	pe := PowOf(baseE, expE)
	if pp, ok := pe.(*Pow); ok {
		if _, numExp := pp.exp.(*Num); !numExp {
			return n.atomRat(pp, nil, 0), nil
		}
	}
	return n.fromExpr(pe)
}

func (n *normalizer) exponent(k *big.Int) (int, error) {
	if !k.IsInt64() || k.Int64() > int64(n.limits.MaxExponent) || k.Int64() < -int64(n.limits.MaxExponent) {
		return 0, fmt.Errorf("%w: exponent %s exceeds %d", ErrTooComplex, k, n.limits.MaxExponent)
	}
	return int(k.Int64()), nil
}

// fromRoot rewrites b^(p/q) as b^k * (b^(1/q))^r with 0 <= r < q.
func (n *normalizer) fromRoot(baseR rat, e *Num) (rat, error) {
	if baseR.num.isZero() {
		if e.IsPositive() {
			return zeroRat(), nil
		}
		return rat{}, ErrDivisionByZero
	}
	baseE := n.toExpr(baseR)
	q := e.val.Denom()
	if !q.IsInt64() || q.Int64() > int64(n.limits.MaxExponent) {
		return n.atomRat(&Pow{base: baseE, exp: e}, nil, 0), nil
	}
	deg := q.Int64()
	k, r := new(big.Int).DivMod(e.val.Num(), q, new(big.Int))
	kk, err := n.exponent(k)
	if err != nil {
		return rat{}, err
	}
	unit := F(1, deg)
	var rootR rat
	if rp, ok := PowOf(baseE, unit).(*Pow); ok && rp.exp.Equal(unit) {
		root := baseR
		rootR = n.atomRat(rp, &root, int(deg))
	} else if rootR, err = n.fromExpr(PowOf(baseE, unit)); err != nil {
		return rat{}, err
	}
	rootPow, err := n.pow(rootR, int(r.Int64()))
	if err != nil {
		return rat{}, err
	}
	basePow, err := n.pow(baseR, kk)
	if err != nil {
		return rat{}, err
	}
	return n.mul(rootPow, basePow)
}

// ============================================================
// Arithmetic on P/Q
// ============================================================

func (n *normalizer) polyAdd(a, b *poly, negateB bool) (*poly, error) {
	out := newPoly()
	for _, t := range a.terms {
		out.addTerm(t.mono, t.coeff)
	}
	for _, t := range b.terms {
		c := t.coeff
		if negateB {
			c = new(big.Rat).Neg(c)
		}
		out.addTerm(t.mono, c)
	}
	if len(out.terms) > n.limits.MaxTerms {
		return nil, fmt.Errorf("%w: more than %d terms", ErrTooComplex, n.limits.MaxTerms)
	}
	return out, nil
}

func (n *normalizer) polyMul(a, b *poly) (*poly, error) {
	if len(a.terms)*len(b.terms) > n.limits.MaxTerms*mulWorkFactor {
		return nil, fmt.Errorf("%w: product of %d and %d terms", ErrTooComplex, len(a.terms), len(b.terms))
	}
	out := newPoly()
	for _, x := range a.terms {
		for _, y := range b.terms {
			out.addTerm(monoMul(x.mono, y.mono), new(big.Rat).Mul(x.coeff, y.coeff))
		}
	}
	if len(out.terms) > n.limits.MaxTerms {
		return nil, fmt.Errorf("%w: more than %d terms", ErrTooComplex, n.limits.MaxTerms)
	}
	return out, nil
}

func (n *normalizer) add(a, b rat) (rat, error) {
	if a.num.isZero() {
		return b, nil
	}
	if b.num.isZero() {
		return a, nil
	}
	if a.den.equal(b.den) {
		num, err := n.polyAdd(a.num, b.num, false)
		if err != nil {
			return rat{}, err
		}
		return n.reduce(num, a.den)
	}
	ad, err := n.polyMul(a.num, b.den)
	if err != nil {
		return rat{}, err
	}
	bd, err := n.polyMul(b.num, a.den)
	if err != nil {
		return rat{}, err
	}
	num, err := n.polyAdd(ad, bd, false)
	if err != nil {
		return rat{}, err
	}
	den, err := n.polyMul(a.den, b.den)
	if err != nil {
		return rat{}, err
	}
	return n.build(num, den)
}

func (n *normalizer) mul(a, b rat) (rat, error) {
	if a.num.isZero() || b.num.isZero() {
		return zeroRat(), nil
	}
	num, err := n.polyMul(a.num, b.num)
	if err != nil {
		return rat{}, err
	}
	den, err := n.polyMul(a.den, b.den)
	if err != nil {
		return rat{}, err
	}
	return n.build(num, den)
}

func (n *normalizer) inv(a rat) (rat, error) {
	if a.num.isZero() {
		return rat{}, ErrDivisionByZero
	}
	return n.reduce(a.den, a.num)
}

func (n *normalizer) pow(a rat, k int) (rat, error) {
	if k > n.limits.MaxExponent || k < -n.limits.MaxExponent {
		return rat{}, fmt.Errorf("%w: exponent %d exceeds %d", ErrTooComplex, k, n.limits.MaxExponent)
	}
	if k < 0 {
		r, err := n.inv(a)
		if err != nil {
			return rat{}, err
		}
		a, k = r, -k
	}
	result := oneRat()
	for k > 0 {
		var err error
		if k&1 == 1 {
			if result, err = n.mul(result, a); err != nil {
				return rat{}, err
			}
		}
		k >>= 1
		if k > 0 {
			if a, err = n.mul(a, a); err != nil {
				return rat{}, err
			}
		}
	}
	return result, nil
}

// build rewrites powers of root atoms that reach their degree, then
// reduces the fraction.
func (n *normalizer) build(num, den *poly) (rat, error) {
	if den.isZero() {
		return rat{}, ErrDivisionByZero
	}
	n.passes++
	defer func() { n.passes-- }()
	if n.passes > maxRootPasses {
		return rat{}, fmt.Errorf("%w: nested roots", ErrTooComplex)
	}
	rn, numChanged, err := n.reduceRoots(num)
	if err != nil {
		return rat{}, err
	}
	rd, denChanged, err := n.reduceRoots(den)
	if err != nil {
		return rat{}, err
	}
	if !numChanged && !denChanged {
		return n.reduce(num, den)
	}
	if !numChanged {
		rn = polyRat(num)
	}
	if !denChanged {
		rd = polyRat(den)
	}
	inv, err := n.inv(rd)
	if err != nil {
		return rat{}, err
	}
	return n.mul(rn, inv)
}

func (n *normalizer) reduceRoots(p *poly) (rat, bool, error) {
	found := false
	for _, t := range p.terms {
		for i, e := range t.mono {
			if d := n.atoms[i].deg; d > 0 && e >= d {
				found = true
			}
		}
	}
	if !found {
		return rat{}, false, nil
	}
	acc := zeroRat()
	for _, t := range p.terms {
		m := make(monomial, len(t.mono))
		copy(m, t.mono)
		factor := constRat(t.coeff)
		for i, e := range m {
			a := n.atoms[i]
			if a.deg == 0 || e < a.deg {
				continue
			}
			m[i] = e % a.deg
			rp, err := n.pow(*a.root, e/a.deg)
			if err != nil {
				return rat{}, false, err
			}
			if factor, err = n.mul(factor, rp); err != nil {
				return rat{}, false, err
			}
		}
		factor, err := n.mul(factor, polyRat(monoPoly(trimMono(m), big.NewRat(1, 1))))
		if err != nil {
			return rat{}, false, err
		}
		if acc, err = n.add(acc, factor); err != nil {
			return rat{}, false, err
		}
	}
	return acc, true, nil
}

// reduce cancels constant and monomial factors, divides exactly when one
// side divides the other and makes the denominator monic.
func (n *normalizer) reduce(num, den *poly) (rat, error) {
	if den.isZero() {
		return rat{}, ErrDivisionByZero
	}
	if num.isZero() {
		return zeroRat(), nil
	}
	if c, ok := den.constant(); ok {
		if c.Cmp(big.NewRat(1, 1)) == 0 {
			return rat{num: num, den: den}, nil
		}
		return polyRat(num.scale(new(big.Rat).Inv(c))), nil
	}
	num, den = cancelMonomial(num, den)
	if c, ok := den.constant(); ok {
		return polyRat(num.scale(new(big.Rat).Inv(c))), nil
	}
	if q, ok := exactDiv(num, den, n.limits.MaxTerms); ok {
		return polyRat(q), nil
	}
	if q, ok := exactDiv(den, num, n.limits.MaxTerms); ok {
		num, den = onePoly(), q
		if c, ok := den.constant(); ok {
			return polyRat(num.scale(new(big.Rat).Inv(c))), nil
		}
	}
	lc := den.leading().coeff
	if lc.Cmp(big.NewRat(1, 1)) != 0 {
		inv := new(big.Rat).Inv(lc)
		num, den = num.scale(inv), den.scale(inv)
	}
	return rat{num: num, den: den}, nil
}

// cancelMonomial divides num and den by the largest monomial dividing
// every term of both.
func cancelMonomial(num, den *poly) (*poly, *poly) {
	var common monomial
	first := true
	for _, p := range []*poly{num, den} {
		for _, t := range p.terms {
			if first {
				common = append(monomial(nil), t.mono...)
				first = false
				continue
			}
			for i := range common {
				if e := expAt(t.mono, i); e < common[i] {
					common[i] = e
				}
			}
		}
	}
	common = trimMono(common)
	if len(common) == 0 {
		return num, den
	}
	divide := func(p *poly) *poly {
		out := newPoly()
		for _, t := range p.terms {
			m, _ := monoDiv(t.mono, common)
			out.addTerm(m, t.coeff)
		}
		return out
	}
	return divide(num), divide(den)
}

// ============================================================
// Back to expressions
// ============================================================

func (n *normalizer) toExpr(r rat) Expr {
	num := n.polyExpr(r.num)
	if r.den.isOne() {
		return num
	}
	return MulOf(num, PowOf(n.polyExpr(r.den), N(-1)))
}

func (n *normalizer) polyExpr(p *poly) Expr {
	terms := make([]Expr, 0, len(p.terms))
	for _, t := range p.terms {
		factors := []Expr{NRat(t.coeff)}
		for i, e := range t.mono {
			if e != 0 {
				factors = append(factors, PowOf(n.atoms[i].expr, N(int64(e))))
			}
		}
		terms = append(terms, MulOf(factors...))
	}
	return AddOf(terms...)
}
