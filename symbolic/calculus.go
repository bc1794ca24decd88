package symbolic

import (
	"sort"
	"unicode"
)

// ============================================================
// Equation
// ============================================================

type Equation struct{ LHS, RHS Expr }

func Eq(lhs, rhs Expr) *Equation { return &Equation{LHS: lhs, RHS: rhs} }
func (e *Equation) String() string {
	return e.LHS.String() + " = " + e.RHS.String()
}
func (e *Equation) LaTeX() string { return e.LHS.LaTeX() + " = " + e.RHS.LaTeX() }

// Residual returns LHS - RHS with structural simplification only. Pass it
// to IsZero to decide whether the equation is an identity.
func (e *Equation) Residual() Expr {
	return AddOf(e.LHS, MulOf(N(-1), e.RHS))
}

// ============================================================
// Top-level convenience functions
// ============================================================

func Simplify(e Expr) Expr { return e.Simplify() }
func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

// Sub replaces a single symbol.
func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Subs(map[string]Expr{varName: value}).Simplify()
}

// SubsAll replaces every bound symbol simultaneously, so x->y, y->x swaps.
func SubsAll(expr Expr, bindings map[string]Expr) Expr {
	if len(bindings) == 0 {
		return expr
	}
	return expr.Subs(bindings).Simplify()
}

func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

// Jacobian returns the m×n matrix of partial derivatives.
func Jacobian(exprs []Expr, varNames []string) *Matrix {
	mat := NewMatrix(len(exprs), len(varNames))
	for i, e := range exprs {
		for j, v := range varNames {
			mat.Set(i, j, Diff(e, v))
		}
	}
	return mat
}

// maxExpandPower bounds the integer powers Expand multiplies out.
const maxExpandPower = 10

func Expand(e Expr) Expr { return expandExpr(e).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		result := Expr(N(1))
		for _, f := range v.factors {
			result = distribute(result, expandExpr(f))
		}
		return result
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Pow:
		base := expandExpr(v.base)
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.val.Num().IsInt64() {
			exp := n.val.Num().Int64()
			if exp >= 2 && exp <= maxExpandPower {
				result := base
				for i := int64(1); i < exp; i++ {
					result = distribute(result, base)
				}
				return result
			}
			return PowOf(base, v.exp)
		}
		return PowOf(base, expandExpr(v.exp))
	case *Func:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = expandExpr(a)
		}
		return funcOf(v.name, args...).Simplify()
	}
	return e
}

// distribute multiplies two expanded expressions term by term. MulOf is
// not enough on its own because it merges (a+b)*(a+b) back into a power.
func distribute(a, b Expr) Expr {
	left, right := addTerms(a), addTerms(b)
	terms := make([]Expr, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			terms = append(terms, MulOf(l, r))
		}
	}
	return AddOf(terms...)
}

func addTerms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// ============================================================
// Free Symbols
// ============================================================

// FreeSymbols returns the names of every Sym in e. Constants such as pi
// are not free symbols.
func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

// SortedFreeSymbols returns FreeSymbols in lexical order.
func SortedFreeSymbols(e Expr) []string {
	set := FreeSymbols(e)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		for _, a := range v.args {
			collectSymbols(a, out)
		}
	}
}

// IsIdentifier reports whether name is a letter or underscore followed by
// letters, digits and underscores.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
