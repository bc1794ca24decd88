package symbolic_test

import (
	"math"
	"testing"

	"github.com/njchilds90/linearcheck/symbolic"
)

var (
	x = symbolic.S("x")
	y = symbolic.S("y")
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := symbolic.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := symbolic.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	if got := symbolic.F(2, 5).LaTeX(); got != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", got)
	}
	if got := symbolic.F(-1, 2).LaTeX(); got != `-\frac{1}{2}` {
		t.Errorf("want -\\frac{1}{2}, got %s", got)
	}
}

func TestNum_Diff_IsZero(t *testing.T) {
	result := symbolic.N(5).Diff("x")
	if symbolic.String(result) != "0" {
		t.Errorf("d/dx(5) should be 0, got %s", symbolic.String(result))
	}
}

// ============================================================
// Add / Mul / Pow structural simplification
// ============================================================

func TestAdd_CombinesLikeTerms(t *testing.T) {
	got := symbolic.AddOf(x, y, x).String()
	if got != "2*x + y" {
		t.Errorf("want 2*x + y, got %s", got)
	}
}

func TestAdd_Cancels(t *testing.T) {
	got := symbolic.AddOf(x, symbolic.MulOf(symbolic.N(-1), x))
	if !symbolic.IsZeroLiteral(got) {
		t.Errorf("x - x should be 0, got %s", got)
	}
}

func TestAdd_FoldsNumbers(t *testing.T) {
	if got := symbolic.AddOf(symbolic.N(1), symbolic.N(2)).String(); got != "3" {
		t.Errorf("want 3, got %s", got)
	}
}

func TestAdd_PrintsSubtraction(t *testing.T) {
	got := symbolic.AddOf(x, symbolic.MulOf(symbolic.N(-1), y)).String()
	if got != "x - y" {
		t.Errorf("want x - y, got %s", got)
	}
	got = symbolic.AddOf(symbolic.MulOf(symbolic.N(-2), x), symbolic.N(3)).String()
	if got != "-2*x + 3" {
		t.Errorf("want -2*x + 3, got %s", got)
	}
}

func TestAdd_KeepsSymbolAndConstantApart(t *testing.T) {
	got := symbolic.AddOf(symbolic.S("pi"), symbolic.Pi)
	if _, ok := got.(*symbolic.Add); !ok {
		t.Errorf("symbol pi and constant pi must not merge, got %s", got)
	}
}

func TestMul_FoldsCoefficient(t *testing.T) {
	if got := symbolic.MulOf(symbolic.N(3), x, symbolic.N(2)).String(); got != "6*x" {
		t.Errorf("want 6*x, got %s", got)
	}
}

func TestMul_MergesEqualBases(t *testing.T) {
	if got := symbolic.MulOf(x, x).String(); got != "x^2" {
		t.Errorf("want x^2, got %s", got)
	}
	if got := symbolic.MulOf(x, symbolic.PowOf(x, symbolic.N(-1))).String(); got != "1" {
		t.Errorf("want 1, got %s", got)
	}
}

func TestMul_PrintsFractions(t *testing.T) {
	cases := []struct {
		expr symbolic.Expr
		want string
	}{
		{symbolic.MulOf(x, symbolic.PowOf(y, symbolic.N(-1))), "x/y"},
		{symbolic.MulOf(symbolic.F(1, 2), x), "x/2"},
		{symbolic.MulOf(symbolic.F(-3, 2), x), "-3*x/2"},
		{symbolic.PowOf(x, symbolic.N(-2)), "1/x^2"},
	}
	for _, c := range cases {
		if got := c.expr.String(); got != c.want {
			t.Errorf("want %s, got %s", c.want, got)
		}
	}
}

func TestMul_Zero(t *testing.T) {
	if got := symbolic.MulOf(symbolic.N(0), x, y); !symbolic.IsZeroLiteral(got) {
		t.Errorf("0*x*y should be 0, got %s", got)
	}
}

func TestPow_NumericFolding(t *testing.T) {
	if got := symbolic.PowOf(symbolic.N(4), symbolic.F(1, 2)).String(); got != "2" {
		t.Errorf("sqrt(4): want 2, got %s", got)
	}
	if got := symbolic.SqrtOf(symbolic.N(2)).String(); got != "sqrt(2)" {
		t.Errorf("want sqrt(2), got %s", got)
	}
	if got := symbolic.PowOf(symbolic.N(2), symbolic.N(10)).String(); got != "1024" {
		t.Errorf("want 1024, got %s", got)
	}
}

func TestPow_IntegerExponentMerges(t *testing.T) {
	got := symbolic.PowOf(symbolic.PowOf(x, symbolic.F(1, 2)), symbolic.N(2))
	if !got.Equal(x) {
		t.Errorf("(sqrt(x))^2 should be x, got %s", got)
	}
	got = symbolic.PowOf(symbolic.MulOf(symbolic.N(2), x), symbolic.N(2))
	if got.String() != "4*x^2" {
		t.Errorf("want 4*x^2, got %s", got)
	}
}

func TestPow_FractionalExponentDoesNotMerge(t *testing.T) {
	got := symbolic.PowOf(symbolic.PowOf(x, symbolic.N(2)), symbolic.F(1, 2))
	if got.String() != "sqrt(x^2)" {
		t.Errorf("sqrt(x^2) must stay unevaluated, got %s", got)
	}
}

func TestPow_ZeroBase(t *testing.T) {
	if got := symbolic.PowOf(symbolic.N(0), symbolic.N(3)); !symbolic.IsZeroLiteral(got) {
		t.Errorf("0^3 should be 0, got %s", got)
	}
	if got := symbolic.PowOf(symbolic.N(0), x).String(); got != "0^x" {
		t.Errorf("0^x should stay unevaluated, got %s", got)
	}
}

func TestPow_String(t *testing.T) {
	if got := symbolic.PowOf(x, symbolic.F(3, 2)).String(); got != "x^(3/2)" {
		t.Errorf("want x^(3/2), got %s", got)
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_SpecialValues(t *testing.T) {
	cases := []struct {
		name string
		expr symbolic.Expr
		want string
	}{
		{"sin(0)", symbolic.SinOf(symbolic.N(0)), "0"},
		{"cos(0)", symbolic.CosOf(symbolic.N(0)), "1"},
		{"exp(0)", symbolic.ExpOf(symbolic.N(0)), "1"},
		{"ln(1)", symbolic.LnOf(symbolic.N(1)), "0"},
		{"ln(E)", symbolic.LnOf(symbolic.E), "1"},
		{"abs(-3)", symbolic.AbsOf(symbolic.N(-3)), "3"},
		{"ln(exp(x))", symbolic.LnOf(symbolic.ExpOf(x)), "x"},
		{"abs(-2*x)", symbolic.AbsOf(symbolic.MulOf(symbolic.N(-2), x)), "2*abs(x)"},
		{"floor(7/2)", symbolic.FloorOf(symbolic.F(7, 2)), "3"},
		{"floor(-7/2)", symbolic.FloorOf(symbolic.F(-7, 2)), "-4"},
		{"ceil(7/2)", symbolic.CeilOf(symbolic.F(7, 2)), "4"},
		{"ceil(-7/2)", symbolic.CeilOf(symbolic.F(-7, 2)), "-3"},
		{"sign(-5)", symbolic.SignOf(symbolic.N(-5)), "-1"},
		{"min(3, 1, 2)", symbolic.MinOf(symbolic.N(3), symbolic.N(1), symbolic.N(2)), "1"},
		{"max(x)", symbolic.MaxOf(x), "x"},
	}
	for _, c := range cases {
		if got := c.expr.String(); got != c.want {
			t.Errorf("%s: want %s, got %s", c.name, c.want, got)
		}
	}
}

func TestFunc_NumericArgumentStaysSymbolic(t *testing.T) {
	if got := symbolic.SinOf(symbolic.N(1)).String(); got != "sin(1)" {
		t.Errorf("want sin(1), got %s", got)
	}
}

func TestFunc_MultiArgString(t *testing.T) {
	if got := symbolic.Atan2Of(y, x).String(); got != "atan2(y, x)" {
		t.Errorf("want atan2(y, x), got %s", got)
	}
}

func TestFunc_Eval(t *testing.T) {
	v, ok := symbolic.Atan2Of(symbolic.N(1), symbolic.N(1)).Eval()
	if !ok || math.Abs(v.Float64()-math.Pi/4) > 1e-12 {
		t.Errorf("atan2(1, 1) should be pi/4")
	}
	if _, ok := symbolic.LnOf(symbolic.N(-1)).Eval(); ok {
		t.Errorf("ln(-1) should not evaluate to a real number")
	}
}

func TestFunc_LaTeX(t *testing.T) {
	if got := symbolic.SinOf(x).LaTeX(); got != `\sin\left(x\right)` {
		t.Errorf("got %s", got)
	}
	if got := symbolic.AbsOf(x).LaTeX(); got != `\left|x\right|` {
		t.Errorf("got %s", got)
	}
}

// ============================================================
// Subs / Diff / Expand / FreeSymbols
// ============================================================

func TestSubsAll_Simultaneous(t *testing.T) {
	e := symbolic.AddOf(x, symbolic.MulOf(symbolic.N(2), y))
	got := symbolic.SubsAll(e, map[string]symbolic.Expr{"x": y, "y": x})
	if got.String() != "2*x + y" {
		t.Errorf("swap: want 2*x + y, got %s", got)
	}
}

func TestSub_Single(t *testing.T) {
	got := symbolic.Sub(symbolic.AddOf(x, y), "x", symbolic.N(1))
	if got.String() != "y + 1" {
		t.Errorf("want y + 1, got %s", got)
	}
}

func TestDiff(t *testing.T) {
	cases := []struct {
		expr symbolic.Expr
		want string
	}{
		{symbolic.PowOf(x, symbolic.N(3)), "3*x^2"},
		{symbolic.SinOf(x), "cos(x)"},
		{symbolic.MulOf(x, y), "y"},
		{symbolic.ExpOf(symbolic.MulOf(symbolic.N(2), x)), "2*exp(2*x)"},
	}
	for _, c := range cases {
		if got := symbolic.Diff(c.expr, "x").String(); got != c.want {
			t.Errorf("d/dx %s: want %s, got %s", c.expr, c.want, got)
		}
	}
}

func TestDiff_MultiArgConstant(t *testing.T) {
	got := symbolic.Diff(symbolic.Atan2Of(y, symbolic.N(1)), "x")
	if !symbolic.IsZeroLiteral(got) {
		t.Errorf("atan2(y, 1) does not depend on x, got %s", got)
	}
}

func TestDiff_MultiArgChainRule(t *testing.T) {
	m := symbolic.MaxOf(symbolic.MulOf(symbolic.N(2), x), y)
	wantX := symbolic.MulOf(symbolic.N(2), symbolic.FuncOf("D_0[max]", symbolic.MulOf(symbolic.N(2), x), y))
	if got := symbolic.Diff(m, "x"); !got.Equal(wantX) {
		t.Errorf("d/dx max(2*x, y): want %s, got %s", wantX, got)
	}
	wantY := symbolic.FuncOf("D_1[max]", symbolic.MulOf(symbolic.N(2), x), y)
	if got := symbolic.Diff(m, "y"); !got.Equal(wantY) {
		t.Errorf("d/dy max(2*x, y): want %s, got %s", wantY, got)
	}
	if got := symbolic.Diff(m, "z"); !symbolic.IsZeroLiteral(got) {
		t.Errorf("d/dz max(2*x, y): want 0, got %s", got)
	}
}

func TestExpand_Square(t *testing.T) {
	got := symbolic.Expand(symbolic.PowOf(symbolic.AddOf(x, symbolic.N(1)), symbolic.N(2)))
	want := symbolic.AddOf(symbolic.PowOf(x, symbolic.N(2)), symbolic.MulOf(symbolic.N(2), x), symbolic.N(1))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestExpand_Product(t *testing.T) {
	got := symbolic.Expand(symbolic.MulOf(symbolic.AddOf(x, y), symbolic.AddOf(x, symbolic.MulOf(symbolic.N(-1), y))))
	want := symbolic.AddOf(symbolic.PowOf(x, symbolic.N(2)), symbolic.MulOf(symbolic.N(-1), symbolic.PowOf(y, symbolic.N(2))))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestFreeSymbols_ExcludesConstants(t *testing.T) {
	got := symbolic.SortedFreeSymbols(symbolic.AddOf(symbolic.MulOf(symbolic.Pi, x), symbolic.SinOf(y), symbolic.E))
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("want [x y], got %v", got)
	}
}

func TestEquation_Residual(t *testing.T) {
	eq := symbolic.Eq(symbolic.AddOf(x, y), symbolic.AddOf(y, x))
	if !symbolic.IsZeroLiteral(eq.Residual()) {
		t.Errorf("x + y = y + x should have residual 0, got %s", eq.Residual())
	}
	if eq.String() != "x + y = x + y" {
		t.Errorf("got %s", eq.String())
	}
}

func TestEval(t *testing.T) {
	v, ok := symbolic.Sub(symbolic.AddOf(x, symbolic.N(1)), "x", symbolic.N(2)).Eval()
	if !ok || v.String() != "3" {
		t.Errorf("want 3")
	}
	if _, ok := x.Eval(); ok {
		t.Errorf("free symbol should not evaluate")
	}
	v, ok = symbolic.SqrtOf(symbolic.N(2)).Eval()
	if !ok || math.Abs(v.Float64()-math.Sqrt2) > 1e-12 {
		t.Errorf("sqrt(2) should evaluate to about 1.41421")
	}
}

// ============================================================
// LaTeX
// ============================================================

func TestLaTeX(t *testing.T) {
	cases := []struct {
		expr symbolic.Expr
		want string
	}{
		{symbolic.PowOf(x, symbolic.N(2)), "x^{2}"},
		{symbolic.MulOf(x, symbolic.PowOf(y, symbolic.N(-1))), `\frac{x}{y}`},
		{symbolic.S("u0"), "u_{0}"},
		{symbolic.S("k_"), "k'"},
		{symbolic.S("alpha"), `\mathrm{alpha}`},
		{symbolic.Pi, `\pi`},
		{symbolic.SqrtOf(x), `\sqrt{x}`},
	}
	for _, c := range cases {
		if got := c.expr.LaTeX(); got != c.want {
			t.Errorf("want %s, got %s", c.want, got)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, ok := range []string{"x", "x1", "_tmp", "α", "u_0"} {
		if !symbolic.IsIdentifier(ok) {
			t.Errorf("%q should be an identifier", ok)
		}
	}
	for _, bad := range []string{"", "1x", "x-y", "x y", "x.y"} {
		if symbolic.IsIdentifier(bad) {
			t.Errorf("%q should not be an identifier", bad)
		}
	}
}
