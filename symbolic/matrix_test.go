package symbolic_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/njchilds90/linearcheck/symbolic"
)

func TestJacobian_Atan2Partials(t *testing.T) {
	j := symbolic.Jacobian([]symbolic.Expr{mustParse(t, "atan2(y, x)")}, []string{"x", "y"})
	want := []string{"-y/(x**2 + y**2)", "x/(x**2 + y**2)"}
	for col, src := range want {
		diff := symbolic.AddOf(j.Get(0, col), symbolic.MulOf(symbolic.N(-1), mustParse(t, src)))
		zero, err := symbolic.IsZero(diff, symbolic.DefaultLimits)
		if err != nil {
			t.Fatalf("column %d: %v", col, err)
		}
		if !zero {
			t.Errorf("column %d: want %s, got %s", col, src, j.Get(0, col))
		}
	}
}

func TestJacobian_PartialsDifferPerVariable(t *testing.T) {
	j := symbolic.Jacobian([]symbolic.Expr{mustParse(t, "max(x, y)")}, []string{"x", "y"})
	if j.Get(0, 0).Equal(j.Get(0, 1)) {
		t.Errorf("d/dx and d/dy of max(x, y) should differ, both are %s", j.Get(0, 0))
	}
	if got := j.String(); got != "[[D_0[max](x, y), D_1[max](x, y)]]" {
		t.Errorf("got %s", got)
	}
}

func TestJacobian_Linear(t *testing.T) {
	f := []symbolic.Expr{mustParse(t, "2*x + 3*y"), mustParse(t, "x - y")}
	j := symbolic.Jacobian(f, []string{"x", "y"})
	if got := j.String(); got != "[[2, 3], [1, -1]]" {
		t.Errorf("want [[2, 3], [1, -1]], got %s", got)
	}
	if j.Rows() != 2 || j.Cols() != 2 {
		t.Errorf("want 2x2, got %dx%d", j.Rows(), j.Cols())
	}
}

func TestMatMul_ReconstructsLinearMap(t *testing.T) {
	j := symbolic.MatrixFromSlice(2, 2, []symbolic.Expr{
		symbolic.N(2), symbolic.N(3),
		symbolic.N(1), symbolic.N(-1),
	})
	out := j.MatMul(symbolic.ColumnVector(x, y))
	if out.Rows() != 2 || out.Cols() != 1 {
		t.Fatalf("want 2x1, got %dx%d", out.Rows(), out.Cols())
	}
	for i, src := range []string{"2*x + 3*y", "x - y"} {
		if want := mustParse(t, src); !out.Get(i, 0).Equal(want) {
			t.Errorf("row %d: want %s, got %s", i, want, out.Get(i, 0))
		}
	}
}

func TestMatrix_LaTeX(t *testing.T) {
	v := symbolic.ColumnVector(x, y)
	if got := v.LaTeX(); got != `\begin{pmatrix}x \\ y\end{pmatrix}` {
		t.Errorf("unexpected LaTeX %s", got)
	}
	if got := symbolic.Identity(2).LaTeX(); got != `\begin{pmatrix}1 & 0 \\ 0 & 1\end{pmatrix}` {
		t.Errorf("unexpected LaTeX %s", got)
	}
}

func TestIdentity(t *testing.T) {
	if got := symbolic.Identity(2).String(); got != "[[1, 0], [0, 1]]" {
		t.Errorf("want [[1, 0], [0, 1]], got %s", got)
	}
}

func TestMatrix_IsZero(t *testing.T) {
	a := symbolic.ColumnVector(mustParse(t, "(x+1)**2"), x)
	b := symbolic.ColumnVector(mustParse(t, "x**2 + 2*x + 1"), x)
	diff := a.MatSub(b)
	if diff.IsZeroLiteral() {
		t.Errorf("difference should not be literally zero before normalization")
	}
	zero, err := diff.IsZero(symbolic.DefaultLimits)
	if err != nil {
		t.Fatal(err)
	}
	if !zero {
		t.Errorf("(x+1)^2 - (x^2 + 2x + 1) should be zero, got %s", diff)
	}
	if !symbolic.NewMatrix(2, 3).IsZeroLiteral() {
		t.Errorf("NewMatrix should be filled with zeros")
	}
}

func TestMatrix_Map(t *testing.T) {
	m := symbolic.ColumnVector(mustParse(t, "(x**2 - 1)/(x - 1)"), mustParse(t, "1/(x - x)"))
	_, err := m.Map(func(e symbolic.Expr) (symbolic.Expr, error) {
		return symbolic.Normalize(e, symbolic.DefaultLimits)
	})
	if !errors.Is(err, symbolic.ErrDivisionByZero) {
		t.Fatalf("want ErrDivisionByZero, got %v", err)
	}
	if !strings.Contains(err.Error(), "entry [1,0]") {
		t.Errorf("error should name the entry, got %q", err.Error())
	}

	doubled, err := symbolic.ColumnVector(x, y).Map(func(e symbolic.Expr) (symbolic.Expr, error) {
		return symbolic.MulOf(symbolic.N(2), e), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !doubled.Equal(symbolic.ColumnVector(x, y).Scale(symbolic.N(2))) {
		t.Errorf("Map and Scale disagree: %s", doubled)
	}
}

func TestMatrix_ApplySubsIsSimultaneous(t *testing.T) {
	m := symbolic.ColumnVector(x, mustParse(t, "x - y"))
	got := m.ApplySubs(map[string]symbolic.Expr{"x": y, "y": x})
	want := symbolic.ColumnVector(y, mustParse(t, "y - x"))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestMatrix_Entries(t *testing.T) {
	m := symbolic.MatrixFromSlice(2, 2, []symbolic.Expr{x, y, symbolic.N(1), symbolic.N(2)})
	got := m.Entries()
	if len(got) != 4 || !got[1].Equal(y) || !got[2].Equal(symbolic.N(1)) {
		t.Errorf("entries not row-major: %v", got)
	}
	rows := m.RowStrings()
	if rows[1][1] != "2" || rows[0][0] != "x" {
		t.Errorf("unexpected RowStrings %v", rows)
	}
}

func TestMatrixFromSlice_PanicsOnCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for wrong entry count")
		}
	}()
	symbolic.MatrixFromSlice(2, 2, []symbolic.Expr{x})
}
