package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// ============================================================
// Func — named function applications
// ============================================================

type Func struct {
	name string
	args []Expr
}

func funcOf(name string, args ...Expr) *Func { return &Func{name: name, args: args} }

func SinOf(arg Expr) Expr   { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr   { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr   { return funcOf("tan", arg).Simplify() }
func ExpOf(arg Expr) Expr   { return funcOf("exp", arg).Simplify() }
func LnOf(arg Expr) Expr    { return funcOf("ln", arg).Simplify() }
func AbsOf(arg Expr) Expr   { return funcOf("abs", arg).Simplify() }
func AsinOf(arg Expr) Expr  { return funcOf("asin", arg).Simplify() }
func AcosOf(arg Expr) Expr  { return funcOf("acos", arg).Simplify() }
func AtanOf(arg Expr) Expr  { return funcOf("atan", arg).Simplify() }
func SinhOf(arg Expr) Expr  { return funcOf("sinh", arg).Simplify() }
func CoshOf(arg Expr) Expr  { return funcOf("cosh", arg).Simplify() }
func TanhOf(arg Expr) Expr  { return funcOf("tanh", arg).Simplify() }
func FloorOf(arg Expr) Expr { return funcOf("floor", arg).Simplify() }
func CeilOf(arg Expr) Expr  { return funcOf("ceil", arg).Simplify() }
func SignOf(arg Expr) Expr  { return funcOf("sign", arg).Simplify() }

func Atan2Of(y, x Expr) Expr                { return funcOf("atan2", y, x).Simplify() }
func MinOf(args ...Expr) Expr               { return funcOf("min", args...).Simplify() }
func MaxOf(args ...Expr) Expr               { return funcOf("max", args...).Simplify() }
func LogOf(arg, base Expr) Expr             { return MulOf(LnOf(arg), PowOf(LnOf(base), N(-1))) }
func FuncOf(name string, args ...Expr) Expr { return funcOf(name, args...).Simplify() }

// Simplify folds only exact special values. Functions of other numeric
// arguments stay symbolic; use Eval for a float approximation.
func (f *Func) Simplify() Expr {
	args := make([]Expr, len(f.args))
	for i, a := range f.args {
		args[i] = a.Simplify()
	}
	if len(args) == 1 {
		if r, ok := simplifyUnary(f.name, args[0]); ok {
			return r
		}
	} else if f.name == "min" || f.name == "max" {
		if r, ok := foldExtremum(f.name, args); ok {
			return r
		}
	}
	return &Func{name: f.name, args: args}
}

func simplifyUnary(name string, arg Expr) (Expr, bool) {
	switch name {
	case "sin", "tan", "asin", "atan", "sinh", "tanh":
		if isNumEqual(arg, 0) {
			return N(0), true
		}
	case "cos", "cosh":
		if isNumEqual(arg, 0) {
			return N(1), true
		}
	case "acos":
		if isNumEqual(arg, 1) {
			return N(0), true
		}
	case "ln":
		if isNumEqual(arg, 1) {
			return N(0), true
		}
		if c, ok := arg.(*Const); ok && c.Equal(E) {
			return N(1), true
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.args[0], true
		}
	case "exp":
		if isNumEqual(arg, 0) {
			return N(1), true
		}
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.args[0], true
		}
	case "abs":
		if n, ok := arg.(*Num); ok {
			return numAbs(n), true
		}
		if inner, ok := arg.(*Func); ok && inner.name == "abs" {
			return inner, true
		}
		if coeff, body := extractCoefficient(arg); coeff.IsNegative() {
			return MulOf(numAbs(coeff), AbsOf(body)), true
		}
	case "sign":
		if n, ok := arg.(*Num); ok {
			return N(int64(n.val.Sign())), true
		}
	case "floor", "ceil":
		if n, ok := arg.(*Num); ok {
			return roundNum(n, name == "ceil"), true
		}
	case "min", "max":
		return arg, true
	}
	return nil, false
}

func roundNum(n *Num, up bool) *Num {
	if n.IsInteger() {
		return n
	}
	q := new(big.Int).Quo(n.val.Num(), n.val.Denom())
	// Quo truncates toward zero.
	if n.IsNegative() && !up {
		q.Sub(q, big.NewInt(1))
	}
	if n.IsPositive() && up {
		q.Add(q, big.NewInt(1))
	}
	return &Num{val: new(big.Rat).SetInt(q)}
}

func foldExtremum(name string, args []Expr) (Expr, bool) {
	var best *Num
	for _, a := range args {
		n, ok := a.(*Num)
		if !ok {
			return nil, false
		}
		if best == nil || (name == "min" && n.val.Cmp(best.val) < 0) || (name == "max" && n.val.Cmp(best.val) > 0) {
			best = n
		}
	}
	return best, best != nil
}

func (f *Func) String() string {
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.String()
	}
	return f.name + "(" + strings.Join(parts, ", ") + ")"
}

func (f *Func) LaTeX() string {
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.LaTeX()
	}
	inner := strings.Join(parts, ", ")
	switch f.name {
	case "sin", "cos", "tan", "exp", "ln", "sinh", "cosh", "tanh", "min", "max":
		return "\\" + f.name + "\\left(" + inner + "\\right)"
	case "asin":
		return "\\arcsin\\left(" + inner + "\\right)"
	case "acos":
		return "\\arccos\\left(" + inner + "\\right)"
	case "atan":
		return "\\arctan\\left(" + inner + "\\right)"
	case "abs":
		return "\\left|" + inner + "\\right|"
	case "floor":
		return "\\lfloor " + inner + " \\rfloor"
	case "ceil":
		return "\\lceil " + inner + " \\rceil"
	}
	return "\\operatorname{" + f.name + "}\\left(" + inner + "\\right)"
}

func (f *Func) Subs(bindings map[string]Expr) Expr {
	args := make([]Expr, len(f.args))
	for i, a := range f.args {
		args[i] = a.Subs(bindings)
	}
	return funcOf(f.name, args...).Simplify()
}

func (f *Func) Diff(varName string) Expr {
	if len(f.args) != 1 {
		return f.diffArgs(varName)
	}
	arg := f.args[0]
	du := arg.Diff(varName)
	if isNumEqual(du, 0) {
		return N(0)
	}
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(arg))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(arg), N(2)))
	case "exp":
		outer = ExpOf(arg)
	case "ln":
		outer = PowOf(arg, N(-1))
	case "asin":
		outer = PowOf(AddOf(N(1), MulOf(N(-1), PowOf(arg, N(2)))), F(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(AddOf(N(1), MulOf(N(-1), PowOf(arg, N(2)))), F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(arg, N(2))), N(-1))
	case "sinh":
		outer = CoshOf(arg)
	case "cosh":
		outer = SinhOf(arg)
	case "tanh":
		outer = AddOf(N(1), MulOf(N(-1), PowOf(TanhOf(arg), N(2))))
	case "abs":
		outer = SignOf(arg)
	default:
		return MulOf(funcOf("D["+f.name+"]", arg), du)
	}
	return MulOf(outer, du)
}

// diffArgs applies the chain rule over every argument.
func (f *Func) diffArgs(varName string) Expr {
	var terms []Expr
	for i, a := range f.args {
		da := a.Diff(varName)
		if isNumEqual(da, 0) {
			continue
		}
		terms = append(terms, MulOf(f.partial(i), da))
	}
	if len(terms) == 0 {
		return N(0)
	}
	return AddOf(terms...)
}

// partial is the derivative with respect to argument i. Only atan2 has a
// closed form; min and max get the placeholder D_i[name](args).
func (f *Func) partial(i int) Expr {
	if f.name == "atan2" && len(f.args) == 2 {
		y, x := f.args[0], f.args[1]
		inv := PowOf(AddOf(PowOf(x, N(2)), PowOf(y, N(2))), N(-1))
		if i == 0 {
			return MulOf(x, inv)
		}
		return MulOf(N(-1), y, inv)
	}
	return funcOf(fmt.Sprintf("D_%d[%s]", i, f.name), f.args...)
}

func (f *Func) Eval() (*Num, bool) {
	vals := make([]float64, len(f.args))
	for i, a := range f.args {
		n, ok := a.Eval()
		if !ok {
			return nil, false
		}
		vals[i] = n.Float64()
	}
	var r float64
	switch {
	case len(vals) == 2 && f.name == "atan2":
		r = math.Atan2(vals[0], vals[1])
	case f.name == "min" || f.name == "max":
		r = vals[0]
		for _, v := range vals[1:] {
			if f.name == "min" {
				r = math.Min(r, v)
			} else {
				r = math.Max(r, v)
			}
		}
	case len(vals) == 1:
		v, ok := evalUnary(f.name, vals[0])
		if !ok {
			return nil, false
		}
		r = v
	default:
		return nil, false
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, false
	}
	return NFloat(r), true
}

func evalUnary(name string, v float64) (float64, bool) {
	switch name {
	case "sin":
		return math.Sin(v), true
	case "cos":
		return math.Cos(v), true
	case "tan":
		return math.Tan(v), true
	case "exp":
		return math.Exp(v), true
	case "ln":
		return math.Log(v), true
	case "abs":
		return math.Abs(v), true
	case "asin":
		return math.Asin(v), true
	case "acos":
		return math.Acos(v), true
	case "atan":
		return math.Atan(v), true
	case "sinh":
		return math.Sinh(v), true
	case "cosh":
		return math.Cosh(v), true
	case "tanh":
		return math.Tanh(v), true
	case "floor":
		return math.Floor(v), true
	case "ceil":
		return math.Ceil(v), true
	case "sign":
		switch {
		case v > 0:
			return 1, true
		case v < 0:
			return -1, true
		}
		return 0, true
	}
	return 0, false
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	if !ok || f.name != o.name || len(f.args) != len(o.args) {
		return false
	}
	for i := range f.args {
		if !f.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (f *Func) exprType() string { return "func" }
func (f *Func) toJSON() map[string]interface{} {
	args := make([]map[string]interface{}, len(f.args))
	for i, a := range f.args {
		args[i] = a.toJSON()
	}
	return map[string]interface{}{"type": "func", "name": f.name, "args": args}
}
func (f *Func) FuncName() string { return f.name }
func (f *Func) Args() []Expr     { return f.args }
