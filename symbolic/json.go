package symbolic

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
)

// ToJSON encodes an expression tree, for example
//
//	{"type":"add","terms":[{"type":"sym","name":"x"},{"type":"num","value":"1/2"}]}
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// ToJSONValue returns the tree as a generic value ready to embed in a
// larger JSON document.
func ToJSONValue(e Expr) map[string]interface{} { return e.toJSON() }

// FromJSONString decodes the output of ToJSON.
func FromJSONString(s string) (Expr, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return FromJSON(data)
}

// FromJSON rebuilds an expression from its decoded JSON object. The result
// is structurally simplified, so it may differ in shape from the input.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, errors.New("expression must be an object")
	}
	typ, ok := data["type"].(string)
	switch {
	case data["type"] == nil:
		return nil, errors.New("missing 'type' field")
	case !ok || typ == "":
		return nil, errors.New("field 'type' must be a non-empty string")
	}
	return node{typ: typ, fields: data}.decode()
}

// node is one JSON object of an expression tree.
type node struct {
	typ    string
	fields map[string]interface{}
}

func (n node) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: "+format, append([]interface{}{n.typ}, args...)...)
}

func (n node) lookup(field string) (interface{}, error) {
	v, ok := n.fields[field]
	if !ok {
		return nil, n.errorf("missing %q", field)
	}
	return v, nil
}

func (n node) str(field string) (string, error) {
	v, err := n.lookup(field)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", n.errorf("%q must be a non-empty string", field)
	}
	return s, nil
}

func (n node) expr(field string) (Expr, error) {
	v, err := n.lookup(field)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, n.errorf("%q must be an object", field)
	}
	e, err := FromJSON(obj)
	if err != nil {
		return nil, n.errorf("%s: %w", field, err)
	}
	return e, nil
}

func (n node) exprs(field string) ([]Expr, error) {
	v, err := n.lookup(field)
	if err != nil {
		return nil, err
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, n.errorf("%q must be an array", field)
	}
	out := make([]Expr, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, n.errorf("%q[%d] must be an object", field, i)
		}
		if out[i], err = FromJSON(obj); err != nil {
			return nil, n.errorf("%s[%d]: %w", field, i, err)
		}
	}
	return out, nil
}

func (n node) decode() (Expr, error) {
	switch n.typ {
	case "num":
		val, err := n.str("value")
		if err != nil {
			return nil, err
		}
		r, ok := new(big.Rat).SetString(val)
		if !ok {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		return &Num{val: r}, nil

	case "sym":
		name, err := n.str("name")
		if err != nil {
			return nil, err
		}
		return S(name), nil

	case "const":
		name, err := n.str("name")
		if err != nil {
			return nil, err
		}
		if c, ok := LookupConst(name); ok {
			return c, nil
		}
		return nil, fmt.Errorf("unknown constant: %s", name)

	case "add":
		terms, err := n.exprs("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil

	case "mul":
		factors, err := n.exprs("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil

	case "pow":
		base, err := n.expr("base")
		if err != nil {
			return nil, err
		}
		exp, err := n.expr("exp")
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil

	case "func":
		return n.decodeFunc()
	}
	return nil, fmt.Errorf("unknown expression type: %s", n.typ)
}

// decodeFunc accepts "args", or "arg" for single-argument functions. Names
// and arities follow the parser's built-ins.
func (n node) decodeFunc() (Expr, error) {
	name, err := n.str("name")
	if err != nil {
		return nil, err
	}
	var args []Expr
	if _, single := n.fields["arg"]; single {
		arg, err := n.expr("arg")
		if err != nil {
			return nil, err
		}
		args = []Expr{arg}
	} else if args, err = n.exprs("args"); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, n.errorf("%s needs at least one argument", name)
	}
	fn, ok := builtins[name]
	if !ok {
		return nil, n.errorf("unknown function %s", name)
	}
	if len(args) < fn.minArgs || (fn.maxArgs >= 0 && len(args) > fn.maxArgs) {
		return nil, n.errorf("%s takes %s, got %d", name, fn.arity(), len(args))
	}
	return fn.build(args), nil
}
