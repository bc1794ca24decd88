package linearcheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/njchilds90/linearcheck/symbolic"
)

// ToolRequest is one call of the MCP-style tool interface.
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// ToolResponse carries a tool result. Error is set instead of Result on
// failure; verify_linearity sets both.
type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs a tool with a default Verifier.
func HandleToolCall(req ToolRequest) ToolResponse { return New().HandleToolCall(req) }

// HandleToolCall dispatches one tool call. Expression parameters may be
// source strings such as "2*x + 1" or JSON expression trees.
func (v *Verifier) HandleToolCall(req ToolRequest) ToolResponse {
	tool, ok := tools[req.Tool]
	if !ok {
		return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
	}
	resp, err := tool(v, toolParams(req.Params))
	if err != nil {
		return ToolResponse{Error: err.Error()}
	}
	return resp
}

type toolFunc func(v *Verifier, p toolParams) (ToolResponse, error)

var tools = map[string]toolFunc{
	"verify_linearity": verifyTool,
	"parse":            exprTool(func(_ *Verifier, e symbolic.Expr) (ToolResponse, error) { return exprResponse(e), nil }),
	"simplify": exprTool(func(v *Verifier, e symbolic.Expr) (ToolResponse, error) {
		n, err := symbolic.Normalize(e, v.limits)
		if err != nil {
			return ToolResponse{}, err
		}
		return exprResponse(n), nil
	}),
	"expand": exprTool(func(_ *Verifier, e symbolic.Expr) (ToolResponse, error) {
		return exprResponse(symbolic.Expand(e)), nil
	}),
	"to_latex": exprTool(func(_ *Verifier, e symbolic.Expr) (ToolResponse, error) {
		return ToolResponse{LaTeX: e.LaTeX(), String: e.String()}, nil
	}),
	"free_symbols": exprTool(func(_ *Verifier, e symbolic.Expr) (ToolResponse, error) {
		names := symbolic.SortedFreeSymbols(e)
		return ToolResponse{Result: names, String: strings.Join(names, ", ")}, nil
	}),
	"substitute": substituteTool,
	"jacobian":   jacobianTool,
	"examples":   examplesTool,
	"mcp_spec": func(*Verifier, toolParams) (ToolResponse, error) {
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}, nil
	},
}

func verifyTool(v *Verifier, p toolParams) (ToolResponse, error) {
	vars, err := p.str("variables")
	if err != nil {
		return ToolResponse{}, err
	}
	trans, err := p.str("transformation")
	if err != nil {
		return ToolResponse{}, err
	}
	res := v.Verify(vars, trans)
	if !res.OK() {
		return ToolResponse{Result: res, Error: res.Error}, nil
	}
	return ToolResponse{Result: res, LaTeX: v.latexReport(res), String: string(Label(res))}, nil
}

// exprTool adapts a function of the "expr" parameter.
func exprTool(f func(v *Verifier, e symbolic.Expr) (ToolResponse, error)) toolFunc {
	return func(v *Verifier, p toolParams) (ToolResponse, error) {
		e, err := v.exprParam(p, "expr")
		if err != nil {
			return ToolResponse{}, err
		}
		return f(v, e)
	}
}

func substituteTool(v *Verifier, p toolParams) (ToolResponse, error) {
	e, err := v.exprParam(p, "expr")
	if err != nil {
		return ToolResponse{}, err
	}
	name, err := p.str("var")
	if err != nil {
		return ToolResponse{}, err
	}
	val, err := v.exprParam(p, "value")
	if err != nil {
		return ToolResponse{}, err
	}
	return exprResponse(symbolic.Sub(e, name, val)), nil
}

func jacobianTool(v *Verifier, p toolParams) (ToolResponse, error) {
	raw, err := p.list("exprs")
	if err != nil {
		return ToolResponse{}, err
	}
	exprs := make([]symbolic.Expr, len(raw))
	for i, r := range raw {
		if exprs[i], err = v.toExpr(fmt.Sprintf("exprs[%d]", i), r); err != nil {
			return ToolResponse{}, err
		}
	}
	vars, err := p.strs("vars")
	if err != nil {
		return ToolResponse{}, err
	}
	if len(exprs) == 0 || len(vars) == 0 {
		return ToolResponse{}, errors.New("exprs and vars must be non-empty")
	}
	mat := symbolic.Jacobian(exprs, vars)
	return ToolResponse{
		Result: map[string]interface{}{"rows": mat.Rows(), "cols": mat.Cols(), "entries": mat.RowStrings()},
		LaTeX:  mat.LaTeX(),
		String: mat.String(),
	}, nil
}

func examplesTool(*Verifier, toolParams) (ToolResponse, error) {
	examples := Examples()
	lines := make([]string, len(examples))
	for i, ex := range examples {
		lines[i] = fmt.Sprintf("%s: %s | %s", ex.Expected, ex.Variables, ex.Transformation)
	}
	return ToolResponse{Result: examples, String: strings.Join(lines, "\n")}, nil
}

func exprResponse(e symbolic.Expr) ToolResponse {
	return ToolResponse{Result: symbolic.ToJSONValue(e), LaTeX: e.LaTeX(), String: e.String()}
}

// toolParams are the decoded JSON parameters of a tool call.
type toolParams map[string]interface{}

func (p toolParams) value(key string) (interface{}, error) {
	val, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("missing param: %s", key)
	}
	return val, nil
}

func (p toolParams) str(key string) (string, error) {
	val, err := p.value(key)
	if err != nil {
		return "", err
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("param %s must be a string", key)
	}
	return s, nil
}

func (p toolParams) list(key string) ([]interface{}, error) {
	val, err := p.value(key)
	if err != nil {
		return nil, err
	}
	raw, ok := val.([]interface{})
	if !ok {
		return nil, fmt.Errorf("param %s must be array", key)
	}
	return raw, nil
}

func (p toolParams) strs(key string) ([]string, error) {
	raw, err := p.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		s, ok := r.(string)
		if !ok {
			return nil, fmt.Errorf("param %s[%d] must be string", key, i)
		}
		out[i] = s
	}
	return out, nil
}

func (v *Verifier) exprParam(p toolParams, key string) (symbolic.Expr, error) {
	val, err := p.value(key)
	if err != nil {
		return nil, err
	}
	return v.toExpr(key, val)
}

// toExpr parses source strings with the Verifier's length limit and
// decodes JSON trees.
func (v *Verifier) toExpr(key string, val interface{}) (symbolic.Expr, error) {
	switch t := val.(type) {
	case string:
		return symbolic.Parse(t, symbolic.WithMaxLength(v.maxInputLength))
	case map[string]interface{}:
		return symbolic.FromJSON(t)
	}
	return nil, fmt.Errorf("param %s must be a string or expression object", key)
}

// ToolNames lists the tools HandleToolCall understands.
func ToolNames() []string {
	names := make([]string, len(toolSpecs))
	for i, t := range toolSpecs {
		names[i] = t["name"].(string)
	}
	return names
}

var toolSpecs = []map[string]interface{}{
	ts("verify_linearity", "Check whether a transformation is linear. variables: \"x,y\"; transformation: \"(2*x, 3*y)\"", []string{"variables", "transformation"}, map[string]string{"variables": "string", "transformation": "string"}),
	ts("parse", "Parse an expression string into an expression tree", []string{"expr"}, map[string]string{"expr": "string"}),
	ts("simplify", "Reduce an expression to rational normal form", []string{"expr"}, map[string]string{"expr": "string"}),
	ts("expand", "Algebraically expand expression", []string{"expr"}, map[string]string{"expr": "string"}),
	ts("substitute", "Substitute var with value", []string{"expr", "var", "value"}, map[string]string{"expr": "string", "var": "string", "value": "string"}),
	ts("to_latex", "Convert to LaTeX", []string{"expr"}, map[string]string{"expr": "string"}),
	ts("free_symbols", "Return free symbol names", []string{"expr"}, map[string]string{"expr": "string"}),
	ts("jacobian", "Jacobian matrix. Requires exprs (array) and vars (array)", []string{"exprs", "vars"}, map[string]string{"exprs": "array", "vars": "array"}),
	ts("examples", "Return the example gallery", []string{}, map[string]string{}),
	ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
}

func MCPToolSpec() string {
	spec := map[string]interface{}{"tools": toolSpecs}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
