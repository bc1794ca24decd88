package linearcheck

import (
	"encoding/json"

	"github.com/njchilds90/linearcheck/symbolic"
)

// Result is the outcome of one verification. When Error is set every
// vector is nil and no proof should be shown.
type Result struct {
	IsLinear    bool
	Additive    bool
	Homogeneous bool

	Variables  []string
	Symbols    Symbols
	Components []symbolic.Expr

	// Additivity: R1 = FUV - FUPlusFV.
	FUV, FU, FV, FUPlusFV, R1 *symbolic.Matrix
	// Homogeneity: R2 = FKU - KFU.
	FKU, KFU, R2 *symbolic.Matrix

	// StandardMatrix is the matrix A with F(x) = A·x, set only when F is
	// linear.
	StandardMatrix *symbolic.Matrix

	// Error is the localized message for the user.
	Error string
	// Cause is the underlying *VerifyError.
	Cause error
}

// OK reports whether the verification produced a verdict.
func (r Result) OK() bool { return r.Error == "" }

// document is the wire form of a Result. Expressions are rendered as
// re-parseable strings.
type document struct {
	IsLinear       bool       `json:"is_linear" yaml:"is_linear"`
	Additive       bool       `json:"additive" yaml:"additive"`
	Homogeneous    bool       `json:"homogeneous" yaml:"homogeneous"`
	Variables      []string   `json:"variables,omitempty" yaml:"variables,omitempty"`
	Symbols        *Symbols   `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Components     []string   `json:"components,omitempty" yaml:"components,omitempty"`
	FUV            []string   `json:"F_uv,omitempty" yaml:"F_uv,omitempty"`
	FU             []string   `json:"F_u,omitempty" yaml:"F_u,omitempty"`
	FV             []string   `json:"F_v,omitempty" yaml:"F_v,omitempty"`
	FUPlusFV       []string   `json:"F_u_plus_F_v,omitempty" yaml:"F_u_plus_F_v,omitempty"`
	R1             []string   `json:"r1,omitempty" yaml:"r1,omitempty"`
	FKU            []string   `json:"F_ku,omitempty" yaml:"F_ku,omitempty"`
	KFU            []string   `json:"k_F_u,omitempty" yaml:"k_F_u,omitempty"`
	R2             []string   `json:"r2,omitempty" yaml:"r2,omitempty"`
	StandardMatrix [][]string `json:"standard_matrix,omitempty" yaml:"standard_matrix,omitempty"`
	Error          string     `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r Result) document() document {
	doc := document{
		IsLinear:    r.IsLinear,
		Additive:    r.Additive,
		Homogeneous: r.Homogeneous,
		Variables:   r.Variables,
		Error:       r.Error,
	}
	if !r.OK() {
		return doc
	}
	syms := r.Symbols
	doc.Symbols = &syms
	doc.Components = exprStrings(r.Components)
	doc.FUV = vectorStrings(r.FUV)
	doc.FU = vectorStrings(r.FU)
	doc.FV = vectorStrings(r.FV)
	doc.FUPlusFV = vectorStrings(r.FUPlusFV)
	doc.R1 = vectorStrings(r.R1)
	doc.FKU = vectorStrings(r.FKU)
	doc.KFU = vectorStrings(r.KFU)
	doc.R2 = vectorStrings(r.R2)
	if r.StandardMatrix != nil {
		doc.StandardMatrix = r.StandardMatrix.RowStrings()
	}
	return doc
}

func (r Result) MarshalJSON() ([]byte, error) { return json.Marshal(r.document()) }

// MarshalYAML implements yaml.Marshaler.
func (r Result) MarshalYAML() (interface{}, error) { return r.document(), nil }

func exprStrings(exprs []symbolic.Expr) []string {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = e.String()
	}
	return out
}

func vectorStrings(m *symbolic.Matrix) []string {
	if m == nil {
		return nil
	}
	return exprStrings(m.Entries())
}
