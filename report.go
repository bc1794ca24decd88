package linearcheck

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/linearcheck/symbolic"
)

// Format selects how WriteReport renders a Result.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatLaTeX Format = "latex"
)

// ParseFormat accepts text, json, yaml and latex, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatLaTeX:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json, yaml or latex)", s)
}

// WriteReport renders r in the given format with the Verifier's language.
func (v *Verifier) WriteReport(w io.Writer, r Result, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatLaTeX:
		_, err := io.WriteString(w, v.latexReport(r))
		return err
	case FormatText, "":
		_, err := io.WriteString(w, v.textReport(r))
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

func (v *Verifier) verdict(r Result) string {
	if r.IsLinear {
		return "✓ " + v.printer.Sprintf(msgLinear)
	}
	return "✗ " + v.printer.Sprintf(msgNotLinear)
}

func (v *Verifier) condition(n int, holds bool) string {
	if holds {
		return v.printer.Sprintf(msgHolds, n)
	}
	return v.printer.Sprintf(msgFails, n)
}

func (v *Verifier) textReport(r Result) string {
	if !r.OK() {
		return r.Error + "\n"
	}
	var sb strings.Builder
	p := v.printer
	fmt.Fprintf(&sb, "%s\n\n", v.verdict(r))
	fmt.Fprintf(&sb, "F(%s) = %s\n\n", strings.Join(r.Variables, ", "), tuple(exprStrings(r.Components)))

	fmt.Fprintf(&sb, "%s\n", p.Sprintf(msgAdditive))
	fmt.Fprintf(&sb, "  F(u+v)        = %s\n", tuple(vectorStrings(r.FUV)))
	fmt.Fprintf(&sb, "  F(u) + F(v)   = %s\n", tuple(vectorStrings(r.FUPlusFV)))
	fmt.Fprintf(&sb, "  %s = %s\n", p.Sprintf(msgDifference), tuple(vectorStrings(r.R1)))
	fmt.Fprintf(&sb, "  %s\n\n", v.condition(1, r.Additive))

	fmt.Fprintf(&sb, "%s\n", p.Sprintf(msgHomogeneous))
	fmt.Fprintf(&sb, "  F(k·u)        = %s\n", tuple(vectorStrings(r.FKU)))
	fmt.Fprintf(&sb, "  k·F(u)        = %s\n", tuple(vectorStrings(r.KFU)))
	fmt.Fprintf(&sb, "  %s = %s\n", p.Sprintf(msgDifference), tuple(vectorStrings(r.R2)))
	fmt.Fprintf(&sb, "  %s\n", v.condition(2, r.Homogeneous))

	if r.StandardMatrix != nil {
		fmt.Fprintf(&sb, "\n%s: %s\n", p.Sprintf(msgStandardForm), r.StandardMatrix)
	}
	return sb.String()
}

func tuple(items []string) string { return "(" + strings.Join(items, ", ") + ")" }

func (v *Verifier) latexReport(r Result) string {
	if !r.OK() {
		return "\\text{" + latexEscape(r.Error) + "}\n"
	}
	lines := []string{
		"\\text{" + latexEscape(v.verdict(r)) + "}",
		"F(\\mathbf{x}) = " + ComponentsLaTeX(r),
		"F(\\mathbf{u} + \\mathbf{v}) = " + r.FUV.LaTeX(),
		"F(\\mathbf{u}) + F(\\mathbf{v}) = " + r.FUPlusFV.LaTeX(),
		"F(\\mathbf{u} + \\mathbf{v}) - (F(\\mathbf{u}) + F(\\mathbf{v})) = " + r.R1.LaTeX(),
		"F(k \\mathbf{u}) = " + r.FKU.LaTeX(),
		"k \\cdot F(\\mathbf{u}) = " + r.KFU.LaTeX(),
		"F(k \\mathbf{u}) - k \\cdot F(\\mathbf{u}) = " + r.R2.LaTeX(),
	}
	if r.StandardMatrix != nil {
		lines = append(lines, "A = "+r.StandardMatrix.LaTeX()+", \\quad F(\\mathbf{x}) = A\\mathbf{x}")
	}
	return strings.Join(lines, "\n") + "\n"
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`_`, `\_`,
	`%`, `\%`,
	`&`, `\&`,
	`#`, `\#`,
	`$`, `\$`,
	`^`, `\^{}`,
)

func latexEscape(s string) string { return latexEscaper.Replace(s) }

// ComponentsLaTeX renders the parsed components as a column vector.
func ComponentsLaTeX(r Result) string {
	if len(r.Components) == 0 {
		return ""
	}
	return symbolic.ColumnVector(r.Components...).LaTeX()
}
