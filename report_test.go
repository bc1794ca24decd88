package linearcheck

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

func report(t *testing.T, v *Verifier, r Result, f Format) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, v.WriteReport(&buf, r, f))
	return buf.String()
}

func TestWriteReport_Text(t *testing.T) {
	v := quietVerifier()
	out := report(t, v, v.Verify("x,y", "(2*x, 3*y)"), FormatText)
	assert.True(t, strings.HasPrefix(out, "✓ LINIER\n"), out)
	assert.Contains(t, out, "F(x, y) = (2*x, 3*y)")
	assert.Contains(t, out, "F(u+v)        = (2*u0 + 2*v0, 3*u1 + 3*v1)")
	assert.Contains(t, out, "Hasil Pengurangan = (0, 0)")
	assert.Contains(t, out, "✓ Kondisi 1 terpenuhi")
	assert.Contains(t, out, "✓ Kondisi 2 terpenuhi")
	assert.Contains(t, out, "Matriks standar: [[2, 0], [0, 3]]")

	out = report(t, v, v.Verify("x", "5"), FormatText)
	assert.True(t, strings.HasPrefix(out, "✗ TIDAK LINIER\n"), out)
	assert.Contains(t, out, "✗ Kondisi 1 tidak terpenuhi")
	assert.NotContains(t, out, "Matriks standar")
}

func TestWriteReport_TextEnglish(t *testing.T) {
	v := New(WithLanguage(language.English))
	out := report(t, v, v.Verify("x", "x**2"), FormatText)
	assert.True(t, strings.HasPrefix(out, "✗ NOT LINEAR\n"), out)
	assert.Contains(t, out, "Condition 1: F(u+v) = F(u) + F(v) (additivity)")
	assert.Contains(t, out, "✗ Condition 2 does not hold")
}

func TestWriteReport_ErrorOnly(t *testing.T) {
	v := quietVerifier()
	res := v.Verify("x,y", "x+w")
	assert.Equal(t, res.Error+"\n", report(t, v, res, FormatText))
	assert.Equal(t, `\text{Terdapat variabel tidak dikenal pada transformasi: w}`+"\n", report(t, v, res, FormatLaTeX))
}

func TestWriteReport_LaTeX(t *testing.T) {
	v := quietVerifier()
	out := report(t, v, v.Verify("x,y", "(2*x, 3*y)"), FormatLaTeX)
	assert.Contains(t, out, `F(\mathbf{x}) = \begin{pmatrix}2 x \\ 3 y\end{pmatrix}`)
	assert.Contains(t, out, `F(\mathbf{u} + \mathbf{v}) - (F(\mathbf{u}) + F(\mathbf{v})) = \begin{pmatrix}0 \\ 0\end{pmatrix}`)
	assert.Contains(t, out, `A = \begin{pmatrix}2 & 0 \\ 0 & 3\end{pmatrix}`)
}

func TestWriteReport_YAML(t *testing.T) {
	v := quietVerifier()
	out := report(t, v, v.Verify("x,y,z", "(x**2, y, z+1)"), FormatYAML)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, false, doc["is_linear"])
	assert.Equal(t, []interface{}{"x", "y", "z"}, doc["variables"])
	r1, ok := doc["r1"].([]interface{})
	require.True(t, ok, out)
	assert.Equal(t, "-1", r1[2])
	syms, ok := doc["symbols"].(map[string]interface{})
	require.True(t, ok, out)
	assert.Equal(t, "k", syms["k"])
}

func TestWriteReport_JSON(t *testing.T) {
	v := quietVerifier()
	out := report(t, v, v.Verify("x", "2*x"), FormatJSON)
	assert.Contains(t, out, `"is_linear": true`)
	assert.Contains(t, out, `"standard_matrix": [`)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, " yaml ": FormatYAML, "latex": FormatLaTeX} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown output format")
}
