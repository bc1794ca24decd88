package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/linearcheck/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckText(t *testing.T) {
	out, err := execute(t, "check", "x,y", "(2*x, 3*y)")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ LINIER")
	assert.Contains(t, out, "F(x, y) = (2*x, 3*y)")
	assert.Contains(t, out, "Matriks standar: [[2, 0], [0, 3]]")
}

func TestCheckFlagsAndEnglish(t *testing.T) {
	out, err := execute(t, "check", "--variables", "x,y,z", "--transformation", "(x**2, y, z+1)", "--locale", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "✗ NOT LINEAR")
	assert.Contains(t, out, "✗ Condition 1 does not hold")
	assert.NotContains(t, out, "Standard matrix")
}

func TestCheckJSONError(t *testing.T) {
	out, err := execute(t, "check", "x", "", "--format", "json", "--locale", "en")
	require.ErrorIs(t, err, errReported)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Empty transformation.", doc["error"])
	assert.Equal(t, false, doc["is_linear"])
}

func TestCheckRejectsDuplicateInput(t *testing.T) {
	_, err := execute(t, "check", "x", "x", "--variables", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both as argument and flag")
}

func TestCheckUnknownFormat(t *testing.T) {
	_, err := execute(t, "check", "x", "x", "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestInvalidLogFormat(t *testing.T) {
	_, err := execute(t, "check", "x", "x", "--log-format", "xml")
	require.Error(t, err)
	assert.True(t, config.IsConfigError(err))
}

func TestFlagOverridesInvalidEnvironment(t *testing.T) {
	t.Setenv("LINEARCHECK_LOG_LEVEL", "loud")
	t.Setenv("LINEARCHECK_VERIFIER_LANGUAGE", "not a tag!")

	_, err := execute(t, "check", "x", "x")
	require.Error(t, err)
	assert.True(t, config.IsConfigError(err))

	out, err := execute(t, "check", "x", "2*x", "--log-level", "debug", "--locale", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ LINEAR")
}

func TestExamplesBuiltin(t *testing.T) {
	out, err := execute(t, "examples", "--parallel", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "scaling")
	assert.Contains(t, out, "TIDAK LINIER")
	assert.NotContains(t, out, "✗")
}

func TestExamplesFileMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.toml")
	gallery := `
[[examples]]
name = "claimed linear"
variables = "x"
transformation = "x + 1"
expected = "LINIER"
`
	require.NoError(t, os.WriteFile(path, []byte(gallery), 0o600))

	out, err := execute(t, "examples", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 examples did not match")
	assert.Contains(t, out, "claimed linear")
}

func TestExamplesJSON(t *testing.T) {
	out, err := execute(t, "examples", "--json")
	require.NoError(t, err)

	var outcomes []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &outcomes))
	assert.NotEmpty(t, outcomes)
	for _, o := range outcomes {
		assert.Equal(t, true, o["passed"])
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "linearcheck version ")
}
