package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/cart-parser/internal/cart"
)

const validCart = `Product name, Price, Quantity
Mollis consequat, 9.00, 2
Tvoluptatem, 10.32, 1
`

const invalidCart = `Product name, Amount, Quantity
Mollis consequat, -4, 2
`

// run executes the CLI with a config file in dir and returns stdout, stderr
// and the error.
func run(t *testing.T, dir, configBody string, args ...string) (string, string, error) {
	t.Helper()

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configBody), 0644))

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeCart(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestParseCmd_PrintsJSON(t *testing.T) {
	dir := t.TempDir()
	src := writeCart(t, dir, "cart.csv", validCart)

	stdout, _, err := run(t, dir, "", "parse", src)

	require.NoError(t, err)
	var result cart.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Mollis consequat", result.Items[0].Name)
	assert.NotEmpty(t, result.Items[0].ID)
	assert.InDelta(t, 28.32, result.Total, 1e-9)
}

func TestParseCmd_UsesDefaultSource(t *testing.T) {
	dir := t.TempDir()
	src := writeCart(t, dir, "default.csv", validCart)

	stdout, _, err := run(t, dir, "default_source: "+src+"\n", "parse", "--format", "xml")

	require.NoError(t, err)
	assert.Contains(t, stdout, `<name>Tvoluptatem</name>`)
}

func TestParseCmd_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	src := writeCart(t, dir, "bad.csv", invalidCart)

	stdout, stderr, err := run(t, dir, "output_dir: "+filepath.Join(dir, "out")+"\n", "parse", src, "--save")

	require.ErrorIs(t, err, cart.ErrValidationFailed)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `Expected header to be named "Price" but received Amount.`)
	assert.Contains(t, stderr, `Expected cell to be a positive number but received "-4".`)

	logs, globErr := filepath.Glob(filepath.Join(dir, "out", "error_log_*.txt"))
	require.NoError(t, globErr)
	assert.Len(t, logs, 1)
	assert.FileExists(t, src)
}

func TestParseCmd_MissingFile(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, dir, "", "parse", filepath.Join(dir, "missing.csv"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseCmd_OutAndArchive(t *testing.T) {
	dir := t.TempDir()
	src := writeCart(t, dir, "cart.csv", validCart)
	out := filepath.Join(dir, "result", "cart.yaml")
	archive := filepath.Join(dir, "archive")

	_, _, err := run(t, dir, "archive_dir: "+archive+"\n", "parse", src, "--out", out, "--archive")

	require.NoError(t, err)
	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "name: Mollis consequat")
	assert.FileExists(t, filepath.Join(archive, "cart.csv"))
	assert.NoFileExists(t, src)
}

func TestParseCmd_SaveXLSX(t *testing.T) {
	dir := t.TempDir()
	src := writeCart(t, dir, "cart.csv", validCart)
	outDir := filepath.Join(dir, "out")

	_, _, err := run(t, dir, "output_dir: "+outDir+"\noutput_name_format: \"{original}_export\"\n", "parse", src, "--format", "xlsx", "--save")

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "cart_export.xlsx"))
}

func TestParseCmd_XLSXNeedsFile(t *testing.T) {
	dir := t.TempDir()
	src := writeCart(t, dir, "cart.csv", validCart)

	_, _, err := run(t, dir, "", "parse", src, "--format", "xlsx")

	assert.Error(t, err)
}

func TestValidateCmd(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := run(t, dir, "", "validate", writeCart(t, dir, "cart.csv", validCart))
	require.NoError(t, err)
	assert.Equal(t, "No validation errors.\n", stdout)

	stdout, _, err = run(t, dir, "", "validate", writeCart(t, dir, "bad.csv", invalidCart))
	assert.ErrorIs(t, err, cart.ErrValidationFailed)
	assert.Contains(t, stdout, "Validation completed with 2 error(s)")
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := run(t, t.TempDir(), "", "version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Cart Parser")
	assert.Contains(t, stdout, "Version:    "+Version)
}

func TestRootCmd_MissingExplicitConfig(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "validate"})

	assert.Error(t, root.Execute())
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "output_format: pdf\n", "validate")

	assert.Error(t, err)
}
