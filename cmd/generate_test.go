package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateThenReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.csv")

	out, err := run(t, "materials:generate", "-n", "400", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 400 rows")
	assert.Contains(t, out, "Constraint violations fixed: 0")
	assert.Contains(t, out, "Total: 400")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	out, err = run(t, "materials:report", "-f", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 400`)
}

func TestGenerate_RejectsBadInput(t *testing.T) {
	_, err := run(t, "materials:generate", "-n", "0", "-o", filepath.Join(t.TempDir(), "x.csv"))
	assert.Error(t, err)

	_, err = run(t, "materials:report", "-f", filepath.Join(t.TempDir(), "missing.csv"), "--format", "text")
	assert.Error(t, err)
}
