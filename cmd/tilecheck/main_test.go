package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("TILECHECK_LOGGING_LEVEL", "error")
	var stdout, stderr bytes.Buffer
	err := newRootCommand(&stdout, &stderr).Run(context.Background(), append([]string{"tilecheck"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestValidate_BundledMapsPass(t *testing.T) {
	out, _, err := runCLI(t, "validate", "--format", "json", filepath.Join("..", "..", "maps"))
	require.NoError(t, err)

	var doc struct {
		Summary struct {
			Total   int `json:"total"`
			Invalid int `json:"invalid"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Positive(t, doc.Summary.Total)
	assert.Zero(t, doc.Summary.Invalid)
}

func TestValidate_InvalidMapFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noexit.ber")
	require.NoError(t, os.WriteFile(path, []byte("11111\n1P0C1\n11111\n"), 0o644))

	out, diag, err := runCLI(t, "validate", "--no-color", path)
	assert.ErrorIs(t, err, errInvalidMaps)
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, diag, "Error\nNO EXIT\n")
}

func TestValidate_WrongExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.txt")
	require.NoError(t, os.WriteFile(path, []byte("111\n"), 0o644))

	_, diag, err := runCLI(t, "validate", path)
	assert.ErrorIs(t, err, errInvalidMaps)
	assert.Contains(t, diag, "INVALID FILENAME")
}

func TestValidate_UnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "validate", "--format", "xml", filepath.Join("..", "..", "maps"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errInvalidMaps)
}

func TestHistory_RequiresDatabase(t *testing.T) {
	_, _, err := runCLI(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.enabled")
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tilecheck dev\n", out)
}
