package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/zmkgrid/internal/app"
	"github.com/vk/zmkgrid/internal/testutil"
)

func writeKeymap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corne.keymap")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to set up test file")
	return path
}

func TestRun_ParsesKeymap(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeKeymap(t, testutil.CorneKeymap)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-format", "grid", path})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Layer 0: default_layer")
	require.Contains(t, out.String(), "Layer 2: raise_layer")
}

func TestRun_ValidateOnlyFails(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeKeymap(t, "hello world")
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-validate", path})

	// --- Assert ---
	require.ErrorIs(t, err, app.ErrValidationFailed)
	require.Contains(t, out.String(), "Missing keymap block")
}

func TestRun_SettingsLoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A settings file with a syntax error must stop startup with a clear error.
	settings := filepath.Join(t.TempDir(), "zmkgrid.hcl")
	require.NoError(t, os.WriteFile(settings, []byte("metadata {\n"), 0600))
	path := writeKeymap(t, testutil.CorneKeymap)

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-config", settings, path})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load settings")
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
