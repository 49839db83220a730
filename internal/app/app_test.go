package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/zmkgrid/internal/export"
	"github.com/vk/zmkgrid/internal/hcl"
	"github.com/vk/zmkgrid/internal/testutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func renamedCorne(name string) string {
	return strings.Replace(testutil.CorneKeymap, "default_layer", name, 1)
}

func TestRun_ParsesFileToJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "corne.keymap", testutil.CorneKeymap)
	appConfig, err := NewConfig(Config{KeymapPaths: []string{path}})
	require.NoError(t, err)

	testApp, out, logs := SetupAppTest(t, appConfig, hcl.NewLoader())
	require.NoError(t, testApp.Run(context.Background()))

	var decoded struct {
		Layers []struct {
			Name string `json:"name"`
		} `json:"layers"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.String()), &decoded))
	require.Len(t, decoded.Layers, 3)
	assert.Equal(t, "default_layer", decoded.Layers[0].Name)
	assert.Contains(t, logs.String(), "Keymap parsed.")
}

func TestRun_DirectoryToGrid(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a/corne.keymap": renamedCorne("alpha"),
		"b/corne.keymap": renamedCorne("bravo"),
		"README.md":      "not a keymap",
	})

	appConfig, err := NewConfig(Config{KeymapPaths: []string{dir}, Format: export.FormatGrid})
	require.NoError(t, err)

	testApp, out, _ := SetupAppTest(t, appConfig, hcl.NewLoader())
	require.NoError(t, testApp.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Layer 0: alpha")
	assert.Contains(t, text, "Layer 0: bravo")
	assert.Less(t, strings.Index(text, "alpha"), strings.Index(text, "bravo"))
}

func TestRun_ParseFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.keymap", testutil.CorneKeymap)
	bad := writeFile(t, dir, "bad.keymap", testutil.KeymapSource(testutil.LayerSpec{Name: "base", Bindings: testutil.KeyPresses(41)}))

	appConfig, err := NewConfig(Config{KeymapPaths: []string{bad, good}})
	require.NoError(t, err)

	testApp, out, logs := SetupAppTest(t, appConfig, hcl.NewLoader())
	runErr := testApp.Run(context.Background())

	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), bad+": Failed to parse keymap file: Layer \"base\" has 41 bindings, expected 42")
	assert.Contains(t, out.String(), "default_layer", "the good file is still written")
	assert.Contains(t, logs.String(), "Validation finding.")
	assert.Contains(t, logs.String(), "Layer binding count mismatch.")
	assert.Contains(t, logs.String(), "range="+bad+":", "the layer's source span is logged")
}

func TestRun_ValidateOnly(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.keymap", testutil.CorneKeymap)

	appConfig, err := NewConfig(Config{KeymapPaths: []string{good}, ValidateOnly: true})
	require.NoError(t, err)
	testApp, out, _ := SetupAppTest(t, appConfig, hcl.NewLoader())
	require.NoError(t, testApp.Run(context.Background()))
	assert.Equal(t, good+": OK\n", out.String())

	bad := writeFile(t, dir, "bad.keymap", "hello world")
	appConfig, err = NewConfig(Config{KeymapPaths: []string{bad}, ValidateOnly: true})
	require.NoError(t, err)
	testApp, out, _ = SetupAppTest(t, appConfig, hcl.NewLoader())

	runErr := testApp.Run(context.Background())
	require.ErrorIs(t, runErr, ErrValidationFailed)
	assert.Contains(t, out.String(), bad+": 3 problem(s)")
	assert.Contains(t, out.String(), "  - Missing keymap block\n")
	assert.Contains(t, out.String(), "  - No layers found\n")
}

func TestRun_NoKeymapFiles(t *testing.T) {
	appConfig, err := NewConfig(Config{KeymapPaths: []string{t.TempDir()}})
	require.NoError(t, err)

	testApp, _, _ := SetupAppTest(t, appConfig, hcl.NewLoader())
	err = testApp.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no keymap files found")
}

func TestRun_ListBindings(t *testing.T) {
	appConfig, err := NewConfig(Config{ListBindings: true})
	require.NoError(t, err)

	testApp, out, _ := SetupAppTest(t, appConfig, hcl.NewLoader())
	require.NoError(t, testApp.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 8)
	assert.Equal(t, "&kp KEY - Keypress", lines[0])
}

func TestNewApp_AppliesSettings(t *testing.T) {
	dir := t.TempDir()
	settingsPath := writeFile(t, dir, "settings.hcl", `
metadata {
  name    = "Corne"
  version = "2.1.0"
}
symbols = {
  Q = "q!"
}
publish {
  url   = "http://localhost:1/socket.io/"
  event = "layout"
}
`)
	keymapPath := writeFile(t, dir, "corne.keymap", testutil.CorneKeymap)

	appConfig, err := NewConfig(Config{
		KeymapPaths:  []string{keymapPath},
		SettingsPath: settingsPath,
		PublishURL:   "http://localhost:2/socket.io/",
	})
	require.NoError(t, err)

	testApp, _, _ := SetupAppTest(t, appConfig, hcl.NewLoader())

	pub := testApp.Settings().PublishOrDefault()
	assert.Equal(t, "http://localhost:2/socket.io/", pub.URL, "flag overrides file")
	assert.Equal(t, "layout", pub.Event)

	cfg, err := testApp.parseFile(testContext(testApp), keymapPath)
	require.NoError(t, err)
	assert.Equal(t, "Corne", cfg.Metadata.Name)
	assert.Equal(t, "2.1.0", cfg.Metadata.Version)
	assert.Equal(t, "ZMK", cfg.Metadata.Layout)
	assert.Equal(t, "q!", cfg.Layers[0].Keys["L0_R0C1"].Label)
}

func TestNewApp_BadSettings(t *testing.T) {
	settingsPath := writeFile(t, t.TempDir(), "settings.hcl", "metadata {\n")

	_, err := NewApp(&SafeBuffer{}, &SafeBuffer{}, &Config{SettingsPath: settingsPath}, hcl.NewLoader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load settings")
}

func TestRun_WatchReprocessesChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "corne.keymap", renamedCorne("first"))

	appConfig, err := NewConfig(Config{KeymapPaths: []string{dir}, Watch: true, Format: export.FormatGrid})
	require.NoError(t, err)
	testApp, out, logs := SetupAppTest(t, appConfig, hcl.NewLoader())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- testApp.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Layer 0: first") && strings.Contains(logs.String(), "Watching for changes.")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(renamedCorne("second")), 0o600))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Layer 0: second")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
