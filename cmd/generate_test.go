package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphereconfig/internal/batch"
	"sphereconfig/internal/config"
)

const requiredSchema = `{"required": ["config_version", "server_url", "enrollment_api_key"]}`

func readConfig(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestGenerateCmd_Single(t *testing.T) {
	root := newConfigRoot(t, requiredSchema)
	out := filepath.Join(t.TempDir(), "output")

	stdout, _, err := executeCommand(t, "--config-root", root, "generate",
		"--env", "development",
		"--workstation-id", "ws-PC-FARM-01",
		"--start-index", "42",
		"--location", "msk-office-1",
		"--output-dir", out,
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Generated configs: 1")
	assert.Contains(t, stdout, "adb push "+filepath.Join(out, "sphere-agent-config.json"))

	doc := readConfig(t, filepath.Join(out, "sphere-agent-config.json"))
	assert.Equal(t, float64(42), doc["instance_index"])
	assert.Equal(t, "ws-PC-FARM-01", doc["workstation_id"])
	assert.Equal(t, "msk-office-1", doc["location"])
	assert.Equal(t, float64(60), doc["config_poll_interval_seconds"])
	assert.Equal(t, map[string]interface{}{"clone_source": "auto-generated"}, doc["meta"])
}

func TestGenerateCmd_WorkstationIgnoresInstanceIndex(t *testing.T) {
	root := newConfigRoot(t, requiredSchema)
	out := t.TempDir()

	_, stderr, err := executeCommand(t, "--config-root", root, "generate",
		"--env", "development",
		"--workstation-id", "ws-PC-FARM-01",
		"--instance-index", "42",
		"--output-dir", out,
	)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Ignoring instance index 42")

	doc := readConfig(t, filepath.Join(out, "sphere-agent-config.json"))
	assert.Equal(t, float64(0), doc["instance_index"])
}

func TestGenerateCmd_InstanceIndexWithoutWorkstation(t *testing.T) {
	root := newConfigRoot(t, requiredSchema)
	out := t.TempDir()

	_, stderr, err := executeCommand(t, "--config-root", root, "generate",
		"--env", "production",
		"--instance-index", "42",
		"--output-dir", out,
	)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	doc := readConfig(t, filepath.Join(out, "sphere-agent-config.json"))
	assert.Equal(t, float64(42), doc["instance_index"])
	assert.Nil(t, doc["workstation_id"])
	assert.Equal(t, map[string]interface{}{}, doc["meta"])
}

func TestGenerateCmd_OutputFileIsSanitized(t *testing.T) {
	root := newConfigRoot(t, "")
	out := t.TempDir()

	stdout, _, err := executeCommand(t, "--config-root", root, "generate",
		"--env", "production",
		"--output-dir", out,
		"--output-file", "sub/dev.json",
	)
	require.NoError(t, err)

	written := filepath.Join(out, "sub_dev.json")
	assert.FileExists(t, written)
	assert.NoDirExists(t, filepath.Join(out, "sub"))
	assert.Contains(t, stdout, "adb push "+written+" ")
	assert.Contains(t, stdout, "sub_dev.json")
	assert.NotContains(t, stdout, "sub/dev.json")
}

func TestGenerateCmd_Batch(t *testing.T) {
	root := newConfigRoot(t, requiredSchema)
	out := t.TempDir()

	stdout, _, err := executeCommand(t, "--config-root", root, "generate",
		"--env", "development",
		"--workstation-id", "ws-PC-FARM-01",
		"--count", "3",
		"--output-dir", out,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Generated configs: 3")
	assert.Contains(t, stdout, "Batch deploy via PC-Agent")

	for i, suffix := range []string{"000", "001", "002"} {
		doc := readConfig(t, filepath.Join(out, "sphere-agent-config-"+suffix+".json"))
		assert.Equal(t, float64(i), doc["instance_index"])
		assert.Equal(t, "dev-lab", doc["location"])
		meta := doc["meta"].(map[string]interface{})
		assert.Equal(t, "Farm-"+suffix, meta["ldplayer_name"])
	}
}

func TestGenerateCmd_OutputFileAndDefaults(t *testing.T) {
	root := newConfigRoot(t, "")
	out := t.TempDir()

	_, _, err := executeCommand(t, "--config-root", root, "generate",
		"--env", "production",
		"--output-dir", out,
		"--output-file", "device-7.json",
	)
	require.NoError(t, err)

	doc := readConfig(t, filepath.Join(out, "device-7.json"))
	assert.Equal(t, "/ws/android", doc["ws_path"])
	assert.Equal(t, float64(86400), doc["config_poll_interval_seconds"])
	assert.Nil(t, doc["location"])
	assert.Nil(t, doc["device_id"])
	assert.Len(t, doc["features"], 4)
}

func TestGenerateCmd_ValidationFailureWritesNothing(t *testing.T) {
	root := newConfigRoot(t, requiredSchema)
	out := filepath.Join(t.TempDir(), "output")

	_, _, err := executeCommand(t, "--config-root", root, "generate",
		"--env", "staging",
		"--count", "3",
		"--output-dir", out,
	)

	var unitErr *batch.UnitValidationError
	require.ErrorAs(t, err, &unitErr)
	assert.Equal(t, 0, unitErr.Unit)
	assert.Contains(t, unitErr.Errors.Error(), "badprefix_")
	assert.NoDirExists(t, out)
}

func TestGenerateCmd_MissingEnvironmentFile(t *testing.T) {
	root := newConfigRoot(t, "")
	require.NoError(t, os.Remove(filepath.Join(root, "environments", "staging.json")))

	_, _, err := executeCommand(t, "--config-root", root, "generate", "--env", "staging", "--output-dir", t.TempDir())
	assert.True(t, errors.Is(err, config.ErrEnvironmentNotFound))
}

func TestGenerateCmd_RejectsUnknownTier(t *testing.T) {
	root := newConfigRoot(t, "")

	_, _, err := executeCommand(t, "--config-root", root, "generate", "--env", "qa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: production, staging, development")

	_, _, err = executeCommand(t, "--config-root", root, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "env" not set`)
}

func TestGenerateCmd_DryRun(t *testing.T) {
	root := newConfigRoot(t, requiredSchema)
	out := filepath.Join(t.TempDir(), "output")

	stdout, _, err := executeCommand(t, "--config-root", root, "generate",
		"--env", "production",
		"--count", "2",
		"--output-dir", out,
		"--dry-run",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# sphere-agent-config-000.json")
	assert.Contains(t, stdout, "# sphere-agent-config-001.json")
	assert.Contains(t, stdout, `"ldplayer_name": "Farm-001"`)
	assert.NoDirExists(t, out)
}

func TestGenerateCmd_YAML(t *testing.T) {
	root := newConfigRoot(t, "")
	out := t.TempDir()

	_, _, err := executeCommand(t, "--config-root", root, "generate",
		"--env", "production",
		"--format", "yaml",
		"--output-dir", out,
	)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "sphere-agent-config.yaml"))
}
