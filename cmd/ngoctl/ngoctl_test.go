package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/SaiNageswarS/uzhavar-connect/directory"
	"github.com/SaiNageswarS/uzhavar-connect/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()
	paths := directory.DefaultPaths(dataDir)
	for path, content := range map[string]string{
		paths.States:    "TN,Tamil Nadu\nKL,Kerala\n",
		paths.Districts: "CHN,Chennai,TN\nEKM,Ernakulam,KL\n",
		paths.Sectors:   "1,health\n",
		paths.NGOs:      `{"ngo_name_title": "Aarogya Trust", "key_issues": "health, education"}<Chennai<TN` + "\n",
	} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dataDir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "absent.ini")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStatesCommand(t *testing.T) {
	out, err := run(t, "states", "--data-dir", writeData(t))
	require.NoError(t, err)
	assert.JSONEq(t, `[["TN","Tamil Nadu"],["KL","Kerala"]]`, out)
}

func TestDistrictsCommand(t *testing.T) {
	dataDir := writeData(t)

	out, err := run(t, "districts", "KL", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.JSONEq(t, `[["EKM","Ernakulam","KL"]]`, out)

	_, err = run(t, "districts", "--data-dir", dataDir)
	assert.Error(t, err)
}

func TestSectorsCommand(t *testing.T) {
	out, err := run(t, "sectors", "--data-dir", writeData(t))
	require.NoError(t, err)
	assert.JSONEq(t, `[["1","health"]]`, out)
}

func TestSearchCommand(t *testing.T) {
	dataDir := writeData(t)

	out, err := run(t, "search", "--data-dir", dataDir, "--state", "TN", "--district", "Chennai", "--sectors", "health,education")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"ngo_name_title": "Aarogya Trust", "key_issues": "health, education"}]`, out)

	out, err = run(t, "search", "--data-dir", dataDir, "--state", "TN", "--district", "Chennai", "--sectors", "housing")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)

	_, err = run(t, "search", "--data-dir", dataDir, "--state", "TN")
	assert.Error(t, err)

	_, err = run(t, "search", "--data-dir", dataDir, "--state", "TN", "--district", "Chennai", "--match", "fuzzy")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--data-dir", writeData(t))
	require.NoError(t, err)

	var v model.DataVersion
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, 2, v.StateCount)
	assert.Equal(t, 1, v.NGOCount)
	assert.Equal(t, "per_request", v.Mode)
}

func TestSeedRequiresMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	_, err := run(t, "seed", "--data-dir", writeData(t))
	assert.ErrorContains(t, err, "MONGO_URI")
}

func TestEnvFlagSelectsConfigSection(t *testing.T) {
	t.Setenv("ENV", "")
	dataDir := writeData(t)
	configPath := filepath.Join(t.TempDir(), "config.ini")
	config := "ngo_data_dir = " + filepath.Join(t.TempDir(), "empty") + "\n\n[dev]\nngo_data_dir = " + dataDir + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"states", "--config", configPath, "--env", "dev"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.JSONEq(t, `[["TN","Tamil Nadu"],["KL","Kerala"]]`, out.String())
}
