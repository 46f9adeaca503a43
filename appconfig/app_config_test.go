package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SaiNageswarS/uzhavar-connect/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppConfig(t *testing.T) {
	path := writeConfig(t, `
ngo_data_dir = /srv/ngo
ngo_load_mode = per_request
ngo_watch_debounce = 2s
rover_ids = rover-1,rover-2

[prod]
ngo_load_mode = cached
ngo_watch_files = true
ngo_ngos_file = directory.csv
`)

	t.Run("default section", func(t *testing.T) {
		t.Setenv("ENV", "")
		cfg, err := LoadAppConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/ngo", cfg.NGODataDir)
		assert.Equal(t, "per_request", cfg.NGOLoadMode)
		assert.Equal(t, 2*time.Second, cfg.NGOWatchDebounce)
		assert.Equal(t, []string{"rover-1", "rover-2"}, cfg.RoverIDs)
		assert.False(t, cfg.NGOWatchFiles)
		assert.Equal(t, ":8081", cfg.HTTPPort)
		assert.Equal(t, SourceFile, cfg.NGOSource)
	})

	t.Run("env section overrides", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		cfg, err := LoadAppConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "cached", cfg.NGOLoadMode)
		assert.True(t, cfg.NGOWatchFiles)
		assert.Equal(t, "/srv/ngo", cfg.NGODataDir)
		assert.Equal(t, "/srv/ngo/directory.csv", cfg.DataPaths().NGOs)
		assert.Equal(t, "/srv/ngo/states.csv", cfg.DataPaths().States)
	})

	t.Run("unknown env section is ignored", func(t *testing.T) {
		t.Setenv("ENV", "staging")
		cfg, err := LoadAppConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "per_request", cfg.NGOLoadMode)
	})

	t.Run("boot config keys are mapped", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		cfg, err := LoadAppConfig(writeConfig(t, "domain = ngo.example.org\n\n[prod]\ngcp_project_id = ngo-prod\n"))
		require.NoError(t, err)
		assert.Equal(t, "ngo.example.org", cfg.Domain)
		assert.Equal(t, "ngo-prod", cfg.GcpProjectId)
	})

	t.Run("rejects a bad value in the env section", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		_, err := LoadAppConfig(writeConfig(t, "[prod]\nngo_load_mode = lazy\n"))
		assert.Error(t, err)
	})

	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "none.ini"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}

func TestLoadAppConfigRejectsBadValues(t *testing.T) {
	for name, content := range map[string]string{
		"load mode": "ngo_load_mode = lazy\n",
		"match":     "ngo_sector_match = fuzzy\n",
		"source":    "ngo_source = s3\n",
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv("ENV", "")
			_, err := LoadAppConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestDirectoryOptions(t *testing.T) {
	cfg := Default()
	cfg.NGOLoadMode = "per_request"
	cfg.NGOSectorMatch = "tag"
	assert.Equal(t, directory.Options{Mode: directory.ModePerRequest, Match: directory.MatchTag}, cfg.DirectoryOptions())
}

func TestBuildSource(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		cfg := Default()
		cfg.NGODataDir = "/srv/ngo"
		src, closeFn, err := cfg.BuildSource()
		require.NoError(t, err)
		defer closeFn()
		assert.Equal(t, "file:/srv/ngo", src.String())
	})

	t.Run("mongo without uri", func(t *testing.T) {
		t.Setenv("MONGO_URI", "")
		cfg := Default()
		cfg.NGOSource = SourceMongo
		src, closeFn, err := cfg.BuildSource()
		assert.Error(t, err)
		assert.Nil(t, src)
		require.NotNil(t, closeFn)
		assert.NotPanics(t, closeFn)
	})
}
