package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RGALLERY_CATALOG", "RGALLERY_LOG_LEVEL", "RGALLERY_LOG_FILE", "RGALLERY_STATE_DIR"} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 200, cfg.Layout.WindowSize)
	assert.Equal(t, 3, cfg.Layout.BufferRows)
	assert.InDelta(t, 0.5, cfg.Layout.HalfRowThreshold, 1e-9)
	assert.Equal(t, 10, cfg.Layout.RestoreAttempts)
	assert.Equal(t, 150*time.Millisecond, cfg.ScrollSettle())
	assert.Equal(t, 16*time.Millisecond, cfg.FrameInterval())
	assert.Equal(t, 30*time.Second, cfg.Timeout())

	opts := cfg.PathOptions()
	assert.Equal(t, "files/", opts.FileBase)
	assert.Equal(t, "renders/", opts.RenderBase)
	assert.Equal(t, ".webp", opts.RenderExt)
}

func TestConfigPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "rgallery", "config.toml"), ConfigPath())

	t.Setenv("XDG_STATE_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "rgallery"), DefaultStateDir())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Catalog, cfg.Catalog)
}

func TestLoadFormats(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "config.toml",
			content: `
[catalog]
source = "https://example.test/data.json"
retry_max = 5

[layout]
buffer_rows = 4
half_row_threshold = 0.25

[log]
level = "debug"
`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			content: `
catalog:
  source: https://example.test/data.json
  retry_max: 5
layout:
  buffer_rows: 4
  half_row_threshold: 0.25
log:
  level: debug
`,
		},
		{
			name:    "json",
			file:    "config.json",
			content: `{"catalog":{"source":"https://example.test/data.json","retry_max":5},"layout":{"buffer_rows":4,"half_row_threshold":0.25},"log":{"level":"debug"}}`,
		},
		{
			name: "no extension",
			file: "rgalleryrc",
			content: `
[catalog]
source = "https://example.test/data.json"
retry_max = 5
[layout]
buffer_rows = 4
half_row_threshold = 0.25
[log]
level = "debug"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "https://example.test/data.json", cfg.Catalog.Source)
			assert.Equal(t, 5, cfg.Catalog.RetryMax)
			assert.Equal(t, 4, cfg.Layout.BufferRows)
			assert.InDelta(t, 0.25, cfg.Layout.HalfRowThreshold, 1e-9)
			assert.Equal(t, "debug", cfg.Log.Level)
			// untouched keys keep their defaults
			assert.Equal(t, 200, cfg.Layout.WindowSize)
			assert.Equal(t, "renders/", cfg.Catalog.RenderBase)
		})
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[catalog\nsource="), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode TOML")
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RGALLERY_CATALOG", "/srv/catalog.json")
	t.Setenv("RGALLERY_LOG_LEVEL", "warn")
	t.Setenv("RGALLERY_STATE_DIR", "/tmp/rgallery-state")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/catalog.json", cfg.CatalogSource())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/rgallery-state", cfg.StateDirPath())
	assert.Equal(t, filepath.Join("/tmp/rgallery-state", "rgallery.log"), cfg.LogPath())

	t.Setenv("RGALLERY_LOG_FILE", "/var/log/rg.log")
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "/var/log/rg.log", cfg.LogPath())
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.Source = " "
	cfg.Catalog.RenderExt = "webp"
	cfg.Layout.WindowSize = 0
	cfg.Layout.HalfRowThreshold = 1
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{
		"catalog.source",
		"catalog.render_ext",
		"layout.window_size",
		"layout.half_row_threshold",
		"log.level",
	}, fields)
	assert.Contains(t, err.Error(), "config: log.level: unknown level \"loud\"")
}

func TestLoadWrapsValidationError(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[layout]\nbuffer_rows = -1\n"), 0o644))

	_, err := Load(path)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "layout.buffer_rows", verrs[0].Field)
}
