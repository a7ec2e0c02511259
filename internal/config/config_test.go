package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ghcost/internal/errors"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "cli", cfg.Output.DefaultFormat)
	assert.False(t, cfg.Output.ShowDetails)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ghcost.json")

	cfg := Default()
	cfg.Output.DefaultFormat = "markdown"
	cfg.Tariff.Path = "/etc/ghcost/tariff.yaml"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeConfig))
}

func TestApplyEnvOverridesFile(t *testing.T) {
	t.Setenv("GHCOST_SERVER_ADDR", ":9999")
	t.Setenv("GHCOST_OUTPUT_DEFAULT_FORMAT", "json")
	t.Setenv("GHCOST_OUTPUT_SHOW_DETAILS", "true")
	t.Setenv("GHCOST_TARIFF_PATH", "tariff.yaml")
	t.Setenv("GHCOST_LOGGING_LEVEL", "debug")

	cfg := Default()
	cfg.Server.BodyLimitKB = 64
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.True(t, cfg.Output.ShowDetails)
	assert.Equal(t, "tariff.yaml", cfg.Tariff.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 64, cfg.Server.BodyLimitKB, "unset variables keep existing values")
}

func TestApplyEnvIgnoresUnprefixedVariables(t *testing.T) {
	t.Setenv("PATH", "/usr/local/bin:/usr/bin")
	t.Setenv("ADDR", ":1")
	t.Setenv("FORMAT", "xml")
	t.Setenv("DEFAULT_FORMAT", "xml")
	t.Setenv("LEVEL", "debug")
	t.Setenv("OUTPUT", "stdout")
	t.Setenv("NO_COLOR", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	t.Setenv("GHCOST_SERVER_READ_TIMEOUT_SECONDS", "soon")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeConfig))
}

func TestGlobalConfig(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Set(prev) })

	cfg := Default()
	cfg.Output.NoColor = true
	Set(cfg)
	assert.Same(t, cfg, Get())
}
