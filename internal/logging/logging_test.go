package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghcost.log")

	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)
	logger.Debug("plan evaluated", zap.String("plan", "team"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"plan evaluated"`)
	assert.Contains(t, string(data), `"plan":"team"`)
}

func TestNewFallsBackToInfo(t *testing.T) {
	logger, err := New(Config{Level: "loud", Output: "stderr"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestInitializeReplacesGlobal(t *testing.T) {
	t.Cleanup(InitializeDefault)

	require.NoError(t, Initialize(Config{Level: "error", Output: "stderr"}))
	assert.False(t, Named("engine").Core().Enabled(zapcore.WarnLevel))

	InitializeDefault()
	assert.True(t, Logger.Core().Enabled(zapcore.WarnLevel))
}
