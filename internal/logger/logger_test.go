package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staircut.log")
	require.NoError(t, Init("debug", path))
	Info("layout complete", zap.Int("sheets", 2))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "layout complete")
	assert.Contains(t, string(data), "sheets")
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	require.NoError(t, Init("chatty", ""))
	assert.False(t, Log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Log.Core().Enabled(zapcore.InfoLevel))
}
