package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storytime.log")

	log, err := New(Config{Level: "debug", OutputPath: path})
	require.NoError(t, err)

	log.Info("story saved", zap.String("story_id", "abc"))
	_ = log.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"story saved"`)
	assert.Contains(t, string(content), `"story_id":"abc"`)
	assert.Contains(t, string(content), `"level":"INFO"`)
}

func TestNewFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storytime.log")

	log, err := New(Config{Level: "chatty", OutputPath: path})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zap.DebugLevel))
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
}
