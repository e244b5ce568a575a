package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/web3hub/internal/model"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "web3hub.log")

	logger, err := New(model.LogConfig{Level: "info", File: path}, true, false)
	require.NoError(t, err)

	logger.Info("hello from test")
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.NotContains(t, string(data), "hidden")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(model.LogConfig{Level: "chatty"}, false, false)
	assert.Error(t, err)
}
