package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	content := "prompt: \"noh>\"\ndebug: true\nfast: false\nlog_file: out.log\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "noh>", cfg.Prompt)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.Fast)
	assert.Equal(t, "out.log", cfg.LogFile)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("prompt: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
