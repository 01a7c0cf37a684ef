package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/statblock-cli/internal/config"
)

func TestRunClear_WithExistingConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := &config.Config{Width: 42}
	require.NoError(t, cfg.Save(path))

	var buf bytes.Buffer
	require.NoError(t, runClear(path, &buf, true))
	assert.Contains(t, buf.String(), "Configuration cleared from "+path)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRunClear_NoConfigFile(t *testing.T) {
	clearEnv(t)

	var buf bytes.Buffer
	require.NoError(t, runClear(filepath.Join(t.TempDir(), "config.yml"), &buf, true))
	assert.Contains(t, buf.String(), "No config file to remove")
}

func TestRunClear_ReportsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SBP_PRINTER", "10.0.0.5")

	var buf bytes.Buffer
	require.NoError(t, runClear(filepath.Join(t.TempDir(), "config.yml"), &buf, true))
	assert.Contains(t, buf.String(), "Environment variables will still be used: SBP_PRINTER")
}
