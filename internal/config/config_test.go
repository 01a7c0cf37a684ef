package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/statblock-cli/pkg/escpos"
	"github.com/open-cli-collective/statblock-cli/pkg/layout"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty config",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "valid config",
			config:  Config{Width: 40, Profile: "TM-T88II", Font: "a"},
			wantErr: false,
		},
		{
			name:    "negative width",
			config:  Config{Width: -1},
			wantErr: true,
			errMsg:  "invalid width",
		},
		{
			name:    "unknown font",
			config:  Config{Font: "c"},
			wantErr: true,
			errMsg:  "unknown font",
		},
		{
			name:    "unknown profile",
			config:  Config{Profile: "LX-300"},
			wantErr: true,
			errMsg:  "unknown printer profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantWidth int
		wantFont  escpos.Font
	}{
		{"defaults use profile font b", Config{}, 56, escpos.FontB},
		{"profile font a", Config{Font: "a"}, 42, escpos.FontA},
		{"explicit width wins", Config{Width: 30, Font: "a"}, 30, escpos.FontA},
		{"other profile", Config{Profile: "TM-T20II", Font: "b"}, 64, escpos.FontB},
		{"minimum width", Config{Width: MinWidth}, MinWidth, escpos.FontB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.config.Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, s.Width)
			assert.Equal(t, tt.wantFont, s.Font)
		})
	}
}

func TestConfig_Resolve_InvalidWidth(t *testing.T) {
	_, err := Config{Width: 9}.Resolve()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWidth)
	assert.Contains(t, err.Error(), "minimum is 10")
}

func TestErrInvalidWidth_MatchesLayout(t *testing.T) {
	_, err := layout.RenderItem("Reactive Strike ", "text", MinWidth)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWidth)
}

func TestConfig_Resolve_DoesNotMutate(t *testing.T) {
	cfg := Config{}
	_, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Empty(t, cfg.Profile)
	assert.Empty(t, cfg.Font)
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := &Config{Width: 48, Profile: "TM-T88V", Font: "a", Printer: "192.168.1.50"}

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("width: [not a number"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&Config{Width: 40, Font: "a"}).Save(path))

	t.Setenv("SBP_WIDTH", "32")
	t.Setenv("SBP_PRINTER", "printer.local")

	cfg, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, "a", cfg.Font)
	assert.Equal(t, "printer.local", cfg.Printer)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Setenv("SBP_FONT", "a")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.Font)
}

func TestLoadWithEnv_BadEnv(t *testing.T) {
	t.Setenv("SBP_WIDTH", "wide")

	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse environment")
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "sbp", "config.yml"), DefaultConfigPath())
}
