package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flip7.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ListenAddress())
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, uint64(42), cfg.Game.DefaultSeed)
	assert.Equal(t, 30*time.Minute, cfg.IdleTTL())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

game {
  default_seed     = 7
  max_players      = 4
  idle_ttl_minutes = 5
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, uint64(7), cfg.Game.DefaultSeed)
	assert.Equal(t, 4, cfg.Game.MaxPlayers)
	assert.Equal(t, 5*time.Minute, cfg.IdleTTL())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigPartialFileFillsDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
server {
  port = 9999
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9999", cfg.ListenAddress())
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 8, cfg.Game.MaxPlayers)
	assert.Equal(t, 30*time.Minute, cfg.IdleTTL())
}

func TestLoadConfigMalformed(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "server {\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "port too low",
			mutate:  func(cfg *Config) { cfg.Server.Port = 0 },
			wantErr: "invalid port",
		},
		{
			name:    "port too high",
			mutate:  func(cfg *Config) { cfg.Server.Port = 70000 },
			wantErr: "invalid port",
		},
		{
			name:    "too many players",
			mutate:  func(cfg *Config) { cfg.Game.MaxPlayers = 9 },
			wantErr: "max players must be between 1 and 8",
		},
		{
			name:    "negative idle ttl",
			mutate:  func(cfg *Config) { cfg.Game.IdleTTLMinutes = -1 },
			wantErr: "idle TTL cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
