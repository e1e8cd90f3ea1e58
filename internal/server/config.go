package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/flip7/internal/driver"
)

// Config is the hosting layer configuration, loaded from an HCL file.
type Config struct {
	Server *ServerSettings `hcl:"server,block"`
	Game   *GameSettings   `hcl:"game,block"`
}

// ServerSettings contains listener-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings contains per-game defaults.
type GameSettings struct {
	DefaultSeed    uint64 `hcl:"default_seed,optional"`
	MaxPlayers     int    `hcl:"max_players,optional"`
	IdleTTLMinutes int    `hcl:"idle_ttl_minutes,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: &GameSettings{
			DefaultSeed:    42,
			MaxPlayers:     driver.MaxPlayers,
			IdleTTLMinutes: 30,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server == nil {
		config.Server = defaults.Server
	}
	if config.Game == nil {
		config.Game = defaults.Game
	}
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Game.MaxPlayers == 0 {
		config.Game.MaxPlayers = defaults.Game.MaxPlayers
	}
	if config.Game.IdleTTLMinutes == 0 {
		config.Game.IdleTTLMinutes = defaults.Game.IdleTTLMinutes
	}

	return &config, nil
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Game.MaxPlayers < driver.MinPlayers || c.Game.MaxPlayers > driver.MaxPlayers {
		return fmt.Errorf("max players must be between %d and %d, got %d",
			driver.MinPlayers, driver.MaxPlayers, c.Game.MaxPlayers)
	}
	if c.Game.IdleTTLMinutes < 0 {
		return fmt.Errorf("idle TTL cannot be negative: %d", c.Game.IdleTTLMinutes)
	}
	return nil
}

// ListenAddress returns the full listener address.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTTL returns the idle game TTL as a duration.
func (c *Config) IdleTTL() time.Duration {
	return time.Duration(c.Game.IdleTTLMinutes) * time.Minute
}
