// Package config loads the host configuration from a TOML file. Everything
// has a default; a missing file section only overrides what it names.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Assets     AssetsConfig     `toml:"assets"`
	Zones      ZonesConfig      `toml:"zones"`
	Logging    LoggingConfig    `toml:"logging"`
	Debug      DebugConfig      `toml:"debug"`
}

type SimulationConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
}

type AssetsConfig struct {
	Dir      string   `toml:"dir"`
	Prefetch []string `toml:"prefetch"`
}

type ZonesConfig struct {
	Initial int          `toml:"initial"`
	Zones   []ZoneConfig `toml:"zone"`
}

type ZoneConfig struct {
	ID    int    `toml:"id"`
	Asset string `toml:"asset"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Enabled     bool   `toml:"enabled"`
	BindAddress string `toml:"bind_address"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate: 16 * time.Millisecond,
		},
		Assets: AssetsConfig{
			Dir: "content",
		},
		Zones: ZonesConfig{
			Initial: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			BindAddress: "127.0.0.1:7878",
		},
	}
}
