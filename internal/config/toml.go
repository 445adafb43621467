// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Play  PlayConfig  `toml:"play"`
	Serve ServeConfig `toml:"serve"`
}

// PlayConfig maps game-related settings.
type PlayConfig struct {
	Game         *string  `toml:"game"`
	Level        *string  `toml:"level"`
	Pace         *float64 `toml:"pace"`
	Seed         *int64   `toml:"seed"`
	StudySeconds *int     `toml:"study-seconds"`
	Record       *bool    `toml:"record"`
	Content      *string  `toml:"content"`
}

// ServeConfig maps HTTP surface settings.
type ServeConfig struct {
	Addr   *string `toml:"addr"`
	Origin *string `toml:"origin"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
