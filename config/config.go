// Package config loads server configuration from an optional YAML file.
//
// Example:
//
//	server:
//	  addr: ":5000"
//	  cors_origins:
//	    - "http://localhost:5173"
//	database:
//	  path: "./intern.db"
//
// Command-line flags in cmd/server override anything set here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	// Path is the SQLite database file; ":memory:" for ephemeral runs.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file or flags are given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":5000",
			CORSOrigins: []string{
				"http://localhost:5173",
				"http://localhost:8080",
			},
		},
		Database: DatabaseConfig{Path: "intern.db"},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	buf, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
