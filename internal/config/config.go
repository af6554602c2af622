// Package config loads server settings from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`
	// DBPath is the sqlite database file.
	DBPath string `yaml:"db_path"`
	// Env selects the runtime mode; "production" tightens middleware.
	Env string `yaml:"env"`
	// MaxUploadBytes caps uploaded puzzle files. This is the size ceiling
	// guarding the decoders against hostile archives.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

func defaults() Config {
	return Config{
		Port:           "8080",
		DBPath:         "puzzlefile.db",
		Env:            "development",
		MaxUploadBytes: 1 << 20,
	}
}

// Load reads path when it exists, then applies env overrides. An empty path
// skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.MaxUploadBytes = n
	}

	return &cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Env == "production"
}
