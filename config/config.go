// Package config loads the storefront configuration: data directory,
// log level, checkout simulation delay, and the external enrichment
// source list. Configuration is optional; the zero-config defaults give
// a working local store under the user's home directory.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/enrich"
)

const configFileEnvName = "VERTIX_CONFIG_FILE"

type Config struct {
	LogLevel      string          `mapstructure:"log_level"`
	DataDir       string          `mapstructure:"data_dir"`
	CheckoutDelay time.Duration   `mapstructure:"checkout_delay"`
	Enrichment    []enrich.Source `mapstructure:"enrichment"`
}

// SlogLevel parses the configured level, defaulting to info on any
// unrecognized value.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DatabasePath is the SQLite catalog file location.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "catalog.db")
}

// SessionPath is the key/value substrate directory.
func (c Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session")
}

// Load reads the config file named by the --config flag value (passed
// in by the CLI) or the VERTIX_CONFIG_FILE environment variable.
// An empty path means defaults only; a named file that cannot be read
// or parsed is fatal.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if env, ok := os.LookupEnv(configFileEnvName); ok {
		path = env
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	dataDir := ".vertix"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".vertix")
	}

	v.SetDefault("log_level", "info")
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("checkout_delay", "2s")
	v.SetDefault("enrichment", []enrich.Source{})
}
