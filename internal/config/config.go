// Package config loads application configuration from an optional YAML file
// layered under SOFAYMANTA_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from environment variables before mapping them to
// config keys: SOFAYMANTA_SERVER_ADDR -> server.addr.
const envPrefix = "SOFAYMANTA_"

// DefaultConfigPaths lists where the config file is searched, first hit wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/sofaymanta/config.yaml",
}

// Config is the application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	TMDB     TMDBConfig     `koanf:"tmdb"`
	Supabase SupabaseConfig `koanf:"supabase"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimit       int           `koanf:"rate_limit"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	DefaultLanguage string        `koanf:"default_language"`
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// TMDBConfig holds catalog provider settings.
type TMDBConfig struct {
	AccessToken string `koanf:"access_token"`
}

// SupabaseConfig holds auth backend settings. The service key grants admin
// privileges and is only used for account deletion.
type SupabaseConfig struct {
	URL        string `koanf:"url"`
	ServiceKey string `koanf:"service_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:3000",
			CORSOrigins: []string{
				"http://localhost:4200",
				"https://sofaymanta-front.vercel.app",
			},
			RateLimit:       100,
			RateLimitWindow: time.Minute,
			DefaultLanguage: "es-ES",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the first config file found
// (optional) and environment variables, in increasing precedence.
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return errors.New("database.url is required (SOFAYMANTA_DATABASE_URL)")
	}
	if c.TMDB.AccessToken == "" {
		return errors.New("tmdb.access_token is required (SOFAYMANTA_TMDB_ACCESS_TOKEN)")
	}
	return nil
}

// envKey maps SOFAYMANTA_SECTION_SOME_KEY to section.some_key. The section is
// the first underscore-delimited token; the rest keeps its underscores.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return section
	}
	return section + "." + rest
}

func findConfigFile() string {
	if path := os.Getenv("SOFAYMANTA_CONFIG"); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
