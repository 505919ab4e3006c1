// Package config loads the service configuration from an optional YAML
// file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/ortelius/vulnview-backend/util"
)

// Config holds the runtime settings for the service
type Config struct {
	Host string
	Port string `validate:"required,numeric"`

	// DatasetSource is an http(s) URL or a local file path holding the
	// raw vulnerability dataset JSON
	DatasetSource string `validate:"required"`
	FetchTimeout  time.Duration

	// Optional raw-document cache
	RedisAddr string
	RedisTTL  time.Duration

	// Quiet period applied to search-text changes
	DebounceInterval time.Duration

	CORSOrigins string
}

// fileConfig is the YAML shape; durations are Go duration strings
type fileConfig struct {
	Host             string `yaml:"host"`
	Port             string `yaml:"port"`
	DatasetSource    string `yaml:"dataset_source"`
	FetchTimeout     string `yaml:"fetch_timeout"`
	RedisAddr        string `yaml:"redis_addr"`
	RedisTTL         string `yaml:"redis_ttl"`
	DebounceInterval string `yaml:"debounce_interval"`
	CORSOrigins      string `yaml:"cors_origins"`
}

// Load reads the YAML file at path when it exists, applies environment
// overrides, fills defaults, and validates the result
func Load(path string) (*Config, error) {
	cfg := &Config{
		Host:             "0.0.0.0",
		Port:             "8080",
		FetchTimeout:     60 * time.Second,
		RedisTTL:         15 * time.Minute,
		DebounceInterval: 300 * time.Millisecond,
		CORSOrigins:      "http://localhost:3000,http://127.0.0.1:3000",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			var file fileConfig
			if err := yaml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
			if err := file.apply(cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.Host = util.GetEnvDefault("VULNVIEW_HOST", cfg.Host)
	cfg.Port = util.GetEnvDefault("VULNVIEW_PORT", cfg.Port)
	cfg.DatasetSource = util.GetEnvDefault("VULNVIEW_DATASET", cfg.DatasetSource)
	cfg.RedisAddr = util.GetEnvDefault("VULNVIEW_REDIS_ADDR", cfg.RedisAddr)
	cfg.CORSOrigins = util.GetEnvDefault("VULNVIEW_CORS_ORIGINS", cfg.CORSOrigins)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (f *fileConfig) apply(cfg *Config) error {
	if f.Host != "" {
		cfg.Host = f.Host
	}
	if f.Port != "" {
		cfg.Port = f.Port
	}
	if f.DatasetSource != "" {
		cfg.DatasetSource = f.DatasetSource
	}
	if f.RedisAddr != "" {
		cfg.RedisAddr = f.RedisAddr
	}
	if f.CORSOrigins != "" {
		cfg.CORSOrigins = f.CORSOrigins
	}

	for _, d := range []struct {
		raw  string
		dst  *time.Duration
		name string
	}{
		{f.FetchTimeout, &cfg.FetchTimeout, "fetch_timeout"},
		{f.RedisTTL, &cfg.RedisTTL, "redis_ttl"},
		{f.DebounceInterval, &cfg.DebounceInterval, "debounce_interval"},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		if parsed < 0 {
			return fmt.Errorf("%s: negative duration", d.name)
		}
		*d.dst = parsed
	}
	return nil
}
