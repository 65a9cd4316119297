package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Chart   ChartConfig   `yaml:"chart"`
	Watch   WatchConfig   `yaml:"watch"`
	Paths   PathsConfig   `yaml:"paths"`
	Limits  LimitsConfig  `yaml:"limits"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type ChartConfig struct {
	LogoPath string `yaml:"logo_path"`
}

// WatchConfig controls the optional batch mode: audio files dropped into
// paths.input get charted automatically.
type WatchConfig struct {
	Enabled       bool `yaml:"enabled"`
	MaxConcurrent int  `yaml:"max_concurrent"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LimitsConfig struct {
	MaxUploadMB int64 `yaml:"max_upload_mb"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses the configuration file, then applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Watch.Enabled {
		if c.Paths.Input == "" {
			return fmt.Errorf("paths.input is required when watch is enabled")
		}
		if c.Paths.Output == "" {
			return fmt.Errorf("paths.output is required when watch is enabled")
		}
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-pro"
	}
	// API keys may also arrive per request; the environment is only a
	// fallback when the config carries none.
	if len(c.Gemini.APIKeys) == 0 {
		if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			c.Gemini.APIKeys = []string{key}
		}
	}
	if c.Chart.LogoPath == "" {
		c.Chart.LogoPath = "logo.png"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}
	if c.Limits.MaxUploadMB == 0 {
		c.Limits.MaxUploadMB = 32
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
