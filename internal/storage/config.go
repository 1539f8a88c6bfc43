package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/folio/internal/search"
)

// Environment variables that override the config file.
const (
	EnvLocale     = "FOLIO_LOCALE"
	EnvContentDir = "FOLIO_CONTENT_DIR"
	EnvRanker     = "FOLIO_RANKER"
)

// Config holds application configuration.
type Config struct {
	Locale       string         `yaml:"locale"`
	ContentDir   string         `yaml:"contentDir"` // empty uses the embedded content
	Ranker       string         `yaml:"ranker"`
	Threshold    float64        `yaml:"threshold"`
	Weights      search.Weights `yaml:"weights"`
	DefaultLimit int            `yaml:"defaultLimit"`
	CacheSize    int            `yaml:"cacheSize"`
	LogLevel     string         `yaml:"logLevel"`
	LogFormat    string         `yaml:"logFormat"`
	SiteURL      string         `yaml:"siteURL"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Locale:       "en",
		Ranker:       "approx",
		Threshold:    search.DefaultThreshold,
		Weights:      search.DefaultWeights(),
		DefaultLimit: search.DefaultLimit,
		CacheSize:    search.DefaultCacheSize,
		LogLevel:     "info",
		LogFormat:    "text",
		SiteURL:      "https://example.dev",
	}
}

// LoadConfig reads config from the YAML file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			config.applyEnv()
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	config.applyDefaults()
	config.applyEnv()
	return &config, nil
}

// applyDefaults fills fields missing from the file.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Locale == "" {
		c.Locale = defaults.Locale
	}
	if c.Ranker == "" {
		c.Ranker = defaults.Ranker
	}
	if c.Threshold == 0 {
		c.Threshold = defaults.Threshold
	}
	if c.Weights == (search.Weights{}) {
		c.Weights = defaults.Weights
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = defaults.DefaultLimit
	}
	if c.CacheSize <= 0 {
		c.CacheSize = defaults.CacheSize
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}
	if c.SiteURL == "" {
		c.SiteURL = defaults.SiteURL
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLocale); v != "" {
		c.Locale = v
	}
	if v := os.Getenv(EnvContentDir); v != "" {
		c.ContentDir = v
	}
	if v := os.Getenv(EnvRanker); v != "" {
		c.Ranker = v
	}
}

// SearchOptions turns the search settings into engine options.
func (c *Config) SearchOptions() ([]search.Option, error) {
	ranker, err := search.NewRanker(c.Ranker)
	if err != nil {
		return nil, err
	}
	return []search.Option{
		search.WithRanker(ranker),
		search.WithWeights(c.Weights),
		search.WithThreshold(c.Threshold),
		search.WithDefaultLimit(c.DefaultLimit),
		search.WithCacheSize(c.CacheSize),
	}, nil
}

// SaveConfig writes config to the YAML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/folio/config.yaml
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
