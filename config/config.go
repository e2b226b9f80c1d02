// Package config loads the tradejournal configuration file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the journal application configuration.
type Config struct {
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics"`
}

// JournalConfig locates the trade store.
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
	// DefaultAccount is used by commands that take --account when it is omitted.
	DefaultAccount string `json:"default_account,omitempty" yaml:"default_account,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text or json
}

// AnalyticsConfig tunes the analytics engine wrapper.
type AnalyticsConfig struct {
	// Strict rejects trades with NaN or infinite numbers.
	Strict   bool   `json:"strict" yaml:"strict"`
	CacheTTL string `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"` // e.g. "5m"; empty disables
}

// ParseCacheTTL converts CacheTTL to a time.Duration.
func (a AnalyticsConfig) ParseCacheTTL() (time.Duration, error) {
	if a.CacheTTL == "" {
		return 0, nil
	}
	return time.ParseDuration(a.CacheTTL)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Journal:   JournalConfig{DBPath: "./journal.sqlite"},
		Log:       LogConfig{Level: "info", Format: "text"},
		Analytics: AnalyticsConfig{Strict: true},
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// LoadFromFile reads a .json file as JSON and anything else as YAML.
// Fields absent from the file keep their Default values; unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if isJSON(path) {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	}
	// An empty file leaves the defaults in place.
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration in the format implied by the extension.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Journal.DBPath == "" {
		errs = append(errs, errors.New("journal.db_path is required"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format))
	}
	if ttl, err := c.Analytics.ParseCacheTTL(); err != nil {
		errs = append(errs, fmt.Errorf("analytics.cache_ttl: %w", err))
	} else if ttl < 0 {
		errs = append(errs, errors.New("analytics.cache_ttl must not be negative"))
	}

	return errors.Join(errs...)
}
