// Package config loads exam-dates settings from YAML.
//
// Defaults are embedded in the binary; an optional file overrides them field by
// field. Environment variables referenced as ${NAME} are expanded before parsing.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all settings for the exam-dates commands.
type Config struct {
	Scraper  ScraperConfig  `yaml:"scraper"`
	CSV      CSVConfig      `yaml:"csv"`
	Convert  ConvertConfig  `yaml:"convert"`
	Calendar CalendarConfig `yaml:"calendar"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// ScraperConfig defines how schedule pages are fetched.
type ScraperConfig struct {
	URL            string `yaml:"url,omitempty"`
	UserAgent      string `yaml:"user_agent,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Timeout returns the HTTP timeout as a duration.
func (s ScraperConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type CSVConfig struct {
	Delimiter string `yaml:"delimiter,omitempty"` // single character
}

// Comma returns the delimiter as a rune.
func (c CSVConfig) Comma() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

type ConvertConfig struct {
	Mode    string `yaml:"mode,omitempty"` // "split" or "merged"
	Workers int    `yaml:"workers,omitempty"`
}

type CalendarConfig struct {
	Timezone string `yaml:"timezone,omitempty"`
	Name     string `yaml:"name,omitempty"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr,omitempty"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	var cfg Config
	if err := decode(defaultsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return &cfg, nil
}

// Load returns the defaults overlaid with the file at path. An empty path
// returns the defaults alone.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// decode expands ${VAR} references and unmarshals into cfg, keeping any field
// the document does not mention.
func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	return yaml.Unmarshal([]byte(expanded), cfg)
}

// Validate checks values that cannot be repaired with a default.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	if c.Convert.Workers < 0 {
		return fmt.Errorf("convert.workers must not be negative, got %d", c.Convert.Workers)
	}
	if c.Scraper.TimeoutSeconds < 0 {
		return fmt.Errorf("scraper.timeout_seconds must not be negative, got %d", c.Scraper.TimeoutSeconds)
	}
	if c.Calendar.Timezone != "" {
		if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
			return fmt.Errorf("calendar.timezone: %w", err)
		}
	}
	return nil
}
