// Package config loads picker configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by the cmd package)
//  2. Environment variables (IT2JUMP_*)
//  3. Config file
//  4. Built-in defaults
//
// Config file search order:
//  1. .it2jump.yaml in current directory
//  2. ~/.config/it2jump/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all picker configuration.
type Config struct {
	// Viewport
	Width  int  `yaml:"width"`  // 0 uses terminal width
	Height int  `yaml:"height"` // 0 uses terminal height
	Footer bool `yaml:"footer"`

	// Behaviour
	Verbose     bool `yaml:"verbose"`
	StrictMatch bool `yaml:"strict_match"` // substring-only filtering, no fuzzy tier

	// Timing (Go duration strings, e.g. "200ms")
	Debounce     string `yaml:"debounce"`
	PollInterval string `yaml:"poll_interval"`

	// Logging
	Trace   bool   `yaml:"trace"`
	LogFile string `yaml:"log_file"`

	// Parsed durations (not from YAML, set after loading)
	DebounceDuration time.Duration `yaml:"-"`
	PollDuration     time.Duration `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Debounce:     "200ms",
		PollInterval: "1.5s",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the configuration and parses duration strings. It must
// run again after flag overrides are applied.
func (c *Config) Finalize() error {
	if c.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", c.Width)
	}
	if c.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", c.Height)
	}
	var err error
	c.DebounceDuration, err = parseDuration(c.Debounce, 200*time.Millisecond)
	if err != nil {
		return fmt.Errorf("invalid debounce %q: %w", c.Debounce, err)
	}
	c.PollDuration, err = parseDuration(c.PollInterval, 1500*time.Millisecond)
	if err != nil {
		return fmt.Errorf("invalid poll interval %q: %w", c.PollInterval, err)
	}
	return nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".it2jump.yaml"); err == nil {
		return ".it2jump.yaml", data, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "it2jump", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}
	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Width > 0 {
		cfg.Width = file.Width
	}
	if file.Height > 0 {
		cfg.Height = file.Height
	}
	if file.Footer {
		cfg.Footer = true
	}
	if file.Verbose {
		cfg.Verbose = true
	}
	if file.StrictMatch {
		cfg.StrictMatch = true
	}
	if file.Debounce != "" {
		cfg.Debounce = file.Debounce
	}
	if file.PollInterval != "" {
		cfg.PollInterval = file.PollInterval
	}
	if file.Trace {
		cfg.Trace = true
	}
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins over file.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("IT2JUMP_WIDTH"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Width)
	}
	if v := os.Getenv("IT2JUMP_HEIGHT"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Height)
	}
	if v := os.Getenv("IT2JUMP_FOOTER"); v == "true" || v == "1" {
		cfg.Footer = true
	}
	if v := os.Getenv("IT2JUMP_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("IT2JUMP_STRICT_MATCH"); v == "true" || v == "1" {
		cfg.StrictMatch = true
	}
	if v := os.Getenv("IT2JUMP_DEBOUNCE"); v != "" {
		cfg.Debounce = v
	}
	if v := os.Getenv("IT2JUMP_POLL_INTERVAL"); v != "" {
		cfg.PollInterval = v
	}
	if v := os.Getenv("IT2JUMP_TRACE"); v == "true" || v == "1" {
		cfg.Trace = true
	}
	if v := os.Getenv("IT2JUMP_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}

// parseDuration parses a duration string; the empty string returns fallback.
func parseDuration(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return d, nil
}
