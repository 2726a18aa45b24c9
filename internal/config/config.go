// Package config loads SafeHarbor runtime settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/safeharbor/internal/alert"
)

// Timing holds the user-visible delays.
type Timing struct {
	// RevealDelay stages a navigation advisory after the indicator update.
	RevealDelay time.Duration `yaml:"reveal_delay"`
	// AnnounceDelay postpones the chat announcement of a new page.
	AnnounceDelay time.Duration `yaml:"announce_delay"`
	// ReplyDelay postpones assistant replies.
	ReplyDelay time.Duration `yaml:"reply_delay"`
}

// Config holds all configurable session parameters.
type Config struct {
	SafeHomeURL  string `yaml:"safe_home_url"`
	SitesPath    string `yaml:"sites_path"`
	AuditLogPath string `yaml:"audit_log_path"`
	LogLevel     string `yaml:"log_level"`
	Timing       Timing `yaml:"timing"`

	// Alerts are caregiver webhooks.
	Alerts []alert.Config `yaml:"alerts"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		SafeHomeURL: "https://www.google.com",
		LogLevel:    "info",
		Timing: Timing{
			RevealDelay:   500 * time.Millisecond,
			AnnounceDelay: 500 * time.Millisecond,
			ReplyDelay:    time.Second,
		},
	}
}

// DefaultPath returns ~/.safeharbor/config.yaml, or "" if home is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".safeharbor", "config.yaml")
}

// Load reads configuration from a YAML file.
// Empty path falls back to ~/.safeharbor/config.yaml.
// Missing file returns defaults. Invalid YAML returns an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// YAML overwrites only the fields it names.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the session cannot run with.
func (c *Config) Validate() error {
	if c.SafeHomeURL == "" {
		return fmt.Errorf("config: safe_home_url must not be empty")
	}
	t := c.Timing
	if t.RevealDelay < 0 || t.AnnounceDelay < 0 || t.ReplyDelay < 0 {
		return fmt.Errorf("config: timing delays must not be negative")
	}
	for i, a := range c.Alerts {
		if a.URL == "" {
			return fmt.Errorf("config: alerts[%d]: url must not be empty", i)
		}
		if a.Format != "" && a.Format != "generic" && a.Format != "slack" {
			return fmt.Errorf("config: alerts[%d]: unknown format %q", i, a.Format)
		}
		if a.Timeout < 0 {
			return fmt.Errorf("config: alerts[%d]: timeout must not be negative", i)
		}
	}
	return nil
}

// DefaultConfigYAML returns the commented config written by "safeharbor init".
func DefaultConfigYAML() string {
	return `# SafeHarbor configuration
# Where "take me to safety" goes from an unsafe page.
safe_home_url: https://www.google.com

# Site lists (allow / caution / deny). Empty uses ~/.safeharbor/sites.yaml.
sites_path: ""

# Hash-chained audit log. Empty disables auditing.
audit_log_path: ""

# debug | info | warn | error
log_level: info

timing:
  reveal_delay: 500ms
  announce_delay: 500ms
  reply_delay: 1s

# Caregiver webhooks. Events: unsafe_visit, stayed_on_unsafe,
# trusted_anyway, returned_to_safety.
# alerts:
#   - url: https://hooks.slack.com/services/...
#     format: slack
#     events: [unsafe_visit, trusted_anyway]
#     timeout: 5s
alerts: []
`
}
