package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected defaults, got error: %v", err)
	}
	if cfg.SafeHomeURL != "https://www.google.com" {
		t.Errorf("unexpected safe home %q", cfg.SafeHomeURL)
	}
	if cfg.Timing.RevealDelay != 500*time.Millisecond || cfg.Timing.ReplyDelay != time.Second {
		t.Errorf("unexpected timing %+v", cfg.Timing)
	}
}

func TestLoadOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("safe_home_url: https://www.aarp.org\ntiming:\n  reply_delay: 250ms\n"), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SafeHomeURL != "https://www.aarp.org" {
		t.Errorf("expected override, got %q", cfg.SafeHomeURL)
	}
	if cfg.Timing.ReplyDelay != 250*time.Millisecond {
		t.Errorf("expected reply delay 250ms, got %v", cfg.Timing.ReplyDelay)
	}
	if cfg.Timing.AnnounceDelay != 500*time.Millisecond {
		t.Errorf("expected default announce delay kept, got %v", cfg.Timing.AnnounceDelay)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level kept, got %q", cfg.LogLevel)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("timing: [not, a, map"), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadRejectsNegativeDelay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("timing:\n  reveal_delay: -1s\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDefaultConfigYAMLMatchesDefaults(t *testing.T) {
	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(DefaultConfigYAML()), cfg); err != nil {
		t.Fatalf("default YAML does not parse: %v", err)
	}
	def := DefaultConfig()
	if cfg.SafeHomeURL != def.SafeHomeURL || cfg.Timing != def.Timing || cfg.LogLevel != def.LogLevel {
		t.Errorf("default YAML %+v differs from DefaultConfig %+v", cfg, def)
	}
}

func TestLoadAlerts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte(`alerts:
  - url: https://hooks.example.com/family
    format: slack
    events: [unsafe_visit, trusted_anyway]
    timeout: 2s
    headers:
      Authorization: Bearer xyz
`), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(cfg.Alerts))
	}
	a := cfg.Alerts[0]
	if a.Format != "slack" || len(a.Events) != 2 || a.Events[1] != "trusted_anyway" {
		t.Errorf("unexpected alert %+v", a)
	}
	if a.Timeout != 2*time.Second {
		t.Errorf("timeout = %v", a.Timeout)
	}
	if a.Headers["Authorization"] != "Bearer xyz" {
		t.Errorf("headers not loaded: %v", a.Headers)
	}
}

func TestLoadRejectsBadAlert(t *testing.T) {
	for name, body := range map[string]string{
		"missing url": "alerts:\n  - format: slack\n",
		"bad format":  "alerts:\n  - url: https://x\n    format: pager\n",
		"bad timeout": "alerts:\n  - url: https://x\n    timeout: -1s\n",
	} {
		path := filepath.Join(t.TempDir(), "config.yaml")
		os.WriteFile(path, []byte(body), 0644)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
