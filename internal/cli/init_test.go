package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/safeharbor/internal/config"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

func TestRunInit_UserMode(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	initMode = "user"
	initForce = false

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	configDir := filepath.Join(tmpDir, ".safeharbor")

	data, err := os.ReadFile(filepath.Join(configDir, "config.yaml"))
	if err != nil {
		t.Fatalf("config.yaml not created: %v", err)
	}
	if !strings.Contains(string(data), "safe_home_url") {
		t.Error("config.yaml missing safe_home_url")
	}

	data, err = os.ReadFile(filepath.Join(configDir, "sites.yaml"))
	if err != nil {
		t.Fatalf("sites.yaml not created: %v", err)
	}
	if !strings.Contains(string(data), "allow:") {
		t.Error("sites.yaml missing allow section")
	}
}

func TestRunInit_FilesLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	initMode = "user"
	initForce = false

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}
	configDir := filepath.Join(tmpDir, ".safeharbor")

	cfg, err := config.Load(filepath.Join(configDir, "config.yaml"))
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.SafeHomeURL != config.DefaultConfig().SafeHomeURL {
		t.Errorf("unexpected safe home %q", cfg.SafeHomeURL)
	}

	lists, err := sitelist.Load(filepath.Join(configDir, "sites.yaml"))
	if err != nil {
		t.Fatalf("generated sites do not load: %v", err)
	}
	if len(lists.Allow) == 0 || len(lists.Deny) == 0 {
		t.Errorf("expected populated lists, got %+v", lists)
	}
}

func TestRunInit_NoOverwriteWithoutForce(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, ".safeharbor")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}

	// Pre-create sites.yaml with sentinel content.
	sentinel := "# sentinel content\n"
	sitesPath := filepath.Join(configDir, "sites.yaml")
	if err := os.WriteFile(sitesPath, []byte(sentinel), 0o644); err != nil {
		t.Fatal(err)
	}

	initMode = "user"
	initForce = false

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	data, _ := os.ReadFile(sitesPath)
	if string(data) != sentinel {
		t.Error("sites.yaml was overwritten without --force")
	}
}

func TestRunInit_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, ".safeharbor")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}

	sentinel := "# sentinel content\n"
	sitesPath := filepath.Join(configDir, "sites.yaml")
	if err := os.WriteFile(sitesPath, []byte(sentinel), 0o644); err != nil {
		t.Fatal(err)
	}

	initMode = "user"
	initForce = true
	defer func() { initForce = false }()

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	data, _ := os.ReadFile(sitesPath)
	if string(data) == sentinel {
		t.Error("sites.yaml was NOT overwritten with --force")
	}
}

func TestRunInit_InvalidMode(t *testing.T) {
	initMode = "invalid"
	initForce = false
	defer func() { initMode = "user" }()

	err := runInit(nil, nil)
	if err == nil {
		t.Fatal("expected error for invalid mode")
	}
	if !strings.Contains(err.Error(), "unknown mode") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInitConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	defer func() { initMode = "user" }()

	tests := []struct {
		mode    string
		want    string
		wantErr bool
	}{
		{"user", filepath.Join(tmpDir, ".safeharbor"), false},
		{"system", "/etc/safeharbor", false},
		{"invalid", "", true},
	}

	for _, tt := range tests {
		initMode = tt.mode
		got, err := initConfigDir()
		if (err != nil) != tt.wantErr {
			t.Errorf("mode %q: err = %v, wantErr %v", tt.mode, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("mode %q: got %q, want %q", tt.mode, got, tt.want)
		}
	}
}
