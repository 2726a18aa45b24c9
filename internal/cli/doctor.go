package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/safeharbor/internal/audit"
	"github.com/ppiankov/safeharbor/internal/config"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, site lists and audit log",
	RunE:  runDoctor,
}

type checkResult struct {
	label  string
	ok     bool
	detail string
	fix    string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	home, _ := os.UserHomeDir()
	configDir := ""
	if home != "" {
		configDir = filepath.Join(home, ".safeharbor")
	}

	checks := doctorChecks(configDir, settings())

	// Print results.
	hasFailures := false
	for _, c := range checks {
		mark := "\u2713" // ✓
		if !c.ok {
			mark = "\u2717" // ✗
			hasFailures = true
		}
		line := fmt.Sprintf("%s %-20s %s", mark, c.label+":", c.detail)
		if !c.ok && c.fix != "" {
			line += fmt.Sprintf("  ->  %s", c.fix)
		}
		fmt.Println(line)
	}

	if hasFailures {
		fmt.Println()
		fmt.Println("Some checks failed. Run the suggested commands to fix.")
		return fmt.Errorf("doctor found issues")
	}

	fmt.Println()
	fmt.Println("All checks passed.")
	return nil
}

func doctorChecks(configDir string, cfg *config.Config) []checkResult {
	var checks []checkResult

	// 1. Binary location and version.
	if execPath, _ := os.Executable(); execPath != "" {
		checks = append(checks, checkResult{label: "safeharbor binary", ok: true, detail: fmt.Sprintf("%s (v%s)", execPath, version)})
	} else {
		checks = append(checks, checkResult{label: "safeharbor binary", ok: false, detail: "cannot determine executable path"})
	}

	// 2. Config directory and config.yaml.
	if configDir == "" {
		checks = append(checks, checkResult{label: "config directory", ok: false, detail: "cannot determine home directory"})
	} else if info, err := os.Stat(configDir); err == nil && info.IsDir() {
		checks = append(checks, checkResult{label: "config directory", ok: true, detail: configDir})

		configFile := filepath.Join(configDir, "config.yaml")
		if _, err := os.Stat(configFile); err != nil {
			checks = append(checks, checkResult{label: "config.yaml", ok: false, detail: "missing", fix: "safeharbor init"})
		} else if _, err := config.Load(configFile); err != nil {
			checks = append(checks, checkResult{label: "config.yaml", ok: false, detail: err.Error()})
		} else {
			checks = append(checks, checkResult{label: "config.yaml", ok: true, detail: "valid"})
		}
	} else {
		checks = append(checks, checkResult{label: "config directory", ok: false, detail: "missing", fix: "safeharbor init"})
	}

	// 3. Site lists.
	sitesPath := cfg.SitesPath
	if sitesPath == "" && configDir != "" {
		sitesPath = filepath.Join(configDir, "sites.yaml")
	}
	if _, err := os.Stat(sitesPath); err != nil {
		checks = append(checks, checkResult{label: "site lists", ok: false, detail: "missing (using built-in defaults)", fix: "safeharbor init"})
	} else if l, err := sitelist.Load(sitesPath); err != nil {
		checks = append(checks, checkResult{label: "site lists", ok: false, detail: err.Error()})
	} else {
		checks = append(checks, checkResult{
			label:  "site lists",
			ok:     true,
			detail: fmt.Sprintf("%d allow, %d caution, %d deny", len(l.Allow), len(l.Caution), len(l.Deny)),
		})
	}

	// 4. Audit log chain, when auditing is on.
	if cfg.AuditLogPath != "" {
		if _, err := os.Stat(cfg.AuditLogPath); err != nil {
			checks = append(checks, checkResult{label: "audit log", ok: true, detail: "not written yet"})
		} else if r := audit.Verify(cfg.AuditLogPath); r.Valid {
			checks = append(checks, checkResult{label: "audit log", ok: true, detail: fmt.Sprintf("%d entries verified", r.Lines)})
		} else {
			checks = append(checks, checkResult{
				label:  "audit log",
				ok:     false,
				detail: fmt.Sprintf("chain broken at line %d: %s", r.ErrorLine, r.Error),
			})
		}
	}

	// 5. Caregiver alerts, when configured.
	if n := len(cfg.Alerts); n > 0 {
		checks = append(checks, checkResult{label: "caregiver alerts", ok: true, detail: fmt.Sprintf("%d webhook(s)", n)})
	}

	return checks
}
