package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/safeharbor/internal/config"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

var (
	initMode  string
	initForce bool
)

func init() {
	initCmd.Flags().StringVar(&initMode, "mode", "user", "Config location: user (~/.safeharbor) or system (/etc/safeharbor)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config files")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap safeharbor configuration and site lists",
	Long: `Creates the config directory with a commented config.yaml and sites.yaml.

User mode (default):  writes to ~/.safeharbor/
System mode:          writes to /etc/safeharbor/ (shared family computers)

Edit sites.yaml to add the sites a relative trusts (allow), wants a
second look at (caution), or must never visit (deny).`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := initConfigDir()
	if err != nil {
		return err
	}

	var created []string

	configFile := filepath.Join(configDir, "config.yaml")
	if wrote, err := writeIfMissing(configFile, config.DefaultConfigYAML()); err != nil {
		return err
	} else if wrote {
		created = append(created, configFile)
	}

	sitesFile := filepath.Join(configDir, "sites.yaml")
	if wrote, err := writeIfMissing(sitesFile, sitelist.DefaultYAML()); err != nil {
		return err
	} else if wrote {
		created = append(created, sitesFile)
	}

	// Print summary.
	fmt.Println("safeharbor init complete.")
	fmt.Println()
	if len(created) > 0 {
		fmt.Println("Created:")
		for _, path := range created {
			fmt.Printf("  %s\n", path)
		}
		fmt.Println()
	} else {
		fmt.Println("All files already exist (use --force to overwrite).")
		fmt.Println()
	}

	// Print next steps.
	fmt.Println("Verify:")
	fmt.Println("  safeharbor doctor")
	fmt.Println()
	fmt.Println("Try it in the terminal:")
	fmt.Println("  safeharbor browse")
	fmt.Println()
	fmt.Println("Serve browser overlays:")
	fmt.Println("  safeharbor serve")

	return nil
}

// initConfigDir returns the configuration directory based on mode.
func initConfigDir() (string, error) {
	switch initMode {
	case "system":
		return "/etc/safeharbor", nil
	case "user", "":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".safeharbor"), nil
	default:
		return "", fmt.Errorf("unknown mode %q: use 'user' or 'system'", initMode)
	}
}

// writeIfMissing writes content to path if it doesn't exist or --force is set.
// Returns true if the file was written.
func writeIfMissing(path, content string) (bool, error) {
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
