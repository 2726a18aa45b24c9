package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/safeharbor/internal/config"
	"github.com/ppiankov/safeharbor/internal/logging"
)

var (
	configPath string
	logLevel   string

	appConfig *config.Config
	appLogger *slog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML (default ~/.safeharbor/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug|info|warn|error)")
}

var rootCmd = &cobra.Command{
	Use:   "safeharbor",
	Short: "Safety companion for older adults browsing the web",
	Long: "Rates every page as Safe, Caution, Unsafe or Checking, warns before personal\n" +
		"information is typed into an unverified site, and answers plain-language\n" +
		"safety questions. Advice, not enforcement: the user always decides.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
			os.Exit(78) // EX_CONFIG
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		appConfig = cfg
		appLogger = logging.New(level)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// settings returns the loaded config, or defaults when a command runs
// without the root pre-run (tests).
func settings() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

func logger() *slog.Logger {
	if appLogger == nil {
		return logging.NewNop()
	}
	return appLogger
}

// pick returns flag when set, otherwise fallback.
func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
