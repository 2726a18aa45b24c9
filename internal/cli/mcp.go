package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	shmcp "github.com/ppiankov/safeharbor/internal/mcp"
)

var (
	mcpSites    string
	mcpAuditLog string
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpSites, "sites", "", "Path to site lists YAML (default from config)")
	mcpCmd.Flags().StringVar(&mcpAuditLog, "audit-log", "", "Path to audit log JSONL file (default from config)")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for assistant integration",
	Long:  "Runs safeharbor as an MCP (Model Context Protocol) server over stdio.\nExposes tools: classify, ask, check_field, suggest.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := shmcp.Config{
		SitesPath:    pick(mcpSites, settings().SitesPath),
		AuditLogPath: pick(mcpAuditLog, settings().AuditLogPath),
		Logger:       logger(),
	}

	srv, err := shmcp.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "safeharbor MCP server running on stdio")
	if cfg.AuditLogPath != "" {
		fmt.Fprintf(os.Stderr, "Audit session: %s\n", srv.SessionID())
	}
	fmt.Fprintln(os.Stderr)

	return srv.Run(ctx)
}
