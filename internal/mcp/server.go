package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/safeharbor/internal/audit"
	"github.com/ppiankov/safeharbor/internal/classify"
	"github.com/ppiankov/safeharbor/internal/logging"
	"github.com/ppiankov/safeharbor/internal/service"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

// Config holds MCP server configuration.
type Config struct {
	SitesPath    string
	AuditLogPath string
	Logger       *slog.Logger
}

// Server wraps the MCP SDK server so assistants can ask safeharbor about
// links before opening them.
type Server struct {
	mcpServer *mcpsdk.Server
	svc       *service.Service
	auditLog  *audit.Log
	sessionID string
	listHash  string
	logger    *slog.Logger
}

// New creates an MCP server with loaded site lists and tools.
func New(cfg Config) (*Server, error) {
	lists, hash, err := sitelist.LoadWithHash(cfg.SitesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load site lists: %w", err)
	}
	c := classify.New(lists)
	c.SetLists(lists, hash)

	var auditLog *audit.Log
	if cfg.AuditLogPath != "" {
		auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Server{
		svc:       service.New(c, nil),
		auditLog:  auditLog,
		sessionID: "mcp-" + uuid.NewString(),
		listHash:  hash,
		logger:    logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "safeharbor",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the audit log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

// SessionID is the audit session every tool call is recorded under.
func (s *Server) SessionID() string {
	return s.sessionID
}

func (s *Server) recordAudit(e audit.AuditEntry) {
	if s.auditLog == nil {
		return
	}
	e.SessionID = s.sessionID
	e.ListHash = s.listHash
	if err := s.auditLog.Record(e); err != nil {
		s.logger.Warn("audit record failed", "event", e.Event, "error", err)
	}
}

// registerTools adds all safeharbor tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "safeharbor_classify",
		Description: "Rate a website as safe, caution, unsafe or pending (not yet known) before visiting it.",
	}, s.handleClassify)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "safeharbor_ask",
		Description: "Ask the safety assistant a plain-language question about a website.",
	}, s.handleAsk)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "safeharbor_check_field",
		Description: "Check whether typing into a form field on a website would expose personal data, and what the assistant would advise.",
	}, s.handleCheckField)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "safeharbor_suggest",
		Description: "Suggest trusted websites matching a partial address or name.",
	}, s.handleSuggest)
}
