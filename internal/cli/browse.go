package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/safeharbor/internal/alert"
	"github.com/ppiankov/safeharbor/internal/audit"
	"github.com/ppiankov/safeharbor/internal/browser"
	"github.com/ppiankov/safeharbor/internal/classify"
	"github.com/ppiankov/safeharbor/internal/config"
	"github.com/ppiankov/safeharbor/internal/session"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

var (
	browseSites    string
	browseAuditLog string
	browseStart    string
)

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().StringVar(&browseSites, "sites", "", "Path to site lists YAML (default from config)")
	browseCmd.Flags().StringVar(&browseAuditLog, "audit-log", "", "Path to audit log JSONL file (default from config)")
	browseCmd.Flags().StringVar(&browseStart, "start", "", "Page to open first")
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse with the safety overlay in the terminal",
	Long: "Simulates the overlay around an embedded browser. Type addresses to\n" +
		"visit them, focus form fields, press advisory buttons and chat with\n" +
		"the assistant. Type \"commands\" for the list.",
	RunE: runBrowse,
}

// terminalBrowser is a session wired to a terminal shell and a history.
type terminalBrowser struct {
	term    *browser.Terminal
	hist    *browser.History
	sess    *session.Session
	console *browser.Console
	log     *audit.Log
	alerts  *alert.Dispatcher
}

func newTerminalBrowser(w io.Writer, render browser.RenderFunc, cfg *config.Config, sitesPath, auditPath string) (*terminalBrowser, error) {
	lists, hash, err := sitelist.LoadWithHash(sitesPath)
	if err != nil {
		return nil, err
	}
	c := classify.New(lists)
	c.SetLists(lists, hash)

	var auditLog *audit.Log
	if auditPath != "" {
		auditLog, err = audit.Open(auditPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
	}

	tb := &terminalBrowser{
		term:   browser.NewTerminal(w, render),
		log:    auditLog,
		alerts: alert.NewDispatcher(cfg.Alerts, logger()),
	}
	tb.hist = browser.NewHistory(nil, nil)
	tb.sess = session.New(session.Config{
		Shell:       tb.term,
		Navigator:   tb.hist,
		Classifier:  c,
		Timing:      cfg.Timing,
		SafeHomeURL: cfg.SafeHomeURL,
		Audit:       auditLog,
		Alerts:      tb.alerts,
		Logger:      logger(),
	})
	tb.hist.SetReporter(tb.sess)
	tb.console = browser.NewConsole(tb.sess, tb.hist, tb.term, cfg.SafeHomeURL)
	return tb, nil
}

func (tb *terminalBrowser) Close() {
	tb.sess.Close()
	tb.alerts.Wait()
	if tb.log != nil {
		tb.log.Close()
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg := settings()
	tb, err := newTerminalBrowser(os.Stdout, browser.NewRender(os.Stdout), cfg,
		pick(browseSites, cfg.SitesPath), pick(browseAuditLog, cfg.AuditLogPath))
	if err != nil {
		return err
	}
	defer tb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(os.Stderr, "safeharbor browse: type \"commands\" for help, \"quit\" to leave")
	if tb.log != nil {
		fmt.Fprintf(os.Stderr, "Session: %s\n", tb.sess.ID())
	}
	fmt.Fprintln(os.Stderr)

	if browseStart != "" {
		tb.hist.Visit(browseStart)
	}
	return tb.console.Run(ctx, os.Stdin)
}
