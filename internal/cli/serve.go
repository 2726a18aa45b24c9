package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/safeharbor/internal/httpapi"
	"github.com/ppiankov/safeharbor/internal/metrics"
	"github.com/ppiankov/safeharbor/internal/server"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

var (
	servePort  int
	serveHTTP  string
	serveSites string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 50051, "gRPC listen port")
	serveCmd.Flags().StringVar(&serveHTTP, "http", ":8787", "HTTP listen address for JSON API and /metrics (empty disables)")
	serveCmd.Flags().StringVar(&serveSites, "sites", "", "Path to site lists YAML (default from config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the advisor server for overlay shells",
	Long: "Runs the classifier, assistant and field checks as a shared server.\n" +
		"Browser overlays connect over gRPC or the JSON HTTP API.\n" +
		"Site list edits are picked up without a restart.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger()
	sites := pick(serveSites, pick(settings().SitesPath, sitelist.DefaultPath()))
	m := metrics.New(true)

	srv, err := server.New(server.Config{
		Port:      servePort,
		SitesPath: sites,
		Metrics:   m,
		Logger:    log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	reloader, err := server.NewReloader(srv, []string{sites}, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: hot-reload disabled: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if reloader != nil {
		go reloader.Run(ctx)
	}

	var httpSrv *http.Server
	if serveHTTP != "" {
		httpSrv = &http.Server{
			Addr:              serveHTTP,
			Handler:           httpapi.NewHandler(srv.Service(), m, log),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http server failed", "error", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down advisor server...")
		cancel()
		if httpSrv != nil {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			httpSrv.Shutdown(shutdownCtx)
		}
		srv.GracefulStop()
	}()

	fmt.Fprintf(os.Stderr, "safeharbor advisor listening on :%d (gRPC)\n", servePort)
	if httpSrv != nil {
		fmt.Fprintf(os.Stderr, "HTTP API and metrics on %s\n", serveHTTP)
	}
	if reloader != nil && len(reloader.Paths()) > 0 {
		fmt.Fprintf(os.Stderr, "Sites: %s (hot-reload enabled)\n", sites)
	} else {
		fmt.Fprintln(os.Stderr, "Sites: built-in defaults")
	}
	fmt.Fprintln(os.Stderr)

	return srv.Serve()
}
