package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/logging"
	"github.com/vovakirdan/blockdrop/internal/metrics"
	"github.com/vovakirdan/blockdrop/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.blockdrop/host_key

Metrics:
  - With --metrics, Prometheus metrics are served at http://<addr>/metrics

Examples:
  blockdrop serve                           # Listen on :23234 with auto-generated key
  blockdrop serve --ssh :2222               # Listen on port 2222
  blockdrop serve --host-key ./my_host_key  # Use specific host key
  blockdrop serve --metrics :9090           # Expose Prometheus metrics

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Prometheus metrics address (host:port), disabled if empty")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	level := "info"
	if flagDebug {
		level = "debug"
	}
	logger, _, err := logging.New(logging.Options{
		Prefix: "blockdrop-ssh",
		Level:  level,
		Writer: os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rec *metrics.Recorder
	if flagMetricsAddr != "" {
		rec = metrics.New()
		go serveMetrics(ctx, logger, rec)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, logger, rec)
	if err != nil {
		logger.Error("cannot create server", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Block Drop SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}
}

// serveMetrics exposes the recorder on /metrics until ctx is cancelled.
func serveMetrics(ctx context.Context, logger *log.Logger, rec *metrics.Recorder) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())

	srv := &http.Server{
		Addr:              flagMetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
	}()

	logger.Info("serving metrics", "address", flagMetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server error", "error", err)
	}
}

// portOf returns the port part of a listen address, or the address itself
// when it carries no port.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
