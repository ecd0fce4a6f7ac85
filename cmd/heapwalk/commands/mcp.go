package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/Sumatoshi-tech/heapwalk/pkg/mcp"
	"github.com/Sumatoshi-tech/heapwalk/pkg/observability"
)

const (
	// mcpMeterName identifies the meter used for MCP session metrics.
	mcpMeterName = "heapwalk-mcp"
	// mcpTracerName identifies the tracer used for per-tool-call spans.
	mcpTracerName = "heapwalk-mcp"

	metricsReadHeaderTimeout = 5 * time.Second
	metricsShutdownTimeout   = 5 * time.Second
)

type mcpRunner func(ctx context.Context, deps mcp.ServerDeps) error

func runMCPServer(ctx context.Context, deps mcp.ServerDeps) error {
	return mcp.NewServer(deps).Run(ctx)
}

// MCPCommand holds configuration and dependencies for the mcp command.
type MCPCommand struct {
	debug       bool
	metricsAddr string

	runner mcpRunner
}

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	return newMCPCommandWithDeps(runMCPServer)
}

func newMCPCommandWithDeps(runner mcpRunner) *cobra.Command {
	mc := &MCPCommand{runner: runner}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The server holds one live heap session and exposes it as tools agents
can discover and invoke:
  - heap_insert: insert a value and return the bubble-up step trace
  - heap_delete_min: remove the minimum and return the bubble-down trace
  - heap_state: current array, size, and heap-property check
  - heap_reset: clear the session, optionally seeding values`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          mc.run,
	}

	cmd.Flags().BoolVar(&mc.debug, "debug", false, "Enable debug logging to stderr")
	cmd.Flags().StringVar(&mc.metricsAddr, "metrics-addr", "",
		"Serve Prometheus /metrics on this address (empty = disabled)")

	return cmd
}

func (mc *MCPCommand) run(cmd *cobra.Command, _ []string) error {
	logger := observability.NewLogger(os.Stderr, mc.debug)

	deps := mcp.ServerDeps{
		Logger: logger,
		Tracer: otel.Tracer(mcpTracerName),
	}

	if mc.metricsAddr != "" {
		provider, handler, err := observability.NewPrometheus()
		if err != nil {
			return err
		}

		metrics, err := observability.NewSessionMetrics(provider.Meter(mcpMeterName))
		if err != nil {
			return err
		}

		deps.Metrics = metrics

		stopMetrics := serveMetrics(mc.metricsAddr, handler, logger)
		defer stopMetrics()
	}

	return mc.runner(cmd.Context(), deps)
}

// serveMetrics starts the /metrics HTTP listener and returns a
// function that shuts it down.
func serveMetrics(addr string, handler http.Handler, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		serveErr := srv.ListenAndServe()
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", serveErr)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		shutdownErr := srv.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			logger.Warn("metrics server shutdown failed", "error", shutdownErr)
		}
	}
}
