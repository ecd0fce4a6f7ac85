// Package mcp implements a Model Context Protocol server exposing one
// live heap session as MCP tools over stdio transport, so teaching
// agents can drive heap operations and read back the step traces.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
	"github.com/Sumatoshi-tech/heapwalk/pkg/observability"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "heapwalk"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the expected number of registered tools.
	toolCount = 4
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional session metrics recorder. Nil disables per-tool metrics.
	Metrics *observability.SessionMetrics

	// Tracer is an optional OTel tracer for per-tool-call spans. Nil disables tracing.
	Tracer trace.Tracer
}

// Server wraps the MCP SDK server around one mutable heap session.
type Server struct {
	inner *mcpsdk.Server

	mu      sync.Mutex
	session heap.Heap

	toolsMu sync.RWMutex
	tools   []string

	metrics *observability.SessionMetrics
	tracer  trace.Tracer
}

// NewServer creates a new MCP server with all heapwalk tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	srv := &Server{
		inner:   inner,
		session: heap.Heap{},
		tools:   make([]string, 0, toolCount),
		metrics: deps.Metrics,
		tracer:  deps.Tracer,
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.toolsMu.RLock()
	defer s.toolsMu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// SessionHeap returns a copy of the current session heap.
func (s *Server) SessionHeap() heap.Heap {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.Clone()
}

// Run starts the MCP server on stdio transport. It blocks until the
// context is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It
// blocks until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all heapwalk MCP tools to the server.
func (s *Server) registerTools() {
	register(s, ToolNameInsert, insertToolDescription, s.handleInsert)
	register(s, ToolNameDeleteMin, deleteMinToolDescription, s.handleDeleteMin)
	register(s, ToolNameState, stateToolDescription, s.handleState)
	register(s, ToolNameReset, resetToolDescription, s.handleReset)
}

// register wires one tool through the tracing and metrics middleware.
func register[Input any](
	s *Server,
	name, description string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        name,
		Description: description,
	}, withMetrics(s.metrics, name, withTracing(s.tracer, name, handler)))

	s.toolsMu.Lock()
	s.tools = append(s.tools, name)
	s.toolsMu.Unlock()
}

// mcpSpanPrefix is the prefix for MCP tool span names.
const mcpSpanPrefix = "mcp."

// withTracing wraps an MCP tool handler to create an OTel span per
// invocation.
func withTracing[Input any](
	tracer trace.Tracer,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if tracer == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		ctx, span := tracer.Start(ctx, mcpSpanPrefix+toolName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", toolName)),
		)
		defer span.End()

		return handler(ctx, req, input)
	}
}

// withMetrics wraps an MCP tool handler to record per-call metrics.
func withMetrics[Input any](
	metrics *observability.SessionMetrics,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		start := time.Now()

		result, output, err := handler(ctx, req, input)

		status := "ok"
		if err != nil || (result != nil && result.IsError) {
			status = "error"
		}

		metrics.RecordToolCall(ctx, toolName, status, time.Since(start))

		return result, output, err
	}
}
