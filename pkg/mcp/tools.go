package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
)

// Tool name constants.
const (
	ToolNameInsert    = "heap_insert"
	ToolNameDeleteMin = "heap_delete_min"
	ToolNameState     = "heap_state"
	ToolNameReset     = "heap_reset"
)

// Tool descriptions surfaced to agents.
const (
	insertToolDescription = "Insert a value into the session min-heap and " +
		"return the full bubble-up step trace (push/compare/swap/done) with " +
		"per-step array snapshots and pseudo-code lines."
	deleteMinToolDescription = "Remove the minimum from the session min-heap " +
		"and return the full bubble-down step trace (removeRoot/swap/pop/" +
		"compare/done). An empty heap yields an empty trace."
	stateToolDescription = "Return the current session heap array in level " +
		"order, its size, and whether the min-heap property holds."
	resetToolDescription = "Reset the session heap, optionally seeding it by " +
		"inserting the given values in order."
)

// Input types (auto-generate JSON schemas via struct tags).

// InsertInput is the input schema for the heap_insert tool.
type InsertInput struct {
	Value int `json:"value" jsonschema:"integer value to insert into the heap"`
}

// DeleteMinInput is the input schema for the heap_delete_min tool.
type DeleteMinInput struct{}

// StateInput is the input schema for the heap_state tool.
type StateInput struct{}

// ResetInput is the input schema for the heap_reset tool.
type ResetInput struct {
	Values []int `json:"values,omitempty" jsonschema:"optional values inserted in order after the reset"`
}

// StepResult is one trace step in tool output form.
type StepResult struct {
	Kind       string         `json:"kind"`
	Highlight  heap.Highlight `json:"highlight"`
	PseudoText string         `json:"pseudoText"`
	Snapshot   []int          `json:"snapshot"`
}

// TraceResult summarizes one executed heap operation.
type TraceResult struct {
	Operation string       `json:"operation"`
	Steps     []StepResult `json:"steps"`
	Heap      []int        `json:"heap"`
	Removed   *int         `json:"removed,omitempty"`
}

// StateResult is the heap_state tool output.
type StateResult struct {
	Heap  []int `json:"heap"`
	Size  int   `json:"size"`
	Valid bool  `json:"valid"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// handleInsert processes heap_insert tool calls.
func (s *Server) handleInsert(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input InsertInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	s.mu.Lock()
	trace := heap.GenerateInsert(s.session, input.Value)
	s.session = heap.Heap(trace.Final())
	s.mu.Unlock()

	s.recordOperation(ctx, "insert", trace)

	return jsonResult(TraceResult{
		Operation: fmt.Sprintf("insert %d", input.Value),
		Steps:     stepResults(trace),
		Heap:      trace.Final(),
	})
}

// handleDeleteMin processes heap_delete_min tool calls.
func (s *Server) handleDeleteMin(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	_ DeleteMinInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	s.mu.Lock()

	removed, ok := s.session.Min()
	trace := heap.GenerateDeleteMin(s.session)

	if !trace.Empty() {
		s.session = heap.Heap(trace.Final())
	}

	after := s.session.Clone()

	s.mu.Unlock()

	s.recordOperation(ctx, "delete-min", trace)

	result := TraceResult{
		Operation: "delete-min",
		Steps:     stepResults(trace),
		Heap:      after,
	}
	if ok {
		result.Removed = &removed
	}

	return jsonResult(result)
}

// handleState processes heap_state tool calls.
func (s *Server) handleState(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	_ StateInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	current := s.SessionHeap()

	return jsonResult(StateResult{
		Heap:  current,
		Size:  current.Len(),
		Valid: current.Valid(),
	})
}

// handleReset processes heap_reset tool calls.
func (s *Server) handleReset(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input ResetInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	s.mu.Lock()

	s.session = heap.Heap{}
	for _, v := range input.Values {
		s.session = heap.Heap(heap.GenerateInsert(s.session, v).Final())
	}

	after := s.session.Clone()

	s.mu.Unlock()

	s.recordOperation(ctx, "reset", nil)

	return jsonResult(StateResult{
		Heap:  after,
		Size:  after.Len(),
		Valid: after.Valid(),
	})
}

// recordOperation feeds session metrics when they are wired.
func (s *Server) recordOperation(ctx context.Context, op string, trace heap.Trace) {
	if s.metrics == nil {
		return
	}

	s.metrics.RecordOperation(ctx, op, len(trace))
}

// stepResults converts trace steps to their tool output form.
func stepResults(trace heap.Trace) []StepResult {
	out := make([]StepResult, len(trace))

	for i, step := range trace {
		out[i] = StepResult{
			Kind:       string(step.Kind),
			Highlight:  heap.HighlightFor(step),
			PseudoText: heap.Describe(step),
			Snapshot:   step.Snapshot,
		}
	}

	return out
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}
