// Package observability wires metrics, tracing hooks, and structured
// logging for heapwalk's served (MCP) mode. One-shot CLI runs stay
// uninstrumented.
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricToolCallsTotal  = "heapwalk.tool.calls.total"
	metricToolDuration    = "heapwalk.tool.duration.seconds"
	metricToolErrorsTotal = "heapwalk.tool.errors.total"
	metricOperationsTotal = "heapwalk.heap.operations.total"
	metricStepsTotal      = "heapwalk.heap.steps.total"

	attrTool   = "tool"
	attrStatus = "status"
	attrOp     = "op"

	statusError = "error"
)

// durationBucketBoundaries covers 0.5ms to 1s; trace generation is
// logarithmic in heap size and never approaches the upper bound.
var durationBucketBoundaries = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1}

// SessionMetrics holds the OTel instruments for one served heap session.
type SessionMetrics struct {
	toolCalls    metric.Int64Counter
	toolDuration metric.Float64Histogram
	toolErrors   metric.Int64Counter
	operations   metric.Int64Counter
	steps        metric.Int64Counter
}

// NewSessionMetrics creates the session instruments from the given meter.
func NewSessionMetrics(mt metric.Meter) (*SessionMetrics, error) {
	b := newMetricBuilder(mt)

	sm := &SessionMetrics{
		toolCalls:    b.counter(metricToolCallsTotal, "Total number of tool calls", "{call}"),
		toolDuration: b.histogram(metricToolDuration, "Tool call duration in seconds", "s", durationBucketBoundaries...),
		toolErrors:   b.counter(metricToolErrorsTotal, "Total number of tool call errors", "{error}"),
		operations:   b.counter(metricOperationsTotal, "Total number of heap operations", "{operation}"),
		steps:        b.counter(metricStepsTotal, "Total number of generated trace steps", "{step}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return sm, nil
}

// RecordToolCall records a completed tool call with its status and duration.
func (sm *SessionMetrics) RecordToolCall(ctx context.Context, tool, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)

	sm.toolCalls.Add(ctx, 1, attrs)
	sm.toolDuration.Record(ctx, duration.Seconds(), attrs)

	if status == statusError {
		sm.toolErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrTool, tool),
		))
	}
}

// RecordOperation records one generated heap operation and its step count.
func (sm *SessionMetrics) RecordOperation(ctx context.Context, op string, stepCount int) {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))

	sm.operations.Add(ctx, 1, attrs)
	sm.steps.Add(ctx, int64(stepCount), attrs)
}
