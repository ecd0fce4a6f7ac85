package observability_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/heapwalk/pkg/observability"
)

func TestSessionMetrics(t *testing.T) {
	t.Parallel()

	t.Run("records_through_prometheus_pipeline", func(t *testing.T) {
		t.Parallel()

		provider, handler, err := observability.NewPrometheus()
		require.NoError(t, err)

		metrics, err := observability.NewSessionMetrics(provider.Meter("heapwalk-test"))
		require.NoError(t, err)

		ctx := context.Background()
		metrics.RecordToolCall(ctx, "heap_insert", "ok", 2*time.Millisecond)
		metrics.RecordToolCall(ctx, "heap_insert", "error", time.Millisecond)
		metrics.RecordOperation(ctx, "insert", 6)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

		require.Equal(t, 200, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "heapwalk_tool_calls")
		assert.Contains(t, body, "heapwalk_heap_steps")
		assert.Contains(t, body, "heapwalk_tool_errors")
	})

	t.Run("registries_are_independent", func(t *testing.T) {
		t.Parallel()

		_, first, err := observability.NewPrometheus()
		require.NoError(t, err)

		_, second, err := observability.NewPrometheus()
		require.NoError(t, err)

		assert.NotNil(t, first)
		assert.NotNil(t, second)
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, false)
	logger.Debug("hidden")
	logger.Info("visible", "tool", "heap_insert")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "heap_insert")

	debugBuf := bytes.Buffer{}
	observability.NewLogger(&debugBuf, true).Debug("shown")
	assert.Contains(t, debugBuf.String(), "shown")
}
