package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	buf.Reset()
	return entry
}

func TestNewLogger_CorrelatesRequestAndSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "apix-test", slog.LevelInfo)

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(WithRequestID(context.Background(), "req-1"), "op")
	defer span.End()

	logger.With(slog.String("clave_rastreo", "ABC123")).InfoContext(ctx, "hello")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "apix-test", entry["service"])
	assert.Equal(t, "ABC123", entry["clave_rastreo"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
}

func TestNewLogger_NoContextNoIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "apix-test", slog.LevelInfo)

	logger.Info("plain")

	entry := decodeLine(t, &buf)
	assert.NotContains(t, entry, "request_id")
	assert.NotContains(t, entry, "trace_id")

	logger.Debug("dropped")
	assert.Zero(t, buf.Len())
}
