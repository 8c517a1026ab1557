package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	out := make(map[string]attribute.Value, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value
	}
	return out
}

func TestTraceEndpointStep(t *testing.T) {
	recorder := withRecorder(t)

	_, span := TraceEndpointStep(context.Background(), "custom", map[string]interface{}{
		"string_attr":  "value",
		"int_attr":     42,
		"int64_attr":   int64(123),
		"bool_attr":    true,
		"float64_attr": 3.14,
		"slice_attr":   []string{"ERP", "VPN"},
		"unknown_attr": struct{}{},
	})
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "endpoint.step.custom", ended[0].Name())

	attrs := attrMap(ended[0].Attributes())
	assert.Equal(t, "custom", attrs["step.name"].AsString())
	assert.Equal(t, "value", attrs["string_attr"].AsString())
	assert.Equal(t, int64(42), attrs["int_attr"].AsInt64())
	assert.Equal(t, int64(123), attrs["int64_attr"].AsInt64())
	assert.True(t, attrs["bool_attr"].AsBool())
	assert.Equal(t, []string{"ERP", "VPN"}, attrs["slice_attr"].AsStringSlice())
	assert.Equal(t, "unknown_type", attrs["unknown_attr"].AsString())
}

func TestTraceHelpers_SpanNames(t *testing.T) {
	recorder := withRecorder(t)
	ctx := context.Background()

	_, s1 := TraceInputParsing(ctx, "json")
	s1.End()
	_, s2 := TraceInputValidation(ctx, "cpf_format", "cpf")
	s2.End()
	_, s3 := TraceDatabaseFind(ctx, "funcionarios", "cpf")
	s3.End()
	_, s4 := TraceDatabaseInsert(ctx, "funcionarios")
	s4.End()
	_, s5 := TraceCacheGet(ctx, "sistemas:all")
	s5.End()
	_, s6 := TraceExternalService(ctx, "kafka", "publish")
	s6.End()
	_, s7 := TraceDatabaseWrite(ctx, "delete", "funcionarios")
	s7.End()

	names := []string{}
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{
		"endpoint.step.parse_input",
		"endpoint.step.validate_input",
		"endpoint.step.database_find",
		"endpoint.step.database_insert",
		"endpoint.step.cache_get",
		"endpoint.step.external_service",
		"endpoint.step.database_delete",
	}, names)
}

func TestRecordErrorInSpan(t *testing.T) {
	recorder := withRecorder(t)

	_, span := TraceEndpointStep(context.Background(), "failing", nil)
	RecordErrorInSpan(span, errors.New("boom"), map[string]interface{}{
		"db.collection": "funcionarios",
	})
	AddSpanAttribute(span, "attempt", 1)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)

	attrs := attrMap(ended[0].Attributes())
	assert.Equal(t, "funcionarios", attrs["db.collection"].AsString())
	assert.Equal(t, int64(1), attrs["attempt"].AsInt64())
}
