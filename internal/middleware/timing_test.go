package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	return recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestRequestTiming_Success(t *testing.T) {
	recorder := withSpanRecorder(t)

	router := gin.New()
	router.Use(RequestID(), RequestTiming())

	var startSet bool
	router.GET("/test", func(c *gin.Context) {
		_, startSet = c.Get("request_start_time")
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, startSet)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "http.request", spans[0].Name())

	status, ok := spanAttr(spans[0], "http.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(200), status.AsInt64())

	requestID, ok := spanAttr(spans[0], "http.request_id")
	require.True(t, ok)
	assert.Equal(t, w.Header().Get(RequestIDHeader), requestID.AsString())

	_, isError := spanAttr(spans[0], "http.error")
	assert.False(t, isError)
}

func TestRequestTiming_ClientError(t *testing.T) {
	recorder := withSpanRecorder(t)

	router := gin.New()
	router.Use(RequestTiming())
	router.POST("/cadastrar", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "JSON inválido"})
	})

	req, _ := http.NewRequest("POST", "/cadastrar", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	isError, ok := spanAttr(spans[0], "http.error")
	require.True(t, ok)
	assert.True(t, isError.AsBool())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestRequestTiming_ServerError(t *testing.T) {
	recorder := withSpanRecorder(t)

	router := gin.New()
	router.Use(RequestTiming())
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	req, _ := http.NewRequest("GET", "/boom", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
