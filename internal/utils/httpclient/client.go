package httpclient

import (
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Options tunes the transport of a client built by New
type Options struct {
	// Timeout bounds the whole exchange; zero leaves it to the caller's context
	Timeout             time.Duration
	MaxIdleConnsPerHost int
}

// New creates an HTTP client whose transport records an OpenTelemetry span per request
func New(opts Options) *http.Client {
	if opts.MaxIdleConnsPerHost <= 0 {
		opts.MaxIdleConnsPerHost = 10
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: otelhttp.NewTransport(transport),
	}
}

var (
	defaultClient *http.Client
	once          sync.Once
)

// Default returns the shared client used when none is injected
func Default() *http.Client {
	once.Do(func() {
		defaultClient = New(Options{})
	})
	return defaultClient
}
