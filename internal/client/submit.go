package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/prefeitura-rio/app-cadastro/internal/utils/httpclient"
	"go.uber.org/zap"
)

// SubmitPath is the route registrations are posted to
const SubmitPath = "/cadastrar"

// UndefinedText is displayed when the response carries no message field
const UndefinedText = "undefined"

// ErrNullResponse is returned when the response body is the JSON literal null
var ErrNullResponse = errors.New("response body is null")

// HTTPDoer sends HTTP requests; *http.Client satisfies it
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SubmitEvent is one submit event of the registration form
type SubmitEvent interface {
	// PreventDefault suppresses the native form submission
	PreventDefault()
	// Form returns the values of the submitting form
	Form() FormValues
}

// SubmitDeps are the collaborators of a SubmitHandler
type SubmitDeps struct {
	// BaseURL is prefixed to SubmitPath, e.g. "http://localhost:8080"
	BaseURL string
	// HTTPClient defaults to httpclient.Default()
	HTTPClient HTTPDoer
	// Result receives the server's message
	Result ResultElement
	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// SubmitHandler posts the registration form to the server and shows the reply.
// It keeps no state between calls; concurrent calls are independent and the
// last one to finish owns the result element.
type SubmitHandler struct {
	endpoint string
	client   HTTPDoer
	result   ResultElement
	logger   *zap.Logger
}

// NewSubmitHandler creates a SubmitHandler
func NewSubmitHandler(deps SubmitDeps) *SubmitHandler {
	if deps.HTTPClient == nil {
		deps.HTTPClient = httpclient.Default()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &SubmitHandler{
		endpoint: strings.TrimRight(deps.BaseURL, "/") + SubmitPath,
		client:   deps.HTTPClient,
		result:   deps.Result,
		logger:   deps.Logger,
	}
}

// Endpoint returns the URL registrations are posted to
func (h *SubmitHandler) Endpoint() string {
	return h.endpoint
}

// HandleSubmit handles one submit event: it suppresses the native submission,
// posts the form as JSON and writes the response's message to the result element.
// A failed request or an undecodable body is returned and the result element is
// left as it was. The response status is not inspected.
func (h *SubmitHandler) HandleSubmit(ctx context.Context, ev SubmitEvent) error {
	ev.PreventDefault()

	payload := PayloadFromForm(ev.Form())
	body, err := json.Marshal(payload)
	if err != nil {
		return h.fail(fmt.Errorf("encode payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return h.fail(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return h.fail(fmt.Errorf("post %s: %w", h.endpoint, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return h.fail(fmt.Errorf("read response: %w", err))
	}

	message, err := renderMessage(raw)
	if err != nil {
		return h.fail(fmt.Errorf("decode response: %w", err))
	}

	h.result.SetText(message)
	h.logger.Debug("registration submitted",
		zap.String("endpoint", h.endpoint),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}

func (h *SubmitHandler) fail(err error) error {
	h.logger.Warn("registration submit failed", zap.String("endpoint", h.endpoint), zap.Error(err))
	return err
}

// utf8BOM is skipped before decoding, as browsers do
var utf8BOM = []byte("\xef\xbb\xbf")

// renderMessage decodes a response body and returns the text of its message
// field the way a page script would display it.
func renderMessage(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	// Unmarshal rejects anything after the first value, stray brackets included
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", err
	}

	switch v := decoded.(type) {
	case nil:
		return "", ErrNullResponse
	case map[string]interface{}:
		message, ok := v["message"]
		if !ok {
			return UndefinedText, nil
		}
		return displayText(message), nil
	default:
		// Scalars and arrays have no message property
		return UndefinedText, nil
	}
}

// formatNumber prints a float the way Number.prototype.toString does
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// displayText converts a decoded JSON value to display text
func displayText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return formatNumber(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = displayText(item)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}
