package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const snippetLimit = 200

// HTTPClient is the transport the gateway talks through. Tests substitute
// their own.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Gateway is the single chokepoint for calls to the pizzaria backend. It owns
// header defaults, JSON decoding and error normalization, and nothing else:
// no session storage, no rendering, exactly one network call per Request and
// never a retry.
type Gateway struct {
	baseURL string
	client  HTTPClient
	timeout time.Duration
	logger  *logrus.Logger
}

func NewGateway(baseURL string, client HTTPClient, timeout time.Duration, logger *logrus.Logger) *Gateway {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

// RequestOptions tune a single call. Headers override the defaults.
type RequestOptions struct {
	Body    interface{}
	Token   string
	Headers map[string]string
}

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Response is a parsed JSON reply. Raw keeps the full body for typed decoding.
type Response struct {
	StatusCode int
	Success    bool
	Raw        json.RawMessage

	failure string
}

// FailureMessage returns the backend-supplied error text, or "" when the
// body carried none. The current backend reports failures in an "error"
// field; its predecessor used "message", so both are honored.
func (r *Response) FailureMessage() string {
	return r.failure
}

// Decode unmarshals the response body into v. A body that does not fit the
// expected shape is a protocol violation, not an API failure.
func (r *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return &ProtocolError{StatusCode: r.StatusCode, Snippet: truncate(r.Raw)}
	}
	return nil
}

// Request performs one HTTP call against the backend and normalizes the
// outcome. Failures are always a *NetworkError, *ProtocolError or *APIError.
func (g *Gateway) Request(ctx context.Context, method, path string, opts *RequestOptions) (*Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	url := g.baseURL + path

	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "encode request body for %s", path)
		}
		body = bytes.NewReader(payload)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", path)
	}

	req.Header.Set("Content-Type", "application/json")
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	requestID := uuid.NewString()
	started := time.Now()
	g.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
	}).Debug("api request")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	g.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"duration":   time.Since(started).Round(time.Millisecond).String(),
	}).Debug("api response")

	result := &Response{StatusCode: resp.StatusCode}

	if len(raw) > 0 {
		contentType := resp.Header.Get("Content-Type")
		if !strings.Contains(contentType, "application/json") {
			return nil, &ProtocolError{StatusCode: resp.StatusCode, Snippet: truncate(raw)}
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, &ProtocolError{StatusCode: resp.StatusCode, Snippet: truncate(raw)}
		}
		result.Success = env.Success
		result.Raw = raw
		result.failure = env.Error
		if result.failure == "" {
			result.failure = env.Message
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, result.failure)
	}
	return result, nil
}

func truncate(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > snippetLimit {
		return s[:snippetLimit] + "..."
	}
	return s
}
