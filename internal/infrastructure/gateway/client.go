// Package gateway maps the backend REST endpoints to typed Go calls. Gateways
// add no semantics: optional parameters are dropped when empty and errors
// are returned uninterpreted as *APIError or a wrapped transport error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/pkg/metrics"
)

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int               `json:"status"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

func (e *APIError) HTTPStatus() int       { return e.Status }
func (e *APIError) ServerMessage() string { return e.Message }

// FieldErrors returns the backend's per-field messages, if any.
func (e *APIError) FieldErrors() map[string]string { return e.Errors }

// IsConflict reports whether err is a 409 from the backend.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

// Client issues JSON requests below one base URL.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	tokens  ports.TokenSource
	log     zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokens attaches a bearer credential from ts to every request.
func WithTokens(ts ports.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient builds a client for baseURL. name labels metrics and logs.
func NewClient(name, baseURL string, opts ...Option) *Client {
	c := &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call describes one backend request.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
}

func (c *Client) do(ctx context.Context, rq call, out any) error {
	start := time.Now()
	code := "transport"
	defer func() {
		metrics.GatewayRequestsTotal.WithLabelValues(c.name, rq.op, code).Inc()
		metrics.GatewayRequestDuration.WithLabelValues(c.name, rq.op).Observe(time.Since(start).Seconds())
	}()

	target := c.baseURL + rq.path
	if len(rq.query) > 0 {
		target += "?" + rq.query.Encode()
	}

	var body io.Reader
	if rq.body != nil {
		raw, err := json.Marshal(rq.body)
		if err != nil {
			return fmt.Errorf("%s.%s: encode body: %w", c.name, rq.op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, rq.method, target, body)
	if err != nil {
		return fmt.Errorf("%s.%s: build request: %w", c.name, rq.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("%s.%s: credential: %w", c.name, rq.op, err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("op", rq.op).Str("method", rq.method).Str("path", rq.path).Msg("backend unreachable")
		return fmt.Errorf("%s.%s: %w", c.name, rq.op, err)
	}
	defer resp.Body.Close()

	code = strconv.Itoa(resp.StatusCode)
	c.log.Debug().
		Str("op", rq.op).
		Str("method", rq.method).
		Str("path", rq.path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("backend call")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s.%s: read body: %w", c.name, rq.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if text, ok := out.(*string); ok {
		*text = string(raw)
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s.%s: decode response: %w", c.name, rq.op, err)
	}
	return nil
}

// decodeAPIError reads the backend's {message, errors} body. A body that
// is not JSON leaves the message empty.
func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}
	var payload struct {
		Message string         `json:"message"`
		Errors  map[string]any `json:"errors"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		apiErr.Message = payload.Message
		if len(payload.Errors) > 0 {
			apiErr.Errors = make(map[string]string, len(payload.Errors))
			for field, v := range payload.Errors {
				apiErr.Errors[field] = fmt.Sprint(v)
			}
		}
	}
	return apiErr
}

// query collects optional parameters, dropping empty ones.
type query url.Values

func (q query) str(key, v string) query {
	if v != "" {
		url.Values(q).Set(key, v)
	}
	return q
}

func (q query) float(key string, v float64) query {
	if v != 0 {
		url.Values(q).Set(key, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return q
}

func (q query) id(key string, v *int64) query {
	if v != nil {
		url.Values(q).Set(key, strconv.FormatInt(*v, 10))
	}
	return q
}

func (q query) values() url.Values { return url.Values(q) }

func path(format string, args ...any) string {
	for i, a := range args {
		if s, ok := a.(string); ok {
			args[i] = url.PathEscape(s)
		}
	}
	return fmt.Sprintf(format, args...)
}
