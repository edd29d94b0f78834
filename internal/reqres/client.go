package reqres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Doer performs a single HTTP round trip. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Connectivity reports the latest known reachability.
type Connectivity interface {
	IsConnected() bool
}

// Client talks to the reqres HTTP API.
type Client struct {
	baseURL      *url.URL
	http         Doer
	connectivity Connectivity
	limiter      *rate.Limiter
	timeout      time.Duration
	userAgent    string
	apiKey       string
	logger       *zap.Logger
}

const (
	DefaultBaseURL   = "https://reqres.in/api"
	defaultUserAgent = "userdesk/0.1"
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 1 << 20
	apiKeyHeader     = "x-api-key"
	requestIDHeader  = "X-Request-Id"
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. Tests use it to inject fakes.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithConnectivity makes the client fail fast while offline.
func WithConnectivity(conn Connectivity) Option {
	return func(c *Client) { c.connectivity = conn }
}

// WithTimeout sets the timeout used when a call passes zero.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAPIKey sends key in the x-api-key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = strings.TrimSpace(key) }
}

// WithRateLimit paces outgoing requests. rps <= 0 disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client rooted at baseURL. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns a copy of the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do performs one request against path and decodes a 2xx body into T.
// body, when non-nil, is sent as JSON. A zero timeout uses the client
// default. Every failure is a *RequestError; nothing is retried.
func Do[T any](ctx context.Context, c *Client, method, path string, body any, timeout time.Duration) (T, error) {
	var zero T
	if c == nil {
		return zero, ErrInvalidURL
	}
	raw, err := c.send(ctx, method, path, body, timeout)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Warn("decode response failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return zero, ErrInvalidData
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, timeout time.Duration) ([]byte, error) {
	reqURL, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	if c.connectivity != nil && !c.connectivity.IsConnected() {
		c.logger.Debug("skipping request while offline", zap.String("method", method), zap.String("path", path))
		return nil, ErrNoConnectivity
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, ErrInvalidData
		}
		payload = bytes.NewReader(encoded)
	}

	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	requestID := uuid.NewString()
	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fail(log, classifyWait(ctx, err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return nil, ErrInvalidURL
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fail(log, classifyTransport(err))
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug("request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if reqErr := classifyStatus(resp.StatusCode); reqErr != nil {
		return nil, fail(log, reqErr)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fail(log, classifyTransport(err))
	}
	return raw, nil
}

func fail(log *zap.Logger, err *RequestError) *RequestError {
	log.Warn("request failed", zap.Stringer("kind", err.Kind), zap.Error(err))
	return err
}

func (c *Client) resolve(path string) (*url.URL, error) {
	rel, err := url.Parse(strings.TrimSpace(path))
	if err != nil || rel.IsAbs() || rel.Host != "" || rel.Path == "" {
		return nil, ErrInvalidURL
	}
	u := c.baseURL.JoinPath(rel.Path)
	u.RawQuery = rel.RawQuery
	return u, nil
}

// classifyStatus returns nil for 2xx responses.
func classifyStatus(code int) *RequestError {
	switch {
	case code >= 200 && code <= 299:
		return nil
	case code == http.StatusUnauthorized, code == http.StatusNotFound:
		return ServerError(code)
	case code >= 500 && code <= 599:
		return ServerError(code)
	default:
		return ErrInvalidResponse
	}
}

func classifyTransport(err error) *RequestError {
	if reqErr, ok := AsRequestError(err); ok {
		return reqErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	if isOffline(err) {
		return ErrNoConnectivity
	}
	return TransportError(err.Error())
}

// isOffline reports transport errors that mean the host has no usable
// network, as opposed to the remote end misbehaving.
func isOffline(err error) bool {
	if errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETDOWN) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsTemporary
}

// classifyWait maps a limiter wait failure. rate.Limiter reports a wait
// that would overrun the deadline before the deadline actually passes.
func classifyWait(ctx context.Context, err error) *RequestError {
	if errors.Is(ctx.Err(), context.Canceled) {
		return TransportError(ctx.Err().Error())
	}
	if _, ok := ctx.Deadline(); ok {
		return ErrTimeout
	}
	return TransportError(err.Error())
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	u, err := url.Parse(trimmed)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
