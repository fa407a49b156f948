// Package masaapi provides the Masa API client with authentication,
// request logging, retries and cached domain methods.
package masaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/masamcp/pkg/metricskey"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/masamcp", "masaapi")

const (
	// DefaultBaseURL is the Masa API endpoint
	DefaultBaseURL = "https://api.masa.xyz/v1"
	// DefaultTimeout is the per-request timeout
	DefaultTimeout = 30 * time.Second

	maxResponseSize = 16 << 20
)

// Config provides the client settings
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retry   RetryPolicy
	// Transport is the underlying transport, http.DefaultTransport if nil
	Transport http.RoundTripper
}

// Client is the Masa API HTTP client
type Client struct {
	baseURL string
	http    *http.Client
	retry   RetryPolicy
}

var _ Doer = (*Client)(nil)

// NewClient returns a new client.
// The API key is required.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("masa API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	// auth is outermost, so the logger sees and removes the credentials
	rt := &authTransport{
		token: cfg.APIKey,
		base:  &loggingTransport{base: base},
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: rt,
			Timeout:   timeout,
		},
		retry: cfg.Retry.normalized(),
	}, nil
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends the request with retries and decodes JSON response into out
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var body []byte
	if req.Body != nil {
		js, err := json.Marshal(req.Body)
		if err != nil {
			return errors.WithMessagef(ErrInvalidRequest, "unable to encode body: %s", err.Error())
		}
		body = js
	}

	method := req.method()
	route := req.route()
	target := joinURL(c.baseURL, req.Path, req.Query)

	started := time.Now()
	defer metricskey.PerfAPICall.MeasureSince(started, method, route)

	_, err := Retry(ctx, c.policy(method), func(ctx context.Context, attempt int) (struct{}, error) {
		if attempt > 1 {
			metricskey.StatsAPIRequestsRetried.IncrCounter(1, method, route)
		}
		metricskey.StatsAPIRequests.IncrCounter(1, method, route)
		return struct{}{}, c.send(ctx, method, target, body, out)
	})
	if err != nil {
		metricskey.StatsAPIRequestsFailed.IncrCounter(1, method, route)
		return err
	}
	return nil
}

// policy returns the retry policy for the method.
// An undecodable 2xx response is retried only for idempotent methods:
// the server has already accepted the request, and repeating a POST
// would start another job.
func (c *Client) policy(method string) RetryPolicy {
	p := c.retry
	if idempotent(method) {
		return p
	}
	retryable := p.IsRetryable
	p.IsRetryable = func(err error) bool {
		return !errors.Is(err, ErrInvalidResponse) && retryable(err)
	}
	return p
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func (c *Client) send(ctx context.Context, method, target string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	hreq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.WithMessagef(ErrInvalidRequest, "%s", err.Error())
	}

	resp, err := c.http.Do(hreq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return errors.Wrap(err, "unable to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     method,
			URL:        target,
			Body:       data,
		}
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.WithMessagef(ErrInvalidResponse, "unable to decode response from %s: %s", target, err.Error())
		}
	}
	return nil
}
