package masaapi

import (
	"net/http"
	"time"

	"github.com/effective-security/masamcp/utils"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
)

// HeaderResponseTime is reported by the API with the processing time
const HeaderResponseTime = "X-Response-Time"

// sensitiveHeaders are removed before headers are logged
var sensitiveHeaders = []string{
	"Authorization",
	"Proxy-Authorization",
	"Cookie",
	"Set-Cookie",
	"X-Api-Key",
}

// SanitizeHeaders returns a copy of the headers without credentials
func SanitizeHeaders(h http.Header) http.Header {
	res := h.Clone()
	if res == nil {
		return http.Header{}
	}
	for _, name := range sensitiveHeaders {
		res.Del(name)
	}
	return res
}

// authTransport adds the bearer token and JSON headers
type authTransport struct {
	token string
	base  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+t.token)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(r)
}

// loggingTransport logs each request and its outcome
type loggingTransport struct {
	base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	started := time.Now()
	requestID := uuid.NewString()
	target := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path

	logger.ContextKV(ctx, xlog.INFO,
		"status", "api_request",
		"request_id", requestID,
		"method", req.Method,
		"url", target,
		"query", req.URL.RawQuery,
		"headers", utils.ToJSON(SanitizeHeaders(req.Header)),
		"body_size", req.ContentLength,
	)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"status", "api_error",
			"request_id", requestID,
			"method", req.Method,
			"url", target,
			"duration", time.Since(started).String(),
			"err", err.Error(),
		)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.ContextKV(ctx, xlog.ERROR,
			"status", "api_error",
			"request_id", requestID,
			"method", req.Method,
			"url", target,
			"code", resp.StatusCode,
			"status_text", http.StatusText(resp.StatusCode),
			"duration", time.Since(started).String(),
			"err", resp.Status,
		)
		return resp, nil
	}

	responseTime := resp.Header.Get(HeaderResponseTime)
	if responseTime == "" {
		responseTime = "N/A"
	}
	logger.ContextKV(ctx, xlog.INFO,
		"status", "api_response",
		"request_id", requestID,
		"method", req.Method,
		"url", target,
		"code", resp.StatusCode,
		"status_text", http.StatusText(resp.StatusCode),
		"duration", time.Since(started).String(),
		"response_time", responseTime,
		"headers", utils.ToJSON(SanitizeHeaders(resp.Header)),
	)
	return resp, nil
}
