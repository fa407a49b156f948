package masaapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidRequest is returned for requests that are never sent
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidResponse is returned when a 2xx response body can not be decoded
	ErrInvalidResponse = errors.New("invalid response")
)

// StatusError is returned when the API responds with non-2xx status
type StatusError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
	if len(e.Body) > 0 {
		body := e.Body
		if len(body) > 256 {
			body = body[:256]
		}
		msg += ": " + string(body)
	}
	return msg
}

// IsClientError returns true for 4xx status other than 429
func (e *StatusError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

// StatusCode returns HTTP status of the error, or 0 if the error
// is not caused by a response
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsRetryable returns false for client errors, invalid requests and
// cancelled calls. Network errors, timeouts, 5xx, 429 and unknown
// errors are retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) && se.IsClientError() {
		return false
	}
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
