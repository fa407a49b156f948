package masaapi

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
)

// Request describes one call to the Masa API.
// It is built per operation and not modified after being issued.
type Request struct {
	// Path is relative to the base URL and must start with "/"
	Path string
	// Method is HTTP method, GET if empty
	Method string
	// Body is encoded as JSON when not nil
	Body any
	// Query is appended to the URL
	Query url.Values
	// Route is the path template used in metrics,
	// Path is used if empty
	Route string
}

// Validate returns ErrInvalidRequest if the request can not be sent
func (r *Request) Validate() error {
	if r == nil {
		return errors.WithMessage(ErrInvalidRequest, "nil request")
	}
	if !strings.HasPrefix(r.Path, "/") || strings.HasPrefix(r.Path, "//") || strings.Contains(r.Path, "://") {
		return errors.WithMessagef(ErrInvalidRequest, "path must be relative: %q", r.Path)
	}
	return nil
}

func (r *Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(r.Method)
}

func (r *Request) route() string {
	if r.Route != "" {
		return r.Route
	}
	return r.Path
}

// joinURL combines base and path with exactly one slash between them
func joinURL(base, path string, query url.Values) string {
	u := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
