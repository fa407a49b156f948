// Package mcpserver exposes the registered tools over the Model Context Protocol,
// either on stdio or as stateless JSON-RPC over HTTP POST.
package mcpserver

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/masamcp/config"
	"github.com/effective-security/masamcp/mcpserver/localtransport"
	"github.com/effective-security/masamcp/tools"
	"github.com/effective-security/xlog"
	mcp "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport"
	"github.com/metoro-io/mcp-golang/transport/stdio"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/masamcp", "mcpserver")

// Version is reported to clients during initialization
const Version = "0.1.0"

// Server is the MCP server
type Server struct {
	cfg       config.ServerConfig
	tools     []tools.IMCPTool
	transport *observedTransport
	local     *localtransport.Transport
	mcp       *mcp.Server

	startOnce sync.Once
	startErr  error
}

// New returns a server for the configured transport with all tools registered.
// Tools are registered before the server starts, so no list_changed
// notification is emitted.
func New(cfg config.ServerConfig, list ...tools.IMCPTool) (*Server, error) {
	s := &Server{
		cfg:   cfg,
		tools: list,
	}

	var tr transport.Transport
	switch cfg.Transport {
	case config.TransportStdio, "":
		tr = stdio.NewStdioServerTransport()
	case config.TransportHTTP:
		s.local = localtransport.New()
		tr = s.local
	default:
		return nil, errors.Errorf("unsupported transport: %q", cfg.Transport)
	}
	s.transport = observe(tr)

	s.mcp = mcp.NewServer(s.transport,
		mcp.WithName(cfg.Name),
		mcp.WithVersion(Version),
	)
	if err := tools.RegisterMCP(s.mcp, list...); err != nil {
		return nil, err
	}
	return s, nil
}

// Tools returns the registered tools
func (s *Server) Tools() []tools.IMCPTool {
	return s.tools
}

// Start connects the protocol to the transport, it is safe to call more than once
func (s *Server) Start() error {
	s.startOnce.Do(func() {
		logger.KV(xlog.INFO,
			"status", "starting",
			"name", s.cfg.Name,
			"version", Version,
			"transport", s.cfg.Transport,
			"tools", len(s.tools),
		)
		if err := s.mcp.Serve(); err != nil {
			s.startErr = errors.WithMessage(err, "failed to start MCP server")
		}
	})
	return s.startErr
}

// Handler returns the HTTP handler serving the JSON-RPC endpoint,
// or nil if the server does not use the http transport.
func (s *Server) Handler() http.Handler {
	if s.local == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle(s.cfg.Endpoint, s.local)
	return mux
}

// Run starts the server and blocks until ctx is done or, for stdio,
// the connection is closed by the client.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	if s.local != nil {
		return s.runHTTP(ctx)
	}

	select {
	case <-ctx.Done():
	case <-s.transport.closed:
	}
	logger.KV(xlog.INFO, "status", "stopped", "transport", s.cfg.Transport)
	return s.transport.Close()
}

func (s *Server) runHTTP(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.KV(xlog.INFO, "status", "listening", "addr", s.cfg.Addr, "endpoint", s.cfg.Endpoint)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.WithMessagef(err, "failed to listen on %s", s.cfg.Addr)
	case <-ctx.Done():
	}

	timeout := time.Duration(s.cfg.ShutdownTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultShutdownTimeoutSeconds * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.KV(xlog.INFO, "status", "shutting_down", "timeout", timeout.String())
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.WithMessage(err, "failed to shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}
	return s.transport.Close()
}

// observedTransport logs transport errors and reports when the connection closes.
type observedTransport struct {
	transport.Transport
	closed chan struct{}
	once   sync.Once
}

func observe(tr transport.Transport) *observedTransport {
	return &observedTransport{
		Transport: tr,
		closed:    make(chan struct{}),
	}
}

func (t *observedTransport) SetCloseHandler(handler func()) {
	t.Transport.SetCloseHandler(func() {
		t.once.Do(func() {
			logger.KV(xlog.INFO, "status", "connection_closed")
			close(t.closed)
		})
		if handler != nil {
			handler()
		}
	})
}

func (t *observedTransport) SetErrorHandler(handler func(error)) {
	t.Transport.SetErrorHandler(func(err error) {
		if isConnectionClosed(err) {
			logger.KV(xlog.INFO, "status", "connection_closed", "reason", err.Error())
		} else {
			logger.KV(xlog.ERROR, "reason", "transport", "err", err.Error())
		}
		if handler != nil {
			handler(err)
		}
	})
}

func isConnectionClosed(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "closed pipe") ||
		strings.Contains(msg, "eof")
}
