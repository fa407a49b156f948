// Package localtransport provides a stateless request/response transport for
// the MCP server. Every inbound JSON-RPC request is dispatched to the server
// and the caller blocks until the matching response is sent back, which makes
// it suitable both for plain HTTP POST handling and for in-process calls.
package localtransport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/metoro-io/mcp-golang/transport"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/masamcp/mcpserver", "localtransport")

// MaxBodySize is the largest request body accepted by ServeHTTP
const MaxBodySize = 4 << 20

var (
	// ErrNotStarted is returned when a message arrives before the server set a handler
	ErrNotStarted = errors.New("transport is not started")
	// ErrInvalidMessage is returned for a body that is not a JSON-RPC message
	ErrInvalidMessage = errors.New("invalid JSON-RPC message")
)

// Transport implements transport.Transport for request/response exchanges
type Transport struct {
	messageHandler func(ctx context.Context, message *transport.BaseJsonRpcMessage)
	errorHandler   func(error)
	closeHandler   func()

	mu      sync.RWMutex
	pending map[transport.RequestId]chan *transport.BaseJsonRpcMessage
	counter atomic.Int64
}

// New returns a local transport
func New() *Transport {
	return &Transport{
		pending: make(map[transport.RequestId]chan *transport.BaseJsonRpcMessage),
	}
}

// Start does nothing: the transport is driven by HandleMessage
func (t *Transport) Start(_ context.Context) error {
	return nil
}

// Close invokes the close handler, if any
func (t *Transport) Close() error {
	t.mu.RLock()
	handler := t.closeHandler
	t.mu.RUnlock()

	if handler != nil {
		handler()
	}
	return nil
}

// SetCloseHandler implements Transport.SetCloseHandler
func (t *Transport) SetCloseHandler(handler func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeHandler = handler
}

// SetErrorHandler implements Transport.SetErrorHandler
func (t *Transport) SetErrorHandler(handler func(error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errorHandler = handler
}

// SetMessageHandler implements Transport.SetMessageHandler
func (t *Transport) SetMessageHandler(handler func(ctx context.Context, message *transport.BaseJsonRpcMessage)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messageHandler = handler
}

// Send delivers a response or an error to the pending HandleMessage call.
// Notifications and server initiated requests have no waiting caller and are dropped.
func (t *Transport) Send(ctx context.Context, message *transport.BaseJsonRpcMessage) error {
	var key transport.RequestId
	switch message.Type {
	case transport.BaseMessageTypeJSONRPCResponseType:
		key = message.JsonRpcResponse.Id
	case transport.BaseMessageTypeJSONRPCErrorType:
		key = message.JsonRpcError.Id
	default:
		logger.ContextKV(ctx, xlog.DEBUG, "status", "dropped", "type", message.Type)
		return nil
	}

	t.mu.RLock()
	ch := t.pending[key]
	t.mu.RUnlock()

	if ch == nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"type", message.Type,
			"key", key,
			"err", "no response channel found",
		)
		return errors.Errorf("no response channel found for key: %d", key)
	}
	// the channel is buffered and receives exactly one message
	ch <- message
	return nil
}

// HandleMessage dispatches one JSON-RPC message to the server.
// For requests it blocks until the response is sent and returns it with the
// caller's original id. For notifications and client responses it returns nil.
func (t *Transport) HandleMessage(ctx context.Context, body []byte) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, invalid(err, "message")
	}

	t.mu.RLock()
	handler := t.messageHandler
	t.mu.RUnlock()
	if handler == nil {
		return nil, ErrNotStarted
	}

	_, hasMethod := fields["method"]
	originalID, hasID := fields["id"]

	switch {
	case hasMethod && hasID:
		return t.handleRequest(ctx, handler, fields, originalID)
	case hasMethod:
		var notification transport.BaseJSONRPCNotification
		if err := json.Unmarshal(body, &notification); err != nil {
			return nil, invalid(err, "notification")
		}
		handler(ctx, transport.NewBaseMessageNotification(&notification))
	case fields["error"] != nil:
		var rpcErr transport.BaseJSONRPCError
		if err := json.Unmarshal(body, &rpcErr); err != nil {
			return nil, invalid(err, "error")
		}
		handler(ctx, transport.NewBaseMessageError(&rpcErr))
	default:
		var response transport.BaseJSONRPCResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, invalid(err, "response")
		}
		handler(ctx, transport.NewBaseMessageResponse(&response))
	}
	return nil, nil
}

func (t *Transport) handleRequest(
	ctx context.Context,
	handler func(ctx context.Context, message *transport.BaseJsonRpcMessage),
	fields map[string]json.RawMessage,
	originalID json.RawMessage,
) (json.RawMessage, error) {
	key := transport.RequestId(t.counter.Add(1))
	ch := make(chan *transport.BaseJsonRpcMessage, 1)

	t.mu.Lock()
	t.pending[key] = ch
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		delete(t.pending, key)
		t.mu.Unlock()
	}()

	// the caller id may be a string, the server only works with numeric ids
	fields["id"], _ = json.Marshal(key)
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var request transport.BaseJSONRPCRequest
	if err = json.Unmarshal(data, &request); err != nil {
		return nil, invalid(err, "request")
	}

	handler(ctx, transport.NewBaseMessageRequest(&request))

	select {
	case msg := <-ch:
		return restoreID(msg, originalID)
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	}
}

func invalid(err error, kind string) error {
	return errors.WithMessagef(ErrInvalidMessage, "%s: %s", kind, err.Error())
}

func restoreID(msg *transport.BaseJsonRpcMessage, id json.RawMessage) (json.RawMessage, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal response")
	}
	var fields map[string]json.RawMessage
	if err = json.Unmarshal(data, &fields); err != nil {
		return nil, errors.WithStack(err)
	}
	fields["id"] = id
	data, err = json.Marshal(fields)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}

// ServeHTTP handles a JSON-RPC message sent with POST
func (t *Transport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Only POST method is supported", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	response, err := t.HandleMessage(r.Context(), body)
	if err != nil {
		t.reportError(err)
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidMessage) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	if response == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(response)
}

func (t *Transport) reportError(err error) {
	logger.KV(xlog.ERROR, "reason", "handle_message", "err", err.Error())

	t.mu.RLock()
	handler := t.errorHandler
	t.mu.RUnlock()
	if handler != nil {
		handler(err)
	}
}
