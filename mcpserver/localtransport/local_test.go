package localtransport_test

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/masamcp/mcpserver/localtransport"
	"github.com/metoro-io/mcp-golang/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoServer answers every request with its method name as a result,
// or with an error for the "fail" method.
func echoServer(t *testing.T, tr *localtransport.Transport) *[]*transport.BaseJsonRpcMessage {
	var mu sync.Mutex
	received := []*transport.BaseJsonRpcMessage{}

	tr.SetMessageHandler(func(ctx context.Context, msg *transport.BaseJsonRpcMessage) {
		mu.Lock()
		received = append(received, msg)
		mu.Unlock()

		if msg.Type != transport.BaseMessageTypeJSONRPCRequestType {
			return
		}
		req := msg.JsonRpcRequest
		go func() {
			var err error
			if req.Method == "fail" {
				err = tr.Send(ctx, transport.NewBaseMessageError(&transport.BaseJSONRPCError{
					Jsonrpc: "2.0",
					Id:      req.Id,
					Error: transport.BaseJSONRPCErrorInner{
						Code:    -32601,
						Message: "method not found: fail",
					},
				}))
			} else {
				result, _ := json.Marshal(map[string]string{"method": req.Method})
				err = tr.Send(ctx, transport.NewBaseMessageResponse(&transport.BaseJSONRPCResponse{
					Jsonrpc: "2.0",
					Id:      req.Id,
					Result:  result,
				}))
			}
			assert.NoError(t, err)
		}()
	})
	return &received
}

func TestStartClose(t *testing.T) {
	tr := localtransport.New()
	assert.NoError(t, tr.Start(context.Background()))

	closed := 0
	tr.SetCloseHandler(func() { closed++ })
	assert.NoError(t, tr.Close())
	assert.NoError(t, tr.Close())
	assert.Equal(t, 2, closed)

	tr.SetCloseHandler(nil)
	assert.NotPanics(t, func() { _ = tr.Close() })
}

func TestHandleMessage_Request(t *testing.T) {
	tr := localtransport.New()
	echoServer(t, tr)
	ctx := context.Background()

	t.Run("numeric id", func(t *testing.T) {
		res, err := tr.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":42,"method":"tools/list"}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"jsonrpc":"2.0","id":42,"result":{"method":"tools/list"}}`, string(res))
	})

	t.Run("string id", func(t *testing.T) {
		res, err := tr.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":"abc","method":"ping"}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"jsonrpc":"2.0","id":"abc","result":{"method":"ping"}}`, string(res))
	})

	t.Run("error response", func(t *testing.T) {
		res, err := tr.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":7,"method":"fail"}`))
		require.NoError(t, err)

		var body struct {
			ID    int `json:"id"`
			Error struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(res, &body))
		assert.Equal(t, 7, body.ID)
		assert.Equal(t, -32601, body.Error.Code)
		assert.Equal(t, "method not found: fail", body.Error.Message)
	})

	t.Run("concurrent", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				body, _ := json.Marshal(map[string]any{"jsonrpc": "2.0", "id": i, "method": "m"})
				res, err := tr.HandleMessage(ctx, body)
				if !assert.NoError(t, err) {
					return
				}
				var got struct {
					ID int `json:"id"`
				}
				assert.NoError(t, json.Unmarshal(res, &got))
				assert.Equal(t, i, got.ID)
			}(i)
		}
		wg.Wait()
	})
}

func TestHandleMessage_Notification(t *testing.T) {
	tr := localtransport.New()
	received := echoServer(t, tr)

	res, err := tr.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
	require.NoError(t, err)
	assert.Nil(t, res)
	require.Len(t, *received, 1)
	assert.Equal(t, transport.BaseMessageTypeJSONRPCNotificationType, (*received)[0].Type)
	assert.Equal(t, "notifications/initialized", (*received)[0].JsonRpcNotification.Method)
}

func TestHandleMessage_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := localtransport.New().HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	assert.ErrorIs(t, err, localtransport.ErrNotStarted)

	tr := localtransport.New()
	echoServer(t, tr)

	_, err = tr.HandleMessage(ctx, []byte(`not json`))
	assert.ErrorIs(t, err, localtransport.ErrInvalidMessage)

	for _, body := range []string{`[1,2]`, `"x"`, `{"jsonrpc":"2.0","id":1,"method":5}`} {
		_, err = tr.HandleMessage(ctx, []byte(body))
		// both the standard and the cockroachdb errors must match
		assert.True(t, stderrors.Is(err, localtransport.ErrInvalidMessage), body)
		assert.True(t, errors.Is(err, localtransport.ErrInvalidMessage), body)
	}
}

func TestHandleMessage_Cancelled(t *testing.T) {
	tr := localtransport.New()
	// never responds
	tr.SetMessageHandler(func(context.Context, *transport.BaseJsonRpcMessage) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSend(t *testing.T) {
	tr := localtransport.New()
	ctx := context.Background()

	err := tr.Send(ctx, transport.NewBaseMessageResponse(&transport.BaseJSONRPCResponse{
		Jsonrpc: "2.0",
		Id:      99,
		Result:  json.RawMessage(`{}`),
	}))
	assert.EqualError(t, err, "no response channel found for key: 99")

	err = tr.Send(ctx, transport.NewBaseMessageNotification(&transport.BaseJSONRPCNotification{
		Jsonrpc: "2.0",
		Method:  "notifications/tools/list_changed",
	}))
	assert.NoError(t, err)
}

func TestServeHTTP(t *testing.T) {
	tr := localtransport.New()
	echoServer(t, tr)

	var mu sync.Mutex
	var reported []error
	tr.SetErrorHandler(func(err error) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, err)
	})

	srv := httptest.NewServer(tr)
	defer srv.Close()

	t.Run("post", func(t *testing.T) {
		resp, err := http.Post(srv.URL, "application/json",
			strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":{"method":"tools/list"}}`, buf.String())
	})

	t.Run("notification", func(t *testing.T) {
		resp, err := http.Post(srv.URL, "application/json",
			strings.NewReader(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	})

	t.Run("get", func(t *testing.T) {
		resp, err := http.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
	})

	t.Run("bad body", func(t *testing.T) {
		resp, err := http.Post(srv.URL, "application/json", strings.NewReader(`{`))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mu.Lock()
		defer mu.Unlock()
		assert.Len(t, reported, 1)
	})
}
