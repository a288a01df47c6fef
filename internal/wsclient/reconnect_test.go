package wsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyServer accepts connections and, for each connection, waits for a
// subscribe frame, sends one ticker message, then (on the first connection
// only) closes abruptly to force the client into its reconnect path.
type flakyServer struct {
	mu          sync.Mutex
	connections int32
	sawResub    chan struct{}
}

func newFlakyServer(t *testing.T) (*httptest.Server, *flakyServer) {
	t.Helper()
	fs := &flakyServer{sawResub: make(chan struct{}, 1)}
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		connNum := atomic.AddInt32(&fs.connections, 1)

		// Each connection expects exactly one subscribe frame first.
		_, _, err = conn.ReadMessage()
		if err != nil {
			return
		}
		if connNum > 1 {
			select {
			case fs.sawResub <- struct{}{}:
			default:
			}
		}

		out, _ := json.Marshal(echoMessage{Stream: "btcusdt@ticker", Seq: int(connNum)})
		_ = conn.WriteMessage(websocket.TextMessage, out)

		if connNum == 1 {
			// Force an abrupt disconnect after the first message so the
			// wrapper must reconnect.
			time.Sleep(20 * time.Millisecond)
			conn.Close()
			return
		}

		// Second connection onward: stay open so the test can read again.
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)
	return srv, fs
}

func TestReconnectWrapper_ResubscribesAfterForcedDisconnect(t *testing.T) {
	srv, fs := newFlakyServer(t)

	inner := NewSession[echoMessage](wsURL(srv.URL), echoCodec{})
	wrapper := NewReconnectWrapper[echoMessage](inner, ReconnectWrapperConfig{
		MaxReconnectAttempts: 5,
		InitialDelay:         10 * time.Millisecond,
		MaxDelay:             50 * time.Millisecond,
		AutoResubscribe:      true,
	})

	ctx := context.Background()
	require.NoError(t, wrapper.Connect(ctx))
	require.NoError(t, wrapper.Subscribe(ctx, []string{"btcusdt@ticker"}))

	first, ok, err := wrapper.NextMessage(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, first.Seq)

	// The first connection closes right after sending its message, so the
	// next NextMessage call must reconnect and resubscribe transparently.
	second, ok, err := wrapper.NextMessage(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, second.Seq)

	select {
	case <-fs.sawResub:
	case <-time.After(time.Second):
		t.Fatal("expected a resubscribe frame on the reconnected session")
	}
}

func TestReconnectWrapper_TerminatesAfterMaxAttempts(t *testing.T) {
	// A server that upgrades and then immediately closes every connection,
	// so every reconnect attempt fails to retain a usable session.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		conn.Close()
	}))
	t.Cleanup(srv.Close)

	inner := NewSession[echoMessage](wsURL(srv.URL), echoCodec{})
	wrapper := NewReconnectWrapper[echoMessage](inner, ReconnectWrapperConfig{
		MaxReconnectAttempts: 2,
		InitialDelay:         5 * time.Millisecond,
		MaxDelay:             10 * time.Millisecond,
		AutoResubscribe:      true,
	})

	ctx := context.Background()
	require.NoError(t, wrapper.Connect(ctx))

	_, _, err := wrapper.NextMessage(ctx)
	require.Error(t, err)

	_, _, err = wrapper.NextMessage(ctx)
	require.Error(t, err, "terminal state must keep surfacing WebSocketError")
}

func TestReconnectWrapper_SubscribeUnsubscribeRoundTrip(t *testing.T) {
	srv := newEchoServer(t, func(conn *websocket.Conn) {
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	inner := NewSession[echoMessage](wsURL(srv.URL), echoCodec{})
	wrapper := NewReconnectWrapper[echoMessage](inner, ReconnectWrapperConfig{AutoResubscribe: true})

	ctx := context.Background()
	require.NoError(t, wrapper.Connect(ctx))
	require.NoError(t, wrapper.Subscribe(ctx, []string{"a", "b"}))
	require.NoError(t, wrapper.Unsubscribe(ctx, []string{"a", "b"}))

	assert.Empty(t, wrapper.trackedStreams(), "subscribe then unsubscribe leaves the tracked set empty (§8 idempotence law)")
}
