package wsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEchoServer starts a loopback WebSocket server that upgrades each
// request and hands the connection to onUpgrade, giving session/reconnect
// tests a real connection to drive instead of a mocked transport.
func newEchoServer(t *testing.T, onUpgrade func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		onUpgrade(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http")
}

func TestSession_ConnectSendReceive(t *testing.T) {
	srv := newEchoServer(t, func(conn *websocket.Conn) {
		defer conn.Close()
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var sub struct {
			Streams []string `json:"streams"`
		}
		_ = json.Unmarshal(data, &sub)

		out, _ := json.Marshal(echoMessage{Stream: sub.Streams[0], Seq: 1})
		_ = conn.WriteMessage(websocket.TextMessage, out)
	})

	sess := NewSession[echoMessage](wsURL(srv.URL), echoCodec{})
	ctx := context.Background()
	require.NoError(t, sess.Connect(ctx))
	require.True(t, sess.IsConnected())

	require.NoError(t, sess.Subscribe(ctx, []string{"btcusdt@ticker"}))

	msg, ok, err := sess.NextMessage(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "btcusdt@ticker", msg.Stream)
}

func TestSession_ConnectIsIdempotent(t *testing.T) {
	srv := newEchoServer(t, func(conn *websocket.Conn) {
		<-time.After(50 * time.Millisecond)
		conn.Close()
	})
	sess := NewSession[echoMessage](wsURL(srv.URL), echoCodec{})
	ctx := context.Background()
	require.NoError(t, sess.Connect(ctx))
	require.NoError(t, sess.Connect(ctx))
}

func TestSession_NextMessageAfterClose_YieldsNone(t *testing.T) {
	srv := newEchoServer(t, func(conn *websocket.Conn) {
		<-time.After(200 * time.Millisecond)
		conn.Close()
	})
	sess := NewSession[echoMessage](wsURL(srv.URL), echoCodec{})
	ctx := context.Background()
	require.NoError(t, sess.Connect(ctx))
	require.NoError(t, sess.Close(ctx))

	_, ok, err := sess.NextMessage(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
