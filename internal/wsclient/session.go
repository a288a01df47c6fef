// Package wsclient implements the kernel's WebSocket session (§4.5): a
// framed connection owner that delegates encode/decode to a ports.Codec,
// plus a reconnection wrapper that transparently restores subscriptions
// after transport loss. Built on gorilla/websocket (grounded in the
// teacher's indirect dependency via go-binance's futures.WsKlineServe, and
// in numerous other pack repos).
package wsclient

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"connectorkit/internal/kerrors"
	"connectorkit/internal/ports"
)

// controlFrameDeadline bounds how long a control-frame write (pong, close)
// may block before giving up.
const controlFrameDeadline = 5 * time.Second

func deadlineNow() time.Time { return time.Now().Add(controlFrameDeadline) }

// Session implements ports.Session[M] over one gorilla/websocket connection.
// It does not manage subscription state beyond sending/receiving frames;
// that bookkeeping belongs to ReconnectWrapper (§4.5).
type Session[M any] struct {
	url   string
	codec ports.Codec[M]

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
}

func NewSession[M any](url string, codec ports.Codec[M]) *Session[M] {
	return &Session[M]{url: url, codec: codec}
}

// Connect establishes the framed connection. Idempotent once connected
// (§4.5).
func (s *Session[M]) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected {
		return nil
	}

	dialer := websocket.Dialer{}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return kerrors.Wrap(kerrors.NetworkError, "websocket dial failed", err)
	}

	// The transport auto-replies to pings with pongs and never surfaces
	// them to NextRaw callers (§4.5, §6). gorilla/websocket answers pings
	// automatically by default; we only need to ensure pongs never reach
	// ReadMessage's caller as a data frame, which they structurally can't
	// (pongs are a distinct opcode handled by PongHandler, not returned
	// from ReadMessage).
	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(websocket.PongMessage, []byte(appData), deadlineNow())
	})

	s.conn = conn
	s.connected = true
	return nil
}

// SendRaw sends one frame; error if not connected (§4.5).
func (s *Session[M]) SendRaw(ctx context.Context, frame ports.WireMessage) error {
	s.mu.Lock()
	conn := s.conn
	connected := s.connected
	s.mu.Unlock()

	if !connected || conn == nil {
		return kerrors.New(kerrors.WebSocketError, "send_raw: session not connected")
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame.Data); err != nil {
		return kerrors.Wrap(kerrors.WebSocketError, "send_raw: write failed", err)
	}
	return nil
}

// NextRaw awaits one text frame, returning (msg, true, nil) on success,
// (zero, false, nil) on clean close (§4.5, §8 "next_message() after
// close() yields None").
func (s *Session[M]) NextRaw(ctx context.Context) (ports.WireMessage, bool, error) {
	s.mu.Lock()
	conn := s.conn
	connected := s.connected
	s.mu.Unlock()

	if !connected || conn == nil {
		return ports.WireMessage{}, false, nil
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.markDisconnected()
				return ports.WireMessage{}, false, nil
			}
			s.markDisconnected()
			return ports.WireMessage{}, false, kerrors.Wrap(kerrors.WebSocketError, "next_raw: read failed", err)
		}
		if msgType != websocket.TextMessage {
			// Non-text frames (besides ping/pong, already intercepted by
			// gorilla's control-frame dispatch) are ignored silently here,
			// mirroring the codec's own "None" contract one layer up.
			continue
		}
		return ports.WireMessage{Data: data}, true, nil
	}
}

// NextMessage awaits one frame, decodes via the codec, and skips "ignore
// silently" decodes (§4.4, §4.5).
func (s *Session[M]) NextMessage(ctx context.Context) (M, bool, error) {
	var zero M
	for {
		raw, ok, err := s.NextRaw(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			return zero, false, nil
		}
		msg, decoded, err := s.codec.DecodeMessage(raw)
		if err != nil {
			return zero, false, kerrors.Wrap(kerrors.DeserializationError, "next_message: codec decode failed", err)
		}
		if !decoded {
			continue
		}
		return msg, true, nil
	}
}

// Subscribe codec-encodes and sends; adapter-side effect only (§4.5) — the
// Session itself tracks no subscription state.
func (s *Session[M]) Subscribe(ctx context.Context, streams []string) error {
	frame, err := s.codec.EncodeSubscription(streams)
	if err != nil {
		return kerrors.Wrap(kerrors.SerializationError, "encode subscription", err)
	}
	return s.SendRaw(ctx, frame)
}

func (s *Session[M]) Unsubscribe(ctx context.Context, streams []string) error {
	frame, err := s.codec.EncodeUnsubscription(streams)
	if err != nil {
		return kerrors.Wrap(kerrors.SerializationError, "encode unsubscription", err)
	}
	return s.SendRaw(ctx, frame)
}

// Close sends a close frame and marks disconnected (§4.5). This is the
// cooperative shutdown path; it must be awaited to completion for a clean
// shutdown (§5).
func (s *Session[M]) Close(ctx context.Context) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return nil
	}
	err := conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadlineNow())
	closeErr := conn.Close()
	s.markDisconnected()
	if err != nil {
		return kerrors.Wrap(kerrors.WebSocketError, "close: write close frame failed", err)
	}
	if closeErr != nil {
		return kerrors.Wrap(kerrors.WebSocketError, "close: underlying conn close failed", closeErr)
	}
	return nil
}

func (s *Session[M]) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *Session[M]) markDisconnected() {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()
}

var _ ports.Session[struct{}] = (*Session[struct{}])(nil)
