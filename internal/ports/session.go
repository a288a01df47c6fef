package ports

import "context"

// Session is a WebSocket session parameterized by the decoded message type
// M, owning one framed connection and delegating encode/decode to a Codec
// (§4.5). All operations may suspend except IsConnected.
type Session[M any] interface {
	Connect(ctx context.Context) error
	SendRaw(ctx context.Context, frame WireMessage) error
	// NextRaw returns (msg, true) or (zero, false) on clean close (§4.5
	// "next_raw() ... return None on clean close").
	NextRaw(ctx context.Context) (WireMessage, bool, error)
	// NextMessage returns (msg, true) for a decoded message, (zero, false)
	// on clean close, skipping codec "ignore silently" decodes internally.
	NextMessage(ctx context.Context) (M, bool, error)
	Subscribe(ctx context.Context, streams []string) error
	Unsubscribe(ctx context.Context, streams []string) error
	Close(ctx context.Context) error
	IsConnected() bool
}
