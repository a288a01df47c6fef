package wsclient

import (
	"context"
	"sync"
	"time"

	"github.com/jpillora/backoff"

	"connectorkit/internal/kerrors"
	"connectorkit/internal/ports"
)

// state is the reconnect wrapper's lifecycle (§9 "Subscription state
// machine"): Disconnected -> Connecting -> Connected -> Reconnecting ->
// Terminated, with Connected -> Reconnecting on stream error and * ->
// Terminated on explicit close.
type state int

const (
	stateDisconnected state = iota
	stateConnecting
	stateConnected
	stateReconnecting
	stateTerminated
)

// ReconnectWrapperConfig configures the reconnection policy (§4.5).
type ReconnectWrapperConfig struct {
	MaxReconnectAttempts int           // default 10
	InitialDelay         time.Duration // default 500ms
	MaxDelay             time.Duration // default 30s
	AutoResubscribe      bool
}

func (c ReconnectWrapperConfig) withDefaults() ReconnectWrapperConfig {
	if c.MaxReconnectAttempts <= 0 {
		c.MaxReconnectAttempts = 10
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = 500 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	return c
}

// ReconnectWrapper composes over any ports.Session[M], transparently
// restoring subscriptions after transport loss (§4.5). It owns the set of
// currently-subscribed stream identifiers; its lifetime equals the
// consumer goroutine that owns it, and it is not safe for concurrent use
// from multiple goroutines (§5 "not Sync — owned exclusively by the
// consumer task").
type ReconnectWrapper[M any] struct {
	inner  ports.Session[M]
	cfg    ReconnectWrapperConfig
	boff   *backoff.Backoff

	mu      sync.Mutex // guards tracked only; state/attempts are consumer-goroutine-owned
	tracked map[string]struct{}

	state    state
	attempts int
}

func NewReconnectWrapper[M any](inner ports.Session[M], cfg ReconnectWrapperConfig) *ReconnectWrapper[M] {
	cfg = cfg.withDefaults()
	return &ReconnectWrapper[M]{
		inner: inner,
		cfg:   cfg,
		boff: &backoff.Backoff{
			Min:    cfg.InitialDelay,
			Max:    cfg.MaxDelay,
			Factor: 2,
			Jitter: true,
		},
		tracked: make(map[string]struct{}),
		state:   stateDisconnected,
	}
}

func (w *ReconnectWrapper[M]) Connect(ctx context.Context) error {
	w.state = stateConnecting
	if err := w.inner.Connect(ctx); err != nil {
		w.state = stateReconnecting
		return err
	}
	w.state = stateConnected
	w.boff.Reset()
	w.attempts = 0
	return nil
}

func (w *ReconnectWrapper[M]) SendRaw(ctx context.Context, frame ports.WireMessage) error {
	return w.inner.SendRaw(ctx, frame)
}

func (w *ReconnectWrapper[M]) NextRaw(ctx context.Context) (ports.WireMessage, bool, error) {
	return w.inner.NextRaw(ctx)
}

// trackedStreams returns the current subscription set as a slice, in no
// particular order (the Open Question on dedup is resolved in SPEC_FULL:
// duplicates merge into a set).
func (w *ReconnectWrapper[M]) trackedStreams() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	streams := make([]string, 0, len(w.tracked))
	for s := range w.tracked {
		streams = append(streams, s)
	}
	return streams
}

// Subscribe updates the tracked set before delegating to the inner session
// (§4.5 "On subscribe/unsubscribe, update tracked set before or after
// delegating").
func (w *ReconnectWrapper[M]) Subscribe(ctx context.Context, streams []string) error {
	w.mu.Lock()
	for _, s := range streams {
		w.tracked[s] = struct{}{}
	}
	w.mu.Unlock()
	return w.inner.Subscribe(ctx, streams)
}

// Unsubscribe removes from the tracked set after a successful delegate
// call, so a failed unsubscribe leaves the tracked set reflecting reality.
func (w *ReconnectWrapper[M]) Unsubscribe(ctx context.Context, streams []string) error {
	if err := w.inner.Unsubscribe(ctx, streams); err != nil {
		return err
	}
	w.mu.Lock()
	for _, s := range streams {
		delete(w.tracked, s)
	}
	w.mu.Unlock()
	return nil
}

// NextMessage awaits one decoded message, transparently reconnecting and
// resubscribing on transport failure (§4.5). After max attempts are
// exhausted, it surfaces a terminal WebSocketError and the wrapper moves to
// Terminated (§8 boundary case).
func (w *ReconnectWrapper[M]) NextMessage(ctx context.Context) (M, bool, error) {
	var zero M
	for {
		if w.state == stateTerminated {
			return zero, false, kerrors.New(kerrors.WebSocketError, "reconnect wrapper: terminated after exhausting reconnect attempts")
		}

		msg, ok, err := w.inner.NextMessage(ctx)
		if err == nil && ok {
			w.boff.Reset()
			w.attempts = 0
			return msg, true, nil
		}
		if err == nil && !ok {
			// Clean close; treat the same as a transport error for
			// reconnection purposes unless auto-reconnect is exhausted.
			err = kerrors.New(kerrors.WebSocketError, "reconnect wrapper: stream ended")
		}

		if reconErr := w.reconnect(ctx); reconErr != nil {
			return zero, false, reconErr
		}
		// loop and try NextMessage again on the freshly reconnected session
	}
}

func (w *ReconnectWrapper[M]) reconnect(ctx context.Context) error {
	w.state = stateReconnecting
	for {
		if w.attempts >= w.cfg.MaxReconnectAttempts {
			w.state = stateTerminated
			return kerrors.New(kerrors.WebSocketError, "reconnect wrapper: max reconnect attempts exceeded")
		}

		delay := w.boff.Duration()
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return kerrors.Wrap(kerrors.WebSocketError, "reconnect wrapper: context canceled during backoff", ctx.Err())
		}

		w.attempts++
		if err := w.inner.Connect(ctx); err != nil {
			continue
		}

		if w.cfg.AutoResubscribe {
			streams := w.trackedStreams()
			if len(streams) > 0 {
				if err := w.inner.Subscribe(ctx, streams); err != nil {
					continue
				}
			}
		}

		// Attempts and backoff are reset by NextMessage on the first message
		// received after this reconnect, not here: a dial that succeeds but
		// whose stream fails at once still counts toward the limit.
		w.state = stateConnected
		return nil
	}
}

func (w *ReconnectWrapper[M]) Close(ctx context.Context) error {
	w.state = stateTerminated
	return w.inner.Close(ctx)
}

func (w *ReconnectWrapper[M]) IsConnected() bool {
	return w.state == stateConnected && w.inner.IsConnected()
}

var _ ports.Session[struct{}] = (*ReconnectWrapper[struct{}])(nil)
