// Package reference ships the kernel's one concrete Codec (§4.4): a
// generic JSON text-frame envelope that carries a stream identifier
// alongside a raw payload. It implements no venue wire format — adapters
// either use this directly for venues that already speak this shape, or
// write their own ports.Codec following the same pattern.
package reference

import (
	"encoding/json"

	"connectorkit/internal/kerrors"
	"connectorkit/internal/ports"
)

// envelope is the wire shape: {"stream":"...","data":...}. Subscribe and
// unsubscribe control frames use "op" instead of "data" and carry no
// stream-specific payload.
type envelope struct {
	Stream string          `json:"stream,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Op     string          `json:"op,omitempty"`
	Params []string        `json:"params,omitempty"`
}

// Codec implements ports.Codec[M] over the envelope shape for any message
// type M that itself round-trips through encoding/json.
type Codec[M any] struct{}

func New[M any]() Codec[M] { return Codec[M]{} }

func (Codec[M]) EncodeSubscription(streams []string) (ports.WireMessage, error) {
	b, err := json.Marshal(envelope{Op: "subscribe", Params: streams})
	if err != nil {
		return ports.WireMessage{}, kerrors.Wrap(kerrors.SerializationError, "encode subscription", err)
	}
	return ports.WireMessage{Data: b}, nil
}

func (Codec[M]) EncodeUnsubscription(streams []string) (ports.WireMessage, error) {
	b, err := json.Marshal(envelope{Op: "unsubscribe", Params: streams})
	if err != nil {
		return ports.WireMessage{}, kerrors.Wrap(kerrors.SerializationError, "encode unsubscription", err)
	}
	return ports.WireMessage{Data: b}, nil
}

// DecodeMessage unwraps the envelope and decodes Data into M. Frames
// carrying "op" instead of "data" are control-frame echoes and are
// ignored silently (§4.4 "None means ignore silently").
func (Codec[M]) DecodeMessage(msg ports.WireMessage) (M, bool, error) {
	var zero M
	var env envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		return zero, false, kerrors.Wrap(kerrors.DeserializationError, "decode envelope", err)
	}
	if env.Op != "" || len(env.Data) == 0 {
		return zero, false, nil
	}

	var m M
	if err := json.Unmarshal(env.Data, &m); err != nil {
		return zero, false, kerrors.Wrap(kerrors.DeserializationError, "decode envelope payload", err)
	}
	return m, true, nil
}

var _ ports.Codec[struct{}] = Codec[struct{}]{}
