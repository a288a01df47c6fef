package wsclient

import (
	"encoding/json"
	"fmt"

	"connectorkit/internal/ports"
)

// echoMessage is the fake decoded message type used across wsclient tests.
type echoMessage struct {
	Stream string `json:"stream"`
	Seq    int    `json:"seq"`
}

// echoCodec is a minimal ports.Codec[echoMessage] used purely for kernel
// tests — it implements no venue wire format, per the kernel's own
// "reference codec" scope (§4.4, SPEC_FULL §4.4).
type echoCodec struct{}

func (echoCodec) EncodeSubscription(streams []string) (ports.WireMessage, error) {
	b, err := json.Marshal(map[string]any{"op": "subscribe", "streams": streams})
	if err != nil {
		return ports.WireMessage{}, err
	}
	return ports.WireMessage{Data: b}, nil
}

func (echoCodec) EncodeUnsubscription(streams []string) (ports.WireMessage, error) {
	b, err := json.Marshal(map[string]any{"op": "unsubscribe", "streams": streams})
	if err != nil {
		return ports.WireMessage{}, err
	}
	return ports.WireMessage{Data: b}, nil
}

func (echoCodec) DecodeMessage(msg ports.WireMessage) (echoMessage, bool, error) {
	var envelope struct {
		Op string `json:"op"`
	}
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		return echoMessage{}, false, fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.Op != "" {
		// subscribe/unsubscribe control frames echoed back are ignored
		// silently, matching §4.4's "None means ignore silently".
		return echoMessage{}, false, nil
	}
	var m echoMessage
	if err := json.Unmarshal(msg.Data, &m); err != nil {
		return echoMessage{}, false, fmt.Errorf("decode message: %w", err)
	}
	return m, true, nil
}
