package reference

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectorkit/internal/kerrors"
	"connectorkit/internal/ports"
)

type tickerPayload struct {
	Symbol string `json:"symbol"`
	Last   string `json:"last"`
}

func TestCodec_EncodeSubscriptionAndUnsubscription(t *testing.T) {
	c := New[tickerPayload]()

	sub, err := c.EncodeSubscription([]string{"btcusdt@ticker", "ethusdt@ticker"})
	require.NoError(t, err)

	var got envelope
	require.NoError(t, json.Unmarshal(sub.Data, &got))
	assert.Equal(t, "subscribe", got.Op)
	assert.Equal(t, []string{"btcusdt@ticker", "ethusdt@ticker"}, got.Params)

	unsub, err := c.EncodeUnsubscription([]string{"btcusdt@ticker"})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(unsub.Data, &got))
	assert.Equal(t, "unsubscribe", got.Op)
}

func TestCodec_DecodeMessage_ParsesDataPayload(t *testing.T) {
	c := New[tickerPayload]()

	raw := ports.WireMessage{Data: []byte(`{"stream":"btcusdt@ticker","data":{"symbol":"BTCUSDT","last":"65000.12"}}`)}
	msg, ok, err := c.DecodeMessage(raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "BTCUSDT", msg.Symbol)
	assert.Equal(t, "65000.12", msg.Last)
}

func TestCodec_DecodeMessage_IgnoresControlFrameEcho(t *testing.T) {
	c := New[tickerPayload]()

	raw := ports.WireMessage{Data: []byte(`{"op":"subscribe","params":["btcusdt@ticker"]}`)}
	_, ok, err := c.DecodeMessage(raw)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCodec_DecodeMessage_MalformedJSON_IsDeserializationError(t *testing.T) {
	c := New[tickerPayload]()

	raw := ports.WireMessage{Data: []byte(`not json`)}
	_, ok, err := c.DecodeMessage(raw)
	require.Error(t, err)
	assert.False(t, ok)
	kind, isKernelErr := kerrors.KindOf(err)
	require.True(t, isKernelErr)
	assert.Equal(t, kerrors.DeserializationError, kind)
}
