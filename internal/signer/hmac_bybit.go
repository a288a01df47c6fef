package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"connectorkit/internal/credential"
	"connectorkit/internal/ports"
)

const defaultRecvWindowMs = 5000

// HMACBybit signs requests the way Bybit v5 expects: canonical string =
// timestamp + api_key + recv_window + (query_string OR body), signature =
// lowercase-hex HMAC-SHA256, returned as the X-BAPI-* header family (§4.2).
type HMACBybit struct {
	apiKey      string
	secret      *credential.Secret
	recvWindow  int64
}

// NewHMACBybit constructs a signer with Bybit's default 5000ms recv window.
func NewHMACBybit(apiKey string, secret *credential.Secret) *HMACBybit {
	return NewHMACBybitWithRecvWindow(apiKey, secret, defaultRecvWindowMs)
}

func NewHMACBybitWithRecvWindow(apiKey string, secret *credential.Secret, recvWindowMs int64) *HMACBybit {
	return &HMACBybit{apiKey: apiKey, secret: secret, recvWindow: recvWindowMs}
}

func (s *HMACBybit) Sign(method, endpoint, queryString string, body []byte, timestampMs int64) (ports.SignatureResult, error) {
	payload := queryString
	if payload == "" {
		payload = string(body)
	}

	ts := strconv.FormatInt(timestampMs, 10)
	recvWindow := strconv.FormatInt(s.recvWindow, 10)

	canonical := ts + s.apiKey + recvWindow + payload

	mac := hmac.New(sha256.New, s.secret.Expose())
	mac.Write([]byte(canonical))
	sig := hex.EncodeToString(mac.Sum(nil))

	return ports.SignatureResult{
		Headers: map[string]string{
			"X-BAPI-API-KEY":     s.apiKey,
			"X-BAPI-TIMESTAMP":   ts,
			"X-BAPI-RECV-WINDOW": recvWindow,
			"X-BAPI-SIGN":        sig,
		},
	}, nil
}
