// Package signer provides the concrete ports.Signer implementations (§4.2):
// HMAC-SHA256 in Binance's and Bybit's wire styles, Ed25519 over a canonical
// instruction string (Backpack style), and JWT bearer tokens.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"connectorkit/internal/credential"
	"connectorkit/internal/ports"
)

// HMACBinance signs requests the way Binance's family of REST APIs expects:
// canonical string = query_string + body, signature = lowercase-hex HMAC-SHA256,
// returned as header X-MBX-APIKEY and query param signature=<hex>. The
// adapter building the request is responsible for adding timestamp to the
// query before signing; neither this signer nor the REST client adds it.
type HMACBinance struct {
	apiKey string
	secret *credential.Secret
}

func NewHMACBinance(apiKey string, secret *credential.Secret) *HMACBinance {
	return &HMACBinance{apiKey: apiKey, secret: secret}
}

func (s *HMACBinance) Sign(method, endpoint, queryString string, body []byte, timestampMs int64) (ports.SignatureResult, error) {
	mac := hmac.New(sha256.New, s.secret.Expose())
	mac.Write([]byte(queryString))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	return ports.SignatureResult{
		Headers: map[string]string{"X-MBX-APIKEY": s.apiKey},
		QueryParams: []ports.QueryParam{
			{Key: "signature", Value: sig},
		},
	}, nil
}
