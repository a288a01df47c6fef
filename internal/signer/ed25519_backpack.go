package signer

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"connectorkit/internal/ports"
)

// Ed25519Backpack signs requests the way Backpack expects: a canonical
// instruction string built from sorted parameters, signed with Ed25519 over
// the raw bytes, producing a base64 signature plus a base64 public-key
// header (§4.2). No pack repo exposes a higher-level Ed25519-for-HTTP
// helper, so this uses the standard library's crypto/ed25519 primitive
// directly — see DESIGN.md.
type Ed25519Backpack struct {
	instruction string
	privateKey  ed25519.PrivateKey
	publicKeyB64 string
	window      string // optional recv-window style parameter, included if non-empty
}

// NewEd25519Backpack builds a signer for one instruction type (e.g.
// "orderExecute") from a raw 64-byte Ed25519 private key.
func NewEd25519Backpack(instruction string, privateKey ed25519.PrivateKey) (*Ed25519Backpack, error) {
	if len(privateKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("ed25519 backpack signer: private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(privateKey))
	}
	pub := privateKey.Public().(ed25519.PublicKey)
	return &Ed25519Backpack{
		instruction:  instruction,
		privateKey:   privateKey,
		publicKeyB64: base64.StdEncoding.EncodeToString(pub),
	}, nil
}

// canonicalInstruction builds "instruction=<name>&k1=v1&k2=v2&..." with
// parameters sorted lexicographically by key, matching Backpack's signing
// scheme: a stable, reproducible string independent of caller-supplied
// parameter order.
func canonicalInstruction(instruction string, params map[string]string, timestampMs int64, window string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("instruction=")
	sb.WriteString(instruction)
	for _, k := range keys {
		sb.WriteString("&")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(params[k])
	}
	sb.WriteString(fmt.Sprintf("&timestamp=%d", timestampMs))
	if window != "" {
		sb.WriteString("&window=")
		sb.WriteString(window)
	}
	return sb.String()
}

// Sign ignores method/endpoint/body and signs the canonical instruction
// string derived from queryString's key=value pairs, per Backpack's scheme;
// adapters pass request parameters as the query string regardless of HTTP
// method, since Backpack's signature covers logical parameters, not wire
// placement.
func (s *Ed25519Backpack) Sign(method, endpoint, queryString string, body []byte, timestampMs int64) (ports.SignatureResult, error) {
	params := parseQueryString(queryString)
	canonical := canonicalInstruction(s.instruction, params, timestampMs, s.window)

	sig := ed25519.Sign(s.privateKey, []byte(canonical))

	return ports.SignatureResult{
		Headers: map[string]string{
			"X-Signature":  base64.StdEncoding.EncodeToString(sig),
			"X-Timestamp":  fmt.Sprintf("%d", timestampMs),
			"X-API-Key":    s.publicKeyB64,
		},
	}, nil
}

func parseQueryString(q string) map[string]string {
	params := make(map[string]string)
	if q == "" {
		return params
	}
	for _, pair := range strings.Split(q, "&") {
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 {
			params[kv[0]] = kv[1]
		} else {
			params[kv[0]] = ""
		}
	}
	return params
}
