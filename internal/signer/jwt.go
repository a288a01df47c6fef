package signer

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"connectorkit/internal/credential"
	"connectorkit/internal/ports"
)

// JWT produces a bearer token in an Authorization header (§4.2), signed
// with HMAC-SHA256 via golang-jwt/jwt/v5 (grounded in
// DimaJoyti-ai-agentic-crypto-browser's jwt_service.go).
type JWT struct {
	secret   *credential.Secret
	issuer   string
	subject  string
	ttl      time.Duration
}

func NewJWT(secret *credential.Secret, issuer, subject string, ttl time.Duration) *JWT {
	return &JWT{secret: secret, issuer: issuer, subject: subject, ttl: ttl}
}

// Sign mints a fresh token per call scoped to the request's timestamp;
// JWT material does not depend on method/endpoint/query/body the way HMAC
// request signing does — the token authenticates the caller, not the
// specific request bytes.
func (s *JWT) Sign(method, endpoint, queryString string, body []byte, timestampMs int64) (ports.SignatureResult, error) {
	issuedAt := time.UnixMilli(timestampMs)
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   s.subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret.Expose())
	if err != nil {
		return ports.SignatureResult{}, fmt.Errorf("jwt signer: sign token: %w", err)
	}

	return ports.SignatureResult{
		Headers: map[string]string{
			"Authorization": "Bearer " + signed,
		},
	}, nil
}
