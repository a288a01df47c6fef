// Package credential wraps secret material so it is never logged or
// serialized. The backing bytes are overwritten only when Secret.Zero is
// called; nothing zeroes them automatically when a Secret becomes
// unreachable.
package credential

// Secret holds sensitive bytes (an API secret, a PEM key, JWT signing
// material) behind a type that refuses to render its contents.
type Secret struct {
	b []byte
}

// NewSecret copies s into a Secret-owned buffer. The caller's original
// string is not touched (Go strings are immutable, so the caller should
// avoid retaining copies of the source material beyond this call).
func NewSecret(s string) *Secret {
	b := make([]byte, len(s))
	copy(b, s)
	return &Secret{b: b}
}

// Expose returns the raw bytes for the single call site that needs them
// (a signer's HMAC/Ed25519 operation). Callers must not retain the slice.
func (s *Secret) Expose() []byte {
	if s == nil {
		return nil
	}
	return s.b
}

// IsEmpty reports whether no secret material was configured, the §6
// "empty or absent means read-only mode" case.
func (s *Secret) IsEmpty() bool {
	return s == nil || len(s.b) == 0
}

// Zero overwrites the secret's backing array. Call explicitly when a
// Secret's lifetime is known to have ended; Go has no destructors, so this
// cannot happen automatically on garbage collection.
func (s *Secret) Zero() {
	if s == nil {
		return
	}
	for i := range s.b {
		s.b[i] = 0
	}
}

// String never renders the secret, including in %v/%s formatting and in
// any logging call that accidentally reaches a Secret.
func (s *Secret) String() string { return "[REDACTED]" }

// GoString supports %#v the same way as String.
func (s *Secret) GoString() string { return "credential.Secret{REDACTED}" }
