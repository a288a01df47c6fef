package ports

// SignatureResult carries the two ways a Signer can authenticate a request:
// header additions and/or query-parameter additions (§4.2). Either may be
// empty; the REST client merges headers into the outgoing request and
// appends query params to the URL query.
type SignatureResult struct {
	Headers     map[string]string
	QueryParams []QueryParam
}

// QueryParam is one ordered key/value pair appended to a signed URL.
// Order matters for signers whose canonical string is derived from the
// query string itself, so this is a slice, not a map.
type QueryParam struct {
	Key   string
	Value string
}

// Signer is a capability that, given an HTTP method, endpoint, query
// string, body bytes, and timestamp, produces signed header and/or query
// additions (§4.2). Signers are stateless after construction and must be
// safe to share across concurrent requests.
type Signer interface {
	Sign(method, endpoint, queryString string, body []byte, timestampMs int64) (SignatureResult, error)
}
