package ports

import "context"

// HTTPMethod is the small closed set of verbs the REST client supports.
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodDelete HTTPMethod = "DELETE"
)

// Request describes one REST call before signing/dispatch (§4.3 steps 1-4).
type Request struct {
	Method        HTTPMethod
	Endpoint      string
	Query         []QueryParam // used for GET/DELETE
	Body          any          // marshaled to JSON for POST/PUT when non-nil
	Authenticated bool
}

// RawResponse is the dynamic-value variant (§4.3 "secondary dynamic-value
// variant exists for adapter code that must inspect the response before
// classifying it").
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// RESTClient is the low-level capability every typed helper builds on.
// Go interfaces cannot carry their own generic methods, so the typed
// get_json<T>/post_json<T> family (§4.3) lives as free functions in
// package restclient operating on the concrete *restclient.Client, while
// this interface captures the dynamic-value escape hatch and is what
// capability-trait sub-components hold a reference to.
type RESTClient interface {
	Do(ctx context.Context, req Request) (RawResponse, error)
	// Clone returns a handle sharing the same underlying connection pool
	// (§4.3 "cheaply cloneable"), so the three sub-connectors of a composed
	// connector can each hold one without duplicating transports.
	Clone() RESTClient
}
