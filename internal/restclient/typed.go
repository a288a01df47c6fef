package restclient

import (
	"context"
	"encoding/json"

	"connectorkit/internal/kerrors"
	"connectorkit/internal/ports"
)

// GetJSON, PostJSON, PutJSON, and DeleteJSON are the typed primary API
// (§4.3): they deserialize directly into the caller's type T, never
// exposing an intermediate dynamic-JSON value. Go interfaces cannot carry
// generic methods, so these are free functions over the concrete *Client
// rather than ports.RESTClient methods.
func GetJSON[T any](ctx context.Context, c *Client, endpoint string, query []ports.QueryParam, authenticated bool) (T, error) {
	return doJSON[T](ctx, c, ports.Request{Method: ports.MethodGet, Endpoint: endpoint, Query: query, Authenticated: authenticated})
}

func PostJSON[T any](ctx context.Context, c *Client, endpoint string, body any, authenticated bool) (T, error) {
	return doJSON[T](ctx, c, ports.Request{Method: ports.MethodPost, Endpoint: endpoint, Body: body, Authenticated: authenticated})
}

func PutJSON[T any](ctx context.Context, c *Client, endpoint string, body any, authenticated bool) (T, error) {
	return doJSON[T](ctx, c, ports.Request{Method: ports.MethodPut, Endpoint: endpoint, Body: body, Authenticated: authenticated})
}

func DeleteJSON[T any](ctx context.Context, c *Client, endpoint string, query []ports.QueryParam, authenticated bool) (T, error) {
	return doJSON[T](ctx, c, ports.Request{Method: ports.MethodDelete, Endpoint: endpoint, Query: query, Authenticated: authenticated})
}

func doJSON[T any](ctx context.Context, c *Client, req ports.Request) (T, error) {
	var zero T
	raw, err := c.Do(ctx, req)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(raw.Body, &out); err != nil {
		return zero, kerrors.Wrap(kerrors.DeserializationError, "decode response body", err)
	}
	return out, nil
}
