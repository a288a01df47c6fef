// Package restclient implements the kernel's REST client (§4.3): typed
// GET/POST/PUT/DELETE over a configured base URL, optional signer
// attachment, retry on transport failure only, and JSON deserialization
// straight into caller-supplied types. Built on resty (grounded in
// 0xtitan6-polymarket-mm/internal/exchange/client.go, the clearest
// REST-client-with-retry exemplar in the pack).
package restclient

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"connectorkit/internal/kerrors"
	"connectorkit/internal/ports"
)

// Config is immutable after New (§4.3).
type Config struct {
	BaseURL      string
	ExchangeName string // used only for tracing/log fields, never interpreted
	Timeout      time.Duration
	MaxRetries   int
	UserAgent    string
	Signer       ports.Signer // optional; required only for Authenticated requests
	Logger       ports.Logger
}

// Client is the concrete REST client. It is cheaply cloneable: Clone shares
// the same underlying *resty.Client and therefore the same connection pool
// (§4.3 "cheaply cloneable... so the three sub-connectors of a composed
// connector share one HTTP connection pool").
type Client struct {
	http   *resty.Client
	signer ports.Signer
	logger ports.Logger
	name   string
}

// New builds a Client from Config.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = ports.NopLogger{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "connectorkit/1.0"
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry only transport-level failures (§5/§7): a non-nil err
			// here means the request never got a response at all (DNS,
			// TLS, connection refused, timeout). A non-2xx HTTP response is
			// NOT retried — it surfaces as ApiError untouched.
			return err != nil
		}).
		SetHeader("User-Agent", userAgent)

	return &Client{http: http, signer: cfg.Signer, logger: logger, name: cfg.ExchangeName}
}

// Clone returns a new handle sharing this Client's underlying resty client
// (and hence its connection pool), per §4.3.
func (c *Client) Clone() ports.RESTClient {
	return &Client{http: c.http, signer: c.signer, logger: c.logger, name: c.name}
}

func buildQueryString(params []ports.QueryParam) string {
	values := url.Values{}
	// url.Values.Encode sorts by key, which is fine for Binance/Bybit-style
	// signing since both compute over the *fully assembled* query string,
	// not a caller-defined order; callers needing a specific order pass a
	// Body instead of relying on Query ordering.
	for _, p := range params {
		values.Add(p.Key, p.Value)
	}
	return values.Encode()
}

// Do is the dynamic-value variant (§4.3): it returns the raw status and
// body without attempting to deserialize, for adapters that must inspect a
// response before classifying it.
func (c *Client) Do(ctx context.Context, req ports.Request) (ports.RawResponse, error) {
	var bodyBytes []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return ports.RawResponse{}, kerrors.Wrap(kerrors.SerializationError, "marshal request body", err)
		}
		bodyBytes = b
	}

	queryString := buildQueryString(req.Query)
	finalQuery := req.Query
	headers := map[string]string{}

	if req.Authenticated {
		if c.signer == nil {
			return ports.RawResponse{}, kerrors.New(kerrors.AuthError, "authenticated request issued without a configured signer")
		}
		timestampMs := time.Now().UnixMilli()
		sig, err := c.signer.Sign(string(req.Method), req.Endpoint, queryString, bodyBytes, timestampMs)
		if err != nil {
			return ports.RawResponse{}, kerrors.Wrap(kerrors.AuthError, "signer failed", err)
		}
		for k, v := range sig.Headers {
			headers[k] = v
		}
		finalQuery = append(append([]ports.QueryParam{}, req.Query...), sig.QueryParams...)
	}

	r := c.http.R().SetContext(ctx)
	if len(headers) > 0 {
		r = r.SetHeaders(headers)
	}
	if len(finalQuery) > 0 {
		qp := make(map[string]string, len(finalQuery))
		for _, p := range finalQuery {
			qp[p.Key] = p.Value
		}
		r = r.SetQueryParams(qp)
	}
	if bodyBytes != nil {
		r = r.SetHeader("Content-Type", "application/json").SetBody(bodyBytes)
	}

	resp, err := c.dispatch(r, req.Method, req.Endpoint)
	if err != nil {
		c.logger.Error(ctx, err, "rest request failed", map[string]interface{}{"exchange": c.name, "endpoint": req.Endpoint})
		return ports.RawResponse{}, err
	}

	raw := ports.RawResponse{StatusCode: resp.StatusCode(), Body: resp.Body()}
	if resp.StatusCode() == 429 || resp.StatusCode() == 418 {
		// §5: a 429 (or Binance's 418 IP-ban variant) is a successful round
		// trip carrying a quota signal, not a generic API error — it must
		// surface as RateLimitError so callers can back off and retry.
		return raw, kerrors.Newf(kerrors.RateLimitError, "request denied for quota reasons: status %d", resp.StatusCode())
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		// §4.3 step 6: non-2xx surfaces as ApiError without retry; the
		// kernel never interprets exchange error semantics.
		return raw, kerrors.NewAPIError(strconv.Itoa(resp.StatusCode()), string(resp.Body()))
	}
	return raw, nil
}

func (c *Client) dispatch(r *resty.Request, method ports.HTTPMethod, endpoint string) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	switch method {
	case ports.MethodGet:
		resp, err = r.Get(endpoint)
	case ports.MethodPost:
		resp, err = r.Post(endpoint)
	case ports.MethodPut:
		resp, err = r.Put(endpoint)
	case ports.MethodDelete:
		resp, err = r.Delete(endpoint)
	default:
		return nil, kerrors.Newf(kerrors.InvalidParameters, "unsupported HTTP method %q", method)
	}
	if err != nil {
		return nil, classifyTransportError(err)
	}
	return resp, nil
}

// classifyTransportError maps resty/net errors that never reached a server
// (DNS, TLS, connection refused, timeout) to NetworkError, matching §4.1's
// recoverable/fatal split — these are the errors the retry loop above
// already attempted and gave up on.
func classifyTransportError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "429") {
		return kerrors.Wrap(kerrors.RateLimitError, "request denied for quota reasons", err)
	}
	return kerrors.Wrap(kerrors.NetworkError, "transport failure", err)
}
