package connector

import (
	"context"
	"time"

	"connectorkit/internal/credential"
	"connectorkit/internal/domain"
	"connectorkit/internal/kerrors"
	"connectorkit/internal/ports"
	"connectorkit/internal/restclient"
	"connectorkit/internal/wsclient"
)

// Builder assembles a Connector[M] the way each adapter's own builder does
// (§4.8): accept configuration, validate that authenticated operations have
// credentials, and construct the composed connector. Builder failures
// surface as ConfigurationError (§4.8), never panic.
type Builder[M any] struct {
	exchangeName string
	baseURL      string
	testnet      bool
	timeout      time.Duration
	maxRetries   int
	userAgent    string
	logger       ports.Logger

	apiKey    string
	apiSecret *credential.Secret
	signer    ports.Signer
	rest      ports.RESTClient

	wsURL      string
	codec      ports.Codec[M]
	wsCfg      domain.WebSocketConfig
	hasWS      bool
	namer      StreamNamer
	toDomain   Converter[M]
	channelCap int

	getMarkets  func(ctx context.Context, rest ports.RESTClient) ([]domain.Market, error)
	getKlines   func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, interval domain.KlineInterval, limit *int, start, end *domain.Timestamp) ([]domain.Kline, error)
	placeOrder  func(ctx context.Context, rest ports.RESTClient, req domain.OrderRequest) (domain.OrderResponse, error)
	cancelOrder func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, orderID int64) error
	modifyOrder func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, orderID int64, req domain.OrderRequest) (domain.OrderResponse, error)

	getBalance            func(ctx context.Context, rest ports.RESTClient) ([]domain.Balance, error)
	getPositions          func(ctx context.Context, rest ports.RESTClient) ([]domain.Position, error)
	getFundingRates       func(ctx context.Context, rest ports.RESTClient, symbols []domain.Symbol) ([]domain.FundingRate, error)
	getAllFundingRates    func(ctx context.Context, rest ports.RESTClient) ([]domain.FundingRate, error)
	getFundingRateHistory func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, start, end *domain.Timestamp, limit *int) ([]domain.FundingRate, error)

	requireCredentials bool
}

// New starts a Builder for one exchange (exchangeName is used only for
// tracing/log fields, per restclient.Config, never interpreted).
func New[M any](exchangeName string) *Builder[M] {
	return &Builder[M]{exchangeName: exchangeName, wsCfg: domain.DefaultWebSocketConfig()}
}

func (b *Builder[M]) WithCredentials(apiKey string, secret *credential.Secret) *Builder[M] {
	b.apiKey = apiKey
	b.apiSecret = secret
	return b
}

// WithTestnet marks this connector as intended for a venue's testnet;
// adapters decide how this affects BaseURL defaults before calling
// WithBaseURL, since the kernel carries no per-venue URL table.
func (b *Builder[M]) WithTestnet(testnet bool) *Builder[M] {
	b.testnet = testnet
	return b
}

func (b *Builder[M]) WithBaseURL(url string) *Builder[M] {
	b.baseURL = url
	return b
}

func (b *Builder[M]) WithTimeout(d time.Duration) *Builder[M] {
	b.timeout = d
	return b
}

func (b *Builder[M]) WithMaxRetries(n int) *Builder[M] {
	b.maxRetries = n
	return b
}

func (b *Builder[M]) WithLogger(l ports.Logger) *Builder[M] {
	b.logger = l
	return b
}

func (b *Builder[M]) WithUserAgent(ua string) *Builder[M] {
	b.userAgent = ua
	return b
}

// WithSigner overrides the REST client's signer explicitly. When unset and
// credentials are present via WithCredentials, adapters are expected to
// have already constructed their venue-specific signer (HMAC/Ed25519/JWT)
// and pass it here — the kernel does not choose a signing scheme for you.
func (b *Builder[M]) WithSigner(s ports.Signer) *Builder[M] {
	b.signer = s
	return b
}

// WithRESTClient substitutes a caller-built ports.RESTClient wholesale
// (§4.8 "optional custom REST client"), bypassing restclient.New entirely.
func (b *Builder[M]) WithRESTClient(c ports.RESTClient) *Builder[M] {
	b.rest = c
	return b
}

// WithWebSocket enables the Market component's streaming capability
// (§4.8 "optional WebSocket enablement").
func (b *Builder[M]) WithWebSocket(url string, codec ports.Codec[M], namer StreamNamer, toDomain Converter[M]) *Builder[M] {
	b.wsURL = url
	b.codec = codec
	b.namer = namer
	b.toDomain = toDomain
	b.hasWS = true
	return b
}

func (b *Builder[M]) WithWebSocketConfig(cfg domain.WebSocketConfig) *Builder[M] {
	b.wsCfg = cfg
	return b
}

func (b *Builder[M]) WithChannelCapacity(n int) *Builder[M] {
	b.channelCap = n
	return b
}

// WithMarketData supplies the adapter's venue-specific REST implementations
// for the MarketDataSource capability (§4.6); either may be left nil.
func (b *Builder[M]) WithMarketData(
	getMarkets func(ctx context.Context, rest ports.RESTClient) ([]domain.Market, error),
	getKlines func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, interval domain.KlineInterval, limit *int, start, end *domain.Timestamp) ([]domain.Kline, error),
) *Builder[M] {
	b.getMarkets = getMarkets
	b.getKlines = getKlines
	return b
}

// WithTrading supplies the adapter's OrderPlacer implementation (§4.6).
// Calling it makes a signer mandatory: Build rejects the connector unless
// one was supplied via WithSigner.
func (b *Builder[M]) WithTrading(
	placeOrder func(ctx context.Context, rest ports.RESTClient, req domain.OrderRequest) (domain.OrderResponse, error),
	cancelOrder func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, orderID int64) error,
	modifyOrder func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, orderID int64, req domain.OrderRequest) (domain.OrderResponse, error),
) *Builder[M] {
	b.placeOrder = placeOrder
	b.cancelOrder = cancelOrder
	b.modifyOrder = modifyOrder
	b.requireCredentials = true
	return b
}

// WithAccount supplies the adapter's AccountInfo implementation (§4.6) and,
// like WithTrading, makes a signer mandatory. FundingRateSource functions
// are supplied separately via WithFundingRates.
func (b *Builder[M]) WithAccount(
	getBalance func(ctx context.Context, rest ports.RESTClient) ([]domain.Balance, error),
	getPositions func(ctx context.Context, rest ports.RESTClient) ([]domain.Position, error),
) *Builder[M] {
	b.getBalance = getBalance
	b.getPositions = getPositions
	b.requireCredentials = true
	return b
}

func (b *Builder[M]) WithFundingRates(
	getFundingRates func(ctx context.Context, rest ports.RESTClient, symbols []domain.Symbol) ([]domain.FundingRate, error),
	getAllFundingRates func(ctx context.Context, rest ports.RESTClient) ([]domain.FundingRate, error),
	getFundingRateHistory func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, start, end *domain.Timestamp, limit *int) ([]domain.FundingRate, error),
) *Builder[M] {
	b.getFundingRates = getFundingRates
	b.getAllFundingRates = getAllFundingRates
	b.getFundingRateHistory = getFundingRateHistory
	return b
}

// Build validates configuration and constructs the composed connector
// (§4.8). Authenticated operations (trading, account) without a signer
// configured via WithSigner is a ConfigurationError, whether or not
// credentials were supplied, caught here rather than deferred to the first
// AuthError at call time.
func (b *Builder[M]) Build() (*Connector[M], error) {
	if b.baseURL == "" && b.rest == nil {
		return nil, kerrors.New(kerrors.ConfigurationError, "builder: base_url is required unless a custom REST client is supplied")
	}
	if b.requireCredentials && b.signer == nil {
		if b.apiKey == "" || b.apiSecret == nil || b.apiSecret.IsEmpty() {
			return nil, kerrors.New(kerrors.ConfigurationError, "builder: trading/account capabilities require credentials or an explicit signer")
		}
		return nil, kerrors.New(kerrors.ConfigurationError, "builder: credentials were supplied but no signer was configured via WithSigner")
	}

	rest := b.rest
	if rest == nil {
		rest = restclient.New(restclient.Config{
			BaseURL:      b.baseURL,
			ExchangeName: b.exchangeName,
			Timeout:      b.timeout,
			MaxRetries:   b.maxRetries,
			UserAgent:    b.userAgent,
			Signer:       b.signer,
			Logger:       b.logger,
		})
	}

	market := &MarketComponent[M]{
		rest:            rest.Clone(),
		wsURL:           b.wsURL,
		namer:           b.namer,
		toDomain:        b.toDomain,
		getMarkets:      b.getMarkets,
		getKlines:       b.getKlines,
		channelCapacity: b.channelCap,
	}
	if b.hasWS {
		if b.codec == nil {
			return nil, kerrors.New(kerrors.ConfigurationError, "builder: websocket enabled without a codec")
		}
		inner := wsclient.NewSession[M](b.wsURL, b.codec)
		market.ws = wsclient.NewReconnectWrapper[M](inner, reconnectConfigFrom(b.wsCfg))
	}

	trading := &TradingComponent{
		rest:        rest.Clone(),
		placeOrder:  b.placeOrder,
		cancelOrder: b.cancelOrder,
		modifyOrder: b.modifyOrder,
	}

	account := &AccountComponent{
		rest:                  rest.Clone(),
		getBalance:            b.getBalance,
		getPositions:          b.getPositions,
		getFundingRates:       b.getFundingRates,
		getAllFundingRates:    b.getAllFundingRates,
		getFundingRateHistory: b.getFundingRateHistory,
	}

	return &Connector[M]{Market: market, Trading: trading, Account: account}, nil
}

func reconnectConfigFrom(cfg domain.WebSocketConfig) wsclient.ReconnectWrapperConfig {
	out := wsclient.ReconnectWrapperConfig{AutoResubscribe: cfg.AutoReconnect}
	if cfg.MaxReconnectAttempts != nil {
		out.MaxReconnectAttempts = int(*cfg.MaxReconnectAttempts)
	}
	return out
}
