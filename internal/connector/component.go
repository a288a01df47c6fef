// Package connector implements the kernel's capability-trait composition
// (§4.6): a Connector owns Market/Trading/Account sub-components, each
// holding a cloned REST client handle, with Market optionally holding a
// reconnect-wrapped WebSocket session. The kernel supplies the generic
// transport/session plumbing; an adapter supplies the venue-specific
// business logic (endpoint shapes, stream naming, wire-to-domain
// conversion) as plain function values passed to the Builder, which is
// how capability traits stay "trivial delegation" (§4.6) without the
// kernel ever encoding one venue's semantics.
package connector

import (
	"context"

	"github.com/google/uuid"

	"connectorkit/internal/domain"
	"connectorkit/internal/kerrors"
	"connectorkit/internal/ports"
	"connectorkit/internal/wsclient"
)

// StreamNamer derives the venue-specific stream identifier for one
// (symbol, subscription type) pair (§4.7 step 1), e.g. "btcusdt@ticker".
type StreamNamer func(symbol domain.Symbol, subType domain.SubscriptionType) string

// Converter turns one decoded wire message into a domain.MarketDataType,
// or reports false to skip it silently (§4.7 step 3).
type Converter[M any] func(M) (domain.MarketDataType, bool)

// MarketComponent implements ports.MarketDataSource (§4.6). GetMarkets and
// GetKlines are adapter-supplied since the kernel has no venue-specific
// endpoint knowledge; SubscribeMarketData is implemented generically by
// the kernel (§4.7) given a namer and converter.
type MarketComponent[M any] struct {
	rest ports.RESTClient
	ws   *wsclient.ReconnectWrapper[M]

	wsURL      string
	namer      StreamNamer
	toDomain   Converter[M]
	getMarkets func(ctx context.Context, rest ports.RESTClient) ([]domain.Market, error)
	getKlines  func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, interval domain.KlineInterval, limit *int, start, end *domain.Timestamp) ([]domain.Kline, error)

	channelCapacity int
}

func (m *MarketComponent[M]) GetMarkets(ctx context.Context) ([]domain.Market, error) {
	if m.getMarkets == nil {
		return nil, kerrors.New(kerrors.Other, "market data: get_markets not configured for this connector")
	}
	return m.getMarkets(ctx, m.rest)
}

func (m *MarketComponent[M]) GetKlines(ctx context.Context, symbol domain.Symbol, interval domain.KlineInterval, limit *int, start, end *domain.Timestamp) ([]domain.Kline, error) {
	if m.getKlines == nil {
		return nil, kerrors.New(kerrors.Other, "market data: get_klines not configured for this connector")
	}
	return m.getKlines(ctx, m.rest, symbol, interval, limit, start, end)
}

func (m *MarketComponent[M]) GetWebSocketURL() string { return m.wsURL }

// SubscribeMarketData implements §4.7 verbatim: derive stream ids, connect
// and subscribe, then spawn a consumer goroutine that converts and
// forwards decoded messages into a bounded channel until the session
// terminally fails or ctx is canceled.
func (m *MarketComponent[M]) SubscribeMarketData(ctx context.Context, symbols []domain.Symbol, types []domain.SubscriptionType, cfg *domain.WebSocketConfig) (<-chan domain.MarketDataType, error) {
	if m.ws == nil {
		return nil, kerrors.New(kerrors.ConfigurationError, "market data: no websocket session configured for this connector")
	}
	if m.namer == nil || m.toDomain == nil {
		return nil, kerrors.New(kerrors.ConfigurationError, "market data: no stream namer/converter configured for this connector")
	}

	streamIDs := make([]string, 0, len(symbols)*len(types))
	for _, sym := range symbols {
		for _, t := range types {
			streamIDs = append(streamIDs, m.namer(sym, t))
		}
	}

	if err := m.ws.Connect(ctx); err != nil {
		return nil, err
	}
	if err := m.ws.Subscribe(ctx, streamIDs); err != nil {
		return nil, err
	}

	capacity := m.channelCapacity
	if capacity <= 0 {
		capacity = 256
	}
	out := make(chan domain.MarketDataType, capacity)

	go func() {
		defer close(out)
		for {
			msg, ok, err := m.ws.NextMessage(ctx)
			if err != nil || !ok {
				return
			}
			converted, keep := m.toDomain(msg)
			if !keep {
				continue
			}
			select {
			case out <- converted:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// TradingComponent implements ports.OrderPlacer (§4.6) via adapter-supplied
// functions; the kernel itself never derives order endpoints or payloads.
type TradingComponent struct {
	rest ports.RESTClient

	placeOrder  func(ctx context.Context, rest ports.RESTClient, req domain.OrderRequest) (domain.OrderResponse, error)
	cancelOrder func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, orderID int64) error
	modifyOrder func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, orderID int64, req domain.OrderRequest) (domain.OrderResponse, error)
}

func (t *TradingComponent) PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.OrderResponse{}, kerrors.Wrap(kerrors.InvalidParameters, "place_order: invalid request", err)
	}
	if t.placeOrder == nil {
		return domain.OrderResponse{}, kerrors.New(kerrors.Other, "trading: place_order not configured for this connector")
	}
	if req.ClientOrderID == nil {
		id := uuid.NewString()
		req.ClientOrderID = &id
	}
	return t.placeOrder(ctx, t.rest, req)
}

func (t *TradingComponent) CancelOrder(ctx context.Context, symbol domain.Symbol, orderID int64) error {
	if t.cancelOrder == nil {
		return kerrors.New(kerrors.Other, "trading: cancel_order not configured for this connector")
	}
	return t.cancelOrder(ctx, t.rest, symbol, orderID)
}

// ModifyOrder is optional per §4.6; adapters that cannot modify leave
// modifyOrder unset and this surfaces as Other("unsupported").
func (t *TradingComponent) ModifyOrder(ctx context.Context, symbol domain.Symbol, orderID int64, req domain.OrderRequest) (domain.OrderResponse, error) {
	if t.modifyOrder == nil {
		return domain.OrderResponse{}, kerrors.New(kerrors.Other, "trading: modify_order unsupported by this connector")
	}
	if err := req.Validate(); err != nil {
		return domain.OrderResponse{}, kerrors.Wrap(kerrors.InvalidParameters, "modify_order: invalid request", err)
	}
	return t.modifyOrder(ctx, t.rest, symbol, orderID, req)
}

// AccountComponent implements ports.AccountInfo and, where the venue is a
// perpetual market, ports.FundingRateSource (§4.6).
type AccountComponent struct {
	rest ports.RESTClient

	getBalance   func(ctx context.Context, rest ports.RESTClient) ([]domain.Balance, error)
	getPositions func(ctx context.Context, rest ports.RESTClient) ([]domain.Position, error)

	getFundingRates       func(ctx context.Context, rest ports.RESTClient, symbols []domain.Symbol) ([]domain.FundingRate, error)
	getAllFundingRates    func(ctx context.Context, rest ports.RESTClient) ([]domain.FundingRate, error)
	getFundingRateHistory func(ctx context.Context, rest ports.RESTClient, symbol domain.Symbol, start, end *domain.Timestamp, limit *int) ([]domain.FundingRate, error)
}

func (a *AccountComponent) GetAccountBalance(ctx context.Context) ([]domain.Balance, error) {
	if a.getBalance == nil {
		return nil, kerrors.New(kerrors.Other, "account: get_account_balance not configured for this connector")
	}
	return a.getBalance(ctx, a.rest)
}

func (a *AccountComponent) GetPositions(ctx context.Context) ([]domain.Position, error) {
	if a.getPositions == nil {
		return []domain.Position{}, nil
	}
	return a.getPositions(ctx, a.rest)
}

func (a *AccountComponent) GetFundingRates(ctx context.Context, symbols []domain.Symbol) ([]domain.FundingRate, error) {
	if a.getFundingRates == nil {
		return nil, kerrors.New(kerrors.Other, "account: get_funding_rates not configured for this connector")
	}
	return a.getFundingRates(ctx, a.rest, symbols)
}

func (a *AccountComponent) GetAllFundingRates(ctx context.Context) ([]domain.FundingRate, error) {
	if a.getAllFundingRates == nil {
		return nil, kerrors.New(kerrors.Other, "account: get_all_funding_rates not configured for this connector")
	}
	return a.getAllFundingRates(ctx, a.rest)
}

func (a *AccountComponent) GetFundingRateHistory(ctx context.Context, symbol domain.Symbol, start, end *domain.Timestamp, limit *int) ([]domain.FundingRate, error) {
	if a.getFundingRateHistory == nil {
		return nil, kerrors.New(kerrors.Other, "account: get_funding_rate_history not configured for this connector")
	}
	return a.getFundingRateHistory(ctx, a.rest, symbol, start, end, limit)
}

var (
	_ ports.MarketDataSource  = (*MarketComponent[struct{}])(nil)
	_ ports.OrderPlacer       = (*TradingComponent)(nil)
	_ ports.AccountInfo       = (*AccountComponent)(nil)
	_ ports.FundingRateSource = (*AccountComponent)(nil)
)
