package ports

import (
	"context"

	"connectorkit/internal/domain"
)

// MarketDataSource is implemented by every adapter (§4.6).
type MarketDataSource interface {
	GetMarkets(ctx context.Context) ([]domain.Market, error)
	GetKlines(ctx context.Context, symbol domain.Symbol, interval domain.KlineInterval, limit *int, start, end *domain.Timestamp) ([]domain.Kline, error)
	// SubscribeMarketData opens (or reuses) a reconnect-wrapped session and
	// returns a receive-only channel of decoded messages (§4.7). The channel
	// closes when the session terminally fails or when the context passed
	// to the subscribing call is canceled.
	SubscribeMarketData(ctx context.Context, symbols []domain.Symbol, types []domain.SubscriptionType, cfg *domain.WebSocketConfig) (<-chan domain.MarketDataType, error)
	GetWebSocketURL() string
}

// OrderPlacer is implemented by adapters offering trading (§4.6).
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderResponse, error)
	CancelOrder(ctx context.Context, symbol domain.Symbol, orderID int64) error
	// ModifyOrder is optional; adapters that cannot modify return
	// kerrors.New(kerrors.Other, ...) wrapping "unsupported".
	ModifyOrder(ctx context.Context, symbol domain.Symbol, orderID int64, req domain.OrderRequest) (domain.OrderResponse, error)
}

// AccountInfo is implemented by adapters exposing account state (§4.6).
type AccountInfo interface {
	GetAccountBalance(ctx context.Context) ([]domain.Balance, error)
	// GetPositions returns an empty slice for spot venues.
	GetPositions(ctx context.Context) ([]domain.Position, error)
}

// FundingRateSource is implemented by perpetual venues (§4.6).
type FundingRateSource interface {
	// GetFundingRates returns current funding for the given symbols, or all
	// symbols the venue knows about when symbols is nil.
	GetFundingRates(ctx context.Context, symbols []domain.Symbol) ([]domain.FundingRate, error)
	GetAllFundingRates(ctx context.Context) ([]domain.FundingRate, error)
	GetFundingRateHistory(ctx context.Context, symbol domain.Symbol, start, end *domain.Timestamp, limit *int) ([]domain.FundingRate, error)
}
