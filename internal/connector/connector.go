package connector

import (
	"context"

	"connectorkit/internal/domain"
)

// Connector composes Market/Trading/Account sub-components behind the
// capability traits (§4.6). The type parameter M is the venue's decoded
// WebSocket message type, threaded through from the Codec/Session layer.
type Connector[M any] struct {
	Market  *MarketComponent[M]
	Trading *TradingComponent
	Account *AccountComponent
}

// GetMarkets delegates to Market (§4.6 "trivial delegation").
func (c *Connector[M]) GetMarkets(ctx context.Context) ([]domain.Market, error) {
	return c.Market.GetMarkets(ctx)
}

func (c *Connector[M]) GetKlines(ctx context.Context, symbol domain.Symbol, interval domain.KlineInterval, limit *int, start, end *domain.Timestamp) ([]domain.Kline, error) {
	return c.Market.GetKlines(ctx, symbol, interval, limit, start, end)
}

func (c *Connector[M]) SubscribeMarketData(ctx context.Context, symbols []domain.Symbol, types []domain.SubscriptionType, cfg *domain.WebSocketConfig) (<-chan domain.MarketDataType, error) {
	return c.Market.SubscribeMarketData(ctx, symbols, types, cfg)
}

func (c *Connector[M]) GetWebSocketURL() string { return c.Market.GetWebSocketURL() }

func (c *Connector[M]) PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderResponse, error) {
	return c.Trading.PlaceOrder(ctx, req)
}

func (c *Connector[M]) CancelOrder(ctx context.Context, symbol domain.Symbol, orderID int64) error {
	return c.Trading.CancelOrder(ctx, symbol, orderID)
}

func (c *Connector[M]) ModifyOrder(ctx context.Context, symbol domain.Symbol, orderID int64, req domain.OrderRequest) (domain.OrderResponse, error) {
	return c.Trading.ModifyOrder(ctx, symbol, orderID, req)
}

func (c *Connector[M]) GetAccountBalance(ctx context.Context) ([]domain.Balance, error) {
	return c.Account.GetAccountBalance(ctx)
}

func (c *Connector[M]) GetPositions(ctx context.Context) ([]domain.Position, error) {
	return c.Account.GetPositions(ctx)
}

func (c *Connector[M]) GetFundingRates(ctx context.Context, symbols []domain.Symbol) ([]domain.FundingRate, error) {
	return c.Account.GetFundingRates(ctx, symbols)
}

func (c *Connector[M]) GetAllFundingRates(ctx context.Context) ([]domain.FundingRate, error) {
	return c.Account.GetAllFundingRates(ctx)
}

func (c *Connector[M]) GetFundingRateHistory(ctx context.Context, symbol domain.Symbol, start, end *domain.Timestamp, limit *int) ([]domain.FundingRate, error) {
	return c.Account.GetFundingRateHistory(ctx, symbol, start, end, limit)
}
