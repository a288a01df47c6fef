package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRequest(t *testing.T, orderType OrderType, price, stopPrice *string, qty string) OrderRequest {
	t.Helper()
	req := OrderRequest{
		Symbol:    mustSymbol(t, "BTC", "USDT"),
		Side:      Buy,
		OrderType: orderType,
		Quantity:  mustQuantity(t, qty),
	}
	if price != nil {
		p := mustPrice(t, *price)
		req.Price = &p
	}
	if stopPrice != nil {
		sp := mustPrice(t, *stopPrice)
		req.StopPrice = &sp
	}
	return req
}

func strPtr(s string) *string { return &s }

func TestOrderRequest_Validate_MarketOrderNeedsNoPrice(t *testing.T) {
	req := orderRequest(t, Market, nil, nil, "1")
	assert.NoError(t, req.Validate())
}

func TestOrderRequest_Validate_LimitWithoutPriceIsRejected(t *testing.T) {
	req := orderRequest(t, Limit, nil, nil, "0.001")
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a price")
}

func TestOrderRequest_Validate_LimitWithPriceIsAccepted(t *testing.T) {
	req := orderRequest(t, Limit, strPtr("30000"), nil, "0.001")
	assert.NoError(t, req.Validate())
}

func TestOrderRequest_Validate_StopFamilyWithoutStopPriceIsRejected(t *testing.T) {
	req := orderRequest(t, StopLoss, nil, nil, "1")
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a stop price")
}

func TestOrderRequest_Validate_StopLossLimitRequiresBothPrices(t *testing.T) {
	req := orderRequest(t, StopLossLimit, nil, strPtr("29000"), "1")
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a price")

	req = orderRequest(t, StopLossLimit, strPtr("29500"), strPtr("29000"), "1")
	assert.NoError(t, req.Validate())
}

func TestOrderRequest_Validate_RejectsNonPositiveQuantity(t *testing.T) {
	req := orderRequest(t, Market, nil, nil, "0")
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity must be positive")
}

func TestOrderRequest_Validate_RejectsNonPositivePrice(t *testing.T) {
	req := orderRequest(t, Limit, strPtr("0"), nil, "1")
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price must be positive")
}

func TestOrderRequest_Validate_RejectsNonPositiveStopPrice(t *testing.T) {
	req := orderRequest(t, StopLoss, nil, strPtr("-1"), "1")
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop price must be positive")
}
