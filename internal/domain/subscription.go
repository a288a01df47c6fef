package domain

import (
	"fmt"
	"time"
)

// KlineInterval is one of the closed set of candlestick intervals.
type KlineInterval string

const (
	Interval1m  KlineInterval = "1m"
	Interval3m  KlineInterval = "3m"
	Interval5m  KlineInterval = "5m"
	Interval15m KlineInterval = "15m"
	Interval30m KlineInterval = "30m"
	Interval1h  KlineInterval = "1h"
	Interval2h  KlineInterval = "2h"
	Interval4h  KlineInterval = "4h"
	Interval6h  KlineInterval = "6h"
	Interval8h  KlineInterval = "8h"
	Interval12h KlineInterval = "12h"
	Interval1d  KlineInterval = "1d"
	Interval3d  KlineInterval = "3d"
	Interval1w  KlineInterval = "1w"
	Interval1M  KlineInterval = "1M"
)

var intervalSeconds = map[KlineInterval]int64{
	Interval1m:  60,
	Interval3m:  3 * 60,
	Interval5m:  5 * 60,
	Interval15m: 15 * 60,
	Interval30m: 30 * 60,
	Interval1h:  int64(time.Hour / time.Second),
	Interval2h:  2 * int64(time.Hour/time.Second),
	Interval4h:  4 * int64(time.Hour/time.Second),
	Interval6h:  6 * int64(time.Hour/time.Second),
	Interval8h:  8 * int64(time.Hour/time.Second),
	Interval12h: 12 * int64(time.Hour/time.Second),
	Interval1d:  24 * int64(time.Hour/time.Second),
	Interval3d:  3 * 24 * int64(time.Hour/time.Second),
	Interval1w:  7 * 24 * int64(time.Hour/time.Second),
	Interval1M:  30 * 24 * int64(time.Hour/time.Second),
}

// ToSeconds returns the interval's duration in seconds. Total and injective
// within the closed set (§8 round-trip law).
func (i KlineInterval) ToSeconds() (int64, error) {
	secs, ok := intervalSeconds[i]
	if !ok {
		return 0, fmt.Errorf("kline interval: unknown interval %q", i)
	}
	return secs, nil
}

// ToWireString returns the exchange-agnostic canonical wire form, which for
// this kernel's closed set is the interval's own string value.
func (i KlineInterval) ToWireString() string { return string(i) }

// SubscriptionKind tags which variant of SubscriptionType is present.
type SubscriptionKind int

const (
	SubTicker SubscriptionKind = iota
	SubOrderBook
	SubTrades
	SubKlines
)

// SubscriptionType is a tagged union over the four subscribable stream
// shapes. Only the field matching Kind is meaningful.
type SubscriptionType struct {
	Kind          SubscriptionKind
	OrderBookDepth *uint32 // set only when Kind == SubOrderBook
	KlineInterval KlineInterval // set only when Kind == SubKlines
}

func NewTickerSubscription() SubscriptionType { return SubscriptionType{Kind: SubTicker} }

func NewOrderBookSubscription(depth *uint32) SubscriptionType {
	return SubscriptionType{Kind: SubOrderBook, OrderBookDepth: depth}
}

func NewTradesSubscription() SubscriptionType { return SubscriptionType{Kind: SubTrades} }

func NewKlinesSubscription(interval KlineInterval) SubscriptionType {
	return SubscriptionType{Kind: SubKlines, KlineInterval: interval}
}

// WebSocketConfig is an immutable value copied into each session.
type WebSocketConfig struct {
	AutoReconnect        bool
	PingInterval         *time.Duration
	MaxReconnectAttempts *uint32
}

// DefaultWebSocketConfig mirrors the reconnect wrapper's own defaults (§4.5):
// auto-reconnect on, 10 max attempts.
func DefaultWebSocketConfig() WebSocketConfig {
	attempts := uint32(10)
	return WebSocketConfig{AutoReconnect: true, MaxReconnectAttempts: &attempts}
}

// MarketDataKind tags which variant of MarketDataType is present.
type MarketDataKind int

const (
	MDTicker MarketDataKind = iota
	MDOrderBook
	MDTrade
	MDKline
)

// MarketDataType is the tagged union a MarketDataSource subscription yields,
// one decoded message at a time (§4.6).
type MarketDataType struct {
	Kind      MarketDataKind
	Ticker    *Ticker
	OrderBook *OrderBook
	Trade     *Trade
	Kline     *Kline
}
