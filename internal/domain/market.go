package domain

import "fmt"

// Market describes one tradable instrument on a venue.
type Market struct {
	Symbol         Symbol
	Status         string
	BasePrecision  uint8
	QuotePrecision uint8
	MinQty         *Quantity
	MaxQty         *Quantity
	MinPrice       *Price
	MaxPrice       *Price
}

// Validate checks the invariants stated in §3 for Market.
func (m Market) Validate() error {
	if m.BasePrecision > 18 {
		return fmt.Errorf("market %s: base precision %d exceeds 18", m.Symbol, m.BasePrecision)
	}
	if m.QuotePrecision > 18 {
		return fmt.Errorf("market %s: quote precision %d exceeds 18", m.Symbol, m.QuotePrecision)
	}
	if m.MinQty != nil && m.MaxQty != nil && m.MinQty.GreaterThan(*m.MaxQty) {
		return fmt.Errorf("market %s: min_qty > max_qty", m.Symbol)
	}
	if m.MinPrice != nil && m.MaxPrice != nil && m.MinPrice.GreaterThan(*m.MaxPrice) {
		return fmt.Errorf("market %s: min_price > max_price", m.Symbol)
	}
	return nil
}

// OrderBookLevel is one price/quantity rung of a book side.
type OrderBookLevel struct {
	Price    Price
	Quantity Quantity
}

// OrderBook is a symbol's current bid/ask ladder.
type OrderBook struct {
	Symbol       Symbol
	Bids         []OrderBookLevel
	Asks         []OrderBookLevel
	LastUpdateID int64
}

// Validate checks the ordering invariants stated in §3 and §8 invariant 3:
// bids strictly descending, asks strictly ascending, best bid < best ask.
func (ob OrderBook) Validate() error {
	for i := 1; i < len(ob.Bids); i++ {
		if !ob.Bids[i-1].Price.GreaterThan(ob.Bids[i].Price) {
			return fmt.Errorf("order book %s: bids not strictly descending at index %d", ob.Symbol, i)
		}
	}
	for i := 1; i < len(ob.Asks); i++ {
		if !ob.Asks[i].Price.GreaterThan(ob.Asks[i-1].Price) {
			return fmt.Errorf("order book %s: asks not strictly ascending at index %d", ob.Symbol, i)
		}
	}
	if len(ob.Bids) > 0 && len(ob.Asks) > 0 {
		if !ob.Bids[0].Price.LessThan(ob.Asks[0].Price) {
			return fmt.Errorf("order book %s: best bid %s not below best ask %s", ob.Symbol, ob.Bids[0].Price, ob.Asks[0].Price)
		}
	}
	return nil
}

// Ticker is a 24h rolling aggregate for a symbol.
type Ticker struct {
	Symbol             Symbol
	LastPrice          Price
	PriceChange        Price
	PriceChangePercent Rate
	HighPrice          Price
	LowPrice           Price
	Volume             Volume
	QuoteVolume        Volume
	OpenTime           Timestamp
	CloseTime          Timestamp
	Count              int64
}

// Kline is one candlestick for a symbol/interval.
type Kline struct {
	Symbol          Symbol
	OpenTime        Timestamp
	CloseTime       Timestamp
	Interval        KlineInterval
	Open            Price
	High            Price
	Low             Price
	Close           Price
	Volume          Volume
	NumberOfTrades  int64
	FinalBar        bool
}

// Validate checks §3/§8 invariant 4: low <= min(open,close) <= max(open,close) <= high,
// and open_time < close_time.
func (k Kline) Validate() error {
	minOC := k.Open
	maxOC := k.Open
	if k.Close.LessThan(minOC) {
		minOC = k.Close
	}
	if k.Close.GreaterThan(maxOC) {
		maxOC = k.Close
	}
	if k.Low.GreaterThan(minOC) {
		return fmt.Errorf("kline %s: low %s exceeds min(open,close) %s", k.Symbol, k.Low, minOC)
	}
	if minOC.GreaterThan(maxOC) {
		return fmt.Errorf("kline %s: internal min/max inversion", k.Symbol)
	}
	if maxOC.GreaterThan(k.High) {
		return fmt.Errorf("kline %s: max(open,close) %s exceeds high %s", k.Symbol, maxOC, k.High)
	}
	if k.OpenTime >= k.CloseTime {
		return fmt.Errorf("kline %s: open_time %d not before close_time %d", k.Symbol, k.OpenTime, k.CloseTime)
	}
	return nil
}

// Trade is a single executed trade print.
type Trade struct {
	ID           int64
	Symbol       Symbol
	Price        Price
	Quantity     Quantity
	Timestamp    Timestamp
	IsBuyerMaker bool
}

// FundingRate is a perpetual venue's funding snapshot for a symbol.
type FundingRate struct {
	Symbol              Symbol
	FundingRate         *Rate
	PreviousFundingRate *Rate
	NextFundingRate     *Rate
	FundingTime         *Timestamp
	NextFundingTime     *Timestamp
	MarkPrice           *Price
	IndexPrice          *Price
	Timestamp           Timestamp
}
