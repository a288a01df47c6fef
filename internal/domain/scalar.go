// Package domain holds the kernel's value types: decimal scalars, symbols,
// market/order/account records, and subscription descriptors. Nothing in
// this package mutates after construction.
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is an exact, arbitrary-precision price scalar. Arithmetic never
// touches binary floating point.
type Price struct{ d decimal.Decimal }

// Quantity is an exact, arbitrary-precision quantity scalar.
type Quantity struct{ d decimal.Decimal }

// Volume is an exact, arbitrary-precision volume scalar.
type Volume struct{ d decimal.Decimal }

// NewPrice builds a Price from a decimal.Decimal.
func NewPrice(d decimal.Decimal) Price { return Price{d} }

// NewQuantity builds a Quantity from a decimal.Decimal.
func NewQuantity(d decimal.Decimal) Quantity { return Quantity{d} }

// NewVolume builds a Volume from a decimal.Decimal.
func NewVolume(d decimal.Decimal) Volume { return Volume{d} }

// ParsePrice parses the canonical decimal text form of a price.
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("parse price %q: %w", s, err)
	}
	return Price{d}, nil
}

// ParseQuantity parses the canonical decimal text form of a quantity.
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("parse quantity %q: %w", s, err)
	}
	return Quantity{d}, nil
}

// ParseVolume parses the canonical decimal text form of a volume.
func ParseVolume(s string) (Volume, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Volume{}, fmt.Errorf("parse volume %q: %w", s, err)
	}
	return Volume{d}, nil
}

func (p Price) String() string    { return p.d.String() }
func (q Quantity) String() string { return q.d.String() }
func (v Volume) String() string   { return v.d.String() }

func (p Price) Decimal() decimal.Decimal    { return p.d }
func (q Quantity) Decimal() decimal.Decimal { return q.d }
func (v Volume) Decimal() decimal.Decimal   { return v.d }

func (p Price) IsZero() bool    { return p.d.IsZero() }
func (q Quantity) IsZero() bool { return q.d.IsZero() }

func (p Price) Sign() int    { return p.d.Sign() }
func (q Quantity) Sign() int { return q.d.Sign() }

// Cmp returns -1, 0, or 1 per total order, matching decimal.Decimal.Cmp.
func (p Price) Cmp(other Price) int       { return p.d.Cmp(other.d) }
func (q Quantity) Cmp(other Quantity) int { return q.d.Cmp(other.d) }

func (p Price) LessThan(other Price) bool    { return p.d.LessThan(other.d) }
func (p Price) GreaterThan(other Price) bool { return p.d.GreaterThan(other.d) }
func (p Price) Equal(other Price) bool       { return p.d.Equal(other.d) }

func (q Quantity) LessThan(other Quantity) bool    { return q.d.LessThan(other.d) }
func (q Quantity) GreaterThan(other Quantity) bool { return q.d.GreaterThan(other.d) }
func (q Quantity) Equal(other Quantity) bool       { return q.d.Equal(other.d) }

func (p Price) Add(other Price) Price    { return Price{p.d.Add(other.d)} }
func (p Price) Sub(other Price) Price    { return Price{p.d.Sub(other.d)} }
func (q Quantity) Add(other Quantity) Quantity { return Quantity{q.d.Add(other.d)} }
func (q Quantity) Sub(other Quantity) Quantity { return Quantity{q.d.Sub(other.d)} }

// Mul multiplies a price by a quantity, yielding a volume (notional value).
func (p Price) Mul(q Quantity) Volume { return Volume{p.d.Mul(q.d)} }

// MarshalJSON renders the scalar as its canonical decimal string, per §3
// "Serialize as strings for wire compatibility".
func (p Price) MarshalJSON() ([]byte, error)    { return []byte(`"` + p.d.String() + `"`), nil }
func (q Quantity) MarshalJSON() ([]byte, error) { return []byte(`"` + q.d.String() + `"`), nil }
func (v Volume) MarshalJSON() ([]byte, error)   { return []byte(`"` + v.d.String() + `"`), nil }

func (p *Price) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(trimQuotes(b))
	if err != nil {
		return fmt.Errorf("unmarshal price: %w", err)
	}
	p.d = d
	return nil
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(trimQuotes(b))
	if err != nil {
		return fmt.Errorf("unmarshal quantity: %w", err)
	}
	q.d = d
	return nil
}

func (v *Volume) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(trimQuotes(b))
	if err != nil {
		return fmt.Errorf("unmarshal volume: %w", err)
	}
	v.d = d
	return nil
}

// trimQuotes strips surrounding JSON string quotes, tolerating bare numeric
// literals some venues emit for these fields.
func trimQuotes(b []byte) string {
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		return string(b[1 : len(b)-1])
	}
	return string(b)
}

// Timestamp is signed integer milliseconds since epoch.
type Timestamp int64

// Rate is an exact decimal scalar for dimensionless ratios (funding rates,
// percentage changes) that feed directly into settlement arithmetic and so
// must not be represented in binary floating point.
type Rate struct{ d decimal.Decimal }

func NewRate(d decimal.Decimal) Rate { return Rate{d} }

func ParseRate(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, fmt.Errorf("parse rate %q: %w", s, err)
	}
	return Rate{d}, nil
}

func (r Rate) String() string         { return r.d.String() }
func (r Rate) Decimal() decimal.Decimal { return r.d }
func (r Rate) MarshalJSON() ([]byte, error) { return []byte(`"` + r.d.String() + `"`), nil }

func (r *Rate) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(trimQuotes(b))
	if err != nil {
		return fmt.Errorf("unmarshal rate: %w", err)
	}
	r.d = d
	return nil
}
