package ghost

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shape tags the four instrument-shape variants a ghost order can take.
type Shape string

const (
	ShapeFlat   Shape = "FLAT"
	ShapeSpread Shape = "SPREAD"
	ShapeFly    Shape = "FLY"
	ShapeStrip  Shape = "STRIP"
)

type Side string

const (
	SideBid Side = "BID"
	SideAsk Side = "ASK"
)

// MarketKey uniquely identifies a tradable instrument/expiry-shape
// combination. Unused expiry slots stay empty; spread keys hold the sell leg
// expiry first, strip keys hold front then back.
type MarketKey struct {
	Shape      Shape
	Instrument string
	Expiries   [3]string
}

func (k MarketKey) String() string {
	parts := []string{k.Instrument}
	for _, e := range k.Expiries {
		if e != "" {
			parts = append(parts, e)
		}
	}
	return fmt.Sprintf("%s (%s)", strings.Join(parts, " "), k.Shape)
}

// Order is a synthetic resting order held only in the local book. The four
// implementations form a closed set; each knows how to compute its market key
// and render itself.
type Order interface {
	ID() string
	Shape() Shape
	Instrument() string
	Side() Side
	Price() decimal.Decimal
	OriginalQty() decimal.Decimal
	RemainingQty() decimal.Decimal
	MarketKey() MarketKey
	String() string

	// fill is applied only after a successful trade execution.
	fill(qty decimal.Decimal)
}

type baseOrder struct {
	id           string
	instrument   string
	side         Side
	price        decimal.Decimal
	originalQty  decimal.Decimal
	remainingQty decimal.Decimal
}

func newBaseOrder(instrument string, side Side, price, quantity string) (baseOrder, error) {
	if side != SideBid && side != SideAsk {
		return baseOrder{}, fmt.Errorf("%w: side must be %s or %s", ErrInvalidOrderInput, SideBid, SideAsk)
	}

	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return baseOrder{}, fmt.Errorf("%w: price %q is not numeric", ErrInvalidOrderInput, price)
	}

	q, err := decimal.NewFromString(strings.TrimSpace(quantity))
	if err != nil {
		return baseOrder{}, fmt.Errorf("%w: quantity %q is not numeric", ErrInvalidOrderInput, quantity)
	}
	if !q.IsPositive() {
		return baseOrder{}, fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalidOrderInput, q)
	}

	return baseOrder{
		id:           uuid.NewString(),
		instrument:   normalize(instrument),
		side:         side,
		price:        p,
		originalQty:  q,
		remainingQty: q,
	}, nil
}

// normalize makes instrument and expiry matching case-insensitive.
func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (o *baseOrder) ID() string                    { return o.id }
func (o *baseOrder) Instrument() string            { return o.instrument }
func (o *baseOrder) Side() Side                    { return o.side }
func (o *baseOrder) Price() decimal.Decimal        { return o.price }
func (o *baseOrder) OriginalQty() decimal.Decimal  { return o.originalQty }
func (o *baseOrder) RemainingQty() decimal.Decimal { return o.remainingQty }

func (o *baseOrder) fill(qty decimal.Decimal) {
	o.remainingQty = o.remainingQty.Sub(qty)
}

func (o *baseOrder) describe(market string) string {
	return fmt.Sprintf("[%s] %s | Price: %s | Qty: %s/%s",
		o.side, market, o.price, o.remainingQty, o.originalQty)
}

// FlatOrder rests on a single outright expiry.
type FlatOrder struct {
	baseOrder
	expiry string
}

func NewFlatOrder(instrument, expiry string, side Side, price, quantity string) (*FlatOrder, error) {
	base, err := newBaseOrder(instrument, side, price, quantity)
	if err != nil {
		return nil, err
	}
	return &FlatOrder{baseOrder: base, expiry: normalize(expiry)}, nil
}

func (o *FlatOrder) Shape() Shape { return ShapeFlat }

func (o *FlatOrder) MarketKey() MarketKey {
	return MarketKey{Shape: ShapeFlat, Instrument: o.instrument, Expiries: [3]string{o.expiry}}
}

func (o *FlatOrder) String() string {
	return o.describe(fmt.Sprintf("%s %s", o.instrument, o.expiry))
}

// SpreadOrder rests on a two-leg calendar spread. The sell leg expiry always
// comes first in the key; swapping the legs is a different market.
type SpreadOrder struct {
	baseOrder
	sellExpiry string
	buyExpiry  string
}

func NewSpreadOrder(instrument, sellExpiry, buyExpiry string, side Side, price, quantity string) (*SpreadOrder, error) {
	base, err := newBaseOrder(instrument, side, price, quantity)
	if err != nil {
		return nil, err
	}
	return &SpreadOrder{
		baseOrder:  base,
		sellExpiry: normalize(sellExpiry),
		buyExpiry:  normalize(buyExpiry),
	}, nil
}

func (o *SpreadOrder) Shape() Shape { return ShapeSpread }

func (o *SpreadOrder) MarketKey() MarketKey {
	return MarketKey{
		Shape:      ShapeSpread,
		Instrument: o.instrument,
		Expiries:   [3]string{o.sellExpiry, o.buyExpiry},
	}
}

func (o *SpreadOrder) String() string {
	return o.describe(fmt.Sprintf("%s %s/%s SPREAD", o.instrument, o.sellExpiry, o.buyExpiry))
}

// FlyOrder rests on a three-leg butterfly; leg order is significant.
type FlyOrder struct {
	baseOrder
	expiries [3]string
}

func NewFlyOrder(instrument, expiry1, expiry2, expiry3 string, side Side, price, quantity string) (*FlyOrder, error) {
	base, err := newBaseOrder(instrument, side, price, quantity)
	if err != nil {
		return nil, err
	}
	return &FlyOrder{
		baseOrder: base,
		expiries:  [3]string{normalize(expiry1), normalize(expiry2), normalize(expiry3)},
	}, nil
}

func (o *FlyOrder) Shape() Shape { return ShapeFly }

func (o *FlyOrder) MarketKey() MarketKey {
	return MarketKey{Shape: ShapeFly, Instrument: o.instrument, Expiries: o.expiries}
}

func (o *FlyOrder) String() string {
	return o.describe(fmt.Sprintf("%s %s/%s/%s FLY",
		o.instrument, o.expiries[0], o.expiries[1], o.expiries[2]))
}

// StripOrder rests on a strip identified by its front and back expiries.
type StripOrder struct {
	baseOrder
	frontExpiry string
	backExpiry  string
}

func NewStripOrder(instrument, frontExpiry, backExpiry string, side Side, price, quantity string) (*StripOrder, error) {
	base, err := newBaseOrder(instrument, side, price, quantity)
	if err != nil {
		return nil, err
	}
	return &StripOrder{
		baseOrder:   base,
		frontExpiry: normalize(frontExpiry),
		backExpiry:  normalize(backExpiry),
	}, nil
}

func (o *StripOrder) Shape() Shape { return ShapeStrip }

func (o *StripOrder) MarketKey() MarketKey {
	return MarketKey{
		Shape:      ShapeStrip,
		Instrument: o.instrument,
		Expiries:   [3]string{o.frontExpiry, o.backExpiry},
	}
}

func (o *StripOrder) String() string {
	return o.describe(fmt.Sprintf("%s %s-%s STRIP", o.instrument, o.frontExpiry, o.backExpiry))
}
