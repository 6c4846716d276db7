package sphere

// OrderSide is the side of a real order or contract on the live book.
type OrderSide string

const (
	OrderSideUnspecified OrderSide = "UNSPECIFIED"
	OrderSideBid         OrderSide = "BID"
	OrderSideAsk         OrderSide = "ASK"
)

// Tradability tells whether a real order is currently eligible to be traded
// against.
type Tradability string

const (
	TradabilityUnspecified Tradability = "UNSPECIFIED"
	TradabilityTradable    Tradability = "TRADABLE"
	TradabilityNotTradable Tradability = "NOT_TRADABLE"
	TradabilityImplied     Tradability = "IMPLIED"
)

// ExpiryType describes the shape of the traded instrument.
type ExpiryType string

const (
	ExpiryTypeUnspecified ExpiryType = "UNSPECIFIED"
	ExpiryTypeFlat        ExpiryType = "FLAT"
	ExpiryTypeSpread      ExpiryType = "SPREAD"
	ExpiryTypeFly         ExpiryType = "FLY"
	ExpiryTypeStrip       ExpiryType = "STRIP"
)

type SpreadSideType string

const (
	SpreadSideUnspecified SpreadSideType = "UNSPECIFIED"
	SpreadSideBuy         SpreadSideType = "BUY"
	SpreadSideSell        SpreadSideType = "SELL"
)

type InterestType string

const (
	InterestTypeLive       InterestType = "LIVE"
	InterestTypeIndicative InterestType = "INDICATIVE"
)

// OrderStacksEventType distinguishes full snapshots from deltas on the order
// event stream.
type OrderStacksEventType string

const (
	OrderStacksEventTypeSnapshot OrderStacksEventType = "SNAPSHOT"
	OrderStacksEventTypeAdded    OrderStacksEventType = "ADDED"
	OrderStacksEventTypeUpdated  OrderStacksEventType = "UPDATED"
	OrderStacksEventTypeRemoved  OrderStacksEventType = "REMOVED"
)

// OrderStacks is one batch on the order event stream: zero or more contract
// stacks, each with zero or more orders.
type OrderStacks struct {
	EventType OrderStacksEventType `json:"eventType"`
	Body      []*OrderStack        `json:"body"`
}

type OrderStack struct {
	Contract *Contract `json:"contract"`
	Orders   []*Order  `json:"orders"`
}

// Contract describes the traded instrument shape. For multi-leg shapes the
// legs carry their own expiries and spread-side markers; strips additionally
// carry ordered constituent expiries.
type Contract struct {
	InstrumentID   string         `json:"instrumentId"`
	InstrumentName string         `json:"instrumentName"`
	ExpiryType     ExpiryType     `json:"expiryType"`
	Expiry         string         `json:"expiry"`
	Side           OrderSide      `json:"side"`
	Legs           []*ContractLeg `json:"legs,omitempty"`
	Constituents   []*Constituent `json:"constituents,omitempty"`
}

type ContractLeg struct {
	InstrumentName string         `json:"instrumentName"`
	Expiry         string         `json:"expiry"`
	SpreadSide     SpreadSideType `json:"spreadSide"`
	Constituents   []*Constituent `json:"constituents,omitempty"`
}

type Constituent struct {
	ID     string `json:"id"`
	Expiry string `json:"expiry"`
}

// Order is a real order on the live book. Read-only to consumers.
type Order struct {
	ID            string       `json:"id"`
	InstanceID    string       `json:"instanceId"`
	UpdatedTime   int64        `json:"updatedTime"`
	Tradability   Tradability  `json:"tradability"`
	StackPosition int          `json:"stackPosition"`
	InterestType  InterestType `json:"interestType"`
	Price         *PriceDetail `json:"price"`
}

// PriceDetail carries price and quantity as exact decimal strings.
type PriceDetail struct {
	PerPriceUnit string `json:"perPriceUnit"`
	Quantity     string `json:"quantity"`
	Units        string `json:"units,omitempty"`
	UnitPeriod   string `json:"unitPeriod,omitempty"`
}

// TradeOrderRequest asks the backend to trade against an existing real order.
// Quantity is an exact decimal string. IdempotencyKey must be freshly
// generated per logical attempt; the backend uses it for at-most-once trade
// application.
type TradeOrderRequest struct {
	ID             string `json:"id"`
	Quantity       string `json:"quantity"`
	IdempotencyKey string `json:"idempotencyKey"`
}

type OrderResponse struct {
	ID         string `json:"id"`
	InstanceID string `json:"instanceId"`
}
