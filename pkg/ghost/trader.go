package ghost

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joripage/ghost-trader/pkg/sphere"
)

// versionKey identifies one evaluated version of a real order.
type versionKey struct {
	orderID     string
	updatedTime int64
}

// Fill reports one successful trade of a real order against a ghost order.
type Fill struct {
	GhostOrderID string
	RealOrderID  string
	Market       MarketKey
	Side         Side
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	OriginalQty  decimal.Decimal
	RemainingQty decimal.Decimal
	ExecutedAt   time.Time
}

// Trader owns the ghost order book and evaluates the live order-event stream
// against it. All book reads and writes, the processed-version set and every
// matching decision are serialized under a single lock; trade submissions
// happen while the lock is held, so fills never interleave.
type Trader struct {
	book     *Book
	executor TradeExecutor

	// Append-only for the lifetime of the process. Unbounded growth is a
	// known, accepted trade-off.
	processedVersions map[versionKey]struct{}

	fillCallbacks []func(*Fill)

	mu sync.Mutex
}

func NewTrader(executor TradeExecutor) *Trader {
	return &Trader{
		book:              NewBook(),
		executor:          executor,
		processedVersions: make(map[versionKey]struct{}),
	}
}

// RegisterFillCallback adds a callback invoked after every successful fill,
// while the processing lock is still held. Register before streaming starts.
func (t *Trader) RegisterFillCallback(cb func(*Fill)) {
	t.fillCallbacks = append(t.fillCallbacks, cb)
}

// AddOrder inserts a validated ghost order into the book. Safe to call while
// streaming is live.
func (t *Trader) AddOrder(order Order) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.book.Upsert(order)
	zap.S().Infof("added ghost order: %s", order)
}

// Summary renders the configured ghost book for display.
func (t *Trader) Summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.book.Summary()
}

// OnOrderEvent handles one batch from the order event stream. Within each
// contract stack, orders are processed in ascending stack position: position
// encodes priority rank on the real book and must be observed in rank order
// even if the wire delivered the orders unordered.
func (t *Trader) OnOrderEvent(stacks *sphere.OrderStacks) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if stacks == nil || len(stacks.Body) == 0 {
		return
	}

	for _, stack := range stacks.Body {
		orders := make([]*sphere.Order, len(stack.Orders))
		copy(orders, stack.Orders)
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].StackPosition < orders[j].StackPosition
		})

		for _, realOrder := range orders {
			t.evaluate(realOrder, stack.Contract)
		}
	}
}

// evaluate runs the dedup, tradability and resolution gates, then attempts a
// match. Every failure here is non-fatal: it is logged and the next order in
// the batch is processed.
func (t *Trader) evaluate(realOrder *sphere.Order, contract *sphere.Contract) {
	log := zap.S().With("real_order_id", realOrder.ID, "updated_time", realOrder.UpdatedTime)

	version := versionKey{orderID: realOrder.ID, updatedTime: realOrder.UpdatedTime}
	if _, seen := t.processedVersions[version]; seen {
		log.Debug("skipping, already processed this version")
		return
	}
	t.processedVersions[version] = struct{}{}

	if realOrder.Tradability != sphere.TradabilityTradable {
		log.Infow("skipping, not tradable", "tradability", realOrder.Tradability)
		return
	}

	key, err := MarketKeyFromContract(contract)
	if err != nil {
		log.Warnw("skipping, cannot resolve market key", "error", err)
		return
	}

	log.Debugw("new tradable order, evaluating for a match",
		"market", key.String(), "stack_position", realOrder.StackPosition)
	t.matchAndTrade(realOrder, contract, key)
}

func (t *Trader) matchAndTrade(realOrder *sphere.Order, contract *sphere.Contract, key MarketKey) {
	log := zap.S().With("real_order_id", realOrder.ID, "market", key.String())

	if realOrder.Price == nil {
		log.Warn("skipping, order has no price detail")
		return
	}

	realPrice, err := decimal.NewFromString(realOrder.Price.PerPriceUnit)
	if err != nil {
		log.Warnw("skipping, order price is not numeric", "price", realOrder.Price.PerPriceUnit)
		return
	}
	realQty, err := decimal.NewFromString(realOrder.Price.Quantity)
	if err != nil {
		log.Warnw("skipping, order quantity is not numeric", "quantity", realOrder.Price.Quantity)
		return
	}

	incoming := sideFromContract(contract.Side)
	if incoming == "" {
		log.Warnw("skipping, contract has no side", "side", contract.Side)
		return
	}

	// Only the best (head) candidate is ever considered: the side is
	// price-sorted, so once the head fails the price check no later
	// candidate can pass it either.
	for {
		candidates := t.book.BestCandidates(key, incoming)
		if len(candidates) == 0 {
			log.Debug("no match: no ghost orders on the opposite side")
			return
		}

		head := candidates[0]
		if !head.RemainingQty().IsPositive() {
			log.Debugf("removing exhausted ghost order: %s", head)
			t.book.Remove(head)
			continue
		}

		if !priceCompatible(head, realPrice) {
			log.Debugf("no price match against %s at real price %s", head, realPrice)
			return
		}

		tradeQty := decimal.Min(head.RemainingQty(), realQty)
		if !tradeQty.IsPositive() {
			log.Debugf("skipping candidate, computed trade quantity %s is not positive", tradeQty)
			return
		}

		log.Infof("match found: real %s %s @ %s against ghost %s",
			incoming, realQty, realPrice, head)

		if err := t.executor.Execute(context.Background(), realOrder, tradeQty, head.Side()); err != nil {
			// The ghost order is left untouched; the next matching event
			// may re-attempt naturally.
			log.Errorw("trade execution failed, ghost order unchanged", "error", err)
			return
		}

		head.fill(tradeQty)
		log.Infof("ghost order filled for %s, remaining %s", tradeQty, head.RemainingQty())

		if !head.RemainingQty().IsPositive() {
			log.Infof("ghost order fully filled and removed: %s", head)
			t.book.Remove(head)
		}

		t.emitFill(&Fill{
			GhostOrderID: head.ID(),
			RealOrderID:  realOrder.ID,
			Market:       key,
			Side:         head.Side(),
			Price:        realPrice,
			Quantity:     tradeQty,
			OriginalQty:  head.OriginalQty(),
			RemainingQty: head.RemainingQty(),
			ExecutedAt:   time.Now(),
		})

		// One candidate per real-order event; never aggregate.
		return
	}
}

// priceCompatible: a resting bid lifts an incoming ask priced at or below it;
// a resting ask hits an incoming bid priced at or above it.
func priceCompatible(ghost Order, realPrice decimal.Decimal) bool {
	if ghost.Side() == SideBid {
		return ghost.Price().GreaterThanOrEqual(realPrice)
	}
	return ghost.Price().LessThanOrEqual(realPrice)
}

func sideFromContract(side sphere.OrderSide) Side {
	switch side {
	case sphere.OrderSideBid:
		return SideBid
	case sphere.OrderSideAsk:
		return SideAsk
	default:
		return ""
	}
}

func (t *Trader) emitFill(fill *Fill) {
	for _, cb := range t.fillCallbacks {
		cb(fill)
	}
}
