package ghost

import (
	"fmt"
	"sort"
	"strings"
)

type bookSides struct {
	bids []Order
	asks []Order
}

// Book maps market keys to price-sorted bid and ask lists of ghost orders.
// The Book itself is not safe for concurrent use: it is owned by the Trader
// and every access happens under the Trader's lock.
type Book struct {
	markets map[MarketKey]*bookSides
}

func NewBook() *Book {
	return &Book{markets: make(map[MarketKey]*bookSides)}
}

// Upsert inserts an order into the correct side list for its market key and
// re-establishes the side ordering: bids descending, asks ascending.
func (b *Book) Upsert(order Order) {
	key := order.MarketKey()
	sides, ok := b.markets[key]
	if !ok {
		sides = &bookSides{}
		b.markets[key] = sides
	}

	if order.Side() == SideBid {
		sides.bids = append(sides.bids, order)
		sort.SliceStable(sides.bids, func(i, j int) bool {
			return sides.bids[i].Price().GreaterThan(sides.bids[j].Price())
		})
	} else {
		sides.asks = append(sides.asks, order)
		sort.SliceStable(sides.asks, func(i, j int) bool {
			return sides.asks[i].Price().LessThan(sides.asks[j].Price())
		})
	}
}

// Remove deletes the order from its side list. Called when the remaining
// quantity reaches zero.
func (b *Book) Remove(order Order) {
	sides, ok := b.markets[order.MarketKey()]
	if !ok {
		return
	}

	if order.Side() == SideBid {
		sides.bids = removeByID(sides.bids, order.ID())
	} else {
		sides.asks = removeByID(sides.asks, order.ID())
	}
}

func removeByID(orders []Order, id string) []Order {
	for i, o := range orders {
		if o.ID() == id {
			return append(orders[:i], orders[i+1:]...)
		}
	}
	return orders
}

// BestCandidates returns the ghost side opposite to the incoming real order:
// bids for an incoming ask, asks for an incoming bid. The returned slice is
// in best-first order; callers only ever consider the head.
func (b *Book) BestCandidates(key MarketKey, incoming Side) []Order {
	sides, ok := b.markets[key]
	if !ok {
		return nil
	}
	if incoming == SideAsk {
		return sides.bids
	}
	return sides.asks
}

// Summary renders the configured book for display, markets sorted by key.
func (b *Book) Summary() string {
	if len(b.markets) == 0 {
		return "No ghost orders have been configured."
	}

	keys := make([]MarketKey, 0, len(b.markets))
	for k := range b.markets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	var sb strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&sb, "Market: %s\n", key)
		for _, o := range b.markets[key].asks {
			fmt.Fprintf(&sb, "  - %s\n", o)
		}
		for _, o := range b.markets[key].bids {
			fmt.Fprintf(&sb, "  - %s\n", o)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
