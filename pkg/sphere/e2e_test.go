package sphere_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/ghost-trader/pkg/ghost"
	"github.com/joripage/ghost-trader/pkg/sphere"
	"github.com/joripage/ghost-trader/pkg/sphere/spheretest"
)

// Full loop against the fake backend: a ghost bid rests, a tradable real ask
// arrives on the stream, and a trade request lands back on the backend.
func TestGhostFillOverLiveStream(t *testing.T) {
	server := spheretest.NewServer()
	defer server.Close()

	client := sphere.NewWSClient(&sphere.WSClientConfig{
		BaseURL:   server.BaseURL(),
		StreamURL: server.StreamURL(),
	})
	if err := client.Login(context.Background(), "trader", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	trader := ghost.NewTrader(ghost.NewSphereExecutor(client))

	fills := make(chan *ghost.Fill, 1)
	trader.RegisterFillCallback(func(f *ghost.Fill) { fills <- f })

	order, err := ghost.NewFlatOrder("Naphtha MOPJ", "Oct-25", ghost.SideBid, "100", "50")
	if err != nil {
		t.Fatalf("NewFlatOrder: %v", err)
	}
	trader.AddOrder(order)

	if err := client.SubscribeOrderEvents(trader.OnOrderEvent); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer client.UnsubscribeOrderEvents() //nolint:errcheck

	server.Inject(&sphere.OrderStacks{
		EventType: sphere.OrderStacksEventTypeAdded,
		Body: []*sphere.OrderStack{{
			Contract: &sphere.Contract{
				InstrumentName: "Naphtha MOPJ",
				ExpiryType:     sphere.ExpiryTypeFlat,
				Expiry:         "Oct-25",
				Side:           sphere.OrderSideAsk,
			},
			Orders: []*sphere.Order{{
				ID:          "real-1",
				UpdatedTime: 1,
				Tradability: sphere.TradabilityTradable,
				Price:       &sphere.PriceDetail{PerPriceUnit: "99.50", Quantity: "30"},
			}},
		}},
	})

	select {
	case fill := <-fills:
		if fill.RealOrderID != "real-1" {
			t.Errorf("fill real order id = %q, want real-1", fill.RealOrderID)
		}
		if !fill.Quantity.Equal(decimal.NewFromInt(30)) {
			t.Errorf("fill quantity = %s, want 30", fill.Quantity)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the ghost fill")
	}

	if !order.RemainingQty().Equal(decimal.NewFromInt(20)) {
		t.Errorf("ghost remaining = %s, want 20", order.RemainingQty())
	}

	captured := server.CapturedTrades()
	if len(captured) != 1 {
		t.Fatalf("backend captured %d trade requests, want 1", len(captured))
	}
	if captured[0].ID != "real-1" {
		t.Errorf("traded order id = %q, want real-1", captured[0].ID)
	}
	if captured[0].Quantity != "30" {
		t.Errorf("traded quantity = %q, want 30", captured[0].Quantity)
	}
	if captured[0].IdempotencyKey == "" {
		t.Error("trade request missing idempotency key")
	}
}

// A stubbed backend rejection must leave the ghost order untouched and in
// the book for later events.
func TestGhostFillBackendRejection(t *testing.T) {
	server := spheretest.NewServer()
	defer server.Close()

	client := sphere.NewWSClient(&sphere.WSClientConfig{
		BaseURL:   server.BaseURL(),
		StreamURL: server.StreamURL(),
	})
	if err := client.Login(context.Background(), "trader", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	trader := ghost.NewTrader(ghost.NewSphereExecutor(client))
	order, err := ghost.NewFlatOrder("Naphtha MOPJ", "Oct-25", ghost.SideBid, "100", "50")
	if err != nil {
		t.Fatalf("NewFlatOrder: %v", err)
	}
	trader.AddOrder(order)

	if err := client.SubscribeOrderEvents(trader.OnOrderEvent); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer client.UnsubscribeOrderEvents() //nolint:errcheck

	server.StubTrade(409, map[string]string{"error": "order already traded"})

	server.Inject(&sphere.OrderStacks{
		EventType: sphere.OrderStacksEventTypeAdded,
		Body: []*sphere.OrderStack{{
			Contract: &sphere.Contract{
				InstrumentName: "Naphtha MOPJ",
				ExpiryType:     sphere.ExpiryTypeFlat,
				Expiry:         "Oct-25",
				Side:           sphere.OrderSideAsk,
			},
			Orders: []*sphere.Order{{
				ID:          "real-1",
				UpdatedTime: 1,
				Tradability: sphere.TradabilityTradable,
				Price:       &sphere.PriceDetail{PerPriceUnit: "99.50", Quantity: "30"},
			}},
		}},
	})

	// The attempt reaches the backend even though it is rejected.
	deadline := time.Now().Add(5 * time.Second)
	for len(server.CapturedTrades()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the trade attempt")
		}
		time.Sleep(20 * time.Millisecond)
	}

	if !order.RemainingQty().Equal(decimal.NewFromInt(50)) {
		t.Errorf("ghost remaining = %s, want 50 untouched after rejection", order.RemainingQty())
	}
}
