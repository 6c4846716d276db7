package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/ghost-trader/pkg/ghost"
)

func sampleFill() *ghost.Fill {
	return &ghost.Fill{
		GhostOrderID: "ghost-1",
		RealOrderID:  "real-1",
		Market: ghost.MarketKey{
			Shape:      ghost.ShapeFlat,
			Instrument: "NAPHTHA MOPJ",
			Expiries:   [3]string{"OCT-25"},
		},
		Side:         ghost.SideBid,
		Price:        decimal.RequireFromString("99.50"),
		Quantity:     decimal.NewFromInt(30),
		OriginalQty:  decimal.NewFromInt(50),
		RemainingQty: decimal.NewFromInt(20),
		ExecutedAt:   time.Now(),
	}
}

func TestNewGhostTrade(t *testing.T) {
	trade := NewGhostTrade(sampleFill())

	if trade.Market != "NAPHTHA MOPJ OCT-25 (FLAT)" {
		t.Errorf("market = %q", trade.Market)
	}
	if trade.Shape != "FLAT" || trade.Side != "BID" {
		t.Errorf("shape/side = %q/%q", trade.Shape, trade.Side)
	}
	if !trade.Quantity.Equal(decimal.NewFromInt(30)) {
		t.Errorf("quantity = %s, want 30", trade.Quantity)
	}
	if !trade.RemainingQty.Equal(decimal.NewFromInt(20)) {
		t.Errorf("remaining = %s, want 20", trade.RemainingQty)
	}
}

func TestInMemoryJournal(t *testing.T) {
	j := NewInMemoryJournal()

	if err := j.Record(context.Background(), NewGhostTrade(sampleFill())); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Record(context.Background(), NewGhostTrade(sampleFill())); err != nil {
		t.Fatalf("Record: %v", err)
	}

	trades := j.Trades()
	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}

	// Trades returns a copy.
	trades[0] = nil
	if j.Trades()[0] == nil {
		t.Error("mutating the returned slice affected the journal")
	}
}

type failingJournal struct{}

func (failingJournal) Record(context.Context, *GhostTrade) error {
	return errors.New("sink down")
}

func TestMultiKeepsRecordingPastFailedSink(t *testing.T) {
	mem := NewInMemoryJournal()
	multi := NewMulti(failingJournal{}, mem)

	if err := multi.Record(context.Background(), NewGhostTrade(sampleFill())); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(mem.Trades()) != 1 {
		t.Errorf("healthy sink got %d records, want 1", len(mem.Trades()))
	}
}
