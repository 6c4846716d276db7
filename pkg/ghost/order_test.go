package ghost

import (
	"errors"
	"testing"
)

func TestNewFlatOrderValidation(t *testing.T) {
	if _, err := NewFlatOrder("Naphtha MOPJ", "Oct-25", "LONG", "650", "10"); !errors.Is(err, ErrInvalidOrderInput) {
		t.Errorf("bad side: got %v, want ErrInvalidOrderInput", err)
	}
	if _, err := NewFlatOrder("Naphtha MOPJ", "Oct-25", SideBid, "abc", "10"); !errors.Is(err, ErrInvalidOrderInput) {
		t.Errorf("bad price: got %v, want ErrInvalidOrderInput", err)
	}
	if _, err := NewFlatOrder("Naphtha MOPJ", "Oct-25", SideBid, "650", "ten"); !errors.Is(err, ErrInvalidOrderInput) {
		t.Errorf("bad quantity: got %v, want ErrInvalidOrderInput", err)
	}
	if _, err := NewFlatOrder("Naphtha MOPJ", "Oct-25", SideBid, "650", "0"); !errors.Is(err, ErrInvalidOrderInput) {
		t.Errorf("zero quantity: got %v, want ErrInvalidOrderInput", err)
	}
	if _, err := NewFlatOrder("Naphtha MOPJ", "Oct-25", SideBid, "650", "-5"); !errors.Is(err, ErrInvalidOrderInput) {
		t.Errorf("negative quantity: got %v, want ErrInvalidOrderInput", err)
	}
}

func TestNewOrderNormalization(t *testing.T) {
	order, err := NewFlatOrder("  naphtha mopj ", " oct-25 ", SideBid, "650.5", "10")
	if err != nil {
		t.Fatalf("NewFlatOrder: %v", err)
	}

	if order.Instrument() != "NAPHTHA MOPJ" {
		t.Errorf("instrument = %q, want %q", order.Instrument(), "NAPHTHA MOPJ")
	}
	key := order.MarketKey()
	if key.Expiries[0] != "OCT-25" {
		t.Errorf("expiry = %q, want %q", key.Expiries[0], "OCT-25")
	}
	if !order.RemainingQty().Equal(order.OriginalQty()) {
		t.Errorf("new order remaining %s != original %s", order.RemainingQty(), order.OriginalQty())
	}
	if order.ID() == "" {
		t.Error("order id is empty")
	}
}

func TestMarketKeysPerShape(t *testing.T) {
	flat, _ := NewFlatOrder("Naphtha MOPJ", "Oct-25", SideBid, "650", "10")
	spread, _ := NewSpreadOrder("Naphtha MOPJ", "Oct-25", "Nov-25", SideBid, "2.5", "10")
	fly, _ := NewFlyOrder("Naphtha MOPJ", "Oct-25", "Nov-25", "Dec-25", SideAsk, "1.25", "5")
	strip, _ := NewStripOrder("Naphtha MOPJ", "Q4-25", "Q4-25", SideAsk, "648", "15")

	wantFlat := MarketKey{Shape: ShapeFlat, Instrument: "NAPHTHA MOPJ", Expiries: [3]string{"OCT-25"}}
	if flat.MarketKey() != wantFlat {
		t.Errorf("flat key = %+v, want %+v", flat.MarketKey(), wantFlat)
	}

	wantSpread := MarketKey{Shape: ShapeSpread, Instrument: "NAPHTHA MOPJ", Expiries: [3]string{"OCT-25", "NOV-25"}}
	if spread.MarketKey() != wantSpread {
		t.Errorf("spread key = %+v, want %+v", spread.MarketKey(), wantSpread)
	}

	wantFly := MarketKey{Shape: ShapeFly, Instrument: "NAPHTHA MOPJ", Expiries: [3]string{"OCT-25", "NOV-25", "DEC-25"}}
	if fly.MarketKey() != wantFly {
		t.Errorf("fly key = %+v, want %+v", fly.MarketKey(), wantFly)
	}

	wantStrip := MarketKey{Shape: ShapeStrip, Instrument: "NAPHTHA MOPJ", Expiries: [3]string{"Q4-25", "Q4-25"}}
	if strip.MarketKey() != wantStrip {
		t.Errorf("strip key = %+v, want %+v", strip.MarketKey(), wantStrip)
	}
}

func TestSpreadLegOrderIsSignificant(t *testing.T) {
	a, _ := NewSpreadOrder("Naphtha MOPJ", "Oct-25", "Nov-25", SideBid, "2.5", "10")
	b, _ := NewSpreadOrder("Naphtha MOPJ", "Nov-25", "Oct-25", SideBid, "2.5", "10")

	if a.MarketKey() == b.MarketKey() {
		t.Errorf("swapped spread legs must produce a different market key, both = %+v", a.MarketKey())
	}
}
