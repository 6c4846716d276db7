package sphere

import (
	"strings"
	"testing"
)

func TestFormatOrderStacks(t *testing.T) {
	if got := FormatOrderStacks(nil); got != "Order snapshot is empty." {
		t.Errorf("empty body = %q", got)
	}

	body := []*OrderStack{{
		Contract: &Contract{
			InstrumentName: "Naphtha MOPJ",
			ExpiryType:     ExpiryTypeSpread,
			Side:           OrderSideAsk,
			Legs: []*ContractLeg{
				{Expiry: "Oct-25", SpreadSide: SpreadSideSell},
				{Expiry: "Nov-25", SpreadSide: SpreadSideBuy},
			},
		},
		Orders: []*Order{{
			ID:          "real-1",
			UpdatedTime: 42,
			Tradability: TradabilityTradable,
			Price:       &PriceDetail{PerPriceUnit: "2.5", Quantity: "30", Units: "kt", UnitPeriod: "month"},
		}},
	}}

	out := FormatOrderStacks(body)
	for _, want := range []string{
		"Naphtha MOPJ",
		"Leg 1 (SELL)",
		"Leg 2 (BUY)",
		"ID: real-1",
		"30 kt/month",
		"Updated: 42",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	noOrders := []*OrderStack{{Contract: &Contract{InstrumentName: "Brent"}}}
	if !strings.Contains(FormatOrderStacks(noOrders), "(No active orders for this contract)") {
		t.Error("missing empty-orders line")
	}
}
