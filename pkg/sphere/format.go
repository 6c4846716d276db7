package sphere

import (
	"fmt"
	"strings"
)

// FormatOrderStacks renders an order-stacks payload for display in the
// interactive layers.
func FormatOrderStacks(body []*OrderStack) string {
	if len(body) == 0 {
		return "Order snapshot is empty."
	}

	var lines []string
	for i, stack := range body {
		contract := stack.Contract
		lines = append(lines, fmt.Sprintf("--- Contract %d/%d ---", i+1, len(body)))

		if contract != nil {
			lines = append(lines, fmt.Sprintf("  %-14s%s", "Instrument:", contract.InstrumentName))
			lines = append(lines, fmt.Sprintf("  %-14s%s (%s)", "Expiry:", contract.Expiry, contract.ExpiryType))
			lines = append(lines, fmt.Sprintf("  %-14s%s", "Side:", contract.Side))

			if len(contract.Constituents) > 0 {
				lines = append(lines, "  Constituents:")
				for _, c := range contract.Constituents {
					lines = append(lines, fmt.Sprintf("    - %s", c.Expiry))
				}
			}

			if len(contract.Legs) > 0 {
				lines = append(lines, "  Legs:")
				for j, leg := range contract.Legs {
					name := leg.InstrumentName
					if name == "" {
						name = "N/A"
					}
					expiry := leg.Expiry
					if expiry == "" {
						expiry = "N/A"
					}
					lines = append(lines, fmt.Sprintf("    - Leg %d (%s): %s @ %s", j+1, leg.SpreadSide, name, expiry))
				}
			}
		}

		if len(stack.Orders) == 0 {
			lines = append(lines, "  (No active orders for this contract)")
			continue
		}

		lines = append(lines, fmt.Sprintf("  Orders (%d):", len(stack.Orders)))
		for _, order := range stack.Orders {
			price, qty := "", ""
			if order.Price != nil {
				price = order.Price.PerPriceUnit
				qty = order.Price.Quantity
				if order.Price.Units != "" {
					qty += " " + order.Price.Units
					if order.Price.UnitPeriod != "" {
						qty += "/" + order.Price.UnitPeriod
					}
				}
			}
			lines = append(lines, fmt.Sprintf(
				"    - ID: %s | Qty: %-20s | Price: %8s | Tradable: %-12s | Updated: %d | Stack Position: %d",
				order.ID, qty, price, order.Tradability, order.UpdatedTime, order.StackPosition))
		}
	}

	return strings.Join(lines, "\n")
}
