package main

import (
	"bufio"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/joripage/ghost-trader/pkg/ghost"
)

// promptForGhostOrders interactively collects ghost orders until the user
// types 'done'. Invalid input is reported and re-prompted, never fatal.
func promptForGhostOrders(reader *bufio.Reader, trader *ghost.Trader) {
	log := zap.S()
	log.Info("--- Ghost Order Setup ---")
	log.Info("Enter your ghost orders. Type 'done' when finished.")
	log.Info("(Instrument and expiry matching is case-insensitive)")

	for {
		shape := strings.ToLower(ask(reader, "Enter shape (flat/spread/fly/strip) or 'done': "))
		if shape == "done" {
			break
		}

		instrument := ask(reader, "Enter Instrument Name (e.g., 'Naphtha MOPJ'): ")

		var side ghost.Side
		for side == "" {
			switch answer := strings.ToLower(ask(reader, "Enter Side ('buy' or 'sell'): ")); answer {
			case "buy":
				side = ghost.SideBid
			case "sell":
				side = ghost.SideAsk
			default:
				log.Errorf("Unknown side %q. Please enter 'buy' or 'sell'.", answer)
			}
		}

		var order ghost.Order
		var err error
		switch shape {
		case "flat":
			expiry := ask(reader, "Enter Expiry (e.g., 'Oct-25'): ")
			price := ask(reader, "Enter Price: ")
			quantity := ask(reader, "Enter Quantity: ")
			order, err = ghost.NewFlatOrder(instrument, expiry, side, price, quantity)
		case "spread":
			sellExpiry := ask(reader, "Enter Sell Leg Expiry: ")
			buyExpiry := ask(reader, "Enter Buy Leg Expiry: ")
			price := ask(reader, "Enter Price: ")
			quantity := ask(reader, "Enter Quantity: ")
			order, err = ghost.NewSpreadOrder(instrument, sellExpiry, buyExpiry, side, price, quantity)
		case "fly":
			expiry1 := ask(reader, "Enter Leg 1 Expiry: ")
			expiry2 := ask(reader, "Enter Leg 2 Expiry: ")
			expiry3 := ask(reader, "Enter Leg 3 Expiry: ")
			price := ask(reader, "Enter Price: ")
			quantity := ask(reader, "Enter Quantity: ")
			order, err = ghost.NewFlyOrder(instrument, expiry1, expiry2, expiry3, side, price, quantity)
		case "strip":
			front := ask(reader, "Enter Front Expiry: ")
			back := ask(reader, "Enter Back Expiry: ")
			price := ask(reader, "Enter Price: ")
			quantity := ask(reader, "Enter Quantity: ")
			order, err = ghost.NewStripOrder(instrument, front, back, side, price, quantity)
		default:
			log.Errorf("Unknown shape %q. Please try again.", shape)
			continue
		}

		if err != nil {
			log.Errorf("Invalid input: %v. Please try again.", err)
			continue
		}

		trader.AddOrder(order)
		fmt.Println(strings.Repeat("-", 20))
	}

	log.Info("--- Configured Ghost Order Book ---")
	fmt.Println(trader.Summary())
	log.Info("-----------------------------------")
}

func ask(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
