package ghost

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joripage/ghost-trader/pkg/sphere"
)

// MarketKeyFromContract derives the ghost-book market key for an incoming
// real-market contract. The key scheme must stay aligned with the per-variant
// MarketKey methods in order.go; a contract that cannot be resolved is
// reported via ErrUnresolvableContract and dropped by the caller.
func MarketKeyFromContract(contract *sphere.Contract) (MarketKey, error) {
	if contract == nil {
		return MarketKey{}, fmt.Errorf("%w: missing contract", ErrUnresolvableContract)
	}

	instrument := normalize(contract.InstrumentName)

	switch contract.ExpiryType {
	case sphere.ExpiryTypeFlat:
		return flatKey(instrument, contract)
	case sphere.ExpiryTypeSpread:
		return spreadKey(instrument, contract)
	case sphere.ExpiryTypeFly:
		return flyKey(instrument, contract)
	case sphere.ExpiryTypeStrip:
		return stripKey(instrument, contract)
	default:
		return MarketKey{}, fmt.Errorf("%w: unrecognized expiry type %q",
			ErrUnresolvableContract, contract.ExpiryType)
	}
}

func flatKey(instrument string, contract *sphere.Contract) (MarketKey, error) {
	if contract.Expiry == "" {
		return MarketKey{}, fmt.Errorf("%w: flat contract %s has no expiry",
			ErrUnresolvableContract, instrument)
	}
	return MarketKey{
		Shape:      ShapeFlat,
		Instrument: instrument,
		Expiries:   [3]string{normalize(contract.Expiry)},
	}, nil
}

// spreadKey indexes spreads sell-leg first. The ordering is significant:
// ghost spread orders are keyed the same way, so a contract with the sell and
// buy markers swapped resolves to a different market.
func spreadKey(instrument string, contract *sphere.Contract) (MarketKey, error) {
	if len(contract.Legs) != 2 {
		return MarketKey{}, fmt.Errorf("%w: spread contract %s has %d legs, want 2",
			ErrUnresolvableContract, instrument, len(contract.Legs))
	}

	var sellExpiry, buyExpiry string
	for _, leg := range contract.Legs {
		switch leg.SpreadSide {
		case sphere.SpreadSideSell:
			sellExpiry = normalize(leg.Expiry)
		case sphere.SpreadSideBuy:
			buyExpiry = normalize(leg.Expiry)
		}
	}
	if sellExpiry == "" || buyExpiry == "" {
		return MarketKey{}, fmt.Errorf("%w: spread contract %s has incomplete sell/buy leg markers",
			ErrUnresolvableContract, instrument)
	}

	return MarketKey{
		Shape:      ShapeSpread,
		Instrument: instrument,
		Expiries:   [3]string{sellExpiry, buyExpiry},
	}, nil
}

func flyKey(instrument string, contract *sphere.Contract) (MarketKey, error) {
	if len(contract.Legs) != 3 {
		return MarketKey{}, fmt.Errorf("%w: fly contract %s has %d legs, want 3",
			ErrUnresolvableContract, instrument, len(contract.Legs))
	}

	var expiries [3]string
	for i, leg := range contract.Legs {
		expiries[i] = normalize(leg.Expiry)
	}
	return MarketKey{Shape: ShapeFly, Instrument: instrument, Expiries: expiries}, nil
}

// stripKey treats the contract's own summary expiry as authoritative, used
// for both the front and back key components. Front/back are derived from
// the first and last constituents only when the summary is absent.
func stripKey(instrument string, contract *sphere.Contract) (MarketKey, error) {
	if contract.Expiry != "" {
		expiry := normalize(contract.Expiry)
		if n := len(contract.Constituents); n > 0 {
			first := normalize(contract.Constituents[0].Expiry)
			last := normalize(contract.Constituents[n-1].Expiry)
			if first != expiry || last != expiry {
				zap.S().Warnw("strip summary expiry disagrees with constituents, using summary",
					"instrument", instrument,
					"summary", expiry,
					"first_constituent", first,
					"last_constituent", last,
				)
			}
		}
		return MarketKey{
			Shape:      ShapeStrip,
			Instrument: instrument,
			Expiries:   [3]string{expiry, expiry},
		}, nil
	}

	if len(contract.Constituents) == 0 {
		return MarketKey{}, fmt.Errorf("%w: strip contract %s has neither summary expiry nor constituents",
			ErrUnresolvableContract, instrument)
	}

	front := normalize(contract.Constituents[0].Expiry)
	back := normalize(contract.Constituents[len(contract.Constituents)-1].Expiry)
	if front == "" || back == "" {
		return MarketKey{}, fmt.Errorf("%w: strip contract %s has constituents without expiries",
			ErrUnresolvableContract, instrument)
	}

	return MarketKey{
		Shape:      ShapeStrip,
		Instrument: instrument,
		Expiries:   [3]string{front, back},
	}, nil
}
