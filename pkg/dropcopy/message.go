package dropcopy

import (
	"github.com/google/uuid"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	"github.com/quickfixgo/fix44/executionreport"
	"github.com/quickfixgo/quickfix"

	"github.com/joripage/ghost-trader/pkg/ghost"
)

var sideMapping = map[ghost.Side]enum.Side{
	ghost.SideBid: enum.Side_BUY,
	ghost.SideAsk: enum.Side_SELL,
}

func executionReportFromFill(fill *ghost.Fill) *quickfix.Message {
	ordStatus := enum.OrdStatus_PARTIALLY_FILLED
	if !fill.RemainingQty.IsPositive() {
		ordStatus = enum.OrdStatus_FILLED
	}

	cumQty := fill.OriginalQty.Sub(fill.RemainingQty)

	msg := executionreport.New(
		field.NewOrderID(fill.RealOrderID),
		field.NewExecID(uuid.NewString()),
		field.NewExecType(enum.ExecType_TRADE),
		field.NewOrdStatus(ordStatus),
		field.NewSide(sideMapping[fill.Side]),
		field.NewLeavesQty(fill.RemainingQty, 2),
		field.NewCumQty(cumQty, 2),
		field.NewAvgPx(fill.Price, 2),
	)

	msg.SetClOrdID(fill.GhostOrderID)
	msg.SetSymbol(fill.Market.String())
	msg.SetOrderQty(fill.OriginalQty, 2)
	msg.SetLastQty(fill.Quantity, 2)
	msg.SetLastPx(fill.Price, 2)
	msg.SetPrice(fill.Price, 2)
	msg.SetTransactTime(fill.ExecutedAt)

	return msg.ToMessage()
}
