package ghost

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joripage/ghost-trader/pkg/sphere"
)

// TradeExecutor turns a match decision into a trade against the real order.
// Implementations must not retry: a failed attempt is reported back and the
// ghost order is left untouched.
type TradeExecutor interface {
	Execute(ctx context.Context, realOrder *sphere.Order, quantity decimal.Decimal, ghostSide Side) error
}

// SphereExecutor submits trades through the Sphere client. Every call carries
// a freshly generated idempotency key so the backend can reject duplicate
// executions of the same logical request.
type SphereExecutor struct {
	client sphere.Client
}

func NewSphereExecutor(client sphere.Client) *SphereExecutor {
	return &SphereExecutor{client: client}
}

func (e *SphereExecutor) Execute(ctx context.Context, realOrder *sphere.Order, quantity decimal.Decimal, ghostSide Side) error {
	// Trading terminology: a ghost bid buys from a real ask (lifting the
	// offer), a ghost ask sells to a real bid (hitting the bid).
	action := "hit the bid"
	if ghostSide == SideBid {
		action = "lift the offer"
	}

	log := zap.S().With("real_order_id", realOrder.ID, "quantity", quantity.String())
	log.Infow("submitting trade", "action", action)

	req := &sphere.TradeOrderRequest{
		ID:             realOrder.ID,
		Quantity:       quantity.String(),
		IdempotencyKey: uuid.NewString(),
	}

	if _, err := e.client.TradeOrder(ctx, req); err != nil {
		if errors.Is(err, sphere.ErrTradeOrderFailed) {
			log.Errorw("failed to "+action, "error", err)
		} else {
			log.Errorw("unexpected error while trying to "+action, "error", err)
		}
		return err
	}

	log.Infow("trade request submitted", "action", action)
	return nil
}
