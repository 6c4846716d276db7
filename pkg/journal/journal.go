// Package journal records executed ghost fills. A fill has already happened
// by the time it reaches the journal, so sink failures are logged and never
// propagate back into the matching path.
package journal

import (
	"context"

	"go.uber.org/zap"
)

type Journal interface {
	Record(ctx context.Context, trade *GhostTrade) error
}

// Multi fans a record out to every configured sink. A failing sink is logged
// and skipped; the remaining sinks still receive the record.
type Multi struct {
	sinks []Journal
}

func NewMulti(sinks ...Journal) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Record(ctx context.Context, trade *GhostTrade) error {
	for _, sink := range m.sinks {
		if err := sink.Record(ctx, trade); err != nil {
			zap.S().Errorw("journal sink failed",
				"real_order_id", trade.RealOrderID, "error", err)
		}
	}
	return nil
}
