package journal

import (
	"context"
	"sync"
)

// InMemoryJournal keeps the session's fills in memory; the interactive layer
// reads it back for the end-of-session summary.
type InMemoryJournal struct {
	mu     sync.RWMutex
	trades []*GhostTrade
}

func NewInMemoryJournal() *InMemoryJournal {
	return &InMemoryJournal{}
}

func (j *InMemoryJournal) Record(_ context.Context, trade *GhostTrade) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.trades = append(j.trades, trade)
	return nil
}

// Trades returns a copy of everything recorded so far, in record order.
func (j *InMemoryJournal) Trades() []*GhostTrade {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]*GhostTrade, len(j.trades))
	copy(out, j.trades)
	return out
}
