package journal

import (
	"context"

	"gorm.io/gorm"
)

// SQLJournal persists fills to the ghost_trades table.
type SQLJournal struct {
	db *gorm.DB
}

func NewSQLJournal(db *gorm.DB) *SQLJournal {
	return &SQLJournal{
		db: db,
	}
}

func (j *SQLJournal) dbWithContext(ctx context.Context) *gorm.DB {
	return j.db.WithContext(ctx)
}

func (j *SQLJournal) Record(ctx context.Context, trade *GhostTrade) error {
	return j.dbWithContext(ctx).Create(trade).Error
}

func (j *SQLJournal) BulkRecord(ctx context.Context, trades []*GhostTrade) error {
	return j.dbWithContext(ctx).Create(trades).Error
}
