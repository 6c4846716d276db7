package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/ghost-trader/pkg/ghost"
)

// GhostTrade is one executed ghost fill, as recorded by the journal.
type GhostTrade struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	GhostOrderID string          `gorm:"column:ghost_order_id" json:"ghostOrderId"`
	RealOrderID  string          `gorm:"column:real_order_id" json:"realOrderId"`
	Market       string          `gorm:"column:market" json:"market"`
	Shape        string          `gorm:"column:shape" json:"shape"`
	Side         string          `gorm:"column:side" json:"side"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric" json:"price"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:numeric" json:"quantity"`
	RemainingQty decimal.Decimal `gorm:"column:remaining_qty;type:numeric" json:"remainingQty"`
	ExecutedAt   time.Time       `gorm:"column:executed_at" json:"executedAt"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"createdAt"`
}

func (GhostTrade) TableName() string {
	return "ghost_trades"
}

// NewGhostTrade converts a fill into its journal record.
func NewGhostTrade(fill *ghost.Fill) *GhostTrade {
	return &GhostTrade{
		GhostOrderID: fill.GhostOrderID,
		RealOrderID:  fill.RealOrderID,
		Market:       fill.Market.String(),
		Shape:        string(fill.Market.Shape),
		Side:         string(fill.Side),
		Price:        fill.Price,
		Quantity:     fill.Quantity,
		RemainingQty: fill.RemainingQty,
		ExecutedAt:   fill.ExecutedAt,
	}
}
