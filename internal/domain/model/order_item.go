package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文時点のスナップショット。商品が後で変わっても注文は変わらない。
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   int64           `gorm:"not null;index" json:"-"`
	ProductID *int64          `gorm:"index" json:"productId,omitempty"`
	BakeryID  int64           `gorm:"not null" json:"bakeryId"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Qty       int64           `gorm:"not null" json:"qty"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"-"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Qty))
}
