package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
)

// 大文字小文字を無視して受け付け、小文字に正規化する
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusReady, OrderStatusCompleted:
		return st, true
	default:
		return "", false
	}
}

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

// 空文字はcod
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return PaymentMethodCOD, true
	case PaymentMethodCOD, PaymentMethodOnline:
		return m, true
	default:
		return "", false
	}
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch st := PaymentStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case PaymentStatusPending, PaymentStatusPaid:
		return st, true
	default:
		return "", false
	}
}

type Order struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID    int64           `gorm:"not null;index" json:"customerId"`
	Customer      *User           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	BakeryID      int64           `gorm:"not null;index" json:"bakeryId"`
	Bakery        *Bakery         `gorm:"foreignKey:BakeryID" json:"bakery,omitempty"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Address       string          `gorm:"type:varchar(500);not null" json:"address"`
	Phone         string          `gorm:"type:varchar(30);not null" json:"phone"`
	Note          string          `gorm:"type:text" json:"note"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;index" json:"paymentStatus"`
	PaidAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"paidAmount"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// 支払い済みかつ完了した注文だけが精算対象
func (o Order) EligibleForPayout() bool {
	return o.Status == OrderStatusCompleted && o.PaymentStatus == PaymentStatusPaid
}
