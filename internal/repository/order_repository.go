package repository

import (
	"context"

	"bakehub/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 精算候補の注文。既にどこかの精算に含まれていればHasPayout
type EligibleOrder struct {
	model.Order
	HasPayout bool `json:"hasPayout"`
}

type OrderRepository interface {
	// 明細も一緒に保存する
	Create(ctx context.Context, order *model.Order) error
	// 明細付きで取得
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//新しい順
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error)
	//新しい順。顧客の名前/メール付き
	ListByBakeryID(ctx context.Context, bakeryID int64) ([]model.Order, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdatePayment(ctx context.Context, orderID int64, status model.PaymentStatus, paidAmount decimal.Decimal) error

	//completed && paidの注文。bakeryIDがnilなら全ベーカリー
	ListEligible(ctx context.Context, bakeryID *int64) ([]EligibleOrder, error)
	// 指定IDのうち、そのベーカリーの精算対象になるものだけ返す
	FindEligibleByIDs(ctx context.Context, bakeryID int64, orderIDs []int64) ([]model.Order, error)
}
