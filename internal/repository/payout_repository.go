package repository

import (
	"context"
	"time"

	"bakehub/internal/domain/model"
)

type PayoutListFilter struct {
	Status   *model.PayoutStatus
	BakeryID *int64
}

// 処理済みにするときに書き込む値
type PayoutProcessUpdate struct {
	ProcessedBy    int64
	ProcessedAt    time.Time
	PaymentMethod  model.PayoutMethod
	PaymentDetails model.PaymentDetails
	Notes          string
}

type PayoutRepository interface {
	// 精算と注文IDのclaimを作る。既にclaim済みの注文があればErrConflict
	Create(ctx context.Context, payout *model.Payout, orderIDs []int64) error
	// 注文IDと注文を埋めて返す
	FindByID(ctx context.Context, id int64) (model.Payout, error)
	List(ctx context.Context, f PayoutListFilter) ([]model.Payout, error)
	// どれか一つでもclaim済みならtrue
	AnyClaimed(ctx context.Context, orderIDs []int64) (bool, error)
	// pendingのときだけ更新する。pendingでなければErrConflict
	MarkProcessed(ctx context.Context, id int64, upd PayoutProcessUpdate) error
}
