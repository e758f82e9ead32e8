package repository

import (
	"context"

	"bakehub/internal/domain/model"
)

// ベーカリー単位の一覧条件
type ProductListQuery struct {
	BakeryID int64
	// trueならisVisible && !isSoldOutだけ
	OnlyAvailable bool
	Category      *model.ProductCategory
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListByBakery(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
