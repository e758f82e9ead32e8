package repository

import (
	"context"

	"bakehub/internal/domain/model"
)

type BakeryRepository interface {
	// owner_idが重複したらErrConflict
	Create(ctx context.Context, bakery *model.Bakery) error
	FindByID(ctx context.Context, id int64) (model.Bakery, error)
	FindByOwnerID(ctx context.Context, ownerID int64) (model.Bakery, error)
	//管理者用。オーナー情報付き
	ListAll(ctx context.Context) ([]model.Bakery, error)
	ListByStatus(ctx context.Context, status model.BakeryStatus) ([]model.Bakery, error)
	UpdateStatus(ctx context.Context, id int64, status model.BakeryStatus) error
	UpdateImage(ctx context.Context, id int64, imageURL string) error
	CountByStatus(ctx context.Context) (map[model.BakeryStatus]int64, error)
}
