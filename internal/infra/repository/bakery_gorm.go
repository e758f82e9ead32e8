package repository

import (
	"context"

	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"

	"gorm.io/gorm"
)

type BakeryGormRepository struct {
	db *gorm.DB
}

func NewBakeryGormRepository(db *gorm.DB) *BakeryGormRepository {
	return &BakeryGormRepository{db: db}
}

func (r *BakeryGormRepository) Create(ctx context.Context, b *model.Bakery) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *BakeryGormRepository) FindByID(ctx context.Context, id int64) (model.Bakery, error) {
	var b model.Bakery
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return model.Bakery{}, translate(err)
	}
	return b, nil
}

func (r *BakeryGormRepository) FindByOwnerID(ctx context.Context, ownerID int64) (model.Bakery, error) {
	var b model.Bakery
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&b).Error; err != nil {
		return model.Bakery{}, translate(err)
	}
	return b, nil
}

// オーナーの名前とメールだけ付ける
func withOwnerSummary(db *gorm.DB) *gorm.DB {
	return db.Preload("Owner", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email", "role")
	})
}

func (r *BakeryGormRepository) ListAll(ctx context.Context) ([]model.Bakery, error) {
	var items []model.Bakery
	if err := withOwnerSummary(r.db.WithContext(ctx)).Order("id desc").Find(&items).Error; err != nil {
		return []model.Bakery{}, err
	}
	return items, nil
}

func (r *BakeryGormRepository) ListByStatus(ctx context.Context, status model.BakeryStatus) ([]model.Bakery, error) {
	var items []model.Bakery
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Bakery{}, err
	}
	return items, nil
}

func (r *BakeryGormRepository) UpdateStatus(ctx context.Context, id int64, status model.BakeryStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Bakery{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BakeryGormRepository) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	res := r.db.WithContext(ctx).Model(&model.Bakery{}).Where("id = ?", id).Update("image_url", imageURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ステータスごとの件数
func (r *BakeryGormRepository) CountByStatus(ctx context.Context) (map[model.BakeryStatus]int64, error) {
	type row struct {
		Status model.BakeryStatus
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Bakery{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := map[model.BakeryStatus]int64{
		model.BakeryStatusPending:  0,
		model.BakeryStatusApproved: 0,
		model.BakeryStatusRejected: 0,
	}
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}
