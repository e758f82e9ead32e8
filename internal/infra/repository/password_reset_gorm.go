package repository

import (
	"context"

	"bakehub/internal/domain/model"
	repo "bakehub/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type passwordResetGormRepository struct {
	db *gorm.DB //DB接続（GORM）
}

// GORM実装
func NewPasswordResetRepository(db *gorm.DB) repo.PasswordResetRepository {
	return &passwordResetGormRepository{db: db}
}

// user_idが同じ行があればハッシュと期限を差し替える
func (r *passwordResetGormRepository) Upsert(ctx context.Context, t *model.PasswordResetToken) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token_hash", "expires_at", "updated_at"}),
	}).Create(t).Error
}

func (r *passwordResetGormRepository) FindByTokenHash(ctx context.Context, tokenHash string) (model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&t).Error; err != nil {
		return model.PasswordResetToken{}, translate(err)
	}
	return t, nil
}

func (r *passwordResetGormRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.PasswordResetToken{}, id).Error
}
