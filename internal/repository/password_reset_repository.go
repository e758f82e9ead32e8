package repository

import (
	"context"

	"bakehub/internal/domain/model"
)

// パスワード再設定トークンの保存・取得・削除
type PasswordResetRepository interface {
	// ユーザーごとに1件。既存があれば上書き
	Upsert(ctx context.Context, token *model.PasswordResetToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (model.PasswordResetToken, error)
	DeleteByID(ctx context.Context, id int64) error
}
