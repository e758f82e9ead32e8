package repository

import (
	"context"

	"bakehub/internal/domain/model"
)

// 登録用OTPの置き場所。期限切れは自動で消える想定
type OTPStore interface {
	Save(ctx context.Context, otp model.EmailOTP) error
	// 見つからなければErrNotFound
	Find(ctx context.Context, email string) (model.EmailOTP, error)
	Delete(ctx context.Context, email string) error
}
