package auth

import (
	"context"
	"net/http"
	"strings"

	"bakehub/internal/repository"
	uc "bakehub/internal/usecase"

	"go.uber.org/zap"
)

// 登録フォームの重複チェック
type LookupUsecase struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewLookupUsecase(users repository.UserRepository, log *zap.Logger) *LookupUsecase {
	return &LookupUsecase{users: users, log: log}
}

func (u *LookupUsecase) EmailExists(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, uc.NewHTTPError(http.StatusBadRequest, "Email is required")
	}
	ok, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		u.log.Error("check email", zap.Error(err))
		return false, uc.NewHTTPError(http.StatusInternalServerError, "Server error while checking email")
	}
	return ok, nil
}

func (u *LookupUsecase) PhoneExists(ctx context.Context, phone string) (bool, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false, uc.NewHTTPError(http.StatusBadRequest, "Phone is required")
	}
	ok, err := u.users.ExistsByPhone(ctx, phone)
	if err != nil {
		u.log.Error("check phone", zap.Error(err))
		return false, uc.NewHTTPError(http.StatusInternalServerError, "Server error while checking phone")
	}
	return ok, nil
}
