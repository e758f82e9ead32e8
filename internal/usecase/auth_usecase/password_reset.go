package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"bakehub/internal/domain/model"
	"bakehub/internal/notification"
	"bakehub/internal/repository"
	uc "bakehub/internal/usecase"
	"bakehub/internal/validator"

	"go.uber.org/zap"
)

const resetTokenTTL = time.Hour

// メールの有無を漏らさないため、常にこの文言を返す
const ForgotPasswordMessage = "If that email exists, a reset link has been sent."

type PasswordResetUsecase struct {
	users       repository.UserRepository
	tokens      repository.PasswordResetRepository
	hasher      uc.PasswordHasher
	mailer      uc.Mailer
	clock       uc.Clock
	frontendURL string
	log         *zap.Logger
}

func NewPasswordResetUsecase(
	users repository.UserRepository,
	tokens repository.PasswordResetRepository,
	hasher uc.PasswordHasher,
	mailer uc.Mailer,
	clock uc.Clock,
	frontendURL string,
	log *zap.Logger,
) *PasswordResetUsecase {
	return &PasswordResetUsecase{
		users:       users,
		tokens:      tokens,
		hasher:      hasher,
		mailer:      mailer,
		clock:       clock,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log,
	}
}

func generateResetToken() (string, error) {
	// ランダムなバイト列を作る（OSが持つ安全な乱数）
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (u *PasswordResetUsecase) Forgot(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return uc.NewHTTPError(http.StatusBadRequest, "Email required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		u.log.Error("find user by email", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	plain, err := generateResetToken()
	if err != nil {
		u.log.Error("generate reset token", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := u.tokens.Upsert(ctx, &model.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: sha256Hex(plain),
		ExpiresAt: u.clock.Now().Add(resetTokenTTL),
	}); err != nil {
		u.log.Error("save reset token", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	link := u.frontendURL + "/reset-password/" + plain
	if err := u.mailer.Send(ctx, notification.PasswordReset(user.Email, link)); err != nil {
		// 送れなくても応答は変えない
		u.log.Error("send reset mail", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	return nil
}

func (u *PasswordResetUsecase) Reset(ctx context.Context, token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" || password == "" {
		return uc.NewHTTPError(http.StatusBadRequest, "Token and password required")
	}
	if err := validator.ValidatePassword(password); err != nil {
		return uc.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	t, err := u.tokens.FindByTokenHash(ctx, sha256Hex(token))
	if errors.Is(err, repository.ErrNotFound) {
		return uc.NewHTTPError(http.StatusBadRequest, "Token invalid or expired")
	}
	if err != nil {
		u.log.Error("find reset token", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if t.Expired(u.clock.Now()) {
		return uc.NewHTTPError(http.StatusBadRequest, "Token invalid or expired")
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		u.log.Error("hash password", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := u.users.UpdatePassword(ctx, t.UserID, hashed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uc.NewHTTPError(http.StatusNotFound, "User not found")
		}
		u.log.Error("update password", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.tokens.DeleteByID(ctx, t.ID); err != nil {
		u.log.Warn("delete reset token", zap.Error(err))
	}
	return nil
}
