package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"bakehub/internal/domain/model"
	"bakehub/internal/notification"
	"bakehub/internal/repository"
	uc "bakehub/internal/usecase"

	"go.uber.org/zap"
)

const otpTTL = 5 * time.Minute

// 会員登録前のメール確認
type OTPUsecase struct {
	users  repository.UserRepository
	otps   repository.OTPStore
	mailer uc.Mailer
	clock  uc.Clock
	log    *zap.Logger
}

func NewOTPUsecase(users repository.UserRepository, otps repository.OTPStore, mailer uc.Mailer, clock uc.Clock, log *zap.Logger) *OTPUsecase {
	return &OTPUsecase{users: users, otps: otps, mailer: mailer, clock: clock, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// 6桁のコード
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// コードを作り直してメールで送る。前のコードは上書き
func (u *OTPUsecase) Send(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return uc.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	exists, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		u.log.Error("check email", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "Failed to send OTP")
	}
	if exists {
		return uc.NewHTTPError(http.StatusBadRequest, "Email already exists")
	}

	code, err := generateOTP()
	if err != nil {
		u.log.Error("generate otp", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "Failed to send OTP")
	}

	otp := model.EmailOTP{
		Email:     email,
		CodeHash:  sha256Hex(code),
		ExpiresAt: u.clock.Now().Add(otpTTL),
		Verified:  false,
	}
	if err := u.otps.Save(ctx, otp); err != nil {
		u.log.Error("save otp", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "Failed to send OTP")
	}

	if err := u.mailer.Send(ctx, notification.RegisterOTP(email, code)); err != nil {
		u.log.Error("send otp mail", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "Failed to send OTP")
	}
	return nil
}

func (u *OTPUsecase) Verify(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return uc.NewHTTPError(http.StatusBadRequest, "Email and OTP are required")
	}

	otp, err := u.otps.Find(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return uc.NewHTTPError(http.StatusBadRequest, "OTP not found. Please request a new one.")
	}
	if err != nil {
		u.log.Error("find otp", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "Failed to verify OTP")
	}

	if otp.Expired(u.clock.Now()) {
		return uc.NewHTTPError(http.StatusBadRequest, "OTP expired. Please request again.")
	}
	if subtle.ConstantTimeCompare([]byte(otp.CodeHash), []byte(sha256Hex(code))) != 1 {
		return uc.NewHTTPError(http.StatusBadRequest, "Invalid OTP")
	}

	otp.Verified = true
	if err := u.otps.Save(ctx, otp); err != nil {
		u.log.Error("mark otp verified", zap.Error(err))
		return uc.NewHTTPError(http.StatusInternalServerError, "Failed to verify OTP")
	}
	return nil
}
